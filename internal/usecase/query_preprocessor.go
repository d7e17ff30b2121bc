package usecase

import (
	"regexp"
	"strings"
)

// Package-level compiled regex patterns for performance
var (
	punctuationRegex    = regexp.MustCompile(`[^\w\s]`)
	multipleSpacesRegex = regexp.MustCompile(`\s+`)
)

// stopWords includes basic English stop words plus shopping-query noise
// ("show me some cheap chairs for my living room" should reduce to the
// terms worth matching against the catalog).
var stopWords = map[string]bool{
	// Basic English stop words
	"a": true, "an": true, "the": true, "and": true, "or": true,
	"of": true, "in": true, "on": true, "at": true, "to": true,
	"for": true, "with": true, "by": true, "from": true, "is": true,
	"it": true, "as": true, "be": true, "was": true, "are": true,
	"my": true, "me": true, "i": true, "need": true, "want": true,
	"some": true, "any": true, "that": true, "this": true, "like": true,
	// Chat-query phrasing
	"show": true, "find": true, "looking": true, "search": true,
	"recommend": true, "suggest": true, "please": true, "buy": true,
	"get": true, "give": true, "would": true, "can": true, "you": true,
	// Generic shopping terms that match everything
	"furniture": true, "item": true, "items": true, "product": true,
	"products": true, "piece": true, "pieces": true, "something": true,
	"good": true, "nice": true, "best": true, "cheap": true,
	"affordable": true, "quality": true, "new": true,
}

// QueryPreprocessor normalizes free-text chat queries into match tokens
type QueryPreprocessor struct{}

// NewQueryPreprocessor creates a new query preprocessor
func NewQueryPreprocessor() *QueryPreprocessor {
	return &QueryPreprocessor{}
}

// Tokenize splits a query into normalized lowercase tokens.
// Removes punctuation, stop words, and pure numeric tokens. An empty or
// all-stopword query yields no tokens, which the matcher treats as
// "no matches" rather than an error.
func (p *QueryPreprocessor) Tokenize(query string) []string {
	cleaned := punctuationRegex.ReplaceAllString(strings.ToLower(query), " ")

	words := strings.Fields(cleaned)

	var tokens []string
	for _, word := range words {
		// Skip short tokens (1 char or less)
		if len(word) <= 1 {
			continue
		}
		if stopWords[word] {
			continue
		}
		// Skip pure numeric tokens (e.g. "128")
		if isNumeric(word) {
			continue
		}
		tokens = append(tokens, word)
	}

	return tokens
}

// Normalize collapses a query to a clean lowercase form for cache keys
// and embedding input.
func (p *QueryPreprocessor) Normalize(query string) string {
	cleaned := punctuationRegex.ReplaceAllString(strings.ToLower(query), " ")
	cleaned = multipleSpacesRegex.ReplaceAllString(cleaned, " ")
	return strings.TrimSpace(cleaned)
}

// isNumeric checks if a string contains only digits
func isNumeric(s string) bool {
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return len(s) > 0
}
