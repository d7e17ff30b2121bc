package catalog

import (
	"regexp"
	"strconv"
	"strings"
)

// Package-level compiled regex patterns for performance
var (
	currencyNoiseRegex = regexp.MustCompile(`[^\d.]`)
	urlRegex           = regexp.MustCompile(`https?://[^\s,'"\]]+`)
)

// Prices outside this range are treated as data errors and dropped.
const (
	minSanePrice = 0
	maxSanePrice = 1_000_000
)

// nullLiterals are the serialized missing-value markers that appear in the
// exported CSV (pandas writes "nan", some rows carry "None"/"null").
var nullLiterals = map[string]bool{
	"":     true,
	"nan":  true,
	"none": true,
	"null": true,
	"n/a":  true,
}

// NormalizeField trims a raw CSV value and collapses missing-value markers
// to the empty string.
func NormalizeField(s string) string {
	s = strings.TrimSpace(s)
	if nullLiterals[strings.ToLower(s)] {
		return ""
	}
	return s
}

// ParsePrice converts a price string like "$1,299.99" to a float pointer.
// Returns nil for missing, unparseable, or out-of-range values.
func ParsePrice(s string) *float64 {
	s = NormalizeField(s)
	if s == "" {
		return nil
	}

	cleaned := currencyNoiseRegex.ReplaceAllString(s, "")
	if cleaned == "" || cleaned == "." {
		return nil
	}

	price, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return nil
	}

	if price <= minSanePrice || price >= maxSanePrice {
		return nil
	}

	return &price
}

// ParseList parses a serialized list field such as "['Chairs', 'Dining']".
// The export writes Python-style list literals; malformed values fall back
// to splitting on commas and semicolons. Missing values yield an empty list.
func ParseList(s string) []string {
	s = NormalizeField(s)
	if s == "" {
		return nil
	}

	inner := strings.TrimSpace(s)
	hadBrackets := false
	if strings.HasPrefix(inner, "[") && strings.HasSuffix(inner, "]") {
		inner = inner[1 : len(inner)-1]
		hadBrackets = true
	}

	var items []string
	for _, part := range splitListItems(inner) {
		item := strings.TrimSpace(part)
		item = strings.Trim(item, `'"`)
		item = strings.TrimSpace(item)
		if item != "" {
			items = append(items, item)
		}
	}

	// A bare scalar without brackets or delimiters is a single-item list
	if !hadBrackets && len(items) == 0 && inner != "" {
		items = append(items, inner)
	}

	return items
}

// splitListItems splits serialized list contents on commas and semicolons,
// respecting single and double quotes so quoted items may contain commas.
func splitListItems(s string) []string {
	var parts []string
	var current strings.Builder
	var quote rune

	for _, r := range s {
		switch {
		case quote != 0:
			if r == quote {
				quote = 0
			}
			current.WriteRune(r)
		case r == '\'' || r == '"':
			quote = r
			current.WriteRune(r)
		case r == ',' || r == ';':
			parts = append(parts, current.String())
			current.Reset()
		default:
			current.WriteRune(r)
		}
	}

	if current.Len() > 0 {
		parts = append(parts, current.String())
	}

	return parts
}

// ParseImages parses the serialized image URL list. Values that cannot be
// parsed as a list are scanned for bare URLs as a last resort.
func ParseImages(s string) []string {
	items := ParseList(s)

	var urls []string
	for _, item := range items {
		if strings.HasPrefix(item, "http://") || strings.HasPrefix(item, "https://") {
			urls = append(urls, item)
		}
	}

	if len(urls) == 0 && NormalizeField(s) != "" {
		urls = urlRegex.FindAllString(s, -1)
	}

	return urls
}
