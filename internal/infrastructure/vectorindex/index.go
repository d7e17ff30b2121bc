// Package vectorindex provides in-process cosine similarity search over
// precomputed product embeddings. The embeddings file is produced offline
// by the training pipeline and loaded once at startup; L2 norms are
// precomputed so each search is a single pass of dot products.
package vectorindex

import (
	"encoding/json"
	"fmt"
	"log"
	"math"
	"os"
	"sort"

	"github.com/furnishly/backend/internal/domain"
)

// indexEntry is the on-disk format: one product ID with its vector.
type indexEntry struct {
	ProductID string    `json:"uniq_id"`
	Vector    []float64 `json:"vector"`
}

// entry holds a vector with its precomputed L2 norm
type entry struct {
	productID string
	vector    []float64
	norm      float64
}

// Index is an immutable in-memory cosine similarity index.
type Index struct {
	entries   []entry
	dimension int
}

// Load reads a product embeddings file. Entries with missing IDs, empty
// vectors, or mismatched dimensions are dropped with a warning rather than
// failing the load.
func Load(path string) (*Index, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read embeddings file: %w", err)
	}

	var raw []indexEntry
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse embeddings file %s: %w", path, err)
	}

	return New(raw)
}

// New builds an index from decoded entries.
func New(raw []indexEntry) (*Index, error) {
	ix := &Index{}
	dropped := 0

	for _, e := range raw {
		if e.ProductID == "" || len(e.Vector) == 0 {
			dropped++
			continue
		}
		if ix.dimension == 0 {
			ix.dimension = len(e.Vector)
		}
		if len(e.Vector) != ix.dimension {
			dropped++
			continue
		}

		norm := l2Norm(e.Vector)
		if norm == 0 {
			dropped++
			continue
		}

		ix.entries = append(ix.entries, entry{
			productID: e.ProductID,
			vector:    e.Vector,
			norm:      norm,
		})
	}

	if dropped > 0 {
		log.Printf("[VECTORS] Dropped %d invalid embedding entries", dropped)
	}

	if len(ix.entries) == 0 {
		return nil, domain.ErrEmbeddingsUnavailable
	}

	return ix, nil
}

// Search scores the query vector against every product embedding and
// returns up to topK matches ordered by descending cosine similarity.
// Ties keep index (catalog) order.
func (ix *Index) Search(queryVector []float64, topK int) ([]domain.VectorMatch, error) {
	if len(queryVector) != ix.dimension {
		return nil, fmt.Errorf("%w: query dimension %d, index dimension %d",
			domain.ErrEmbeddingsUnavailable, len(queryVector), ix.dimension)
	}
	if topK <= 0 {
		return nil, nil
	}

	queryNorm := l2Norm(queryVector)
	if queryNorm == 0 {
		return nil, nil
	}

	matches := make([]domain.VectorMatch, 0, len(ix.entries))
	for _, e := range ix.entries {
		var dot float64
		for i, v := range e.vector {
			dot += v * queryVector[i]
		}
		matches = append(matches, domain.VectorMatch{
			ProductID: e.productID,
			Score:     dot / (e.norm * queryNorm),
		})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})

	if len(matches) > topK {
		matches = matches[:topK]
	}

	return matches, nil
}

// Len returns the number of indexed vectors.
func (ix *Index) Len() int {
	return len(ix.entries)
}

// Dimension returns the embedding dimension of the index.
func (ix *Index) Dimension() int {
	return ix.dimension
}

// l2Norm computes the Euclidean norm of a vector
func l2Norm(v []float64) float64 {
	var sum float64
	for _, x := range v {
		sum += x * x
	}
	return math.Sqrt(sum)
}
