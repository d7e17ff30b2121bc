package vectorindex

import (
	"errors"
	"testing"

	"github.com/furnishly/backend/internal/domain"
)

func testIndex(t *testing.T) *Index {
	t.Helper()
	ix, err := New([]indexEntry{
		{ProductID: "p1", Vector: []float64{1, 0, 0}},
		{ProductID: "p2", Vector: []float64{0, 1, 0}},
		{ProductID: "p3", Vector: []float64{0.7, 0.7, 0}},
	})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return ix
}

func TestNew(t *testing.T) {
	t.Run("builds index from valid entries", func(t *testing.T) {
		ix := testIndex(t)
		if ix.Len() != 3 {
			t.Errorf("Len() = %d, want 3", ix.Len())
		}
		if ix.Dimension() != 3 {
			t.Errorf("Dimension() = %d, want 3", ix.Dimension())
		}
	})

	t.Run("drops invalid entries", func(t *testing.T) {
		ix, err := New([]indexEntry{
			{ProductID: "good", Vector: []float64{1, 0}},
			{ProductID: "", Vector: []float64{1, 0}},
			{ProductID: "wrong-dim", Vector: []float64{1, 0, 0}},
			{ProductID: "zero", Vector: []float64{0, 0}},
		})
		if err != nil {
			t.Fatalf("New() error = %v", err)
		}
		if ix.Len() != 1 {
			t.Errorf("Len() = %d, want 1", ix.Len())
		}
	})

	t.Run("rejects index with no usable entries", func(t *testing.T) {
		_, err := New([]indexEntry{{ProductID: "", Vector: nil}})
		if !errors.Is(err, domain.ErrEmbeddingsUnavailable) {
			t.Errorf("error = %v, want ErrEmbeddingsUnavailable", err)
		}
	})
}

func TestSearch(t *testing.T) {
	ix := testIndex(t)

	t.Run("orders by descending similarity", func(t *testing.T) {
		matches, err := ix.Search([]float64{1, 0.1, 0}, 3)
		if err != nil {
			t.Fatalf("Search() error = %v", err)
		}
		if len(matches) != 3 {
			t.Fatalf("len(matches) = %d, want 3", len(matches))
		}
		if matches[0].ProductID != "p1" {
			t.Errorf("matches[0] = %s, want p1", matches[0].ProductID)
		}
		for i := 1; i < len(matches); i++ {
			if matches[i].Score > matches[i-1].Score {
				t.Errorf("matches not sorted: score[%d]=%v > score[%d]=%v",
					i, matches[i].Score, i-1, matches[i-1].Score)
			}
		}
	})

	t.Run("limits to topK", func(t *testing.T) {
		matches, err := ix.Search([]float64{1, 1, 0}, 2)
		if err != nil {
			t.Fatalf("Search() error = %v", err)
		}
		if len(matches) != 2 {
			t.Errorf("len(matches) = %d, want 2", len(matches))
		}
	})

	t.Run("zero topK returns nothing", func(t *testing.T) {
		matches, err := ix.Search([]float64{1, 0, 0}, 0)
		if err != nil {
			t.Fatalf("Search() error = %v", err)
		}
		if matches != nil {
			t.Errorf("matches = %v, want nil", matches)
		}
	})

	t.Run("rejects dimension mismatch", func(t *testing.T) {
		_, err := ix.Search([]float64{1, 0}, 3)
		if !errors.Is(err, domain.ErrEmbeddingsUnavailable) {
			t.Errorf("error = %v, want ErrEmbeddingsUnavailable", err)
		}
	})

	t.Run("zero query vector returns nothing", func(t *testing.T) {
		matches, err := ix.Search([]float64{0, 0, 0}, 3)
		if err != nil {
			t.Fatalf("Search() error = %v", err)
		}
		if len(matches) != 0 {
			t.Errorf("len(matches) = %d, want 0", len(matches))
		}
	})

	t.Run("identical vector scores one", func(t *testing.T) {
		matches, err := ix.Search([]float64{0, 1, 0}, 1)
		if err != nil {
			t.Fatalf("Search() error = %v", err)
		}
		if len(matches) != 1 || matches[0].ProductID != "p2" {
			t.Fatalf("matches = %v, want p2", matches)
		}
		if matches[0].Score < 0.999 || matches[0].Score > 1.001 {
			t.Errorf("Score = %v, want ~1.0", matches[0].Score)
		}
	})
}
