package catalog

import (
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/furnishly/backend/internal/domain"
)

// Catalog is the in-memory product catalog. It is populated once by Load
// and never mutated afterwards, so reads need no synchronization.
type Catalog struct {
	products []domain.Product
	byID     map[string]int
}

// Load reads the product CSV into memory. Column order is taken from the
// header row, so exports with reordered or extra columns still load.
func Load(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog file: %w", err)
	}
	defer f.Close()

	catalog, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog %s: %w", path, err)
	}

	log.Printf("[CATALOG] Loaded %d products from %s", catalog.Len(), path)
	return catalog, nil
}

// Read parses catalog CSV data from r. Rows without an ID are skipped;
// for duplicate IDs the first row wins.
func Read(r io.Reader) (*Catalog, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // exports occasionally carry ragged rows
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}

	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[strings.ToLower(strings.TrimSpace(name))] = i
	}

	if _, ok := columns["uniq_id"]; !ok {
		return nil, fmt.Errorf("catalog CSV missing required column %q", "uniq_id")
	}

	catalog := &Catalog{byID: make(map[string]int)}
	skipped := 0

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV row: %w", err)
		}

		field := func(name string) string {
			idx, ok := columns[name]
			if !ok || idx >= len(record) {
				return ""
			}
			return record[idx]
		}

		id := NormalizeField(field("uniq_id"))
		if id == "" {
			skipped++
			continue
		}
		if _, exists := catalog.byID[id]; exists {
			skipped++
			continue
		}

		title := NormalizeField(field("title"))
		if title == "" {
			title = "Unknown Product"
		}

		product := domain.Product{
			ID:          id,
			Title:       title,
			Brand:       NormalizeField(field("brand")),
			Description: NormalizeField(field("description")),
			Price:       ParsePrice(field("price")),
			Categories:  ParseList(field("categories")),
			Images:      ParseImages(field("images")),
			Material:    NormalizeField(field("material")),
			Color:       NormalizeField(field("color")),
		}

		catalog.byID[id] = len(catalog.products)
		catalog.products = append(catalog.products, product)
	}

	if skipped > 0 {
		log.Printf("[CATALOG] Skipped %d rows (missing or duplicate IDs)", skipped)
	}

	if len(catalog.products) == 0 {
		return nil, domain.ErrCatalogEmpty
	}

	return catalog, nil
}

// All returns every product in catalog order. Callers must not mutate the
// returned slice.
func (c *Catalog) All() []domain.Product {
	return c.products
}

// ByID returns the product with the given ID, if present.
func (c *Catalog) ByID(id string) (*domain.Product, bool) {
	idx, ok := c.byID[id]
	if !ok {
		return nil, false
	}
	return &c.products[idx], true
}

// Len returns the number of loaded products.
func (c *Catalog) Len() int {
	return len(c.products)
}
