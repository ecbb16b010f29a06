package repository

import (
	"context"
	_ "embed"
	"fmt"
	"log"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"wear-simulator/models"
	"wear-simulator/utils"
)

//go:embed data/catalog.yaml
var defaultCatalog []byte

// DefaultCatalog returns the embedded catalog document
func DefaultCatalog() (*models.CatalogDocument, error) {
	return ParseCatalog(defaultCatalog)
}

// ParseCatalog decodes and validates a YAML catalog document
func ParseCatalog(data []byte) (*models.CatalogDocument, error) {
	var doc models.CatalogDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}

	seen := make(map[int]bool, len(doc.Stickers))
	for _, e := range doc.Stickers {
		if e.URL == "" {
			return nil, fmt.Errorf("sticker %d has no url", e.ID)
		}
		if seen[e.ID] {
			return nil, fmt.Errorf("duplicate sticker id %d", e.ID)
		}
		seen[e.ID] = true
	}

	garments := make(map[string]bool, len(doc.Garments))
	for i, g := range doc.Garments {
		g.Type = utils.NormalizeGarmentType(g.Type)
		if g.Type == "" {
			return nil, fmt.Errorf("garment %d has no type", i)
		}
		if garments[g.Type] {
			return nil, fmt.Errorf("duplicate garment type %q", g.Type)
		}
		garments[g.Type] = true
		if g.Name == "" {
			g.Name = utils.MapGarmentTypeToName(g.Type)
		}
		doc.Garments[i] = g
	}
	return &doc, nil
}

// CatalogFileRepository serves the catalog from a YAML document held in memory
type CatalogFileRepository struct {
	doc *models.CatalogDocument
}

// Ensure CatalogFileRepository implements CatalogRepositoryInterface
var _ CatalogRepositoryInterface = (*CatalogFileRepository)(nil)

// NewCatalogFileRepository loads the catalog from path, or the embedded default when path is empty
func NewCatalogFileRepository(path string) (*CatalogFileRepository, error) {
	data := defaultCatalog
	source := "embedded catalog"
	if path != "" {
		var err error
		data, err = os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read catalog file %s: %w", path, err)
		}
		source = path
	}

	doc, err := ParseCatalog(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", source, err)
	}
	log.Printf("✓ Loaded %d stickers and %d garments from %s", len(doc.Stickers), len(doc.Garments), source)
	return &CatalogFileRepository{doc: doc}, nil
}

// NewCatalogFileRepositoryFromDocument wraps an already parsed document
func NewCatalogFileRepositoryFromDocument(doc *models.CatalogDocument) *CatalogFileRepository {
	return &CatalogFileRepository{doc: doc}
}

// ListEntries returns the stickers of a category in catalog order; "all" or "" returns every sticker
func (r *CatalogFileRepository) ListEntries(ctx context.Context, category string) ([]models.CatalogEntry, error) {
	category = strings.ToLower(strings.TrimSpace(category))
	entries := make([]models.CatalogEntry, 0, len(r.doc.Stickers))
	for _, e := range r.doc.Stickers {
		if category == "" || category == models.CategoryAll || e.Category == category {
			entries = append(entries, e)
		}
	}
	return entries, nil
}

// GetEntry returns a sticker by id
func (r *CatalogFileRepository) GetEntry(ctx context.Context, id int) (*models.CatalogEntry, error) {
	for _, e := range r.doc.Stickers {
		if e.ID == id {
			entry := e
			return &entry, nil
		}
	}
	return nil, fmt.Errorf("catalog entry %d: %w", id, ErrNotFound)
}

// ListCategories returns the palette filter tabs
func (r *CatalogFileRepository) ListCategories(ctx context.Context) ([]models.Category, error) {
	out := make([]models.Category, len(r.doc.Categories))
	copy(out, r.doc.Categories)
	return out, nil
}

// ListGarments returns the configured garments
func (r *CatalogFileRepository) ListGarments(ctx context.Context) ([]models.Garment, error) {
	out := make([]models.Garment, len(r.doc.Garments))
	copy(out, r.doc.Garments)
	return out, nil
}

// GetGarment returns a garment by type
func (r *CatalogFileRepository) GetGarment(ctx context.Context, garmentType string) (*models.Garment, error) {
	garmentType = utils.NormalizeGarmentType(garmentType)
	for _, g := range r.doc.Garments {
		if g.Type == garmentType {
			garment := g
			return &garment, nil
		}
	}
	return nil, fmt.Errorf("garment %q: %w", garmentType, ErrNotFound)
}

// Description returns the markdown notes of the catalog
func (r *CatalogFileRepository) Description(ctx context.Context) (string, error) {
	return r.doc.Description, nil
}

// Document returns the underlying catalog document
func (r *CatalogFileRepository) Document() *models.CatalogDocument {
	return r.doc
}
