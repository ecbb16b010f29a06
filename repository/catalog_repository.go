package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"strings"

	"wear-simulator/db"
	"wear-simulator/models"
	"wear-simulator/utils"
)

const catalogSchema = `
	CREATE TABLE IF NOT EXISTS sticker_categories (
		id       TEXT PRIMARY KEY,
		label    TEXT NOT NULL,
		position INTEGER NOT NULL DEFAULT 0
	);
	CREATE TABLE IF NOT EXISTS stickers (
		id       INTEGER PRIMARY KEY,
		url      TEXT NOT NULL,
		name     TEXT NOT NULL DEFAULT '',
		category TEXT NOT NULL DEFAULT ''
	);
	CREATE TABLE IF NOT EXISTS garments (
		garment_type TEXT PRIMARY KEY,
		name         TEXT NOT NULL DEFAULT '',
		front_image  TEXT NOT NULL DEFAULT '',
		back_image   TEXT NOT NULL DEFAULT '',
		position     INTEGER NOT NULL DEFAULT 0
	);
	CREATE TABLE IF NOT EXISTS catalog_meta (
		key   TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);
`

// CatalogRepository handles database operations for the sticker catalog
type CatalogRepository struct{}

// NewCatalogRepository creates a new CatalogRepository
func NewCatalogRepository() *CatalogRepository {
	return &CatalogRepository{}
}

// Ensure CatalogRepository implements CatalogRepositoryInterface
var _ CatalogRepositoryInterface = (*CatalogRepository)(nil)

// EnsureSchema creates the catalog tables when missing
func (r *CatalogRepository) EnsureSchema(ctx context.Context) error {
	if _, err := db.DB.ExecContext(ctx, catalogSchema); err != nil {
		log.Printf("❌ Error creating catalog schema: %v", err)
		return fmt.Errorf("failed to create catalog schema: %w", err)
	}
	return nil
}

// Seed upserts a catalog document in a single transaction
func (r *CatalogRepository) Seed(ctx context.Context, doc *models.CatalogDocument) error {
	tx, err := db.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for i, c := range doc.Categories {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO sticker_categories (id, label, position) VALUES ($1, $2, $3)
			ON CONFLICT (id) DO UPDATE SET label = EXCLUDED.label, position = EXCLUDED.position`,
			c.ID, c.Label, i)
		if err != nil {
			return fmt.Errorf("failed to upsert category %s: %w", c.ID, err)
		}
	}

	for _, e := range doc.Stickers {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO stickers (id, url, name, category) VALUES ($1, $2, $3, $4)
			ON CONFLICT (id) DO UPDATE SET url = EXCLUDED.url, name = EXCLUDED.name, category = EXCLUDED.category`,
			e.ID, e.URL, e.Name, e.Category)
		if err != nil {
			return fmt.Errorf("failed to upsert sticker %d: %w", e.ID, err)
		}
	}

	for i, g := range doc.Garments {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO garments (garment_type, name, front_image, back_image, position) VALUES ($1, $2, $3, $4, $5)
			ON CONFLICT (garment_type) DO UPDATE SET name = EXCLUDED.name, front_image = EXCLUDED.front_image,
				back_image = EXCLUDED.back_image, position = EXCLUDED.position`,
			g.Type, g.Name, g.Images.Front, g.Images.Back, i)
		if err != nil {
			return fmt.Errorf("failed to upsert garment %s: %w", g.Type, err)
		}
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO catalog_meta (key, value) VALUES ('description', $1)
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value`, doc.Description)
	if err != nil {
		return fmt.Errorf("failed to upsert catalog description: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit catalog seed: %w", err)
	}
	log.Printf("✓ Seeded %d stickers, %d categories, %d garments", len(doc.Stickers), len(doc.Categories), len(doc.Garments))
	return nil
}

// ListEntries retrieves the stickers of a category ordered by id; "all" or "" returns every sticker
func (r *CatalogRepository) ListEntries(ctx context.Context, category string) ([]models.CatalogEntry, error) {
	category = strings.ToLower(strings.TrimSpace(category))
	query := `SELECT id, url, name, category FROM stickers`
	args := []interface{}{}
	if category != "" && category != models.CategoryAll {
		query += ` WHERE category = $1`
		args = append(args, category)
	}
	query += ` ORDER BY id ASC`

	rows, err := db.DB.QueryContext(ctx, query, args...)
	if err != nil {
		log.Printf("❌ Error querying stickers: %v", err)
		return nil, fmt.Errorf("failed to query stickers: %w", err)
	}
	defer rows.Close()

	entries := []models.CatalogEntry{}
	for rows.Next() {
		var e models.CatalogEntry
		if err := rows.Scan(&e.ID, &e.URL, &e.Name, &e.Category); err != nil {
			return nil, fmt.Errorf("failed to scan sticker: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate stickers: %w", err)
	}
	return entries, nil
}

// GetEntry retrieves a sticker by id
func (r *CatalogRepository) GetEntry(ctx context.Context, id int) (*models.CatalogEntry, error) {
	var e models.CatalogEntry
	err := db.DB.QueryRowContext(ctx,
		`SELECT id, url, name, category FROM stickers WHERE id = $1`, id,
	).Scan(&e.ID, &e.URL, &e.Name, &e.Category)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("catalog entry %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get sticker %d: %w", id, err)
	}
	return &e, nil
}

// ListCategories retrieves the palette filter tabs in display order
func (r *CatalogRepository) ListCategories(ctx context.Context) ([]models.Category, error) {
	rows, err := db.DB.QueryContext(ctx, `SELECT id, label FROM sticker_categories ORDER BY position ASC, id ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query categories: %w", err)
	}
	defer rows.Close()

	categories := []models.Category{}
	for rows.Next() {
		var c models.Category
		if err := rows.Scan(&c.ID, &c.Label); err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

// ListGarments retrieves the configured garments in display order
func (r *CatalogRepository) ListGarments(ctx context.Context) ([]models.Garment, error) {
	rows, err := db.DB.QueryContext(ctx,
		`SELECT garment_type, name, front_image, back_image FROM garments ORDER BY position ASC, garment_type ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query garments: %w", err)
	}
	defer rows.Close()

	garments := []models.Garment{}
	for rows.Next() {
		var g models.Garment
		if err := rows.Scan(&g.Type, &g.Name, &g.Images.Front, &g.Images.Back); err != nil {
			return nil, fmt.Errorf("failed to scan garment: %w", err)
		}
		garments = append(garments, g)
	}
	return garments, rows.Err()
}

// GetGarment retrieves a garment by type
func (r *CatalogRepository) GetGarment(ctx context.Context, garmentType string) (*models.Garment, error) {
	garmentType = utils.NormalizeGarmentType(garmentType)
	var g models.Garment
	err := db.DB.QueryRowContext(ctx,
		`SELECT garment_type, name, front_image, back_image FROM garments WHERE garment_type = $1`, garmentType,
	).Scan(&g.Type, &g.Name, &g.Images.Front, &g.Images.Back)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("garment %q: %w", garmentType, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get garment %s: %w", garmentType, err)
	}
	return &g, nil
}

// Description retrieves the markdown notes of the catalog, "" when none were seeded
func (r *CatalogRepository) Description(ctx context.Context) (string, error) {
	var value string
	err := db.DB.QueryRowContext(ctx, `SELECT value FROM catalog_meta WHERE key = 'description'`).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to get catalog description: %w", err)
	}
	return value, nil
}
