package repository

import (
	"context"
	"errors"
	"os"
	"testing"

	"wear-simulator/db"
)

// Runs against a real Postgres only when TEST_DATABASE_URL is set.
func TestCatalogRepositoryPostgres(t *testing.T) {
	connStr := os.Getenv("TEST_DATABASE_URL")
	if connStr == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}
	ctx := context.Background()
	if err := db.InitDB(ctx, connStr); err != nil {
		t.Fatalf("InitDB() error = %v", err)
	}
	defer db.CloseDB()

	repo := NewCatalogRepository()
	if err := repo.EnsureSchema(ctx); err != nil {
		t.Fatalf("EnsureSchema() error = %v", err)
	}
	doc, err := DefaultCatalog()
	if err != nil {
		t.Fatal(err)
	}
	// Seeding twice must be idempotent
	for i := 0; i < 2; i++ {
		if err := repo.Seed(ctx, doc); err != nil {
			t.Fatalf("Seed() error = %v", err)
		}
	}

	all, err := repo.ListEntries(ctx, "")
	if err != nil || len(all) < len(doc.Stickers) {
		t.Fatalf("ListEntries() = %d entries, %v", len(all), err)
	}
	mac, _ := repo.ListEntries(ctx, "mac")
	for _, e := range mac {
		if e.Category != "mac" {
			t.Errorf("entry %d in mac filter has category %q", e.ID, e.Category)
		}
	}

	e, err := repo.GetEntry(ctx, 1)
	if err != nil || e.URL != "/stickers/text_00.png" {
		t.Errorf("GetEntry(1) = %+v, %v", e, err)
	}
	if _, err := repo.GetEntry(ctx, -1); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetEntry(-1) error = %v, want ErrNotFound", err)
	}

	g, err := repo.GetGarment(ctx, "trainer")
	if err != nil || g.Images.Front != "/wear/trainer_front.png" {
		t.Errorf("GetGarment(trainer) = %+v, %v", g, err)
	}

	categories, _ := repo.ListCategories(ctx)
	if len(categories) == 0 || categories[0].ID != "all" {
		t.Errorf("categories = %+v", categories)
	}

	desc, err := repo.Description(ctx)
	if err != nil || desc != doc.Description {
		t.Errorf("Description() = %q, %v", desc, err)
	}
}
