package repository

import (
	"context"
	"errors"

	"wear-simulator/models"
)

// ErrNotFound is returned when a catalog entry or garment does not exist
var ErrNotFound = errors.New("not found")

// CatalogRepositoryInterface defines the contract for read-only catalog access
type CatalogRepositoryInterface interface {
	ListEntries(ctx context.Context, category string) ([]models.CatalogEntry, error)
	GetEntry(ctx context.Context, id int) (*models.CatalogEntry, error)
	ListCategories(ctx context.Context) ([]models.Category, error)
	ListGarments(ctx context.Context) ([]models.Garment, error)
	GetGarment(ctx context.Context, garmentType string) (*models.Garment, error)
	Description(ctx context.Context) (string, error)
}
