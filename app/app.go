package app

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"wear-simulator/app/controller"
	"wear-simulator/app/router"
	"wear-simulator/config"
	"wear-simulator/db"
	"wear-simulator/placement"
	"wear-simulator/repository"
	"wear-simulator/service"
)

// App holds the wired application
type App struct {
	Handler  http.Handler
	Sessions *service.SessionService
	Catalog  *service.CatalogService
}

// OpenCatalog opens the catalog source selected by the configuration
func OpenCatalog(ctx context.Context, cfg *config.Config) (repository.CatalogRepositoryInterface, error) {
	switch cfg.CatalogSource {
	case config.CatalogSourcePostgres:
		// Initialize database connection
		if err := db.InitDB(ctx, ""); err != nil {
			return nil, fmt.Errorf("failed to initialize database: %w", err)
		}
		repo := repository.NewCatalogRepository()
		if err := repo.EnsureSchema(ctx); err != nil {
			return nil, err
		}
		return repo, nil
	default:
		return repository.NewCatalogFileRepository(cfg.CatalogFile)
	}
}

// NewCatalogService wires the catalog service on top of a catalog repository
func NewCatalogService(cfg *config.Config, catalog repository.CatalogRepositoryInterface, assets service.AssetServiceInterface) *service.CatalogService {
	optimizer := service.NewImageOptimizer(cfg.CacheDir)
	return service.NewCatalogService(catalog, assets, optimizer, cfg.StickerWidthMm, cfg.StickerHeightMm)
}

// initialContext is the first configured garment, front side
func initialContext(ctx context.Context, catalog repository.CatalogRepositoryInterface) (placement.Context, error) {
	garments, err := catalog.ListGarments(ctx)
	if err != nil {
		return placement.Context{}, err
	}
	if len(garments) == 0 {
		return placement.Context{}, fmt.Errorf("catalog has no garments configured")
	}
	return placement.Context{GarmentType: placement.GarmentType(garments[0].Type), ViewSide: placement.ViewFront}, nil
}

// Initialize initializes the application
func Initialize(ctx context.Context, cfg *config.Config) (*App, error) {
	catalog, err := OpenCatalog(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return Build(ctx, cfg, catalog)
}

// Build wires services, controllers and routes around an opened catalog
func Build(ctx context.Context, cfg *config.Config, catalog repository.CatalogRepositoryInterface) (*App, error) {
	settings := cfg.Settings()
	// Fail at startup on a bad physical reference
	if _, err := placement.NewController(settings, placement.Context{}); err != nil {
		return nil, fmt.Errorf("invalid placement settings: %w", err)
	}

	initial, err := initialContext(ctx, catalog)
	if err != nil {
		return nil, err
	}

	assetFS := os.DirFS(cfg.AssetDir)
	assets := service.NewAssetService(assetFS)
	catalogService := NewCatalogService(cfg, catalog, assets)
	sessions := service.NewSessionService(settings, initial, cfg.SessionIdle)
	designService := service.NewDesignService(sessions, catalog, service.NewRenderService(assets))

	// Create controllers
	controllers := &router.Controllers{
		Catalog: controller.NewCatalogController(catalogService),
		Design:  controller.NewDesignController(designService),
	}

	return &App{
		Handler:  router.NewHandler(controllers, assetFS),
		Sessions: sessions,
		Catalog:  catalogService,
	}, nil
}
