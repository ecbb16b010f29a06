package config

import (
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"wear-simulator/placement"
)

// Catalog sources
const (
	CatalogSourceFile     = "file"
	CatalogSourcePostgres = "postgres"
)

// Config holds the runtime configuration read from the environment
type Config struct {
	Port          string
	BaseURL       string
	AssetDir      string
	CacheDir      string
	CatalogSource string
	CatalogFile   string

	CanvasWidth      float64
	CanvasHeight     float64
	GarmentWidthMm   float64
	StickerWidthMm   float64
	StickerHeightMm  float64
	DefaultStickerPx float64
	PlacementPolicy  placement.Mode
	TintOverlay      bool
	SafetyMargin     float64
	SessionIdle      time.Duration
}

// Load reads the configuration from environment variables, applying defaults
func Load() (*Config, error) {
	cfg := &Config{
		Port:          normalizePort(getEnv("PORT", "8080")),
		AssetDir:      getEnv("ASSET_DIR", "public"),
		CacheDir:      getEnv("CACHE_DIR", "cache/images"),
		CatalogSource: strings.ToLower(getEnv("CATALOG_SOURCE", CatalogSourceFile)),
		CatalogFile:   os.Getenv("CATALOG_FILE"),
	}
	cfg.BaseURL = getEnv("BASE_URL", "http://localhost:"+cfg.Port)

	var err error
	floats := []struct {
		key  string
		def  float64
		dest *float64
	}{
		{"CANVAS_WIDTH", 500, &cfg.CanvasWidth},
		{"CANVAS_HEIGHT", 600, &cfg.CanvasHeight},
		{"GARMENT_WIDTH_MM", 500, &cfg.GarmentWidthMm},
		{"STICKER_WIDTH_MM", 45, &cfg.StickerWidthMm},
		{"STICKER_HEIGHT_MM", 60, &cfg.StickerHeightMm},
		{"DEFAULT_STICKER_PX", 100, &cfg.DefaultStickerPx},
		{"SAFETY_MARGIN", placement.DefaultSafetyMargin, &cfg.SafetyMargin},
	}
	for _, f := range floats {
		if *f.dest, err = getFloat(f.key, f.def); err != nil {
			return nil, err
		}
	}

	if cfg.PlacementPolicy, err = placement.ParseMode(os.Getenv("PLACEMENT_POLICY")); err != nil {
		return nil, fmt.Errorf("PLACEMENT_POLICY: %w", err)
	}

	// Tint defaults on for free-transform, off for size-locked
	tintDefault := cfg.PlacementPolicy == placement.ModeFreeTransform
	if cfg.TintOverlay, err = getBool("TINT_OVERLAY", tintDefault); err != nil {
		return nil, err
	}

	idleMinutes, err := getFloat("SESSION_IDLE_MINUTES", 120)
	if err != nil {
		return nil, err
	}
	cfg.SessionIdle = time.Duration(idleMinutes * float64(time.Minute))

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects configurations the placement engine cannot start with
func (c *Config) Validate() error {
	positive := map[string]float64{
		"CANVAS_WIDTH":       c.CanvasWidth,
		"CANVAS_HEIGHT":      c.CanvasHeight,
		"GARMENT_WIDTH_MM":   c.GarmentWidthMm,
		"STICKER_WIDTH_MM":   c.StickerWidthMm,
		"STICKER_HEIGHT_MM":  c.StickerHeightMm,
		"DEFAULT_STICKER_PX": c.DefaultStickerPx,
	}
	for key, v := range positive {
		if !(v > 0) || math.IsInf(v, 0) {
			return fmt.Errorf("%s must be a positive number, got %v", key, v)
		}
	}
	if !(c.SafetyMargin > 0 && c.SafetyMargin <= 1) {
		return fmt.Errorf("SAFETY_MARGIN must be in (0, 1], got %v", c.SafetyMargin)
	}
	if c.SessionIdle <= 0 {
		return fmt.Errorf("SESSION_IDLE_MINUTES must be positive")
	}
	switch c.CatalogSource {
	case CatalogSourceFile, CatalogSourcePostgres:
	default:
		return fmt.Errorf("CATALOG_SOURCE must be %q or %q, got %q", CatalogSourceFile, CatalogSourcePostgres, c.CatalogSource)
	}
	return nil
}

// Settings converts the configuration into placement controller settings
func (c *Config) Settings() placement.Settings {
	return placement.Settings{
		Canvas:           placement.Canvas{Width: c.CanvasWidth, Height: c.CanvasHeight},
		ReferenceWidthMm: c.GarmentWidthMm,
		StickerSizeMm:    placement.Size{Width: c.StickerWidthMm, Height: c.StickerHeightMm},
		DefaultStickerPx: placement.Size{Width: c.DefaultStickerPx, Height: c.DefaultStickerPx},
		SafetyMargin:     c.SafetyMargin,
		Policy:           placement.Policy{Mode: c.PlacementPolicy, TintOverlay: c.TintOverlay},
	}
}

// Addr returns the listen address on all interfaces
func (c *Config) Addr() string {
	return "0.0.0.0:" + c.Port
}

func getEnv(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func getFloat(key string, def float64) (float64, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, raw, err)
	}
	return v, nil
}

func getBool(key string, def bool) (bool, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("invalid %s %q: %w", key, raw, err)
	}
	return v, nil
}

// Remove leading colon if present (PORT from Render doesn't include it)
func normalizePort(port string) string {
	return strings.TrimPrefix(port, ":")
}
