package config

import (
	"testing"
	"time"

	"wear-simulator/placement"
)

var configKeys = []string{
	"PORT", "BASE_URL", "ASSET_DIR", "CACHE_DIR", "CATALOG_SOURCE", "CATALOG_FILE",
	"CANVAS_WIDTH", "CANVAS_HEIGHT", "GARMENT_WIDTH_MM", "STICKER_WIDTH_MM", "STICKER_HEIGHT_MM",
	"DEFAULT_STICKER_PX", "PLACEMENT_POLICY", "TINT_OVERLAY", "SAFETY_MARGIN", "SESSION_IDLE_MINUTES",
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range configKeys {
		t.Setenv(k, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Port != "8080" || cfg.BaseURL != "http://localhost:8080" {
		t.Errorf("port/baseURL = %q/%q", cfg.Port, cfg.BaseURL)
	}
	if cfg.CanvasWidth != 500 || cfg.CanvasHeight != 600 || cfg.GarmentWidthMm != 500 {
		t.Errorf("canvas = %vx%v, garment %vmm", cfg.CanvasWidth, cfg.CanvasHeight, cfg.GarmentWidthMm)
	}
	if cfg.StickerWidthMm != 45 || cfg.StickerHeightMm != 60 {
		t.Errorf("sticker = %vx%vmm", cfg.StickerWidthMm, cfg.StickerHeightMm)
	}
	if cfg.PlacementPolicy != placement.ModeSizeLocked || cfg.TintOverlay {
		t.Errorf("policy = %v tint = %v", cfg.PlacementPolicy, cfg.TintOverlay)
	}
	if cfg.SafetyMargin != placement.DefaultSafetyMargin {
		t.Errorf("SafetyMargin = %v", cfg.SafetyMargin)
	}
	if cfg.SessionIdle != 120*time.Minute {
		t.Errorf("SessionIdle = %v", cfg.SessionIdle)
	}
	if cfg.CatalogSource != CatalogSourceFile {
		t.Errorf("CatalogSource = %q", cfg.CatalogSource)
	}
}

func TestLoadOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", ":9000")
	t.Setenv("PLACEMENT_POLICY", "free-transform")
	t.Setenv("DEFAULT_STICKER_PX", "80")
	t.Setenv("SESSION_IDLE_MINUTES", "1.5")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Port != "9000" || cfg.Addr() != "0.0.0.0:9000" {
		t.Errorf("Port = %q Addr = %q", cfg.Port, cfg.Addr())
	}
	if !cfg.TintOverlay {
		t.Error("free-transform should default the tint overlay on")
	}
	if cfg.SessionIdle != 90*time.Second {
		t.Errorf("SessionIdle = %v", cfg.SessionIdle)
	}

	s := cfg.Settings()
	if s.DefaultStickerPx != (placement.Size{Width: 80, Height: 80}) {
		t.Errorf("DefaultStickerPx = %+v", s.DefaultStickerPx)
	}
	if !s.Policy.ResizeEnabled() || !s.Policy.TintOverlay {
		t.Errorf("Policy = %+v", s.Policy)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
	}{
		{"non numeric width", "CANVAS_WIDTH", "wide"},
		{"zero reference width", "GARMENT_WIDTH_MM", "0"},
		{"negative sticker", "STICKER_HEIGHT_MM", "-60"},
		{"margin above one", "SAFETY_MARGIN", "1.2"},
		{"unknown policy", "PLACEMENT_POLICY", "stretchy"},
		{"bad bool", "TINT_OVERLAY", "maybe"},
		{"unknown catalog source", "CATALOG_SOURCE", "ftp"},
		{"zero idle", "SESSION_IDLE_MINUTES", "0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(tt.key, tt.val)
			if _, err := Load(); err == nil {
				t.Errorf("Load() with %s=%q expected error", tt.key, tt.val)
			}
		})
	}
}
