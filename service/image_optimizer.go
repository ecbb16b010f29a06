package service

import (
	"bytes"
	"fmt"
	"image"
	"log"
	"os"
	"path/filepath"

	"github.com/HugoSmits86/nativewebp"
	"github.com/disintegration/imaging"
)

const (
	// Size settings (max dimension)
	maxSizeThumb  = 120
	maxSizeMedium = 300
)

// ImageOptimizer produces palette thumbnails and keeps them in a disk cache
type ImageOptimizer struct {
	cacheDir string
}

// NewImageOptimizer creates an ImageOptimizer caching under cacheDir
func NewImageOptimizer(cacheDir string) *ImageOptimizer {
	return &ImageOptimizer{cacheDir: cacheDir}
}

// EnsureCacheDir ensures the cache directory exists, creates it if it doesn't
func (o *ImageOptimizer) EnsureCacheDir() error {
	if err := os.MkdirAll(o.cacheDir, 0755); err != nil {
		return fmt.Errorf("failed to create cache directory: %w", err)
	}
	return nil
}

// GetCachePath returns the cache file path for a given catalog entry and size
func (o *ImageOptimizer) GetCachePath(entryID int, size string) string {
	filename := fmt.Sprintf("sticker_%d_%s.webp", entryID, size)
	return filepath.Join(o.cacheDir, filename)
}

// CacheExists checks if a cached image exists
func CacheExists(cachePath string) bool {
	_, err := os.Stat(cachePath)
	return err == nil
}

// ReadFromCache reads an image from the cache
func ReadFromCache(cachePath string) ([]byte, error) {
	data, err := os.ReadFile(cachePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read from cache: %w", err)
	}
	return data, nil
}

// SaveToCache saves an image to the cache
func SaveToCache(cachePath string, imageData []byte) error {
	// Ensure parent directory exists
	dir := filepath.Dir(cachePath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create cache directory: %w", err)
	}

	if err := os.WriteFile(cachePath, imageData, 0644); err != nil {
		return fmt.Errorf("failed to write to cache: %w", err)
	}

	log.Printf("✓ Image cached: %s", cachePath)
	return nil
}

// Thumbnail returns the cached thumbnail for an entry, generating it from raw on a miss
func (o *ImageOptimizer) Thumbnail(entryID int, size string, raw func() ([]byte, error)) ([]byte, error) {
	cachePath := o.GetCachePath(entryID, size)
	if CacheExists(cachePath) {
		return ReadFromCache(cachePath)
	}

	data, err := raw()
	if err != nil {
		return nil, err
	}
	optimized, err := OptimizeImage(data, size)
	if err != nil {
		return nil, err
	}
	if err := SaveToCache(cachePath, optimized); err != nil {
		// A cache failure must not block the response
		log.Printf("⚠️  %v", err)
	}
	return optimized, nil
}

// OptimizeImage shrinks a sticker to fit the palette and encodes it as lossless WebP,
// keeping transparency
// imageData: raw image bytes (PNG, JPEG, WebP, etc.)
// size: "thumb" or "medium"
func OptimizeImage(imageData []byte, size string) ([]byte, error) {
	img, err := imaging.Decode(bytes.NewReader(imageData))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	var maxDim int
	switch size {
	case "thumb":
		maxDim = maxSizeThumb
	case "medium":
		maxDim = maxSizeMedium
	default:
		maxDim = maxSizeThumb
		log.Printf("⚠️  Unknown size '%s', defaulting to thumb", size)
	}

	// Resize image if needed, maintaining aspect ratio
	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()

	var resizedImg image.Image = img
	if width > maxDim || height > maxDim {
		if width > height {
			resizedImg = imaging.Resize(img, maxDim, 0, imaging.Lanczos)
		} else {
			resizedImg = imaging.Resize(img, 0, maxDim, imaging.Lanczos)
		}
		log.Printf("🔄 Resizing image: %dx%d -> %v", width, height, resizedImg.Bounds().Size())
	}

	var buf bytes.Buffer
	if err := nativewebp.Encode(&buf, resizedImg, nil); err != nil {
		return nil, fmt.Errorf("failed to encode to WebP: %w", err)
	}

	log.Printf("✓ Image optimized: size=%s, output_size=%d bytes", size, buf.Len())
	return buf.Bytes(), nil
}
