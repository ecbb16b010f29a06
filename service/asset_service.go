package service

import (
	"errors"
	"fmt"
	"image"
	"io/fs"
	"log"
	"path"
	"strings"
	"sync"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/webp"
)

// ErrAssetNotFound is returned when an asset reference does not resolve to a file
var ErrAssetNotFound = errors.New("asset not found")

// AssetServiceInterface defines the contract for loading sticker and garment images
type AssetServiceInterface interface {
	Load(ref string) (image.Image, error)
	ReadRaw(ref string) ([]byte, error)
}

// AssetService decodes images from an asset directory and keeps them in memory
type AssetService struct {
	fsys  fs.FS
	mu    sync.RWMutex
	cache map[string]image.Image
}

// Ensure AssetService implements AssetServiceInterface
var _ AssetServiceInterface = (*AssetService)(nil)

// NewAssetService creates an AssetService reading from fsys (usually os.DirFS(ASSET_DIR))
func NewAssetService(fsys fs.FS) *AssetService {
	return &AssetService{
		fsys:  fsys,
		cache: make(map[string]image.Image),
	}
}

// assetPath maps an asset reference such as "/stickers/a.png" to a path inside the asset FS
func assetPath(ref string) (string, error) {
	p := strings.TrimPrefix(path.Clean("/"+strings.TrimSpace(ref)), "/")
	if p == "" || p == "." || !fs.ValidPath(p) {
		return "", fmt.Errorf("invalid asset reference %q", ref)
	}
	return p, nil
}

// ReadRaw returns the undecoded bytes of an asset
func (s *AssetService) ReadRaw(ref string) ([]byte, error) {
	p, err := assetPath(ref)
	if err != nil {
		return nil, err
	}
	data, err := fs.ReadFile(s.fsys, p)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%s: %w", ref, ErrAssetNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read asset %s: %w", ref, err)
	}
	return data, nil
}

// Load decodes an asset, serving repeated loads from memory
func (s *AssetService) Load(ref string) (image.Image, error) {
	p, err := assetPath(ref)
	if err != nil {
		return nil, err
	}

	s.mu.RLock()
	img, ok := s.cache[p]
	s.mu.RUnlock()
	if ok {
		return img, nil
	}

	f, err := s.fsys.Open(p)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%s: %w", ref, ErrAssetNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open asset %s: %w", ref, err)
	}
	defer f.Close()

	img, err = imaging.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode asset %s: %w", ref, err)
	}
	log.Printf("📸 Asset decoded: %s bounds=%v", ref, img.Bounds())

	s.mu.Lock()
	s.cache[p] = img
	s.mu.Unlock()
	return img, nil
}
