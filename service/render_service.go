package service

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"io"
	"log"
	"math"
	"strings"

	"github.com/HugoSmits86/nativewebp"
	"github.com/disintegration/imaging"

	"wear-simulator/models"
	"wear-simulator/placement"
)

// Format is an output encoding for rendered previews
type Format string

const (
	FormatPNG  Format = "png"
	FormatJPEG Format = "jpeg"
	FormatWebP Format = "webp"
)

const previewJPEGQuality = 85

// ParseFormat maps a query value to a Format, defaulting to PNG
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "png":
		return FormatPNG, nil
	case "jpg", "jpeg":
		return FormatJPEG, nil
	case "webp":
		return FormatWebP, nil
	}
	return "", fmt.Errorf("unsupported image format %q", s)
}

// ContentType returns the MIME type of the format
func (f Format) ContentType() string {
	switch f {
	case FormatJPEG:
		return "image/jpeg"
	case FormatWebP:
		return "image/webp"
	}
	return "image/png"
}

// Encode writes img in the given format
func Encode(w io.Writer, img image.Image, format Format) error {
	var err error
	switch format {
	case FormatJPEG:
		err = imaging.Encode(w, img, imaging.JPEG, imaging.JPEGQuality(previewJPEGQuality))
	case FormatWebP:
		err = nativewebp.Encode(w, img, nil)
	default:
		err = imaging.Encode(w, img, imaging.PNG)
	}
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", format, err)
	}
	return nil
}

// RenderRequest describes one frame of the design canvas
type RenderRequest struct {
	Canvas      placement.Canvas
	BaseImage   string              // Garment image for the active context, "" for none
	Tint        *models.FabricColor // nil when the tint overlay is off
	Decorations []placement.Decoration
	// Scale is the display scale; 0 or 1 renders at logical size
	Scale float64
}

// RenderService composes previews: garment, then tint, then decorations in paint order
type RenderService struct {
	assets AssetServiceInterface
}

// NewRenderService creates a new RenderService
func NewRenderService(assets AssetServiceInterface) *RenderService {
	return &RenderService{assets: assets}
}

// Compose renders the request. Assets that are not available yet render nothing.
func (s *RenderService) Compose(req RenderRequest) (*image.NRGBA, error) {
	w := int(math.Round(req.Canvas.Width))
	h := int(math.Round(req.Canvas.Height))
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("invalid canvas %vx%v", req.Canvas.Width, req.Canvas.Height)
	}
	out := imaging.New(w, h, color.Transparent)

	if req.BaseImage != "" {
		base, err := s.load(req.BaseImage)
		if err != nil {
			return nil, err
		}
		if base != nil {
			garment := imaging.Resize(base, w, h, imaging.Lanczos)
			if req.Tint != nil {
				if garment, err = ApplyTint(garment, *req.Tint); err != nil {
					return nil, err
				}
			}
			out = imaging.Overlay(out, garment, image.Pt(0, 0), 1.0)
		}
	}

	for _, d := range req.Decorations {
		img, err := s.load(d.AssetRef)
		if err != nil {
			return nil, err
		}
		if img == nil {
			continue
		}
		sprite, at := decorationSprite(img, d)
		if sprite == nil {
			continue
		}
		out = imaging.Overlay(out, sprite, at, 1.0)
	}

	if req.Scale > 0 && req.Scale < 1 {
		dw := int(math.Round(float64(w) * req.Scale))
		if dw < 1 {
			dw = 1
		}
		out = imaging.Resize(out, dw, 0, imaging.Lanczos)
	}
	return out, nil
}

// load returns nil, nil for assets that do not exist
func (s *RenderService) load(ref string) (image.Image, error) {
	img, err := s.assets.Load(ref)
	if errors.Is(err, ErrAssetNotFound) {
		log.Printf("⚠️  Asset not available, skipping: %s", ref)
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return img, nil
}

// decorationSprite scales, mirrors and rotates a decoration image, returning it with the
// canvas point its top-left corner is pasted at
func decorationSprite(img image.Image, d placement.Decoration) (*image.NRGBA, image.Point) {
	size := d.ScaledSize()
	sw := int(math.Round(math.Abs(size.Width)))
	sh := int(math.Round(math.Abs(size.Height)))
	if sw < 1 || sh < 1 {
		return nil, image.Point{}
	}

	sprite := imaging.Resize(img, sw, sh, imaging.Lanczos)
	if d.Scale.X < 0 {
		sprite = imaging.FlipH(sprite)
	}
	if d.Scale.Y < 0 {
		sprite = imaging.FlipV(sprite)
	}
	if d.Rotation != 0 {
		// imaging rotates counter-clockwise; canvas rotation is clockwise
		sprite = imaging.Rotate(sprite, -d.Rotation, color.Transparent)
	}

	min, _ := d.Bounds()
	return sprite, image.Pt(int(math.Round(min.X)), int(math.Round(min.Y)))
}
