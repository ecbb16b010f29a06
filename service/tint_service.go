package service

import (
	"fmt"
	"image"
	"image/color"

	"github.com/disintegration/imaging"

	"wear-simulator/models"
	"wear-simulator/utils"
)

// ApplyTint paints fabric over the opaque pixels of a garment image only.
// Transparent pixels stay transparent and alpha is never changed.
// A swatch with opacity 0 (white) returns an untouched copy.
func ApplyTint(img image.Image, fabric models.FabricColor) (*image.NRGBA, error) {
	if fabric.Opacity <= 0 {
		return imaging.Clone(img), nil
	}
	tint, err := utils.ParseHexColor(fabric.Hex)
	if err != nil {
		return nil, fmt.Errorf("failed to apply tint %s: %w", fabric.Code, err)
	}
	op := fabric.Opacity
	if op > 1 {
		op = 1
	}

	mix := func(c, t uint8) uint8 {
		return uint8(float64(c)*(1-op) + float64(t)*op + 0.5)
	}
	return imaging.AdjustFunc(img, func(c color.NRGBA) color.NRGBA {
		if c.A == 0 {
			return c
		}
		return color.NRGBA{
			R: mix(c.R, tint.R),
			G: mix(c.G, tint.G),
			B: mix(c.B, tint.B),
			A: c.A,
		}
	}), nil
}
