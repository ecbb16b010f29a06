package placement

import "fmt"

// UnitConverter maps millimetres on the real garment to logical canvas pixels.
// The ratio is derived from the logical canvas width, so it does not change with
// the display scale.
type UnitConverter struct {
	pxPerMm float64
}

// NewUnitConverter builds a converter where canvasWidthPx logical pixels span
// referenceWidthMm millimetres of garment.
func NewUnitConverter(canvasWidthPx, referenceWidthMm float64) (UnitConverter, error) {
	if !isFinite(canvasWidthPx) || canvasWidthPx <= 0 {
		return UnitConverter{}, fmt.Errorf("%w: canvas width %v", ErrInvalidReference, canvasWidthPx)
	}
	if !isFinite(referenceWidthMm) || referenceWidthMm <= 0 {
		return UnitConverter{}, fmt.Errorf("%w: garment width %vmm", ErrInvalidReference, referenceWidthMm)
	}
	return UnitConverter{pxPerMm: canvasWidthPx / referenceWidthMm}, nil
}

// PixelsPerMillimetre returns the conversion ratio.
func (u UnitConverter) PixelsPerMillimetre() float64 {
	return u.pxPerMm
}

// ToPixels converts millimetres to logical pixels.
func (u UnitConverter) ToPixels(mm float64) float64 {
	return mm * u.pxPerMm
}

// ToMillimetres converts logical pixels to millimetres.
func (u UnitConverter) ToMillimetres(px float64) float64 {
	return px / u.pxPerMm
}

// SizeToPixels converts a physical width x height in millimetres.
func (u UnitConverter) SizeToPixels(widthMm, heightMm float64) Size {
	return Size{Width: u.ToPixels(widthMm), Height: u.ToPixels(heightMm)}
}
