// Package placement holds the decoration placement engine: the placed sticker model,
// the millimetre/pixel conversion, viewport scaling, the ordered decoration store,
// the context filter and the selection/transform controller.
//
// Geometry is always expressed in logical canvas pixels. Display scaling only affects
// presentation and never touches stored coordinates.
package placement

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

var (
	// ErrInvalidReference is returned when a physical reference (canvas width or garment
	// width) is not a positive finite number.
	ErrInvalidReference = errors.New("invalid physical reference")
	// ErrUnknownViewSide is returned by ParseViewSide for anything other than front/back.
	ErrUnknownViewSide = errors.New("unknown view side")
)

// GarmentType identifies a base garment (e.g. "hoodie", "trainer").
type GarmentType string

// ViewSide is the side of the garment shown on the canvas.
type ViewSide string

const (
	ViewFront ViewSide = "front"
	ViewBack  ViewSide = "back"
)

// ParseViewSide normalizes a view side name.
func ParseViewSide(s string) (ViewSide, error) {
	switch ViewSide(strings.ToLower(strings.TrimSpace(s))) {
	case ViewFront:
		return ViewFront, nil
	case ViewBack:
		return ViewBack, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownViewSide, s)
}

// Context is the (garment type, view side) pair that scopes which decorations are visible.
type Context struct {
	GarmentType GarmentType `json:"garmentType"`
	ViewSide    ViewSide    `json:"viewSide"`
}

func (c Context) String() string {
	return fmt.Sprintf("%s/%s", c.GarmentType, c.ViewSide)
}

// Vec2 is a point or a scale pair.
type Vec2 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Sub returns the difference of two vectors.
func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{X: v.X - o.X, Y: v.Y - o.Y} }

// Mul returns the vector scaled by f.
func (v Vec2) Mul(f float64) Vec2 { return Vec2{X: v.X * f, Y: v.Y * f} }

func (v Vec2) finite() bool { return isFinite(v.X) && isFinite(v.Y) }

// Size is a width/height pair in logical pixels.
type Size struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Half returns the size halved on both axes, as an offset.
func (s Size) Half() Vec2 { return Vec2{X: s.Width / 2, Y: s.Height / 2} }

// Decoration is one placed sticker.
type Decoration struct {
	ID       string  `json:"id"`
	AssetRef string  `json:"assetRef"`
	Position Vec2    `json:"position"`
	Size     Size    `json:"size"`
	Rotation float64 `json:"rotation"`
	Scale    Vec2    `json:"scale"`
	Context  Context `json:"context"`
}

// ScaledSize is the size actually covered on the canvas (size times scale).
func (d Decoration) ScaledSize() Size {
	return Size{Width: d.Size.Width * d.Scale.X, Height: d.Size.Height * d.Scale.Y}
}

// Patch carries the mutable fields of an update. Nil fields are left untouched.
type Patch struct {
	Position *Vec2
	Rotation *float64
	Scale    *Vec2
	Size     *Size
}

// NormalizeRotation wraps an angle in degrees into [0, 360).
func NormalizeRotation(deg float64) float64 {
	if !isFinite(deg) {
		return 0
	}
	r := math.Mod(deg, 360)
	if r < 0 {
		r += 360
	}
	if r >= 360 {
		r = 0
	}
	return r
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
