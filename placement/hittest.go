package placement

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// Affine returns the 3x3 matrix mapping the decoration's local frame (origin at its
// top-left, unscaled size units) to logical canvas pixels: translate * rotate * scale.
// Rotation is clockwise on screen, matching a y-down canvas.
func (d Decoration) Affine() *mat.Dense {
	rad := d.Rotation * math.Pi / 180
	cos, sin := math.Cos(rad), math.Sin(rad)
	return mat.NewDense(3, 3, []float64{
		d.Scale.X * cos, -d.Scale.Y * sin, d.Position.X,
		d.Scale.X * sin, d.Scale.Y * cos, d.Position.Y,
		0, 0, 1,
	})
}

// Corners returns the four canvas-space corners in the order top-left, top-right,
// bottom-right, bottom-left of the unrotated shape.
func (d Decoration) Corners() [4]Vec2 {
	m := d.Affine()
	local := [4]Vec2{
		{0, 0},
		{d.Size.Width, 0},
		{d.Size.Width, d.Size.Height},
		{0, d.Size.Height},
	}
	var out [4]Vec2
	for i, p := range local {
		out[i] = apply(m, p)
	}
	return out
}

// Bounds returns the axis-aligned bounding box of the transformed shape.
func (d Decoration) Bounds() (min, max Vec2) {
	corners := d.Corners()
	min, max = corners[0], corners[0]
	for _, c := range corners[1:] {
		min.X = math.Min(min.X, c.X)
		min.Y = math.Min(min.Y, c.Y)
		max.X = math.Max(max.X, c.X)
		max.Y = math.Max(max.Y, c.Y)
	}
	return min, max
}

// Contains reports whether canvas point p lies on the decoration's rendered shape.
// Degenerate (zero-scale) shapes contain nothing.
func (d Decoration) Contains(p Vec2) bool {
	var inv mat.Dense
	if err := inv.Inverse(d.Affine()); err != nil {
		return false
	}
	local := apply(&inv, p)
	return local.X >= 0 && local.X <= d.Size.Width && local.Y >= 0 && local.Y <= d.Size.Height
}

// HitTest returns the topmost decoration under p. visible must be in paint order;
// the last painted shape wins.
func HitTest(visible []Decoration, p Vec2) (Decoration, bool) {
	for i := len(visible) - 1; i >= 0; i-- {
		if visible[i].Contains(p) {
			return visible[i], true
		}
	}
	return Decoration{}, false
}

func apply(m mat.Matrix, p Vec2) Vec2 {
	var out mat.VecDense
	out.MulVec(m, mat.NewVecDense(3, []float64{p.X, p.Y, 1}))
	return Vec2{X: out.AtVec(0), Y: out.AtVec(1)}
}
