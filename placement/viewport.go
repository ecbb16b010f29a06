package placement

import "math"

const (
	// DefaultSafetyMargin reserves layout padding around the canvas.
	DefaultSafetyMargin = 0.9
	// MinDisplayScale is returned for collapsed or invalid viewport measurements only.
	MinDisplayScale = 0.01
)

// ViewportScaler fits the fixed logical canvas into the available viewport width.
type ViewportScaler struct {
	LogicalWidth float64
	SafetyMargin float64
}

// NewViewportScaler returns a scaler for a canvas of logicalWidth pixels. A margin
// outside (0, 1] falls back to DefaultSafetyMargin.
func NewViewportScaler(logicalWidth, safetyMargin float64) ViewportScaler {
	if !isFinite(safetyMargin) || safetyMargin <= 0 || safetyMargin > 1 {
		safetyMargin = DefaultSafetyMargin
	}
	return ViewportScaler{LogicalWidth: logicalWidth, SafetyMargin: safetyMargin}
}

// Scale returns min(1, available*margin/logicalWidth), never upscaling. Zero, negative
// or NaN widths return MinDisplayScale.
func (s ViewportScaler) Scale(availableWidth float64) float64 {
	if math.IsNaN(availableWidth) || availableWidth <= 0 || !isFinite(s.LogicalWidth) || s.LogicalWidth <= 0 {
		return MinDisplayScale
	}
	scale := availableWidth * s.SafetyMargin / s.LogicalWidth
	if scale >= 1 {
		return 1
	}
	if scale <= 0 {
		return MinDisplayScale
	}
	return scale
}

// ToLogical maps a point on the displayed canvas back to logical pixels.
func ToLogical(displayPoint Vec2, displayScale float64) Vec2 {
	if !isFinite(displayScale) || displayScale <= 0 {
		return displayPoint
	}
	return displayPoint.Mul(1 / displayScale)
}
