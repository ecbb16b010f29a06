package models

// FabricColor represents a tint swatch applied over the base garment
type FabricColor struct {
	Code    string  `json:"code"`    // e.g., "navy"
	Name    string  `json:"name"`    // Human-readable name
	Hex     string  `json:"hex"`     // e.g., "#1F2A44"
	Opacity float64 `json:"opacity"` // 0 disables the tint
}
