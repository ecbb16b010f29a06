package models

import "wear-simulator/placement"

// AddDecorationRequest represents the request body for placing a sticker
// Example: {"catalogId": 14}
type AddDecorationRequest struct {
	CatalogID int `json:"catalogId"`
}

// PointerRequest represents a pointer-down on the canvas
// Example: {"x": 250, "y": 300, "display": false}
// When display is true, x/y are measured on the displayed (scaled) canvas
type PointerRequest struct {
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
	Display bool    `json:"display,omitempty"`
}

// DragEndRequest represents the final position reported when a drag ends
// Example: {"decorationId": "sticker-...", "x": 120.5, "y": 80}
type DragEndRequest struct {
	DecorationID string  `json:"decorationId"`
	X            float64 `json:"x"`
	Y            float64 `json:"y"`
}

// TransformEndRequest represents the live values reported when a rotate/resize ends
// Example: {"decorationId": "sticker-...", "x": 120, "y": 80, "rotation": 30, "scaleX": 1, "scaleY": 1}
type TransformEndRequest struct {
	DecorationID string   `json:"decorationId"`
	X            float64  `json:"x"`
	Y            float64  `json:"y"`
	Rotation     float64  `json:"rotation"`
	ScaleX       *float64 `json:"scaleX,omitempty"`
	ScaleY       *float64 `json:"scaleY,omitempty"`
}

// KeyRequest represents a key press forwarded from the client
// Example: {"key": "Delete"}
type KeyRequest struct {
	Key string `json:"key"`
}

// ContextRequest represents a garment/view switch
// Example: {"garmentType": "trainer", "viewSide": "back"}
// Either field may be omitted to keep its current value
type ContextRequest struct {
	GarmentType string `json:"garmentType,omitempty"`
	ViewSide    string `json:"viewSide,omitempty"`
}

// ViewportRequest represents a viewport width measurement
// Example: {"width": 375}
type ViewportRequest struct {
	Width float64 `json:"width"`
}

// TintRequest represents a fabric color choice
// Example: {"color": "navy"}
type TintRequest struct {
	Color string `json:"color"`
}

// DesignState represents the full state of a design session
// Example response:
// {
//   "id": "0b6f...",
//   "policy": {"mode": "size-locked", "tintOverlay": false},
//   "rotatable": true,
//   "resizable": false,
//   "canvas": {"width": 500, "height": 600},
//   "pixelsPerMm": 1,
//   "displayScale": 0.675,
//   "context": {"garmentType": "hoodie", "viewSide": "front"},
//   "baseImage": "/wear/hoodie_front.png",
//   "selection": "sticker-...",
//   "decorations": [...]
// }
type DesignState struct {
	ID           string                 `json:"id"`
	Policy       placement.Policy       `json:"policy"`
	Rotatable    bool                   `json:"rotatable"` // Rotate handle shown on the selection
	Resizable    bool                   `json:"resizable"` // Resize handles shown on the selection
	Canvas       placement.Canvas       `json:"canvas"`
	PixelsPerMm  float64                `json:"pixelsPerMm"`
	DisplayScale float64                `json:"displayScale"`
	Context      placement.Context      `json:"context"`
	BaseImage    string                 `json:"baseImage"`
	Tint         *FabricColor           `json:"tint,omitempty"`
	Selection    *string                `json:"selection"`
	Decorations  []placement.Decoration `json:"decorations"`
	Total        int                    `json:"total"` // Decorations across every garment/view
}
