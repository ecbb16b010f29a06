package models

// CatalogEntry represents a single sticker available in the palette
type CatalogEntry struct {
	ID       int    `json:"id" yaml:"id"`
	URL      string `json:"url" yaml:"url"`           // Asset reference (e.g., "/stickers/text_00.png")
	Name     string `json:"name" yaml:"name"`         // Display name
	Category string `json:"category" yaml:"category"` // Category tag (e.g., "text")
}

// Category represents a palette filter tab
type Category struct {
	ID    string `json:"id" yaml:"id"`
	Label string `json:"label" yaml:"label"`
}

// CategoryAll is the pseudo-category that matches every entry
const CategoryAll = "all"

// GarmentImages holds the base image asset for each view side of a garment
type GarmentImages struct {
	Front string `json:"front" yaml:"front"`
	Back  string `json:"back" yaml:"back"`
}

// ForSide returns the base image for a view side, or "" when none is configured
func (g GarmentImages) ForSide(side string) string {
	switch side {
	case "front":
		return g.Front
	case "back":
		return g.Back
	}
	return ""
}

// Garment represents a base garment with its images
type Garment struct {
	Type   string        `json:"type" yaml:"type"`
	Name   string        `json:"name" yaml:"name"`
	Images GarmentImages `json:"images" yaml:"images"`
}

// CatalogDocument is the on-disk (YAML) form of the whole catalog
type CatalogDocument struct {
	Description string         `yaml:"description"` // Markdown shown on the sticker sheet
	Categories  []Category     `yaml:"categories"`
	Stickers    []CatalogEntry `yaml:"stickers"`
	Garments    []Garment      `yaml:"garments"`
}

// SheetItem is one sticker printed on the sheet
type SheetItem struct {
	CatalogEntry
	ImageSrc string `json:"imageSrc"` // URL or data URI used by the page
}

// SheetData represents the data structure passed to the sticker sheet template
type SheetData struct {
	Category    string        `json:"category"`
	Pages       [][]SheetItem `json:"pages"`
	WidthMm     float64       `json:"widthMm"`  // Printed sticker width
	HeightMm    float64       `json:"heightMm"` // Printed sticker height
	Description string        `json:"description"`
	Total       int           `json:"total"`
}
