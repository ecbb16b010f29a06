package utils

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"wear-simulator/models"
)

// fabricPalette is the fixed tint palette, in swatch display order.
// White keeps the garment untouched, so its opacity is 0.
var fabricPalette = []models.FabricColor{
	{Code: "white", Name: "white", Hex: "#FFFFFF", Opacity: 0},
	{Code: "black", Name: "black", Hex: "#1A1A1A", Opacity: 0.8},
	{Code: "gray", Name: "heather gray", Hex: "#8C8C8C", Opacity: 0.5},
	{Code: "navy", Name: "navy", Hex: "#1F2A44", Opacity: 0.7},
	{Code: "red", Name: "red", Hex: "#C0392B", Opacity: 0.6},
	{Code: "pink", Name: "pink", Hex: "#F4A7B9", Opacity: 0.5},
	{Code: "sky", Name: "sky blue", Hex: "#87CEEB", Opacity: 0.5},
	{Code: "green", Name: "military green", Hex: "#4B5320", Opacity: 0.6},
}

// FabricPalette returns a copy of the tint palette
func FabricPalette() []models.FabricColor {
	out := make([]models.FabricColor, len(fabricPalette))
	copy(out, fabricPalette)
	return out
}

// MapCodeToFabricColor maps a color code to its palette swatch
// Input is normalized to lowercase before mapping
func MapCodeToFabricColor(code string) (models.FabricColor, bool) {
	codeLower := strings.ToLower(strings.TrimSpace(code))
	for _, c := range fabricPalette {
		if c.Code == codeLower {
			return c, true
		}
	}
	return models.FabricColor{}, false
}

// ParseHexColor parses "#RRGGBB" (or "RRGGBB") into an opaque color
func ParseHexColor(hex string) (color.NRGBA, error) {
	s := strings.TrimPrefix(strings.TrimSpace(hex), "#")
	if len(s) != 6 {
		return color.NRGBA{}, fmt.Errorf("invalid hex color %q", hex)
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("invalid hex color %q: %w", hex, err)
	}
	return color.NRGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xFF}, nil
}

// MapGarmentTypeToName maps garment type codes to their readable names
// Input is normalized to lowercase before mapping
// Returns capitalized readable name
func MapGarmentTypeToName(garmentType string) string {
	typeLower := NormalizeGarmentType(garmentType)

	garmentMap := map[string]string{
		"hoodie":  "hoodie",
		"trainer": "trainer",
		"tshirt":  "t-shirt",
	}

	if name, exists := garmentMap[typeLower]; exists {
		return CapitalizeWords(name)
	}

	// If not found, return capitalized version of input
	return CapitalizeWords(typeLower)
}

// NormalizeGarmentType lowercases and trims a garment type code
func NormalizeGarmentType(garmentType string) string {
	return strings.ToLower(strings.TrimSpace(garmentType))
}

// CapitalizeWords capitalizes the first letter of each word
func CapitalizeWords(s string) string {
	if s == "" {
		return s
	}
	words := strings.Fields(s)
	for i, word := range words {
		if len(word) > 0 {
			words[i] = strings.ToUpper(string(word[0])) + strings.ToLower(word[1:])
		}
	}
	return strings.Join(words, " ")
}
