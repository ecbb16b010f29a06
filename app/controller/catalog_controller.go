package controller

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"wear-simulator/service"
	"wear-simulator/utils"
)

// CatalogController handles HTTP requests for the sticker palette and sheet
type CatalogController struct {
	catalogService *service.CatalogService
}

// NewCatalogController creates a new CatalogController
func NewCatalogController(catalogService *service.CatalogService) *CatalogController {
	return &CatalogController{catalogService: catalogService}
}

// validThumbSizes is a map of valid thumbnail sizes
var validThumbSizes = map[string]bool{
	"thumb":  true,
	"medium": true,
}

// ListEntries handles GET /catalog?category=text
func (c *CatalogController) ListEntries(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, "ListEntries", http.MethodGet) {
		return
	}
	category := r.URL.Query().Get("category")
	entries, err := c.catalogService.ListEntries(r.Context(), category)
	if err != nil {
		writeError(w, "ListEntries", err)
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

// ListCategories handles GET /catalog/categories
func (c *CatalogController) ListCategories(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, "ListCategories", http.MethodGet) {
		return
	}
	categories, err := c.catalogService.ListCategories(r.Context())
	if err != nil {
		writeError(w, "ListCategories", err)
		return
	}
	writeJSON(w, http.StatusOK, categories)
}

// ListGarments handles GET /catalog/garments
func (c *CatalogController) ListGarments(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, "ListGarments", http.MethodGet) {
		return
	}
	garments, err := c.catalogService.ListGarments(r.Context())
	if err != nil {
		writeError(w, "ListGarments", err)
		return
	}
	writeJSON(w, http.StatusOK, garments)
}

// ListColors handles GET /palette/colors
func (c *CatalogController) ListColors(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, "ListColors", http.MethodGet) {
		return
	}
	writeJSON(w, http.StatusOK, utils.FabricPalette())
}

// GetThumbnail handles GET /catalog/thumb/{id}?size=thumb|medium
func (c *CatalogController) GetThumbnail(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, "GetThumbnail", http.MethodGet) {
		return
	}

	idStr := strings.TrimPrefix(r.URL.Path, "/catalog/thumb/")
	id, err := strconv.Atoi(idStr)
	if err != nil || id <= 0 {
		http.Error(w, fmt.Sprintf("Invalid catalog id: %s", idStr), http.StatusBadRequest)
		return
	}

	size := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("size")))
	if size == "" {
		size = "thumb"
	}
	if !validThumbSizes[size] {
		http.Error(w, "Invalid size. Valid sizes: thumb, medium", http.StatusBadRequest)
		return
	}

	data, err := c.catalogService.Thumbnail(r.Context(), id, size)
	if err != nil {
		writeError(w, "GetThumbnail", err)
		return
	}
	w.Header().Set("Content-Type", "image/webp")
	w.Header().Set("Cache-Control", "public, max-age=86400")
	w.Write(data)
}

// Sheet handles GET /catalog/sheet, /catalog/sheet.png and /catalog/sheet.pdf (?category=)
func (c *CatalogController) Sheet(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, "Sheet", http.MethodGet) {
		return
	}
	ctx := r.Context()
	category := r.URL.Query().Get("category")
	filename := "sticker-sheet"
	if category != "" {
		filename += "-" + category
	}

	switch {
	case strings.HasSuffix(r.URL.Path, ".pdf"):
		pdf, err := c.catalogService.GeneratePDF(ctx, category)
		if err != nil {
			writeError(w, "Sheet", err)
			return
		}
		w.Header().Set("Content-Type", "application/pdf")
		w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s.pdf"`, filename))
		w.Write(pdf)
	case strings.HasSuffix(r.URL.Path, ".png"):
		png, err := c.catalogService.GeneratePNG(ctx, category)
		if err != nil {
			writeError(w, "Sheet", err)
			return
		}
		w.Header().Set("Content-Type", "image/png")
		w.Header().Set("Content-Disposition", fmt.Sprintf(`inline; filename="%s.png"`, filename))
		w.Write(png)
	default:
		html, err := c.catalogService.RenderSheetHTML(ctx, category, false)
		if err != nil {
			writeError(w, "Sheet", err)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write([]byte(html))
	}
}
