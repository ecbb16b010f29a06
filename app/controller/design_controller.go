package controller

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"

	"wear-simulator/models"
	"wear-simulator/service"
)

// DesignController handles HTTP requests for design sessions
type DesignController struct {
	designService service.DesignServiceInterface
}

// NewDesignController creates a new DesignController
func NewDesignController(designService service.DesignServiceInterface) *DesignController {
	return &DesignController{designService: designService}
}

// designID extracts {id} from /designs/{id} or /designs/{id}/action
func designID(r *http.Request) string {
	path := strings.TrimPrefix(r.URL.Path, "/designs/")
	if i := strings.Index(path, "/"); i >= 0 {
		path = path[:i]
	}
	return path
}

// decodeBody decodes the JSON request body into dst, writing 400 on failure
func decodeBody(w http.ResponseWriter, r *http.Request, op string, dst interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		log.Printf("❌ %s: Invalid request body: %v", op, err)
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return false
	}
	return true
}

// respond writes the design state or maps the error
func respond(w http.ResponseWriter, op string, status int, state *models.DesignState, err error) {
	if err != nil {
		writeError(w, op, err)
		return
	}
	writeJSON(w, status, state)
}

// Create handles POST /designs
func (c *DesignController) Create(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, "CreateDesign", http.MethodPost) {
		return
	}
	state, err := c.designService.Create(r.Context())
	respond(w, "CreateDesign", http.StatusCreated, state, err)
}

// Get handles GET /designs/{id}
func (c *DesignController) Get(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, "GetDesign", http.MethodGet) {
		return
	}
	state, err := c.designService.State(r.Context(), designID(r))
	respond(w, "GetDesign", http.StatusOK, state, err)
}

// Delete handles DELETE /designs/{id}
func (c *DesignController) Delete(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, "DeleteDesign", http.MethodDelete) {
		return
	}
	if err := c.designService.Delete(r.Context(), designID(r)); err != nil {
		writeError(w, "DeleteDesign", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// AddDecoration handles POST /designs/{id}/decorations
// Example request body: {"catalogId": 14}
func (c *DesignController) AddDecoration(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, "AddDecoration", http.MethodPost) {
		return
	}
	var req models.AddDecorationRequest
	if !decodeBody(w, r, "AddDecoration", &req) {
		return
	}
	if req.CatalogID <= 0 {
		http.Error(w, "catalogId is required", http.StatusBadRequest)
		return
	}
	state, err := c.designService.AddDecoration(r.Context(), designID(r), req)
	respond(w, "AddDecoration", http.StatusCreated, state, err)
}

// PointerDown handles POST /designs/{id}/pointer-down
func (c *DesignController) PointerDown(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, "PointerDown", http.MethodPost) {
		return
	}
	var req models.PointerRequest
	if !decodeBody(w, r, "PointerDown", &req) {
		return
	}
	state, err := c.designService.PointerDown(r.Context(), designID(r), req)
	respond(w, "PointerDown", http.StatusOK, state, err)
}

// DragEnd handles POST /designs/{id}/drag-end
func (c *DesignController) DragEnd(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, "DragEnd", http.MethodPost) {
		return
	}
	var req models.DragEndRequest
	if !decodeBody(w, r, "DragEnd", &req) {
		return
	}
	state, err := c.designService.DragEnd(r.Context(), designID(r), req)
	respond(w, "DragEnd", http.StatusOK, state, err)
}

// TransformEnd handles POST /designs/{id}/transform-end
func (c *DesignController) TransformEnd(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, "TransformEnd", http.MethodPost) {
		return
	}
	var req models.TransformEndRequest
	if !decodeBody(w, r, "TransformEnd", &req) {
		return
	}
	state, err := c.designService.TransformEnd(r.Context(), designID(r), req)
	respond(w, "TransformEnd", http.StatusOK, state, err)
}

// DeleteSelected handles POST /designs/{id}/delete
func (c *DesignController) DeleteSelected(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, "DeleteSelected", http.MethodPost) {
		return
	}
	state, err := c.designService.DeleteSelected(r.Context(), designID(r))
	respond(w, "DeleteSelected", http.StatusOK, state, err)
}

// HandleKey handles POST /designs/{id}/keys
func (c *DesignController) HandleKey(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, "HandleKey", http.MethodPost) {
		return
	}
	var req models.KeyRequest
	if !decodeBody(w, r, "HandleKey", &req) {
		return
	}
	state, err := c.designService.HandleKey(r.Context(), designID(r), req)
	respond(w, "HandleKey", http.StatusOK, state, err)
}

// SetContext handles PUT /designs/{id}/context
func (c *DesignController) SetContext(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, "SetContext", http.MethodPut) {
		return
	}
	var req models.ContextRequest
	if !decodeBody(w, r, "SetContext", &req) {
		return
	}
	state, err := c.designService.SetContext(r.Context(), designID(r), req)
	respond(w, "SetContext", http.StatusOK, state, err)
}

// ResizeViewport handles PUT /designs/{id}/viewport
func (c *DesignController) ResizeViewport(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, "ResizeViewport", http.MethodPut) {
		return
	}
	var req models.ViewportRequest
	if !decodeBody(w, r, "ResizeViewport", &req) {
		return
	}
	state, err := c.designService.ResizeViewport(r.Context(), designID(r), req)
	respond(w, "ResizeViewport", http.StatusOK, state, err)
}

// SetTint handles PUT /designs/{id}/tint
func (c *DesignController) SetTint(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, "SetTint", http.MethodPut) {
		return
	}
	var req models.TintRequest
	if !decodeBody(w, r, "SetTint", &req) {
		return
	}
	state, err := c.designService.SetTint(r.Context(), designID(r), req)
	respond(w, "SetTint", http.StatusOK, state, err)
}

// Preview handles GET /designs/{id}/preview?format=png|jpeg|webp&scale=logical|display
func (c *DesignController) Preview(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, "Preview", http.MethodGet) {
		return
	}
	format, err := service.ParseFormat(r.URL.Query().Get("format"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	var displayScale bool
	switch strings.ToLower(r.URL.Query().Get("scale")) {
	case "", "logical":
	case "display":
		displayScale = true
	default:
		http.Error(w, "Invalid scale. Valid values: logical, display", http.StatusBadRequest)
		return
	}

	img, err := c.designService.Preview(r.Context(), designID(r), displayScale)
	if err != nil {
		writeError(w, "Preview", err)
		return
	}
	w.Header().Set("Content-Type", format.ContentType())
	w.Header().Set("Cache-Control", "no-store")
	if err := service.Encode(w, img, format); err != nil {
		log.Printf("❌ Preview: %v", err)
	}
}
