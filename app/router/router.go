package router

import (
	"io/fs"
	"log"
	"net/http"
	"strings"
	"time"

	"wear-simulator/app/controller"
)

type Controllers struct {
	Catalog *controller.CatalogController
	Design  *controller.DesignController
}

// pingHandler handles GET /ping
func pingHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}

// SetupRoutes registers every route on mux. Sticker and garment images are served from assets.
func SetupRoutes(mux *http.ServeMux, controllers *Controllers, assets fs.FS) {
	// Ping endpoint
	mux.HandleFunc("/ping", pingHandler)

	// Static sticker and garment images
	files := http.FileServer(http.FS(assets))
	mux.Handle("/stickers/", files)
	mux.Handle("/wear/", files)

	// Palette routes
	mux.HandleFunc("/catalog", controllers.Catalog.ListEntries)
	mux.HandleFunc("/catalog/categories", controllers.Catalog.ListCategories)
	mux.HandleFunc("/catalog/garments", controllers.Catalog.ListGarments)
	mux.HandleFunc("/catalog/thumb/", controllers.Catalog.GetThumbnail)
	mux.HandleFunc("/palette/colors", controllers.Catalog.ListColors)

	// Sticker sheet: HTML, PNG and PDF
	mux.HandleFunc("/catalog/sheet", controllers.Catalog.Sheet)
	mux.HandleFunc("/catalog/sheet.png", controllers.Catalog.Sheet)
	mux.HandleFunc("/catalog/sheet.pdf", controllers.Catalog.Sheet)

	// Create design session
	mux.HandleFunc("/designs", controllers.Design.Create)

	// Design session actions
	mux.HandleFunc("/designs/", func(w http.ResponseWriter, r *http.Request) {
		path := strings.Trim(strings.TrimPrefix(r.URL.Path, "/designs/"), "/")
		if path == "" {
			http.Error(w, "Not found", http.StatusNotFound)
			return
		}

		// Route to specific actions first
		if strings.Contains(path, "/") {
			switch {
			case strings.HasSuffix(path, "/decorations"):
				controllers.Design.AddDecoration(w, r)
			case strings.HasSuffix(path, "/pointer-down"):
				controllers.Design.PointerDown(w, r)
			case strings.HasSuffix(path, "/drag-end"):
				controllers.Design.DragEnd(w, r)
			case strings.HasSuffix(path, "/transform-end"):
				controllers.Design.TransformEnd(w, r)
			case strings.HasSuffix(path, "/delete"):
				controllers.Design.DeleteSelected(w, r)
			case strings.HasSuffix(path, "/keys"):
				controllers.Design.HandleKey(w, r)
			case strings.HasSuffix(path, "/context"):
				controllers.Design.SetContext(w, r)
			case strings.HasSuffix(path, "/viewport"):
				controllers.Design.ResizeViewport(w, r)
			case strings.HasSuffix(path, "/tint"):
				controllers.Design.SetTint(w, r)
			case strings.HasSuffix(path, "/preview"):
				controllers.Design.Preview(w, r)
			default:
				http.Error(w, "Not found", http.StatusNotFound)
			}
			return
		}

		// /designs/{id} handles both GET (state) and DELETE (drop session)
		switch r.Method {
		case http.MethodGet:
			controllers.Design.Get(w, r)
		case http.MethodDelete:
			controllers.Design.Delete(w, r)
		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	})
}

// HTTPLogger logs every request with its status and duration
func HTTPLogger(handler http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, Status: http.StatusOK}
		handler.ServeHTTP(rec, r)
		log.Printf("http: time:%dms %d %s %s", time.Since(start)/time.Millisecond, rec.Status, r.Method, r.URL.String())
	})
}

type statusRecorder struct {
	http.ResponseWriter
	Status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.Status = status
	r.ResponseWriter.WriteHeader(status)
}

// NewHandler builds the application handler
func NewHandler(controllers *Controllers, assets fs.FS) http.Handler {
	mux := http.NewServeMux()
	SetupRoutes(mux, controllers, assets)
	return HTTPLogger(mux)
}
