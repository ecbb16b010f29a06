package service

import (
	"bytes"
	"context"
	"embed"
	"encoding/base64"
	"fmt"
	"html/template"
	"log"
	"math"
	"net/http"
	"os"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/cdproto/runtime"
	"github.com/chromedp/chromedp"
	"github.com/russross/blackfriday/v2"

	"wear-simulator/models"
	"wear-simulator/repository"
)

//go:embed templates/sticker_sheet.html
var templateFS embed.FS

var sheetTemplate = template.Must(template.New("sticker_sheet.html").Funcs(template.FuncMap{
	"add": func(a, b int) int { return a + b },
	"sub": func(a, b int) int { return a - b },
	"markdown": func(text string) template.HTML {
		return template.HTML(blackfriday.Run([]byte(text)))
	},
	// Image sources are asset paths or data URIs built by this service
	"imageURL": func(src string) template.URL { return template.URL(src) },
}).ParseFS(templateFS, "templates/sticker_sheet.html"))

// Sheet layout on A4, in millimetres
const (
	sheetWidthMm   = 210.0
	sheetHeightMm  = 297.0
	sheetPaddingMm = 10.0
	sheetGapMm     = 3.0
	sheetLabelMm   = 5.0
	sheetNotesMm   = 30.0
	// 210mm x 297mm at 96 DPI
	sheetViewportW = 794
	sheetViewportH = 1123
)

// CatalogService handles palette listing, thumbnails and the printable sticker sheet
type CatalogService struct {
	repository repository.CatalogRepositoryInterface
	assets     AssetServiceInterface
	optimizer  *ImageOptimizer
	widthMm    float64
	heightMm   float64
}

// NewCatalogService creates a new CatalogService printing stickers at widthMm x heightMm
func NewCatalogService(
	repo repository.CatalogRepositoryInterface,
	assets AssetServiceInterface,
	optimizer *ImageOptimizer,
	widthMm, heightMm float64,
) *CatalogService {
	return &CatalogService{
		repository: repo,
		assets:     assets,
		optimizer:  optimizer,
		widthMm:    widthMm,
		heightMm:   heightMm,
	}
}

// ListEntries returns the palette entries of a category
func (s *CatalogService) ListEntries(ctx context.Context, category string) ([]models.CatalogEntry, error) {
	return s.repository.ListEntries(ctx, category)
}

// ListCategories returns the palette filter tabs
func (s *CatalogService) ListCategories(ctx context.Context) ([]models.Category, error) {
	return s.repository.ListCategories(ctx)
}

// ListGarments returns the configured garments
func (s *CatalogService) ListGarments(ctx context.Context) ([]models.Garment, error) {
	return s.repository.ListGarments(ctx)
}

// Thumbnail returns the palette thumbnail of an entry (WebP)
func (s *CatalogService) Thumbnail(ctx context.Context, id int, size string) ([]byte, error) {
	entry, err := s.repository.GetEntry(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.optimizer.Thumbnail(entry.ID, size, func() ([]byte, error) {
		return s.assets.ReadRaw(entry.URL)
	})
}

// perPage returns how many stickers fit on one sheet page
func (s *CatalogService) perPage() int {
	usableW := sheetWidthMm - 2*sheetPaddingMm
	usableH := sheetHeightMm - 2*sheetPaddingMm - sheetNotesMm
	cols := int(math.Floor((usableW + sheetGapMm) / (s.widthMm + sheetGapMm)))
	rows := int(math.Floor((usableH + sheetGapMm) / (s.heightMm + sheetLabelMm + sheetGapMm)))
	if cols < 1 {
		cols = 1
	}
	if rows < 1 {
		rows = 1
	}
	return cols * rows
}

// paginateItems splits items into pages of perPage items each
func paginateItems(items []models.SheetItem, perPage int) [][]models.SheetItem {
	var pages [][]models.SheetItem
	for i := 0; i < len(items); i += perPage {
		end := i + perPage
		if end > len(items) {
			end = len(items)
		}
		pages = append(pages, items[i:end])
	}
	return pages
}

// inlineImage returns the asset as a data URI, "" when it is not available
func (s *CatalogService) inlineImage(ref string) string {
	data, err := s.assets.ReadRaw(ref)
	if err != nil {
		log.Printf("⚠️  Warning: Failed to inline image %s: %v", ref, err)
		return ""
	}
	return "data:" + http.DetectContentType(data) + ";base64," + base64.StdEncoding.EncodeToString(data)
}

// SheetData builds the sheet for a category. With inline set, images are embedded as
// data URIs so the page renders without the HTTP server.
func (s *CatalogService) SheetData(ctx context.Context, category string, inline bool) (*models.SheetData, error) {
	entries, err := s.repository.ListEntries(ctx, category)
	if err != nil {
		return nil, err
	}
	description, err := s.repository.Description(ctx)
	if err != nil {
		return nil, err
	}

	items := make([]models.SheetItem, 0, len(entries))
	for _, e := range entries {
		src := e.URL
		if inline {
			src = s.inlineImage(e.URL)
		}
		items = append(items, models.SheetItem{CatalogEntry: e, ImageSrc: src})
	}

	return &models.SheetData{
		Category:    category,
		Pages:       paginateItems(items, s.perPage()),
		WidthMm:     s.widthMm,
		HeightMm:    s.heightMm,
		Description: description,
		Total:       len(items),
	}, nil
}

// RenderSheetHTML renders the sticker sheet page
func (s *CatalogService) RenderSheetHTML(ctx context.Context, category string, inline bool) (string, error) {
	data, err := s.SheetData(ctx, category, inline)
	if err != nil {
		return "", err
	}

	templateData := struct {
		*models.SheetData
		PaddingMm float64
		GapMm     float64
		LabelMm   float64
	}{
		SheetData: data,
		PaddingMm: sheetPaddingMm,
		GapMm:     sheetGapMm,
		LabelMm:   sheetLabelMm,
	}

	var buf bytes.Buffer
	if err := sheetTemplate.Execute(&buf, templateData); err != nil {
		return "", fmt.Errorf("failed to execute template: %w", err)
	}
	return buf.String(), nil
}

// detectChromePath detects the path to Chrome/Chromium executable
// Checks CHROME_PATH env var first, then common installation paths
func detectChromePath() string {
	if chromePath := os.Getenv("CHROME_PATH"); chromePath != "" {
		if _, err := os.Stat(chromePath); err == nil {
			return chromePath
		}
	}

	paths := []string{
		"/usr/bin/chromium",
		"/usr/bin/chromium-browser",
		"/usr/bin/google-chrome",
		"/usr/bin/google-chrome-stable",
		"/snap/bin/chromium",
	}
	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// withBrowser starts a headless browser with the sheet loaded and runs actions against it
func (s *CatalogService) withBrowser(ctx context.Context, category string, actions ...chromedp.Action) error {
	html, err := s.RenderSheetHTML(ctx, category, true)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.NoSandbox, // Required for running in Docker/containers
	)
	if chromePath := detectChromePath(); chromePath != "" {
		opts = append(opts, chromedp.ExecPath(chromePath))
	}
	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, opts...)
	defer allocCancel()

	chromedpCtx, chromedpCancel := chromedp.NewContext(allocCtx)
	defer chromedpCancel()

	var fontsReady bool
	load := []chromedp.Action{
		chromedp.EmulateViewport(sheetViewportW, sheetViewportH),
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			tree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(tree.Frame.ID, html).Do(ctx)
		}),
		chromedp.WaitReady("body"),
		// Wait for fonts; images are inline data URIs
		chromedp.Evaluate(`document.fonts.ready.then(() => true)`, &fontsReady, func(p *runtime.EvaluateParams) *runtime.EvaluateParams {
			return p.WithAwaitPromise(true)
		}),
	}
	return chromedp.Run(chromedpCtx, append(load, actions...)...)
}

// GeneratePDF prints the sticker sheet of a category to an A4 PDF
func (s *CatalogService) GeneratePDF(ctx context.Context, category string) ([]byte, error) {
	var pdfBuf []byte
	err := s.withBrowser(ctx, category, chromedp.ActionFunc(func(ctx context.Context) error {
		var err error
		// 210mm x 297mm = 8.27" x 11.69"
		pdfBuf, _, err = page.PrintToPDF().
			WithPrintBackground(true).
			WithPaperWidth(8.27).
			WithPaperHeight(11.69).
			WithMarginTop(0). // No margins, padding is in CSS
			WithMarginBottom(0).
			WithMarginLeft(0).
			WithMarginRight(0).
			Do(ctx)
		return err
	}))
	if err != nil {
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}
	log.Printf("✓ Sticker sheet PDF generated: category=%s, %d bytes", category, len(pdfBuf))
	return pdfBuf, nil
}

// GeneratePNG screenshots every page of the sticker sheet as a single PNG
func (s *CatalogService) GeneratePNG(ctx context.Context, category string) ([]byte, error) {
	var buf []byte
	err := s.withBrowser(ctx, category, chromedp.FullScreenshot(&buf, 100))
	if err != nil {
		return nil, fmt.Errorf("failed to generate PNG: %w", err)
	}
	log.Printf("✓ Sticker sheet PNG generated: category=%s, %d bytes", category, len(buf))
	return buf, nil
}
