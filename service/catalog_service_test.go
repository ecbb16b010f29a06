package service

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"testing/fstest"

	"wear-simulator/repository"
)

func newTestCatalogService(t *testing.T) *CatalogService {
	t.Helper()
	catalog, err := repository.NewCatalogFileRepository("")
	if err != nil {
		t.Fatal(err)
	}
	assets := NewAssetService(fstest.MapFS{
		"stickers/text_00.png": {Data: solidPNG(t, 90, 120, red)},
	})
	return NewCatalogService(catalog, assets, NewImageOptimizer(t.TempDir()), 45, 60)
}

func TestCatalogServiceSheetData(t *testing.T) {
	svc := newTestCatalogService(t)
	ctx := context.Background()

	// 190mm usable width fits 4 columns of 45mm, 247mm usable height fits 3 rows of 68mm
	if got := svc.perPage(); got != 12 {
		t.Fatalf("perPage() = %d, want 12", got)
	}

	data, err := svc.SheetData(ctx, "all", false)
	if err != nil {
		t.Fatalf("SheetData() error = %v", err)
	}
	if data.Total != 23 || len(data.Pages) != 2 || len(data.Pages[0]) != 12 || len(data.Pages[1]) != 11 {
		t.Errorf("total=%d pages=%d", data.Total, len(data.Pages))
	}
	if data.Pages[0][0].ImageSrc != "/stickers/text_00.png" {
		t.Errorf("ImageSrc = %q, want the asset URL", data.Pages[0][0].ImageSrc)
	}

	inline, err := svc.SheetData(ctx, "text", true)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(inline.Pages[0][0].ImageSrc, "data:image/png;base64,") {
		t.Errorf("inline ImageSrc = %.40q", inline.Pages[0][0].ImageSrc)
	}
	if inline.Pages[0][1].ImageSrc != "" {
		t.Error("missing assets should inline as empty")
	}
}

func TestCatalogServiceRenderSheetHTML(t *testing.T) {
	svc := newTestCatalogService(t)

	html, err := svc.RenderSheetHTML(context.Background(), "basketball", false)
	if err != nil {
		t.Fatalf("RenderSheetHTML() error = %v", err)
	}
	for _, want := range []string{
		"<h2>Sticker sheet</h2>",
		"<strong>45 x 60 mm</strong>",
		`src="/stickers/basket_ball_04.png"`,
		"width: 45mm",
		"1 / 1",
	} {
		if !strings.Contains(html, want) {
			t.Errorf("sheet HTML missing %q", want)
		}
	}
	if strings.Contains(html, "text_00") {
		t.Error("sheet for basketball should not list text stickers")
	}

	empty, err := svc.RenderSheetHTML(context.Background(), "glitter", false)
	if err != nil {
		t.Fatalf("empty sheet error = %v", err)
	}
	if strings.Contains(empty, `class="page"`) {
		t.Error("an empty category should render no pages")
	}
}

func TestCatalogServiceThumbnail(t *testing.T) {
	svc := newTestCatalogService(t)
	ctx := context.Background()

	thumb, err := svc.Thumbnail(ctx, 1, "thumb")
	if err != nil {
		t.Fatalf("Thumbnail() error = %v", err)
	}
	if !bytes.HasPrefix(thumb, []byte("RIFF")) {
		t.Error("thumbnail is not a WebP file")
	}

	if _, err := svc.Thumbnail(ctx, 999, "thumb"); !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("unknown entry error = %v", err)
	}
	if _, err := svc.Thumbnail(ctx, 2, "thumb"); !errors.Is(err, ErrAssetNotFound) {
		t.Errorf("missing asset error = %v", err)
	}
}

func TestCatalogServiceHeadless(t *testing.T) {
	if testing.Short() || detectChromePath() == "" {
		t.Skip("no Chrome/Chromium available")
	}
	svc := newTestCatalogService(t)
	ctx := context.Background()

	pdf, err := svc.GeneratePDF(ctx, "text")
	if err != nil {
		t.Fatalf("GeneratePDF() error = %v", err)
	}
	if !bytes.HasPrefix(pdf, []byte("%PDF")) {
		t.Error("output is not a PDF")
	}

	png, err := svc.GeneratePNG(ctx, "text")
	if err != nil {
		t.Fatalf("GeneratePNG() error = %v", err)
	}
	if !bytes.HasPrefix(png, []byte("\x89PNG")) {
		t.Error("output is not a PNG")
	}
}
