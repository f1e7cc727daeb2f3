package export

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"siteforge/internal/assets"
	"siteforge/internal/config"
	"siteforge/internal/palette"
	"siteforge/internal/reviews"
	"siteforge/internal/services"
	"siteforge/internal/sitedata"
	"siteforge/internal/taxonomy"
	"siteforge/internal/testsupport"
)

type stubRenderer struct {
	images []string
	videos []string
	fail   map[string]error
}

func (s *stubRenderer) RenderImage(_ context.Context, _ *assets.Asset, destPath string, _ float64) error {
	if err := s.fail[filepath.Base(destPath)]; err != nil {
		return err
	}
	s.images = append(s.images, filepath.Base(destPath))
	return os.WriteFile(destPath, []byte("webp"), 0o644)
}

func (s *stubRenderer) CopyVideo(_ context.Context, _ *assets.Asset, destPath string) error {
	if err := s.fail[filepath.Base(destPath)]; err != nil {
		return err
	}
	s.videos = append(s.videos, filepath.Base(destPath))
	return os.WriteFile(destPath, []byte("video"), 0o644)
}

func testDriver(t *testing.T) (*Driver, *stubRenderer, *config.Config) {
	t.Helper()
	cfg := testsupport.NewConfig(t)
	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatal(err)
	}
	renderer := &stubRenderer{fail: map[string]error{}}
	return NewDriver(cfg, renderer, nil), renderer, cfg
}

func TestExportRejectsEmptySession(t *testing.T) {
	driver, _, _ := testDriver(t)
	_, err := driver.Export(context.Background(), Input{Tags: taxonomy.NewStore()})
	if !errors.Is(err, services.ErrNoContent) {
		t.Errorf("expected ErrNoContent, got %v", err)
	}
}

func TestExportWritesDocumentAndFiles(t *testing.T) {
	driver, renderer, cfg := testDriver(t)
	tags := taxonomy.NewStore()

	in := Input{
		Tags: tags,
		Assets: []*assets.Asset{
			imageAsset("a", assets.TagPath{Section: taxonomy.SectionGallery, Category: "Main"}),
			{ID: "v", Kind: assets.KindVideo, Extension: "mp4", Path: assets.TagPath{Section: taxonomy.SectionGallery, Category: "Main"}},
			imageAsset("l", assets.TagPath{Section: taxonomy.SectionLogo}),
		},
		Reviews: []reviews.Review{{Rating: 5, Name: "Ana", Review: "great"}},
		Styles:  palette.Styles{A1: "#111111", A2: "#222222", B1: "#333333", B2: "#444444"},
	}

	result, err := driver.Export(context.Background(), in)
	if err != nil {
		t.Fatal(err)
	}
	if result.RunID == "" {
		t.Error("export should mint a run ID")
	}
	if result.Failures != 0 || result.DocumentErr != nil {
		t.Fatalf("unexpected failures: %+v", result)
	}

	want := []string{"Gallery-Main-1.webp", "Gallery-Main-2.mp4", "Logo.webp"}
	if len(result.Files) != len(want) {
		t.Fatalf("files = %+v", result.Files)
	}
	for i, f := range result.Files {
		if f.Filename != want[i] || f.Err != nil {
			t.Errorf("file[%d] = %+v, want %q", i, f, want[i])
		}
	}
	if len(renderer.images) != 2 || len(renderer.videos) != 1 {
		t.Errorf("renderer calls: images=%v videos=%v", renderer.images, renderer.videos)
	}

	data, err := os.ReadFile(filepath.Join(cfg.Paths.OutputDir, cfg.Export.DocumentName))
	if err != nil {
		t.Fatalf("document not written: %v", err)
	}
	doc, err := sitedata.Parse(data)
	if err != nil {
		t.Fatal(err)
	}
	if got := doc.Reviews(); len(got) != 1 || got[0].Name != "Ana" {
		t.Errorf("reviews not merged: %+v", got)
	}
	if s := doc.Styles(); s.A1 != "#111111" {
		t.Errorf("styles not merged: %+v", s)
	}
	items := doc.GalleryCategories()[0].Items
	if len(items) != 2 || items[0] != "1.webp" || items[1] != "2.mp4" {
		t.Errorf("gallery items = %v", items)
	}
}

func TestExportWithoutAssetsStillWritesDocument(t *testing.T) {
	driver, _, cfg := testDriver(t)
	doc, err := sitedata.Parse([]byte(`{"business": {"name": "Oak & Iron"}}`))
	if err != nil {
		t.Fatal(err)
	}

	result, err := driver.Export(context.Background(), Input{
		Tags:     taxonomy.NewStore(),
		Document: doc,
		Styles:   palette.Styles{A1: "#111111"},
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(result.Files) != 0 {
		t.Errorf("no media expected, got %+v", result.Files)
	}

	data, err := os.ReadFile(filepath.Join(cfg.Paths.OutputDir, cfg.Export.DocumentName))
	if err != nil {
		t.Fatal(err)
	}
	var round map[string]any
	if err := json.Unmarshal(data, &round); err != nil {
		t.Fatal(err)
	}
	if _, ok := round["business"]; !ok {
		t.Error("imported fields must survive the export")
	}
}

func TestExportContinuesNumberingFromDocument(t *testing.T) {
	driver, _, _ := testDriver(t)
	doc, err := sitedata.Parse([]byte(`{"gallery": {"categories": [{"name": "Main", "items": ["7.webp"]}]}}`))
	if err != nil {
		t.Fatal(err)
	}

	result, err := driver.Export(context.Background(), Input{
		Tags:     taxonomy.NewStore(),
		Document: doc,
		Assets: []*assets.Asset{
			imageAsset("a", assets.TagPath{Section: taxonomy.SectionGallery, Category: "Main"}),
		},
	})
	if err != nil {
		t.Fatal(err)
	}
	if result.Files[0].Filename != "Gallery-Main-8.webp" {
		t.Errorf("filename = %q", result.Files[0].Filename)
	}
}

func TestExportCollectsPerFileFailures(t *testing.T) {
	driver, renderer, _ := testDriver(t)
	renderer.fail["Gallery-Main-1.webp"] = errors.New("encode blew up")

	result, err := driver.Export(context.Background(), Input{
		Tags: taxonomy.NewStore(),
		Assets: []*assets.Asset{
			imageAsset("a", assets.TagPath{Section: taxonomy.SectionGallery, Category: "Main"}),
			imageAsset("b", assets.TagPath{Section: taxonomy.SectionGallery, Category: "Main"}),
		},
	})
	if err != nil {
		t.Fatalf("per-file failures must not abort the run: %v", err)
	}
	if result.Failures != 1 {
		t.Errorf("failures = %d, want 1", result.Failures)
	}
	if result.Files[0].Err == nil || result.Files[1].Err != nil {
		t.Errorf("unexpected per-file results: %+v", result.Files)
	}
	if result.Files[1].Filename != "Gallery-Main-2.webp" {
		t.Errorf("later files should still be emitted: %+v", result.Files[1])
	}
}

func TestExportHonorsOverwriteSetting(t *testing.T) {
	driver, _, cfg := testDriver(t)
	cfg.Export.OverwriteExisting = false
	existing := filepath.Join(cfg.Paths.OutputDir, "Gallery-Main-1.webp")
	if err := os.WriteFile(existing, []byte("old"), 0o644); err != nil {
		t.Fatal(err)
	}

	result, err := driver.Export(context.Background(), Input{
		Tags: taxonomy.NewStore(),
		Assets: []*assets.Asset{
			imageAsset("a", assets.TagPath{Section: taxonomy.SectionGallery, Category: "Main"}),
		},
	})
	if err != nil {
		t.Fatal(err)
	}
	if result.Failures != 1 || !errors.Is(result.Files[0].Err, services.ErrValidation) {
		t.Errorf("expected overwrite refusal, got %+v", result.Files)
	}
	data, err := os.ReadFile(existing)
	if err != nil || string(data) != "old" {
		t.Errorf("existing file must be untouched, got %q err=%v", data, err)
	}
}
