// Package export turns the session state into output files: an updated site
// document plus one named media file per asset. Filenames continue the
// numbering found in the imported document so re-exports never collide with
// files already deployed.
package export

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
	"github.com/google/uuid"

	"siteforge/internal/assets"
	"siteforge/internal/config"
	"siteforge/internal/logging"
	"siteforge/internal/palette"
	"siteforge/internal/reviews"
	"siteforge/internal/services"
	"siteforge/internal/sitedata"
	"siteforge/internal/taxonomy"
)

// Renderer produces the on-disk bytes for one asset. Images are re-encoded,
// videos copied through unchanged.
type Renderer interface {
	RenderImage(ctx context.Context, asset *assets.Asset, destPath string, quality float64) error
	CopyVideo(ctx context.Context, asset *assets.Asset, destPath string) error
}

// Input is the session state an export consumes.
type Input struct {
	Tags    *taxonomy.Store
	Assets  []*assets.Asset
	Reviews []reviews.Review
	Styles  palette.Styles
	// Document is the imported site document, or nil when none was loaded.
	// Exports without a document still produce one so the output set is
	// always importable.
	Document *sitedata.Document
}

// FileResult records the outcome for one emitted media file.
type FileResult struct {
	AssetID  string
	Filename string
	Err      error
}

// Result summarizes a finished export run.
type Result struct {
	RunID        string
	DocumentPath string
	// DocumentErr is set when the document could not be written. Media
	// files are still emitted in that case.
	DocumentErr error
	Files       []FileResult
	Failures    int
}

// Driver runs exports against a configured output directory.
type Driver struct {
	cfg      *config.Config
	renderer Renderer
	logger   *slog.Logger
}

// NewDriver wires an export driver. A nil logger disables logging.
func NewDriver(cfg *config.Config, renderer Renderer, logger *slog.Logger) *Driver {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Driver{cfg: cfg, renderer: renderer, logger: logger}
}

// Export runs the full pipeline: merge reviews and styles into the document,
// recover filename counters, mint filenames and document entries, write the
// document, then emit every media file in order. Per-file failures are
// collected in the result instead of aborting the run.
func (d *Driver) Export(ctx context.Context, in Input) (*Result, error) {
	if len(in.Assets) == 0 && in.Document == nil {
		return nil, services.Wrap(services.ErrNoContent, "export", "run", "no assets staged and no document loaded", nil)
	}

	outputDir := d.cfg.Paths.OutputDir
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return nil, services.Wrap(services.ErrConfiguration, "export", "run", "create output directory", err)
	}

	lock := flock.New(filepath.Join(outputDir, "siteforge.lock"))
	ok, err := lock.TryLock()
	if err != nil {
		return nil, services.Wrap(services.ErrConfiguration, "export", "run", "acquire output lock", err)
	}
	if !ok {
		return nil, services.Wrap(services.ErrConfiguration, "export", "run", "another export is writing to "+outputDir, nil)
	}
	defer func() { _ = lock.Unlock() }()

	result := &Result{RunID: uuid.NewString()}
	ctx = services.WithRunID(ctx, result.RunID)
	logger := logging.WithContext(ctx, d.logger)
	logger.Info("export started", logging.Int("assets", len(in.Assets)), logging.String("output_dir", outputDir))

	doc := in.Document
	if doc == nil {
		doc = sitedata.New()
	}
	doc.SetReviews(in.Reviews)
	doc.SetStyles(in.Styles)

	counters := RecoverCounters(doc)
	plan := BuildPlan(in.Assets, in.Tags, doc, counters)

	result.DocumentPath = filepath.Join(outputDir, d.cfg.Export.DocumentName)
	if err := d.writeDocument(doc, result.DocumentPath); err != nil {
		// Keep going so the media files still land on disk.
		result.DocumentErr = err
		logger.Error("document write failed", logging.Error(err))
	} else {
		logger.Info("document written", logging.String("path", result.DocumentPath))
	}

	for _, planned := range plan {
		fileCtx := services.WithStep(ctx, planned.Filename)
		err := d.emit(fileCtx, planned)
		result.Files = append(result.Files, FileResult{
			AssetID:  planned.Asset.ID,
			Filename: planned.Filename,
			Err:      err,
		})
		if err != nil {
			result.Failures++
			logging.WithContext(fileCtx, d.logger).Error("file emit failed", logging.Error(err))
			continue
		}
		logging.WithContext(fileCtx, d.logger).Info("file written", logging.String("asset_id", planned.Asset.ID))
	}

	logger.Info("export finished",
		logging.Int("files", len(result.Files)),
		logging.Int("failures", result.Failures))
	return result, nil
}

func (d *Driver) writeDocument(doc *sitedata.Document, path string) error {
	if err := d.checkOverwrite(path); err != nil {
		return err
	}
	data, err := doc.Marshal()
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return services.Wrap(services.ErrConfiguration, "export", "write document", "write "+path, err)
	}
	return nil
}

func (d *Driver) emit(ctx context.Context, planned PlannedFile) error {
	destPath := filepath.Join(d.cfg.Paths.OutputDir, planned.Filename)
	if err := d.checkOverwrite(destPath); err != nil {
		return err
	}
	if planned.Asset.Kind == assets.KindVideo {
		return d.renderer.CopyVideo(ctx, planned.Asset, destPath)
	}
	return d.renderer.RenderImage(ctx, planned.Asset, destPath, d.cfg.Imaging.Quality)
}

func (d *Driver) checkOverwrite(path string) error {
	if d.cfg.Export.OverwriteExisting {
		return nil
	}
	if _, err := os.Stat(path); err == nil {
		return services.Wrap(services.ErrValidation, "export", "emit",
			fmt.Sprintf("%s already exists and overwrite_existing is disabled", path), nil)
	}
	return nil
}
