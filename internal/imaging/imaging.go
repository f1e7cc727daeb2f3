// Package imaging frames uploaded images to their section's aspect ratio and
// encodes them as lossy WebP. Videos bypass this package entirely and are
// copied through by the renderer.
package imaging

import (
	"context"
	"image"
	"image/color"
	"math"
	"os"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/chai2010/webp"
	"golang.org/x/image/draw"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"

	"siteforge/internal/assets"
	"siteforge/internal/fileutil"
	"siteforge/internal/services"
	"siteforge/internal/taxonomy"
)

// AspectFor returns the output aspect ratio (width over height) for a
// section. About panels are wider than the rest.
func AspectFor(section string) float64 {
	if section == taxonomy.SectionAbout {
		return 14.0 / 9.0
	}
	return 11.0 / 9.0
}

// Probe reads the pixel dimensions of an image file without decoding it.
func Probe(path string) (width, height int, err error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, 0, services.Wrap(services.ErrValidation, "imaging", "probe", "open "+path, err)
	}
	defer f.Close()

	cfg, _, err := image.DecodeConfig(f)
	if err != nil {
		return 0, 0, services.Wrap(services.ErrValidation, "imaging", "probe", "decode "+path, err)
	}
	return cfg.Width, cfg.Height, nil
}

// targetSize derives the output canvas from the source dimensions: the
// largest rectangle of the section's aspect ratio that fits the source.
func targetSize(srcW, srcH int, aspect float64) (int, int) {
	srcRatio := float64(srcW) / float64(srcH)
	if srcRatio > aspect {
		h := srcH
		return int(math.Round(float64(h) * aspect)), h
	}
	w := srcW
	return w, int(math.Round(float64(w) / aspect))
}

// Composite frames src onto a black canvas of the section's aspect ratio.
// Auto mode center-crops the image to cover the canvas. Manual mode fits the
// image inside the canvas, then scales it about the canvas center and shifts
// it by the transform's offsets in output pixels.
func Composite(src image.Image, section string, mode assets.PlacementMode, tf assets.Transform) *image.RGBA {
	bounds := src.Bounds()
	srcW, srcH := bounds.Dx(), bounds.Dy()
	targetW, targetH := targetSize(srcW, srcH, AspectFor(section))

	dst := image.NewRGBA(image.Rect(0, 0, targetW, targetH))
	draw.Draw(dst, dst.Bounds(), image.NewUniform(color.Black), image.Point{}, draw.Src)

	srcRatio := float64(srcW) / float64(srcH)
	targetRatio := float64(targetW) / float64(targetH)

	var rect image.Rectangle
	if mode == assets.ModeManual {
		// Contain, then pan and zoom about the canvas center.
		var baseW, baseH float64
		if srcRatio > targetRatio {
			baseW = float64(targetW)
			baseH = baseW / srcRatio
		} else {
			baseH = float64(targetH)
			baseW = baseH * srcRatio
		}
		scale := tf.Scale
		if scale <= 0 {
			scale = 1
		}
		cx := float64(targetW)/2 + tf.X
		cy := float64(targetH)/2 + tf.Y
		w := baseW * scale
		h := baseH * scale
		rect = image.Rect(
			int(math.Round(cx-w/2)), int(math.Round(cy-h/2)),
			int(math.Round(cx+w/2)), int(math.Round(cy+h/2)),
		)
	} else {
		// Cover: fill the canvas and crop the overflow evenly.
		var w, h float64
		if srcRatio > targetRatio {
			h = float64(targetH)
			w = h * srcRatio
		} else {
			w = float64(targetW)
			h = w / srcRatio
		}
		x0 := (float64(targetW) - w) / 2
		y0 := (float64(targetH) - h) / 2
		rect = image.Rect(
			int(math.Round(x0)), int(math.Round(y0)),
			int(math.Round(x0+w)), int(math.Round(y0+h)),
		)
	}

	draw.CatmullRom.Scale(dst, rect, src, bounds, draw.Over, nil)
	return dst
}

// Renderer renders export files from asset source paths.
type Renderer struct{}

// NewRenderer returns the file-backed renderer.
func NewRenderer() *Renderer {
	return &Renderer{}
}

// RenderImage decodes the asset's source file, frames it for its section,
// and writes the WebP result to destPath.
func (r *Renderer) RenderImage(ctx context.Context, asset *assets.Asset, destPath string, quality float64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	f, err := os.Open(asset.SourcePath)
	if err != nil {
		return services.Wrap(services.ErrValidation, "imaging", "render", "open "+asset.SourcePath, err)
	}
	defer f.Close()

	src, _, err := image.Decode(f)
	if err != nil {
		return services.Wrap(services.ErrValidation, "imaging", "render", "decode "+asset.SourcePath, err)
	}

	framed := Composite(src, asset.Path.Section, asset.Mode, asset.Transform)

	out, err := os.Create(destPath)
	if err != nil {
		return services.Wrap(services.ErrValidation, "imaging", "render", "create "+destPath, err)
	}
	defer out.Close()

	opts := &webp.Options{Quality: float32(quality * 100)}
	if err := webp.Encode(out, framed, opts); err != nil {
		return services.Wrap(services.ErrValidation, "imaging", "render", "encode "+destPath, err)
	}
	return out.Close()
}

// CopyVideo streams the source video to destPath with integrity verification.
func (r *Renderer) CopyVideo(ctx context.Context, asset *assets.Asset, destPath string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := fileutil.CopyVerified(asset.SourcePath, destPath); err != nil {
		return services.Wrap(services.ErrValidation, "imaging", "copy video", "copy "+asset.SourcePath, err)
	}
	return nil
}
