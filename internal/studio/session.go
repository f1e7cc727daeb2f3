// Package studio holds the authoring session: the taxonomy, the staged
// assets, the review list, the color palette, and the imported site document.
// Commands mutate the session and hand it to the export driver as one unit.
package studio

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"siteforge/internal/assets"
	"siteforge/internal/export"
	"siteforge/internal/imaging"
	"siteforge/internal/logging"
	"siteforge/internal/palette"
	"siteforge/internal/reviews"
	"siteforge/internal/services"
	"siteforge/internal/sitedata"
	"siteforge/internal/taxonomy"
)

// Session is one authoring session. Zero assets and no document is a valid
// state; the export driver rejects it at run time.
type Session struct {
	Tags    *taxonomy.Store
	Assets  *assets.Registry
	Reviews *reviews.List
	Palette *palette.Palette

	doc     *sitedata.Document
	docPath string
	docErr  error

	logger *slog.Logger
}

// NewSession builds a fresh session with the fixed section set and default
// colors. A nil logger disables logging.
func NewSession(logger *slog.Logger) *Session {
	tags := taxonomy.NewStore()
	return &Session{
		Tags:    tags,
		Assets:  assets.NewRegistry(tags),
		Reviews: reviews.NewList(),
		Palette: palette.New(),
		logger:  logging.NewComponentLogger(logger, "studio"),
	}
}

// LoadDocument imports a site document and seeds the review list and palette
// from it. A failed import leaves the session usable without a document; the
// failure stays readable through DocumentError.
func (s *Session) LoadDocument(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		s.docErr = services.Wrap(services.ErrInvalidDocument, "studio", "load document", "read "+path, err)
		return s.docErr
	}
	doc, err := sitedata.Parse(data)
	if err != nil {
		s.docErr = err
		return err
	}

	s.doc = doc
	s.docPath = path
	s.docErr = nil

	if list := doc.Reviews(); len(list) > 0 {
		s.Reviews.Replace(list)
	}
	s.Palette.LoadStyles(doc.Styles())

	s.logger.Info("document loaded",
		logging.String("path", path),
		logging.Int("reviews", s.Reviews.Len()))
	return nil
}

// HasDocument reports whether a document import succeeded this session.
func (s *Session) HasDocument() bool {
	return s.doc != nil
}

// Document returns the imported document, or nil.
func (s *Session) Document() *sitedata.Document {
	return s.doc
}

// DocumentPath returns the path the document was imported from.
func (s *Session) DocumentPath() string {
	return s.docPath
}

// DocumentError returns the most recent document import failure.
func (s *Session) DocumentError() error {
	return s.docErr
}

// AddMedia stages a media file. The kind is derived from the file extension;
// images are probed for their pixel dimensions up front so a corrupt file
// fails here rather than mid-export.
func (s *Session) AddMedia(path string) (*assets.Asset, error) {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	kind, ok := assets.KindForExtension(ext)
	if !ok {
		return nil, services.Wrap(services.ErrValidation, "studio", "add media", "unsupported file type ."+ext, nil)
	}

	var width, height int
	if kind == assets.KindImage {
		var err error
		width, height, err = imaging.Probe(path)
		if err != nil {
			return nil, err
		}
	}

	asset, err := s.Assets.Add(kind, path, ext)
	if err != nil {
		return nil, err
	}
	asset.Width = width
	asset.Height = height

	s.logger.Info("media staged",
		logging.String(logging.FieldAsset, asset.ID),
		logging.String("path", path),
		logging.String("kind", string(kind)))
	return asset, nil
}

// DeleteCategory removes a category from the taxonomy and reassigns every
// asset that pointed at it.
func (s *Session) DeleteCategory(section, name string) {
	s.Tags.DeleteCategory(section, name)
	s.Assets.ReassignDeletedCategory(section, name)
	s.logger.Info("category deleted",
		logging.String("section", section),
		logging.String("category", name))
}

// DeleteSubcategory removes a subcategory and clears it from every asset that
// pointed at it.
func (s *Session) DeleteSubcategory(section, category, name string) {
	s.Tags.DeleteSubcategory(section, category, name)
	s.Assets.ReassignDeletedSubcategory(section, category, name)
	s.logger.Info("subcategory deleted",
		logging.String("section", section),
		logging.String("category", category),
		logging.String("subcategory", name))
}

// ExportInput snapshots the session for the export driver.
func (s *Session) ExportInput() export.Input {
	return export.Input{
		Tags:     s.Tags,
		Assets:   s.Assets.Items(),
		Reviews:  s.Reviews.Items(),
		Styles:   s.Palette.Styles(),
		Document: s.doc,
	}
}

// Reset returns the session to its initial state: default taxonomy and
// colors, no assets, no reviews, no document.
func (s *Session) Reset() {
	s.Tags = taxonomy.NewStore()
	s.Assets = assets.NewRegistry(s.Tags)
	s.Reviews = reviews.NewList()
	s.Palette = palette.New()
	s.doc = nil
	s.docPath = ""
	s.docErr = nil
	s.logger.Info("session reset")
}
