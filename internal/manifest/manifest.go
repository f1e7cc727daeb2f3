// Package manifest reads the TOML batch file that describes one authoring
// run: the document to import, taxonomy additions, the media files to stage
// with their tags and details, reviews, and color overrides.
package manifest

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"siteforge/internal/assets"
	"siteforge/internal/palette"
	"siteforge/internal/services"
	"siteforge/internal/studio"
)

// Category declares a taxonomy addition. Declaring a category that already
// exists is not an error, so manifests can be re-run.
type Category struct {
	Section       string   `toml:"section"`
	Name          string   `toml:"name"`
	Subcategories []string `toml:"subcategories"`
}

// Product carries product details for one asset entry.
type Product struct {
	Name        string `toml:"name"`
	Value       string `toml:"value"`
	Description string `toml:"description"`
}

// EventDate is one dated entry in an event's schedule.
type EventDate struct {
	Date   string `toml:"date"`
	Time   string `toml:"time"`
	Closed bool   `toml:"closed"`
}

// EventRange is a start/end pair of dates.
type EventRange struct {
	Start string `toml:"start"`
	End   string `toml:"end"`
}

// Event carries event details for one asset entry.
type Event struct {
	Name        string      `toml:"name"`
	Description string      `toml:"description"`
	Announce    bool        `toml:"announce"`
	Duration    string      `toml:"duration"`
	Range       EventRange  `toml:"range"`
	Dates       []EventDate `toml:"dates"`
}

// Asset stages one media file. Path is resolved relative to the manifest.
type Asset struct {
	Path        string   `toml:"path"`
	Section     string   `toml:"section"`
	Category    string   `toml:"category"`
	Subcategory string   `toml:"subcategory"`
	Mode        string   `toml:"mode"`
	Scale       float64  `toml:"scale"`
	X           float64  `toml:"x"`
	Y           float64  `toml:"y"`
	Product     *Product `toml:"product"`
	Event       *Event   `toml:"event"`
}

// Review is one review entry. A zero rating defaults to five stars.
type Review struct {
	Rating int    `toml:"rating"`
	Name   string `toml:"name"`
	Review string `toml:"review"`
}

// Styles overrides palette state. Empty strings and nil mixes leave the
// session value in place.
type Styles struct {
	A1     string `toml:"a1"`
	A2     string `toml:"a2"`
	B1     string `toml:"b1"`
	B2     string `toml:"b2"`
	B1Mode string `toml:"b1_mode"`
	B2Mode string `toml:"b2_mode"`
	B1Mix  *int   `toml:"b1_mix"`
	B2Mix  *int   `toml:"b2_mix"`
}

// Manifest is one parsed batch file.
type Manifest struct {
	SiteData   string     `toml:"site_data"`
	Categories []Category `toml:"categories"`
	Assets     []Asset    `toml:"assets"`
	Reviews    []Review   `toml:"reviews"`
	Styles     Styles     `toml:"styles"`

	// dir is the manifest's directory, for resolving relative paths.
	dir string
}

// Load parses a manifest file.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, services.Wrap(services.ErrConfiguration, "manifest", "load", "read "+path, err)
	}
	var m Manifest
	if err := toml.Unmarshal(data, &m); err != nil {
		return nil, services.Wrap(services.ErrConfiguration, "manifest", "load", "parse "+path, err)
	}
	m.dir = filepath.Dir(path)
	return &m, nil
}

// Apply replays the manifest into the session: document import, taxonomy
// additions, asset staging with tags and details, reviews, and palette
// overrides, in that order.
func (m *Manifest) Apply(session *studio.Session) error {
	if m.SiteData != "" {
		if err := session.LoadDocument(m.resolve(m.SiteData)); err != nil {
			return err
		}
	}

	if err := m.ApplyTaxonomy(session); err != nil {
		return err
	}

	for i, entry := range m.Assets {
		if err := m.applyAsset(session, entry); err != nil {
			return services.Wrap(services.ErrValidation, "manifest", "apply",
				fmt.Sprintf("asset %d (%s)", i+1, entry.Path), err)
		}
	}

	for _, entry := range m.Reviews {
		review := session.Reviews.Add()
		if entry.Rating != 0 {
			review.Rating = entry.Rating
		}
		review.Name = entry.Name
		review.Review = entry.Review
	}

	return m.applyStyles(session)
}

// ApplyTaxonomy replays only the category declarations. Already-existing
// names are skipped, so running twice is safe.
func (m *Manifest) ApplyTaxonomy(session *studio.Session) error {
	for _, cat := range m.Categories {
		if err := session.Tags.AddCategory(cat.Section, cat.Name); err != nil && !errors.Is(err, services.ErrDuplicateName) {
			return err
		}
		for _, sub := range cat.Subcategories {
			if err := session.Tags.AddSubcategory(cat.Section, cat.Name, sub); err != nil && !errors.Is(err, services.ErrDuplicateName) {
				return err
			}
		}
	}
	return nil
}

func (m *Manifest) applyAsset(session *studio.Session, entry Asset) error {
	asset, err := session.AddMedia(m.resolve(entry.Path))
	if err != nil {
		return err
	}

	if entry.Section != "" {
		if err := session.Assets.AssignSection(asset.ID, entry.Section); err != nil {
			return err
		}
	}
	if entry.Category != "" {
		if err := session.Assets.AssignCategory(asset.ID, entry.Category); err != nil {
			return err
		}
	}
	if entry.Subcategory != "" {
		if err := session.Assets.AssignSubcategory(asset.ID, entry.Subcategory); err != nil {
			return err
		}
	}

	switch entry.Mode {
	case "", string(assets.ModeAuto):
	case string(assets.ModeManual):
		transform := assets.Transform{Scale: entry.Scale, X: entry.X, Y: entry.Y}
		if err := session.Assets.SetPlacement(asset.ID, assets.ModeManual, transform); err != nil {
			return err
		}
	default:
		return services.Wrap(services.ErrValidation, "manifest", "apply", "unknown placement mode "+entry.Mode, nil)
	}

	if entry.Product != nil {
		err := session.Assets.UpdateProduct(asset.ID, assets.ProductDetails{
			Name:        entry.Product.Name,
			Value:       entry.Product.Value,
			Description: entry.Product.Description,
		})
		if err != nil {
			return err
		}
	}
	if entry.Event != nil {
		details := assets.EventDetails{
			Name:        entry.Event.Name,
			Description: entry.Event.Description,
			Announce:    entry.Event.Announce,
			Duration:    assets.DurationKind(entry.Event.Duration),
			Range:       assets.DateRange(entry.Event.Range),
		}
		if details.Duration == "" {
			details.Duration = assets.DurationList
		}
		for _, date := range entry.Event.Dates {
			details.Dates = append(details.Dates, assets.EventDate(date))
		}
		if err := session.Assets.UpdateEvent(asset.ID, details); err != nil {
			return err
		}
	}
	return nil
}

// applyStyles replays palette overrides. Accent colors go first so derived
// tints see them, then modes and mixes, then explicit tint colors so a
// manifest can pin a tint regardless of mode.
func (m *Manifest) applyStyles(session *studio.Session) error {
	s := m.Styles
	for key, value := range map[string]string{"a1": s.A1, "a2": s.A2} {
		if value != "" {
			if err := session.Palette.SetColor(key, value); err != nil {
				return err
			}
		}
	}
	for key, mode := range map[string]string{"b1": s.B1Mode, "b2": s.B2Mode} {
		if mode == "" {
			continue
		}
		if mode != string(palette.ModeLighten) && mode != string(palette.ModeManual) {
			return services.Wrap(services.ErrValidation, "manifest", "apply", "unknown palette mode "+mode, nil)
		}
		if err := session.Palette.SetMode(key, palette.Mode(mode)); err != nil {
			return err
		}
	}
	for key, mix := range map[string]*int{"b1": s.B1Mix, "b2": s.B2Mix} {
		if mix != nil {
			if err := session.Palette.SetMix(key, *mix); err != nil {
				return err
			}
		}
	}
	for key, value := range map[string]string{"b1": s.B1, "b2": s.B2} {
		if value != "" {
			if err := session.Palette.SetColor(key, value); err != nil {
				return err
			}
		}
	}
	return nil
}

func (m *Manifest) resolve(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(m.dir, path)
}
