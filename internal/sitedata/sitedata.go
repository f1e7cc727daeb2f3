// Package sitedata models the site configuration document. The document is
// held as a generic JSON tree so that every field the tool does not manage
// survives an import/export round trip untouched. Typed accessors cover the
// handful of blocks the export pipeline reads and mutates.
package sitedata

import (
	"bytes"
	"encoding/json"

	"siteforge/internal/palette"
	"siteforge/internal/reviews"
	"siteforge/internal/services"
	"siteforge/internal/textutil"
)

// Duration type values stored in event entries.
const (
	DurationRange = "range"
	DurationList  = "list"
)

// Document is a site configuration document rooted at a JSON object.
type Document struct {
	root map[string]any
}

// New returns an empty document.
func New() *Document {
	return &Document{root: map[string]any{}}
}

// Parse decodes a document from JSON. Numbers are kept as json.Number so
// serializing the document back does not reformat values the tool never
// touched.
func Parse(data []byte) (*Document, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var root map[string]any
	if err := dec.Decode(&root); err != nil {
		return nil, services.Wrap(services.ErrInvalidDocument, "sitedata", "parse", "decode document", err)
	}
	return &Document{root: root}, nil
}

// Marshal serializes the document with two-space indentation.
func (d *Document) Marshal() ([]byte, error) {
	data, err := json.MarshalIndent(d.root, "", "  ")
	if err != nil {
		return nil, services.Wrap(services.ErrInvalidDocument, "sitedata", "marshal", "encode document", err)
	}
	return data, nil
}

// object returns the object at key under parent, creating it when missing or
// not an object.
func object(parent map[string]any, key string) map[string]any {
	if m, ok := parent[key].(map[string]any); ok {
		return m
	}
	m := map[string]any{}
	parent[key] = m
	return m
}

func stringField(m map[string]any, key string) string {
	s, _ := m[key].(string)
	return s
}

func intField(m map[string]any, key string) int {
	switch v := m[key].(type) {
	case json.Number:
		n, err := v.Int64()
		if err != nil {
			return 0
		}
		return int(n)
	case float64:
		return int(v)
	case int:
		return v
	}
	return 0
}

// SetReviews replaces the reviews block with the given list.
func (d *Document) SetReviews(items []reviews.Review) {
	list := make([]any, 0, len(items))
	for _, r := range items {
		list = append(list, map[string]any{
			"rating": r.Rating,
			"name":   r.Name,
			"review": r.Review,
		})
	}
	object(d.root, "reviews")["list"] = list
}

// Reviews reads the reviews block. A missing or malformed block yields an
// empty list.
func (d *Document) Reviews() []reviews.Review {
	block, ok := d.root["reviews"].(map[string]any)
	if !ok {
		return nil
	}
	list, ok := block["list"].([]any)
	if !ok {
		return nil
	}
	out := make([]reviews.Review, 0, len(list))
	for _, entry := range list {
		m, ok := entry.(map[string]any)
		if !ok {
			continue
		}
		out = append(out, reviews.Review{
			Rating: intField(m, "rating"),
			Name:   stringField(m, "name"),
			Review: stringField(m, "review"),
		})
	}
	return out
}

// SetStyles writes the four palette colors into the styles block.
func (d *Document) SetStyles(s palette.Styles) {
	styles := object(d.root, "styles")
	styles["a1"] = s.A1
	styles["a2"] = s.A2
	styles["b1"] = s.B1
	styles["b2"] = s.B2
}

// Styles reads the styles block. Missing colors come back empty.
func (d *Document) Styles() palette.Styles {
	block, ok := d.root["styles"].(map[string]any)
	if !ok {
		return palette.Styles{}
	}
	return palette.Styles{
		A1: stringField(block, "a1"),
		A2: stringField(block, "a2"),
		B1: stringField(block, "b1"),
		B2: stringField(block, "b2"),
	}
}

// GalleryCategory is a read view of one gallery category.
type GalleryCategory struct {
	Name  string
	Items []string
}

// GalleryCategories reads the gallery block. Entries that are not string
// filenames are skipped.
func (d *Document) GalleryCategories() []GalleryCategory {
	cats, ok := arrayAt(d.root, "gallery", "categories")
	if !ok {
		return nil
	}
	out := make([]GalleryCategory, 0, len(cats))
	for _, entry := range cats {
		m, ok := entry.(map[string]any)
		if !ok {
			continue
		}
		cat := GalleryCategory{Name: stringField(m, "name")}
		if items, ok := m["items"].([]any); ok {
			for _, item := range items {
				if s, ok := item.(string); ok {
					cat.Items = append(cat.Items, s)
				}
			}
		}
		out = append(out, cat)
	}
	return out
}

// AppendGalleryItem adds a filename to the named gallery category, creating
// the category (and the gallery block itself) when missing. New categories
// get a dir derived from the name.
func (d *Document) AppendGalleryItem(category, item string) {
	cats := ensureArray(object(d.root, "gallery"), "categories")
	cat := findNamed(cats.get(), category)
	if cat == nil {
		cat = map[string]any{
			"name":  category,
			"dir":   textutil.Slug(category),
			"items": []any{},
		}
		cats.append(cat)
	}
	items, _ := cat["items"].([]any)
	cat["items"] = append(items, item)
}

// ProductItem is a read view of one product entry, carrying both the current
// media field and the older img field some documents still use.
type ProductItem struct {
	Media     string
	LegacyImg string
}

// ProductSubcategory is a read view of one product subcategory.
type ProductSubcategory struct {
	Name  string
	Items []ProductItem
}

// ProductCategory is a read view of one product category.
type ProductCategory struct {
	Name          string
	Subcategories []ProductSubcategory
}

// ProductCategories reads the products block.
func (d *Document) ProductCategories() []ProductCategory {
	cats, ok := arrayAt(d.root, "products", "categories")
	if !ok {
		return nil
	}
	out := make([]ProductCategory, 0, len(cats))
	for _, entry := range cats {
		m, ok := entry.(map[string]any)
		if !ok {
			continue
		}
		cat := ProductCategory{Name: stringField(m, "name")}
		if subs, ok := m["subcategories"].([]any); ok {
			for _, subEntry := range subs {
				sm, ok := subEntry.(map[string]any)
				if !ok {
					continue
				}
				sub := ProductSubcategory{Name: stringField(sm, "name")}
				if items, ok := sm["items"].([]any); ok {
					for _, item := range items {
						im, ok := item.(map[string]any)
						if !ok {
							continue
						}
						sub.Items = append(sub.Items, ProductItem{
							Media:     stringField(im, "media"),
							LegacyImg: rawString(im["img"]),
						})
					}
				}
				cat.Subcategories = append(cat.Subcategories, sub)
			}
		}
		out = append(out, cat)
	}
	return out
}

// ProductEntry is a product item to append to the document.
type ProductEntry struct {
	Media string
	Name  string
	Value float64
	Desc  string
}

// AppendProductItem adds a product entry under the named category and
// subcategory, creating both levels when missing. New subcategories get an
// empty desc field for the operator to fill in later.
func (d *Document) AppendProductItem(category, subcategory string, entry ProductEntry) {
	cats := ensureArray(object(d.root, "products"), "categories")
	cat := findNamed(cats.get(), category)
	if cat == nil {
		cat = map[string]any{
			"name":          category,
			"dir":           textutil.Slug(category),
			"subcategories": []any{},
		}
		cats.append(cat)
	}

	subs, _ := cat["subcategories"].([]any)
	sub := findNamed(subs, subcategory)
	if sub == nil {
		sub = map[string]any{
			"name":  subcategory,
			"dir":   textutil.Slug(subcategory),
			"desc":  "",
			"items": []any{},
		}
		cat["subcategories"] = append(subs, sub)
	}

	items, _ := sub["items"].([]any)
	sub["items"] = append(items, map[string]any{
		"media": entry.Media,
		"name":  entry.Name,
		"value": entry.Value,
		"desc":  entry.Desc,
	})
}

// EventMedia is the media reference of one event entry. Structured reports
// whether the reference was an object carrying a path rather than a plain
// filename string.
type EventMedia struct {
	Value      string
	Structured bool
}

// EventMediaRefs reads the media references of every event entry, for
// filename counter recovery.
func (d *Document) EventMediaRefs() []EventMedia {
	list, ok := arrayAt(d.root, "events", "list")
	if !ok {
		return nil
	}
	out := make([]EventMedia, 0, len(list))
	for _, entry := range list {
		m, ok := entry.(map[string]any)
		if !ok {
			continue
		}
		switch media := m["media"].(type) {
		case string:
			out = append(out, EventMedia{Value: media})
		case map[string]any:
			out = append(out, EventMedia{Value: rawString(media["path"]), Structured: true})
		}
	}
	return out
}

// EventDate is one entry in an event's date list.
type EventDate struct {
	Date   string
	Time   string
	Closed bool
}

// EventEntry is an event to append to the document.
type EventEntry struct {
	Media        string
	Name         string
	Desc         string
	Announce     bool
	DurationType string
	RangeStart   string
	RangeEnd     string
	Dates        []EventDate
}

// AppendEvent adds an event entry, creating the events block when missing.
func (d *Document) AppendEvent(entry EventEntry) {
	events := object(d.root, "events")
	list, _ := events["list"].([]any)

	dates := make([]any, 0, len(entry.Dates))
	for _, date := range entry.Dates {
		dates = append(dates, map[string]any{
			"date":   date.Date,
			"time":   date.Time,
			"closed": date.Closed,
		})
	}

	events["list"] = append(list, map[string]any{
		"media":    entry.Media,
		"name":     entry.Name,
		"desc":     entry.Desc,
		"announce": entry.Announce,
		"duration": map[string]any{
			"type": entry.DurationType,
			"range": map[string]any{
				"start": entry.RangeStart,
				"end":   entry.RangeEnd,
			},
			"list": dates,
		},
	})
}

// arrayAt returns root[block][key] as an array when both levels exist.
func arrayAt(root map[string]any, block, key string) ([]any, bool) {
	m, ok := root[block].(map[string]any)
	if !ok {
		return nil, false
	}
	arr, ok := m[key].([]any)
	return arr, ok
}

// rawString renders a leaf value as a string. Numbers keep their JSON text,
// which matters for media references stored as bare numbers.
func rawString(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case json.Number:
		return val.String()
	}
	return ""
}

// findNamed returns the first object in the array whose name field matches.
func findNamed(arr []any, name string) map[string]any {
	for _, entry := range arr {
		if m, ok := entry.(map[string]any); ok && stringField(m, "name") == name {
			return m
		}
	}
	return nil
}

// arrayRef lets mutation helpers append to an array stored in a map without
// losing the reallocated slice.
type arrayRef struct {
	parent map[string]any
	key    string
}

func ensureArray(parent map[string]any, key string) arrayRef {
	if _, ok := parent[key].([]any); !ok {
		parent[key] = []any{}
	}
	return arrayRef{parent: parent, key: key}
}

func (r arrayRef) get() []any {
	arr, _ := r.parent[r.key].([]any)
	return arr
}

func (r arrayRef) append(v any) {
	r.parent[r.key] = append(r.get(), v)
}
