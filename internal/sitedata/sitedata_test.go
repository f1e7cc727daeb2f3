package sitedata

import (
	"encoding/json"
	"errors"
	"testing"

	"siteforge/internal/palette"
	"siteforge/internal/reviews"
	"siteforge/internal/services"
)

func TestParseRejectsInvalidJSON(t *testing.T) {
	if _, err := Parse([]byte("not json")); !errors.Is(err, services.ErrInvalidDocument) {
		t.Errorf("expected ErrInvalidDocument, got %v", err)
	}
	if _, err := Parse([]byte(`[1, 2, 3]`)); !errors.Is(err, services.ErrInvalidDocument) {
		t.Errorf("non-object root should be rejected, got %v", err)
	}
}

func TestRoundTripPreservesUnknownFields(t *testing.T) {
	input := []byte(`{
  "business": {"name": "Oak & Iron", "phone": "555-0101"},
  "gallery": {"categories": [{"name": "Main", "dir": "main", "items": ["1.webp"], "featured": true}]},
  "ratio": 0.125
}`)
	doc, err := Parse(input)
	if err != nil {
		t.Fatal(err)
	}
	doc.AppendGalleryItem("Main", "2.webp")

	out, err := doc.Marshal()
	if err != nil {
		t.Fatal(err)
	}
	var round map[string]any
	if err := json.Unmarshal(out, &round); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	business, _ := round["business"].(map[string]any)
	if business["phone"] != "555-0101" {
		t.Errorf("unmanaged fields must survive, got %v", round["business"])
	}
	if round["ratio"] != 0.125 {
		t.Errorf("numeric field changed: %v", round["ratio"])
	}
	cats := doc.GalleryCategories()
	if len(cats) != 1 || len(cats[0].Items) != 2 || cats[0].Items[1] != "2.webp" {
		t.Errorf("append failed: %+v", cats)
	}
}

func TestAppendGalleryItemCreatesCategory(t *testing.T) {
	doc := New()
	doc.AppendGalleryItem("Wall Art", "1.webp")

	out, err := doc.Marshal()
	if err != nil {
		t.Fatal(err)
	}
	var round struct {
		Gallery struct {
			Categories []struct {
				Name  string   `json:"name"`
				Dir   string   `json:"dir"`
				Items []string `json:"items"`
			} `json:"categories"`
		} `json:"gallery"`
	}
	if err := json.Unmarshal(out, &round); err != nil {
		t.Fatal(err)
	}
	cats := round.Gallery.Categories
	if len(cats) != 1 || cats[0].Name != "Wall Art" || cats[0].Dir != "wall-art" {
		t.Fatalf("unexpected category: %+v", cats)
	}
	if len(cats[0].Items) != 1 || cats[0].Items[0] != "1.webp" {
		t.Errorf("unexpected items: %v", cats[0].Items)
	}
}

func TestAppendProductItemCreatesLevels(t *testing.T) {
	doc := New()
	doc.AppendProductItem("Woodwork", "Side Tables", ProductEntry{
		Media: "1.webp",
		Name:  "Walnut table",
		Value: 249.5,
		Desc:  "hand finished",
	})
	doc.AppendProductItem("Woodwork", "Side Tables", ProductEntry{Media: "2.webp"})

	out, err := doc.Marshal()
	if err != nil {
		t.Fatal(err)
	}
	var round struct {
		Products struct {
			Categories []struct {
				Name          string `json:"name"`
				Dir           string `json:"dir"`
				Subcategories []struct {
					Name  string `json:"name"`
					Dir   string `json:"dir"`
					Desc  string `json:"desc"`
					Items []struct {
						Media string  `json:"media"`
						Name  string  `json:"name"`
						Value float64 `json:"value"`
						Desc  string  `json:"desc"`
					} `json:"items"`
				} `json:"subcategories"`
			} `json:"categories"`
		} `json:"products"`
	}
	if err := json.Unmarshal(out, &round); err != nil {
		t.Fatal(err)
	}
	cats := round.Products.Categories
	if len(cats) != 1 || cats[0].Dir != "woodwork" || len(cats[0].Subcategories) != 1 {
		t.Fatalf("unexpected categories: %+v", cats)
	}
	sub := cats[0].Subcategories[0]
	if sub.Dir != "side-tables" || sub.Desc != "" {
		t.Errorf("unexpected subcategory: %+v", sub)
	}
	if len(sub.Items) != 2 || sub.Items[0].Value != 249.5 || sub.Items[1].Media != "2.webp" {
		t.Errorf("unexpected items: %+v", sub.Items)
	}
}

func TestProductCategoriesReadsLegacyImgField(t *testing.T) {
	doc, err := Parse([]byte(`{
  "products": {"categories": [{
    "name": "Woodwork",
    "subcategories": [{"name": "Chairs", "items": [{"img": 7}, {"media": "3.webp"}]}]
  }]}
}`))
	if err != nil {
		t.Fatal(err)
	}
	cats := doc.ProductCategories()
	if len(cats) != 1 || len(cats[0].Subcategories) != 1 {
		t.Fatalf("unexpected read: %+v", cats)
	}
	items := cats[0].Subcategories[0].Items
	if len(items) != 2 {
		t.Fatalf("items: %+v", items)
	}
	if items[0].LegacyImg != "7" || items[0].Media != "" {
		t.Errorf("legacy numeric img should read as its JSON text: %+v", items[0])
	}
	if items[1].Media != "3.webp" {
		t.Errorf("media field not read: %+v", items[1])
	}
}

func TestAppendEventAndMediaRefs(t *testing.T) {
	doc, err := Parse([]byte(`{
  "events": {"list": [
    {"media": "2.webp", "name": "old"},
    {"media": {"path": "5", "alt": "poster"}}
  ]}
}`))
	if err != nil {
		t.Fatal(err)
	}
	doc.AppendEvent(EventEntry{
		Media:        "6.mp4",
		Name:         "Open day",
		Announce:     true,
		DurationType: DurationList,
		Dates:        []EventDate{{Date: "2026-09-01", Time: "10am - 5pm"}, {Date: "2026-09-02", Closed: true}},
	})

	refs := doc.EventMediaRefs()
	if len(refs) != 3 {
		t.Fatalf("refs: %+v", refs)
	}
	if refs[0].Structured || refs[0].Value != "2.webp" {
		t.Errorf("string media misread: %+v", refs[0])
	}
	if !refs[1].Structured || refs[1].Value != "5" {
		t.Errorf("structured media misread: %+v", refs[1])
	}
	if refs[2].Value != "6.mp4" {
		t.Errorf("appended media misread: %+v", refs[2])
	}

	out, err := doc.Marshal()
	if err != nil {
		t.Fatal(err)
	}
	var round struct {
		Events struct {
			List []struct {
				Name     string `json:"name"`
				Announce bool   `json:"announce"`
				Duration struct {
					Type string `json:"type"`
					List []struct {
						Date   string `json:"date"`
						Closed bool   `json:"closed"`
					} `json:"list"`
				} `json:"duration"`
			} `json:"list"`
		} `json:"events"`
	}
	if err := json.Unmarshal(out, &round); err != nil {
		t.Fatal(err)
	}
	evt := round.Events.List[2]
	if evt.Name != "Open day" || !evt.Announce || evt.Duration.Type != "list" {
		t.Errorf("unexpected event: %+v", evt)
	}
	if len(evt.Duration.List) != 2 || !evt.Duration.List[1].Closed {
		t.Errorf("unexpected dates: %+v", evt.Duration.List)
	}
}

func TestReviewsAndStyles(t *testing.T) {
	doc := New()
	doc.SetReviews([]reviews.Review{{Rating: 4, Name: "Ana", Review: "great"}})
	doc.SetStyles(palette.Styles{A1: "#111111", A2: "#222222", B1: "#333333", B2: "#444444"})

	out, err := doc.Marshal()
	if err != nil {
		t.Fatal(err)
	}
	round, err := Parse(out)
	if err != nil {
		t.Fatal(err)
	}
	got := round.Reviews()
	if len(got) != 1 || got[0] != (reviews.Review{Rating: 4, Name: "Ana", Review: "great"}) {
		t.Errorf("reviews round trip: %+v", got)
	}
	if s := round.Styles(); s.A1 != "#111111" || s.B2 != "#444444" {
		t.Errorf("styles round trip: %+v", s)
	}
}

func TestReadsOnEmptyDocument(t *testing.T) {
	doc := New()
	if doc.Reviews() != nil || doc.GalleryCategories() != nil || doc.ProductCategories() != nil || doc.EventMediaRefs() != nil {
		t.Error("reads on an empty document should yield nothing")
	}
	if s := doc.Styles(); s != (palette.Styles{}) {
		t.Errorf("styles = %+v", s)
	}
}
