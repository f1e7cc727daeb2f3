package export

import (
	"testing"

	"siteforge/internal/assets"
	"siteforge/internal/sitedata"
)

func TestKey(t *testing.T) {
	tests := []struct {
		path assets.TagPath
		want string
	}{
		{assets.TagPath{Section: "Gallery", Category: "Main"}, "Gallery-Main"},
		{assets.TagPath{Section: "Products", Category: "Woodwork", Subcategory: "Chairs"}, "Products-Woodwork-Chairs"},
		{assets.TagPath{Section: "Events"}, "Events"},
		{assets.TagPath{Section: "Gallery", Subcategory: "Orphan"}, "Gallery-Orphan"},
	}
	for _, tt := range tests {
		if got := Key(tt.path); got != tt.want {
			t.Errorf("Key(%+v) = %q, want %q", tt.path, got, tt.want)
		}
	}
}

func TestRecoverCounters(t *testing.T) {
	doc, err := sitedata.Parse([]byte(`{
  "gallery": {"categories": [
    {"name": "Main", "items": ["1.webp", "7.webp", "3.mp4", "cover.webp"]},
    {"name": "Wall Art", "items": []}
  ]},
  "products": {"categories": [{
    "name": "Woodwork",
    "subcategories": [
      {"name": "Chairs", "items": [{"media": "4.webp"}, {"img": 9}]},
      {"name": "Tables", "items": []}
    ]
  }]},
  "events": {"list": [
    {"media": "2.webp"},
    {"media": {"path": "5"}},
    {"media": {"path": "6-draft"}}
  ]}
}`))
	if err != nil {
		t.Fatal(err)
	}

	counters := RecoverCounters(doc)
	tests := map[string]int{
		"Gallery-Main":             7,
		"Gallery-Wall Art":         0,
		"Products-Woodwork-Chairs": 9,
		"Products-Woodwork-Tables": 0,
		"Events":                   6,
	}
	for key, want := range tests {
		got, ok := counters[key]
		if !ok {
			t.Errorf("missing counter %q", key)
			continue
		}
		if got != want {
			t.Errorf("counter %q = %d, want %d", key, got, want)
		}
	}
}

func TestRecoverCountersNeverMutates(t *testing.T) {
	doc, err := sitedata.Parse([]byte(`{"gallery": {"categories": [{"name": "Main", "items": ["2.webp"]}]}}`))
	if err != nil {
		t.Fatal(err)
	}
	before, err := doc.Marshal()
	if err != nil {
		t.Fatal(err)
	}
	RecoverCounters(doc)
	after, err := doc.Marshal()
	if err != nil {
		t.Fatal(err)
	}
	if string(before) != string(after) {
		t.Error("counter recovery must not change the document")
	}
}

func TestCounterTableNext(t *testing.T) {
	counters := CounterTable{"Gallery-Main": 7}
	if n := counters.Next("Gallery-Main"); n != 8 {
		t.Errorf("Next = %d, want 8", n)
	}
	if n := counters.Next("Gallery-New"); n != 1 {
		t.Errorf("fresh key Next = %d, want 1", n)
	}
}

func TestParseLeadingInt(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"3.webp", 3},
		{"12", 12},
		{"007.mov", 7},
		{"cover.webp", 0},
		{"", 0},
	}
	for _, tt := range tests {
		if got := parseLeadingInt(tt.in); got != tt.want {
			t.Errorf("parseLeadingInt(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestParseLeadingFloat(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"120.50", 120.5},
		{"120.50 eur", 120.5},
		{" 35 ", 35},
		{"-4.5", -4.5},
		{"free", 0},
		{"", 0},
		{"12.", 12},
	}
	for _, tt := range tests {
		if got := parseLeadingFloat(tt.in); got != tt.want {
			t.Errorf("parseLeadingFloat(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
