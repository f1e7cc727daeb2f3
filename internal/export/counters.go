package export

import (
	"regexp"
	"strconv"
	"strings"

	"siteforge/internal/assets"
	"siteforge/internal/sitedata"
	"siteforge/internal/taxonomy"
)

// CounterTable tracks the highest filename index seen per tag path key, so
// newly minted filenames continue the numbering of an imported document.
type CounterTable map[string]int

// Key flattens a tag path into the counter key and filename stem, e.g.
// "Products-Woodwork-Chairs". Empty levels are skipped.
func Key(path assets.TagPath) string {
	parts := make([]string, 0, 3)
	for _, part := range []string{path.Section, path.Category, path.Subcategory} {
		if part != "" {
			parts = append(parts, part)
		}
	}
	return strings.Join(parts, "-")
}

// Next bumps the counter for key and returns the new index. Unknown keys
// start at 1.
func (t CounterTable) Next(key string) int {
	t[key]++
	return t[key]
}

func (t CounterTable) record(key string, index int) {
	if index > t[key] {
		t[key] = index
	}
}

// ensure materializes a zero counter, so categories present in the document
// show up in the table even when empty.
func (t CounterTable) ensure(key string) {
	if _, ok := t[key]; !ok {
		t[key] = 0
	}
}

var (
	// mediaSuffix matches filenames ending in "<n>.<media ext>".
	mediaSuffix = regexp.MustCompile(`(?i)(\d+)\.(webp|mov|mp4|webm|m4v)$`)
	// mediaStem also accepts a bare trailing index with no extension, as
	// structured event media paths sometimes carry.
	mediaStem = regexp.MustCompile(`(?i)(\d+)(\.(webp|mov|mp4|webm|m4v))?$`)
)

// RecoverCounters scans a document's gallery, products, and events blocks and
// returns the highest index in use per key. The scan never mutates the
// document. Entries it cannot parse count as zero rather than failing the
// export.
func RecoverCounters(doc *sitedata.Document) CounterTable {
	counters := CounterTable{}

	for _, cat := range doc.GalleryCategories() {
		key := Key(assets.TagPath{Section: taxonomy.SectionGallery, Category: cat.Name})
		counters.ensure(key)
		for _, item := range cat.Items {
			if m := mediaSuffix.FindStringSubmatch(item); m != nil {
				counters.record(key, parseLeadingInt(m[1]))
			}
		}
	}

	for _, cat := range doc.ProductCategories() {
		for _, sub := range cat.Subcategories {
			key := Key(assets.TagPath{
				Section:     taxonomy.SectionProducts,
				Category:    cat.Name,
				Subcategory: sub.Name,
			})
			counters.ensure(key)
			for _, item := range sub.Items {
				ref := item.Media
				if ref == "" {
					ref = item.LegacyImg
				}
				counters.record(key, parseLeadingInt(ref))
			}
		}
	}

	if refs := doc.EventMediaRefs(); len(refs) > 0 {
		key := taxonomy.SectionEvents
		counters.ensure(key)
		for _, ref := range refs {
			counters.record(key, eventIndex(ref))
		}
	}

	return counters
}

func eventIndex(ref sitedata.EventMedia) int {
	if !ref.Structured {
		if m := mediaSuffix.FindStringSubmatch(ref.Value); m != nil {
			return parseLeadingInt(m[1])
		}
		return 0
	}
	if m := mediaStem.FindStringSubmatch(ref.Value); m != nil {
		return parseLeadingInt(m[1])
	}
	// Paths like "5-draft" still carry a usable leading index.
	return parseLeadingInt(ref.Value)
}

// parseLeadingInt reads the decimal digits at the start of s. No leading
// digits yields zero.
func parseLeadingInt(s string) int {
	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == 0 {
		return 0
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0
	}
	return n
}

// parseLeadingFloat reads the numeric prefix of s as a float, accepting an
// optional sign and decimal point. Anything unparseable yields zero, so a
// product value like "120.50 eur" exports as 120.5.
func parseLeadingFloat(s string) float64 {
	s = strings.TrimSpace(s)
	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	dotSeen := false
	for end < len(s) {
		c := s[end]
		if c == '.' && !dotSeen {
			dotSeen = true
			end++
			continue
		}
		if c < '0' || c > '9' {
			break
		}
		end++
	}
	v, err := strconv.ParseFloat(strings.TrimSuffix(s[:end], "."), 64)
	if err != nil {
		return 0
	}
	return v
}
