package export

import (
	"fmt"

	"siteforge/internal/assets"
	"siteforge/internal/sitedata"
	"siteforge/internal/taxonomy"
)

// PlannedFile is one output file the export will emit.
type PlannedFile struct {
	Asset    *assets.Asset
	Filename string
	// Key is the counter key the filename was minted under, empty for
	// singleton sections.
	Key string
	// Index is the minted counter value, zero for singleton sections.
	Index int
}

// BuildPlan walks the assets in registry order, mints an output filename for
// each, and records the matching document entry for multi-item sections.
// Singleton sections produce a fixed filename and leave the document alone.
// Counters are advanced as filenames are minted, so the caller seeds them
// with RecoverCounters first.
func BuildPlan(items []*assets.Asset, tags *taxonomy.Store, doc *sitedata.Document, counters CounterTable) []PlannedFile {
	plan := make([]PlannedFile, 0, len(items))
	for _, asset := range items {
		ext := ".webp"
		if asset.Kind == assets.KindVideo {
			ext = "." + asset.Extension
		}

		section, ok := tags.Section(asset.Path.Section)
		if ok && section.Kind == taxonomy.KindSingleton {
			plan = append(plan, PlannedFile{
				Asset:    asset,
				Filename: asset.Path.Section + ext,
			})
			continue
		}

		key := Key(asset.Path)
		index := counters.Next(key)
		item := fmt.Sprintf("%d%s", index, ext)
		recordEntry(doc, asset, item)

		plan = append(plan, PlannedFile{
			Asset:    asset,
			Filename: fmt.Sprintf("%s-%d%s", key, index, ext),
			Key:      key,
			Index:    index,
		})
	}
	return plan
}

// recordEntry appends the asset's document entry for its section. The item
// reference is the bare "<index><ext>" form the site templates resolve
// against each section's directory.
func recordEntry(doc *sitedata.Document, asset *assets.Asset, item string) {
	switch asset.Path.Section {
	case taxonomy.SectionGallery:
		doc.AppendGalleryItem(asset.Path.Category, item)

	case taxonomy.SectionProducts:
		details := asset.Product
		if details == nil {
			details = &assets.ProductDetails{}
		}
		doc.AppendProductItem(asset.Path.Category, asset.Path.Subcategory, sitedata.ProductEntry{
			Media: item,
			Name:  details.Name,
			Value: parseLeadingFloat(details.Value),
			Desc:  details.Description,
		})

	case taxonomy.SectionEvents:
		details := asset.Event
		if details == nil {
			details = &assets.EventDetails{Duration: assets.DurationList}
		}
		dates := make([]sitedata.EventDate, 0, len(details.Dates))
		for _, date := range details.Dates {
			dates = append(dates, sitedata.EventDate{
				Date:   date.Date,
				Time:   date.Time,
				Closed: date.Closed,
			})
		}
		doc.AppendEvent(sitedata.EventEntry{
			Media:        item,
			Name:         details.Name,
			Desc:         details.Description,
			Announce:     details.Announce,
			DurationType: string(details.Duration),
			RangeStart:   details.Range.Start,
			RangeEnd:     details.Range.End,
			Dates:        dates,
		})
	}
}
