package assets

import "strings"

// MediaKind distinguishes still images (re-encoded on export) from videos
// (passed through unmodified).
type MediaKind string

const (
	KindImage MediaKind = "image"
	KindVideo MediaKind = "video"
)

// PlacementMode selects how an image is framed on export.
type PlacementMode string

const (
	// ModeAuto lets the export crop the image automatically.
	ModeAuto PlacementMode = "auto"
	// ModeManual applies the operator's pan/zoom transform.
	ModeManual PlacementMode = "manual"
)

// Transform is the operator-specified pan/zoom state for manual placement.
type Transform struct {
	Scale float64
	X     float64
	Y     float64
}

// Identity returns the neutral transform.
func Identity() Transform {
	return Transform{Scale: 1}
}

// TagPath addresses an asset within the taxonomy. Category and Subcategory
// are empty when unset.
type TagPath struct {
	Section     string
	Category    string
	Subcategory string
}

// ProductDetails carries the product metadata entered for a Products asset.
// Value stays a string until export, where it is parsed as a float.
type ProductDetails struct {
	Name        string
	Value       string
	Description string
}

// DurationKind selects how an event's duration is expressed.
type DurationKind string

const (
	DurationRange DurationKind = "range"
	DurationList  DurationKind = "list"
)

// DateRange is a start/end pair of date strings.
type DateRange struct {
	Start string
	End   string
}

// EventDate is a single dated entry in an event's date list.
type EventDate struct {
	Date   string
	Time   string
	Closed bool
}

// EventDetails carries the event metadata entered for an Events asset. Both
// the range and the date list are retained; Duration selects which one is
// meant.
type EventDetails struct {
	Name        string
	Description string
	Announce    bool
	Duration    DurationKind
	Range       DateRange
	Dates       []EventDate
}

// Asset is one uploaded media file with its tag assignment and per-section
// payloads. Product and Event details survive moves to other sections so
// switching back preserves previously entered data.
type Asset struct {
	ID         string
	Kind       MediaKind
	SourcePath string
	// Extension is the lowercased source extension without the dot.
	Extension string
	Width     int
	Height    int

	Path      TagPath
	Mode      PlacementMode
	Transform Transform

	Product *ProductDetails
	Event   *EventDetails
}

var imageExtensions = map[string]bool{
	"jpg": true, "jpeg": true, "png": true, "gif": true, "webp": true, "bmp": true,
}

var videoExtensions = map[string]bool{
	"mov": true, "mp4": true, "webm": true, "m4v": true,
}

// KindForExtension classifies a file extension (with or without leading dot)
// as image or video media. The second return value is false for anything else.
func KindForExtension(ext string) (MediaKind, bool) {
	normalized := strings.ToLower(strings.TrimPrefix(ext, "."))
	switch {
	case imageExtensions[normalized]:
		return KindImage, true
	case videoExtensions[normalized]:
		return KindVideo, true
	default:
		return "", false
	}
}
