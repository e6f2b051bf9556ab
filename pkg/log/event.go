package log

import "time"

// Event represents a lattice log event.
// CBOR encoding uses integer keys for compactness.
type Event struct {
	// Timestamp when the event occurred (nanosecond precision).
	Timestamp time.Time `cbor:"1,keyasint"`

	// BuildID identifies the model generation (UUID).
	BuildID string `cbor:"2,keyasint"`

	// Source is the lattice component that emitted the event.
	Source Source `cbor:"3,keyasint"`

	// Category classifies the event type.
	Category Category `cbor:"4,keyasint"`

	// Subject names the section, layout or element concerned.
	Subject string `cbor:"5,keyasint,omitempty"`

	// Type-specific payload (one of these will be set).
	Build *BuildEvent     `cbor:"6,keyasint,omitempty"`
	Query *QueryEvent     `cbor:"7,keyasint,omitempty"`
	Drift *DriftEvent     `cbor:"8,keyasint,omitempty"`
	Error *ErrorEventData `cbor:"9,keyasint,omitempty"`
}

// Source indicates which lattice component emitted the event.
type Source uint8

const (
	// SourceModel is the model registry.
	SourceModel Source = 0
	// SourceSection is a section.
	SourceSection Source = 1
	// SourceLayout is a layout (beam path).
	SourceLayout Source = 2
)

// String returns the source name.
func (s Source) String() string {
	switch s {
	case SourceModel:
		return "MODEL"
	case SourceSection:
		return "SECTION"
	case SourceLayout:
		return "LAYOUT"
	default:
		return "UNKNOWN"
	}
}

// ParseSource parses a source name as returned by String.
func ParseSource(s string) (Source, bool) {
	for _, v := range []Source{SourceModel, SourceSection, SourceLayout} {
		if v.String() == s {
			return v, true
		}
	}
	return 0, false
}

// Category classifies the event type.
type Category uint8

const (
	// CategoryBuild indicates a model generation build.
	CategoryBuild Category = 0
	// CategoryQuery indicates an answered query.
	CategoryQuery Category = 1
	// CategoryDrift indicates drift synthesis.
	CategoryDrift Category = 2
	// CategoryError indicates an error event.
	CategoryError Category = 3
)

// String returns the category name.
func (c Category) String() string {
	switch c {
	case CategoryBuild:
		return "BUILD"
	case CategoryQuery:
		return "QUERY"
	case CategoryDrift:
		return "DRIFT"
	case CategoryError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// ParseCategory parses a category name as returned by String.
func ParseCategory(s string) (Category, bool) {
	for _, v := range []Category{CategoryBuild, CategoryQuery, CategoryDrift, CategoryError} {
		if v.String() == s {
			return v, true
		}
	}
	return 0, false
}

// BuildEvent captures a model generation build.
type BuildEvent struct {
	// Elements is the size of the flat element index.
	Elements int `cbor:"1,keyasint"`

	// Sections is the number of sections built.
	Sections int `cbor:"2,keyasint"`

	// Layouts is the number of layouts built.
	Layouts int `cbor:"3,keyasint"`

	// DefaultPath is the resolved default beam path.
	DefaultPath string `cbor:"4,keyasint,omitempty"`

	// Inferred lists sections inferred from machine areas.
	Inferred []string `cbor:"5,keyasint,omitempty"`

	// Dropped lists section members with no matching element.
	Dropped []string `cbor:"6,keyasint,omitempty"`

	// Reversals is the number of reversal diagnostics over all layouts.
	Reversals int `cbor:"7,keyasint,omitempty"`

	// Duration of the build. Stored as nanoseconds.
	Duration time.Duration `cbor:"8,keyasint"`
}

// QueryEvent captures an answered query.
type QueryEvent struct {
	// Operation is the query kind.
	Operation Operation `cbor:"1,keyasint"`

	// Path is the resolved beam path (empty for section queries).
	Path string `cbor:"2,keyasint,omitempty"`

	// Start and End bound the queried range.
	Start string `cbor:"3,keyasint,omitempty"`
	End   string `cbor:"4,keyasint,omitempty"`

	// Results is the number of returned entries.
	Results int `cbor:"5,keyasint"`
}

// Operation identifies a query kind.
type Operation uint8

const (
	// OpElementsBetween is a range/filter query.
	OpElementsBetween Operation = 0
	// OpSValues is an s-position query.
	OpSValues Operation = 1
	// OpCreateDrifts is a drift synthesis query.
	OpCreateDrifts Operation = 2
	// OpGetElement is a single element lookup.
	OpGetElement Operation = 3
)

// String returns the operation name.
func (o Operation) String() string {
	switch o {
	case OpElementsBetween:
		return "ELEMENTS_BETWEEN"
	case OpSValues:
		return "S_VALUES"
	case OpCreateDrifts:
		return "CREATE_DRIFTS"
	case OpGetElement:
		return "GET_ELEMENT"
	default:
		return "UNKNOWN"
	}
}

// DriftEvent captures the result of drift synthesis over one span.
type DriftEvent struct {
	// Drifts is the number of synthesized drifts.
	Drifts int `cbor:"1,keyasint"`

	// TotalLength is the summed drift length in metres.
	TotalLength float64 `cbor:"2,keyasint"`

	// Overlaps lists element pairs whose gap was negative.
	Overlaps []Overlap `cbor:"3,keyasint,omitempty"`
}

// Overlap describes two consecutive elements that overlap longitudinally.
type Overlap struct {
	Previous string  `cbor:"1,keyasint"`
	Next     string  `cbor:"2,keyasint"`
	Length   float64 `cbor:"3,keyasint"`
}

// ErrorEventData captures a failed operation.
type ErrorEventData struct {
	// Message is the error message.
	Message string `cbor:"1,keyasint"`

	// Context describes what operation was being performed.
	Context string `cbor:"2,keyasint,omitempty"`
}
