// Package assembler turns a stream of SAX events into batches of KML
// placemarks.
//
// The assembler is a push-down state machine: it tracks the open element
// path, builds nested geometry values on a stack, attaches them to the
// placemark being assembled, and hands completed placemarks to a flush
// callback in document-order batches. It recognizes the KML geometry
// grammar by matching element-path suffixes; everything else in the
// document passes through untouched.
package assembler

import (
	"github.com/beetlebugorg/kml/internal/sax"
)

// status gates placemark processing on the document-level kml element.
type status int

const (
	statusOutside status = iota // before <kml> or after </kml>
	statusInside                // between <kml> and </kml>
)

// Config configures an Assembler.
type Config struct {
	// BatchSize is the flush threshold: a flush happens once more than
	// BatchSize placemarks are pending. Batches carry BatchSize+1
	// placemarks except the final remainder. Values <= 0 use
	// DefaultBatchSize.
	BatchSize int

	// Flush delivers a batch of completed placemarks in document order.
	// For non-final batches it must block until the consumer is ready for
	// more; that blocking is the parser's backpressure. The final flush
	// must not wait.
	Flush FlushFunc

	// Warn, when non-nil, receives recovered errors: malformed coordinate
	// fragments and (with ValidateCoordinates) out-of-range positions.
	// The parse continues regardless.
	Warn func(error)

	// ValidateCoordinates enables lon/lat range checking on parsed
	// positions, reported through Warn.
	ValidateCoordinates bool
}

// DefaultBatchSize is the flush threshold used when Config.BatchSize is
// not set.
const DefaultBatchSize = 64

// Assembler consumes SAX events for one KML document. It implements
// sax.Handler and is owned by a single goroutine; the only place it blocks
// is inside the Flush callback.
type Assembler struct {
	batchSize int
	flush     FlushFunc
	warn      func(error)
	validate  bool

	status  status
	pm      *Placemark
	elems   elementStack
	geoms   []Geometry
	pending []Placemark
	last    string
}

// New creates an Assembler. cfg.Flush may be nil, in which case completed
// placemarks are queued but never delivered, the final flush included
// (tests use this; production wiring always provides a callback).
func New(cfg Config) *Assembler {
	batchSize := cfg.BatchSize
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	return &Assembler{
		batchSize: batchSize,
		flush:     cfg.Flush,
		warn:      cfg.Warn,
		validate:  cfg.ValidateCoordinates,
	}
}

// LastEvent describes the most recent SAX event, for error reporting.
func (a *Assembler) LastEvent() string {
	return a.last
}

// StartDocument resets all per-document state.
func (a *Assembler) StartDocument() error {
	a.last = "start_document"
	a.status = statusOutside
	a.pm = nil
	a.elems.reset()
	a.geoms = a.geoms[:0]
	a.pending = a.pending[:0]
	return nil
}

// StartElement routes an open tag through the enter rules, most specific
// first: Placemark and kml drive the lifecycle, MultiGeometry and Polygon
// begin container geometries, anything else only extends the context path
// while inside a placemark.
func (a *Assembler) StartElement(name string, attrs []sax.Attr) error {
	a.last = "start_element " + name
	switch name {
	case "Placemark":
		if a.pm != nil {
			return &ErrNestedPlacemark{}
		}
		a.elems.reset()
		a.geoms = a.geoms[:0]
		a.pm = newPlacemark()
		// The Placemark element itself is not part of its own inner path.
		return nil
	case "kml":
		a.status = statusInside
		return nil
	case "MultiGeometry":
		a.geoms = append(a.geoms, &MultiGeometry{})
		a.elems.push(name, attrs)
		return nil
	case "Polygon":
		if a.pm != nil {
			a.geoms = append(a.geoms, &Polygon{})
			a.elems.push(name, attrs)
		}
		return nil
	default:
		if a.pm != nil {
			a.elems.push(name, attrs)
		}
		return nil
	}
}

// EndElement routes a close tag through the exit rules. Geometry elements
// pop and fold; Placemark completes the current placemark and may flush;
// kml closes the document gate.
func (a *Assembler) EndElement(name string) error {
	a.last = "end_element " + name
	switch name {
	case "Point", "LineString", "Polygon", "MultiGeometry":
		return a.exitGeometry(name)
	case "LinearRing":
		return a.exitLinearRing(name)
	case "Placemark":
		return a.exitPlacemark()
	case "kml":
		a.status = statusOutside
		return nil
	default:
		a.popEvent(name)
		return nil
	}
}

// Characters routes one character-data chunk through the text rules.
func (a *Assembler) Characters(text string) error {
	a.last = "characters"
	return a.dispatchText(text)
}

// EndDocument finishes the parse. Ending while still inside the kml
// element is a truncated document and fails; otherwise any remaining
// placemarks are flushed without waiting for an acknowledgment.
func (a *Assembler) EndDocument() error {
	if a.status == statusInside {
		return &ErrTruncatedDocument{LastEvent: a.last}
	}
	a.last = "end_document"
	return a.flushPending(true)
}

func (a *Assembler) warnf(err error) {
	if a.warn != nil {
		a.warn(err)
	}
}

func (a *Assembler) validatePoint(p *Point) {
	if !a.validate {
		return
	}
	if err := validateCoordinate(p.X, p.Y); err != nil {
		a.warnf(err)
	}
}
