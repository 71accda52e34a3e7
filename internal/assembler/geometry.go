package assembler

// Geometry is the closed set of geometry values a placemark can carry.
//
// The variants mirror the KML geometry elements this parser recognizes:
// Point, LineString, Polygon (one outer ring, any number of inner rings)
// and MultiGeometry. Only Polygon and MultiGeometry hold children; Point
// and Line are leaves.
type Geometry interface {
	kind() string
}

// Point is a single position. Z is meaningful only when HasZ is set.
type Point struct {
	X, Y float64
	Z    float64
	HasZ bool
}

// Line is an ordered sequence of positions.
type Line struct {
	Points []Point
}

// Polygon has one outer boundary ring and zero or more inner (hole) rings,
// each stored as a Line in document order.
type Polygon struct {
	Outer  *Line
	Inners []*Line
}

// MultiGeometry is an ordered collection of child geometries.
type MultiGeometry struct {
	Geoms []Geometry
}

func (*Point) kind() string         { return "Point" }
func (*Line) kind() string          { return "LineString" }
func (*Polygon) kind() string       { return "Polygon" }
func (*MultiGeometry) kind() string { return "MultiGeometry" }

// Placemark pairs free-form attributes with the geometries collected while
// its element was open. Geoms are in document order.
//
// OGC KML 2.2 §9.11: Placemark is a feature with an optional geometry.
type Placemark struct {
	Attrs map[string]string
	Geoms []Geometry
}

func newPlacemark() *Placemark {
	return &Placemark{Attrs: make(map[string]string)}
}

// putAttribute records an attribute on the placemark. A duplicate key is
// overwritten; the later value wins.
func (pm *Placemark) putAttribute(key, value string) {
	pm.Attrs[key] = value
}

// foldUp closes a completed geometry into its parent: the head of the
// remaining geometry stack, or the placemark itself when the stack is
// empty. Only MultiGeometry accepts arbitrary children here; polygon
// boundaries are attached by the LinearRing exit handler instead. Any
// other pairing means the document does not follow the recognized grammar.
func (a *Assembler) foldUp(g Geometry) error {
	if len(a.geoms) == 0 {
		if a.pm == nil {
			return &ErrUnexpectedGeometry{Child: g.kind(), Parent: "document"}
		}
		a.pm.Geoms = append(a.pm.Geoms, g)
		return nil
	}

	switch parent := a.geoms[len(a.geoms)-1].(type) {
	case *MultiGeometry:
		parent.Geoms = append(parent.Geoms, g)
		return nil
	default:
		return &ErrUnexpectedGeometry{Child: g.kind(), Parent: parent.kind()}
	}
}
