// Package kml reads placemarks out of KML documents as a lazy, batched
// stream.
//
// The package is built for very large documents: the parser runs in its own
// goroutine, holds at most one batch of placemarks in memory, and pauses
// after each batch until the consumer acknowledges it. Three entry points
// cover the usual shapes:
//
//   - Stream returns an iterator over placemarks and handles batching and
//     acknowledgment internally. This is the API most callers want.
//   - Events exposes the raw batch protocol (Batch/Done/Failed messages
//     plus an explicit Ack) for consumers that manage their own pacing.
//   - Collect drains a whole document into a slice, for small files and
//     for building a spatial Index.
//
// Only the placemark subset of KML is recognized: Point, LineString,
// Polygon and MultiGeometry geometries, name/description, TimeSpan, and
// ExtendedData attributes. Styles, network links, regions and tours pass
// through unparsed.
package kml

import (
	"github.com/beetlebugorg/kml/internal/assembler"
)

// Placemark is a geographic feature: a free-form attribute map and the
// geometries collected from its element, in document order.
//
// Attribute keys come from the recognized KML fields ("name",
// "description", "timespan_begin", "timespan_end") and from ExtendedData
// SimpleData/Data names present in the document.
type Placemark struct {
	Attrs map[string]string
	Geoms []Geometry
}

// Geometry is the closed set of geometry values a placemark can carry.
type Geometry interface {
	geometry()
}

// Point is a single WGS-84 position. Alt is meaningful only when HasAlt
// is set.
type Point struct {
	Lon, Lat float64
	Alt      float64
	HasAlt   bool
}

// Line is an ordered sequence of positions (a KML LineString, or one
// polygon ring).
type Line struct {
	Points []Point
}

// Polygon has an outer boundary ring and zero or more inner (hole) rings
// in document order. Outer is nil when the document omitted or failed to
// parse the outer boundary.
type Polygon struct {
	Outer  *Line
	Inners []*Line
}

// MultiGeometry is an ordered collection of child geometries.
type MultiGeometry struct {
	Geoms []Geometry
}

func (*Point) geometry()         {}
func (*Line) geometry()          {}
func (*Polygon) geometry()       {}
func (*MultiGeometry) geometry() {}

// convertPlacemarks converts a batch from the internal representation.
func convertPlacemarks(pms []assembler.Placemark) []Placemark {
	out := make([]Placemark, len(pms))
	for i := range pms {
		out[i] = convertPlacemark(&pms[i])
	}
	return out
}

func convertPlacemark(pm *assembler.Placemark) Placemark {
	converted := Placemark{Attrs: pm.Attrs}
	if len(pm.Geoms) > 0 {
		converted.Geoms = make([]Geometry, len(pm.Geoms))
		for i, g := range pm.Geoms {
			converted.Geoms[i] = convertGeometry(g)
		}
	}
	return converted
}

func convertGeometry(g assembler.Geometry) Geometry {
	switch g := g.(type) {
	case *assembler.Point:
		p := convertPoint(*g)
		return &p
	case *assembler.Line:
		return convertLine(g)
	case *assembler.Polygon:
		poly := &Polygon{Outer: convertLine(g.Outer)}
		if len(g.Inners) > 0 {
			poly.Inners = make([]*Line, len(g.Inners))
			for i, inner := range g.Inners {
				poly.Inners[i] = convertLine(inner)
			}
		}
		return poly
	case *assembler.MultiGeometry:
		multi := &MultiGeometry{Geoms: make([]Geometry, len(g.Geoms))}
		for i, child := range g.Geoms {
			multi.Geoms[i] = convertGeometry(child)
		}
		return multi
	default:
		return nil
	}
}

func convertPoint(p assembler.Point) Point {
	return Point{Lon: p.X, Lat: p.Y, Alt: p.Z, HasAlt: p.HasZ}
}

func convertLine(l *assembler.Line) *Line {
	if l == nil {
		return nil
	}
	line := &Line{Points: make([]Point, len(l.Points))}
	for i, p := range l.Points {
		line.Points[i] = convertPoint(p)
	}
	return line
}
