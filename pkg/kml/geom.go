package kml

import (
	"fmt"

	"github.com/twpayne/go-geom"
)

// Geom converts a placemark geometry to its go-geom equivalent: Point to
// geom.Point, Line to geom.LineString, Polygon to geom.Polygon (outer ring
// first), MultiGeometry to geom.GeometryCollection.
//
// The layout is XYZ when any position in the geometry carries an altitude,
// XY otherwise; positions without an altitude get Z=0 in an XYZ geometry.
// This is the interop bridge to the go-geom ecosystem (WKT, WKB and
// GeoJSON encoders, geometry operations).
func Geom(g Geometry) (geom.T, error) {
	switch g := g.(type) {
	case *Point:
		layout := geom.XY
		if g.HasAlt {
			layout = geom.XYZ
		}
		return geom.NewPointFlat(layout, flatCoords(layout, []Point{*g})), nil
	case *Line:
		layout := lineLayout(g)
		return geom.NewLineStringFlat(layout, flatCoords(layout, g.Points)), nil
	case *Polygon:
		return polygonGeom(g)
	case *MultiGeometry:
		collection := geom.NewGeometryCollection()
		for _, child := range g.Geoms {
			converted, err := Geom(child)
			if err != nil {
				return nil, err
			}
			if err := collection.Push(converted); err != nil {
				return nil, fmt.Errorf("multigeometry: %w", err)
			}
		}
		return collection, nil
	default:
		return nil, fmt.Errorf("unsupported geometry %T", g)
	}
}

// Geom converts the placemark's geometry: nil for none, the single
// geometry's conversion for one, a geom.GeometryCollection for several.
func (pm *Placemark) Geom() (geom.T, error) {
	switch len(pm.Geoms) {
	case 0:
		return nil, nil
	case 1:
		return Geom(pm.Geoms[0])
	default:
		return Geom(&MultiGeometry{Geoms: pm.Geoms})
	}
}

func polygonGeom(p *Polygon) (geom.T, error) {
	layout := geom.XY
	rings := make([]*Line, 0, 1+len(p.Inners))
	if p.Outer != nil {
		rings = append(rings, p.Outer)
	} else if len(p.Inners) > 0 {
		return nil, fmt.Errorf("polygon has inner boundaries but no outer boundary")
	}
	rings = append(rings, p.Inners...)

	for _, ring := range rings {
		if lineLayout(ring) == geom.XYZ {
			layout = geom.XYZ
			break
		}
	}

	var flat []float64
	ends := make([]int, 0, len(rings))
	for _, ring := range rings {
		flat = append(flat, flatCoords(layout, ring.Points)...)
		ends = append(ends, len(flat))
	}
	return geom.NewPolygonFlat(layout, flat, ends), nil
}

func lineLayout(l *Line) geom.Layout {
	if l == nil {
		return geom.XY
	}
	for _, p := range l.Points {
		if p.HasAlt {
			return geom.XYZ
		}
	}
	return geom.XY
}

func flatCoords(layout geom.Layout, points []Point) []float64 {
	flat := make([]float64, 0, len(points)*layout.Stride())
	for _, p := range points {
		flat = append(flat, p.Lon, p.Lat)
		if layout == geom.XYZ {
			flat = append(flat, p.Alt)
		}
	}
	return flat
}
