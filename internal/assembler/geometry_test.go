package assembler

import (
	"errors"
	"testing"
)

func TestFoldUpIntoPlacemark(t *testing.T) {
	a := New(Config{})
	a.pm = newPlacemark()

	if err := a.foldUp(&Point{X: 1, Y: 2}); err != nil {
		t.Fatalf("foldUp failed: %v", err)
	}
	if len(a.pm.Geoms) != 1 {
		t.Fatalf("placemark has %d geometries, expected 1", len(a.pm.Geoms))
	}
}

func TestFoldUpIntoMultiGeometry(t *testing.T) {
	a := New(Config{})
	a.pm = newPlacemark()
	multi := &MultiGeometry{}
	a.geoms = append(a.geoms, multi)

	if err := a.foldUp(&Line{}); err != nil {
		t.Fatalf("foldUp failed: %v", err)
	}
	if len(multi.Geoms) != 1 {
		t.Fatalf("multigeometry has %d children, expected 1", len(multi.Geoms))
	}
	if len(a.pm.Geoms) != 0 {
		t.Error("geometry leaked past its multigeometry parent into the placemark")
	}
}

func TestFoldUpRejectsBadParents(t *testing.T) {
	tests := []struct {
		name   string
		parent Geometry
	}{
		{"polygon", &Polygon{}},
		{"point", &Point{}},
		{"line", &Line{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := New(Config{})
			a.pm = newPlacemark()
			a.geoms = append(a.geoms, tt.parent)

			err := a.foldUp(&Point{})
			var unexpected *ErrUnexpectedGeometry
			if !errors.As(err, &unexpected) {
				t.Fatalf("error = %v, expected *ErrUnexpectedGeometry", err)
			}
		})
	}
}

func TestFoldUpOutsidePlacemark(t *testing.T) {
	a := New(Config{})

	err := a.foldUp(&MultiGeometry{})
	var unexpected *ErrUnexpectedGeometry
	if !errors.As(err, &unexpected) {
		t.Fatalf("error = %v, expected *ErrUnexpectedGeometry", err)
	}
	if unexpected.Parent != "document" {
		t.Errorf("parent = %q, expected document", unexpected.Parent)
	}
}

func TestNestedMultiGeometry(t *testing.T) {
	events := document(placemark(flatten(
		[]ev{start("MultiGeometry"), start("MultiGeometry")},
		point("1,1"),
		[]ev{end("MultiGeometry")},
		point("2,2"),
		[]ev{end("MultiGeometry")},
	)))

	pms := parseAll(t, events)
	outer, ok := pms[0].Geoms[0].(*MultiGeometry)
	if !ok {
		t.Fatalf("geometry is %T, expected *MultiGeometry", pms[0].Geoms[0])
	}
	if len(outer.Geoms) != 2 {
		t.Fatalf("outer has %d children, expected 2", len(outer.Geoms))
	}
	inner, ok := outer.Geoms[0].(*MultiGeometry)
	if !ok {
		t.Fatalf("first child is %T, expected the nested *MultiGeometry", outer.Geoms[0])
	}
	if len(inner.Geoms) != 1 {
		t.Errorf("nested multigeometry has %d children, expected 1", len(inner.Geoms))
	}
	if _, ok := outer.Geoms[1].(*Point); !ok {
		t.Errorf("second child is %T, expected *Point", outer.Geoms[1])
	}
}

func TestMultiGeometryPolygon(t *testing.T) {
	events := document(placemark(flatten(
		[]ev{start("MultiGeometry"), start("Polygon"), start("outerBoundaryIs"), start("LinearRing")},
		leaf("coordinates", "0,0 1,0 1,1 0,0"),
		[]ev{end("LinearRing"), end("outerBoundaryIs"), end("Polygon"), end("MultiGeometry")},
	)))

	multi := pmsFirstMulti(t, parseAll(t, events))
	poly, ok := multi.Geoms[0].(*Polygon)
	if !ok {
		t.Fatalf("child is %T, expected *Polygon", multi.Geoms[0])
	}
	if poly.Outer == nil || len(poly.Outer.Points) != 4 {
		t.Errorf("outer ring = %+v, expected 4 points", poly.Outer)
	}
}

func pmsFirstMulti(t *testing.T, pms []Placemark) *MultiGeometry {
	t.Helper()
	if len(pms) != 1 || len(pms[0].Geoms) != 1 {
		t.Fatalf("unexpected placemark shape: %+v", pms)
	}
	multi, ok := pms[0].Geoms[0].(*MultiGeometry)
	if !ok {
		t.Fatalf("geometry is %T, expected *MultiGeometry", pms[0].Geoms[0])
	}
	return multi
}
