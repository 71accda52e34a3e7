package kml

import (
	"strings"
	"testing"
)

func indexedPlacemarks() []Placemark {
	return []Placemark{
		{
			Attrs: map[string]string{"name": "sf"},
			Geoms: []Geometry{&Point{Lon: -122.4, Lat: 37.8}},
		},
		{
			Attrs: map[string]string{"name": "nyc"},
			Geoms: []Geometry{&Point{Lon: -74.0, Lat: 40.7}},
		},
		{
			Attrs: map[string]string{"name": "bay-trail"},
			Geoms: []Geometry{&Line{Points: []Point{
				{Lon: -122.5, Lat: 37.5}, {Lon: -122.0, Lat: 38.0},
			}}},
		},
		{
			Attrs: map[string]string{"name": "no-geometry"},
		},
	}
}

func TestBuildIndexSkipsEmptyPlacemarks(t *testing.T) {
	idx := BuildIndex(indexedPlacemarks())
	if idx.Count() != 3 {
		t.Errorf("count = %d, expected 3 (placemark without positions skipped)", idx.Count())
	}
}

func TestIndexQuery(t *testing.T) {
	idx := BuildIndex(indexedPlacemarks())

	bayArea := Bounds{MinLon: -123, MinLat: 37, MaxLon: -121, MaxLat: 39}
	got := idx.Query(bayArea)
	if len(got) != 2 {
		t.Fatalf("bay area query returned %d placemarks, expected 2", len(got))
	}
	names := map[string]bool{}
	for _, pm := range got {
		names[pm.Attrs["name"]] = true
	}
	if !names["sf"] || !names["bay-trail"] {
		t.Errorf("bay area query returned %v, expected sf and bay-trail", names)
	}

	atlantic := Bounds{MinLon: -50, MinLat: 20, MaxLon: -30, MaxLat: 40}
	if got := idx.Query(atlantic); len(got) != 0 {
		t.Errorf("empty-region query returned %d placemarks, expected 0", len(got))
	}
}

func TestIndexBounds(t *testing.T) {
	idx := BuildIndex(indexedPlacemarks())

	bounds, ok := idx.Bounds()
	if !ok {
		t.Fatal("Bounds() not ok for a populated index")
	}
	want := Bounds{MinLon: -122.5, MinLat: 37.5, MaxLon: -74.0, MaxLat: 40.7}
	if bounds != want {
		t.Errorf("bounds = %+v, expected %+v", bounds, want)
	}

	if _, ok := BuildIndex(nil).Bounds(); ok {
		t.Error("Bounds() ok for an empty index")
	}
}

func TestIndexFromStream(t *testing.T) {
	pms, err := Collect(t.Context(), strings.NewReader(sampleDocument), DefaultOptions())
	if err != nil {
		t.Fatalf("collect failed: %v", err)
	}
	idx := BuildIndex(pms)
	if idx.Count() != 3 {
		t.Fatalf("count = %d, expected 3", idx.Count())
	}

	// The lake polygon spans (0,0)-(10,10).
	got := idx.Query(Bounds{MinLon: 4, MinLat: 4, MaxLon: 6, MaxLat: 6})
	found := false
	for _, pm := range got {
		if pm.Attrs["name"] == "Lake" {
			found = true
		}
	}
	if !found {
		t.Errorf("query inside the lake polygon returned %d placemarks without Lake", len(got))
	}
}
