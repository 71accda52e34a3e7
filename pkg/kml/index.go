package kml

import (
	"github.com/dhconnelly/rtreego"
)

// Index provides fast spatial queries over a collection of placemarks.
//
// The index stores each placemark under its geometry bounding box in an
// R-tree, so region queries are O(log N) instead of a linear scan. Build
// one from a collected document:
//
//	placemarks, err := kml.Collect(ctx, file, kml.DefaultOptions())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	idx := kml.BuildIndex(placemarks)
//	nearby := idx.Query(kml.Bounds{
//	    MinLon: -122.5, MaxLon: -122.0,
//	    MinLat: 37.5, MaxLat: 38.0,
//	})
type Index struct {
	entries []indexEntry
	rtree   *rtreego.Rtree
}

// indexEntry wraps a placemark for R-tree storage.
type indexEntry struct {
	placemark Placemark
	box       Bounds
}

// minExtent pads degenerate boxes (single points, vertical/horizontal
// lines); rtreego rejects zero-length rectangle sides.
const minExtent = 1e-9

// Bounds method for the rtreego.Spatial interface.
func (e indexEntry) Bounds() rtreego.Rect {
	rect, _ := rtreego.NewRect(
		rtreego.Point{e.box.MinLon, e.box.MinLat},
		[]float64{
			max(e.box.MaxLon-e.box.MinLon, minExtent),
			max(e.box.MaxLat-e.box.MinLat, minExtent),
		},
	)
	return rect
}

// BuildIndex creates a spatial index over the given placemarks.
// Placemarks without any positions cannot be placed and are skipped.
func BuildIndex(placemarks []Placemark) *Index {
	idx := &Index{
		rtree: rtreego.NewTree(2, 25, 50),
	}
	for _, pm := range placemarks {
		box, ok := pm.Bounds()
		if !ok {
			continue
		}
		entry := indexEntry{placemark: pm, box: box}
		idx.entries = append(idx.entries, entry)
		idx.rtree.Insert(entry)
	}
	return idx
}

// Query returns the placemarks whose bounds intersect the given region,
// in no particular order.
func (idx *Index) Query(bounds Bounds) []Placemark {
	queryRect, err := rtreego.NewRect(
		rtreego.Point{bounds.MinLon, bounds.MinLat},
		[]float64{
			max(bounds.MaxLon-bounds.MinLon, minExtent),
			max(bounds.MaxLat-bounds.MinLat, minExtent),
		},
	)
	if err != nil {
		return nil
	}

	spatials := idx.rtree.SearchIntersect(queryRect)
	result := make([]Placemark, 0, len(spatials))
	for _, spatial := range spatials {
		result = append(result, spatial.(indexEntry).placemark)
	}
	return result
}

// Count returns the number of indexed placemarks.
func (idx *Index) Count() int {
	return len(idx.entries)
}

// Bounds returns the union of all indexed placemark bounds. The second
// result is false for an empty index.
func (idx *Index) Bounds() (Bounds, bool) {
	if len(idx.entries) == 0 {
		return Bounds{}, false
	}
	bounds := idx.entries[0].box
	for _, entry := range idx.entries[1:] {
		bounds = bounds.Union(entry.box)
	}
	return bounds, true
}
