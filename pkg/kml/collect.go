package kml

import (
	"context"
	"io"
)

// Collect drains a whole document into memory and returns its placemarks
// in document order.
//
// This trades away the bounded-memory property of Stream, so reserve it
// for documents known to be small, or for feeding BuildIndex.
func Collect(ctx context.Context, r io.Reader, opts Options) ([]Placemark, error) {
	var placemarks []Placemark
	for pm, err := range StreamWithOptions(ctx, r, opts) {
		if err != nil {
			return nil, err
		}
		placemarks = append(placemarks, pm)
	}
	return placemarks, nil
}
