package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/beetlebugorg/kml/pkg/kml"
)

func main() {
	f, err := os.Open("places.kml")
	if err != nil {
		log.Fatal(err)
	}
	defer f.Close()

	placemarks, err := kml.Collect(context.Background(), f, kml.DefaultOptions())
	if err != nil {
		log.Fatal(err)
	}

	idx := kml.BuildIndex(placemarks)
	fmt.Printf("indexed %d placemarks\n", idx.Count())

	// Everything in the San Francisco Bay Area.
	hits := idx.Query(kml.Bounds{
		MinLon: -122.6, MaxLon: -121.7,
		MinLat: 37.2, MaxLat: 38.2,
	})
	for _, pm := range hits {
		fmt.Println(pm.Attrs["name"])
	}
}
