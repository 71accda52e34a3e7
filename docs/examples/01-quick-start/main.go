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

	// Stream placemarks one at a time; memory stays bounded however
	// large the document is.
	count := 0
	for pm, err := range kml.Stream(context.Background(), f) {
		if err != nil {
			log.Fatal(err)
		}
		count++
		fmt.Printf("%s: %d geometries\n", pm.Attrs["name"], len(pm.Geoms))
	}
	fmt.Printf("total: %d placemarks\n", count)
}
