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

	// The raw batch protocol: the parser pauses after each batch until
	// we acknowledge it, so slow processing here throttles parsing.
	opts := kml.DefaultOptions()
	opts.BatchSize = 100

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sub := kml.EventsWithOptions(ctx, f, opts)
	for msg := range sub.Messages() {
		if msg.MessageRef() != sub.Ref() {
			continue
		}
		switch m := msg.(type) {
		case kml.Batch:
			fmt.Printf("batch of %d placemarks\n", len(m.Placemarks))
			sub.Ack()
		case kml.Done:
			fmt.Println("done")
		case kml.Failed:
			log.Fatalf("parse failed at %s: %v", m.LastEvent, m.Err)
		}
	}
}
