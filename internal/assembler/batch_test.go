package assembler

import (
	"testing"
)

// TestBatchSizes checks the flush cadence: with BatchSize 2 and five
// placemarks, the queue drains once it exceeds the threshold (a batch of
// three), and the remainder goes out with the final flush.
func TestBatchSizes(t *testing.T) {
	type flush struct {
		size  int
		final bool
	}
	var flushes []flush
	a := New(Config{
		BatchSize: 2,
		Flush: func(pms []Placemark, final bool) error {
			flushes = append(flushes, flush{size: len(pms), final: final})
			return nil
		},
	})

	var body [][]ev
	for _, name := range []string{"a", "b", "c", "d", "e"} {
		body = append(body, placemark(leaf("name", name)))
	}
	if err := run(a, document(body...)); err != nil {
		t.Fatalf("parse failed: %v", err)
	}

	want := []flush{{size: 3, final: false}, {size: 2, final: true}}
	if len(flushes) != len(want) {
		t.Fatalf("got %d flushes %v, expected %v", len(flushes), flushes, want)
	}
	for i := range want {
		if flushes[i] != want[i] {
			t.Errorf("flush %d = %+v, expected %+v", i, flushes[i], want[i])
		}
	}
}

// TestBatchesAreDocumentOrdered checks placemarks arrive in the order
// their end tags appear, within and across batches.
func TestBatchesAreDocumentOrdered(t *testing.T) {
	var names []string
	a := New(Config{
		BatchSize: 1,
		Flush: func(pms []Placemark, final bool) error {
			for _, pm := range pms {
				names = append(names, pm.Attrs["name"])
			}
			return nil
		},
	})

	var body [][]ev
	for _, name := range []string{"a", "b", "c", "d", "e"} {
		body = append(body, placemark(leaf("name", name)))
	}
	if err := run(a, document(body...)); err != nil {
		t.Fatalf("parse failed: %v", err)
	}

	want := []string{"a", "b", "c", "d", "e"}
	if len(names) != len(want) {
		t.Fatalf("got %d placemarks, expected %d", len(names), len(want))
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("placemark %d = %q, expected %q", i, names[i], want[i])
		}
	}
}

// TestPendingBounded checks the queue never grows past BatchSize+1, which
// is the memory bound the backpressure contract promises.
func TestPendingBounded(t *testing.T) {
	const batchSize = 4
	maxBatch := 0
	a := New(Config{
		BatchSize: batchSize,
		Flush: func(pms []Placemark, final bool) error {
			if len(pms) > maxBatch {
				maxBatch = len(pms)
			}
			return nil
		},
	})

	var body [][]ev
	for i := 0; i < 50; i++ {
		body = append(body, placemark(leaf("name", "x")))
	}
	if err := run(a, document(body...)); err != nil {
		t.Fatalf("parse failed: %v", err)
	}

	if maxBatch > batchSize+1 {
		t.Errorf("largest batch = %d, expected at most %d", maxBatch, batchSize+1)
	}
}

// TestFlushReceivesCopy checks the flushed slice is detached from the
// assembler's queue, since consumers hold batches across acknowledgments.
func TestFlushReceivesCopy(t *testing.T) {
	var batches [][]Placemark
	a := New(Config{
		BatchSize: 1,
		Flush: func(pms []Placemark, final bool) error {
			batches = append(batches, pms)
			return nil
		},
	})

	var body [][]ev
	for _, name := range []string{"a", "b", "c", "d"} {
		body = append(body, placemark(leaf("name", name)))
	}
	if err := run(a, document(body...)); err != nil {
		t.Fatalf("parse failed: %v", err)
	}

	if len(batches) < 2 {
		t.Fatalf("got %d batches, expected at least 2", len(batches))
	}
	if got := batches[0][0].Attrs["name"]; got != "a" {
		t.Errorf("first batch mutated after later flushes: name = %q, expected a", got)
	}
}
