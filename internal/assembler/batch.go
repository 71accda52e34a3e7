package assembler

// FlushFunc receives completed placemarks in document order. final is true
// for the end-of-document flush, which must not block on the consumer; all
// other calls block until the consumer acknowledges the batch, throttling
// the parser.
type FlushFunc func(placemarks []Placemark, final bool) error

// exitPlacemark completes the current placemark: queue it for delivery,
// clear the per-placemark context, and flush if the queue has grown past
// the batch threshold.
func (a *Assembler) exitPlacemark() error {
	if a.pm == nil {
		return nil
	}
	a.pending = append(a.pending, *a.pm)
	a.pm = nil
	a.elems.reset()
	a.geoms = a.geoms[:0]

	if len(a.pending) > a.batchSize {
		return a.flushPending(false)
	}
	return nil
}

// flushPending hands the queued placemarks to the flush callback and
// clears the queue. The queue is copied out first: the callback may hold
// the slice past the call, and the queue's backing array is reused.
//
// An empty queue flushes nothing; the final "batch" of an empty document
// is simply absent.
func (a *Assembler) flushPending(final bool) error {
	if len(a.pending) == 0 || a.flush == nil {
		return nil
	}
	batch := make([]Placemark, len(a.pending))
	copy(batch, a.pending)
	a.pending = a.pending[:0]
	return a.flush(batch, final)
}
