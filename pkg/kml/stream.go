package kml

import (
	"context"
	"io"
	"iter"
	"sync/atomic"

	"github.com/beetlebugorg/kml/internal/assembler"
	"github.com/beetlebugorg/kml/internal/sax"
)

// Ref correlates messages with the subscription that produced them.
// Refs are unique within the process; a consumer that reuses one receive
// loop across parses must drop messages whose ref does not match.
type Ref uint64

var refCounter atomic.Uint64

// Message is one of Batch, Done or Failed. A subscription delivers zero or
// more Batch messages followed by exactly one terminal message (Done or
// Failed), then its channel is closed. If the context is cancelled first,
// the channel is closed without a terminal message.
type Message interface {
	// MessageRef returns the subscription ref the message belongs to.
	MessageRef() Ref
}

// Batch carries completed placemarks in document order. After processing a
// non-terminal batch the consumer must call Subscription.Ack to resume the
// parser.
type Batch struct {
	Ref        Ref
	Placemarks []Placemark
}

// Done signals successful end of document. No ack is expected.
type Done struct {
	Ref Ref
}

// Failed signals that parsing stopped. LastEvent describes the SAX event
// at which the parser gave up.
type Failed struct {
	Ref       Ref
	LastEvent string
	Err       error
}

func (b Batch) MessageRef() Ref  { return b.Ref }
func (d Done) MessageRef() Ref   { return d.Ref }
func (f Failed) MessageRef() Ref { return f.Ref }

// Subscription is a handle on one parsing goroutine.
//
// The parser blocks after sending each non-final batch until Ack is
// called; that is the backpressure contract. Cancelling the context passed
// to Events, or calling Close, tears the parser down; that is the only way
// to stop a parse whose consumer has walked away without acking.
type Subscription struct {
	ref    Ref
	msgs   chan Message
	acks   chan struct{}
	cancel context.CancelFunc
}

// Events starts parsing r with default options. See EventsWithOptions.
func Events(ctx context.Context, r io.Reader) *Subscription {
	return EventsWithOptions(ctx, r, DefaultOptions())
}

// EventsWithOptions spawns a parser goroutine over r and returns its
// subscription. Messages arrive on Messages in document order: batches,
// then one terminal Done or Failed, after which the channel is closed.
// Cancelling ctx closes the channel without a terminal message.
func EventsWithOptions(ctx context.Context, r io.Reader, opts Options) *Subscription {
	opts = opts.withDefaults()
	ctx, cancel := context.WithCancel(ctx)
	s := &Subscription{
		ref:    Ref(refCounter.Add(1)),
		msgs:   make(chan Message),
		acks:   make(chan struct{}, 1),
		cancel: cancel,
	}
	go s.run(ctx, r, opts)
	return s
}

// Ref returns the subscription's correlation token.
func (s *Subscription) Ref() Ref {
	return s.ref
}

// Messages returns the message channel. It is closed after the terminal
// message.
func (s *Subscription) Messages() <-chan Message {
	return s.msgs
}

// Ack acknowledges the most recent batch and resumes the parser. Call it
// once per received Batch. Acks are not matched to batches: one ack sent
// while the parser is not waiting is held and releases the next batch
// without a wait; further acks beyond that held one are dropped.
func (s *Subscription) Ack() {
	select {
	case s.acks <- struct{}{}:
	default:
	}
}

// Close cancels the parser goroutine. Safe to call at any point and more
// than once; messages already sent remain readable until the channel
// closes.
func (s *Subscription) Close() {
	s.cancel()
}

func (s *Subscription) run(ctx context.Context, r io.Reader, opts Options) {
	defer close(s.msgs)

	asm := assembler.New(assembler.Config{
		BatchSize:           opts.BatchSize,
		Warn:                opts.Warn,
		ValidateCoordinates: opts.ValidateCoordinates,
		Flush: func(pms []assembler.Placemark, final bool) error {
			batch := Batch{Ref: s.ref, Placemarks: convertPlacemarks(pms)}
			select {
			case s.msgs <- batch:
			case <-ctx.Done():
				return ctx.Err()
			}
			if final {
				// The consumer may already be tearing down; the final
				// batch is fire-and-forget.
				return nil
			}
			select {
			case <-s.acks:
				return nil
			case <-ctx.Done():
				return ctx.Err()
			}
		},
	})

	driver := sax.NewDriver(r, opts.ChunkSize)
	if err := driver.Run(asm); err != nil {
		if ctx.Err() != nil {
			return
		}
		select {
		case s.msgs <- Failed{Ref: s.ref, LastEvent: asm.LastEvent(), Err: err}:
		case <-ctx.Done():
		}
		return
	}

	select {
	case s.msgs <- Done{Ref: s.ref}:
	case <-ctx.Done():
	}
}

// Stream parses r with default options. See StreamWithOptions.
func Stream(ctx context.Context, r io.Reader) iter.Seq2[Placemark, error] {
	return StreamWithOptions(ctx, r, DefaultOptions())
}

// StreamWithOptions returns an iterator over the placemarks in r. Batches
// are pulled and acknowledged internally after each one is fully yielded,
// so memory stays bounded by the batch size however large the document is.
//
// On a parse failure the iterator yields a zero Placemark with the error
// and stops. Breaking out of the loop early cancels the parser.
func StreamWithOptions(ctx context.Context, r io.Reader, opts Options) iter.Seq2[Placemark, error] {
	return func(yield func(Placemark, error) bool) {
		sub := EventsWithOptions(ctx, r, opts)
		defer sub.Close()

		for msg := range sub.Messages() {
			if msg.MessageRef() != sub.Ref() {
				continue
			}
			switch m := msg.(type) {
			case Batch:
				for _, pm := range m.Placemarks {
					if !yield(pm, nil) {
						return
					}
				}
				sub.Ack()
			case Done:
				return
			case Failed:
				yield(Placemark{}, m.Err)
				return
			}
		}
	}
}
