package kml

// Options configures parsing behavior.
type Options struct {
	// BatchSize is the delivery threshold: a batch is delivered once more
	// than BatchSize placemarks are pending. The parser never buffers more than BatchSize+1
	// completed placemarks between acknowledgments, which bounds memory
	// independent of document size. Default is 64.
	BatchSize int

	// ChunkSize is the read buffer handed to the XML tokenizer, in
	// bytes. Default is 4096.
	ChunkSize int

	// ValidateCoordinates enables lon/lat range checking on parsed
	// positions. Violations are reported through Warn and never fail
	// the parse.
	ValidateCoordinates bool

	// Warn, when non-nil, receives recovered errors: malformed
	// coordinate fragments that were dropped, and out-of-range
	// positions when ValidateCoordinates is set. Called from the parser
	// goroutine.
	Warn func(error)
}

// DefaultOptions returns options with defaults.
func DefaultOptions() Options {
	return Options{
		BatchSize: 64,
		ChunkSize: 4096,
	}
}

func (o Options) withDefaults() Options {
	if o.BatchSize <= 0 {
		o.BatchSize = 64
	}
	if o.ChunkSize <= 0 {
		o.ChunkSize = 4096
	}
	return o
}
