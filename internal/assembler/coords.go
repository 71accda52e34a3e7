package assembler

import (
	"math"
	"strconv"
	"strings"
)

// parsePoint parses a single KML coordinate tuple "lon,lat" or
// "lon,lat,alt" into a Point. Whitespace around the tuple and around each
// component is tolerated.
//
// OGC KML 2.2 §16.9: coordinates are comma-separated decimal values in
// lon,lat[,alt] order.
func parsePoint(s string) (*Point, error) {
	trimmed := strings.TrimSpace(s)
	parts := strings.Split(trimmed, ",")
	if len(parts) != 2 && len(parts) != 3 {
		return nil, &ErrInvalidPoint{Text: s}
	}

	vals := make([]float64, len(parts))
	for i, part := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, &ErrInvalidPoint{Text: s}
		}
		vals[i] = v
	}

	p := &Point{X: vals[0], Y: vals[1]}
	if len(vals) == 3 {
		p.Z = vals[2]
		p.HasZ = true
	}
	return p, nil
}

// parseLine parses a sequence of coordinate tuples separated by spaces and
// newlines into a Line, preserving document order. Other whitespace (tabs)
// does not separate tuples. The first tuple that fails to
// parse fails the whole string. Empty input yields a Line with no points.
func parseLine(s string) (*Line, error) {
	tokens := strings.FieldsFunc(s, func(r rune) bool {
		return r == ' ' || r == '\n'
	})

	line := &Line{Points: make([]Point, 0, len(tokens))}
	for _, token := range tokens {
		p, err := parsePoint(token)
		if err != nil {
			return nil, err
		}
		line.Points = append(line.Points, *p)
	}
	return line, nil
}
