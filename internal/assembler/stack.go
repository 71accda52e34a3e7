package assembler

import (
	"github.com/beetlebugorg/kml/internal/sax"
)

// frame is one open element: its local name and attributes.
type frame struct {
	name  string
	attrs map[string]string
}

// elementStack tracks the currently open element path inside a placemark.
// The innermost element is at the end of the slice.
//
// The stack is rebuilt from empty on every Placemark enter; context open
// before the placemark never leaks into handler matching inside it.
type elementStack struct {
	frames []frame
}

func (s *elementStack) reset() {
	s.frames = s.frames[:0]
}

func (s *elementStack) push(name string, attrs []sax.Attr) {
	f := frame{name: name}
	if len(attrs) > 0 {
		f.attrs = make(map[string]string, len(attrs))
		for _, a := range attrs {
			f.attrs[a.Name] = a.Value
		}
	}
	s.frames = append(s.frames, f)
}

// pop removes the innermost frame. Callers must have matched an exit
// against an open element first.
func (s *elementStack) pop() {
	s.frames = s.frames[:len(s.frames)-1]
}

func (s *elementStack) depth() int {
	return len(s.frames)
}

// top returns the innermost open frame, or nil when the stack is empty.
func (s *elementStack) top() *frame {
	if len(s.frames) == 0 {
		return nil
	}
	return &s.frames[len(s.frames)-1]
}

// parent returns the frame enclosing the innermost one, or nil.
func (s *elementStack) parent() *frame {
	if len(s.frames) < 2 {
		return nil
	}
	return &s.frames[len(s.frames)-2]
}

// matchSuffix reports whether the innermost open elements equal pattern.
// The pattern is outermost-first; the match is anchored at the current
// element and requires no ancestors beyond the pattern's length.
func (s *elementStack) matchSuffix(pattern []string) bool {
	if len(pattern) > len(s.frames) {
		return false
	}
	offset := len(s.frames) - len(pattern)
	for i, name := range pattern {
		if s.frames[offset+i].name != name {
			return false
		}
	}
	return true
}
