package assembler

import (
	"strings"
)

// Text handlers are dispatched by matching the current open-element path
// against a table of suffix patterns, outermost-first. The longest matching
// pattern wins; patterns are distinct suffixes so ties cannot happen. The
// table is scanned linearly, longest entries first.
type textRule struct {
	pattern []string
	action  func(a *Assembler, text string) error
}

var textRules = []textRule{
	{pattern: []string{"MultiGeometry", "Polygon", "outerBoundaryIs", "LinearRing", "coordinates"}, action: (*Assembler).textLine},
	{pattern: []string{"MultiGeometry", "Polygon", "innerBoundaryIs", "LinearRing", "coordinates"}, action: (*Assembler).textLine},
	{pattern: []string{"Polygon", "outerBoundaryIs", "LinearRing", "coordinates"}, action: (*Assembler).textLine},
	{pattern: []string{"Polygon", "innerBoundaryIs", "LinearRing", "coordinates"}, action: (*Assembler).textLine},
	{pattern: []string{"ExtendedData", "SchemaData", "SimpleData"}, action: (*Assembler).textSimpleData},
	{pattern: []string{"ExtendedData", "Data", "value"}, action: (*Assembler).textDataValue},
	{pattern: []string{"MultiGeometry", "Point", "coordinates"}, action: (*Assembler).textPoint},
	{pattern: []string{"MultiGeometry", "LineString", "coordinates"}, action: (*Assembler).textLine},
	{pattern: []string{"Point", "coordinates"}, action: (*Assembler).textPoint},
	{pattern: []string{"LineString", "coordinates"}, action: (*Assembler).textLine},
	{pattern: []string{"TimeSpan", "begin"}, action: attribute("timespan_begin")},
	{pattern: []string{"TimeSpan", "end"}, action: attribute("timespan_end")},
	{pattern: []string{"name"}, action: attribute("name")},
	{pattern: []string{"description"}, action: attribute("description")},
}

// dispatchText routes one character-data chunk to at most one text rule.
// Outside a placemark no rule is tried.
func (a *Assembler) dispatchText(text string) error {
	if a.pm == nil {
		return nil
	}
	for i := range textRules {
		if a.elems.matchSuffix(textRules[i].pattern) {
			return textRules[i].action(a, text)
		}
	}
	return nil
}

// attribute builds a text action that stores the chunk under a fixed key.
func attribute(key string) func(a *Assembler, text string) error {
	return func(a *Assembler, text string) error {
		a.pm.putAttribute(key, text)
		return nil
	}
}

// textSimpleData stores the chunk under the key named by the current
// element's "name" attribute.
//
// OGC KML 2.2 §9.9: <SimpleData name="...">value</SimpleData>.
func (a *Assembler) textSimpleData(text string) error {
	top := a.elems.top()
	if top == nil {
		return nil
	}
	key, ok := top.attrs["name"]
	if !ok {
		return nil
	}
	a.pm.putAttribute(key, strings.TrimSpace(text))
	return nil
}

// textDataValue stores the chunk under the key named by the enclosing Data
// element's "name" attribute.
//
// OGC KML 2.2 §9.8: <Data name="..."><value>...</value></Data>.
func (a *Assembler) textDataValue(text string) error {
	parent := a.elems.parent()
	if parent == nil {
		return nil
	}
	key, ok := parent.attrs["name"]
	if !ok {
		return nil
	}
	a.pm.putAttribute(key, strings.TrimSpace(text))
	return nil
}

// textPoint parses a single coordinate tuple and pushes a Point. A parse
// failure drops the point and leaves all state untouched; real-world KML
// contains stray coordinate fragments and one bad tuple must not lose the
// document.
func (a *Assembler) textPoint(text string) error {
	p, err := parsePoint(text)
	if err != nil {
		a.warnf(err)
		return nil
	}
	a.validatePoint(p)
	a.geoms = append(a.geoms, p)
	return nil
}

// textLine parses a coordinate sequence and pushes a Line. Failures are
// absorbed the same way as textPoint.
func (a *Assembler) textLine(text string) error {
	line, err := parseLine(text)
	if err != nil {
		a.warnf(&ErrInvalidLine{Text: text, Err: err})
		return nil
	}
	for i := range line.Points {
		a.validatePoint(&line.Points[i])
	}
	a.geoms = append(a.geoms, line)
	return nil
}

// exitGeometry closes a Point, LineString, Polygon or MultiGeometry
// element: pop the completed geometry and fold it into its parent. The pop
// is by variant; if the element's coordinates failed to parse nothing was
// pushed, and only the element context is unwound.
func (a *Assembler) exitGeometry(name string) error {
	if n := len(a.geoms); n > 0 && a.geoms[n-1].kind() == name {
		g := a.geoms[n-1]
		a.geoms = a.geoms[:n-1]
		if err := a.foldUp(g); err != nil {
			return err
		}
	}
	a.popEvent(name)
	return nil
}

// exitLinearRing attaches a completed ring to the polygon beneath it. The
// boundary kind comes from the enclosing element: outerBoundaryIs sets the
// outer ring (last one wins), innerBoundaryIs appends a hole.
func (a *Assembler) exitLinearRing(name string) error {
	var kind string
	if parent := a.elems.parent(); parent != nil {
		kind = parent.name
	}

	if n := len(a.geoms); n >= 2 {
		line, lineOK := a.geoms[n-1].(*Line)
		poly, polyOK := a.geoms[n-2].(*Polygon)
		if lineOK && polyOK {
			a.geoms = a.geoms[:n-1]
			switch kind {
			case "outerBoundaryIs":
				poly.Outer = line
			case "innerBoundaryIs":
				poly.Inners = append(poly.Inners, line)
			default:
				return &ErrUnexpectedGeometry{Child: "LinearRing", Parent: kind}
			}
		}
	}
	a.popEvent(name)
	return nil
}

// popEvent unwinds the element context for a matched end tag. Outside a
// placemark nothing is popped: the only element that pushes context there
// is MultiGeometry, and closing it fails in foldUp before this is reached.
func (a *Assembler) popEvent(name string) {
	if a.pm == nil {
		return
	}
	if top := a.elems.top(); top != nil && top.name == name {
		a.elems.pop()
	}
}
