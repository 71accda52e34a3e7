// Package sax defines the streaming XML event contract the placemark
// assembler consumes, and a driver that produces those events from a
// pull-based tokenizer.
//
// The package deliberately knows nothing about KML. Any tokenizer that can
// be pumped into a Handler works; the assembler only sees start/end/text
// callbacks in document order.
package sax

import (
	"fmt"
	"io"
	"strings"

	"github.com/muktihari/xmltokenizer"
)

// Attr is a single element attribute in document order.
type Attr struct {
	Name  string
	Value string
}

// Handler receives SAX events for one document.
//
// Callbacks are invoked sequentially from a single goroutine. Character data
// for one text node may arrive in multiple Characters calls; handlers must
// treat each chunk independently. Returning an error from any callback stops
// the driver and fails the document.
type Handler interface {
	StartDocument() error
	StartElement(name string, attrs []Attr) error
	EndElement(name string) error
	Characters(text string) error
	EndDocument() error
}

// Driver pumps a tokenizer into a Handler.
type Driver struct {
	tok *xmltokenizer.Tokenizer
}

// NewDriver creates a driver reading XML from r. chunkSize is the read
// buffer handed to the tokenizer; values <= 0 fall back to the tokenizer's
// own default.
func NewDriver(r io.Reader, chunkSize int) *Driver {
	var opts []xmltokenizer.Option
	if chunkSize > 0 {
		opts = append(opts, xmltokenizer.WithReadBufferSize(chunkSize))
	}
	return &Driver{tok: xmltokenizer.New(r, opts...)}
}

// Run delivers the full event stream to h: StartDocument, the element and
// character events in document order, then EndDocument at EOF.
//
// Namespace prefixes are dropped; handlers see local names only. Comments
// and the XML declaration are not surfaced. A tokenizer failure is returned
// wrapped with a "tokenize:" prefix after the handler has seen its last
// event.
func (d *Driver) Run(h Handler) error {
	if err := h.StartDocument(); err != nil {
		return err
	}
	for {
		token, err := d.tok.Token()
		if err == io.EOF {
			return h.EndDocument()
		}
		if err != nil {
			return fmt.Errorf("tokenize: %w", err)
		}
		if err := d.dispatch(h, token); err != nil {
			return err
		}
	}
}

func (d *Driver) dispatch(h Handler, token xmltokenizer.Token) error {
	full := string(token.Name.Full)
	switch {
	case strings.HasPrefix(full, "!--"):
		// Comment; its content is not character data.
		return nil
	case strings.HasPrefix(full, "!"):
		// CDATA or DOCTYPE. CDATA carries real character data.
		if strings.HasPrefix(full, "![CDATA") && len(token.CharData) > 0 {
			return h.Characters(string(token.CharData))
		}
		return nil
	case strings.HasPrefix(full, "?"):
		// Processing instruction; keep any trailing text.
		if len(token.CharData) > 0 {
			return h.Characters(string(token.CharData))
		}
		return nil
	case token.IsEndElement():
		if err := h.EndElement(localName(token)); err != nil {
			return err
		}
		// Text following the close tag rides on the same token.
		if len(token.CharData) > 0 {
			return h.Characters(string(token.CharData))
		}
		return nil
	default:
		name := localName(token)
		if err := h.StartElement(name, copyAttrs(token.Attrs)); err != nil {
			return err
		}
		if token.SelfClosing {
			if err := h.EndElement(name); err != nil {
				return err
			}
			// Trailing text after "/>".
			if len(token.CharData) > 0 {
				return h.Characters(string(token.CharData))
			}
			return nil
		}
		if len(token.CharData) > 0 {
			return h.Characters(string(token.CharData))
		}
		return nil
	}
}

// localName returns the element's local name. End-element tokens carry a
// leading '/' which is stripped here.
func localName(token xmltokenizer.Token) string {
	local := string(token.Name.Local)
	return strings.TrimPrefix(local, "/")
}

func copyAttrs(attrs []xmltokenizer.Attr) []Attr {
	if len(attrs) == 0 {
		return nil
	}
	out := make([]Attr, len(attrs))
	for i := range attrs {
		out[i] = Attr{
			Name:  string(attrs[i].Name.Local),
			Value: string(attrs[i].Value),
		}
	}
	return out
}
