// Package markup writes escaped HTML for the capture components.
package markup

import (
	"io"
	"strings"

	"github.com/a-h/templ"

	"github.com/louisbranch/countrycapture/internal/platform/icons"
)

// Writer writes escaped markup and keeps the first write error.
type Writer struct {
	w   io.Writer
	err error
}

// New returns a Writer over w.
func New(w io.Writer) *Writer {
	return &Writer{w: w}
}

// Err returns the first write error.
func (mw *Writer) Err() error {
	return mw.err
}

// Raw writes s unescaped. Callers pass trusted markup only.
func (mw *Writer) Raw(s string) {
	if mw.err != nil {
		return
	}
	_, mw.err = io.WriteString(mw.w, s)
}

// Text writes s as escaped text.
func (mw *Writer) Text(s string) {
	mw.Raw(templ.EscapeString(s))
}

// Open writes a start tag. attrs alternate name, value; an empty value on
// "disabled" or "hidden" writes a boolean attribute.
func (mw *Writer) Open(tag string, attrs ...string) {
	var b strings.Builder
	b.WriteByte('<')
	b.WriteString(tag)
	for i := 0; i+1 < len(attrs); i += 2 {
		name, value := attrs[i], attrs[i+1]
		b.WriteByte(' ')
		b.WriteString(name)
		if value == "" && isBooleanAttr(name) {
			continue
		}
		b.WriteString(`="`)
		b.WriteString(templ.EscapeString(value))
		b.WriteByte('"')
	}
	b.WriteByte('>')
	mw.Raw(b.String())
}

// Void writes a start tag for an element without content.
func (mw *Writer) Void(tag string, attrs ...string) {
	mw.Open(tag, attrs...)
}

// Close writes an end tag.
func (mw *Writer) Close(tag string) {
	mw.Raw("</" + tag + ">")
}

// Element writes tag wrapping the escaped text.
func (mw *Writer) Element(tag, text string, attrs ...string) {
	mw.Open(tag, attrs...)
	mw.Text(text)
	mw.Close(tag)
}

// Icon writes a decorative svg referencing id's sprite symbol.
func (mw *Writer) Icon(id icons.ID, name string) {
	mw.Open("svg", "class", "icon icon--"+name, "aria-hidden", "true")
	mw.Open("use", "href", icons.Href(id))
	mw.Close("use")
	mw.Close("svg")
}

func isBooleanAttr(name string) bool {
	switch name {
	case "disabled", "hidden":
		return true
	default:
		return false
	}
}
