package mjcf

import (
	"bytes"
	"encoding/xml"
	"strings"
)

// attr is one XML attribute. Attributes are kept in slices, not maps, so the
// emitted order is fixed.
type attr struct {
	Name  string
	Value string
}

// xmlWriter emits an indented MJCF document into memory.
type xmlWriter struct {
	buf   bytes.Buffer
	depth int
}

func (w *xmlWriter) indent() {
	w.buf.WriteString(strings.Repeat("  ", w.depth))
}

func (w *xmlWriter) writeTag(tag string, attrs []attr) {
	w.buf.WriteByte('<')
	w.buf.WriteString(tag)
	for _, a := range attrs {
		w.buf.WriteByte(' ')
		w.buf.WriteString(a.Name)
		w.buf.WriteString(`="`)
		_ = xml.EscapeText(&w.buf, []byte(a.Value))
		w.buf.WriteByte('"')
	}
}

// open starts an element that will contain children.
func (w *xmlWriter) open(tag string, attrs ...attr) {
	w.indent()
	w.writeTag(tag, attrs)
	w.buf.WriteString(">\n")
	w.depth++
}

// close ends the innermost element opened with open.
func (w *xmlWriter) close(tag string) {
	w.depth--
	w.indent()
	w.buf.WriteString("</")
	w.buf.WriteString(tag)
	w.buf.WriteString(">\n")
}

// leaf writes a self-closing element.
func (w *xmlWriter) leaf(tag string, attrs ...attr) {
	w.indent()
	w.writeTag(tag, attrs)
	w.buf.WriteString(" />\n")
}

// comment writes an XML comment. Names may contain dashes, so the text is
// rewritten until it holds no "--". The padding spaces keep a leading or
// trailing "-" away from the delimiters.
func (w *xmlWriter) comment(text string) {
	w.indent()
	w.buf.WriteString("<!-- ")
	w.buf.WriteString(commentText(text))
	w.buf.WriteString(" -->\n")
}

func commentText(text string) string {
	for strings.Contains(text, "--") {
		text = strings.ReplaceAll(text, "--", "- -")
	}
	return text
}

// raw copies s verbatim, used for caller-supplied fragments.
func (w *xmlWriter) raw(s string) {
	w.buf.WriteString(s)
	if !strings.HasSuffix(s, "\n") {
		w.buf.WriteByte('\n')
	}
}

// Bytes returns the document written so far.
func (w *xmlWriter) Bytes() []byte {
	return w.buf.Bytes()
}
