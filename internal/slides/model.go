package slides

import (
	"archive/zip"
	"strings"
)

// Deck is a loaded .pptx package. Slides are in presentation order.
type Deck struct {
	Slides []*Slide

	zr    *zip.Reader
	parts map[string]*part
}

// Slide is one slide of a deck.
type Slide struct {
	// Number is the 1-based position in the deck.
	Number int
	// ID is the sldId value from the presentation part.
	ID     string
	Shapes []*Shape
	// Notes is the body of the speaker notes, nil when the slide has none.
	Notes *TextFrame

	partName string
}

// Shape kinds.
const (
	KindShape        = "sp"
	KindGraphicFrame = "graphicFrame"
)

// Shape is a direct child of a slide's shape tree. Pictures, groups and
// connectors are not represented.
type Shape struct {
	ID          string
	Name        string
	Kind        string
	Placeholder string
	TextFrame   *TextFrame
	Table       *Table
}

// HasTextFrame reports whether the shape carries editable text.
func (s *Shape) HasTextFrame() bool {
	return s.TextFrame != nil
}

// HasTable reports whether the shape is a table graphic frame.
func (s *Shape) HasTable() bool {
	return s.Table != nil
}

// TextFrame is an ordered list of paragraphs.
type TextFrame struct {
	Paragraphs []*Paragraph
}

// Text joins the paragraph texts with newlines.
func (tf *TextFrame) Text() string {
	if tf == nil {
		return ""
	}
	texts := make([]string, len(tf.Paragraphs))
	for i, p := range tf.Paragraphs {
		texts[i] = p.Text()
	}
	return strings.Join(texts, "\n")
}

// Table is a grid of cell texts, row major.
type Table struct {
	Rows [][]string
}

// Paragraph is a single a:p element. Text concatenates its runs and fields;
// line breaks read as "\v".
type Paragraph struct {
	text  string
	dirty bool

	part *part
	// [start, end) covers the runs that a rewrite replaces. It is empty
	// and sits before endParaRPr when the paragraph has no runs.
	start, end int
	// selfClosing paragraphs are rewritten as a whole element.
	selfClosing bool
	elemStart   int
	elemEnd     int
	prefix      string
	runProps    []byte
}

// Text returns the current paragraph text.
func (p *Paragraph) Text() string {
	return p.text
}

// SetText replaces the paragraph content with a single run of text. The
// first run's properties are kept. "\v" becomes a line break.
func (p *Paragraph) SetText(text string) {
	if text == p.text {
		return
	}
	p.text = text
	p.dirty = true
}

// Modified reports whether any paragraph of the deck was rewritten.
func (d *Deck) Modified() bool {
	for _, pt := range d.parts {
		if pt.modified() {
			return true
		}
	}
	return false
}
