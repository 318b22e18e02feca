package slides

import (
	"bytes"
	"encoding/xml"
	"errors"
	"io"
	"strings"
)

// part is an XML part of the package together with every paragraph parsed
// from it, in document order.
type part struct {
	name  string
	data  []byte
	paras []*Paragraph

	tree   []*Shape
	parsed bool
}

func (pt *part) modified() bool {
	for _, p := range pt.paras {
		if p.dirty {
			return true
		}
	}
	return false
}

// shapes parses the first shape tree of the part.
func (pt *part) shapes() ([]*Shape, error) {
	if pt.parsed {
		return pt.tree, nil
	}

	s := &scanner{dec: xml.NewDecoder(bytes.NewReader(pt.data)), pt: pt}
	for {
		tok, _, _, err := s.next()
		if errors.Is(err, io.EOF) {
			return nil, errors.New("no shape tree")
		}
		if err != nil {
			return nil, err
		}
		se, ok := tok.(xml.StartElement)
		if !ok || se.Name.Local != "spTree" || !isPresentation(se.Name.Space) {
			continue
		}

		tree, err := s.shapeTree()
		if err != nil {
			return nil, err
		}
		pt.tree, pt.parsed = tree, true
		return tree, nil
	}
}

// scanner walks a part token by token, keeping byte offsets so paragraphs
// can later be rewritten in place.
type scanner struct {
	dec *xml.Decoder
	pt  *part
}

func (s *scanner) offset() int {
	return int(s.dec.InputOffset())
}

func (s *scanner) next() (xml.Token, int, int, error) {
	start := s.offset()
	tok, err := s.dec.Token()
	return tok, start, s.offset(), err
}

// children calls fn for every child element of the element just opened and
// returns after its end tag. fn must consume the child it is given.
func (s *scanner) children(fn func(se xml.StartElement, start int) error) error {
	for {
		tok, start, _, err := s.next()
		if err != nil {
			return err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if err := fn(t, start); err != nil {
				return err
			}
		case xml.EndElement:
			return nil
		}
	}
}

func (s *scanner) shapeTree() ([]*Shape, error) {
	var shapes []*Shape
	err := s.children(func(se xml.StartElement, _ int) error {
		if !isPresentation(se.Name.Space) {
			return s.dec.Skip()
		}
		var (
			sh  *Shape
			err error
		)
		switch se.Name.Local {
		case "sp":
			sh, err = s.shape()
		case "graphicFrame":
			sh, err = s.graphicFrame()
		default:
			return s.dec.Skip()
		}
		if err != nil {
			return err
		}
		shapes = append(shapes, sh)
		return nil
	})
	return shapes, err
}

func (s *scanner) shape() (*Shape, error) {
	sh := &Shape{Kind: KindShape, TextFrame: &TextFrame{}}
	err := s.children(func(se xml.StartElement, _ int) error {
		switch se.Name.Local {
		case "nvSpPr":
			return s.nonVisual(sh)
		case "txBody":
			return s.textBody(sh.TextFrame)
		}
		return s.dec.Skip()
	})
	return sh, err
}

func (s *scanner) graphicFrame() (*Shape, error) {
	sh := &Shape{Kind: KindGraphicFrame}
	err := s.children(func(se xml.StartElement, _ int) error {
		switch {
		case se.Name.Local == "nvGraphicFramePr":
			return s.nonVisual(sh)
		case se.Name.Local == "graphic" && isDrawing(se.Name.Space):
			return s.children(func(se xml.StartElement, _ int) error {
				if se.Name.Local != "graphicData" || !isDrawing(se.Name.Space) {
					return s.dec.Skip()
				}
				return s.children(func(se xml.StartElement, _ int) error {
					if se.Name.Local != "tbl" || !isDrawing(se.Name.Space) {
						return s.dec.Skip()
					}
					t, err := s.table()
					sh.Table = t
					return err
				})
			})
		}
		return s.dec.Skip()
	})
	return sh, err
}

func (s *scanner) nonVisual(sh *Shape) error {
	return s.children(func(se xml.StartElement, _ int) error {
		switch se.Name.Local {
		case "cNvPr":
			sh.ID = attr(se, "id")
			sh.Name = attr(se, "name")
		case "nvPr":
			return s.children(func(se xml.StartElement, _ int) error {
				if se.Name.Local == "ph" {
					sh.Placeholder = attr(se, "type")
					if sh.Placeholder == "" {
						sh.Placeholder = "obj"
					}
				}
				return s.dec.Skip()
			})
		}
		return s.dec.Skip()
	})
}

func (s *scanner) table() (*Table, error) {
	t := &Table{}
	err := s.children(func(se xml.StartElement, _ int) error {
		if se.Name.Local != "tr" || !isDrawing(se.Name.Space) {
			return s.dec.Skip()
		}
		row := []string{}
		err := s.children(func(se xml.StartElement, _ int) error {
			if se.Name.Local != "tc" || !isDrawing(se.Name.Space) {
				return s.dec.Skip()
			}
			cell := &TextFrame{}
			err := s.children(func(se xml.StartElement, _ int) error {
				if se.Name.Local == "txBody" {
					return s.textBody(cell)
				}
				return s.dec.Skip()
			})
			row = append(row, cell.Text())
			return err
		})
		t.Rows = append(t.Rows, row)
		return err
	})
	return t, err
}

func (s *scanner) textBody(tf *TextFrame) error {
	return s.children(func(se xml.StartElement, start int) error {
		if se.Name.Local != "p" || !isDrawing(se.Name.Space) {
			return s.dec.Skip()
		}
		p, err := s.paragraph(start)
		if err != nil {
			return err
		}
		tf.Paragraphs = append(tf.Paragraphs, p)
		return nil
	})
}

func (s *scanner) paragraph(elemStart int) (*Paragraph, error) {
	p := &Paragraph{
		part:      s.pt,
		start:     -1,
		elemStart: elemStart,
		prefix:    prefixAt(s.pt.data, elemStart),
	}
	insert := -1
	var text strings.Builder

	for {
		tok, start, end, err := s.next()
		if err != nil {
			return nil, err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if !isDrawing(t.Name.Space) {
				if err := s.dec.Skip(); err != nil {
					return nil, err
				}
				continue
			}
			switch t.Name.Local {
			case "r", "fld":
				first := p.start < 0
				if first {
					p.start = start
				}
				if err := s.run(p, first, &text); err != nil {
					return nil, err
				}
				p.end = s.offset()
			case "br":
				if p.start < 0 {
					p.start = start
				}
				text.WriteString("\v")
				if err := s.dec.Skip(); err != nil {
					return nil, err
				}
				p.end = s.offset()
			case "endParaRPr":
				insert = start
				if err := s.dec.Skip(); err != nil {
					return nil, err
				}
			default:
				if err := s.dec.Skip(); err != nil {
					return nil, err
				}
			}

		case xml.EndElement:
			p.elemEnd = end
			if p.start < 0 {
				// A synthesized end tag consumes no input.
				p.selfClosing = start == end
				if insert < 0 {
					insert = start
				}
				p.start, p.end = insert, insert
			}
			p.text = text.String()
			s.pt.paras = append(s.pt.paras, p)
			return p, nil
		}
	}
}

func (s *scanner) run(p *Paragraph, first bool, text *strings.Builder) error {
	return s.children(func(se xml.StartElement, start int) error {
		if !isDrawing(se.Name.Space) {
			return s.dec.Skip()
		}
		switch se.Name.Local {
		case "rPr":
			if err := s.dec.Skip(); err != nil {
				return err
			}
			if first {
				p.runProps = append([]byte(nil), s.pt.data[start:s.offset()]...)
			}
			return nil
		case "t":
			return s.chars(text)
		}
		return s.dec.Skip()
	})
}

func (s *scanner) chars(text *strings.Builder) error {
	for {
		tok, err := s.dec.Token()
		if err != nil {
			return err
		}
		switch t := tok.(type) {
		case xml.CharData:
			text.Write(t)
		case xml.StartElement:
			if err := s.dec.Skip(); err != nil {
				return err
			}
		case xml.EndElement:
			return nil
		}
	}
}

func attr(se xml.StartElement, local string) string {
	for _, a := range se.Attr {
		if a.Name.Local == local && a.Name.Space == "" {
			return a.Value
		}
	}
	return ""
}

// prefixAt returns the namespace prefix of the tag starting at off.
func prefixAt(data []byte, off int) string {
	if off >= len(data) || data[off] != '<' {
		return ""
	}
	name := data[off+1:]
	if i := bytes.IndexAny(name, " \t\r\n/>"); i >= 0 {
		name = name[:i]
	}
	if i := bytes.IndexByte(name, ':'); i >= 0 {
		return string(name[:i])
	}
	return ""
}
