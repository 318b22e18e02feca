package slides

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"strings"

	"github.com/gabriel-vasile/mimetype"

	"github.com/tsekula/n8n-python/internal/models"
)

const (
	nsPresentation        = "http://schemas.openxmlformats.org/presentationml/2006/main"
	nsPresentationStrict  = "http://purl.oclc.org/ooxml/presentationml/main"
	nsDrawing             = "http://schemas.openxmlformats.org/drawingml/2006/main"
	nsDrawingStrict       = "http://purl.oclc.org/ooxml/drawingml/main"
	nsRelationships       = "http://schemas.openxmlformats.org/officeDocument/2006/relationships"
	nsRelationshipsStrict = "http://purl.oclc.org/ooxml/officeDocument/relationships"

	relOfficeDocument = "/officeDocument"
	relNotesSlide     = "/notesSlide"

	defaultPresentation = "ppt/presentation.xml"
)

// Open reads and parses the deck at filePath.
func Open(filePath string) (*Deck, error) {
	info, err := os.Stat(filePath)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", models.ErrInvalidPath, filePath, err)
	}
	if !info.Mode().IsRegular() {
		return nil, fmt.Errorf("%w: %s is not a regular file", models.ErrInvalidPath, filePath)
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", models.ErrInvalidPath, filePath, err)
	}

	return Load(data)
}

// Load parses a deck held in memory. The deck keeps a reference to data.
func Load(data []byte) (*Deck, error) {
	if !isZip(data) {
		return nil, fmt.Errorf("%w: not a zip package (%s)", models.ErrDeckLoad, mimetype.Detect(data).String())
	}

	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("%w: open package: %w", models.ErrDeckLoad, err)
	}

	d := &Deck{zr: zr, parts: make(map[string]*part)}
	if err := d.load(); err != nil {
		return nil, fmt.Errorf("%w: %w", models.ErrDeckLoad, err)
	}
	return d, nil
}

func isZip(data []byte) bool {
	for m := mimetype.Detect(data); m != nil; m = m.Parent() {
		if m.Is("application/zip") {
			return true
		}
	}
	return false
}

func (d *Deck) load() error {
	main := defaultPresentation
	if rels, err := d.relationships(""); err == nil {
		for _, r := range rels {
			if strings.HasSuffix(r.Type, relOfficeDocument) {
				main = resolveTarget("", r.Target)
				break
			}
		}
	}

	presentation, err := d.read(main)
	if err != nil {
		return err
	}
	ids, err := slideIDs(presentation)
	if err != nil {
		return fmt.Errorf("parse %s: %w", main, err)
	}

	rels, err := d.relationships(main)
	if err != nil && len(ids) > 0 {
		return err
	}
	byID := make(map[string]relationship, len(rels))
	for _, r := range rels {
		byID[r.ID] = r
	}

	d.Slides = make([]*Slide, 0, len(ids))
	for i, id := range ids {
		r, ok := byID[id.rel]
		if !ok {
			return fmt.Errorf("slide %s: missing relationship %s", id.id, id.rel)
		}
		s, err := d.loadSlide(resolveTarget(main, r.Target))
		if err != nil {
			return err
		}
		s.Number = i + 1
		s.ID = id.id
		d.Slides = append(d.Slides, s)
	}
	return nil
}

func (d *Deck) loadSlide(name string) (*Slide, error) {
	pt, err := d.part(name)
	if err != nil {
		return nil, err
	}
	shapes, err := pt.shapes()
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", name, err)
	}

	s := &Slide{Shapes: shapes, partName: name}

	rels, err := d.relationships(name)
	if err != nil {
		// Slides without a rels part have no notes.
		return s, nil
	}
	for _, r := range rels {
		if !strings.HasSuffix(r.Type, relNotesSlide) {
			continue
		}
		notesName := resolveTarget(name, r.Target)
		np, err := d.part(notesName)
		if err != nil {
			return nil, err
		}
		notes, err := np.shapes()
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", notesName, err)
		}
		for _, sh := range notes {
			if sh.Placeholder == "body" && sh.HasTextFrame() {
				s.Notes = sh.TextFrame
				break
			}
		}
		break
	}
	return s, nil
}

// part returns the parsed part for name, reading it on first use.
func (d *Deck) part(name string) (*part, error) {
	if pt, ok := d.parts[name]; ok {
		return pt, nil
	}
	data, err := d.read(name)
	if err != nil {
		return nil, err
	}
	pt := &part{name: name, data: data}
	d.parts[name] = pt
	return pt, nil
}

func (d *Deck) read(name string) ([]byte, error) {
	for _, f := range d.zr.File {
		if f.Name != name {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("open %s: %w", name, err)
		}
		defer rc.Close()

		data, err := io.ReadAll(rc)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", name, err)
		}
		return data, nil
	}
	return nil, fmt.Errorf("missing part %s", name)
}

type relationships struct {
	Items []relationship `xml:"Relationship"`
}

type relationship struct {
	ID         string `xml:"Id,attr"`
	Type       string `xml:"Type,attr"`
	Target     string `xml:"Target,attr"`
	TargetMode string `xml:"TargetMode,attr"`
}

// relationships reads the rels part of source. An empty source means the
// package relationships.
func (d *Deck) relationships(source string) ([]relationship, error) {
	data, err := d.read(relsName(source))
	if err != nil {
		return nil, err
	}
	var rels relationships
	if err := xml.Unmarshal(data, &rels); err != nil {
		return nil, fmt.Errorf("parse %s: %w", relsName(source), err)
	}

	internal := rels.Items[:0]
	for _, r := range rels.Items {
		if r.TargetMode != "External" {
			internal = append(internal, r)
		}
	}
	return internal, nil
}

func relsName(source string) string {
	if source == "" {
		return "_rels/.rels"
	}
	return path.Join(path.Dir(source), "_rels", path.Base(source)+".rels")
}

func resolveTarget(source, target string) string {
	if strings.HasPrefix(target, "/") {
		return strings.TrimPrefix(path.Clean(target), "/")
	}
	if source == "" {
		return path.Clean(target)
	}
	return path.Clean(path.Join(path.Dir(source), target))
}

type slideID struct {
	id  string
	rel string
}

// slideIDs lists p:sldId entries in order. Attributes are matched by
// namespace since both the id and r:id attributes share a local name.
func slideIDs(data []byte) ([]slideID, error) {
	dec := xml.NewDecoder(bytes.NewReader(data))
	var ids []slideID
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			return ids, nil
		}
		if err != nil {
			return nil, err
		}
		se, ok := tok.(xml.StartElement)
		if !ok || se.Name.Local != "sldId" || !isPresentation(se.Name.Space) {
			continue
		}

		var id slideID
		for _, a := range se.Attr {
			switch {
			case a.Name.Local == "id" && a.Name.Space == "":
				id.id = a.Value
			case a.Name.Local == "id" && isRelationships(a.Name.Space):
				id.rel = a.Value
			}
		}
		if id.rel == "" {
			return nil, fmt.Errorf("sldId %q has no relationship", id.id)
		}
		ids = append(ids, id)
	}
}

func isPresentation(space string) bool {
	return space == nsPresentation || space == nsPresentationStrict
}

func isDrawing(space string) bool {
	return space == nsDrawing || space == nsDrawingStrict
}

func isRelationships(space string) bool {
	return space == nsRelationships || space == nsRelationshipsStrict
}
