// Package slidestest builds small .pptx packages for tests.
package slidestest

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// Slide describes one generated slide.
type Slide struct {
	Shapes []Shape
	// Notes becomes the notes body when non-empty.
	Notes string
}

// Shape is a text shape, a table or a picture.
type Shape struct {
	Name string
	// Paragraphs hold the runs of each paragraph. A paragraph with no runs
	// is written as <a:p/>. "\v" inside a run becomes a line break.
	Paragraphs [][]string
	Table      [][]string
	Picture    bool
}

// Text returns a text shape with one run per paragraph.
func Text(name string, paragraphs ...string) Shape {
	sh := Shape{Name: name}
	for _, p := range paragraphs {
		if p == "" {
			sh.Paragraphs = append(sh.Paragraphs, nil)
			continue
		}
		sh.Paragraphs = append(sh.Paragraphs, []string{p})
	}
	return sh
}

// Grid returns a table shape.
func Grid(name string, rows ...[]string) Shape {
	return Shape{Name: name, Table: rows}
}

// Picture returns a picture shape.
func Picture(name string) Shape {
	return Shape{Name: name, Picture: true}
}

// Write builds a deck at dir/name and returns its path.
func Write(t *testing.T, dir, name string, slides ...Slide) string {
	t.Helper()
	p := filepath.Join(dir, name)
	if err := os.WriteFile(p, Bytes(t, slides...), 0644); err != nil {
		t.Fatalf("write deck: %v", err)
	}
	return p
}

// Bytes builds a deck in memory.
func Bytes(t *testing.T, slides ...Slide) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	add := func(name, body string) {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatalf("create %s: %v", name, err)
		}
		if _, err := w.Write([]byte(body)); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}

	add("[Content_Types].xml", contentTypes(slides))
	add("_rels/.rels", rootRels)
	add("ppt/presentation.xml", presentation(slides))
	add("ppt/_rels/presentation.xml.rels", presentationRels(slides))
	for i, s := range slides {
		n := i + 1
		add(fmt.Sprintf("ppt/slides/slide%d.xml", n), slide(s))
		if s.Notes != "" {
			add(fmt.Sprintf("ppt/slides/_rels/slide%d.xml.rels", n), slideRels(n))
			add(fmt.Sprintf("ppt/notesSlides/notesSlide%d.xml", n), notes(s.Notes))
		}
	}

	if err := zw.Close(); err != nil {
		t.Fatalf("close deck: %v", err)
	}
	return buf.Bytes()
}

const (
	header = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` + "\n"
	nsDecl = `xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main" ` +
		`xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships" ` +
		`xmlns:p="http://schemas.openxmlformats.org/presentationml/2006/main"`
	relBase = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/"

	rootRels = header +
		`<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">` +
		`<Relationship Id="rId1" Type="` + relBase + `officeDocument" Target="ppt/presentation.xml"/>` +
		`</Relationships>`
)

func contentTypes(slides []Slide) string {
	var b strings.Builder
	b.WriteString(header)
	b.WriteString(`<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">`)
	b.WriteString(`<Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>`)
	b.WriteString(`<Default Extension="xml" ContentType="application/xml"/>`)
	b.WriteString(`<Override PartName="/ppt/presentation.xml" ContentType="application/vnd.openxmlformats-officedocument.presentationml.presentation.main+xml"/>`)
	for i, s := range slides {
		fmt.Fprintf(&b, `<Override PartName="/ppt/slides/slide%d.xml" ContentType="application/vnd.openxmlformats-officedocument.presentationml.slide+xml"/>`, i+1)
		if s.Notes != "" {
			fmt.Fprintf(&b, `<Override PartName="/ppt/notesSlides/notesSlide%d.xml" ContentType="application/vnd.openxmlformats-officedocument.presentationml.notesSlide+xml"/>`, i+1)
		}
	}
	b.WriteString(`</Types>`)
	return b.String()
}

func presentation(slides []Slide) string {
	var b strings.Builder
	b.WriteString(header)
	b.WriteString(`<p:presentation ` + nsDecl + `><p:sldIdLst>`)
	for i := range slides {
		fmt.Fprintf(&b, `<p:sldId id="%d" r:id="rId%d"/>`, 256+i, i+2)
	}
	b.WriteString(`</p:sldIdLst><p:sldSz cx="9144000" cy="6858000"/></p:presentation>`)
	return b.String()
}

func presentationRels(slides []Slide) string {
	var b strings.Builder
	b.WriteString(header)
	b.WriteString(`<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">`)
	b.WriteString(`<Relationship Id="rId1" Type="` + relBase + `slideMaster" Target="slideMasters/slideMaster1.xml"/>`)
	for i := range slides {
		fmt.Fprintf(&b, `<Relationship Id="rId%d" Type="%sslide" Target="slides/slide%d.xml"/>`, i+2, relBase, i+1)
	}
	b.WriteString(`</Relationships>`)
	return b.String()
}

func slideRels(n int) string {
	return header +
		`<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">` +
		`<Relationship Id="rId1" Type="` + relBase + `slideLayout" Target="../slideLayouts/slideLayout1.xml"/>` +
		fmt.Sprintf(`<Relationship Id="rId2" Type="%snotesSlide" Target="../notesSlides/notesSlide%d.xml"/>`, relBase, n) +
		`</Relationships>`
}

func slide(s Slide) string {
	var b strings.Builder
	b.WriteString(header)
	b.WriteString(`<p:sld ` + nsDecl + `><p:cSld><p:spTree>`)
	b.WriteString(`<p:nvGrpSpPr><p:cNvPr id="1" name=""/><p:cNvGrpSpPr/><p:nvPr/></p:nvGrpSpPr><p:grpSpPr/>`)
	for i, sh := range s.Shapes {
		id := i + 2
		switch {
		case sh.Picture:
			fmt.Fprintf(&b, `<p:pic><p:nvPicPr><p:cNvPr id="%d" name="%s"/><p:cNvPicPr/><p:nvPr/></p:nvPicPr>`+
				`<p:blipFill><a:blip r:embed="rId9"/></p:blipFill><p:spPr/></p:pic>`, id, escape(sh.Name))
		case sh.Table != nil:
			writeTable(&b, id, sh)
		default:
			fmt.Fprintf(&b, `<p:sp><p:nvSpPr><p:cNvPr id="%d" name="%s"/><p:cNvSpPr/><p:nvPr/></p:nvSpPr><p:spPr/>`, id, escape(sh.Name))
			writeTextBody(&b, "p", sh.Paragraphs)
			b.WriteString(`</p:sp>`)
		}
	}
	b.WriteString(`</p:spTree></p:cSld></p:sld>`)
	return b.String()
}

func writeTable(b *strings.Builder, id int, sh Shape) {
	fmt.Fprintf(b, `<p:graphicFrame><p:nvGraphicFramePr><p:cNvPr id="%d" name="%s"/><p:cNvGraphicFramePr/><p:nvPr/></p:nvGraphicFramePr>`, id, escape(sh.Name))
	b.WriteString(`<p:xfrm/><a:graphic><a:graphicData uri="http://schemas.openxmlformats.org/drawingml/2006/table"><a:tbl><a:tblGrid/>`)
	for _, row := range sh.Table {
		b.WriteString(`<a:tr h="370840">`)
		for _, cell := range row {
			b.WriteString(`<a:tc>`)
			if cell == "" {
				writeTextBody(b, "a", [][]string{nil})
			} else {
				var paras [][]string
				for _, line := range strings.Split(cell, "\n") {
					paras = append(paras, []string{line})
				}
				writeTextBody(b, "a", paras)
			}
			b.WriteString(`<a:tcPr/></a:tc>`)
		}
		b.WriteString(`</a:tr>`)
	}
	b.WriteString(`</a:tbl></a:graphicData></a:graphic></p:graphicFrame>`)
}

func writeTextBody(b *strings.Builder, prefix string, paragraphs [][]string) {
	b.WriteString(`<` + prefix + `:txBody><a:bodyPr/><a:lstStyle/>`)
	for _, runs := range paragraphs {
		if len(runs) == 0 {
			b.WriteString(`<a:p/>`)
			continue
		}
		b.WriteString(`<a:p>`)
		for i, r := range runs {
			for j, seg := range strings.Split(r, "\v") {
				if j > 0 {
					b.WriteString(`<a:br><a:rPr lang="en-US"/></a:br>`)
				}
				if seg == "" {
					continue
				}
				if i == 0 {
					b.WriteString(`<a:r><a:rPr lang="en-US" b="1" dirty="0"/><a:t>`)
				} else {
					b.WriteString(`<a:r><a:rPr lang="en-US" dirty="0"/><a:t>`)
				}
				b.WriteString(escape(seg))
				b.WriteString(`</a:t></a:r>`)
			}
		}
		b.WriteString(`<a:endParaRPr lang="en-US" dirty="0"/></a:p>`)
	}
	b.WriteString(`</` + prefix + `:txBody>`)
}

func notes(text string) string {
	var b strings.Builder
	b.WriteString(header)
	b.WriteString(`<p:notes ` + nsDecl + `><p:cSld><p:spTree>`)
	b.WriteString(`<p:nvGrpSpPr><p:cNvPr id="1" name=""/><p:cNvGrpSpPr/><p:nvPr/></p:nvGrpSpPr><p:grpSpPr/>`)
	b.WriteString(`<p:sp><p:nvSpPr><p:cNvPr id="2" name="Slide Image Placeholder 1"/><p:cNvSpPr/><p:nvPr><p:ph type="sldImg"/></p:nvPr></p:nvSpPr><p:spPr/></p:sp>`)
	b.WriteString(`<p:sp><p:nvSpPr><p:cNvPr id="3" name="Notes Placeholder 2"/><p:cNvSpPr/><p:nvPr><p:ph type="body" idx="1"/></p:nvPr></p:nvSpPr><p:spPr/>`)
	var paras [][]string
	for _, line := range strings.Split(text, "\n") {
		paras = append(paras, []string{line})
	}
	writeTextBody(&b, "p", paras)
	b.WriteString(`</p:sp></p:spTree></p:cSld></p:notes>`)
	return b.String()
}

func escape(s string) string {
	var b strings.Builder
	_ = xml.EscapeText(&b, []byte(s))
	return b.String()
}
