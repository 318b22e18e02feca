package extractor

import (
	"fmt"
	"strings"

	"github.com/gomutex/godocx"
	"github.com/gomutex/godocx/docx"

	"github.com/tsekula/n8n-python/internal/models"
)

const (
	fontName = "Calibri"
	fontSize = 11
)

// writeReport renders the extraction as a readable .docx document.
func writeReport(content models.ExtractionResult, outputPath string) error {
	doc, err := godocx.NewDocument()
	if err != nil {
		return err
	}

	addStyledRun(doc.AddParagraph(""), content.Title, true, 16)
	addStyledRun(doc.AddParagraph(""), fmt.Sprintf("%d slides", content.SlideCount), false, fontSize)

	for _, s := range content.Slides {
		doc.AddParagraph("")
		addStyledRun(doc.AddParagraph(""), fmt.Sprintf("Slide %d", s.SlideNumber), true, 14)

		for _, text := range s.ShapesText {
			for _, line := range lines(text) {
				addStyledRun(doc.AddParagraph(""), line, false, fontSize)
			}
		}

		for _, table := range s.Tables {
			for _, row := range table {
				addStyledRun(doc.AddParagraph(""), strings.Join(row, " | "), false, fontSize)
			}
		}

		if s.Notes != "" {
			p := doc.AddParagraph("")
			p.AddText("Notes: ").Font(fontName).Size(fontSize).Color("555555").Bold(true)
			p.AddText(strings.Join(lines(s.Notes), " ")).Font(fontName).Size(fontSize).Color("555555")
		}
	}

	return doc.SaveTo(outputPath)
}

func addStyledRun(p *docx.Paragraph, text string, bold bool, size uint64) {
	run := p.AddText(text).Font(fontName).Size(size).Color("000000")
	if bold {
		run.Bold(true)
	}
}

func lines(text string) []string {
	text = strings.ReplaceAll(text, "\v", "\n")
	var out []string
	for _, l := range strings.Split(text, "\n") {
		if l = strings.TrimSpace(l); l != "" {
			out = append(out, l)
		}
	}
	return out
}
