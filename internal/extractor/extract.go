package extractor

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tsekula/n8n-python/internal/models"
	"github.com/tsekula/n8n-python/internal/slides"
)

// Extract loads the deck at path and writes its content next to it.
func (e *implExtractor) Extract(ctx context.Context, path string) (*Result, error) {
	info, err := os.Stat(path)
	if err != nil || !info.Mode().IsRegular() {
		return nil, fmt.Errorf("%w: %s", models.ErrInvalidPath, path)
	}

	deck, err := slides.Open(path)
	if err != nil {
		return nil, err
	}

	content := Collect(filepath.Base(path), deck)
	base := strings.TrimSuffix(path, filepath.Ext(path))
	res := &Result{OutputPath: base + e.suffix, Content: content}

	if err := writeJSON(res.OutputPath, content); err != nil {
		return nil, err
	}
	e.logger.Info(ctx, "Extracted %d slides from %s -> %s", content.SlideCount, path, res.OutputPath)

	if e.docxReport {
		res.ReportPath = base + strings.TrimSuffix(e.suffix, filepath.Ext(e.suffix)) + ".docx"
		if err := writeReport(content, res.ReportPath); err != nil {
			return nil, fmt.Errorf("%w: write report %s: %w", models.ErrIO, res.ReportPath, err)
		}
		e.logger.Debug(ctx, "Wrote extraction report %s", res.ReportPath)
	}

	return res, nil
}

// Collect builds the extraction tree of a loaded deck. Shape and note texts
// are trimmed and dropped when empty; table cells are kept as they are.
func Collect(title string, deck *slides.Deck) models.ExtractionResult {
	res := models.ExtractionResult{
		Title:      title,
		SlideCount: len(deck.Slides),
		Slides:     make([]models.SlideContent, 0, len(deck.Slides)),
	}

	var cur *models.SlideContent
	slides.Walk(deck, slides.Visitor{
		Slide: func(s *slides.Slide) {
			res.Slides = append(res.Slides, models.SlideContent{
				SlideNumber: s.Number,
				SlideID:     s.ID,
				ShapesText:  []string{},
				Tables:      [][][]string{},
			})
			cur = &res.Slides[len(res.Slides)-1]
		},
		TextFrame: func(_ *slides.Slide, _ *slides.Shape, tf *slides.TextFrame) {
			if text := strings.TrimSpace(tf.Text()); text != "" {
				cur.ShapesText = append(cur.ShapesText, text)
			}
		},
		Table: func(_ *slides.Slide, _ *slides.Shape, t *slides.Table) {
			if len(t.Rows) == 0 {
				return
			}
			rows := make([][]string, len(t.Rows))
			for i, row := range t.Rows {
				rows[i] = append([]string{}, row...)
			}
			cur.Tables = append(cur.Tables, rows)
		},
		Notes: func(_ *slides.Slide, tf *slides.TextFrame) {
			cur.Notes = strings.TrimSpace(tf.Text())
		},
	})

	return res
}

func writeJSON(path string, content models.ExtractionResult) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(content); err != nil {
		return fmt.Errorf("%w: encode %s: %w", models.ErrIO, path, err)
	}

	data := models.UnescapeLineSeparators(bytes.TrimRight(buf.Bytes(), "\n"))
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("%w: write %s: %w", models.ErrIO, path, err)
	}
	return nil
}
