package extractor

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tsekula/n8n-python/internal/config"
	"github.com/tsekula/n8n-python/internal/logger"
	"github.com/tsekula/n8n-python/internal/models"
	"github.com/tsekula/n8n-python/internal/slides/slidestest"
)

func newTestExtractor(report bool) Extractor {
	return New(config.ExtractConfig{DocxReport: report}, logger.NewNop())
}

func writeSampleDeck(t *testing.T, dir string) string {
	t.Helper()
	return slidestest.Write(t, dir, "Quarterly Review.pptx",
		slidestest.Slide{
			Shapes: []slidestest.Shape{
				slidestest.Text("Title", "  Results & <Plans>  "),
				slidestest.Text("Blank", "   "),
				slidestest.Grid("Table", []string{"Q1", "Q2"}, []string{"", "7"}),
				slidestest.Picture("Chart"),
			},
			Notes: "  Mention the budget  ",
		},
		slidestest.Slide{
			Shapes: []slidestest.Shape{slidestest.Picture("Only a picture")},
		},
	)
}

func TestExtract(t *testing.T) {
	dir := t.TempDir()
	path := writeSampleDeck(t, dir)

	res, err := newTestExtractor(false).Extract(context.Background(), path)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "Quarterly Review_content.json"), res.OutputPath)
	assert.Empty(t, res.ReportPath)

	want := models.ExtractionResult{
		Title:      "Quarterly Review.pptx",
		SlideCount: 2,
		Slides: []models.SlideContent{
			{
				SlideNumber: 1,
				SlideID:     "256",
				ShapesText:  []string{"Results & <Plans>"},
				Tables:      [][][]string{{{"Q1", "Q2"}, {"", "7"}}},
				Notes:       "Mention the budget",
			},
			{
				SlideNumber: 2,
				SlideID:     "257",
				ShapesText:  []string{},
				Tables:      [][][]string{},
			},
		},
	}
	assert.Equal(t, want, res.Content)

	data, err := os.ReadFile(res.OutputPath)
	require.NoError(t, err)

	var onDisk models.ExtractionResult
	require.NoError(t, json.Unmarshal(data, &onDisk))
	assert.Equal(t, want, onDisk)

	assert.Contains(t, string(data), `"Results & <Plans>"`, "text is written unescaped")
	assert.Contains(t, string(data), "\n  \"title\": ", "two-space indent")
	assert.Contains(t, string(data), `"shapes_text": []`)
}

func TestExtract_Idempotent(t *testing.T) {
	path := writeSampleDeck(t, t.TempDir())
	e := newTestExtractor(false)

	first, err := e.Extract(context.Background(), path)
	require.NoError(t, err)
	a, err := os.ReadFile(first.OutputPath)
	require.NoError(t, err)

	second, err := e.Extract(context.Background(), path)
	require.NoError(t, err)
	b, err := os.ReadFile(second.OutputPath)
	require.NoError(t, err)

	assert.Equal(t, a, b)
}

func TestExtract_InvalidPath(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name string
		path string
	}{
		{"missing", filepath.Join(dir, "missing.pptx")},
		{"empty", ""},
		{"directory", dir},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := newTestExtractor(false).Extract(context.Background(), tt.path)
			assert.ErrorIs(t, err, models.ErrInvalidPath)
		})
	}

	_, err := os.Stat(filepath.Join(dir, "missing_content.json"))
	assert.True(t, os.IsNotExist(err), "no artifact for a missing deck")
}

func TestExtract_NotADeck(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.pptx")
	require.NoError(t, os.WriteFile(path, []byte("plain text"), 0644))

	_, err := newTestExtractor(false).Extract(context.Background(), path)
	assert.ErrorIs(t, err, models.ErrDeckLoad)
}

func TestExtract_UnwritableOutput(t *testing.T) {
	dir := t.TempDir()
	path := writeSampleDeck(t, dir)
	require.NoError(t, os.Mkdir(filepath.Join(dir, "Quarterly Review_content.json"), 0755))

	_, err := newTestExtractor(false).Extract(context.Background(), path)
	assert.ErrorIs(t, err, models.ErrIO)
}

func TestExtract_DocxReport(t *testing.T) {
	dir := t.TempDir()
	path := writeSampleDeck(t, dir)

	res, err := newTestExtractor(true).Extract(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "Quarterly Review_content.docx"), res.ReportPath)

	info, err := os.Stat(res.ReportPath)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestLines(t *testing.T) {
	got := lines(" a \v b\n\n c ")
	assert.Equal(t, []string{"a", "b", "c"}, got)
	assert.Nil(t, lines("  "))
}

func TestExtract_WritesTextLiterally(t *testing.T) {
	path := slidestest.Write(t, t.TempDir(), "sep.pptx", slidestest.Slide{
		Shapes: []slidestest.Shape{slidestest.Text("Body", "x\u2028y é")},
	})

	res, err := newTestExtractor(false).Extract(context.Background(), path)
	require.NoError(t, err)

	data, err := os.ReadFile(res.OutputPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "\"x\u2028y é\"")
	assert.NotContains(t, string(data), `\u2028`)
	assert.True(t, bytes.HasSuffix(data, []byte("}")), "no trailing newline")

	var onDisk models.ExtractionResult
	require.NoError(t, json.Unmarshal(data, &onDisk))
	assert.Equal(t, []string{"x\u2028y é"}, onDisk.Slides[0].ShapesText)
}
