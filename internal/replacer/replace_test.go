package replacer

import (
	"archive/zip"
	"context"
	"crypto/sha256"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tsekula/n8n-python/internal/config"
	"github.com/tsekula/n8n-python/internal/logger"
	"github.com/tsekula/n8n-python/internal/models"
	"github.com/tsekula/n8n-python/internal/slides"
	"github.com/tsekula/n8n-python/internal/slides/slidestest"
)

func newTestReplacer() Replacer {
	return New(config.ReplaceConfig{}, logger.NewNop())
}

func entry(t *testing.T, path, name string) []byte {
	t.Helper()
	zr, err := zip.OpenReader(path)
	require.NoError(t, err)
	defer zr.Close()
	for _, f := range zr.File {
		if f.Name == name {
			rc, err := f.Open()
			require.NoError(t, err)
			defer rc.Close()
			data, err := io.ReadAll(rc)
			require.NoError(t, err)
			return data
		}
	}
	t.Fatalf("entry %s not found", name)
	return nil
}

func texts(t *testing.T, path string) [][]string {
	t.Helper()
	d, err := slides.Open(path)
	require.NoError(t, err)
	var out [][]string
	for _, s := range d.Slides {
		var ss []string
		for _, sh := range s.Shapes {
			if sh.HasTextFrame() {
				ss = append(ss, sh.TextFrame.Text())
			}
		}
		out = append(out, ss)
	}
	return out
}

func TestReplace_HelloWorld(t *testing.T) {
	dir := t.TempDir()
	src := slidestest.Write(t, dir, "deck.pptx", slidestest.Slide{
		Shapes: []slidestest.Shape{slidestest.Text("Body", "Hello OLD TEXT world")},
	})

	res, err := newTestReplacer().Replace(context.Background(), src, "OLD TEXT", "NEW TEXT")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "modified_deck.pptx"), res.OutputPath)
	assert.Equal(t, 1, res.Replacements)

	assert.Equal(t, [][]string{{"Hello NEW TEXT world"}}, texts(t, res.OutputPath))
	assert.Equal(t, [][]string{{"Hello OLD TEXT world"}}, texts(t, src))
}

func TestReplace_SourceUnchanged(t *testing.T) {
	dir := t.TempDir()
	src := slidestest.Write(t, dir, "deck.pptx", slidestest.Slide{
		Shapes: []slidestest.Shape{slidestest.Text("Body", "OLD TEXT")},
	})

	before, err := os.ReadFile(src)
	require.NoError(t, err)
	infoBefore, err := os.Stat(src)
	require.NoError(t, err)

	_, err = newTestReplacer().Replace(context.Background(), src, "OLD TEXT", "NEW TEXT")
	require.NoError(t, err)

	after, err := os.ReadFile(src)
	require.NoError(t, err)
	infoAfter, err := os.Stat(src)
	require.NoError(t, err)

	assert.Equal(t, sha256.Sum256(before), sha256.Sum256(after))
	assert.Equal(t, infoBefore.ModTime(), infoAfter.ModTime())
}

func TestReplace_AllOccurrences(t *testing.T) {
	dir := t.TempDir()
	src := slidestest.Write(t, dir, "deck.pptx",
		slidestest.Slide{Shapes: []slidestest.Shape{
			slidestest.Text("A", "OLD TEXT and OLD TEXT", "untouched"),
			{Name: "Split runs", Paragraphs: [][]string{{"say ", "OLD", " TEXT", "!"}}},
		}},
		slidestest.Slide{Shapes: []slidestest.Shape{
			slidestest.Text("B", "tail OLD TEXT"),
		}},
	)

	res, err := newTestReplacer().Replace(context.Background(), src, "OLD TEXT", "NEW TEXT")
	require.NoError(t, err)
	assert.Equal(t, 4, res.Replacements)

	assert.Equal(t, [][]string{
		{"NEW TEXT and NEW TEXT\nuntouched", "say NEW TEXT!"},
		{"tail NEW TEXT"},
	}, texts(t, res.OutputPath))
}

func TestReplace_NonMatchingUntouched(t *testing.T) {
	dir := t.TempDir()
	src := slidestest.Write(t, dir, "deck.pptx",
		slidestest.Slide{
			Shapes: []slidestest.Shape{
				slidestest.Text("A", "keep this", "OLD TEXT here"),
				slidestest.Grid("T", []string{"OLD TEXT"}),
			},
			Notes: "OLD TEXT in notes",
		},
		slidestest.Slide{Shapes: []slidestest.Shape{slidestest.Text("B", "old text is case sensitive")}},
	)

	res, err := newTestReplacer().Replace(context.Background(), src, "OLD TEXT", "NEW TEXT")
	require.NoError(t, err)
	assert.Equal(t, 1, res.Replacements)

	// Parts without a match are copied byte for byte.
	for _, name := range []string{"ppt/slides/slide2.xml", "ppt/notesSlides/notesSlide1.xml", "ppt/presentation.xml"} {
		assert.Equal(t, entry(t, src, name), entry(t, res.OutputPath, name), name)
	}

	slide := string(entry(t, res.OutputPath, "ppt/slides/slide1.xml"))
	assert.Contains(t, slide, `<a:p><a:r><a:rPr lang="en-US" b="1" dirty="0"/><a:t>keep this</a:t></a:r><a:endParaRPr lang="en-US" dirty="0"/></a:p>`)
	assert.Contains(t, slide, `<a:t>NEW TEXT here</a:t>`)
	assert.Contains(t, slide, `<a:tc><a:txBody><a:bodyPr/><a:lstStyle/><a:p><a:r><a:rPr lang="en-US" b="1" dirty="0"/><a:t>OLD TEXT</a:t>`)
}

func TestReplace_NoMatchStillWritesCopy(t *testing.T) {
	dir := t.TempDir()
	src := slidestest.Write(t, dir, "deck.pptx", slidestest.Slide{
		Shapes: []slidestest.Shape{slidestest.Text("A", "nothing to see")},
	})

	res, err := New(config.ReplaceConfig{OutputPrefix: "edited_"}, logger.NewNop()).
		Replace(context.Background(), src, "OLD TEXT", "NEW TEXT")
	require.NoError(t, err)
	assert.Equal(t, 0, res.Replacements)
	assert.Equal(t, filepath.Join(dir, "edited_deck.pptx"), res.OutputPath)
	assert.FileExists(t, res.OutputPath)
}

func TestReplace_Errors(t *testing.T) {
	dir := t.TempDir()
	src := slidestest.Write(t, dir, "deck.pptx", slidestest.Slide{})
	broken := filepath.Join(dir, "broken.pptx")
	require.NoError(t, os.WriteFile(broken, []byte("nope"), 0644))

	tests := []struct {
		name   string
		path   string
		search string
		want   error
	}{
		{"empty search", src, "", models.ErrInvalidRequest},
		{"missing file", filepath.Join(dir, "missing.pptx"), "x", models.ErrInvalidPath},
		{"directory", dir, "x", models.ErrInvalidPath},
		{"not a deck", broken, "x", models.ErrDeckLoad},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := newTestReplacer().Replace(context.Background(), tt.path, tt.search, "y")
			assert.ErrorIs(t, err, models.ErrReplacement)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}
