package replacer

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tsekula/n8n-python/internal/models"
	"github.com/tsekula/n8n-python/internal/slides"
)

// Replace substitutes search with replacement in every text-frame paragraph
// of the deck at path. The source file is never written.
func (r *implReplacer) Replace(ctx context.Context, path, search, replacement string) (*Result, error) {
	if search == "" {
		return nil, fmt.Errorf("%w: %w: search text is empty", models.ErrReplacement, models.ErrInvalidRequest)
	}

	info, err := os.Stat(path)
	if err != nil || !info.Mode().IsRegular() {
		return nil, fmt.Errorf("%w: %w: %s", models.ErrReplacement, models.ErrInvalidPath, path)
	}

	deck, err := slides.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", models.ErrReplacement, err)
	}

	count := Apply(deck, search, replacement)

	out := filepath.Join(filepath.Dir(path), r.prefix+filepath.Base(path))
	if err := deck.Save(out); err != nil {
		return nil, fmt.Errorf("%w: %w", models.ErrReplacement, err)
	}

	r.logger.Info(ctx, "Replaced %d occurrence(s) of %q in %s -> %s", count, search, path, out)
	return &Result{OutputPath: out, Replacements: count}, nil
}

// Apply rewrites each text-frame paragraph that contains search and returns
// the number of occurrences replaced. Tables and notes are left alone.
func Apply(deck *slides.Deck, search, replacement string) int {
	if search == "" {
		return 0
	}
	count := 0
	slides.Walk(deck, slides.Visitor{
		TextFrame: func(_ *slides.Slide, _ *slides.Shape, tf *slides.TextFrame) {
			for _, p := range tf.Paragraphs {
				text := p.Text()
				n := strings.Count(text, search)
				if n == 0 {
					continue
				}
				p.SetText(strings.ReplaceAll(text, search, replacement))
				count += n
			}
		},
	})
	return count
}
