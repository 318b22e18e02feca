package extractor

import (
	"context"

	"github.com/tsekula/n8n-python/internal/models"
)

// Extractor reads slide decks and writes their text as a JSON artifact
// next to the source file.
type Extractor interface {
	Extract(ctx context.Context, path string) (*Result, error)
}

// Result describes one finished extraction.
type Result struct {
	OutputPath string
	// ReportPath is empty unless a .docx report was requested.
	ReportPath string
	Content    models.ExtractionResult
}
