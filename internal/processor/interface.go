package processor

import (
	"context"
	"fmt"
	"strings"

	"github.com/tsekula/n8n-python/internal/models"
)

// Kind names one of the batch transforms.
type Kind string

const (
	KindAudio   Kind = "audio"
	KindExtract Kind = "extract"
	KindReplace Kind = "replace"
)

// ParseKind validates a transform name.
func ParseKind(s string) (Kind, error) {
	switch k := Kind(strings.ToLower(strings.TrimSpace(s))); k {
	case KindAudio, KindExtract, KindReplace:
		return k, nil
	}
	return "", fmt.Errorf("%w: unknown transform %q (want audio, extract or replace)", models.ErrInvalidRequest, s)
}

// Processor applies a transform to batches of work items.
type Processor interface {
	// Run returns one result per item, in input order. Item failures are
	// recorded on the result item and never returned.
	Run(ctx context.Context, kind Kind, items []models.Item) []models.Item
	// RunFile reads a JSON array of items from in and writes the results to out.
	RunFile(ctx context.Context, kind Kind, in, out string) ([]models.Item, error)
	// ProcessFile runs a batch file into the output folder and moves it to
	// the archive folder. It returns the results path.
	ProcessFile(ctx context.Context, kind Kind, path string) (string, error)
}
