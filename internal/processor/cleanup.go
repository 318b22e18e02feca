package processor

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/tsekula/n8n-python/internal/models"
)

const resultsSuffix = ".results.json"

// RunFile reads a batch file, runs it and writes the results file.
func (p *implProcessor) RunFile(ctx context.Context, kind Kind, in, out string) ([]models.Item, error) {
	items, err := ReadItems(in)
	if err != nil {
		return nil, err
	}

	results := p.Run(ctx, kind, items)

	if dir := filepath.Dir(out); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("%w: create results dir: %w", models.ErrIO, err)
		}
	}
	f, err := os.Create(out)
	if err != nil {
		return nil, fmt.Errorf("%w: create %s: %w", models.ErrIO, out, err)
	}
	if err := WriteItems(f, results); err != nil {
		f.Close()
		return nil, err
	}
	if err := f.Close(); err != nil {
		return nil, fmt.Errorf("%w: close %s: %w", models.ErrIO, out, err)
	}

	p.logger.Info(ctx, "Wrote %d result(s) to %s", len(results), out)
	return results, nil
}

// ProcessFile runs a batch file dropped in the inbox.
func (p *implProcessor) ProcessFile(ctx context.Context, kind Kind, path string) (string, error) {
	filename := filepath.Base(path)
	out := filepath.Join(p.cfg.Paths.Output, strings.TrimSuffix(filename, filepath.Ext(filename))+resultsSuffix)

	p.logger.Info(ctx, "Processing batch file: %s", path)
	if _, err := p.RunFile(ctx, kind, path, out); err != nil {
		return "", fmt.Errorf("run %s: %w", filename, err)
	}

	if err := p.moveToArchived(ctx, path); err != nil {
		p.logger.Warn(ctx, "Failed to move batch file to archived folder: %v", err)
	}
	return out, nil
}

// moveToArchived moves a finished batch file into the archived folder
func (p *implProcessor) moveToArchived(ctx context.Context, path string) error {
	if err := os.MkdirAll(p.cfg.Paths.Archived, 0755); err != nil {
		return fmt.Errorf("create archived dir: %w", err)
	}
	destPath := filepath.Join(p.cfg.Paths.Archived, filepath.Base(path))

	p.logger.Debug(ctx, "Moving to archived folder: %s -> %s", path, destPath)

	if err := os.Rename(path, destPath); err != nil {
		return fmt.Errorf("move to archived: %w", err)
	}
	return nil
}

// IsResultsFile reports whether name is a results file written by
// ProcessFile, so watchers can ignore it.
func IsResultsFile(name string) bool {
	return strings.HasSuffix(name, resultsSuffix)
}

// ReadItems loads a batch file. A single JSON object is read as a batch of
// one item.
func ReadItems(path string) ([]models.Item, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", models.ErrInvalidPath, path, err)
	}
	return DecodeItems(data)
}

// DecodeItems parses a JSON array of items, or a single item object.
func DecodeItems(data []byte) ([]models.Item, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '{' {
		var it models.Item
		if err := json.Unmarshal(trimmed, &it); err != nil {
			return nil, err
		}
		return []models.Item{it}, nil
	}

	var items []models.Item
	if err := json.Unmarshal(trimmed, &items); err != nil {
		return nil, fmt.Errorf("%w: batch must be a JSON array of objects: %w", models.ErrInvalidRequest, err)
	}
	return items, nil
}

// WriteItems writes items as an indented JSON array without HTML escaping.
func WriteItems(w io.Writer, items []models.Item) error {
	if items == nil {
		items = []models.Item{}
	}
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(items); err != nil {
		return fmt.Errorf("%w: write results: %w", models.ErrIO, err)
	}
	return nil
}
