package processor

import (
	"context"
	"errors"
	"fmt"

	"github.com/tsekula/n8n-python/internal/models"
)

const (
	statusReplaced     = "Text replaced successfully"
	statusReplaceError = "Error processing PowerPoint file"
	errReplaceNotFound = "Invalid file path or file does not exist"
)

// pathError keeps the item's file_path for the failure messages.
type pathError struct {
	path string
	err  error
}

func (e *pathError) Error() string { return e.err.Error() }
func (e *pathError) Unwrap() error { return e.err }

func (p *implProcessor) extract(ctx context.Context, it *models.Item) error {
	path, err := it.String("file_path", "")
	if err != nil {
		return err
	}

	res, err := p.deps.Extractor.Extract(ctx, path)
	if err != nil {
		return &pathError{path: path, err: err}
	}

	ok := true
	count := res.Content.SlideCount
	content := res.Content
	it.Success = &ok
	it.OutputPath = res.OutputPath
	it.SlideCount = &count
	it.Data = &content
	return nil
}

func failExtract(it *models.Item, err error) {
	ok := false
	it.Success = &ok

	var pe *pathError
	if errors.As(err, &pe) && errors.Is(err, models.ErrInvalidPath) {
		it.Error = fmt.Sprintf("Invalid file path: %s", pe.path)
		return
	}
	it.Error = err.Error()
}

func (p *implProcessor) replace(ctx context.Context, it *models.Item) error {
	path, err := it.String("file_path", "")
	if err != nil {
		return err
	}
	search, err := it.String("searchText", p.cfg.Replace.SearchText)
	if err != nil {
		return err
	}
	replacement, err := it.String("replaceText", p.cfg.Replace.ReplaceText)
	if err != nil {
		return err
	}

	res, err := p.deps.Replacer.Replace(ctx, path, search, replacement)
	if err != nil {
		return &pathError{path: path, err: err}
	}

	it.Status = statusReplaced
	it.OutputPath = res.OutputPath
	return nil
}

func failReplace(it *models.Item, err error) {
	var pe *pathError
	if errors.As(err, &pe) && errors.Is(err, models.ErrInvalidPath) {
		it.Status = fmt.Sprintf("File not found: %s", pe.path)
		it.Error = errReplaceNotFound
		return
	}
	it.Status = statusReplaceError
	it.Error = err.Error()
}
