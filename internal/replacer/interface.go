package replacer

import "context"

// Replacer rewrites text in slide decks, writing the result to a new file
// beside the source.
type Replacer interface {
	Replace(ctx context.Context, path, search, replacement string) (*Result, error)
}

// Result describes one finished replacement.
type Result struct {
	OutputPath   string
	Replacements int
}
