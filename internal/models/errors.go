package models

import "errors"

// Pipeline errors. Components wrap these with fmt.Errorf("...: %w") so the
// batch runner can classify failures with errors.Is.
var (
	// ErrInvalidPath indicates the source file is missing or unreadable.
	ErrInvalidPath = errors.New("invalid file path")

	// ErrInvalidRequest indicates a work item carried unusable parameters.
	ErrInvalidRequest = errors.New("invalid request")

	// ErrEncoderNotFound indicates no usable ffmpeg executable could be resolved.
	ErrEncoderNotFound = errors.New("ffmpeg not found: install ffmpeg and add it to PATH, or set encoder.path / --ffmpeg")

	// ErrEncoderRuntime indicates ffmpeg failed or produced no output file.
	ErrEncoderRuntime = errors.New("encoder failed")

	// ErrDeckLoad indicates the slide deck could not be parsed.
	ErrDeckLoad = errors.New("deck load failed")

	// ErrIO indicates a write or permission failure on an output.
	ErrIO = errors.New("i/o failure")

	// ErrReplacement wraps every failure of the text replacement engine.
	ErrReplacement = errors.New("replacement failed")

	// ErrUnexpected is the catch-all for failures outside the taxonomy.
	ErrUnexpected = errors.New("unexpected error")
)

var kinds = []struct {
	err  error
	name string
}{
	{ErrInvalidPath, "InvalidPath"},
	{ErrInvalidRequest, "InvalidRequest"},
	{ErrEncoderNotFound, "EncoderNotFound"},
	{ErrEncoderRuntime, "EncoderRuntimeError"},
	{ErrDeckLoad, "DeckLoadError"},
	{ErrIO, "IOError"},
}

// KindOf names the taxonomy class of err for logs. Unclassified errors are
// reported as UnexpectedError.
func KindOf(err error) string {
	if err == nil {
		return ""
	}
	for _, k := range kinds {
		if errors.Is(err, k.err) {
			return k.name
		}
	}
	return "UnexpectedError"
}
