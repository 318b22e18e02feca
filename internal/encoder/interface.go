package encoder

// Locator resolves the ffmpeg executable to run.
type Locator interface {
	// Locate returns a usable encoder path, or ok=false when none exists.
	// It never fails with an error and has no side effects.
	Locate() (path string, ok bool)
}
