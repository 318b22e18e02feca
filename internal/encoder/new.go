package encoder

import (
	"os"
	"os/exec"
	"path/filepath"

	"github.com/tsekula/n8n-python/internal/config"
)

type implLocator struct {
	override    string
	binary      string
	bundledDirs []string
	lookPath    func(file string) (string, error)
}

// New creates a Locator from the encoder config. An empty BundledDirs list
// falls back to the directories shipped next to the running executable.
func New(cfg config.EncoderConfig) Locator {
	binary := cfg.Binary
	if binary == "" {
		binary = "ffmpeg"
	}

	dirs := cfg.BundledDirs
	if len(dirs) == 0 {
		dirs = defaultBundledDirs()
	}

	return &implLocator{
		override:    cfg.Path,
		binary:      binary,
		bundledDirs: dirs,
		lookPath:    exec.LookPath,
	}
}

func defaultBundledDirs() []string {
	exe, err := os.Executable()
	if err != nil {
		return nil
	}
	base := filepath.Dir(exe)
	return []string{
		base,
		filepath.Join(base, "bin"),
		filepath.Join(base, "third_party", "ffmpeg"),
	}
}
