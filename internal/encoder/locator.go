package encoder

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

// Locate tries, in order: the explicit override, the command search path,
// then the bundled directories.
func (l *implLocator) Locate() (string, bool) {
	if l.override != "" && isExecutable(l.override) {
		return l.override, true
	}

	if path, err := l.lookPath(l.binary); err == nil && path != "" {
		return path, true
	}

	name := executableName(l.binary)
	for _, dir := range l.bundledDirs {
		if dir == "" {
			continue
		}
		candidate := filepath.Join(dir, name)
		if isExecutable(candidate) {
			return candidate, true
		}
	}

	return "", false
}

func executableName(binary string) string {
	if runtime.GOOS == "windows" && !strings.HasSuffix(strings.ToLower(binary), ".exe") {
		return binary + ".exe"
	}
	return binary
}

func isExecutable(path string) bool {
	info, err := os.Stat(path)
	if err != nil || !info.Mode().IsRegular() {
		return false
	}
	if runtime.GOOS == "windows" {
		return true
	}
	return info.Mode().Perm()&0111 != 0
}
