package audio

import (
	"path/filepath"
	"strings"
)

// DefaultFormat is used when a request names a format the table does not know.
const DefaultFormat = "mp3"

var codecs = map[string]string{
	"mp3":  "libmp3lame",
	"wav":  "pcm_s16le",
	"ogg":  "libvorbis",
	"aac":  "aac",
	"flac": "flac",
	"m4a":  "aac",
}

// Codec returns the ffmpeg audio codec for format, falling back to the mp3
// encoder for unknown formats.
func Codec(format string) string {
	if c, ok := codecs[normalizeFormat(format)]; ok {
		return c
	}
	return codecs[DefaultFormat]
}

// Supported reports whether format has an entry in the codec table.
func Supported(format string) bool {
	_, ok := codecs[normalizeFormat(format)]
	return ok
}

// ChannelLayout maps a channel count to the anullsrc layout name.
func ChannelLayout(channels int) string {
	if channels == 1 {
		return "mono"
	}
	return "stereo"
}

// OutputName gives path the extension of format. A known audio extension is
// swapped out; anything else keeps its name and gets the extension appended.
func OutputName(path, format string) string {
	format = normalizeFormat(format)
	ext := filepath.Ext(path)
	current := normalizeFormat(ext)

	switch {
	case current == format:
		return path
	case Supported(current):
		return strings.TrimSuffix(path, ext) + "." + format
	default:
		return path + "." + format
	}
}

func normalizeFormat(format string) string {
	return strings.TrimPrefix(strings.ToLower(strings.TrimSpace(format)), ".")
}
