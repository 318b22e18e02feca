package models

import "bytes"

var lineSepEscape = []byte(`\u202`)

// UnescapeLineSeparators rewrites the \u2028 and \u2029 escapes that
// encoding/json always emits back into the raw characters, so document
// text is written the way it was read. Other escapes, including an escaped
// backslash followed by "u2028", are left alone.
func UnescapeLineSeparators(b []byte) []byte {
	if !bytes.Contains(b, lineSepEscape) {
		return b
	}
	out := make([]byte, 0, len(b))
	for i := 0; i < len(b); i++ {
		c := b[i]
		if c != '\\' || i+1 >= len(b) {
			out = append(out, c)
			continue
		}
		if i+5 < len(b) && bytes.HasPrefix(b[i+1:], lineSepEscape[1:]) && (b[i+5] == '8' || b[i+5] == '9') {
			if b[i+5] == '8' {
				out = append(out, "\u2028"...)
			} else {
				out = append(out, "\u2029"...)
			}
			i += 5
			continue
		}
		out = append(out, c, b[i+1])
		i++
	}
	return out
}
