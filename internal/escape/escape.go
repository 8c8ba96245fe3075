// Package escape reconciles the fixture format's string escaping with CEL
// source syntax.
//
// Fixture suites carry expression text quoted in the textproto style, which
// escapes the enclosing delimiter even though CEL itself does not require
// that escape. Every other escape sequence in the fixture text is already
// valid CEL and must pass through untouched.
package escape

import "strings"

// Normalize replaces every backslash-escaped occurrence of quote in text with
// a bare quote character. A backslash followed by any other character, or a
// trailing backslash, is left as-is. Any input is accepted; text without the
// pattern is returned unchanged.
func Normalize(text string, quote byte) string {
	if !strings.Contains(text, `\`+string(quote)) {
		return text
	}
	var b strings.Builder
	b.Grow(len(text))
	for i := 0; i < len(text); i++ {
		if text[i] == '\\' && i+1 < len(text) && text[i+1] == quote {
			b.WriteByte(quote)
			i++
			continue
		}
		b.WriteByte(text[i])
	}
	return b.String()
}
