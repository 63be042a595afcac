// Package cache implements the per-song/per-cover payload cache, the "get"
// channel payload-request protocol, and the background cache manager
// (spec §4.6).
package cache

import "strings"

// EncodeLine escapes a line for the get-channel protocol (spec §4.6):
// backslash becomes "\\\\", newline becomes literal "\n", carriage return
// becomes literal "\r". Grounded line for line on
// original_source/musicdb-lib/src/server/get.rs::con_get_encode_string.
func EncodeLine(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, ch := range s {
		switch ch {
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		default:
			b.WriteRune(ch)
		}
	}
	return b.String()
}

// DecodeLine reverses EncodeLine. An escape sequence this decoder doesn't
// recognise (e.g. "\\x") degrades to the literal character after the
// backslash, and a trailing lone backslash is dropped — both match the
// Rust decoder's behaviour exactly (con_get_decode_line).
func DecodeLine(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	runes := []rune(s)
	for i := 0; i < len(runes); i++ {
		ch := runes[i]
		if ch != '\\' {
			b.WriteRune(ch)
			continue
		}
		i++
		if i >= len(runes) {
			break
		}
		switch runes[i] {
		case 'n':
			b.WriteByte('\n')
		case 'r':
			b.WriteByte('\r')
		case '\\':
			b.WriteByte('\\')
		default:
			b.WriteRune(runes[i])
		}
	}
	return b.String()
}

// Request verbs understood by the get channel (spec §4.6).
const (
	VerbCoverBytes = "cover-bytes"
	VerbSongFile   = "song-file"
	VerbCustomFile = "custom-file"
)
