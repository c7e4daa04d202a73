package utils

import (
	"bytes"
	"encoding/json"
	"fmt"
	"unicode/utf8"
)

const (
	// DefaultMaxStringLength is the default maximum length for truncated strings
	DefaultMaxStringLength = 500
)

// JSONToString serialises object to JSON. When the optional indent argument
// is true the output is pretty-printed with two-space indentation.
// Characters such as <, > and & are written as-is: card text routinely
// contains markup and escaping it would make the output unreadable.
// On failure a JSON-formatted error string is returned so the result is
// always safe to print.
func JSONToString(object any, indent ...bool) string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if len(indent) > 0 && indent[0] {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(object); err != nil {
		return "{\"error\": \"failed to marshal to JSON: " + err.Error() + "\"}"
	}
	// Encode always terminates with a newline.
	return string(bytes.TrimSuffix(buf.Bytes(), []byte("\n")))
}

// TruncateString shortens s to at most maxLen bytes without splitting a
// UTF-8 sequence, appending a suffix that records the original length.
// If maxLen is zero or negative, [DefaultMaxStringLength] is used instead.
func TruncateString(s string, maxLen int) string {
	if maxLen <= 0 {
		maxLen = DefaultMaxStringLength
	}
	if len(s) <= maxLen {
		return s
	}
	cut := maxLen
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return fmt.Sprintf("%s... (truncated, total: %d bytes)", s[:cut], len(s))
}
