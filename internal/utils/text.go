package utils

import (
	"strings"
	"unicode/utf8"
)

// DecodeText interprets data as UTF-8 text. It reports false when data is not
// valid UTF-8. Line endings are normalized to "\n": "\r\n" and a lone "\r"
// both become "\n".
func DecodeText(data []byte) (string, bool) {
	if !utf8.Valid(data) {
		return "", false
	}
	return NormalizeLineEndings(string(data)), true
}

// NormalizeLineEndings converts "\r\n" and "\r" line terminators into "\n".
func NormalizeLineEndings(text string) string {
	if !strings.Contains(text, "\r") {
		return text
	}
	text = strings.ReplaceAll(text, "\r\n", "\n")
	return strings.ReplaceAll(text, "\r", "\n")
}
