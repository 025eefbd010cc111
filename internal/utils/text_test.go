package utils_test

import (
	"testing"

	"github.com/tyemirov/repomd/internal/utils"
)

func TestDecodeText(t *testing.T) {
	testCases := []struct {
		name          string
		input         []byte
		expectedText  string
		expectDecoded bool
	}{
		{name: "plain", input: []byte("print(1)"), expectedText: "print(1)", expectDecoded: true},
		{name: "windows_line_endings", input: []byte("a\r\nb\r\n"), expectedText: "a\nb\n", expectDecoded: true},
		{name: "classic_mac_line_endings", input: []byte("a\rb"), expectedText: "a\nb", expectDecoded: true},
		{name: "nul_bytes_are_valid_utf8", input: []byte{'a', 0, 'b'}, expectedText: "a\x00b", expectDecoded: true},
		{name: "invalid_utf8", input: []byte{0xff, 0xfe, 0x00}, expectedText: "", expectDecoded: false},
		{name: "empty", input: nil, expectedText: "", expectDecoded: true},
	}
	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			decodedText, decoded := utils.DecodeText(testCase.input)
			if decoded != testCase.expectDecoded {
				t.Fatalf("expected decoded=%t, got %t", testCase.expectDecoded, decoded)
			}
			if decodedText != testCase.expectedText {
				t.Fatalf("expected %q, got %q", testCase.expectedText, decodedText)
			}
		})
	}
}
