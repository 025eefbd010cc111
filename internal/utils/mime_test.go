package utils_test

import (
	"testing"

	"github.com/tyemirov/repomd/internal/utils"
)

func TestGuessMimeType(t *testing.T) {
	testCases := []struct {
		name     string
		path     string
		expected string
	}{
		{name: "plain_text", path: "notes.txt", expected: "text/plain"},
		{name: "go_source", path: "cmd/main.go", expected: "text/x-go"},
		{name: "upper_case_extension", path: "IMAGE.PNG", expected: "image/png"},
		{name: "no_extension", path: "Makefile", expected: utils.UnknownMimeType},
		{name: "dockerfile", path: "build/Dockerfile", expected: utils.UnknownMimeType},
		{name: "leading_dot_only", path: "config/.bashrc", expected: utils.UnknownMimeType},
		{name: "leading_dot_with_extension", path: ".eslintrc.json", expected: "text/x-json"},
		{name: "dot_in_directory", path: "pkg.d/README", expected: utils.UnknownMimeType},
		{name: "unknown_extension", path: "data.bin", expected: utils.UnknownMimeType},
		{name: "compressed_text", path: "notes.txt.gz", expected: "text/plain"},
		{name: "compressed_without_inner_type", path: "dump.gz", expected: utils.UnknownMimeType},
		{name: "tarball_alias", path: "release.tgz", expected: "application/x-tar"},
		{name: "compression_suffix_is_case_sensitive", path: "archive.tar.z", expected: utils.UnknownMimeType},
		{name: "executable", path: "bin/tool.exe", expected: "application/vnd.microsoft.portable-executable"},
	}
	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			if mimeType := utils.GuessMimeType(testCase.path); mimeType != testCase.expected {
				t.Fatalf("GuessMimeType(%q) = %q, want %q", testCase.path, mimeType, testCase.expected)
			}
		})
	}
}

func TestIsProbablyText(t *testing.T) {
	textPaths := []string{"README.md", "main.py", "Makefile", "data.bin", "styles/site.css", "notes.txt.gz"}
	for _, textPath := range textPaths {
		if !utils.IsProbablyText(textPath) {
			t.Fatalf("expected %s to be treated as text", textPath)
		}
	}
	binaryPaths := []string{"logo.png", "tool.exe", "song.mp3", "clip.mp4", "bundle.zip", "report.pdf", "icon.svgz"}
	for _, binaryPath := range binaryPaths {
		if utils.IsProbablyText(binaryPath) {
			t.Fatalf("expected %s to be treated as non-text", binaryPath)
		}
	}
}
