package output_test

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"

	"github.com/tyemirov/repomd/internal/output"
	"github.com/tyemirov/repomd/internal/types"
)

const (
	sampleReadme    = "# Sample\n\nA sample project."
	sampleListing   = "project/\n    main.go\n    data.bin"
	sampleFilePath  = "project/main.go"
	sampleContent   = "package main\n\nfunc main() {}"
	sampleBinary    = "project/data.bin"
	expectedSamples = "# Sample\n\nA sample project.\n\n" +
		"## File/Folder Structure:\n" +
		"```\n" +
		"project/\n    main.go\n    data.bin\n" +
		"```\n\n" +
		"## File: project/main.go\n" +
		"```\n" +
		"package main\n\nfunc main() {}\n" +
		"```\n" +
		"## File: project/data.bin\n" +
		"```\n" +
		"[Binary file or encoding error: project/data.bin]\n" +
		"```\n"
)

func renderSample(testingHandle *testing.T, readme string) string {
	testingHandle.Helper()
	var buffer bytes.Buffer
	renderer := output.NewRepositoryRenderer(&buffer)
	require.NoError(testingHandle, renderer.WriteReadme(readme))
	require.NoError(testingHandle, renderer.WriteStructure(sampleListing))
	require.NoError(testingHandle, renderer.WriteFile(sampleFilePath, sampleContent))
	require.NoError(testingHandle, renderer.WriteUndecodableFile(sampleBinary))
	require.NoError(testingHandle, renderer.Flush())
	assert.Equal(testingHandle, int64(buffer.Len()), renderer.BytesWritten())
	return buffer.String()
}

func TestRepositoryRendererLayout(testingHandle *testing.T) {
	assert.Equal(testingHandle, expectedSamples, renderSample(testingHandle, sampleReadme))
}

func TestRepositoryRendererEmptyReadme(testingHandle *testing.T) {
	document := renderSample(testingHandle, "")
	assert.True(testingHandle, strings.HasPrefix(document, "## File/Folder Structure:\n```\n"))
}

func TestRepositoryRendererBuffersUntilFlush(testingHandle *testing.T) {
	var buffer bytes.Buffer
	renderer := output.NewRepositoryRenderer(&buffer)
	require.NoError(testingHandle, renderer.WriteStructure("root/"))
	assert.Zero(testingHandle, buffer.Len())
	require.NoError(testingHandle, renderer.Flush())
	assert.Equal(testingHandle, "## File/Folder Structure:\n```\nroot/\n```\n\n", buffer.String())
}

type failingWriter struct{}

var errWriterClosed = errors.New("writer closed")

func (failingWriter) Write([]byte) (int, error) { return 0, errWriterClosed }

func TestRepositoryRendererReportsFlushError(testingHandle *testing.T) {
	renderer := output.NewRepositoryRenderer(failingWriter{})
	require.NoError(testingHandle, renderer.WriteFile("a.txt", "a"))
	flushError := renderer.Flush()
	require.Error(testingHandle, flushError)
	assert.ErrorIs(testingHandle, flushError, errWriterClosed)
}

// TestRepositoryDocumentParsesAsMarkdown checks that headings and fenced
// blocks survive a markdown parser intact.
func TestRepositoryDocumentParsesAsMarkdown(testingHandle *testing.T) {
	source := []byte(renderSample(testingHandle, sampleReadme))
	document := goldmark.New().Parser().Parse(text.NewReader(source))

	var headings []string
	var blocks []string
	walkError := ast.Walk(document, func(node ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch typed := node.(type) {
		case *ast.Heading:
			headings = append(headings, linesValue(typed, source))
		case *ast.FencedCodeBlock:
			blocks = append(blocks, linesValue(typed, source))
		}
		return ast.WalkContinue, nil
	})
	require.NoError(testingHandle, walkError)

	assert.Equal(testingHandle, []string{
		"Sample",
		"File/Folder Structure:",
		"File: project/main.go",
		"File: project/data.bin",
	}, headings)
	assert.Equal(testingHandle, []string{
		sampleListing + "\n",
		sampleContent + "\n",
		"[Binary file or encoding error: project/data.bin]\n",
	}, blocks)
}

func linesValue(node ast.Node, source []byte) string {
	var builder strings.Builder
	lines := node.Lines()
	for index := 0; index < lines.Len(); index++ {
		segment := lines.At(index)
		builder.Write(segment.Value(source))
	}
	return builder.String()
}

func TestFormatSummaryLine(testingHandle *testing.T) {
	testCases := []struct {
		name     string
		summary  types.RepositorySummary
		expected string
	}{
		{name: "empty", summary: types.RepositorySummary{}, expected: "Summary: 0 files written, 0 ignored, 0 undecodable, 0b"},
		{
			name:     "single file",
			summary:  types.RepositorySummary{FilesWritten: 1, FilesIgnored: 2, BytesWritten: 10},
			expected: "Summary: 1 file written, 2 ignored, 0 undecodable, 10b",
		},
		{
			name:     "fractional kilobytes",
			summary:  types.RepositorySummary{FilesWritten: 3, FilesUndecodable: 1, BytesWritten: 1536},
			expected: "Summary: 3 files written, 0 ignored, 1 undecodable, 1.5kb",
		},
		{
			name:     "whole kilobyte drops decimal",
			summary:  types.RepositorySummary{FilesWritten: 2, BytesWritten: 1024},
			expected: "Summary: 2 files written, 0 ignored, 0 undecodable, 1kb",
		},
		{
			name:     "megabytes",
			summary:  types.RepositorySummary{FilesWritten: 2, BytesWritten: 10 * 1024 * 1024},
			expected: "Summary: 2 files written, 0 ignored, 0 undecodable, 10mb",
		},
		{
			name:     "negative size",
			summary:  types.RepositorySummary{BytesWritten: -1},
			expected: "Summary: 0 files written, 0 ignored, 0 undecodable, 0b",
		},
		{
			name:     "tokens and model",
			summary:  types.RepositorySummary{FilesWritten: 3, BytesWritten: 1024, Tokens: 42, TokenModel: "gpt-4o"},
			expected: "Summary: 3 files written, 0 ignored, 0 undecodable, 1kb, 42 tokens (model: gpt-4o)",
		},
		{
			name:     "zero tokens are still reported",
			summary:  types.RepositorySummary{TokenModel: "cl100k_base"},
			expected: "Summary: 0 files written, 0 ignored, 0 undecodable, 0b, 0 tokens (model: cl100k_base)",
		},
	}
	for _, testCase := range testCases {
		testingHandle.Run(testCase.name, func(subTestingHandle *testing.T) {
			assert.Equal(subTestingHandle, testCase.expected, output.FormatSummaryLine(testCase.summary))
		})
	}
}
