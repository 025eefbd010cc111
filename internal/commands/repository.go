package commands

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/tyemirov/repomd/internal/config"
	"github.com/tyemirov/repomd/internal/ignore"
	"github.com/tyemirov/repomd/internal/output"
	"github.com/tyemirov/repomd/internal/types"
	"github.com/tyemirov/repomd/internal/utils"
)

const (
	errorLoadIgnoreFormat     = "loading ignore patterns for %s: %w"
	errorStructureFormat      = "listing structure of %s: %w"
	errorClassifyFormat       = "collecting text files of %s: %w"
	errorReadFileFormat       = "reading file %s: %w"
	errorCreateOutputFormat   = "creating output file %s: %w"
	errorCloseOutputFormat    = "closing output file %s: %w"
	errorRenderDocumentFormat = "rendering repository document: %w"

	logIgnoredFile      = "skipping ignored file"
	logUndecodableFile  = "file is not valid UTF-8"
	logOutputFileSkip   = "skipping the output file itself"
	logRepositoryInputs = "collected repository inputs"
)

// RepositoryBuilder renders the repository document for Root.
type RepositoryBuilder struct {
	Root   string
	Logger *zap.Logger
	// CaptureDocument keeps a copy of the rendered text in the summary.
	CaptureDocument bool
}

// repositoryInputs holds everything read from disk before the document is written.
type repositoryInputs struct {
	matcher   *ignore.Matcher
	readme    string
	listing   string
	textFiles []string
}

// Build gathers the inputs of root and writes the document to destination.
func (builder RepositoryBuilder) Build(destination io.Writer) (types.RepositorySummary, error) {
	inputs, gatherError := builder.gather()
	if gatherError != nil {
		return types.RepositorySummary{}, gatherError
	}
	return builder.render(destination, inputs, "")
}

// WriteRepositoryFile gathers the inputs of root, then creates or truncates
// outputPath and writes the document to it. The output file is not touched
// when gathering fails.
func (builder RepositoryBuilder) WriteRepositoryFile(outputPath string) (summary types.RepositorySummary, buildError error) {
	inputs, gatherError := builder.gather()
	if gatherError != nil {
		return types.RepositorySummary{}, gatherError
	}

	// #nosec G304
	outputFile, createError := os.Create(outputPath)
	if createError != nil {
		return types.RepositorySummary{}, fmt.Errorf(errorCreateOutputFormat, outputPath, createError)
	}
	defer func() {
		closeError := outputFile.Close()
		if closeError != nil && buildError == nil {
			buildError = fmt.Errorf(errorCloseOutputFormat, outputPath, closeError)
		}
	}()

	absoluteOutputPath, absoluteError := filepath.Abs(outputPath)
	if absoluteError != nil {
		absoluteOutputPath = ""
	}
	return builder.render(outputFile, inputs, absoluteOutputPath)
}

func (builder RepositoryBuilder) gather() (repositoryInputs, error) {
	logger := utils.LoggerOrNop(builder.Logger)

	patterns, loadError := config.LoadRootIgnorePatterns(builder.Root)
	if loadError != nil {
		return repositoryInputs{}, fmt.Errorf(errorLoadIgnoreFormat, builder.Root, loadError)
	}
	matcher, matcherError := ignore.NewMatcher(builder.Root, patterns, logger)
	if matcherError != nil {
		return repositoryInputs{}, fmt.Errorf(errorLoadIgnoreFormat, builder.Root, matcherError)
	}

	readme, readmeError := LoadReadme(builder.Root)
	if readmeError != nil {
		return repositoryInputs{}, readmeError
	}

	listing, listingError := GetStructureListing(builder.Root, logger)
	if listingError != nil {
		return repositoryInputs{}, fmt.Errorf(errorStructureFormat, builder.Root, listingError)
	}

	textFiles, classifyError := GetTextFiles(builder.Root, logger)
	if classifyError != nil {
		return repositoryInputs{}, fmt.Errorf(errorClassifyFormat, builder.Root, classifyError)
	}

	logger.Debug(logRepositoryInputs,
		zap.String("root", builder.Root),
		zap.Int("ignorePatterns", matcher.Len()),
		zap.Bool("readme", readme != ""),
		zap.Int("textFiles", len(textFiles)))

	return repositoryInputs{
		matcher:   matcher,
		readme:    readme,
		listing:   listing,
		textFiles: textFiles,
	}, nil
}

// render writes the document. A text file resolving to skipPath is left out so
// that an output file inside the tree never embeds itself.
func (builder RepositoryBuilder) render(destination io.Writer, inputs repositoryInputs, skipPath string) (types.RepositorySummary, error) {
	logger := utils.LoggerOrNop(builder.Logger)

	var captured strings.Builder
	if builder.CaptureDocument {
		destination = io.MultiWriter(destination, &captured)
	}
	renderer := output.NewRepositoryRenderer(destination)
	var summary types.RepositorySummary

	if writeError := renderer.WriteReadme(inputs.readme); writeError != nil {
		return summary, fmt.Errorf(errorRenderDocumentFormat, writeError)
	}
	if writeError := renderer.WriteStructure(inputs.listing); writeError != nil {
		return summary, fmt.Errorf(errorRenderDocumentFormat, writeError)
	}

	for _, filePath := range inputs.textFiles {
		if inputs.matcher.Matches(filePath) {
			logger.Debug(logIgnoredFile, zap.String("path", filePath))
			summary.FilesIgnored++
			continue
		}
		if skipPath != "" && isSamePath(filePath, skipPath) {
			logger.Debug(logOutputFileSkip, zap.String("path", filePath))
			continue
		}

		// #nosec G304
		fileBytes, readError := os.ReadFile(filePath)
		if readError != nil {
			return summary, fmt.Errorf(errorReadFileFormat, filePath, readError)
		}
		fileText, decoded := utils.DecodeText(fileBytes)
		var writeError error
		if decoded {
			writeError = renderer.WriteFile(filePath, fileText)
		} else {
			logger.Debug(logUndecodableFile, zap.String("path", filePath))
			summary.FilesUndecodable++
			writeError = renderer.WriteUndecodableFile(filePath)
		}
		if writeError != nil {
			return summary, fmt.Errorf(errorRenderDocumentFormat, writeError)
		}
		summary.FilesWritten++
	}

	if flushError := renderer.Flush(); flushError != nil {
		return summary, flushError
	}
	summary.BytesWritten = renderer.BytesWritten()
	summary.Document = captured.String()
	return summary, nil
}

func isSamePath(candidatePath string, absolutePath string) bool {
	absoluteCandidate, absoluteError := filepath.Abs(candidatePath)
	if absoluteError != nil {
		return false
	}
	return absoluteCandidate == absolutePath
}
