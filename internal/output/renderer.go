// Package output renders the repository markdown document.
package output

import (
	"bufio"
	"fmt"
	"io"
)

const (
	structureHeading  = "## File/Folder Structure:\n"
	fileHeadingFormat = "## File: %s\n"
	fenceOpen         = "```\n"
	fenceClose        = "```\n"
	readmeSeparator   = "\n\n"
	structureTrailer  = "\n"

	// UndecodableFileFormat is the body written for a file that is not valid UTF-8.
	UndecodableFileFormat = "[Binary file or encoding error: %s]"

	errorWriteSectionFormat = "writing %s section: %w"
	errorFlushFormat        = "flushing repository document: %w"

	sectionReadme    = "readme"
	sectionStructure = "structure"
	sectionFile      = "file"
)

// RepositoryRenderer writes the sections of a repository document in order:
// the README, the file/folder structure, then one fenced block per file.
type RepositoryRenderer struct {
	writer  *bufio.Writer
	written int64
}

// NewRepositoryRenderer buffers writes to destination until Flush.
func NewRepositoryRenderer(destination io.Writer) *RepositoryRenderer {
	return &RepositoryRenderer{writer: bufio.NewWriter(destination)}
}

// WriteReadme writes the README followed by a blank line. An empty README
// writes nothing.
func (renderer *RepositoryRenderer) WriteReadme(readme string) error {
	if readme == "" {
		return nil
	}
	return renderer.writeSection(sectionReadme, readme, readmeSeparator)
}

// WriteStructure writes the fenced file/folder listing.
func (renderer *RepositoryRenderer) WriteStructure(listing string) error {
	return renderer.writeSection(sectionStructure,
		structureHeading,
		fenceOpen,
		listing,
		structureTrailer,
		fenceClose,
		structureTrailer,
	)
}

// WriteFile writes one file section. The path is written as given.
func (renderer *RepositoryRenderer) WriteFile(path string, content string) error {
	return renderer.writeSection(sectionFile,
		fmt.Sprintf(fileHeadingFormat, path),
		fenceOpen,
		content,
		structureTrailer,
		fenceClose,
	)
}

// WriteUndecodableFile writes a file section whose body is the binary marker.
func (renderer *RepositoryRenderer) WriteUndecodableFile(path string) error {
	return renderer.WriteFile(path, UndecodableMarker(path))
}

// Flush writes buffered data to the destination.
func (renderer *RepositoryRenderer) Flush() error {
	if flushError := renderer.writer.Flush(); flushError != nil {
		return fmt.Errorf(errorFlushFormat, flushError)
	}
	return nil
}

// BytesWritten reports how many bytes were handed to the renderer.
func (renderer *RepositoryRenderer) BytesWritten() int64 {
	return renderer.written
}

func (renderer *RepositoryRenderer) writeSection(section string, parts ...string) error {
	for _, part := range parts {
		count, writeError := renderer.writer.WriteString(part)
		renderer.written += int64(count)
		if writeError != nil {
			return fmt.Errorf(errorWriteSectionFormat, section, writeError)
		}
	}
	return nil
}

// UndecodableMarker returns the placeholder written for an undecodable file.
func UndecodableMarker(path string) string {
	return fmt.Sprintf(UndecodableFileFormat, path)
}
