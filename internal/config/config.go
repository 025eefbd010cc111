// Package config loads ignore files and application configuration.
package config

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/tyemirov/repomd/internal/utils"
)

const (
	commentPrefix = "#"

	errorReadIgnoreFileFormat    = "reading %s: %w"
	errorInvalidEncodingFormat   = "%s line %d is not valid UTF-8"
	warningCloseIgnoreFileFormat = "Warning: failed to close %s: %v\n"
)

// LoadIgnoreFilePatterns reads an ignore file and returns its patterns in file order.
// Surrounding whitespace is trimmed; empty lines and lines starting with "#" are dropped.
// A missing file yields no patterns and no error.
//
// #nosec G304
func LoadIgnoreFilePatterns(ignoreFilePath string) ([]string, error) {
	fileHandle, openFileError := os.Open(ignoreFilePath)
	if openFileError != nil {
		if os.IsNotExist(openFileError) {
			return nil, nil
		}
		return nil, fmt.Errorf(errorReadIgnoreFileFormat, ignoreFilePath, openFileError)
	}
	defer func() {
		closeError := fileHandle.Close()
		if closeError != nil {
			fmt.Fprintf(os.Stderr, warningCloseIgnoreFileFormat, ignoreFilePath, closeError)
		}
	}()

	var ignorePatterns []string
	lineNumber := 0
	scanner := bufio.NewScanner(fileHandle)
	for scanner.Scan() {
		lineNumber++
		rawLine := scanner.Bytes()
		if !utf8.Valid(rawLine) {
			return nil, fmt.Errorf(errorInvalidEncodingFormat, ignoreFilePath, lineNumber)
		}
		trimmedLine := strings.TrimSpace(string(rawLine))
		if trimmedLine == "" || strings.HasPrefix(trimmedLine, commentPrefix) {
			continue
		}
		ignorePatterns = append(ignorePatterns, trimmedLine)
	}
	if scanError := scanner.Err(); scanError != nil {
		return nil, fmt.Errorf(errorReadIgnoreFileFormat, ignoreFilePath, scanError)
	}
	return ignorePatterns, nil
}

// LoadRootIgnorePatterns reads the .gitignore file located directly under rootDirectoryPath.
// Ignore files in nested directories are not consulted.
func LoadRootIgnorePatterns(rootDirectoryPath string) ([]string, error) {
	return LoadIgnoreFilePatterns(filepath.Join(rootDirectoryPath, utils.GitIgnoreFileName))
}
