// Package utils contains general helper functions used across repomd.
package utils

import (
	"os"
	"path/filepath"
	"strings"
)

// Input and output file names used across the project.
const (
	// GitIgnoreFileName is the name of the ignore file read from the scan root.
	GitIgnoreFileName = ".gitignore"
	// ReadmeFileName is the name of the README placed at the top of the document.
	ReadmeFileName = "README.md"
	// DefaultOutputFileName is the document written into the working directory.
	DefaultOutputFileName = "repository.md"
	// ConfigFileName is the local configuration file looked up in the working directory.
	ConfigFileName = ".repomd.yaml"
	// GlobalConfigDirectoryName is the directory under the home directory holding the global configuration.
	GlobalConfigDirectoryName = ".repomd"
	// GlobalConfigFileName is the configuration file inside GlobalConfigDirectoryName.
	GlobalConfigFileName = "config.yaml"
	// EnvironmentFileName is the dotenv file loaded from the working directory.
	EnvironmentFileName = ".env"
)

const indentUnit = "    "

// RelativePathOrSelf calculates the relative path from root to fullPath.
// Returns the cleaned fullPath if relative calculation fails.
// Returns "." if fullPath and root resolve to the same directory.
func RelativePathOrSelf(fullPath, root string) string {
	absolutePath, pathErr := filepath.Abs(fullPath)
	if pathErr != nil {
		return filepath.Clean(fullPath)
	}
	absoluteRoot, rootErr := filepath.Abs(root)
	if rootErr != nil {
		return filepath.Clean(fullPath)
	}
	if absolutePath == absoluteRoot {
		return "."
	}

	relativePath, relErr := filepath.Rel(absoluteRoot, absolutePath)
	if relErr != nil {
		return filepath.Clean(fullPath)
	}
	return relativePath
}

// JoinPath appends name to directory with exactly one separator and without
// cleaning directory, so the caller's spelling of the root survives in every
// path derived from it.
func JoinPath(directory, name string) string {
	if directory == "" {
		return name
	}
	if strings.HasSuffix(directory, string(os.PathSeparator)) || strings.HasSuffix(directory, "/") {
		return directory + name
	}
	return directory + string(os.PathSeparator) + name
}

// DirectoryDepth returns how many levels directoryPath sits below root.
// The root itself has depth zero.
func DirectoryDepth(directoryPath, root string) int {
	relativePath := RelativePathOrSelf(directoryPath, root)
	if relativePath == "." {
		return 0
	}
	return strings.Count(filepath.ToSlash(relativePath), "/") + 1
}

// Indent returns the indentation used for the given nesting level.
func Indent(level int) string {
	if level <= 0 {
		return ""
	}
	return strings.Repeat(indentUnit, level)
}
