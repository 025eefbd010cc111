package commands

import (
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/tyemirov/repomd/internal/types"
	"github.com/tyemirov/repomd/internal/utils"
)

const (
	directorySuffix = "/"
	lineSeparator   = "\n"
)

// GetStructureListing renders the indented file/folder listing of root. Each
// directory is written as its name with a trailing "/", indented four spaces
// per nesting level, followed by its files one level deeper. Ignore patterns
// do not apply here.
func GetStructureListing(root string, logger *zap.Logger) (string, error) {
	rootName := filepath.Base(filepath.Clean(root))
	var lines []string
	walkError := WalkTopDown(root, func(listing types.DirectoryListing) error {
		depth := utils.DirectoryDepth(listing.Path, root)
		directoryName := rootName
		if depth > 0 {
			directoryName = filepath.Base(listing.Path)
		}
		lines = append(lines, utils.Indent(depth)+directoryName+directorySuffix)
		fileIndent := utils.Indent(depth + 1)
		for _, fileName := range listing.FileNames {
			lines = append(lines, fileIndent+fileName)
		}
		return nil
	}, logger)
	if walkError != nil {
		return "", walkError
	}
	return strings.Join(lines, lineSeparator), nil
}
