// Package commands gathers the inputs of a repository document and renders it.
package commands

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/tyemirov/repomd/internal/types"
	"github.com/tyemirov/repomd/internal/utils"
)

const (
	// errorReadRootFormat is used when the walk root cannot be listed.
	errorReadRootFormat = "reading directory %s: %w"

	logSkipDirectory = "skipping unreadable directory"
	logSkipSymlink   = "not descending into symlinked directory"
)

// DirectoryVisitor receives each directory of a top-down walk. Returning an
// error stops the walk.
type DirectoryVisitor func(listing types.DirectoryListing) error

// WalkTopDown visits root and every directory below it, parents before
// children. Each directory is reported with its subdirectory and file names in
// os.ReadDir order, then its subdirectories are walked in that same order.
// Symlinked directories are reported as directories but not descended into.
// A subdirectory that cannot be read is skipped with a warning; an unreadable
// root is an error.
func WalkTopDown(root string, visit DirectoryVisitor, logger *zap.Logger) error {
	logger = utils.LoggerOrNop(logger)
	rootEntries, readError := os.ReadDir(root)
	if readError != nil {
		return fmt.Errorf(errorReadRootFormat, root, readError)
	}
	return walkDirectory(root, rootEntries, visit, logger)
}

func walkDirectory(directoryPath string, entries []os.DirEntry, visit DirectoryVisitor, logger *zap.Logger) error {
	listing := types.DirectoryListing{Path: directoryPath}
	var descendInto []string
	for _, entry := range entries {
		entryPath := utils.JoinPath(directoryPath, entry.Name())
		isDirectory, isSymlink := classifyEntry(entryPath, entry)
		if !isDirectory {
			listing.FileNames = append(listing.FileNames, entry.Name())
			continue
		}
		listing.DirectoryNames = append(listing.DirectoryNames, entry.Name())
		if isSymlink {
			logger.Debug(logSkipSymlink, zap.String("path", entryPath))
			continue
		}
		descendInto = append(descendInto, entryPath)
	}

	if visitError := visit(listing); visitError != nil {
		return visitError
	}

	for _, subdirectoryPath := range descendInto {
		subdirectoryEntries, readError := os.ReadDir(subdirectoryPath)
		if readError != nil {
			logger.Warn(logSkipDirectory, zap.String("path", subdirectoryPath), zap.Error(readError))
			continue
		}
		if walkError := walkDirectory(subdirectoryPath, subdirectoryEntries, visit, logger); walkError != nil {
			return walkError
		}
	}
	return nil
}

// classifyEntry reports whether entry resolves to a directory and whether it
// is a symbolic link. Links that cannot be resolved are files.
func classifyEntry(entryPath string, entry os.DirEntry) (bool, bool) {
	if entry.Type()&os.ModeSymlink == 0 {
		return entry.IsDir(), false
	}
	targetInfo, statError := os.Stat(entryPath)
	if statError != nil {
		return false, true
	}
	return targetInfo.IsDir(), true
}
