// Package types defines the data structures shared by the repomd packages.
package types

// DirectoryListing is one directory visited by a top-down walk: its path as
// spelled from the walk root, then the names of its subdirectories and files in
// listing order.
type DirectoryListing struct {
	Path           string
	DirectoryNames []string
	FileNames      []string
}

// RepositorySummary describes a rendered repository document. Tokens and
// TokenModel stay zero unless the document was counted.
type RepositorySummary struct {
	FilesWritten     int
	FilesIgnored     int
	FilesUndecodable int
	BytesWritten     int64
	Document         string
	Tokens           int
	TokenModel       string
}
