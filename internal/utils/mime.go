package utils

import (
	"path/filepath"
	"strings"
)

// UnknownMimeType is returned when the file name carries no recognized extension.
const UnknownMimeType = ""

const (
	textMimeCategory = "text/"
	extensionDot     = "."
)

// compressionSuffixes are stripped before the type lookup, so "notes.txt.gz"
// is typed as text/plain. The lookup is case-sensitive, ".Z" differs from ".z".
var compressionSuffixes = map[string]struct{}{
	".gz":  {},
	".Z":   {},
	".bz2": {},
	".xz":  {},
	".br":  {},
}

// suffixAliases expand abbreviated archive suffixes before any other lookup.
var suffixAliases = map[string]string{
	".svgz": ".svg.gz",
	".tgz":  ".tar.gz",
	".taz":  ".tar.gz",
	".tz":   ".tar.gz",
	".tbz2": ".tar.bz2",
	".txz":  ".tar.xz",
}

// mimeTypesByExtension is the fixed extension table. Source code, markup and
// plain-text configuration formats are typed under text/ so they are included
// in the document; media, archives, executables and office documents are not.
var mimeTypesByExtension = map[string]string{
	// plain text and markup
	".txt":        "text/plain",
	".text":       "text/plain",
	".log":        "text/plain",
	".conf":       "text/plain",
	".cfg":        "text/plain",
	".md":         "text/markdown",
	".markdown":   "text/markdown",
	".rst":        "text/x-rst",
	".adoc":       "text/asciidoc",
	".tex":        "text/x-tex",
	".html":       "text/html",
	".htm":        "text/html",
	".xhtml":      "text/html",
	".css":        "text/css",
	".scss":       "text/x-scss",
	".sass":       "text/x-sass",
	".less":       "text/x-less",
	".xml":        "text/xml",
	".xsl":        "text/xml",
	".csv":        "text/csv",
	".tsv":        "text/tab-separated-values",
	".ics":        "text/calendar",
	".vcf":        "text/vcard",
	".diff":       "text/x-diff",
	".patch":      "text/x-diff",
	".json":       "text/x-json",
	".jsonl":      "text/x-json",
	".yaml":       "text/yaml",
	".yml":        "text/yaml",
	".toml":       "text/x-toml",
	".ini":        "text/x-ini",
	".properties": "text/x-java-properties",
	".env":        "text/plain",
	// source code
	".go":      "text/x-go",
	".py":      "text/x-python",
	".pyi":     "text/x-python",
	".js":      "text/javascript",
	".mjs":     "text/javascript",
	".cjs":     "text/javascript",
	".jsx":     "text/jsx",
	".ts":      "text/x-typescript",
	".tsx":     "text/x-typescript",
	".vue":     "text/x-vue",
	".svelte":  "text/x-svelte",
	".java":    "text/x-java",
	".kt":      "text/x-kotlin",
	".kts":     "text/x-kotlin",
	".scala":   "text/x-scala",
	".groovy":  "text/x-groovy",
	".gradle":  "text/x-groovy",
	".c":       "text/x-c",
	".h":       "text/x-c",
	".cc":      "text/x-c++",
	".cpp":     "text/x-c++",
	".cxx":     "text/x-c++",
	".hpp":     "text/x-c++",
	".hh":      "text/x-c++",
	".cs":      "text/x-csharp",
	".fs":      "text/x-fsharp",
	".m":       "text/x-objcsrc",
	".swift":   "text/x-swift",
	".rs":      "text/x-rust",
	".rb":      "text/x-ruby",
	".php":     "text/x-php",
	".pl":      "text/x-perl",
	".pm":      "text/x-perl",
	".lua":     "text/x-lua",
	".r":       "text/x-r",
	".jl":      "text/x-julia",
	".dart":    "text/x-dart",
	".ex":      "text/x-elixir",
	".exs":     "text/x-elixir",
	".erl":     "text/x-erlang",
	".hs":      "text/x-haskell",
	".clj":     "text/x-clojure",
	".elm":     "text/x-elm",
	".zig":     "text/x-zig",
	".nim":     "text/x-nim",
	".sh":      "text/x-sh",
	".bash":    "text/x-sh",
	".zsh":     "text/x-sh",
	".fish":    "text/x-sh",
	".ps1":     "text/x-powershell",
	".bat":     "text/x-msdos-batch",
	".cmd":     "text/x-msdos-batch",
	".sql":     "text/x-sql",
	".proto":   "text/x-protobuf",
	".graphql": "text/x-graphql",
	".gql":     "text/x-graphql",
	".tf":      "text/x-terraform",
	".hcl":     "text/x-hcl",
	".asm":     "text/x-asm",
	".s":       "text/x-asm",
	// images
	".png":  "image/png",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".gif":  "image/gif",
	".bmp":  "image/bmp",
	".ico":  "image/vnd.microsoft.icon",
	".tif":  "image/tiff",
	".tiff": "image/tiff",
	".webp": "image/webp",
	".svg":  "image/svg+xml",
	".heic": "image/heic",
	".avif": "image/avif",
	".psd":  "image/vnd.adobe.photoshop",
	// audio
	".mp3":  "audio/mpeg",
	".wav":  "audio/x-wav",
	".ogg":  "audio/ogg",
	".flac": "audio/flac",
	".aac":  "audio/aac",
	".m4a":  "audio/mp4",
	".mid":  "audio/midi",
	".midi": "audio/midi",
	// video
	".mp4":  "video/mp4",
	".m4v":  "video/mp4",
	".mov":  "video/quicktime",
	".avi":  "video/x-msvideo",
	".mkv":  "video/x-matroska",
	".webm": "video/webm",
	".wmv":  "video/x-ms-wmv",
	".mpeg": "video/mpeg",
	".mpg":  "video/mpeg",
	// fonts
	".ttf":   "font/ttf",
	".otf":   "font/otf",
	".woff":  "font/woff",
	".woff2": "font/woff2",
	// archives and packages
	".zip": "application/zip",
	".tar": "application/x-tar",
	".7z":  "application/x-7z-compressed",
	".rar": "application/vnd.rar",
	".jar": "application/java-archive",
	".war": "application/java-archive",
	".whl": "application/zip",
	".deb": "application/vnd.debian.binary-package",
	".rpm": "application/x-rpm",
	".dmg": "application/x-apple-diskimage",
	".iso": "application/x-iso9660-image",
	".apk": "application/vnd.android.package-archive",
	// executables and compiled artifacts
	".exe":   "application/vnd.microsoft.portable-executable",
	".dll":   "application/vnd.microsoft.portable-executable",
	".so":    "application/x-sharedlib",
	".dylib": "application/x-mach-binary",
	".o":     "application/x-object",
	".a":     "application/x-archive",
	".class": "application/java-vm",
	".pyc":   "application/x-python-code",
	".pyo":   "application/x-python-code",
	".wasm":  "application/wasm",
	// documents and data stores
	".pdf":     "application/pdf",
	".doc":     "application/msword",
	".docx":    "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	".xls":     "application/vnd.ms-excel",
	".xlsx":    "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
	".ppt":     "application/vnd.ms-powerpoint",
	".pptx":    "application/vnd.openxmlformats-officedocument.presentationml.presentation",
	".odt":     "application/vnd.oasis.opendocument.text",
	".ods":     "application/vnd.oasis.opendocument.spreadsheet",
	".epub":    "application/epub+zip",
	".sqlite":  "application/vnd.sqlite3",
	".db":      "application/vnd.sqlite3",
	".parquet": "application/vnd.apache.parquet",
}

// GuessMimeType returns the MIME type implied by the file name of path, or
// UnknownMimeType when the extension is not in the table. The file itself is
// never opened.
func GuessMimeType(path string) string {
	base, extension := splitExtension(filepath.ToSlash(path))
	for {
		alias, isAlias := suffixAliases[strings.ToLower(extension)]
		if !isAlias {
			break
		}
		base, extension = splitExtension(base + alias)
	}
	if _, isCompression := compressionSuffixes[extension]; isCompression {
		_, extension = splitExtension(base)
	}
	if mimeType, found := mimeTypesByExtension[extension]; found {
		return mimeType
	}
	if mimeType, found := mimeTypesByExtension[strings.ToLower(extension)]; found {
		return mimeType
	}
	return UnknownMimeType
}

// IsTextMimeType reports whether mimeType is unknown or belongs to the text category.
func IsTextMimeType(mimeType string) bool {
	return mimeType == UnknownMimeType || strings.HasPrefix(mimeType, textMimeCategory)
}

// IsProbablyText reports whether the file at path should be treated as text
// judging by its name alone.
func IsProbablyText(path string) bool {
	return IsTextMimeType(GuessMimeType(path))
}

// splitExtension splits a slash-separated path into the part before the last
// dot of its final element and the extension itself. Leading dots of the final
// element do not start an extension, so ".bashrc" has none.
func splitExtension(path string) (string, string) {
	separatorIndex := strings.LastIndex(path, "/")
	dotIndex := strings.LastIndex(path, extensionDot)
	if dotIndex <= separatorIndex {
		return path, ""
	}
	for nameIndex := separatorIndex + 1; nameIndex < dotIndex; nameIndex++ {
		if path[nameIndex] != extensionDot[0] {
			return path[:dotIndex], path[dotIndex:]
		}
	}
	return path, ""
}
