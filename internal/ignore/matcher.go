// Package ignore decides whether a path is excluded by shell-glob ignore patterns.
//
// Patterns are plain shell globs matched against the path relative to the scan
// root. Gitignore syntax such as "!" negation, trailing "/" directory markers
// or "**" is not interpreted: "*" matches any run of characters, including the
// path separator, "?" matches one character and "[...]" matches a set.
package ignore

import (
	"fmt"

	"github.com/gobwas/glob"
	"go.uber.org/zap"

	"github.com/tyemirov/repomd/internal/utils"
)

const errorCompilePatternFormat = "compiling ignore pattern %q: %w"

// compiledPattern holds a glob pattern and its original text for reporting.
type compiledPattern struct {
	pattern  glob.Glob
	original string
}

// Matcher tests paths below a root directory against ignore patterns.
type Matcher struct {
	root     string
	patterns []compiledPattern
	logger   *zap.Logger
}

// NewMatcher compiles patterns once for reuse. Pattern order is kept, and the
// first matching pattern decides.
func NewMatcher(root string, patterns []string, logger *zap.Logger) (*Matcher, error) {
	matcher := &Matcher{
		root:     root,
		patterns: make([]compiledPattern, 0, len(patterns)),
		logger:   utils.LoggerOrNop(logger),
	}
	for _, pattern := range patterns {
		compiled, compileError := compileShellPattern(pattern)
		if compileError != nil {
			return nil, fmt.Errorf(errorCompilePatternFormat, pattern, compileError)
		}
		matcher.patterns = append(matcher.patterns, compiledPattern{pattern: compiled, original: pattern})
	}
	return matcher, nil
}

// Len returns the number of patterns held by the matcher.
func (matcher *Matcher) Len() int {
	return len(matcher.patterns)
}

// Matches reports whether path, relative to the matcher root, matches any pattern.
func (matcher *Matcher) Matches(path string) bool {
	_, matched := matcher.MatchingPattern(path)
	return matched
}

// MatchingPattern returns the first pattern matching path relative to the matcher root.
func (matcher *Matcher) MatchingPattern(path string) (string, bool) {
	if len(matcher.patterns) == 0 {
		return "", false
	}
	relativePath := utils.RelativePathOrSelf(path, matcher.root)
	for _, candidate := range matcher.patterns {
		if candidate.pattern.Match(relativePath) {
			matcher.logger.Debug("path matches ignore pattern",
				zap.String("path", path),
				zap.String("relativePath", relativePath),
				zap.String("pattern", candidate.original))
			return candidate.original, true
		}
	}
	return "", false
}

// matchPattern reports whether name matches a single shell-glob pattern.
func matchPattern(pattern, name string) (bool, error) {
	compiled, compileError := compileShellPattern(pattern)
	if compileError != nil {
		return false, compileError
	}
	return compiled.Match(name), nil
}
