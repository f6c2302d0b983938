// Package ignore loads ignore-rules files (gitignore syntax) and matches
// slash-separated relative paths against them.
package ignore

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/go-git/go-git/v5/plumbing/format/gitignore"
	"go.uber.org/zap"

	"autobarrel/pkg/errors"
)

// DefaultFileName is the ignore file read when none is configured.
const DefaultFileName = ".gitignore"

// Matcher reports whether a path relative to the rules' root is ignored.
type Matcher interface {
	MatchesPath(path string, isDir bool) bool
}

// IgnorePattern is one compiled rule plus where it came from.
type IgnorePattern struct {
	Pattern gitignore.Pattern // Compiled gitignore pattern.
	Negate  bool              // Rule starts with '!'.
	Line    string            // Original rule text.
	LineNo  int               // Line number in the source (1-based).
}

// GitIgnore is an ordered set of ignore rules. Later rules override
// earlier ones, as in git.
type GitIgnore struct {
	Patterns []*IgnorePattern
	logger   *zap.Logger
}

// NewGitIgnore returns an empty rule set.
func NewGitIgnore(logger *zap.Logger) *GitIgnore {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GitIgnore{
		Patterns: []*IgnorePattern{},
		logger:   logger,
	}
}

// ReadIgnoreRules loads the rules file at path. A missing file yields
// (nil, nil) so callers can skip ignore filtering entirely.
func ReadIgnoreRules(path string, logger *zap.Logger) (*GitIgnore, error) {
	gi := NewGitIgnore(logger)

	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			gi.logger.Debug("Ignore file does not exist", zap.String("filePath", path))
			return nil, nil
		}
		return nil, errors.Wrapf(err, "failed to read ignore file %s", path)
	}

	lines := strings.Split(strings.ReplaceAll(string(content), "\r\n", "\n"), "\n")
	gi.CompileIgnoreLines(lines...)
	gi.logger.Debug("Compiled ignore patterns",
		zap.String("filePath", path),
		zap.Int("patternCount", len(gi.Patterns)))
	return gi, nil
}

// CompileIgnoreLines parses rule lines and appends them to the set.
// Blank lines and comments are skipped.
func (gi *GitIgnore) CompileIgnoreLines(lines ...string) {
	for i, line := range lines {
		trimmed := strings.TrimRight(line, " \t")
		if strings.TrimSpace(trimmed) == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}

		gi.Patterns = append(gi.Patterns, &IgnorePattern{
			Pattern: gitignore.ParsePattern(trimmed, nil),
			Negate:  strings.HasPrefix(trimmed, "!"),
			Line:    line,
			LineNo:  i + 1,
		})
	}
}

// MatchesPath reports whether path is ignored.
func (gi *GitIgnore) MatchesPath(path string, isDir bool) bool {
	matches, _ := gi.MatchesPathWithPattern(path, isDir)
	return matches
}

// MatchesPathWithPattern reports whether path is ignored and returns the
// rule that decided it, if any.
func (gi *GitIgnore) MatchesPathWithPattern(path string, isDir bool) (bool, *IgnorePattern) {
	segments := splitPath(path)
	if len(segments) == 0 {
		return false, nil
	}

	for i := len(gi.Patterns) - 1; i >= 0; i-- {
		p := gi.Patterns[i]
		switch p.Pattern.Match(segments, isDir) {
		case gitignore.Exclude:
			return true, p
		case gitignore.Include:
			return false, p
		}
	}

	return false, nil
}

func splitPath(path string) []string {
	path = strings.Trim(filepath.ToSlash(path), "/")
	if path == "" || path == "." {
		return nil
	}
	return strings.Split(path, "/")
}
