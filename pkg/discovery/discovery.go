// Package discovery enumerates the source files a barrel re-exports.
package discovery

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"go.uber.org/zap"

	"autobarrel/pkg/errors"
	"autobarrel/pkg/ignore"
)

// Options selects which files under a root are barrel candidates.
type Options struct {
	IncludePatterns   []string // Globs relative to root; a file must match one.
	ExcludePatterns   []string // Globs relative to root; a match drops the file.
	Recursive         bool     // Descend into subdirectories.
	MaxDepth          int      // Max path segments below root when recursive; 0 = unlimited.
	AllowHidden       bool     // Include names starting with '.'.
	RespectIgnoreFile bool     // Also drop paths matched by IgnoreFileName at root.
	IgnoreFileName    string   // Defaults to .gitignore.
}

// CandidateFile is one file to re-export.
type CandidateFile struct {
	AbsolutePath string
	RelativePath string // Relative to the barrel's folder, '/'-separated.
}

// ExtensionPatterns collapses an extension list into include globs:
// `**/*.{ts,tsx}` when recursive, `*.{ts,tsx}` otherwise.
func ExtensionPatterns(extensions []string, recursive bool) []string {
	exts := make([]string, 0, len(extensions))
	for _, ext := range extensions {
		ext = strings.TrimPrefix(strings.TrimSpace(ext), ".")
		if ext != "" {
			exts = append(exts, ext)
		}
	}
	if len(exts) == 0 {
		return nil
	}

	prefix := "*."
	if recursive {
		prefix = "**/*."
	}
	if len(exts) == 1 {
		return []string{prefix + exts[0]}
	}
	return []string{prefix + "{" + strings.Join(exts, ",") + "}"}
}

// Validate checks that the options can drive a walk.
func (o Options) Validate() error {
	if len(o.IncludePatterns) == 0 {
		return errors.New("at least one include pattern is required")
	}
	for _, p := range o.IncludePatterns {
		if !doublestar.ValidatePattern(p) {
			return errors.Newf("invalid include pattern %q", p)
		}
	}
	for _, p := range o.ExcludePatterns {
		if !doublestar.ValidatePattern(p) {
			return errors.Newf("invalid exclude pattern %q", p)
		}
	}
	if o.MaxDepth < 0 {
		return errors.Newf("max depth must be >= 0, got %d", o.MaxDepth)
	}
	return nil
}

// Find walks root and returns the matching regular files sorted by
// absolute path. On any pattern or I/O failure it returns an empty
// slice and an error marked with errors.ErrDiscovery.
func Find(root string, opts Options, logger *zap.Logger) ([]CandidateFile, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	if err := opts.Validate(); err != nil {
		return []CandidateFile{}, errors.Mark(err, errors.ErrDiscovery)
	}

	absRoot, err := filepath.Abs(root)
	if err != nil {
		return []CandidateFile{}, errors.Mark(errors.Wrapf(err, "failed to resolve %s", root), errors.ErrDiscovery)
	}

	var rules ignore.Matcher
	if opts.RespectIgnoreFile {
		name := opts.IgnoreFileName
		if name == "" {
			name = ignore.DefaultFileName
		}
		gi, err := ignore.ReadIgnoreRules(filepath.Join(absRoot, name), logger)
		if err != nil {
			return []CandidateFile{}, errors.Mark(err, errors.ErrDiscovery)
		}
		if gi != nil {
			rules = gi
		}
	}

	logger.Debug("Starting file discovery",
		zap.String("root", absRoot),
		zap.Strings("include", opts.IncludePatterns),
		zap.Strings("exclude", opts.ExcludePatterns),
		zap.Bool("recursive", opts.Recursive))

	var files []CandidateFile
	err = filepath.WalkDir(absRoot, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if path == absRoot {
			return nil
		}

		relPath, err := filepath.Rel(absRoot, path)
		if err != nil {
			return err
		}
		relPath = filepath.ToSlash(relPath)
		depth := strings.Count(relPath, "/") + 1

		if d.IsDir() {
			if skipDir(relPath, d.Name(), depth, opts, rules) {
				logger.Debug("Skipping directory", zap.String("directory", relPath))
				return filepath.SkipDir
			}
			return nil
		}

		if !isRegular(path, d) {
			return nil
		}
		if !opts.AllowHidden && strings.HasPrefix(d.Name(), ".") {
			return nil
		}
		if !matchesAny(opts.IncludePatterns, relPath) {
			return nil
		}
		if matchesAny(opts.ExcludePatterns, relPath) {
			logger.Debug("File matches exclude pattern", zap.String("file", relPath))
			return nil
		}
		if rules != nil && rules.MatchesPath(relPath, false) {
			logger.Debug("File matches ignore rule", zap.String("file", relPath))
			return nil
		}

		files = append(files, CandidateFile{AbsolutePath: path, RelativePath: relPath})
		return nil
	})
	if err != nil {
		logger.Warn("File discovery failed", zap.String("root", absRoot), zap.Error(err))
		return []CandidateFile{}, errors.Mark(errors.Wrapf(err, "failed to walk %s", absRoot), errors.ErrDiscovery)
	}

	sort.Slice(files, func(i, j int) bool {
		return files[i].AbsolutePath < files[j].AbsolutePath
	})

	logger.Debug("Completed file discovery", zap.Int("files", len(files)))
	return files, nil
}

// HasAnyFile reports whether root contains at least one regular file,
// regardless of patterns.
func HasAnyFile(root string) (bool, error) {
	found := false
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && isRegular(path, d) {
			found = true
			return fs.SkipAll
		}
		return nil
	})
	if err != nil {
		return false, errors.Mark(errors.Wrapf(err, "failed to list %s", root), errors.ErrDiscovery)
	}
	return found, nil
}

func skipDir(relPath, name string, depth int, opts Options, rules ignore.Matcher) bool {
	if !opts.Recursive {
		return true
	}
	if opts.MaxDepth > 0 && depth >= opts.MaxDepth {
		return true
	}
	if !opts.AllowHidden && strings.HasPrefix(name, ".") {
		return true
	}
	if matchesAny(opts.ExcludePatterns, relPath) {
		return true
	}
	return rules != nil && rules.MatchesPath(relPath, true)
}

func matchesAny(patterns []string, relPath string) bool {
	for _, p := range patterns {
		if ok, _ := doublestar.Match(p, relPath); ok {
			return true
		}
	}
	return false
}

// isRegular follows symlinks so that a link to a regular file counts.
func isRegular(path string, d fs.DirEntry) bool {
	if d.Type().IsRegular() {
		return true
	}
	if d.Type()&fs.ModeSymlink == 0 {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
