// Package ignore decides whether a file is excluded from aggregation by
// matching its base-relative path against shell-glob patterns.
package ignore

import (
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
	"go.uber.org/zap"
)

// Filter matches paths against a set of glob patterns. Patterns follow
// shell-glob semantics: '*' matches within a path segment, '**' across
// segments, '?' a single character, '[...]' character classes.
type Filter struct {
	baseDir  string
	patterns []string
	logger   *zap.Logger
}

// NewFilter builds a Filter matching paths relative to baseDir.
func NewFilter(baseDir string, patterns []string, logger *zap.Logger) *Filter {
	if logger == nil {
		logger = zap.NewNop()
	}
	normalized := make([]string, 0, len(patterns))
	for _, p := range patterns {
		normalized = append(normalized, filepath.ToSlash(p))
	}
	return &Filter{
		baseDir:  baseDir,
		patterns: normalized,
		logger:   logger,
	}
}

// Excluded reports whether path matches any ignore pattern. The path is
// expressed relative to the filter's base directory with forward slashes
// before matching. The filter fails open: when the relative path cannot be
// computed, or a pattern is malformed, the file is included rather than
// silently dropped.
func (f *Filter) Excluded(path string) bool {
	relPath, err := filepath.Rel(f.baseDir, path)
	if err != nil {
		f.logger.Debug("cannot relativize path for ignore matching, including file",
			zap.String("path", path),
			zap.String("baseDir", f.baseDir),
			zap.Error(err))
		return false
	}
	relPath = filepath.ToSlash(relPath)

	for _, pattern := range f.patterns {
		matched, err := doublestar.Match(pattern, relPath)
		if err != nil {
			f.logger.Debug("malformed ignore pattern skipped",
				zap.String("pattern", pattern),
				zap.Error(err))
			continue
		}
		if matched {
			f.logger.Debug("path matches ignore pattern",
				zap.String("path", relPath),
				zap.String("pattern", pattern))
			return true
		}
	}
	return false
}
