package snap

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"go.uber.org/zap"
)

// treeStats counts what the tree rendering visited.
type treeStats struct {
	dirs  int
	files int
}

// Tree renders the configured folders as a connector-style directory tree,
// honoring the ignore filter and the configured maximum depth. It returns
// ErrNoContent when no entries survive.
func (e *Engine) Tree(ctx context.Context) (string, error) {
	var builder strings.Builder
	var stats treeStats

	for _, folder := range e.cfg.Folders {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		info, err := os.Stat(folder)
		if err != nil || !info.IsDir() {
			e.logger.Warn("folder not found for tree, skipping",
				zap.String("folder", folder),
				zap.Error(err))
			continue
		}
		builder.WriteString(fmt.Sprintf("Folder: %s\n", e.displayPath(folder)))
		if err := e.renderTree(ctx, folder, "", 1, &builder, &stats); err != nil {
			return "", err
		}
		builder.WriteString("\n")
	}

	if stats.dirs == 0 && stats.files == 0 {
		return "", ErrNoContent
	}

	builder.WriteString(fmt.Sprintf("Structure Summary:\n- Directories: %d\n- Files: %d\n",
		stats.dirs, stats.files))
	return builder.String(), nil
}

// renderTree appends the subtree of directory to builder. Entries are
// ordered directories first, then files, case-insensitively, so output is
// stable across runs. Ignored entries are omitted; unreadable directories
// are warned about and skipped.
func (e *Engine) renderTree(ctx context.Context, directory, prefix string, depth int, builder *strings.Builder, stats *treeStats) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if e.cfg.TreeDepth > 0 && depth > e.cfg.TreeDepth {
		return nil
	}

	entries, err := os.ReadDir(directory)
	if err != nil {
		e.logger.Warn("failed to read directory for tree",
			zap.String("directory", directory),
			zap.Error(err))
		return nil
	}

	kept := entries[:0]
	for _, entry := range entries {
		if !e.filter.Excluded(filepath.Join(directory, entry.Name())) {
			kept = append(kept, entry)
		}
	}

	sort.Slice(kept, func(i, j int) bool {
		if kept[i].IsDir() != kept[j].IsDir() {
			return kept[i].IsDir()
		}
		return strings.ToLower(kept[i].Name()) < strings.ToLower(kept[j].Name())
	})

	for i, entry := range kept {
		connector := "├── "
		extension := "│   "
		if i == len(kept)-1 {
			connector = "└── "
			extension = "    "
		}

		if entry.IsDir() {
			stats.dirs++
			builder.WriteString(fmt.Sprintf("%s%s%s/\n", prefix, connector, entry.Name()))
			if err := e.renderTree(ctx, filepath.Join(directory, entry.Name()), prefix+extension, depth+1, builder, stats); err != nil {
				return err
			}
		} else {
			stats.files++
			builder.WriteString(fmt.Sprintf("%s%s%s\n", prefix, connector, entry.Name()))
		}
	}
	return nil
}
