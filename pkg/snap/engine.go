package snap

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"codesnap/pkg/config"
	"codesnap/pkg/ignore"
)

// Engine walks the configured selection and aggregates surviving files into
// one document. It holds no state between runs; per-file failures are
// logged and skipped, never retried.
type Engine struct {
	cfg    *config.Config
	filter *ignore.Filter
	logger *zap.Logger
}

// New builds an Engine for one invocation. The logger is the engine's
// diagnostic sink; nil falls back to a no-op logger.
func New(cfg *config.Config, logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{
		cfg:    cfg,
		filter: ignore.NewFilter(cfg.BaseDir, cfg.Ignore, logger),
		logger: logger,
	}
}

// Run performs the single aggregation pass: folders in list order (lexical
// traversal order within each), then files in list order. It returns
// ErrNoContent when nothing survives filtering and reading.
func (e *Engine) Run(ctx context.Context) (*Result, error) {
	var records []FileRecord

	for _, folder := range e.cfg.Folders {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		recs, err := e.collectFolder(ctx, folder)
		if err != nil {
			return nil, err
		}
		records = append(records, recs...)
	}

	for _, file := range e.cfg.Files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if rec, ok := e.collectFile(file); ok {
			records = append(records, rec)
		}
	}

	if len(records) == 0 {
		return nil, ErrNoContent
	}

	e.logger.Info("aggregated files",
		zap.Int("processed", len(records)),
		zap.Int("folders", len(e.cfg.Folders)),
		zap.Int("files", len(e.cfg.Files)))

	return &Result{
		Document:  renderDocument(records),
		Processed: len(records),
	}, nil
}

// collectFolder recursively enumerates folder and returns the records of
// every eligible file beneath it. filepath.WalkDir visits entries in
// lexical order, which keeps the output deterministic across runs. A
// missing folder is a warning, not a failure; only context cancellation
// aborts the walk.
func (e *Engine) collectFolder(ctx context.Context, folder string) ([]FileRecord, error) {
	info, err := os.Stat(folder)
	if err != nil {
		e.logger.Warn("folder not found, skipping",
			zap.String("folder", folder),
			zap.Error(err))
		return nil, nil
	}
	if !info.IsDir() {
		e.logger.Warn("configured folder is not a directory, skipping",
			zap.String("folder", folder))
		return nil, nil
	}

	var records []FileRecord
	err = filepath.WalkDir(folder, func(path string, d fs.DirEntry, err error) error {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if err != nil {
			e.logger.Warn("error accessing path during traversal",
				zap.String("path", path),
				zap.Error(err))
			return nil
		}
		if d.IsDir() || !d.Type().IsRegular() {
			return nil
		}
		if e.filter.Excluded(path) {
			e.logger.Debug("file excluded by ignore pattern", zap.String("path", path))
			return nil
		}
		if rec, ok := e.readRecord(path); ok {
			records = append(records, rec)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if len(records) == 0 {
		e.logger.Warn("folder produced no content", zap.String("folder", folder))
	}
	return records, nil
}

// collectFile handles one entry from the files list. A missing file is
// warned about; an explicitly ignored one is skipped silently, since the
// exclusion is intentional.
func (e *Engine) collectFile(file string) (FileRecord, bool) {
	if _, err := os.Stat(file); err != nil {
		e.logger.Warn("file not found, skipping",
			zap.String("file", file),
			zap.Error(err))
		return FileRecord{}, false
	}
	if e.filter.Excluded(file) {
		e.logger.Debug("file excluded by ignore pattern", zap.String("file", file))
		return FileRecord{}, false
	}
	return e.readRecord(file)
}

// readRecord reads path as text and turns it into a FileRecord. Every skip
// reason is surfaced as a warning naming the file.
func (e *Engine) readRecord(path string) (FileRecord, bool) {
	rel := e.displayPath(path)
	out := readTextFile(path)
	switch out.reason {
	case skipNone:
		return FileRecord{RelPath: rel, Content: out.content}, true
	case skipEmpty:
		e.logger.Warn("skipping empty file", zap.String("file", rel))
	case skipBinary:
		e.logger.Warn("skipping binary file", zap.String("file", rel))
	case skipUnreadable:
		e.logger.Warn("could not read file, skipping",
			zap.String("file", rel),
			zap.Error(out.err))
	}
	return FileRecord{}, false
}

// displayPath expresses path relative to the base directory with forward
// slashes. When the relative path cannot be computed the absolute path is
// used instead of dropping the record.
func (e *Engine) displayPath(path string) string {
	rel, err := filepath.Rel(e.cfg.BaseDir, path)
	if err != nil {
		return filepath.ToSlash(path)
	}
	return filepath.ToSlash(rel)
}
