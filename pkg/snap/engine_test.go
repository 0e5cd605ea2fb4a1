package snap

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"codesnap/pkg/config"
)

// newObservedEngine builds an engine whose warnings are captured for
// assertions.
func newObservedEngine(cfg *config.Config) (*Engine, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.WarnLevel)
	return New(cfg, zap.New(core)), logs
}

func header(rel string) string {
	sep := strings.Repeat("=", 50)
	return fmt.Sprintf("%s\nFile: %s\n%s", sep, rel, sep)
}

func TestRunDiscoversNestedFilesWithRelativeLabels(t *testing.T) {
	base := t.TempDir()
	writeFile(t, base, "src/a.txt", []byte("alpha"))
	writeFile(t, base, "src/nested/b.txt", []byte("beta"))

	engine, _ := newObservedEngine(&config.Config{
		Folders: []string{filepath.Join(base, "src")},
		BaseDir: base,
	})

	res, err := engine.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, res.Processed)
	assert.Contains(t, res.Document, header("src/a.txt"))
	assert.Contains(t, res.Document, header("src/nested/b.txt"))
	assert.NotContains(t, res.Document, base)
	assert.Contains(t, res.Document, "alpha")
	assert.Contains(t, res.Document, "beta")
}

func TestRunPreservesFilesListOrder(t *testing.T) {
	base := t.TempDir()
	writeFile(t, base, "a.txt", []byte("first alphabetically"))
	writeFile(t, base, "b.txt", []byte("second alphabetically"))

	engine, _ := newObservedEngine(&config.Config{
		Files:   []string{filepath.Join(base, "b.txt"), filepath.Join(base, "a.txt")},
		BaseDir: base,
	})

	res, err := engine.Run(context.Background())
	require.NoError(t, err)

	bIdx := strings.Index(res.Document, header("b.txt"))
	aIdx := strings.Index(res.Document, header("a.txt"))
	require.GreaterOrEqual(t, bIdx, 0)
	require.GreaterOrEqual(t, aIdx, 0)
	assert.Less(t, bIdx, aIdx, "b.txt block must precede a.txt block")
}

func TestRunFoldersPrecedeFiles(t *testing.T) {
	base := t.TempDir()
	writeFile(t, base, "dir/inner.txt", []byte("from folder"))
	writeFile(t, base, "standalone.txt", []byte("from files"))

	engine, _ := newObservedEngine(&config.Config{
		Folders: []string{filepath.Join(base, "dir")},
		Files:   []string{filepath.Join(base, "standalone.txt")},
		BaseDir: base,
	})

	res, err := engine.Run(context.Background())
	require.NoError(t, err)

	assert.Less(t,
		strings.Index(res.Document, header("dir/inner.txt")),
		strings.Index(res.Document, header("standalone.txt")))
}

func TestRunAppliesIgnorePatternsToBothSources(t *testing.T) {
	base := t.TempDir()
	writeFile(t, base, "src/keep.go", []byte("package main"))
	writeFile(t, base, "src/skip.test.js", []byte("test"))
	writeFile(t, base, "direct.test.js", []byte("test"))

	engine, logs := newObservedEngine(&config.Config{
		Folders: []string{filepath.Join(base, "src")},
		Files:   []string{filepath.Join(base, "direct.test.js")},
		Ignore:  []string{"**/*.test.js", "*.test.js"},
		BaseDir: base,
	})

	res, err := engine.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, res.Processed)
	assert.Contains(t, res.Document, header("src/keep.go"))
	assert.NotContains(t, res.Document, "skip.test.js")
	assert.NotContains(t, res.Document, "direct.test.js")
	// Explicitly ignored files entries are skipped without a warning.
	assert.Zero(t, logs.Len())
}

func TestRunFailsWithNoContentAndWarnsPerSkippedFile(t *testing.T) {
	base := t.TempDir()
	writeFile(t, base, "junk/empty.txt", nil)
	writeFile(t, base, "junk/blob.bin", []byte{0, 1, 2, 3})

	engine, logs := newObservedEngine(&config.Config{
		Folders: []string{filepath.Join(base, "junk")},
		BaseDir: base,
	})

	_, err := engine.Run(context.Background())
	require.ErrorIs(t, err, ErrNoContent)

	var skips []string
	for _, entry := range logs.All() {
		if strings.HasPrefix(entry.Message, "skipping") {
			skips = append(skips, entry.Message)
		}
	}
	assert.Len(t, skips, 2, "one warning per skipped file")
	assert.Equal(t, 1, logs.FilterMessage("folder produced no content").Len())
}

func TestRunWarnsAndContinuesOnMissingPaths(t *testing.T) {
	base := t.TempDir()
	writeFile(t, base, "present.txt", []byte("here"))

	engine, logs := newObservedEngine(&config.Config{
		Folders: []string{filepath.Join(base, "ghost-folder")},
		Files: []string{
			filepath.Join(base, "ghost.txt"),
			filepath.Join(base, "present.txt"),
		},
		BaseDir: base,
	})

	res, err := engine.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, res.Processed)
	assert.Equal(t, 1, logs.FilterMessage("folder not found, skipping").Len())
	assert.Equal(t, 1, logs.FilterMessage("file not found, skipping").Len())
}

func TestRunIsIdempotent(t *testing.T) {
	base := t.TempDir()
	writeFile(t, base, "src/a.txt", []byte("alpha"))
	writeFile(t, base, "src/b.txt", []byte("beta"))
	writeFile(t, base, "extra.txt", []byte("gamma"))

	cfg := &config.Config{
		Folders: []string{filepath.Join(base, "src")},
		Files:   []string{filepath.Join(base, "extra.txt")},
		BaseDir: base,
	}

	first, err := New(cfg, zap.NewNop()).Run(context.Background())
	require.NoError(t, err)
	second, err := New(cfg, zap.NewNop()).Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, first.Document, second.Document)
	assert.Equal(t, first.Processed, second.Processed)
}

func TestRunHonorsCancellation(t *testing.T) {
	base := t.TempDir()
	writeFile(t, base, "src/a.txt", []byte("alpha"))

	engine, _ := newObservedEngine(&config.Config{
		Folders: []string{filepath.Join(base, "src")},
		BaseDir: base,
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := engine.Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRenderDocumentJoinsBlocksWithBlankLines(t *testing.T) {
	records := []FileRecord{
		{RelPath: "a.txt", Content: "one"},
		{RelPath: "b.txt", Content: "two"},
	}
	doc := renderDocument(records)
	assert.Equal(t, header("a.txt")+"\n\none\n\n"+header("b.txt")+"\n\ntwo", doc)
}
