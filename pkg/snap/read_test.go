package snap

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func TestReadTextFile(t *testing.T) {
	dir := t.TempDir()

	t.Run("text content", func(t *testing.T) {
		path := writeFile(t, dir, "a.txt", []byte("hello\nworld\n"))
		out := readTextFile(path)
		assert.Equal(t, skipNone, out.reason)
		assert.Equal(t, "hello\nworld\n", out.content)
	})

	t.Run("empty file", func(t *testing.T) {
		path := writeFile(t, dir, "empty.txt", nil)
		out := readTextFile(path)
		assert.Equal(t, skipEmpty, out.reason)
	})

	t.Run("nul bytes mean binary", func(t *testing.T) {
		path := writeFile(t, dir, "bin.dat", []byte{'E', 'L', 'F', 0, 1, 2})
		out := readTextFile(path)
		assert.Equal(t, skipBinary, out.reason)
	})

	t.Run("invalid utf8 means binary", func(t *testing.T) {
		path := writeFile(t, dir, "latin1.txt", []byte{0xff, 0xfe, 'a', 'b'})
		out := readTextFile(path)
		assert.Equal(t, skipBinary, out.reason)
	})

	t.Run("missing file is unreadable", func(t *testing.T) {
		out := readTextFile(filepath.Join(dir, "missing.txt"))
		assert.Equal(t, skipUnreadable, out.reason)
		assert.Error(t, out.err)
	})

	t.Run("multibyte rune split at sniff boundary still text", func(t *testing.T) {
		content := strings.Repeat("a", sniffLen-1) + "é" + "tail"
		path := writeFile(t, dir, "boundary.txt", []byte(content))
		out := readTextFile(path)
		assert.Equal(t, skipNone, out.reason)
		assert.Equal(t, content, out.content)
	})
}
