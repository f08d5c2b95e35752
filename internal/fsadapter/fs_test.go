package fsadapter

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeAll(t *testing.T, fs FileCreator, name, content string) {
	t.Helper()
	w, err := fs.Create(name)
	require.NoError(t, err)
	_, err = io.WriteString(w, content)
	require.NoError(t, err)
	require.NoError(t, w.Close())
}

func TestFilesystem_Create(t *testing.T) {
	dir := t.TempDir()
	fs := NewFilesystem(dir)

	writeAll(t, fs, filepath.Join("out", "chart.html"), "first")
	got, err := os.ReadFile(filepath.Join(dir, "out", "chart.html"))
	require.NoError(t, err)
	assert.Equal(t, "first", string(got))

	writeAll(t, fs, filepath.Join("out", "chart.html"), "second")
	got, err = os.ReadFile(filepath.Join(dir, "out", "chart.html"))
	require.NoError(t, err)
	assert.Equal(t, "second", string(got))

	entries, err := os.ReadDir(filepath.Join(dir, "out"))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temporary files must not be left behind")
}

func TestFilesystem_Create_notVisibleUntilClose(t *testing.T) {
	dir := t.TempDir()
	w, err := NewFilesystem(dir).Create("x.html")
	require.NoError(t, err)
	_, err = io.WriteString(w, "data")
	require.NoError(t, err)
	assert.NoFileExists(t, filepath.Join(dir, "x.html"))
	require.NoError(t, w.Close())
	assert.FileExists(t, filepath.Join(dir, "x.html"))
}

func Test_mkdir(t *testing.T) {
	dir := t.TempDir()
	assert.Error(t, mkdir(""))
	assert.NoError(t, mkdir(dir))
	assert.NoError(t, mkdir(filepath.Join(dir, "a", "b")))
	assert.DirExists(t, filepath.Join(dir, "a", "b"))
}
