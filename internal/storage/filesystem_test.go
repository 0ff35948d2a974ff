package storage_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/evergreenwebsolutions/onboarding/internal/storage"
)

func TestFilesystemPut(t *testing.T) {
	dir := t.TempDir()
	fs, err := storage.NewFilesystem(dir, "http://localhost:8080/files")
	require.NoError(t, err)

	url, err := fs.Put(context.Background(), "abc_report.pdf", strings.NewReader("content"), 7, "application/pdf")
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080/files/abc_report.pdf", url)

	data, err := os.ReadFile(filepath.Join(dir, "abc_report.pdf"))
	require.NoError(t, err)
	assert.Equal(t, "content", string(data))
}

func TestFilesystemPutEscapesKey(t *testing.T) {
	dir := t.TempDir()
	fs, err := storage.NewFilesystem(dir, "http://localhost:8080/files")
	require.NoError(t, err)

	url, err := fs.Put(context.Background(), "abc_two words.png", strings.NewReader("x"), 1, "image/png")
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080/files/abc_two%20words.png", url)
}

func TestFilesystemCreatesDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "files")
	fs, err := storage.NewFilesystem(dir, "http://localhost:8080/files")
	require.NoError(t, err)
	assert.Equal(t, dir, fs.Dir())

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}
