package filestorage

import (
	"bytes"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fileHeader(t *testing.T, name string, content []byte) *multipart.FileHeader {
	t.Helper()
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	part, err := w.CreateFormFile("file", name)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	form, err := multipart.NewReader(&body, w.Boundary()).ReadForm(1 << 20)
	require.NoError(t, err)
	t.Cleanup(func() { _ = form.RemoveAll() })
	return form.File["file"][0]
}

func TestLocalStorage_SaveAndDelete(t *testing.T) {
	dir := t.TempDir()
	storage, err := NewLocalStorage(dir, "http://localhost:8080/uploads")
	require.NoError(t, err)

	url, err := storage.SaveFileWithPath(fileHeader(t, "poster.png", []byte("png-bytes")), "notes/user-1")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, "http://localhost:8080/uploads/notes/user-1/"))
	assert.True(t, strings.HasSuffix(url, ".png"))

	stored := filepath.Join(dir, "notes", "user-1", filepath.Base(url))
	content, err := os.ReadFile(stored)
	require.NoError(t, err)
	assert.Equal(t, "png-bytes", string(content))

	require.NoError(t, storage.DeleteFile(url))
	_, err = os.Stat(stored)
	assert.True(t, os.IsNotExist(err))

	assert.NoError(t, storage.DeleteFile(url), "deleting twice is not an error")
}

func TestLocalStorage_RelativeURLs(t *testing.T) {
	storage, err := NewLocalStorage(t.TempDir(), "")
	require.NoError(t, err)

	url, err := storage.SaveFileWithPath(fileHeader(t, "a.jpg", []byte("x")), "")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(url, "uploads/"))
	assert.NoError(t, storage.DeleteFile(url))
}

func TestLocalStorage_RejectsEscapes(t *testing.T) {
	storage, err := NewLocalStorage(t.TempDir(), "")
	require.NoError(t, err)

	_, err = storage.SaveFileWithPath(fileHeader(t, "a.jpg", []byte("x")), "../outside")
	assert.Error(t, err)
	assert.Error(t, storage.DeleteFile("uploads/../../etc/passwd"))
	assert.Error(t, storage.DeleteFile(""))
}

func TestLocalStorage_NoFile(t *testing.T) {
	storage, err := NewLocalStorage(t.TempDir(), "")
	require.NoError(t, err)

	_, err = storage.SaveFileWithPath(nil, "notes")
	assert.ErrorIs(t, err, ErrNoFile)
	assert.ErrorIs(t, storage.DeleteFile("uploads/.."), ErrInvalidPath)
}
