package filestorage

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/yigit/studyhub/internal/pkg/idgen"
	"github.com/yigit/studyhub/internal/pkg/logger"
)

const uploadsPrefix = "uploads"

var (
	ErrNoFile      = errors.New("no file uploaded")
	ErrInvalidPath = errors.New("invalid file path")
)

var _ FileStorage = (*LocalStorage)(nil)

// LocalStorage keeps uploads under a directory served at /uploads.
type LocalStorage struct {
	root    string
	baseURL string
	names   idgen.Generator
}

// NewLocalStorage ensures root exists. When baseURL is empty the returned
// paths are relative ("uploads/...").
func NewLocalStorage(root, baseURL string) (*LocalStorage, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create storage directory %s: %w", root, err)
	}
	logger.Info().Str("path", root).Msg("Local file storage ready")

	return &LocalStorage{
		root:    root,
		baseURL: strings.TrimRight(baseURL, "/"),
		names:   idgen.NewULIDGenerator(),
	}, nil
}

// SaveFileWithPath writes the upload under dir with a generated name that
// keeps the original extension.
func (s *LocalStorage) SaveFileWithPath(header *multipart.FileHeader, dir string) (string, error) {
	if header == nil {
		return "", ErrNoFile
	}
	if strings.Contains(dir, "..") {
		return "", fmt.Errorf("%w: %s", ErrInvalidPath, dir)
	}
	dir = path.Clean("/" + filepath.ToSlash(dir))[1:]

	src, err := header.Open()
	if err != nil {
		return "", fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	name := strings.ToLower(s.names.NewID()) + strings.ToLower(filepath.Ext(header.Filename))
	rel := path.Join(dir, name)
	dst := filepath.Join(s.root, filepath.FromSlash(rel))

	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return "", fmt.Errorf("create upload directory: %w", err)
	}
	if err := writeFile(dst, src); err != nil {
		logger.Error().Err(err).Str("path", dst).Msg("Failed to store upload")
		return "", err
	}

	logger.Debug().Str("original", header.Filename).Str("stored", rel).Int64("size", header.Size).Msg("Upload stored")
	return s.url(rel), nil
}

func writeFile(dst string, src io.Reader) error {
	f, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("create file: %w", err)
	}
	if _, err := io.Copy(f, src); err != nil {
		f.Close()
		_ = os.Remove(dst)
		return fmt.Errorf("write file: %w", err)
	}
	return f.Close()
}

func (s *LocalStorage) url(rel string) string {
	if s.baseURL != "" {
		return s.baseURL + "/" + rel
	}
	return uploadsPrefix + "/" + rel
}

// DeleteFile removes a file previously returned by SaveFileWithPath. A file
// that is already gone is not an error.
func (s *LocalStorage) DeleteFile(fileURL string) error {
	target, err := s.resolve(fileURL)
	if err != nil {
		return err
	}

	if err := os.Remove(target); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("delete file: %w", err)
	}
	return nil
}

// resolve maps a stored URL back onto disk, refusing anything outside root.
func (s *LocalStorage) resolve(fileURL string) (string, error) {
	rel := filepath.ToSlash(fileURL)
	if s.baseURL != "" {
		rel = strings.TrimPrefix(rel, s.baseURL)
	}
	rel = strings.TrimPrefix(strings.TrimPrefix(rel, "/"), uploadsPrefix+"/")

	clean := path.Clean(rel)
	if rel == "" || clean == "." || clean == ".." || strings.HasPrefix(clean, "../") || path.IsAbs(clean) {
		return "", fmt.Errorf("%w: %s", ErrInvalidPath, fileURL)
	}
	return filepath.Join(s.root, filepath.FromSlash(clean)), nil
}
