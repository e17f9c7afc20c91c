package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// LocalStorage keeps files on disk under root and serves them below baseURL
type LocalStorage struct {
	root    string
	baseURL string
}

func NewLocalStorage(root, baseURL string) (*LocalStorage, error) {
	err := os.MkdirAll(root, 0755)
	if err != nil {
		return nil, fmt.Errorf("failed to create media directory: %w", err)
	}

	return &LocalStorage{
		root:    root,
		baseURL: strings.TrimSuffix(baseURL, "/"),
	}, nil
}

// fullPath resolves a relative storage path inside root. Paths that would
// escape root are rejected.
func (s *LocalStorage) fullPath(p string) (string, error) {
	clean := path.Clean("/" + p)
	if clean == "/" {
		return "", fmt.Errorf("invalid storage path %q", p)
	}
	return filepath.Join(s.root, filepath.FromSlash(clean)), nil
}

func (s *LocalStorage) Save(ctx context.Context, p string, file io.Reader) error {
	full, err := s.fullPath(p)
	if err != nil {
		return err
	}

	err = os.MkdirAll(filepath.Dir(full), 0755)
	if err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	out, err := os.Create(full)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}

	_, err = io.Copy(out, file)
	closeErr := out.Close()
	if err == nil {
		err = closeErr
	}
	if err != nil {
		_ = os.Remove(full)
		return fmt.Errorf("failed to write file: %w", err)
	}

	return ctx.Err()
}

// Delete removes the file and its directory once the directory is empty.
// A file that is already gone is not an error.
func (s *LocalStorage) Delete(ctx context.Context, p string) error {
	full, err := s.fullPath(p)
	if err != nil {
		return err
	}

	err = os.Remove(full)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to delete file: %w", err)
	}

	dir := filepath.Dir(full)
	if dir != filepath.Clean(s.root) {
		entries, err := os.ReadDir(dir)
		if err == nil && len(entries) == 0 {
			_ = os.Remove(dir)
		}
	}

	return nil
}

func (s *LocalStorage) URL(_ context.Context, p string) string {
	return s.baseURL + "/" + strings.TrimPrefix(p, "/")
}

// Handler serves stored files. Mount it with the base URL prefix stripped.
func (s *LocalStorage) Handler() http.Handler {
	return http.FileServer(noDirFS{http.Dir(s.root)})
}

// noDirFS hides directory listings
type noDirFS struct {
	fs http.FileSystem
}

func (n noDirFS) Open(name string) (http.File, error) {
	f, err := n.fs.Open(name)
	if err != nil {
		return nil, err
	}

	stat, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	if stat.IsDir() {
		_ = f.Close()
		return nil, fs.ErrNotExist
	}

	return f, nil
}
