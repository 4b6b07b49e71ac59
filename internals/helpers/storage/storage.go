// file: internals/helpers/storage/storage.go
package storage

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

var ErrBlobNotFound = errors.New("blob not found")

// BlobStorage menyimpan artefak file di luar record resource yang queryable.
// Handle yang dikembalikan Put adalah string opaque yang disimpan di record.
type BlobStorage interface {
	Put(content []byte, ext string) (handle string, err error)
	Get(handle string) ([]byte, error)
	Delete(handle string) error
}

// LocalStorage menyimpan blob sebagai file di satu direktori upload.
type LocalStorage struct {
	Dir string
}

func NewLocalStorage(dir string) (*LocalStorage, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &LocalStorage{Dir: dir}, nil
}

func (s *LocalStorage) Put(content []byte, ext string) (string, error) {
	name, err := randomName(ext)
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(filepath.Join(s.Dir, name), content, 0o644); err != nil {
		return "", fmt.Errorf("write blob: %w", err)
	}
	return name, nil
}

func (s *LocalStorage) Get(handle string) ([]byte, error) {
	b, err := os.ReadFile(filepath.Join(s.Dir, sanitize(handle)))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrBlobNotFound
		}
		return nil, err
	}
	return b, nil
}

func (s *LocalStorage) Delete(handle string) error {
	err := os.Remove(filepath.Join(s.Dir, sanitize(handle)))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// randomName: 12 hex chars + ekstensi asli, cukup untuk nama blob lokal.
func randomName(ext string) (string, error) {
	buf := make([]byte, 6)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf) + strings.ToLower(ext), nil
}

// sanitize mencegah path traversal lewat handle dari DB.
func sanitize(handle string) string {
	return filepath.Base(handle)
}
