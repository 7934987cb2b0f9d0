package store

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path"
)

// FileStore lagrer hver nøkkel som en egen JSON-fil i en katalog.
type FileStore struct {
	Dir string
}

func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("kunne ikke opprette katalog %s: %w", dir, err)
	}
	return &FileStore{Dir: dir}, nil
}

func (f *FileStore) path(key string) string {
	return path.Join(f.Dir, key+".json")
}

func (f *FileStore) Get(key string) ([]byte, error) {
	data, err := os.ReadFile(f.path(key))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, &PersistenceError{Key: key, Op: "lesing", Err: err}
	}
	return data, nil
}

func (f *FileStore) Set(key string, value []byte) error {
	if err := os.WriteFile(f.path(key), value, 0644); err != nil {
		return &PersistenceError{Key: key, Op: "skriving", Err: err}
	}
	slog.Debug("Lagret nøkkel", "key", key, "bytes", len(value))
	return nil
}

func (f *FileStore) Delete(key string) error {
	err := os.Remove(f.path(key))
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return &PersistenceError{Key: key, Op: "sletting", Err: err}
	}
	return nil
}
