package repository

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"

	"go.uber.org/zap"
)

// FileStore keeps each document as an indented JSON file under dir.
type FileStore struct {
	dir string
	log *zap.Logger
}

func NewFileStore(dir string, log *zap.Logger) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, &StorageError{Op: "repository.NewFileStore", Key: dir, Err: err}
	}
	return &FileStore{dir: dir, log: log}, nil
}

func (s *FileStore) path(key string) string {
	return filepath.Join(s.dir, filepath.FromSlash(key)+".json")
}

func (s *FileStore) Load(_ context.Context, key string, dst any) (bool, error) {
	const op = "repository.FileStore.Load"

	bytes, err := os.ReadFile(s.path(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, &StorageError{Op: op, Key: key, Err: err}
	}
	if err := decodeDocument(op, key, bytes, dst); err != nil {
		return false, err
	}
	return true, nil
}

func (s *FileStore) Save(_ context.Context, key string, src any) error {
	const op = "repository.FileStore.Save"

	path := s.path(key)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return &StorageError{Op: op, Key: key, Err: err}
	}

	jsonData, err := json.MarshalIndent(src, "", "  ")
	if err != nil {
		return &StorageError{Op: op, Key: key, Err: err}
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, jsonData, 0644); err != nil {
		return &StorageError{Op: op, Key: key, Err: err}
	}
	if err := os.Rename(tmp, path); err != nil {
		return &StorageError{Op: op, Key: key, Err: err}
	}

	s.log.Debug("document saved", zap.String("key", key), zap.String("path", path))
	return nil
}

func (s *FileStore) Close() error {
	return nil
}
