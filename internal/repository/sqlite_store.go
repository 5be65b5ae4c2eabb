package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"go.uber.org/zap"
)

// SQLiteStore keeps documents as JSON text in the documents table. The
// schema must already be migrated.
type SQLiteStore struct {
	db  *sql.DB
	log *zap.Logger
}

func NewSQLiteStore(db *sql.DB, log *zap.Logger) *SQLiteStore {
	return &SQLiteStore{db: db, log: log}
}

func (s *SQLiteStore) Load(ctx context.Context, key string, dst any) (bool, error) {
	const op = "repository.SQLiteStore.Load"

	var body string
	err := s.db.QueryRowContext(ctx, `SELECT body FROM documents WHERE key = ?`, key).Scan(&body)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, &StorageError{Op: op, Key: key, Err: err}
	}
	if err := decodeDocument(op, key, []byte(body), dst); err != nil {
		return false, err
	}
	return true, nil
}

func (s *SQLiteStore) Save(ctx context.Context, key string, src any) error {
	const op = "repository.SQLiteStore.Save"

	body, err := json.Marshal(src)
	if err != nil {
		return &StorageError{Op: op, Key: key, Err: err}
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO documents (key, body, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET body = excluded.body, updated_at = excluded.updated_at`,
		key, string(body), time.Now().UnixMilli())
	if err != nil {
		return &StorageError{Op: op, Key: key, Err: err}
	}

	s.log.Debug("document saved", zap.String("key", key))
	return nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
