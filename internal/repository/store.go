package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
)

// ErrStorage matches every persistence failure. Callers treat it as fatal.
var ErrStorage = errors.New("storage failure")

type StorageError struct {
	Op  string
	Key string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("%s: document %q: %v", e.Op, e.Key, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

func (e *StorageError) Is(target error) bool {
	return target == ErrStorage
}

// DocumentStore reads and writes whole JSON documents by key. Load reports
// found=false for a missing document; a present but unreadable document is a
// StorageError.
type DocumentStore interface {
	Load(ctx context.Context, key string, dst any) (found bool, err error)
	Save(ctx context.Context, key string, src any) error
	Close() error
}

var errNullDocument = errors.New("document is null")

// decodeDocument unmarshals a stored body into dst. A null body counts as
// corrupt, since it would decode into a zero record.
func decodeDocument(op, key string, body []byte, dst any) error {
	if bytes.Equal(bytes.TrimSpace(body), []byte("null")) {
		return &StorageError{Op: op, Key: key, Err: errNullDocument}
	}
	if err := json.Unmarshal(body, dst); err != nil {
		return &StorageError{Op: op, Key: key, Err: err}
	}
	return nil
}

const (
	KeyHighscore  = "highscore"
	KeyBank       = "bank"
	KeyBankEvents = "bank_events"
	KeyResults    = "results"
	playersPrefix = "players/"
)

const anonymous = "Anonymous"

var unsafeNameChars = regexp.MustCompile(`[^A-Za-z0-9_-]`)

// SanitizeName maps a player name to a filename-safe key component.
func SanitizeName(name string) string {
	safe := unsafeNameChars.ReplaceAllString(name, "_")
	if safe == "" {
		return anonymous
	}
	return safe
}

func PlayerKey(name string) string {
	return playersPrefix + SanitizeName(name)
}

func loadOrDefault[T any](ctx context.Context, store DocumentStore, key string, def T) (T, error) {
	var doc T
	found, err := store.Load(ctx, key, &doc)
	if err != nil {
		return doc, err
	}
	if found {
		return doc, nil
	}
	if err := store.Save(ctx, key, def); err != nil {
		return def, err
	}
	return def, nil
}

// appendDocs does a read-merge-append-write of a list document.
func appendDocs[T any](ctx context.Context, store DocumentStore, key string, items []T) error {
	if len(items) == 0 {
		return nil
	}
	var existing []T
	if _, err := store.Load(ctx, key, &existing); err != nil {
		return err
	}
	return store.Save(ctx, key, append(existing, items...))
}
