// Package jsonfile implements the repository.Collection port on top of a
// single JSON file per collection.
//
// WHY A FLAT JSON FILE?
// The whole data set is two small collections mutated by one local process at
// a time. A database would add an external moving part for no benefit; a JSON
// array in a file is human-inspectable, diff-able, and trivially portable.
//
// FORWARD COMPATIBILITY:
// encoding/json ignores unknown fields on decode, so records written by a
// newer revision (with extra fields) still load here. That tolerance is part
// of the storage contract, not an accident — don't switch the decoder to
// DisallowUnknownFields.
//
// ATOMICITY:
// Save never writes into the live file. It writes a temp file in the same
// directory and renames it over the target. On POSIX systems rename is
// atomic, so a reader sees either the old collection or the new one — a crash
// mid-save leaves the previous file intact.
package jsonfile

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sakif/train-booking/internal/apperror"
	"github.com/sakif/train-booking/internal/repository"
)

// compile-time check that *Store implements repository.Collection
var _ repository.Collection[struct{}] = (*Store[struct{}])(nil)

// Store is a file-backed collection of records of type T.
//
// Store holds no cache: Load and Save go to disk every time. The in-memory
// copy of a collection is owned by the service that loaded it, not by the
// store.
type Store[T any] struct {
	path string
}

// New creates a Store for the collection file at path.
// The file is not touched — Load will fail if it doesn't exist.
// Use Init to bootstrap an empty collection on first run.
func New[T any](path string) *Store[T] {
	return &Store[T]{path: path}
}

// Path returns the collection file path. Useful in log output.
func (s *Store[T]) Path() string {
	return s.path
}

// Init writes an empty collection file if none exists yet.
// An existing file, empty or not, is left alone.
func (s *Store[T]) Init() error {
	if _, err := os.Stat(s.path); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return apperror.Storage("checking", s.path, err)
	}
	return s.Save([]T{})
}

// Load reads and decodes the full collection.
// Returns apperror.ErrStorage if the file is unreadable or not a JSON array
// of the expected record shape. Extra fields on stored records are ignored.
func (s *Store[T]) Load() ([]T, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, apperror.Storage("reading", s.path, err)
	}

	var records []T
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, apperror.Storage("parsing", s.path, err)
	}
	return records, nil
}

// Save replaces the stored collection with records.
//
// The temp file is created in the target's directory, not os.TempDir() —
// rename is only atomic within one filesystem.
func (s *Store[T]) Save(records []T) error {
	if records == nil {
		// Marshal nil as [] so an emptied collection stays a valid array.
		records = []T{}
	}

	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return apperror.Storage("encoding", s.path, err)
	}

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return apperror.Storage("staging", s.path, err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return apperror.Storage("writing", s.path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return apperror.Storage("writing", s.path, err)
	}

	if err := os.Rename(tmpPath, s.path); err != nil {
		os.Remove(tmpPath)
		return apperror.Storage("replacing", s.path, fmt.Errorf("rename: %w", err))
	}
	return nil
}
