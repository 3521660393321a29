// Package jsonstore persists named collections as JSON array files, one file
// per collection under a single data directory. Every operation reads or
// replaces the whole file; there is no partial update.
//
// A per-collection mutex serializes read-modify-write cycles within the
// process, and writes go through a temp file + rename so a crash mid-write
// cannot leave a truncated collection. Writers in other processes are not
// coordinated with.
package jsonstore

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// Store owns a data directory of collection files.
type Store struct {
	dir string

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// New creates a Store rooted at dir. The directory is created lazily on
// first access.
func New(dir string) *Store {
	return &Store{dir: dir, locks: make(map[string]*sync.Mutex)}
}

// Dir returns the storage root.
func (s *Store) Dir() string { return s.dir }

func (s *Store) lock(name string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.locks[name]
	if !ok {
		l = &sync.Mutex{}
		s.locks[name] = l
	}
	return l
}

func (s *Store) path(name string) string {
	return filepath.Join(s.dir, name+".json")
}

func (s *Store) ensureDir() error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("create data directory %s: %w", s.dir, err)
	}
	return nil
}

func read[T any](s *Store, name string) ([]T, error) {
	if err := s.ensureDir(); err != nil {
		return nil, err
	}
	buf, err := os.ReadFile(s.path(name))
	if err != nil {
		if os.IsNotExist(err) {
			return []T{}, nil
		}
		return nil, fmt.Errorf("read collection %s: %w", name, err)
	}
	if len(buf) == 0 {
		return []T{}, nil
	}
	var records []T
	if err := json.Unmarshal(buf, &records); err != nil {
		return nil, fmt.Errorf("parse collection %s: %w", name, err)
	}
	return records, nil
}

func write[T any](s *Store, name string, records []T) error {
	if err := s.ensureDir(); err != nil {
		return err
	}
	if records == nil {
		records = []T{}
	}
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("encode collection %s: %w", name, err)
	}
	tmp, err := os.CreateTemp(s.dir, name+"-*.tmp")
	if err != nil {
		return fmt.Errorf("write collection %s: %w", name, err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("write collection %s: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("write collection %s: %w", name, err)
	}
	if err := os.Rename(tmp.Name(), s.path(name)); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("replace collection %s: %w", name, err)
	}
	return nil
}

// Read loads the named collection. A missing or empty file yields an empty
// slice, never an error.
func Read[T any](s *Store, name string) ([]T, error) {
	l := s.lock(name)
	l.Lock()
	defer l.Unlock()
	return read[T](s, name)
}

// Write replaces the named collection with records.
func Write[T any](s *Store, name string, records []T) error {
	l := s.lock(name)
	l.Lock()
	defer l.Unlock()
	return write(s, name, records)
}

// Update runs fn on the current contents of the collection and writes back
// whatever it returns, all under the collection lock. If fn returns an
// error the file is left untouched.
func Update[T any](s *Store, name string, fn func([]T) ([]T, error)) error {
	l := s.lock(name)
	l.Lock()
	defer l.Unlock()
	records, err := read[T](s, name)
	if err != nil {
		return err
	}
	updated, err := fn(records)
	if err != nil {
		return err
	}
	return write(s, name, updated)
}
