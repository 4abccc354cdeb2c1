// Package ledger implements the installed package ledger as a JSON file.
package ledger

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"go.trai.ch/ppac/internal/core/domain"
	"go.trai.ch/ppac/internal/core/ports"
	"go.trai.ch/zerr"
)

// Store implements ports.Ledger using a flat JSON object of name to version.
// The whole file is rewritten after every mutation.
type Store struct {
	path    string
	mu      sync.RWMutex
	entries map[string]string
}

// Open loads the ledger at path. A missing or empty file yields an empty ledger.
func Open(path string) (*Store, error) {
	s := &Store{
		path:    filepath.Clean(path),
		entries: make(map[string]string),
	}
	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Store) load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	//nolint:gosec // Path is cleaned and provided by trusted caller
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return zerr.With(zerr.Wrap(err, "failed to read installed package ledger"), "path", s.path)
	}

	if len(bytes.TrimSpace(data)) == 0 {
		return nil
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var raw map[string]any
	if err := dec.Decode(&raw); err != nil {
		return zerr.With(zerr.Wrap(domain.ErrLedgerCorrupt, err.Error()), "path", s.path)
	}

	for name, v := range raw {
		switch version := v.(type) {
		case string:
			s.entries[name] = version
		case json.Number:
			s.entries[name] = version.String()
		default:
			err := zerr.Wrap(domain.ErrLedgerCorrupt, fmt.Sprintf("unexpected version type %T", v))
			err = zerr.With(err, "package", name)
			return zerr.With(err, "path", s.path)
		}
	}

	return nil
}

// save writes the ledger through a temporary file so a failed write never truncates it.
// The caller must hold the write lock.
func (s *Store) save() error {
	data, err := json.MarshalIndent(s.entries, "", "    ")
	if err != nil {
		return zerr.Wrap(err, "failed to marshal installed package ledger")
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, domain.DirPerm); err != nil {
		return zerr.With(zerr.Wrap(domain.ErrLedgerWriteFailed, err.Error()), "path", s.path)
	}

	if err := atomicWriteFile(s.path, data); err != nil {
		return zerr.With(zerr.Wrap(domain.ErrLedgerWriteFailed, err.Error()), "path", s.path)
	}

	return nil
}

func atomicWriteFile(path string, data []byte) error {
	tmpFile, err := os.CreateTemp(filepath.Dir(path), ".ledger-*.json")
	if err != nil {
		return err
	}
	tmpName := tmpFile.Name()

	defer func() {
		if _, statErr := os.Stat(tmpName); statErr == nil {
			_ = os.Remove(tmpName)
		}
	}()

	if _, err := tmpFile.Write(data); err != nil {
		_ = tmpFile.Close()
		return err
	}

	if err := tmpFile.Close(); err != nil {
		return err
	}

	if err := os.Chmod(tmpName, domain.FilePerm); err != nil {
		return err
	}

	return os.Rename(tmpName, path)
}

// Version returns the installed version of a package.
func (s *Store) Version(name string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	version, ok := s.entries[name]
	return version, ok
}

// Record stores the installed version of a package and persists the ledger.
func (s *Store) Record(name, version string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	previous, existed := s.entries[name]
	s.entries[name] = version

	if err := s.save(); err != nil {
		if existed {
			s.entries[name] = previous
		} else {
			delete(s.entries, name)
		}
		return zerr.With(err, "package", name)
	}
	return nil
}

// Remove deletes a package from the ledger and persists it.
func (s *Store) Remove(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	previous, existed := s.entries[name]
	if !existed {
		return nil
	}
	delete(s.entries, name)

	if err := s.save(); err != nil {
		s.entries[name] = previous
		return zerr.With(err, "package", name)
	}
	return nil
}

// Names returns a sorted snapshot of the installed package names.
func (s *Store) Names() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	names := make([]string, 0, len(s.entries))
	for name := range s.entries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Opener implements ports.LedgerStore.
type Opener struct{}

// NewOpener creates a new Opener.
func NewOpener() *Opener {
	return &Opener{}
}

// Open loads the ledger at path.
func (o *Opener) Open(path string) (ports.Ledger, error) {
	store, err := Open(path)
	if err != nil {
		return nil, err
	}
	return store, nil
}
