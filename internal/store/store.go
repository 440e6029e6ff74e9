// Package store persists named JSON documents to the local filesystem.
package store

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// ErrUnknownDocument is returned for document names outside the fixed set.
var ErrUnknownDocument = errors.New("unknown document")

// document describes where and in what shape one named document is stored.
// An empty envelope means the payload is written unwrapped; the frontend
// depends on these exact stored shapes, including the unwrapped ones.
type document struct {
	file     string
	envelope string
}

var documents = map[string]document{
	"shows":            {file: "shows.json", envelope: "shows"},
	"schedule-updates": {file: "schedule_updates.json"},
	"titles":           {file: "titles.json"},
	"songs":            {file: "songs.json", envelope: "songs"},
	"playlists":        {file: "playlists.json", envelope: "playlists"},
}

// Store overwrites named JSON documents wholesale under a data directory.
// Writes to the same document are serialized by a per-document mutex; the
// write itself is a plain overwrite, so a crash mid-write can corrupt the
// document. That is an accepted limitation, not a guarantee.
type Store struct {
	dataDir string
	locks   map[string]*sync.Mutex
}

// New creates a Store rooted at dataDir, creating the directory if needed
// and verifying it is writable.
func New(dataDir string) (*Store, error) {
	if strings.TrimSpace(dataDir) == "" {
		return nil, fmt.Errorf("data directory is required")
	}

	info, err := os.Stat(dataDir)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("stat data directory: %w", err)
		}
		if mkErr := os.MkdirAll(dataDir, 0o750); mkErr != nil {
			return nil, fmt.Errorf("create data directory: %w", mkErr)
		}
	} else if !info.IsDir() {
		return nil, fmt.Errorf("data directory path is not a directory")
	}

	testFile := filepath.Join(dataDir, ".writable_test")
	if err := os.WriteFile(testFile, []byte("test"), 0o600); err != nil {
		return nil, fmt.Errorf("data directory is not writable: %w", err)
	}
	if err := os.Remove(testFile); err != nil {
		return nil, fmt.Errorf("clean up probe file: %w", err)
	}

	locks := make(map[string]*sync.Mutex, len(documents))
	for name := range documents {
		locks[name] = &sync.Mutex{}
	}
	return &Store{dataDir: dataDir, locks: locks}, nil
}

// Save overwrites the document for name with payload. Known names only;
// there is no merge and no versioning, and documents are never deleted.
func (s *Store) Save(name string, payload json.RawMessage) error {
	doc, ok := documents[name]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownDocument, name)
	}

	data, err := doc.render(payload)
	if err != nil {
		return fmt.Errorf("render document %s: %w", name, err)
	}

	mu := s.locks[name]
	mu.Lock()
	defer mu.Unlock()
	if err := os.WriteFile(filepath.Join(s.dataDir, doc.file), data, 0o600); err != nil {
		return fmt.Errorf("write document %s: %w", name, err)
	}
	return nil
}

// Read returns the stored bytes for name.
func (s *Store) Read(name string) (json.RawMessage, error) {
	doc, ok := documents[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownDocument, name)
	}

	mu := s.locks[name]
	mu.Lock()
	defer mu.Unlock()
	data, err := os.ReadFile(filepath.Join(s.dataDir, doc.file))
	if err != nil {
		return nil, fmt.Errorf("read document %s: %w", name, err)
	}
	return data, nil
}

func (d document) render(payload json.RawMessage) ([]byte, error) {
	if d.envelope != "" {
		return json.MarshalIndent(map[string]json.RawMessage{d.envelope: payload}, "", "  ")
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, payload, "", "  "); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
