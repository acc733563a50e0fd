package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// FileStore is a file-based document store for local use.
// Documents are stored as JSON files named by ID.
type FileStore struct {
	mu      sync.RWMutex
	baseDir string
	now     func() time.Time
}

// NewFileStore creates a new file-based document store.
// If baseDir is empty, defaults to ~/.config/treeview/trees/
func NewFileStore(baseDir string) (*FileStore, error) {
	if baseDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("get home dir: %w", err)
		}
		baseDir = filepath.Join(home, ".config", "treeview", "trees")
	}
	if err := os.MkdirAll(baseDir, 0o700); err != nil {
		return nil, fmt.Errorf("create store dir: %w", err)
	}
	return &FileStore{baseDir: baseDir, now: time.Now}, nil
}

func (s *FileStore) docPath(id string) string {
	return filepath.Join(s.baseDir, id+".json")
}

func (s *FileStore) Create(ctx context.Context, doc *Document) (*Document, error) {
	stored, err := prepare(doc, s.now())
	if err != nil {
		return nil, err
	}

	data, err := json.MarshalIndent(stored, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal document: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := os.WriteFile(s.docPath(stored.ID), data, 0o600); err != nil {
		return nil, fmt.Errorf("write document file: %w", err)
	}
	return stored, nil
}

func (s *FileStore) Get(ctx context.Context, id string) (*Document, error) {
	if !validID(id) {
		return nil, nil
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.read(s.docPath(id))
}

func (s *FileStore) read(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read document file: %w", err)
	}

	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse document %s: %w", filepath.Base(path), err)
	}
	return &doc, nil
}

func (s *FileStore) List(ctx context.Context) ([]*Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		return nil, fmt.Errorf("read store dir: %w", err)
	}

	docs := make([]*Document, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".json" {
			continue
		}
		doc, err := s.read(filepath.Join(s.baseDir, entry.Name()))
		if err != nil {
			return nil, err
		}
		if doc != nil {
			docs = append(docs, doc)
		}
	}

	sortNewestFirst(docs)
	return docs, nil
}

func (s *FileStore) Delete(ctx context.Context, id string) error {
	if !validID(id) {
		return notFound(id)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	err := os.Remove(s.docPath(id))
	if os.IsNotExist(err) {
		return notFound(id)
	}
	if err != nil {
		return fmt.Errorf("remove document file: %w", err)
	}
	return nil
}

func (s *FileStore) Close() error { return nil }

// Path returns the base directory for document files.
func (s *FileStore) Path() string {
	return s.baseDir
}

var _ Store = (*FileStore)(nil)
