package store

import (
	"context"
	"sync"
	"time"
)

// MemoryStore keeps documents in a map.
type MemoryStore struct {
	mu   sync.RWMutex
	docs map[string]*Document
	now  func() time.Time
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{docs: make(map[string]*Document), now: time.Now}
}

func (s *MemoryStore) Create(ctx context.Context, doc *Document) (*Document, error) {
	stored, err := prepare(doc, s.now())
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.docs[stored.ID] = stored
	s.mu.Unlock()

	out := *stored
	return &out, nil
}

func (s *MemoryStore) Get(ctx context.Context, id string) (*Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	doc, ok := s.docs[id]
	if !ok {
		return nil, nil
	}
	out := *doc
	return &out, nil
}

func (s *MemoryStore) List(ctx context.Context) ([]*Document, error) {
	s.mu.RLock()
	docs := make([]*Document, 0, len(s.docs))
	for _, doc := range s.docs {
		out := *doc
		docs = append(docs, &out)
	}
	s.mu.RUnlock()

	sortNewestFirst(docs)
	return docs, nil
}

func (s *MemoryStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.docs[id]; !ok {
		return notFound(id)
	}
	delete(s.docs, id)
	return nil
}

func (s *MemoryStore) Close() error { return nil }

var _ Store = (*MemoryStore)(nil)
