package store

import (
	"context"
	"sync"

	"github.com/matzehuels/depscan/pkg/scan"
)

// MemoryStore keeps reports in memory.
type MemoryStore struct {
	mu   sync.RWMutex
	docs map[string]*document
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{docs: make(map[string]*document)}
}

func (s *MemoryStore) Save(_ context.Context, r *scan.Report) error {
	doc, err := toDocument(r)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.docs[doc.ID] = doc
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) Get(_ context.Context, id string) (*scan.Report, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	doc, ok := s.docs[id]
	if !ok {
		return nil, notFound(id)
	}
	return doc.report(), nil
}

func (s *MemoryStore) Latest(_ context.Context) (*scan.Report, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var latest *document
	for _, doc := range s.docs {
		if latest == nil || doc.StartedAt.After(latest.StartedAt) {
			latest = doc
		}
	}
	if latest == nil {
		return nil, notFound("")
	}
	return latest.report(), nil
}

func (s *MemoryStore) Close() error { return nil }

var _ Store = (*MemoryStore)(nil)
