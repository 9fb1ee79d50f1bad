package news

import (
	"context"
	"sort"
	"sync"
)

// Store persists articles. Listing methods return newest first.
type Store interface {
	List(ctx context.Context, limit, offset int) ([]Article, error)
	Get(ctx context.Context, id string) (Article, error)
	Popular(ctx context.Context, limit int) ([]Article, error)
	ByCategory(ctx context.Context, category string, limit int) ([]Article, error)
	// Insert adds a new article, failing with ErrConflict when the ID is taken.
	Insert(ctx context.Context, a Article) error
	Put(ctx context.Context, a Article) error
	Delete(ctx context.Context, id string) error
	IncrementViews(ctx context.Context, id string) (int, error)
}

// MemoryStore is a Store kept in process memory.
type MemoryStore struct {
	mu       sync.RWMutex
	articles map[string]Article
}

var _ Store = (*MemoryStore)(nil)

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{articles: make(map[string]Article)}
}

func (s *MemoryStore) sorted(less func(a, b Article) bool, keep func(Article) bool) []Article {
	s.mu.RLock()
	out := make([]Article, 0, len(s.articles))
	for _, a := range s.articles {
		if keep == nil || keep(a) {
			out = append(out, a)
		}
	}
	s.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool { return less(out[i], out[j]) })
	return out
}

func newest(a, b Article) bool {
	if !a.PublishedAt.Equal(b.PublishedAt) {
		return a.PublishedAt.After(b.PublishedAt)
	}
	return a.ID < b.ID
}

func window(in []Article, limit, offset int) []Article {
	if offset >= len(in) {
		return []Article{}
	}
	in = in[offset:]
	if limit > 0 && limit < len(in) {
		in = in[:limit]
	}
	return in
}

func (s *MemoryStore) List(_ context.Context, limit, offset int) ([]Article, error) {
	return window(s.sorted(newest, nil), limit, offset), nil
}

func (s *MemoryStore) Get(_ context.Context, id string) (Article, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	a, ok := s.articles[id]
	if !ok {
		return Article{}, ErrNotFound
	}
	return a, nil
}

func (s *MemoryStore) Popular(_ context.Context, limit int) ([]Article, error) {
	byViews := func(a, b Article) bool {
		if a.Views != b.Views {
			return a.Views > b.Views
		}
		return newest(a, b)
	}
	return window(s.sorted(byViews, nil), limit, 0), nil
}

func (s *MemoryStore) ByCategory(_ context.Context, category string, limit int) ([]Article, error) {
	keep := func(a Article) bool { return a.Category == category }
	return window(s.sorted(newest, keep), limit, 0), nil
}

func (s *MemoryStore) Insert(_ context.Context, a Article) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.articles[a.ID]; ok {
		return ErrConflict
	}
	s.articles[a.ID] = a
	return nil
}

func (s *MemoryStore) Put(_ context.Context, a Article) error {
	s.mu.Lock()
	s.articles[a.ID] = a
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.articles[id]; !ok {
		return ErrNotFound
	}
	delete(s.articles, id)
	return nil
}

func (s *MemoryStore) IncrementViews(_ context.Context, id string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.articles[id]
	if !ok {
		return 0, ErrNotFound
	}
	a.Views++
	s.articles[id] = a
	return a.Views, nil
}
