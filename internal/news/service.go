package news

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"thainews/internal/cache"
	"thainews/internal/logger"
)

const (
	DefaultLimit = 20
	MaxLimit     = 100
)

// Service serves articles through the cache tiers and keeps them coherent on writes.
type Service struct {
	store Store
	cache *cache.Manager
	group singleflight.Group
	now   func() time.Time
}

func NewService(store Store, cm *cache.Manager) *Service {
	return &Service{store: store, cache: cm, now: time.Now}
}

// ClampLimit maps a requested page size onto 1..MaxLimit, defaulting non-positive values.
func ClampLimit(limit int) int {
	if limit <= 0 {
		return DefaultLimit
	}
	return min(limit, MaxLimit)
}

func (s *Service) List(ctx context.Context, limit, offset int) ([]Article, error) {
	limit, offset = ClampLimit(limit), max(offset, 0)
	return s.cachedList(ctx, s.cache.AllNews, cache.AllNewsKey(limit, offset), func(ctx context.Context) ([]Article, error) {
		return s.store.List(ctx, limit, offset)
	})
}

func (s *Service) Popular(ctx context.Context, limit int) ([]Article, error) {
	limit = ClampLimit(limit)
	return s.cachedList(ctx, s.cache.Popular, cache.PopularKey(limit), func(ctx context.Context) ([]Article, error) {
		return s.store.Popular(ctx, limit)
	})
}

func (s *Service) ByCategory(ctx context.Context, category string, limit int) ([]Article, error) {
	limit = ClampLimit(limit)
	return s.cachedList(ctx, s.cache.Category, cache.CategoryKey(category, limit), func(ctx context.Context) ([]Article, error) {
		return s.store.ByCategory(ctx, category, limit)
	})
}

func (s *Service) Get(ctx context.Context, id string) (Article, error) {
	key := cache.ArticleKey(id)
	if a, ok := cache.GetAs[Article](s.cache.Article, key); ok {
		return a, nil
	}
	v, err, _ := s.group.Do(cache.Article+"|"+key, func() (any, error) {
		// Waiters share this load, so it must outlive the first caller.
		a, err := s.store.Get(context.WithoutCancel(ctx), id)
		if err != nil {
			return nil, err
		}
		s.cache.Article.Set(key, a)
		return a, nil
	})
	if err != nil {
		return Article{}, err
	}
	return v.(Article), nil
}

func (s *Service) cachedList(ctx context.Context, tier *cache.Tier, key string, load func(context.Context) ([]Article, error)) ([]Article, error) {
	if list, ok := cache.GetAs[[]Article](tier, key); ok {
		return clone(list), nil
	}
	v, err, _ := s.group.Do(tier.Name()+"|"+key, func() (any, error) {
		list, err := load(context.WithoutCancel(ctx))
		if err != nil {
			return nil, err
		}
		tier.Set(key, list)
		return list, nil
	})
	if err != nil {
		return nil, err
	}
	return clone(v.([]Article)), nil
}

func clone(in []Article) []Article {
	out := make([]Article, len(in))
	copy(out, in)
	return out
}

// Create stores a new article and drops every listing it could appear in. A
// caller-chosen ID that is already taken fails with ErrConflict.
func (s *Service) Create(ctx context.Context, a Article) (Article, error) {
	if err := a.Validate(); err != nil {
		return Article{}, err
	}
	now := s.now().UTC()
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	a.Views = 0
	a.CreatedAt, a.UpdatedAt = now, now
	if a.PublishedAt.IsZero() {
		a.PublishedAt = now
	}
	if err := s.store.Insert(ctx, a); err != nil {
		return Article{}, err
	}
	s.invalidateListings(a.Category)
	logger.Log.Info("Article created", zap.String("id", a.ID), zap.String("category", a.Category))
	return a, nil
}

// Update replaces the editable fields of an existing article.
func (s *Service) Update(ctx context.Context, id string, a Article) (Article, error) {
	if err := a.Validate(); err != nil {
		return Article{}, err
	}
	old, err := s.store.Get(ctx, id)
	if err != nil {
		return Article{}, err
	}
	a.ID = old.ID
	a.Views = old.Views
	a.CreatedAt = old.CreatedAt
	a.UpdatedAt = s.now().UTC()
	if a.PublishedAt.IsZero() {
		a.PublishedAt = old.PublishedAt
	}
	if err := s.store.Put(ctx, a); err != nil {
		return Article{}, err
	}
	s.cache.Article.Delete(cache.ArticleKey(id))
	s.invalidateListings(old.Category)
	if a.Category != old.Category {
		s.cache.InvalidateCategory(a.Category)
	}
	return a, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	old, err := s.store.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.store.Delete(ctx, id); err != nil {
		return err
	}
	s.cache.Article.Delete(cache.ArticleKey(id))
	s.invalidateListings(old.Category)
	logger.Log.Info("Article deleted", zap.String("id", id))
	return nil
}

// RecordView counts a read. Popularity listings catch up when their TTL lapses.
func (s *Service) RecordView(ctx context.Context, id string) (int, error) {
	n, err := s.store.IncrementViews(ctx, id)
	if err != nil {
		return 0, err
	}
	s.cache.Article.Delete(cache.ArticleKey(id))
	return n, nil
}

// Import upserts a batch, keeping view counts and creation times of known
// articles, then clears every tier. Invalid articles are skipped.
func (s *Service) Import(ctx context.Context, batch []Article) (int, error) {
	now := s.now().UTC()
	stored := 0
	var errs []error
	for _, a := range batch {
		if err := a.Validate(); err != nil {
			logger.Log.Warn("Skipping invalid article", zap.String("source", a.SourceURL), zap.Error(err))
			continue
		}
		if a.ID == "" {
			a.ID = uuid.NewString()
		}
		a.CreatedAt, a.UpdatedAt = now, now
		if old, err := s.store.Get(ctx, a.ID); err == nil {
			a.Views = old.Views
			a.CreatedAt = old.CreatedAt
		}
		if a.PublishedAt.IsZero() {
			a.PublishedAt = now
		}
		if err := s.store.Put(ctx, a); err != nil {
			errs = append(errs, err)
			continue
		}
		stored++
	}
	if stored > 0 {
		s.cache.InvalidateAll()
	}
	return stored, errors.Join(errs...)
}

func (s *Service) invalidateListings(category string) {
	s.cache.AllNews.Clear()
	s.cache.Popular.Clear()
	s.cache.InvalidateCategory(category)
}
