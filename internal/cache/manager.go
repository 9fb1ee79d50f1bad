package cache

import (
	"context"
	"time"

	"go.uber.org/zap"

	"thainews/internal/logger"
)

// Tier names.
const (
	AllNews  = "all-news"
	Article  = "article"
	Popular  = "popular"
	Category = "category"
	Calendar = "calendar"
)

// TTLs holds the default freshness window of every tier.
type TTLs struct {
	AllNews  time.Duration `yaml:"all_news_ttl"`
	Article  time.Duration `yaml:"article_ttl"`
	Popular  time.Duration `yaml:"popular_ttl"`
	Category time.Duration `yaml:"category_ttl"`
	Calendar time.Duration `yaml:"calendar_ttl"`
}

// DefaultTTLs returns the production freshness windows.
func DefaultTTLs() TTLs {
	return TTLs{
		AllNews:  5 * time.Minute,
		Article:  10 * time.Minute,
		Popular:  15 * time.Minute,
		Category: 5 * time.Minute,
		Calendar: 24 * time.Hour,
	}
}

// Manager owns the process-wide cache tiers. Create one at startup and pass it
// to whatever serves cached data.
type Manager struct {
	AllNews  *Tier
	Article  *Tier
	Popular  *Tier
	Category *Tier
	Calendar *Tier
}

// NewManager creates all tiers. Options apply to every tier.
func NewManager(ttls TTLs, opts ...Option) *Manager {
	return &Manager{
		AllNews:  NewTier(AllNews, ttls.AllNews, opts...),
		Article:  NewTier(Article, ttls.Article, opts...),
		Popular:  NewTier(Popular, ttls.Popular, opts...),
		Category: NewTier(Category, ttls.Category, opts...),
		Calendar: NewTier(Calendar, ttls.Calendar, opts...),
	}
}

func (m *Manager) tiers() []*Tier {
	return []*Tier{m.AllNews, m.Article, m.Popular, m.Category, m.Calendar}
}

// InvalidateCategory drops every cached query on category.
func (m *Manager) InvalidateCategory(category string) {
	n := m.Category.DeleteNamespace(CategoryNamespace(category))
	logger.Log.Debug("Category cache invalidated", zap.String("category", category), zap.Int("removed", n))
}

// InvalidateAll clears every tier.
func (m *Manager) InvalidateAll() {
	for _, t := range m.tiers() {
		t.Clear()
	}
	logger.Log.Info("All cache tiers cleared")
}

// Sweep removes expired entries from every tier.
func (m *Manager) Sweep() int {
	total := 0
	for _, t := range m.tiers() {
		total += t.Cleanup()
	}
	return total
}

// Stats returns the entry count per tier.
func (m *Manager) Stats() map[string]int {
	out := make(map[string]int, 5)
	for _, t := range m.tiers() {
		out[t.Name()] = t.Size()
	}
	return out
}

// TTLs returns the default time-to-live per tier.
func (m *Manager) TTLs() map[string]string {
	out := make(map[string]string, 5)
	for _, t := range m.tiers() {
		out[t.Name()] = t.TTL().String()
	}
	return out
}

// Run sweeps all tiers every interval until ctx is done.
func (m *Manager) Run(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			if n := m.Sweep(); n > 0 {
				logger.Log.Debug("Cache swept", zap.Int("removed", n))
			}
		case <-ctx.Done():
			return
		}
	}
}
