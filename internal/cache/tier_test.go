package cache

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 4, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Add(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

func TestTierGetUnsetKey(t *testing.T) {
	tier := NewTier("t", time.Minute)
	for _, k := range []string{"", "news", "article/1", "category/x?limit=5"} {
		_, ok := tier.Get(k)
		assert.False(t, ok, k)
	}
}

func TestTierSetThenGet(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value any
	}{
		{name: "string", key: "a", value: "hello"},
		{name: "slice", key: "b", value: []string{"x", "y"}},
		{name: "map", key: "c", value: map[string]int{"views": 3}},
	}
	tier := NewTier("t", time.Minute)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tier.Set(tt.key, tt.value)
			got, ok := tier.Get(tt.key)
			assert.True(t, ok)
			assert.Equal(t, tt.value, got)
		})
	}
}

func TestTierSetOverwrites(t *testing.T) {
	tier := NewTier("t", time.Minute)
	tier.Set("k", 1)
	tier.Set("k", 2)
	got, ok := tier.Get("k")
	assert.True(t, ok)
	assert.Equal(t, 2, got)
	assert.Equal(t, 1, tier.Size())
}

func TestTierLazyExpiry(t *testing.T) {
	clk := newFakeClock()
	tier := NewTier("t", time.Minute, WithClock(clk.Now))

	tier.Set("default", "v")
	tier.SetWithTTL("short", "v", 10*time.Second)
	tier.SetWithTTL("long", "v", time.Hour)

	clk.Add(11 * time.Second)
	_, ok := tier.Get("short")
	assert.False(t, ok, "short TTL should have elapsed")
	_, ok = tier.Get("default")
	assert.True(t, ok)

	clk.Add(time.Minute)
	_, ok = tier.Get("default")
	assert.False(t, ok)
	_, ok = tier.Get("long")
	assert.True(t, ok)

	// Get does not evict.
	assert.Equal(t, 3, tier.Size())
}

func TestTierExpiryBoundary(t *testing.T) {
	clk := newFakeClock()
	tier := NewTier("t", time.Minute, WithClock(clk.Now))
	tier.Set("k", "v")

	clk.Add(time.Minute - time.Nanosecond)
	_, ok := tier.Get("k")
	assert.True(t, ok)

	clk.Add(time.Nanosecond)
	_, ok = tier.Get("k")
	assert.False(t, ok)
	assert.Equal(t, 1, tier.Cleanup())
}

func TestTierCleanup(t *testing.T) {
	clk := newFakeClock()
	tier := NewTier("t", time.Minute, WithClock(clk.Now))
	tier.Set("a", 1)
	tier.SetWithTTL("b", 2, time.Hour)

	assert.Equal(t, 0, tier.Cleanup())
	clk.Add(2 * time.Minute)
	assert.Equal(t, 1, tier.Cleanup())
	assert.Equal(t, 1, tier.Size())
	_, ok := tier.Get("b")
	assert.True(t, ok)
}

func TestTierDeleteAndClear(t *testing.T) {
	tier := NewTier("t", time.Minute)
	tier.Set("a", 1)
	tier.Set("b", 2)

	tier.Delete("a")
	tier.Delete("missing")
	_, ok := tier.Get("a")
	assert.False(t, ok)
	_, ok = tier.Get("b")
	assert.True(t, ok)

	tier.Clear()
	_, ok = tier.Get("b")
	assert.False(t, ok)
	assert.Zero(t, tier.Size())
}

func TestTierDeleteNamespace(t *testing.T) {
	tier := NewTier("t", time.Minute)
	tier.Set(CategoryKey("sport", 10), 1)
	tier.Set(CategoryKey("sport", 20), 2)
	tier.Set(CategoryNamespace("sport"), 3)
	tier.Set(CategoryKey("sports", 10), 4)
	tier.Set(CategoryKey("politics", 10), 5)

	assert.Equal(t, 3, tier.DeleteNamespace(CategoryNamespace("sport")))
	_, ok := tier.Get(CategoryKey("sports", 10))
	assert.True(t, ok)
	_, ok = tier.Get(CategoryKey("politics", 10))
	assert.True(t, ok)
}

func TestGetAs(t *testing.T) {
	tier := NewTier("t", time.Minute)
	tier.Set("n", 42)

	n, ok := GetAs[int](tier, "n")
	assert.True(t, ok)
	assert.Equal(t, 42, n)

	s, ok := GetAs[string](tier, "n")
	assert.False(t, ok)
	assert.Empty(t, s)

	_, ok = GetAs[int](tier, "missing")
	assert.False(t, ok)
}

func TestNilTierIsAlwaysMiss(t *testing.T) {
	var tier *Tier
	tier.Set("k", 1)
	_, ok := tier.Get("k")
	assert.False(t, ok)
	assert.Zero(t, tier.Size())
	assert.Zero(t, tier.Cleanup())
}

func TestTierConcurrentAccess(t *testing.T) {
	tier := NewTier("t", time.Minute)
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for j := 0; j < 200; j++ {
				k := ArticleKey(string(rune('a' + (i+j)%8)))
				tier.Set(k, j)
				tier.Get(k)
				if j%50 == 0 {
					tier.Cleanup()
				}
			}
		}(i)
	}
	wg.Wait()
	assert.LessOrEqual(t, tier.Size(), 8)
}
