package cache

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKeyDeterministic(t *testing.T) {
	a := Key("news", url.Values{"limit": {"10"}, "offset": {"0"}})
	b := Key("news", url.Values{"offset": {"0"}, "limit": {"10"}})
	assert.Equal(t, a, b)
	assert.Equal(t, "news?limit=10&offset=0", a)
	assert.Equal(t, "news", Key("news", nil))
}

func TestKeysDistinct(t *testing.T) {
	keys := []string{
		AllNewsKey(10, 0),
		AllNewsKey(10, 10),
		AllNewsKey(20, 0),
		ArticleKey("1"),
		ArticleKey("1?x=y"),
		PopularKey(10),
		CategoryKey("sport", 10),
		CategoryKey("sport?limit=10", 10),
		CategoryKey("sport/x", 10),
		CategoryKey("การเมือง", 10),
		CalendarKey("wanphra", 2024, 4),
		CalendarKey("wanphra", 2024, 0),
		CalendarKey("holidays", 2024, 4),
	}
	seen := map[string]bool{}
	for _, k := range keys {
		assert.False(t, seen[k], "duplicate key %q", k)
		seen[k] = true
	}
}

func TestKeysReadable(t *testing.T) {
	assert.Equal(t, "news?limit=10&offset=20", AllNewsKey(10, 20))
	assert.Equal(t, "article/abc", ArticleKey("abc"))
	assert.Equal(t, "popular?limit=5", PopularKey(5))
	assert.Equal(t, "category/sport?limit=10", CategoryKey("sport", 10))
	assert.Equal(t, "calendar/wanphra?month=4&year=2024", CalendarKey("wanphra", 2024, 4))
}
