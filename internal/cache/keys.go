package cache

import (
	"net/url"
	"strconv"
)

// Key builds a deterministic, human-readable cache key: the namespace, then the
// params sorted by name and query-escaped. Equal queries always give equal keys.
func Key(namespace string, params url.Values) string {
	if len(params) == 0 {
		return namespace
	}
	return namespace + "?" + params.Encode()
}

// CategoryNamespace is the key namespace shared by every query on one category.
func CategoryNamespace(category string) string {
	return "category/" + url.PathEscape(category)
}

func AllNewsKey(limit, offset int) string {
	return Key("news", url.Values{
		"limit":  {strconv.Itoa(limit)},
		"offset": {strconv.Itoa(offset)},
	})
}

func ArticleKey(id string) string {
	return "article/" + url.PathEscape(id)
}

func PopularKey(limit int) string {
	return Key("popular", url.Values{"limit": {strconv.Itoa(limit)}})
}

func CategoryKey(category string, limit int) string {
	return Key(CategoryNamespace(category), url.Values{"limit": {strconv.Itoa(limit)}})
}

// CalendarKey keys calendar lookups; kind is e.g. "wanphra" or "holidays".
// month 0 stands for the whole year.
func CalendarKey(kind string, year, month int) string {
	return Key("calendar/"+url.PathEscape(kind), url.Values{
		"year":  {strconv.Itoa(year)},
		"month": {strconv.Itoa(month)},
	})
}
