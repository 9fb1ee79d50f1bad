package app

import (
	"net/http"

	"thainews/internal/cache"
)

// handleInvalidateCache clears one category (?category=), one tier (?tier=), or everything.
func (s *Server) handleInvalidateCache(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	switch {
	case q.Get("category") != "":
		s.cache.InvalidateCategory(q.Get("category"))
	case q.Get("tier") != "":
		tier := s.tierByName(q.Get("tier"))
		if tier == nil {
			writeError(w, http.StatusBadRequest, "unknown cache tier")
			return
		}
		tier.Clear()
	default:
		s.cache.InvalidateAll()
	}
	writeJSON(w, http.StatusOK, s.cache.Stats())
}

func (s *Server) tierByName(name string) *cache.Tier {
	switch name {
	case cache.AllNews:
		return s.cache.AllNews
	case cache.Article:
		return s.cache.Article
	case cache.Popular:
		return s.cache.Popular
	case cache.Category:
		return s.cache.Category
	case cache.Calendar:
		return s.cache.Calendar
	}
	return nil
}
