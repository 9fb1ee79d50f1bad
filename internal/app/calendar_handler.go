package app

import (
	"context"
	"net/http"
	"time"

	"thainews/internal/cache"
	"thainews/internal/calendar"
)

// yearMonth reads year and month, defaulting to the current Thai month.
// With allowWholeYear, an explicit month=0 or a missing month means the whole year.
func yearMonth(r *http.Request, allowWholeYear bool) (int, int, error) {
	now := time.Now().In(calendar.ThaiTime)
	year, err := intParam(r, "year", now.Year())
	if err != nil {
		return 0, 0, err
	}
	defMonth := int(now.Month())
	if allowWholeYear {
		defMonth = 0
	}
	month, err := intParam(r, "month", defMonth)
	if err != nil {
		return 0, 0, err
	}
	return year, month, nil
}

func (s *Server) handleWanPhra(w http.ResponseWriter, r *http.Request) {
	year, month, err := yearMonth(r, false)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, s.wanPhra(r.Context(), year, month))
}

// wanPhra caches answered months only, so a transient outage is not pinned for a day.
func (s *Server) wanPhra(ctx context.Context, year, month int) calendar.Result {
	key := cache.CalendarKey("wanphra", year, month)
	if res, ok := cache.GetAs[calendar.Result](s.cache.Calendar, key); ok {
		return res
	}
	v, _, _ := s.calGroup.Do(key, func() (interface{}, error) {
		// Detached so one caller's disconnect does not fail the others.
		res := s.calendar.Resolve(context.WithoutCancel(ctx), year, month)
		if res.Source != "" {
			s.cache.Calendar.Set(key, res)
		}
		return res, nil
	})
	return v.(calendar.Result)
}

func (s *Server) handleHolidays(w http.ResponseWriter, r *http.Request) {
	year, month, err := yearMonth(r, true)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	key := cache.CalendarKey("holidays", year, month)
	holidays, ok := cache.GetAs[[]calendar.Holiday](s.cache.Calendar, key)
	if !ok {
		holidays = calendar.Holidays(year, month)
		s.cache.Calendar.Set(key, holidays)
	}
	writeJSON(w, http.StatusOK, holidays)
}
