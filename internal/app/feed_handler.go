// internal/app/feed_handler.go
package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/feeds"
	"go.uber.org/zap"

	"thainews/internal/importer"
	"thainews/internal/logger"
)

const rssItems = 20

// handleRSS publishes the latest articles as RSS 2.0.
func (s *Server) handleRSS(w http.ResponseWriter, r *http.Request) {
	list, err := s.news.List(r.Context(), rssItems, 0)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	base := "http://" + r.Host
	out := &feeds.Feed{
		Title:       "ข่าวล่าสุด",
		Link:        &feeds.Link{Href: base + "/"},
		Description: "Latest Thai news",
		Created:     time.Now(),
	}
	for _, a := range list {
		item := &feeds.Item{
			Id:          a.ID,
			Title:       a.Title,
			Link:        &feeds.Link{Href: fmt.Sprintf("%s/api/news/%s", base, a.ID)},
			Description: a.Summary,
			Content:     a.Content,
			Created:     a.PublishedAt,
			Updated:     a.UpdatedAt,
		}
		if a.Author != "" {
			item.Author = &feeds.Author{Name: a.Author}
		}
		if a.ImageURL != "" {
			item.Enclosure = &feeds.Enclosure{Url: a.ImageURL, Type: "image/jpeg", Length: "0"}
		}
		out.Items = append(out.Items, item)
	}

	rss, err := out.ToRss()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to generate RSS")
		return
	}
	w.Header().Set("Content-Type", "application/rss+xml; charset=utf-8")
	w.Header().Set("Cache-Control", "public, max-age=300")
	_, _ = w.Write([]byte(rss))
}

type importRequest struct {
	URL      string `json:"url"`
	Category string `json:"category"`
	Limit    int    `json:"limit"`
}

// handleImport imports one feed from the body, or every configured feed when
// no URL is given.
func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	var req importRequest
	if r.ContentLength != 0 {
		if err := decodeJSON(w, r, &req); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
	}
	if req.URL == "" {
		writeJSON(w, http.StatusOK, s.importAll(r.Context()))
		return
	}
	limit := req.Limit
	if limit <= 0 {
		limit = s.cfg.Import.Limit
	}
	rep, err := s.importer.Import(r.Context(), req.URL, req.Category, limit)
	if err != nil {
		writeError(w, http.StatusBadGateway, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, rep)
}

func (s *Server) importAll(ctx context.Context) []importer.Report {
	reports := make([]importer.Report, 0, len(s.cfg.Import.Feeds))
	for _, f := range s.cfg.Import.Feeds {
		rep, err := s.importer.Import(ctx, f.URL, f.Category, s.cfg.Import.Limit)
		if err != nil {
			logger.Log.Warn("Feed import failed", zap.String("url", f.URL), zap.Error(err))
		}
		reports = append(reports, rep)
	}
	return reports
}

// importLoop periodically imports the configured feeds.
func (s *Server) importLoop(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	s.importAll(ctx)
	for {
		select {
		case <-ticker.C:
			s.importAll(ctx)
		case <-ctx.Done():
			return
		}
	}
}
