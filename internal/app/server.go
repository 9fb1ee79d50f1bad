// internal/app/server.go
package app

import (
	"context"
	"errors"
	"net/http"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"thainews/internal/cache"
	"thainews/internal/calendar"
	"thainews/internal/extractors"
	"thainews/internal/extractors/filters"
	"thainews/internal/fetch"
	"thainews/internal/importer"
	"thainews/internal/logger"
	"thainews/internal/news"
)

// Server is the application server.
type Server struct {
	cfg        *Config
	cache      *cache.Manager
	httpClient *fetch.Client
	// extractor registry (domain -> extractor)
	extractors *extractors.Registry
	news       *news.Service
	calendar   *calendar.Resolver
	importer   *importer.FeedImporter
	calGroup   singleflight.Group
	mux        *http.ServeMux
}

// NewServer creates a new Server with provided config.
func NewServer(cfg *Config) (*Server, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	// retrying client for feeds and article pages
	hc := fetch.NewClient(fetch.ClientOptions{
		Timeout:   cfg.RequestTimeout,
		UserAgent: cfg.UserAgent,
		RetryMax:  2,
	})

	cm := cache.NewManager(cfg.Cache.TTLs)

	r := extractors.NewRegistry()
	r.RegisterDefault(extractors.NewDefaultExtractor(hc))
	for domain, rule := range cfg.Import.Sites {
		r.RegisterDomain(domain, extractors.NewSiteExtractor(hc, rule))
	}

	resolver, err := calendar.NewFromConfig(cfg.Calendar, cfg.UserAgent)
	if err != nil {
		return nil, err
	}

	svc := news.NewService(news.NewMemoryStore(), cm)

	s := &Server{
		cfg:        cfg,
		cache:      cm,
		httpClient: hc,
		extractors: r,
		news:       svc,
		calendar:   resolver,
		importer:   importer.New(hc, r, filters.NewFilterRegistry(cfg.Import.Filters...), svc),
		mux:        http.NewServeMux(),
	}

	s.registerRoutes()
	return s, nil
}

// Handler returns the root handler with common headers applied.
func (s *Server) Handler() http.Handler {
	return s.withCommonHeaders(s.mux)
}

// Run starts the HTTP server and background workers, and shuts down when ctx is done.
func (s *Server) Run(ctx context.Context, addr string) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	go s.cache.Run(ctx, s.cfg.Cache.SweepInterval)
	if s.cfg.Import.Interval > 0 && len(s.cfg.Import.Feeds) > 0 {
		go s.importLoop(ctx, s.cfg.Import.Interval)
	}

	h := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		logger.Log.Info("Server starting", zap.String("addr", addr))
		errc <- h.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	logger.Log.Info("Server shutting down")
	shutdownCtx, stop := context.WithTimeout(context.Background(), 10*time.Second)
	defer stop()
	return h.Shutdown(shutdownCtx)
}

func (s *Server) registerRoutes() {
	s.mux.HandleFunc("GET /{$}", s.handleHome)
	s.mux.HandleFunc("GET /health", s.handleHealth)

	s.mux.HandleFunc("GET /api/news", s.handleListNews)
	s.mux.HandleFunc("POST /api/news", s.handleCreateNews)
	s.mux.HandleFunc("GET /api/news/popular", s.handlePopularNews)
	s.mux.HandleFunc("GET /api/news/category/{category}", s.handleCategoryNews)
	s.mux.HandleFunc("GET /api/news/{id}", s.handleGetNews)
	s.mux.HandleFunc("PUT /api/news/{id}", s.handleUpdateNews)
	s.mux.HandleFunc("DELETE /api/news/{id}", s.handleDeleteNews)
	s.mux.HandleFunc("POST /api/news/{id}/view", s.handleViewNews)

	s.mux.HandleFunc("GET /api/calendar/wanphra", s.handleWanPhra)
	s.mux.HandleFunc("GET /api/calendar/holidays", s.handleHolidays)

	s.mux.HandleFunc("GET /rss.xml", s.handleRSS)
	s.mux.HandleFunc("POST /api/admin/import", s.handleImport)
	s.mux.HandleFunc("POST /api/admin/cache/invalidate", s.handleInvalidateCache)
}

// withCommonHeaders adds CORS and common headers.
func (s *Server) withCommonHeaders(h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Server", "thainews")
		h.ServeHTTP(w, r)
	})
}

func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"service": "thainews",
		"endpoints": []string{
			"GET /health",
			"GET /api/news?limit=&offset=",
			"GET /api/news/popular?limit=",
			"GET /api/news/category/{category}?limit=",
			"GET /api/news/{id}",
			"GET /api/calendar/wanphra?year=&month=",
			"GET /api/calendar/holidays?year=&month=",
			"GET /rss.xml",
		},
	})
}

// handleHealth returns JSON health information.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "ok",
		"service":   "thainews",
		"cache":     s.cache.Stats(),
		"cache_ttl": s.cache.TTLs(),
		"timestamp": time.Now().Format(time.RFC3339),
	})
}
