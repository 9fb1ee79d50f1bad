// FILE: internal/extractors/extractor.go
package extractors

import (
	"context"
	"errors"
	"net/url"
	"strings"
	"sync"
)

// ErrNoExtractor is returned when nothing is registered for a URL.
var ErrNoExtractor = errors.New("no extractor registered")

// Content is the readable part of an article page.
type Content struct {
	HTML   string
	Text   string
	Images []string
}

// Extractor extracts the main content of an article page.
type Extractor interface {
	Extract(ctx context.Context, pageURL string) (Content, error)
}

// Registry holds domain-specific extractors and a default fallback.
type Registry struct {
	mu               sync.RWMutex
	defaultExtractor Extractor
	domains          map[string]Extractor
}

func NewRegistry() *Registry {
	return &Registry{domains: make(map[string]Extractor)}
}

func (r *Registry) RegisterDefault(e Extractor) {
	r.mu.Lock()
	r.defaultExtractor = e
	r.mu.Unlock()
}

// RegisterDomain binds e to domain and its subdomains.
func (r *Registry) RegisterDomain(domain string, e Extractor) {
	r.mu.Lock()
	r.domains[strings.ToLower(strings.TrimPrefix(domain, "www."))] = e
	r.mu.Unlock()
}

// ForURL returns the most specific extractor for the URL's host.
func (r *Registry) ForURL(rawURL string) Extractor {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if u, err := url.Parse(rawURL); err == nil {
		host := strings.ToLower(strings.TrimPrefix(u.Hostname(), "www."))
		for host != "" {
			if e, ok := r.domains[host]; ok {
				return e
			}
			i := strings.IndexByte(host, '.')
			if i < 0 {
				break
			}
			host = host[i+1:]
		}
	}
	if r.defaultExtractor != nil {
		return r.defaultExtractor
	}
	return noExtractor{}
}

// noExtractor is a last-resort extractor.
type noExtractor struct{}

func (noExtractor) Extract(context.Context, string) (Content, error) {
	return Content{}, ErrNoExtractor
}
