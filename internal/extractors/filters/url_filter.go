// internal/extractors/filters/url_filter.go
package filters

import (
	"net/url"
	"strings"
)

// URLFilter defines filtering rules for a specific domain
type URLFilter struct {
	Domain       string   `yaml:"domain"`
	AllowedPaths []string `yaml:"allowed_paths"` // If empty, allow all paths
	BlockedPaths []string `yaml:"blocked_paths"` // Takes priority over AllowedPaths
}

// FilterRegistry manages URL filtering rules
type FilterRegistry struct {
	filters []URLFilter
}

// NewFilterRegistry creates a new filter registry
func NewFilterRegistry(filters ...URLFilter) *FilterRegistry {
	r := &FilterRegistry{}
	for _, f := range filters {
		r.Register(f)
	}
	return r
}

// Register adds a new URL filter
func (r *FilterRegistry) Register(filter URLFilter) {
	filter.Domain = strings.ToLower(strings.TrimPrefix(filter.Domain, "www."))
	r.filters = append(r.filters, filter)
}

func hostMatches(host, domain string) bool {
	return host == domain || strings.HasSuffix(host, "."+domain)
}

// ShouldProcess checks if a URL should be processed based on registered filters
func (r *FilterRegistry) ShouldProcess(urlStr string) bool {
	if r == nil {
		return true
	}
	u, err := url.Parse(urlStr)
	if err != nil {
		return false
	}
	host := strings.ToLower(strings.TrimPrefix(u.Hostname(), "www."))

	// Find matching filter for this URL's domain
	var matchedFilter *URLFilter
	for i := range r.filters {
		if hostMatches(host, r.filters[i].Domain) {
			matchedFilter = &r.filters[i]
			break
		}
	}

	// If no filter matches, allow processing
	if matchedFilter == nil {
		return true
	}

	// Check blocked paths first (highest priority)
	for _, blocked := range matchedFilter.BlockedPaths {
		if strings.HasPrefix(u.Path, blocked) {
			return false
		}
	}

	// If no allowed paths specified, allow all (except blocked)
	if len(matchedFilter.AllowedPaths) == 0 {
		return true
	}

	for _, allowed := range matchedFilter.AllowedPaths {
		if strings.HasPrefix(u.Path, allowed) {
			return true
		}
	}

	// Doesn't match any allowed path
	return false
}
