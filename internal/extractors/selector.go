package extractors

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"thainews/internal/fetch"
)

// baseNoise is stripped from every matched container.
const baseNoise = "script, iframe, style, noscript, .ad, .advertisement, .promo, .related, .share, .social-share"

// SiteRule describes where a site keeps its article body and what to drop from it.
type SiteRule struct {
	// Selectors are tried in order; the first non-empty match wins.
	Selectors []string `yaml:"selectors"`
	// Remove lists extra CSS selectors stripped from the match (bylines, widgets).
	Remove []string `yaml:"remove"`
	// SkipImages drops image URLs containing any of these substrings (logos, trackers).
	SkipImages []string `yaml:"skip_images"`
}

func (r SiteRule) noise() string {
	if len(r.Remove) == 0 {
		return baseNoise
	}
	return baseNoise + ", " + strings.Join(r.Remove, ", ")
}

func (r SiteRule) keepImages(in []string) []string {
	if len(r.SkipImages) == 0 {
		return in
	}
	out := in[:0:0]
	for _, img := range in {
		skip := false
		for _, s := range r.SkipImages {
			if strings.Contains(img, s) {
				skip = true
				break
			}
		}
		if !skip {
			out = append(out, img)
		}
	}
	return out
}

// SelectorExtractor pulls content from a site whose article body sits in a
// known CSS container.
type SelectorExtractor struct {
	client *fetch.Client
	rule   SiteRule
}

func NewSelectorExtractor(client *fetch.Client, selectors ...string) *SelectorExtractor {
	return NewSiteExtractor(client, SiteRule{Selectors: selectors})
}

func NewSiteExtractor(client *fetch.Client, rule SiteRule) *SelectorExtractor {
	return &SelectorExtractor{client: client, rule: rule}
}

func (e *SelectorExtractor) Extract(ctx context.Context, pageURL string) (Content, error) {
	base, err := url.Parse(pageURL)
	if err != nil {
		return Content{}, fmt.Errorf("invalid article url: %w", err)
	}
	body, err := e.client.GetBody(ctx, pageURL, nil)
	if err != nil {
		return Content{}, err
	}
	c, err := extractWithRule(body, base, e.rule)
	if err != nil {
		return Content{}, fmt.Errorf("%s: %w", base.Hostname(), err)
	}
	return c, nil
}
