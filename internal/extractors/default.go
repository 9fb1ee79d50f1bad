package extractors

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-shiori/go-readability"

	"thainews/internal/fetch"
)

// DefaultExtractor uses go-readability primarily and goquery as a fallback.
type DefaultExtractor struct {
	client *fetch.Client
}

func NewDefaultExtractor(client *fetch.Client) *DefaultExtractor {
	return &DefaultExtractor{client: client}
}

// commonContainers are tried in order when readability finds nothing.
var commonContainers = []string{
	"article",
	"main",
	".article-body",
	".post-content",
	".entry-content",
	".content",
	".news-detail",
	".story-body",
}

func (d *DefaultExtractor) Extract(ctx context.Context, pageURL string) (Content, error) {
	base, err := url.Parse(pageURL)
	if err != nil {
		return Content{}, fmt.Errorf("invalid article url: %w", err)
	}
	body, err := d.client.GetBody(ctx, pageURL, nil)
	if err != nil {
		return Content{}, err
	}

	if art, err := readability.FromReader(bytes.NewReader(body), base); err == nil && strings.TrimSpace(art.Content) != "" {
		images := ImagesFromMeta(body)
		if art.Image != "" && len(images) == 0 {
			images = append(images, art.Image)
		}
		if len(images) == 0 {
			images = ImagesFromHTML(art.Content, base)
		}
		return Content{
			HTML:   sanitizeHTML(art.Content),
			Text:   strings.TrimSpace(art.TextContent),
			Images: images,
		}, nil
	}

	return extractWithRule(body, base, SiteRule{Selectors: commonContainers})
}

// extractWithRule returns the first non-empty container matching rule.
func extractWithRule(body []byte, base *url.URL, rule SiteRule) (Content, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return Content{}, err
	}
	for _, sel := range rule.Selectors {
		s := doc.Find(sel).First()
		if s.Length() == 0 {
			continue
		}
		s.Find(rule.noise()).Remove()
		htmlStr, _ := s.Html()
		htmlStr = sanitizeHTML(htmlStr)
		if htmlStr == "" {
			continue
		}
		images := rule.keepImages(ImagesFromMeta(body))
		if len(images) == 0 {
			images = rule.keepImages(ImagesFromHTML(htmlStr, base))
		}
		return Content{
			HTML:   htmlStr,
			Text:   collapseSpace(s.Text()),
			Images: images,
		}, nil
	}
	return Content{}, errors.New("no main article content found")
}
