package extractors

import (
	"bytes"
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/google/uuid"
)

// ArticleID derives a stable article ID from its source URL, so re-importing
// a feed updates articles instead of duplicating them.
func ArticleID(sourceURL string) string {
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte(strings.TrimSpace(sourceURL))).String()
}

// Summarize returns the text of an HTML fragment cut to limit runes.
func Summarize(html string, limit int) string {
	text := html
	if doc, err := goquery.NewDocumentFromReader(strings.NewReader(html)); err == nil {
		text = doc.Text()
	}
	text = collapseSpace(text)
	r := []rune(text)
	if limit > 0 && len(r) > limit {
		return strings.TrimSpace(string(r[:limit])) + "..."
	}
	return text
}

func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// sanitizeHTML ensures consistent wrapping.
func sanitizeHTML(html string) string {
	html = strings.TrimSpace(html)
	if html == "" {
		return ""
	}
	if !strings.HasPrefix(html, "<div") {
		html = fmt.Sprintf(`<div class="thainews-article">%s</div>`, html)
	}
	return html
}

// ImagesFromMeta extracts image URLs from Open Graph and Twitter Card meta tags.
func ImagesFromMeta(page []byte) []string {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(page))
	if err != nil {
		return nil
	}
	var images []string
	for _, sel := range []string{
		`meta[property="og:image"]`,
		`meta[name="twitter:image"]`,
		`meta[property="article:image"]`,
	} {
		if v, ok := doc.Find(sel).Attr("content"); ok && strings.TrimSpace(v) != "" {
			images = append(images, strings.TrimSpace(v))
		}
	}
	return images
}

// ImagesFromHTML collects <img src> values resolved against base.
func ImagesFromHTML(html string, base *url.URL) []string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil
	}
	var images []string
	doc.Find("img").Each(func(_ int, s *goquery.Selection) {
		src, ok := s.Attr("src")
		src = strings.TrimSpace(src)
		// Skip data URLs and very short URLs
		if !ok || strings.HasPrefix(src, "data:") || len(src) < 6 {
			return
		}
		ref, err := url.Parse(src)
		if err != nil {
			return
		}
		if base != nil {
			ref = base.ResolveReference(ref)
		} else if ref.Scheme == "" && strings.HasPrefix(src, "//") {
			ref.Scheme = "https"
		}
		if ref.IsAbs() {
			images = append(images, ref.String())
		}
	})
	return images
}
