// Package importer pulls articles from RSS/Atom feeds into the news service.
package importer

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"
	"go.uber.org/zap"

	"thainews/internal/extractors"
	"thainews/internal/extractors/filters"
	"thainews/internal/fetch"
	"thainews/internal/logger"
	"thainews/internal/news"
)

const summaryLength = 300

// Sink receives imported articles.
type Sink interface {
	Import(ctx context.Context, batch []news.Article) (int, error)
}

// Report summarises one feed import.
type Report struct {
	Feed     string `json:"feed"`
	Items    int    `json:"items"`
	Imported int    `json:"imported"`
	Skipped  int    `json:"skipped"`
}

// FeedImporter fetches a feed, builds articles from its items and hands them to Sink.
type FeedImporter struct {
	Client   *fetch.Client
	Registry *extractors.Registry
	Filters  *filters.FilterRegistry
	Sink     Sink
}

func New(client *fetch.Client, registry *extractors.Registry, f *filters.FilterRegistry, sink Sink) *FeedImporter {
	return &FeedImporter{
		Client:   client,
		Registry: registry,
		Filters:  f,
		Sink:     sink,
	}
}

// Import processes at most limit items (all when limit <= 0) of feedURL. A
// non-empty category overrides the categories the feed gives its items.
func (im *FeedImporter) Import(ctx context.Context, feedURL, category string, limit int) (Report, error) {
	rep := Report{Feed: feedURL}
	logger.Log.Info("Processing feed", zap.String("url", feedURL))

	body, err := im.Client.GetBody(ctx, feedURL, map[string]string{
		"Accept": "application/rss+xml, application/atom+xml, application/xml;q=0.9, */*;q=0.8",
	})
	if err != nil {
		return rep, fmt.Errorf("failed to fetch feed: %w", err)
	}
	// Parsers keep per-document state, so each import gets its own.
	parsed, err := gofeed.NewParser().Parse(bytes.NewReader(body))
	if err != nil {
		logger.Log.Error("Failed to parse feed", zap.String("url", feedURL), zap.Error(err))
		return rep, fmt.Errorf("failed to parse feed: %w", err)
	}

	items := parsed.Items
	if limit > 0 && len(items) > limit {
		items = items[:limit]
	}
	rep.Items = len(items)

	batch := make([]news.Article, 0, len(items))
	for _, item := range items {
		a, err := im.processItem(ctx, item, category)
		if err != nil {
			logger.Log.Warn("Skipping item", zap.String("title", item.Title), zap.Error(err))
			rep.Skipped++
			continue
		}
		batch = append(batch, a)
	}

	if len(batch) > 0 {
		n, err := im.Sink.Import(ctx, batch)
		rep.Imported = n
		rep.Skipped += len(batch) - n
		if err != nil {
			return rep, fmt.Errorf("store imported articles: %w", err)
		}
	}

	logger.Log.Info("Feed processed successfully",
		zap.String("url", feedURL),
		zap.Int("items", rep.Items),
		zap.Int("imported", rep.Imported))
	return rep, nil
}

func (im *FeedImporter) processItem(ctx context.Context, item *gofeed.Item, category string) (news.Article, error) {
	link := strings.TrimSpace(item.Link)
	if link == "" {
		return news.Article{}, fmt.Errorf("item missing link")
	}
	if !im.Filters.ShouldProcess(link) {
		return news.Article{}, fmt.Errorf("filtered url %s", link)
	}

	content := strings.TrimSpace(item.Content)
	var images []string
	if content == "" {
		extracted, err := im.Registry.ForURL(link).Extract(ctx, link)
		if err != nil {
			// The feed description is better than nothing.
			if item.Description == "" {
				return news.Article{}, fmt.Errorf("extract failed: %w", err)
			}
			logger.Log.Debug("Extraction failed, using description", zap.String("url", link), zap.Error(err))
			content = item.Description
		} else {
			content = extracted.HTML
			images = extracted.Images
		}
	}

	summary := extractors.Summarize(item.Description, summaryLength)
	if summary == "" {
		summary = extractors.Summarize(content, summaryLength)
	}

	a := news.Article{
		ID:        extractors.ArticleID(link),
		Title:     strings.TrimSpace(item.Title),
		Summary:   summary,
		Content:   content,
		Category:  itemCategory(item, category),
		ImageURL:  itemImage(item, content, images),
		SourceURL: link,
	}
	if len(item.Authors) > 0 && item.Authors[0] != nil {
		a.Author = item.Authors[0].Name
	}
	switch {
	case item.PublishedParsed != nil:
		a.PublishedAt = item.PublishedParsed.UTC()
	case item.UpdatedParsed != nil:
		a.PublishedAt = item.UpdatedParsed.UTC()
	default:
		a.PublishedAt = time.Now().UTC()
	}
	return a, nil
}

func itemCategory(item *gofeed.Item, fallback string) string {
	if fallback != "" {
		return fallback
	}
	for _, c := range item.Categories {
		if c = strings.TrimSpace(c); c != "" {
			return c
		}
	}
	return "general"
}

func itemImage(item *gofeed.Item, content string, extracted []string) string {
	if item.Image != nil && item.Image.URL != "" {
		return item.Image.URL
	}
	for _, enc := range item.Enclosures {
		if enc != nil && strings.HasPrefix(enc.Type, "image/") && enc.URL != "" {
			return enc.URL
		}
	}
	if len(extracted) > 0 {
		return extracted[0]
	}
	if imgs := extractors.ImagesFromHTML(content, nil); len(imgs) > 0 {
		return imgs[0]
	}
	return ""
}
