package importer

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"thainews/internal/cache"
	"thainews/internal/extractors"
	"thainews/internal/extractors/filters"
	"thainews/internal/fetch"
	"thainews/internal/news"
)

const feedTemplate = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0" xmlns:content="http://purl.org/rss/1.0/modules/content/">
<channel>
  <title>ข่าวทดสอบ</title>
  <link>%[1]s</link>
  <description>test feed</description>
  <item>
    <title>ข่าวหนึ่ง</title>
    <link>%[1]s/news/1</link>
    <category>การเมือง</category>
    <description>&lt;p&gt;สรุปข่าวหนึ่ง&lt;/p&gt;</description>
    <content:encoded><![CDATA[<p>เนื้อหาข่าวหนึ่ง</p><img src="https://cdn.example.com/1.jpg">]]></content:encoded>
    <pubDate>Mon, 01 Apr 2024 08:00:00 +0700</pubDate>
  </item>
  <item>
    <title>ข่าวสอง</title>
    <link>%[1]s/news/2</link>
    <description>สรุปข่าวสอง</description>
    <enclosure url="https://cdn.example.com/2.jpg" type="image/jpeg" length="10"/>
  </item>
  <item>
    <title>วิดีโอ</title>
    <link>%[1]s/video/3</link>
    <description>clip</description>
  </item>
  <item>
    <title>no link</title>
    <description>orphan</description>
  </item>
</channel>
</rss>`

const articleHTML = `<html><body><div class="news-body"><p>เนื้อหาข่าวสองฉบับเต็ม</p></div></body></html>`

func newFixture(t *testing.T) (*FeedImporter, *news.Service, *cache.Manager, string) {
	t.Helper()
	var base string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/rss":
			w.Header().Set("Content-Type", "application/rss+xml")
			_, _ = fmt.Fprintf(w, feedTemplate, base)
		case "/news/2":
			_, _ = w.Write([]byte(articleHTML))
		case "/broken":
			_, _ = w.Write([]byte("this is not a feed"))
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(srv.Close)
	base = srv.URL

	client := fetch.NewClient(fetch.ClientOptions{Timeout: time.Second})
	reg := extractors.NewRegistry()
	reg.RegisterDefault(extractors.NewSelectorExtractor(client, ".news-body"))
	f := filters.NewFilterRegistry(filters.URLFilter{Domain: "127.0.0.1", BlockedPaths: []string{"/video/"}})

	cm := cache.NewManager(cache.DefaultTTLs())
	svc := news.NewService(news.NewMemoryStore(), cm)
	return New(client, reg, f, svc), svc, cm, base
}

func TestImport(t *testing.T) {
	im, svc, cm, base := newFixture(t)
	ctx := context.Background()
	cm.AllNews.Set(cache.AllNewsKey(20, 0), []news.Article{})

	rep, err := im.Import(ctx, base+"/rss", "", 0)
	require.NoError(t, err)
	assert.Equal(t, Report{Feed: base + "/rss", Items: 4, Imported: 2, Skipped: 2}, rep)

	one, err := svc.Get(ctx, extractors.ArticleID(base+"/news/1"))
	require.NoError(t, err)
	assert.Equal(t, "ข่าวหนึ่ง", one.Title)
	assert.Equal(t, "การเมือง", one.Category)
	assert.Equal(t, "สรุปข่าวหนึ่ง", one.Summary)
	assert.Contains(t, one.Content, "เนื้อหาข่าวหนึ่ง")
	assert.Equal(t, "https://cdn.example.com/1.jpg", one.ImageURL)
	assert.True(t, time.Date(2024, 4, 1, 1, 0, 0, 0, time.UTC).Equal(one.PublishedAt), one.PublishedAt)

	two, err := svc.Get(ctx, extractors.ArticleID(base+"/news/2"))
	require.NoError(t, err)
	assert.Equal(t, "general", two.Category)
	assert.Contains(t, two.Content, "เนื้อหาข่าวสองฉบับเต็ม")
	assert.Equal(t, "https://cdn.example.com/2.jpg", two.ImageURL)

	list, err := svc.List(ctx, 20, 0)
	require.NoError(t, err)
	assert.Len(t, list, 2, "import must drop the cached empty listing")
}

func TestImportIsIdempotent(t *testing.T) {
	im, svc, _, base := newFixture(t)
	ctx := context.Background()

	_, err := im.Import(ctx, base+"/rss", "ข่าวเด่น", 1)
	require.NoError(t, err)
	rep, err := im.Import(ctx, base+"/rss", "ข่าวเด่น", 1)
	require.NoError(t, err)
	assert.Equal(t, 1, rep.Items)

	list, err := svc.List(ctx, 20, 0)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "ข่าวเด่น", list[0].Category)
}

func TestImportErrors(t *testing.T) {
	im, _, _, base := newFixture(t)
	ctx := context.Background()

	_, err := im.Import(ctx, base+"/missing", "", 0)
	assert.Error(t, err)

	_, err = im.Import(ctx, base+"/broken", "", 0)
	assert.Error(t, err)
}
