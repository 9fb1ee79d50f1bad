package calendar

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"thainews/internal/fetch"
)

// RemoteSource asks an external calendar feed for a month. The feed answers
// GET <url>?year=Y&month=M with a JSON array of {date, label|summary}.
type RemoteSource struct {
	URL     string
	Client  *fetch.Client
	Timeout time.Duration
}

// NewRemoteSource builds a RemoteSource with a non-retrying client.
func NewRemoteSource(rawURL string, timeout time.Duration, userAgent string) *RemoteSource {
	return &RemoteSource{
		URL:     rawURL,
		Timeout: timeout,
		Client: fetch.NewClient(fetch.ClientOptions{
			Timeout:   timeout,
			UserAgent: userAgent,
		}),
	}
}

func (s *RemoteSource) Name() string { return "remote" }

type remoteRecord struct {
	Date    string `json:"date"`
	Label   string `json:"label"`
	Summary string `json:"summary"`
}

func (s *RemoteSource) Observances(ctx context.Context, year, month int) ([]Observance, error) {
	if s.URL == "" {
		return nil, fmt.Errorf("remote calendar source not configured")
	}
	u, err := url.Parse(s.URL)
	if err != nil {
		return nil, fmt.Errorf("invalid calendar source url: %w", err)
	}
	q := u.Query()
	q.Set("year", strconv.Itoa(year))
	q.Set("month", strconv.Itoa(month))
	u.RawQuery = q.Encode()

	if s.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.Timeout)
		defer cancel()
	}

	body, err := s.Client.GetBody(ctx, u.String(), map[string]string{"Accept": "application/json"})
	if err != nil {
		return nil, fmt.Errorf("fetch calendar feed: %w", err)
	}

	var records []remoteRecord
	if err := json.Unmarshal(body, &records); err != nil {
		return nil, fmt.Errorf("decode calendar feed: %w", err)
	}

	out := make([]Observance, 0, len(records))
	for i, rec := range records {
		date, err := parseFeedDate(rec.Date)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		label := strings.TrimSpace(rec.Label)
		if label == "" {
			label = strings.TrimSpace(rec.Summary)
		}
		if label == "" {
			label = "วันพระ"
		}
		out = append(out, Observance{Date: date, Label: label})
	}
	return out, nil
}

// parseFeedDate accepts a bare date or a timestamp starting with one.
func parseFeedDate(s string) (string, error) {
	s = strings.TrimSpace(s)
	if len(s) < len(DateLayout) {
		return "", fmt.Errorf("bad date %q", s)
	}
	d, err := time.Parse(DateLayout, s[:len(DateLayout)])
	if err != nil {
		return "", fmt.Errorf("bad date %q: %w", s, err)
	}
	return d.Format(DateLayout), nil
}
