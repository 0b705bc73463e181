// Package feeds supplies job listings from external feed sources. Sources
// are enumerated outside the matching core; this package defines the
// collaborator contract and the RSS implementation.
package feeds

import (
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/jonathan/careerpilot/internal/types"
)

// maxFeedBody bounds how much of a feed response is read
const maxFeedBody = 1 << 20

// Source yields job listings for the matching pipeline. Fetch returns at
// most limit listings in feed order.
type Source interface {
	Name() string
	Fetch(ctx context.Context, limit int) ([]types.JobListing, error)
}

// RSSSource fetches listings from an RSS feed URL
type RSSSource struct {
	name   string
	url    string
	httpDo *http.Client
}

// NewRSSSource creates an RSS feed source
func NewRSSSource(name, url string) *RSSSource {
	return &RSSSource{
		name:   name,
		url:    url,
		httpDo: &http.Client{Timeout: 15 * time.Second},
	}
}

// Name returns the source's display name
func (s *RSSSource) Name() string {
	return s.name
}

// rss feed document types
type rssFeed struct {
	XMLName xml.Name   `xml:"rss"`
	Channel rssChannel `xml:"channel"`
}

type rssChannel struct {
	Items []rssItem `xml:"item"`
}

type rssItem struct {
	Title       string `xml:"title"`
	Link        string `xml:"link"`
	Description string `xml:"description"`
	PubDate     string `xml:"pubDate"`
}

// Fetch downloads and parses the feed, returning up to limit listings in
// feed order.
func (s *RSSSource) Fetch(ctx context.Context, limit int) ([]types.JobListing, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build feed request for %s: %w", s.name, err)
	}
	req.Header.Set("Accept", "application/xml, application/rss+xml")

	resp, err := s.httpDo.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch feed %s: %w", s.name, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("feed %s returned status %d", s.name, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxFeedBody))
	if err != nil {
		return nil, fmt.Errorf("failed to read feed %s: %w", s.name, err)
	}

	return parseFeed(body, s.name, limit)
}

// parseFeed decodes RSS XML into job listings, applying the limit
func parseFeed(body []byte, sourceName string, limit int) ([]types.JobListing, error) {
	var feed rssFeed
	if err := xml.Unmarshal(body, &feed); err != nil {
		return nil, fmt.Errorf("failed to parse feed %s: %w", sourceName, err)
	}

	items := feed.Channel.Items
	if limit > 0 && len(items) > limit {
		items = items[:limit]
	}

	listings := make([]types.JobListing, 0, len(items))
	for _, item := range items {
		if item.Title == "" {
			continue
		}
		listings = append(listings, types.JobListing{
			Title:       item.Title,
			Description: item.Description,
			Link:        item.Link,
			Published:   parsePubDate(item.PubDate),
			Source:      sourceName,
		})
	}
	return listings, nil
}

// parsePubDate handles the two RFC 1123 variants RSS feeds use in practice
func parsePubDate(value string) time.Time {
	if value == "" {
		return time.Time{}
	}
	if t, err := time.Parse(time.RFC1123Z, value); err == nil {
		return t.UTC()
	}
	if t, err := time.Parse(time.RFC1123, value); err == nil {
		return t.UTC()
	}
	return time.Time{}
}
