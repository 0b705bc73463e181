package feeds

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleRSS = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
  <channel>
    <title>Remote Python Jobs</title>
    <item>
      <title>Senior Python Developer</title>
      <link>https://jobs.example.com/1</link>
      <description>Django and AWS experience required.</description>
      <pubDate>Mon, 24 Aug 2026 10:00:00 +0000</pubDate>
    </item>
    <item>
      <title>Backend Engineer</title>
      <link>https://jobs.example.com/2</link>
      <description>Go or Python backend role.</description>
      <pubDate>Tue, 25 Aug 2026 09:30:00 GMT</pubDate>
    </item>
    <item>
      <title></title>
      <link>https://jobs.example.com/3</link>
      <description>Listing without a title is skipped.</description>
    </item>
    <item>
      <title>Data Engineer</title>
      <link>https://jobs.example.com/4</link>
      <description>Pipelines.</description>
    </item>
  </channel>
</rss>`

func TestRSSSource_Fetch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/rss+xml")
		_, _ = w.Write([]byte(sampleRSS))
	}))
	defer server.Close()

	source := NewRSSSource("WeWorkRemotely", server.URL)
	listings, err := source.Fetch(context.Background(), 0)
	require.NoError(t, err)

	require.Len(t, listings, 3)
	assert.Equal(t, "Senior Python Developer", listings[0].Title)
	assert.Equal(t, "https://jobs.example.com/1", listings[0].Link)
	assert.Equal(t, "WeWorkRemotely", listings[0].Source)
	assert.Equal(t, time.Date(2026, 8, 24, 10, 0, 0, 0, time.UTC), listings[0].Published)
	assert.Equal(t, "Backend Engineer", listings[1].Title)
	assert.True(t, listings[2].Published.IsZero())
}

func TestRSSSource_FetchLimit(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(sampleRSS))
	}))
	defer server.Close()

	source := NewRSSSource("test", server.URL)
	listings, err := source.Fetch(context.Background(), 2)
	require.NoError(t, err)

	// Limit applies to feed items before the empty-title filter
	require.Len(t, listings, 2)
	assert.Equal(t, "Senior Python Developer", listings[0].Title)
}

func TestRSSSource_FetchErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	source := NewRSSSource("down", server.URL)
	_, err := source.Fetch(context.Background(), 0)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "503")
}

func TestRSSSource_FetchMalformedXML(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<rss><channel><item>"))
	}))
	defer server.Close()

	source := NewRSSSource("broken", server.URL)
	_, err := source.Fetch(context.Background(), 0)
	require.Error(t, err)
}

func TestParsePubDate(t *testing.T) {
	assert.True(t, parsePubDate("").IsZero())
	assert.True(t, parsePubDate("not a date").IsZero())
	assert.False(t, parsePubDate("Mon, 24 Aug 2026 10:00:00 +0000").IsZero())
	assert.False(t, parsePubDate("Mon, 24 Aug 2026 10:00:00 GMT").IsZero())
}
