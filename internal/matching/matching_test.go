package matching

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/careerpilot/internal/feeds"
	"github.com/jonathan/careerpilot/internal/llm"
	"github.com/jonathan/careerpilot/internal/types"
)

func sources(ss ...feeds.Source) []feeds.Source { return ss }

// fakeSource serves a fixed set of listings or a fixed error
type fakeSource struct {
	name     string
	listings []types.JobListing
	err      error
}

func (f *fakeSource) Name() string { return f.name }

func (f *fakeSource) Fetch(_ context.Context, limit int) ([]types.JobListing, error) {
	if f.err != nil {
		return nil, f.err
	}
	listings := f.listings
	if limit > 0 && len(listings) > limit {
		listings = listings[:limit]
	}
	return listings, nil
}

// scriptedClient returns a canned response per listing title found in the
// prompt, counting calls.
type scriptedClient struct {
	mu        sync.Mutex
	calls     int
	responses map[string]string
	err       error
}

func (c *scriptedClient) Generate(_ context.Context, prompt string, _ llm.Options) (string, error) {
	c.mu.Lock()
	c.calls++
	c.mu.Unlock()
	if c.err != nil {
		return "", c.err
	}
	for title, resp := range c.responses {
		if strings.Contains(prompt, title) {
			return resp, nil
		}
	}
	return `{"score": 0, "keywords_matched": []}`, nil
}

func (c *scriptedClient) callCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.calls
}

// cancellingClient cancels the run on its first call, like a caller
// abandoning the request mid-flight
type cancellingClient struct {
	cancel context.CancelFunc
}

func (c *cancellingClient) Generate(context.Context, string, llm.Options) (string, error) {
	c.cancel()
	return "", context.Canceled
}

func makeListings(source string, count int) []types.JobListing {
	listings := make([]types.JobListing, count)
	for i := range listings {
		listings[i] = types.JobListing{
			Title:       fmt.Sprintf("%s job %d", source, i),
			Description: "backend role",
			Link:        fmt.Sprintf("https://%s.example.com/%d", source, i),
			Source:      source,
		}
	}
	return listings
}

func scoreResponse(score int, keywords ...string) string {
	quoted := make([]string, len(keywords))
	for i, k := range keywords {
		quoted[i] = fmt.Sprintf("%q", k)
	}
	return fmt.Sprintf(`{"score": %d, "keywords_matched": [%s]}`, score, strings.Join(quoted, ", "))
}

func TestMatch_FiltersAndRanks(t *testing.T) {
	client := &scriptedClient{responses: map[string]string{
		"a job 0": scoreResponse(90, "Python"),
		"a job 1": scoreResponse(50),
		"a job 2": scoreResponse(72, "Go", "AWS"),
		"a job 3": scoreResponse(30),
	}}
	scorer := NewScorer(client, sources(&fakeSource{name: "a", listings: makeListings("a", 4)}))

	results, err := scorer.Match(context.Background(), "resume")
	require.NoError(t, err)

	// Score 50 does not exceed the threshold
	require.Len(t, results, 2)
	assert.Equal(t, "a job 0", results[0].Title)
	assert.Equal(t, 90, results[0].Score)
	assert.Equal(t, []string{"Python"}, results[0].KeywordsMatched)
	assert.Equal(t, "a job 2", results[1].Title)
}

func TestMatch_CapsScoringCalls(t *testing.T) {
	client := &scriptedClient{responses: map[string]string{}}
	scorer := NewScorer(client, sources(
		&fakeSource{name: "a", listings: makeListings("a", 8)},
		&fakeSource{name: "b", listings: makeListings("b", 8)},
		&fakeSource{name: "c", listings: makeListings("c", 8)},
	))

	_, err := scorer.Match(context.Background(), "resume")
	require.NoError(t, err)

	// 5 per source, 10 total
	assert.Equal(t, MaxTotalJobs, client.callCount())
}

func TestMatch_TopKAndStableTies(t *testing.T) {
	responses := map[string]string{}
	for i := 0; i < 5; i++ {
		responses[fmt.Sprintf("a job %d", i)] = scoreResponse(80)
	}
	responses["b job 0"] = scoreResponse(95)
	responses["b job 1"] = scoreResponse(60)
	client := &scriptedClient{responses: responses}
	scorer := NewScorer(client, sources(
		&fakeSource{name: "a", listings: makeListings("a", 5)},
		&fakeSource{name: "b", listings: makeListings("b", 2)},
	))

	results, err := scorer.Match(context.Background(), "resume")
	require.NoError(t, err)

	require.Len(t, results, TopK)
	assert.Equal(t, "b job 0", results[0].Title)
	// Equal scores keep feed order
	for i := 0; i < 4; i++ {
		assert.Equal(t, fmt.Sprintf("a job %d", i), results[i+1].Title)
	}
}

func TestMatch_EmptyFeedsSkipsScoring(t *testing.T) {
	client := &scriptedClient{}
	scorer := NewScorer(client, sources(&fakeSource{name: "empty"}))

	results, err := scorer.Match(context.Background(), "resume")
	require.NoError(t, err)

	assert.Empty(t, results)
	assert.Equal(t, 0, client.callCount())
}

func TestMatch_SourceFailureNonFatal(t *testing.T) {
	client := &scriptedClient{responses: map[string]string{
		"ok job 0": scoreResponse(85),
	}}
	scorer := NewScorer(client, sources(
		&fakeSource{name: "down", err: errors.New("connection refused")},
		&fakeSource{name: "ok", listings: makeListings("ok", 1)},
	))

	results, err := scorer.Match(context.Background(), "resume")
	require.NoError(t, err)

	require.Len(t, results, 1)
	assert.Equal(t, "ok job 0", results[0].Title)
}

func TestMatch_ScoringFailureCountsAsZero(t *testing.T) {
	client := &scriptedClient{err: errors.New("backend unavailable")}
	scorer := NewScorer(client, sources(&fakeSource{name: "a", listings: makeListings("a", 3)}))

	results, err := scorer.Match(context.Background(), "resume")
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestMatch_UnusableResponseCountsAsZero(t *testing.T) {
	client := &scriptedClient{responses: map[string]string{
		"a job 0": "I cannot evaluate this posting.",
		"a job 1": scoreResponse(75),
	}}
	scorer := NewScorer(client, sources(&fakeSource{name: "a", listings: makeListings("a", 2)}))

	results, err := scorer.Match(context.Background(), "resume")
	require.NoError(t, err)

	require.Len(t, results, 1)
	assert.Equal(t, "a job 1", results[0].Title)
}

func TestMatch_CancelledMidRunReturnsError(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	client := &cancellingClient{cancel: cancel}
	scorer := NewScorer(client, sources(&fakeSource{name: "a", listings: makeListings("a", 2)}))

	results, err := scorer.Match(ctx, "resume")
	require.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, results)
}

func TestMatchListings_CancelledBeforeScoring(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	client := &scriptedClient{}
	scorer := NewScorer(client, nil)

	_, err := scorer.MatchListings(ctx, "resume", makeListings("a", 1))
	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 0, client.callCount())
}

func TestMatch_AnnotatesLinks(t *testing.T) {
	client := &scriptedClient{responses: map[string]string{
		"a job 0": scoreResponse(88),
	}}
	scorer := NewScorer(client, sources(&fakeSource{name: "a", listings: makeListings("a", 1)}))

	results, err := scorer.Match(context.Background(), "resume")
	require.NoError(t, err)

	require.Len(t, results, 1)
	assert.Equal(t, "https://a.example.com/0?resume_prefilled=true", results[0].Link)
}

func TestAnnotateLink(t *testing.T) {
	assert.Equal(t, "https://x.com/1?resume_prefilled=true", annotateLink("https://x.com/1"))
	assert.Equal(t, "https://x.com/1?ref=rss&resume_prefilled=true", annotateLink("https://x.com/1?ref=rss"))
	assert.Equal(t, "", annotateLink(""))
}
