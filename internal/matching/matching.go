// Package matching scores feed job listings against a resume and picks the
// best matches for an alert.
package matching

import (
	"context"
	"log"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/jonathan/careerpilot/internal/feeds"
	"github.com/jonathan/careerpilot/internal/llm"
	"github.com/jonathan/careerpilot/internal/normalize"
	"github.com/jonathan/careerpilot/internal/prompt"
	"github.com/jonathan/careerpilot/internal/types"
)

const (
	// MaxJobsPerSource caps how many listings are taken from each feed
	MaxJobsPerSource = 5
	// MaxTotalJobs caps how many listings are scored per run
	MaxTotalJobs = 10
	// ScoreThreshold is the minimum score a listing must exceed to qualify
	ScoreThreshold = 50
	// TopK caps how many matches an alert carries
	TopK = 5
	// MaxConcurrent bounds in-flight scoring calls
	MaxConcurrent = 3
)

// prefilledParam marks alert links so the frontend can pre-load the resume
const prefilledParam = "resume_prefilled=true"

// Scorer collects listings from feed sources, scores each against a resume
// and returns the qualifying matches ranked by score.
type Scorer struct {
	client  llm.Client
	sources []feeds.Source
}

// NewScorer creates a scorer over the given feed sources
func NewScorer(client llm.Client, sources []feeds.Source) *Scorer {
	return &Scorer{client: client, sources: sources}
}

// Match fetches listings, scores them concurrently and returns at most TopK
// matches with score above ScoreThreshold, sorted by score descending. Source
// failures are logged and skipped; scoring failures count as score zero.
func (s *Scorer) Match(ctx context.Context, resumeText string) ([]types.MatchResult, error) {
	return s.MatchListings(ctx, resumeText, s.Collect(ctx))
}

// MatchListings scores the given listings against the resume. Context
// cancellation is reported as an error so callers can tell an aborted run
// apart from an empty result.
func (s *Scorer) MatchListings(ctx context.Context, resumeText string, listings []types.JobListing) ([]types.MatchResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(listings) == 0 {
		return nil, nil
	}

	scores := make([]types.MatchScore, len(listings))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(MaxConcurrent)
	for i, listing := range listings {
		g.Go(func() error {
			scores[i] = s.scoreListing(gctx, resumeText, listing)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	results := make([]types.MatchResult, 0, len(listings))
	for i, listing := range listings {
		if scores[i].Score <= ScoreThreshold {
			continue
		}
		results = append(results, types.MatchResult{
			Title:           listing.Title,
			Link:            annotateLink(listing.Link),
			Score:           scores[i].Score,
			KeywordsMatched: scores[i].KeywordsMatched,
		})
	}

	// Stable sort keeps feed order among equal scores
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
	if len(results) > TopK {
		results = results[:TopK]
	}
	return results, nil
}

// Collect gathers listings from every source, applying the per-source and
// total caps in source order. Source failures are logged and skipped.
func (s *Scorer) Collect(ctx context.Context) []types.JobListing {
	var listings []types.JobListing
	for _, source := range s.sources {
		fetched, err := source.Fetch(ctx, MaxJobsPerSource)
		if err != nil {
			log.Printf("[MATCH] Source %s failed: %v", source.Name(), err)
			continue
		}
		listings = append(listings, fetched...)
		if len(listings) >= MaxTotalJobs {
			listings = listings[:MaxTotalJobs]
			break
		}
	}
	return listings
}

// scoreListing asks the model for a match score. Any failure, transport or
// schema, yields a zero score so one bad listing cannot sink the run.
func (s *Scorer) scoreListing(ctx context.Context, resumeText string, listing types.JobListing) types.MatchScore {
	p := prompt.JobMatch(resumeText, listing.Title+"\n"+listing.Description)

	raw, err := s.client.Generate(ctx, p, llm.Options{})
	if err != nil {
		log.Printf("[MATCH] Scoring %q failed: %v", listing.Title, err)
		return types.MatchScore{}
	}

	result := normalize.Object(raw, prompt.JobMatchTemplate())
	if result.Fallback {
		log.Printf("[MATCH] Unusable score response for %q", listing.Title)
		return types.MatchScore{}
	}

	score, err := normalize.Decode[types.MatchScore](result.Object)
	if err != nil {
		return types.MatchScore{}
	}
	return score
}

// annotateLink appends the resume-prefill marker to a listing link
func annotateLink(link string) string {
	if link == "" {
		return link
	}
	if strings.Contains(link, "?") {
		return link + "&" + prefilledParam
	}
	return link + "?" + prefilledParam
}
