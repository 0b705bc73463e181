package types

import "time"

// JobListing is a single job entry produced by a feed source. Listings are
// ephemeral: they live only for the duration of one matching request.
type JobListing struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Link        string    `json:"link"`
	Published   time.Time `json:"published,omitempty"`
	Source      string    `json:"source,omitempty"`
}

// MatchResult is one scored job kept by the matching pipeline. The link is
// annotated with a query flag marking it eligible for resume prefill.
type MatchResult struct {
	Title           string   `json:"title"`
	Link            string   `json:"link"`
	Score           int      `json:"score"`
	KeywordsMatched []string `json:"keywords_matched"`
}
