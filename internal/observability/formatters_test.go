package observability

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonathan/careerpilot/internal/types"
)

func TestPrintMatches(t *testing.T) {
	var buf bytes.Buffer
	printer := NewPrinter(&buf)

	printer.PrintMatches([]types.MatchResult{
		{Title: "Go Developer", Score: 90, KeywordsMatched: []string{"Go", "Postgres"}},
		{Title: "Backend Engineer", Score: 72},
	})

	out := buf.String()
	assert.Contains(t, out, "TOP JOB MATCHES")
	assert.Contains(t, out, "Go Developer")
	assert.Contains(t, out, "Score: 90")
	assert.Contains(t, out, "Go, Postgres")
}

func TestPrintMatches_Empty(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintMatches(nil)
	assert.Empty(t, buf.String())
}

func TestPrintMatches_TruncatesList(t *testing.T) {
	var buf bytes.Buffer
	matches := make([]types.MatchResult, 8)
	for i := range matches {
		matches[i] = types.MatchResult{Title: "Job", Score: 60 + i}
	}

	NewPrinter(&buf).PrintMatches(matches)
	assert.Contains(t, buf.String(), "... and 3 more matches")
}

func TestPrintListings(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintListings([]types.JobListing{
		{Title: "a", Source: "WeWorkRemotely"},
		{Title: "b", Source: "WeWorkRemotely"},
		{Title: "c", Source: "RemoteOK"},
	})

	out := buf.String()
	assert.Contains(t, out, "Total listings: 3")
	assert.Contains(t, out, "WeWorkRemotely: 2")
	assert.Contains(t, out, "RemoteOK: 1")
}

func TestPrintArtifact(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintArtifact(types.GenerationArtifact{
		Kind:     types.KindResumeScore,
		Object:   map[string]any{"score": 82},
		Fallback: false,
	})

	out := buf.String()
	assert.Contains(t, out, "Resume Score")
	assert.Contains(t, out, "score")
	assert.NotContains(t, out, "Fallback")
}

func TestPrintArtifact_SortsObjectKeys(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintArtifact(types.GenerationArtifact{
		Kind:   types.KindResumeScore,
		Object: map[string]any{"weaknesses": []string{}, "score": 82, "strengths": []string{}},
	})

	assert.Contains(t, buf.String(), "score, strengths, weaknesses")
}

func TestPrintArtifact_Fallback(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintArtifact(types.GenerationArtifact{
		Kind:     types.KindPortfolioFromResume,
		Document: "<!DOCTYPE html>\n</html>",
		Fallback: true,
	})

	assert.Contains(t, buf.String(), "Fallback: yes")
}
