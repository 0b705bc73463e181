// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/jonathan/careerpilot/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		// Truncate long lines
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintListings outputs a summary of the listings collected from feeds.
func (p *Printer) PrintListings(listings []types.JobListing) {
	if len(listings) == 0 {
		return
	}

	perSource := make(map[string]int)
	order := make([]string, 0)
	for _, listing := range listings {
		if _, seen := perSource[listing.Source]; !seen {
			order = append(order, listing.Source)
		}
		perSource[listing.Source]++
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Total listings: %d\n\n", len(listings)))
	for _, source := range order {
		sb.WriteString(fmt.Sprintf("  %s: %d\n", source, perSource[source]))
	}

	p.printBox("COLLECTED LISTINGS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintMatches outputs the top job matches with scores and matched keywords.
func (p *Printer) PrintMatches(matches []types.MatchResult) {
	if len(matches) == 0 {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Qualifying matches: %d\n\n", len(matches)))

	count := min(len(matches), maxItemsToShow)
	for i := 0; i < count; i++ {
		match := matches[i]
		sb.WriteString(fmt.Sprintf("#%d  %s\n", i+1, match.Title))
		sb.WriteString(fmt.Sprintf("    Score: %d\n", match.Score))
		if len(match.KeywordsMatched) > 0 {
			keywords := strings.Join(match.KeywordsMatched, ", ")
			if len(keywords) > 40 {
				keywords = keywords[:37] + "..."
			}
			sb.WriteString(fmt.Sprintf("    Keywords: %s\n", keywords))
		}
		if i < count-1 {
			sb.WriteString("\n")
		}
	}

	if len(matches) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("\n... and %d more matches", len(matches)-maxItemsToShow))
	}

	p.printBox("TOP JOB MATCHES", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintArtifact outputs a short summary of a generated artifact.
func (p *Printer) PrintArtifact(artifact types.GenerationArtifact) {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Kind:     %s\n", artifact.Kind))
	if artifact.Fallback {
		sb.WriteString("Fallback: yes\n")
	}

	switch {
	case artifact.Document != "":
		sb.WriteString(fmt.Sprintf("Document: %d chars\n", len(artifact.Document)))
	case artifact.Questions != nil:
		sb.WriteString(fmt.Sprintf("Questions: %d\n", len(artifact.Questions)))
	case artifact.Object != nil:
		keys := make([]string, 0, len(artifact.Object))
		for key := range artifact.Object {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		sb.WriteString(fmt.Sprintf("Keys:     %s\n", strings.Join(keys, ", ")))
	}

	p.printBox("GENERATED ARTIFACT", strings.TrimSuffix(sb.String(), "\n"))
}
