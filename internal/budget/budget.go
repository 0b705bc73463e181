// Package budget enforces deterministic size bounds on free text and itemized
// lists before they are embedded into a prompt, so generated documents fit a
// fixed length budget without relying on the model for layout discipline.
package budget

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// Policy knobs for the resume pipeline. A one-page resume tolerates roughly
// these ceilings before overflowing.
const (
	MaxSummaryChars     = 1500
	MinSummarySentences = 4
	MaxSummarySentences = 6

	MaxTechnicalSkills = 15
	MaxSoftSkills      = 12

	MaxProjects       = 4
	MaxProjectBullets = 4

	MaxExperience        = 4
	MaxExperienceBullets = 5

	MaxEducation = 3

	MaxBulletChars = 220
)

// sentenceEnd matches sentence-ending punctuation followed by whitespace
var sentenceEnd = regexp.MustCompile(`[.!?]+\s+`)

// LimitItems returns the first max items in input order. If minCount is given
// and the input holds fewer than minCount items, the input is returned as-is:
// items are never fabricated and never reordered.
func LimitItems[T any](items []T, maxCount int, minCount ...int) []T {
	if maxCount < 0 {
		maxCount = 0
	}
	if len(minCount) > 0 && len(items) < minCount[0] {
		return items
	}
	if len(items) <= maxCount {
		return items
	}
	return items[:maxCount]
}

// LimitBullets drops blank lines, truncates each remaining line to maxChars
// (trimming trailing whitespace left by the cut), and stops once maxLines
// lines are collected. Input order is preserved.
func LimitBullets(lines []string, maxLines, maxChars int) []string {
	out := make([]string, 0, maxLines)
	for _, line := range lines {
		if len(out) >= maxLines {
			break
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if maxChars > 0 && len(line) > maxChars {
			line = strings.TrimRight(truncate(line, maxChars), " \t")
		}
		out = append(out, line)
	}
	return out
}

// SplitSentences splits text on sentence-ending punctuation followed by
// whitespace, or on blank lines. Empty fragments are discarded after trimming.
func SplitSentences(text string) []string {
	var sentences []string
	for _, block := range regexp.MustCompile(`\n\s*\n`).Split(text, -1) {
		for _, s := range sentenceEnd.Split(block, -1) {
			s = strings.TrimSpace(s)
			if s != "" {
				sentences = append(sentences, s)
			}
		}
	}
	return sentences
}

// ClampSummary reshapes a free-text summary into the 4-6 sentence band under
// the 1500-character cap. Too few sentences are padded by repeating the first
// sentence; too many are truncated. The result is deterministic.
func ClampSummary(text string) string {
	text = strings.TrimSpace(text)
	if text == "" {
		return ""
	}
	if len(text) > MaxSummaryChars {
		text = strings.TrimSpace(truncate(text, MaxSummaryChars))
	}

	sentences := SplitSentences(text)
	if len(sentences) == 0 {
		return ""
	}
	if len(sentences) > MaxSummarySentences {
		sentences = sentences[:MaxSummarySentences]
	}
	for len(sentences) < MinSummarySentences {
		sentences = append(sentences, sentences[0])
	}

	for i, s := range sentences {
		sentences[i] = strings.TrimRight(s, ".!? ")
	}
	joined := strings.Join(sentences, ". ") + "."
	if len(joined) > MaxSummaryChars {
		joined = strings.TrimSpace(truncate(joined, MaxSummaryChars))
	}
	return joined
}

// truncate cuts s to at most max bytes, backing up so a multibyte rune is
// never split.
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	for max > 0 && !utf8.RuneStart(s[max]) {
		max--
	}
	return s[:max]
}
