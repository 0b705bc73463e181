package prompt

import "github.com/jonathan/careerpilot/internal/types"

// Shape describes the expected form of a generated artifact
type Shape int

// Artifact shapes
const (
	// ShapeDocument is free-form text bounded by start/end sentinels
	ShapeDocument Shape = iota
	// ShapeObject is a single JSON object with known top-level keys
	ShapeObject
	// ShapeArray is a JSON array of objects
	ShapeArray
	// ShapeText is plain text with no structural contract (cover letter)
	ShapeText
)

// Template is the schema descriptor for one artifact kind: the keys a JSON
// response must carry, or the sentinel tokens a document must be bounded by.
// The normalizer checks generated output against this descriptor without
// re-invoking the model.
type Template struct {
	Kind          types.GenerationKind
	Shape         Shape
	RequiredKeys  []string
	StartSentinel string
	EndSentinel   string
}

// Sentinel tokens for document-shaped artifacts
const (
	HTMLStart  = "<!DOCTYPE html>"
	HTMLEnd    = "</html>"
	LaTeXStart = `\documentclass`
	LaTeXEnd   = `\end{document}`
)

// registry maps each generation kind to its schema descriptor
var registry = map[types.GenerationKind]Template{
	types.KindCoverLetter: {
		Kind:  types.KindCoverLetter,
		Shape: ShapeText,
	},
	types.KindInterviewQuestions: {
		Kind:         types.KindInterviewQuestions,
		Shape:        ShapeArray,
		RequiredKeys: []string{"text", "type"},
	},
	types.KindInterviewAnswers: {
		Kind:         types.KindInterviewAnswers,
		Shape:        ShapeObject,
		RequiredKeys: []string{"overall_score", "strengths", "areas_to_improve", "recommendations", "questions_feedback"},
	},
	types.KindPortfolioFromResume: {
		Kind:          types.KindPortfolioFromResume,
		Shape:         ShapeDocument,
		StartSentinel: HTMLStart,
		EndSentinel:   HTMLEnd,
	},
	types.KindPortfolioFromQnA: {
		Kind:          types.KindPortfolioFromQnA,
		Shape:         ShapeDocument,
		StartSentinel: HTMLStart,
		EndSentinel:   HTMLEnd,
	},
	types.KindResume: {
		Kind:          types.KindResume,
		Shape:         ShapeDocument,
		StartSentinel: LaTeXStart,
		EndSentinel:   LaTeXEnd,
	},
	types.KindResumeScore: {
		Kind:         types.KindResumeScore,
		Shape:        ShapeObject,
		RequiredKeys: []string{"score", "strengths", "weaknesses"},
	},
	types.KindResumeKeywordGap: {
		Kind:         types.KindResumeKeywordGap,
		Shape:        ShapeObject,
		RequiredKeys: []string{"missing_keywords", "present_keywords", "suggestions"},
	},
	types.KindResumeAutoRewrite: {
		Kind:         types.KindResumeAutoRewrite,
		Shape:        ShapeObject,
		RequiredKeys: []string{"rewritten_resume", "changes_made"},
	},
	types.KindResumeSkillsGap: {
		Kind:         types.KindResumeSkillsGap,
		Shape:        ShapeObject,
		RequiredKeys: []string{"missing_skills", "matching_skills", "average_match_percent", "learning_priority"},
	},
	types.KindResumeCareerRecommendation: {
		Kind:         types.KindResumeCareerRecommendation,
		Shape:        ShapeObject,
		RequiredKeys: []string{"recommended_roles", "reasoning", "next_steps"},
	},
}

// matchTemplate is the descriptor for per-listing job match scoring; it is
// not a recorded generation kind, so it lives outside the registry map.
var matchTemplate = Template{
	Shape:        ShapeObject,
	RequiredKeys: []string{"score", "keywords_matched"},
}

// ForKind returns the schema descriptor for a generation kind
func ForKind(kind types.GenerationKind) (Template, bool) {
	tmpl, ok := registry[kind]
	return tmpl, ok
}

// JobMatchTemplate returns the descriptor used for job match scoring
func JobMatchTemplate() Template {
	return matchTemplate
}
