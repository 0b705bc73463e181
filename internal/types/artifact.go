package types

import "encoding/json"

// GenerationKind enumerates the artifact types produced by the generation
// pipeline. The string values double as the analytics generation_type column.
type GenerationKind string

// Generation kinds recorded by the analytics layer
const (
	KindCoverLetter                GenerationKind = "Cover Letter"
	KindInterviewQuestions         GenerationKind = "Interview Questions"
	KindInterviewAnswers           GenerationKind = "Interview Answers"
	KindPortfolioFromResume        GenerationKind = "Portfolio From Resume"
	KindPortfolioFromQnA           GenerationKind = "Portfolio From QNA"
	KindResume                     GenerationKind = "Resume"
	KindResumeScore                GenerationKind = "Resume Score"
	KindResumeKeywordGap           GenerationKind = "Resume Keyword Gap"
	KindResumeAutoRewrite          GenerationKind = "Resume Auto Rewrite"
	KindResumeSkillsGap            GenerationKind = "Resume Skills Gap"
	KindResumeCareerRecommendation GenerationKind = "Resume Career Recommendation"
)

// Valid reports whether k is one of the known generation kinds
func (k GenerationKind) Valid() bool {
	switch k {
	case KindCoverLetter, KindInterviewQuestions, KindInterviewAnswers,
		KindPortfolioFromResume, KindPortfolioFromQnA, KindResume,
		KindResumeScore, KindResumeKeywordGap, KindResumeAutoRewrite,
		KindResumeSkillsGap, KindResumeCareerRecommendation:
		return true
	}
	return false
}

// GenerationArtifact is the typed result of a single generation call.
// It is created once per request, never mutated afterwards, and handed to the
// analytics recorder for storage.
type GenerationArtifact struct {
	Kind GenerationKind `json:"kind"`

	// Document carries the payload for document-shaped artifacts (cover
	// letter, portfolio HTML, LaTeX resume). Empty for JSON artifacts.
	Document string `json:"document,omitempty"`

	// Object carries the payload for JSON-shaped artifacts. Nil for
	// document artifacts.
	Object map[string]any `json:"object,omitempty"`

	// Questions carries the payload for the interview question list
	Questions []Question `json:"questions,omitempty"`

	// Fallback is set when the generated text failed to parse per its
	// expected schema and a degraded-but-usable payload was substituted.
	Fallback bool `json:"fallback,omitempty"`
}

// Content renders the artifact payload as a string for analytics storage.
func (a GenerationArtifact) Content() string {
	if a.Object != nil {
		data, err := json.Marshal(a.Object)
		if err == nil {
			return string(data)
		}
	}
	if a.Questions != nil {
		data, err := json.Marshal(a.Questions)
		if err == nil {
			return string(data)
		}
	}
	return a.Document
}

// ResumeScoreResult is the expected shape of a resume-vs-job-description score
type ResumeScoreResult struct {
	Score      int      `json:"score"`
	Strengths  []string `json:"strengths"`
	Weaknesses []string `json:"weaknesses"`
}

// KeywordGapResult is the expected shape of a keyword gap analysis
type KeywordGapResult struct {
	MissingKeywords []string `json:"missing_keywords"`
	PresentKeywords []string `json:"present_keywords"`
	Suggestions     []string `json:"suggestions"`
}

// RewriteResult is the expected shape of an ATS-oriented resume rewrite
type RewriteResult struct {
	RewrittenResume string   `json:"rewritten_resume"`
	ChangesMade     []string `json:"changes_made"`
}

// SkillsGapResult is the expected shape of a skills gap analysis. The
// market-statistic fields are opaque model output with no grounding data
// source; they are passed through, never computed.
type SkillsGapResult struct {
	MissingSkills    []string `json:"missing_skills"`
	MatchingSkills   []string `json:"matching_skills"`
	AverageMatchPct  int      `json:"average_match_percent"`
	LearningPriority []string `json:"learning_priority"`
}

// CareerRecommendation is the expected shape of career advice output
type CareerRecommendation struct {
	RecommendedRoles []string `json:"recommended_roles"`
	Reasoning        []string `json:"reasoning"`
	NextSteps        []string `json:"next_steps"`
}

// MatchScore is the expected shape of a job-match scoring response
type MatchScore struct {
	Score           int      `json:"score"`
	KeywordsMatched []string `json:"keywords_matched"`
}
