package types

// Question is a single interview question, optionally carrying the
// candidate's answer when submitted for scoring.
type Question struct {
	Text    string `json:"text"`
	Type    string `json:"type"`
	Context string `json:"context,omitempty"`
	Answer  string `json:"answer,omitempty"`
}

// QuestionFeedback is per-question feedback within an interview score
type QuestionFeedback struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
	Feedback string `json:"feedback"`
}

// InterviewScore is the expected shape of an interview scoring response
type InterviewScore struct {
	OverallScore      float64            `json:"overall_score"`
	Strengths         []string           `json:"strengths"`
	AreasToImprove    []string           `json:"areas_to_improve"`
	Recommendations   []string           `json:"recommendations"`
	QuestionsFeedback []QuestionFeedback `json:"questions_feedback"`
}
