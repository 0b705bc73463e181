package server

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"github.com/jonathan/careerpilot/internal/server/middleware"
	"github.com/jonathan/careerpilot/internal/types"
)

// generationRequest is the JSON body shared by the generation endpoints.
// resume_text overrides the stored resume when present.
type generationRequest struct {
	ResumeText     string              `json:"resume_text,omitempty"`
	JobDescription string              `json:"job_description,omitempty"`
	Tone           string              `json:"tone,omitempty"`
	QuestionType   string              `json:"question_type,omitempty"`
	Questions      []types.Question    `json:"questions,omitempty"`
	Profile        types.ResumeProfile `json:"profile,omitempty"`
}

// requestContext decodes the body and resolves the caller and resume text
func (s *Server) requestContext(w http.ResponseWriter, r *http.Request, needResume bool) (uuid.UUID, generationRequest, bool) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return uuid.Nil, generationRequest{}, false
	}

	var req generationRequest
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			s.errorResponse(w, http.StatusBadRequest, "invalid JSON body")
			return uuid.Nil, generationRequest{}, false
		}
	}

	if needResume && req.ResumeText == "" {
		text, err := s.resumes.Text(userID)
		if err != nil {
			s.writeError(w, err)
			return uuid.Nil, generationRequest{}, false
		}
		req.ResumeText = text
	}

	return userID, req, true
}

// handleResumeUpload stores the caller's resume file
func (s *Server) handleResumeUpload(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	if err := r.ParseMultipartForm(maxResumeUpload); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid multipart form")
		return
	}
	file, header, err := r.FormFile("resume")
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "missing 'resume' file field")
		return
	}
	defer func() { _ = file.Close() }()

	if err := s.resumes.Save(userID, header.Filename, file); err != nil {
		s.writeError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusCreated, map[string]string{"filename": header.Filename}, "Resume uploaded")
}

// handleCoverLetter generates a cover letter
func (s *Server) handleCoverLetter(w http.ResponseWriter, r *http.Request) {
	userID, req, ok := s.requestContext(w, r, true)
	if !ok {
		return
	}

	artifact, err := s.generator.CoverLetter(r.Context(), userID, req.ResumeText, req.JobDescription, req.Tone)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{"cover_letter": artifact.Document}, "Cover letter generated")
}

// handleInterviewQuestions generates interview questions
func (s *Server) handleInterviewQuestions(w http.ResponseWriter, r *http.Request) {
	userID, req, ok := s.requestContext(w, r, true)
	if !ok {
		return
	}

	artifact, err := s.generator.InterviewQuestions(r.Context(), userID, req.ResumeText, req.JobDescription, req.QuestionType)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{
		"questions": artifact.Questions,
		"fallback":  artifact.Fallback,
	}, "Interview questions generated")
}

// handleInterviewAnswers scores answered interview questions
func (s *Server) handleInterviewAnswers(w http.ResponseWriter, r *http.Request) {
	userID, req, ok := s.requestContext(w, r, true)
	if !ok {
		return
	}

	artifact, err := s.generator.InterviewAnswers(r.Context(), userID, req.ResumeText, req.JobDescription, req.Questions)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.objectResponse(w, artifact, "Interview answers scored")
}

// handlePortfolioFromResume generates a portfolio site from the resume
func (s *Server) handlePortfolioFromResume(w http.ResponseWriter, r *http.Request) {
	userID, req, ok := s.requestContext(w, r, true)
	if !ok {
		return
	}

	artifact, err := s.generator.PortfolioFromResume(r.Context(), userID, req.ResumeText)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{
		"portfolio": artifact.Document,
		"fallback":  artifact.Fallback,
	}, "Portfolio generated")
}

// handlePortfolioFromQnA generates a portfolio site from a profile
func (s *Server) handlePortfolioFromQnA(w http.ResponseWriter, r *http.Request) {
	userID, req, ok := s.requestContext(w, r, false)
	if !ok {
		return
	}

	artifact, err := s.generator.PortfolioFromQnA(r.Context(), userID, req.Profile)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{
		"portfolio": artifact.Document,
		"fallback":  artifact.Fallback,
	}, "Portfolio generated")
}

// handleResumeGenerate generates a LaTeX resume from a profile
func (s *Server) handleResumeGenerate(w http.ResponseWriter, r *http.Request) {
	userID, req, ok := s.requestContext(w, r, false)
	if !ok {
		return
	}

	artifact, err := s.generator.ResumeLaTeX(r.Context(), userID, req.Profile)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{
		"resume_latex": artifact.Document,
		"fallback":     artifact.Fallback,
	}, "Resume generated")
}

// handleResumeScore scores the resume against a job description
func (s *Server) handleResumeScore(w http.ResponseWriter, r *http.Request) {
	userID, req, ok := s.requestContext(w, r, true)
	if !ok {
		return
	}

	artifact, err := s.generator.ResumeScore(r.Context(), userID, req.ResumeText, req.JobDescription)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.objectResponse(w, artifact, "Resume scored")
}

// handleKeywordGap reports job-description keywords missing from the resume
func (s *Server) handleKeywordGap(w http.ResponseWriter, r *http.Request) {
	userID, req, ok := s.requestContext(w, r, true)
	if !ok {
		return
	}

	artifact, err := s.generator.KeywordGap(r.Context(), userID, req.ResumeText, req.JobDescription)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.objectResponse(w, artifact, "Keyword gap analyzed")
}

// handleAutoRewrite rewrites the resume for a job description
func (s *Server) handleAutoRewrite(w http.ResponseWriter, r *http.Request) {
	userID, req, ok := s.requestContext(w, r, true)
	if !ok {
		return
	}

	artifact, err := s.generator.AutoRewrite(r.Context(), userID, req.ResumeText, req.JobDescription, req.Tone)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.objectResponse(w, artifact, "Resume rewritten")
}

// handleSkillsGap analyzes the skills gap for a job description
func (s *Server) handleSkillsGap(w http.ResponseWriter, r *http.Request) {
	userID, req, ok := s.requestContext(w, r, true)
	if !ok {
		return
	}

	artifact, err := s.generator.SkillsGap(r.Context(), userID, req.ResumeText, req.JobDescription)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.objectResponse(w, artifact, "Skills gap analyzed")
}

// handleCareerAdvice recommends roles and next steps
func (s *Server) handleCareerAdvice(w http.ResponseWriter, r *http.Request) {
	userID, req, ok := s.requestContext(w, r, true)
	if !ok {
		return
	}

	artifact, err := s.generator.CareerRecommendation(r.Context(), userID, req.ResumeText, req.JobDescription)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.objectResponse(w, artifact, "Career recommendation generated")
}

// handleJobAlerts matches the resume against current feed listings
func (s *Server) handleJobAlerts(w http.ResponseWriter, r *http.Request) {
	_, req, ok := s.requestContext(w, r, true)
	if !ok {
		return
	}

	matches, err := s.scorer.Match(r.Context(), req.ResumeText)
	if err != nil {
		s.writeError(w, err)
		return
	}
	if matches == nil {
		matches = []types.MatchResult{}
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{"matches": matches}, "Job matches retrieved")
}

// handleRecentGenerations lists the caller's generation history
func (s *Server) handleRecentGenerations(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	if s.history == nil {
		s.errorResponse(w, http.StatusServiceUnavailable, "analytics storage not configured")
		return
	}

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	records, err := s.history.ListRecent(r.Context(), userID, limit, offset)
	if err != nil {
		s.writeError(w, err)
		return
	}

	items := make([]map[string]any, 0, len(records))
	for _, rec := range records {
		items = append(items, map[string]any{
			"id":              rec.ID,
			"generation_type": rec.Kind,
			"content":         rec.Content,
			"created":         rec.CreatedAt,
		})
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{"records": items}, "Records retrieved")
}

// objectResponse writes a JSON-object artifact in the standard envelope
func (s *Server) objectResponse(w http.ResponseWriter, artifact types.GenerationArtifact, message string) {
	s.jsonResponse(w, http.StatusOK, map[string]any{
		"result":   artifact.Object,
		"fallback": artifact.Fallback,
	}, message)
}
