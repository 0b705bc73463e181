// Package generate orchestrates artifact generation: validate inputs, budget
// content, compose the prompt, call the model, normalize the response and
// record the result.
package generate

import (
	"context"
	"errors"
	"log"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/jonathan/careerpilot/internal/analytics"
	"github.com/jonathan/careerpilot/internal/budget"
	"github.com/jonathan/careerpilot/internal/llm"
	"github.com/jonathan/careerpilot/internal/normalize"
	"github.com/jonathan/careerpilot/internal/prompt"
	"github.com/jonathan/careerpilot/internal/types"
)

// Service runs the generation pipeline for every artifact kind
type Service struct {
	client   llm.Client
	recorder analytics.Recorder
	validate *validator.Validate
}

// NewService creates a generation service
func NewService(client llm.Client, recorder analytics.Recorder) *Service {
	return &Service{
		client:   client,
		recorder: recorder,
		validate: validator.New(),
	}
}

// CoverLetter generates a cover letter for a job description
func (s *Service) CoverLetter(ctx context.Context, userID uuid.UUID, resumeText, jobDescription, tone string) (types.GenerationArtifact, error) {
	if err := requireText("resume", resumeText); err != nil {
		return types.GenerationArtifact{}, err
	}
	if err := requireText("job_description", jobDescription); err != nil {
		return types.GenerationArtifact{}, err
	}

	p := prompt.CoverLetter(resumeText, jobDescription, tone)
	raw, err := s.client.Generate(ctx, p, llm.Options{})
	if err != nil {
		return types.GenerationArtifact{}, err
	}

	artifact := types.GenerationArtifact{
		Kind:     types.KindCoverLetter,
		Document: strings.TrimSpace(raw),
	}
	s.record(ctx, userID, artifact)
	return artifact, nil
}

// InterviewQuestions generates interview questions for a job description
func (s *Service) InterviewQuestions(ctx context.Context, userID uuid.UUID, resumeText, jobDescription, questionType string) (types.GenerationArtifact, error) {
	if err := requireText("resume", resumeText); err != nil {
		return types.GenerationArtifact{}, err
	}
	if err := requireText("job_description", jobDescription); err != nil {
		return types.GenerationArtifact{}, err
	}

	p := prompt.InterviewQuestions(resumeText, jobDescription, questionType)
	raw, err := s.client.Generate(ctx, p, llm.Options{})
	if err != nil {
		return types.GenerationArtifact{}, err
	}

	result := normalize.Questions(raw, questionType)
	artifact := types.GenerationArtifact{
		Kind:      types.KindInterviewQuestions,
		Questions: result.Questions,
		Fallback:  result.Fallback,
	}
	s.record(ctx, userID, artifact)
	return artifact, nil
}

// InterviewAnswers scores a set of answered interview questions
func (s *Service) InterviewAnswers(ctx context.Context, userID uuid.UUID, resumeText, jobDescription string, questions []types.Question) (types.GenerationArtifact, error) {
	if err := requireText("resume", resumeText); err != nil {
		return types.GenerationArtifact{}, err
	}
	if err := requireText("job_description", jobDescription); err != nil {
		return types.GenerationArtifact{}, err
	}
	if len(questions) == 0 {
		return types.GenerationArtifact{}, &MissingInputError{Field: "questions"}
	}

	return s.generateObject(ctx, userID, types.KindInterviewAnswers,
		prompt.InterviewScore(resumeText, jobDescription, questions))
}

// PortfolioFromResume generates a portfolio website from resume text
func (s *Service) PortfolioFromResume(ctx context.Context, userID uuid.UUID, resumeText string) (types.GenerationArtifact, error) {
	if err := requireText("resume", resumeText); err != nil {
		return types.GenerationArtifact{}, err
	}
	return s.generateDocument(ctx, userID, types.KindPortfolioFromResume,
		prompt.PortfolioFromResume(resumeText))
}

// PortfolioFromQnA generates a portfolio website from a structured profile
func (s *Service) PortfolioFromQnA(ctx context.Context, userID uuid.UUID, profile types.ResumeProfile) (types.GenerationArtifact, error) {
	trimmed, err := s.budgetProfile(profile)
	if err != nil {
		return types.GenerationArtifact{}, err
	}

	p, err := prompt.PortfolioFromQnA(trimmed)
	if err != nil {
		return types.GenerationArtifact{}, err
	}
	return s.generateDocument(ctx, userID, types.KindPortfolioFromQnA, p)
}

// ResumeLaTeX generates a one-page LaTeX resume from a structured profile
func (s *Service) ResumeLaTeX(ctx context.Context, userID uuid.UUID, profile types.ResumeProfile) (types.GenerationArtifact, error) {
	trimmed, err := s.budgetProfile(profile)
	if err != nil {
		return types.GenerationArtifact{}, err
	}
	return s.generateDocument(ctx, userID, types.KindResume, prompt.ResumeLaTeX(trimmed))
}

// ResumeScore scores a resume against a job description
func (s *Service) ResumeScore(ctx context.Context, userID uuid.UUID, resumeText, jobDescription string) (types.GenerationArtifact, error) {
	if err := requirePair(resumeText, jobDescription); err != nil {
		return types.GenerationArtifact{}, err
	}
	return s.generateObject(ctx, userID, types.KindResumeScore,
		prompt.ResumeScore(resumeText, jobDescription))
}

// KeywordGap finds job-description keywords missing from a resume
func (s *Service) KeywordGap(ctx context.Context, userID uuid.UUID, resumeText, jobDescription string) (types.GenerationArtifact, error) {
	if err := requirePair(resumeText, jobDescription); err != nil {
		return types.GenerationArtifact{}, err
	}
	return s.generateObject(ctx, userID, types.KindResumeKeywordGap,
		prompt.KeywordGap(resumeText, jobDescription))
}

// AutoRewrite rewrites a resume to better fit a job description
func (s *Service) AutoRewrite(ctx context.Context, userID uuid.UUID, resumeText, jobDescription, tone string) (types.GenerationArtifact, error) {
	if err := requirePair(resumeText, jobDescription); err != nil {
		return types.GenerationArtifact{}, err
	}
	return s.generateObject(ctx, userID, types.KindResumeAutoRewrite,
		prompt.AutoRewrite(resumeText, jobDescription, tone))
}

// SkillsGap analyzes the skill gap between a resume and a job description.
// Market-statistic fields in the response are model output passed through
// unmodified.
func (s *Service) SkillsGap(ctx context.Context, userID uuid.UUID, resumeText, jobDescription string) (types.GenerationArtifact, error) {
	if err := requirePair(resumeText, jobDescription); err != nil {
		return types.GenerationArtifact{}, err
	}
	return s.generateObject(ctx, userID, types.KindResumeSkillsGap,
		prompt.SkillsGap(resumeText, jobDescription))
}

// CareerRecommendation suggests roles and next steps based on a resume. The
// job description is optional context.
func (s *Service) CareerRecommendation(ctx context.Context, userID uuid.UUID, resumeText, jobDescription string) (types.GenerationArtifact, error) {
	if err := requireText("resume", resumeText); err != nil {
		return types.GenerationArtifact{}, err
	}
	return s.generateObject(ctx, userID, types.KindResumeCareerRecommendation,
		prompt.CareerRecommendation(resumeText, jobDescription))
}

// generateObject runs the pipeline for a JSON-object artifact
func (s *Service) generateObject(ctx context.Context, userID uuid.UUID, kind types.GenerationKind, p string) (types.GenerationArtifact, error) {
	tmpl, _ := prompt.ForKind(kind)

	raw, err := s.client.Generate(ctx, p, llm.Options{})
	if err != nil {
		return types.GenerationArtifact{}, err
	}

	result := normalize.Object(raw, tmpl)
	artifact := types.GenerationArtifact{
		Kind:     kind,
		Object:   result.Object,
		Fallback: result.Fallback,
	}
	s.record(ctx, userID, artifact)
	return artifact, nil
}

// generateDocument runs the pipeline for a sentinel-bounded document artifact
func (s *Service) generateDocument(ctx context.Context, userID uuid.UUID, kind types.GenerationKind, p string) (types.GenerationArtifact, error) {
	tmpl, _ := prompt.ForKind(kind)

	raw, err := s.client.Generate(ctx, p, llm.Options{})
	if err != nil {
		return types.GenerationArtifact{}, err
	}

	result := normalize.Document(raw, tmpl)
	artifact := types.GenerationArtifact{
		Kind:     kind,
		Document: result.Document,
		Fallback: result.Fallback,
	}
	s.record(ctx, userID, artifact)
	return artifact, nil
}

// budgetProfile validates a profile and applies the content caps
func (s *Service) budgetProfile(profile types.ResumeProfile) (types.ResumeProfile, error) {
	if err := s.validate.Struct(profile); err != nil {
		var invalid validator.ValidationErrors
		if errors.As(err, &invalid) && len(invalid) > 0 {
			return types.ResumeProfile{}, &MissingInputError{Field: strings.ToLower(invalid[0].Field())}
		}
		return types.ResumeProfile{}, err
	}
	return budget.TrimProfile(profile), nil
}

// record stores the artifact best-effort; the result is returned either way
func (s *Service) record(ctx context.Context, userID uuid.UUID, artifact types.GenerationArtifact) {
	if s.recorder == nil {
		return
	}
	if _, err := s.recorder.Record(ctx, userID, artifact.Kind, artifact.Content()); err != nil {
		log.Printf("[GENERATE] Failed to record %s for user %s: %v", artifact.Kind, userID, err)
	}
}

func requireText(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return &MissingInputError{Field: field}
	}
	return nil
}

func requirePair(resumeText, jobDescription string) error {
	if err := requireText("resume", resumeText); err != nil {
		return err
	}
	return requireText("job_description", jobDescription)
}
