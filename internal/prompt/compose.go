package prompt

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jonathan/careerpilot/internal/types"
)

// CoverLetter renders the cover letter prompt. When tone is empty the tone
// clause is omitted entirely rather than injected blank.
func CoverLetter(resumeText, jobDescription, tone string) string {
	toneClause := ""
	if tone != "" {
		toneClause = fmt.Sprintf("\n\nTone: Write the cover letter in a %s tone.", tone)
	}
	return format(mustGet("coverletter.json", "cover-letter"), map[string]string{
		"Resume":         resumeText,
		"JobDescription": jobDescription,
		"ToneClause":     toneClause,
	})
}

// InterviewQuestions renders the question generation prompt. When
// questionType is empty the type clause is omitted.
func InterviewQuestions(resumeText, jobDescription, questionType string) string {
	typeClause := ""
	if questionType != "" {
		typeClause = fmt.Sprintf("\n\nQuestion type requested: %s", questionType)
	}
	return format(mustGet("interview.json", "questions"), map[string]string{
		"Resume":             resumeText,
		"JobDescription":     jobDescription,
		"QuestionTypeClause": typeClause,
	})
}

// InterviewScore renders the interview scoring prompt from the answered
// question list.
func InterviewScore(resumeText, jobDescription string, questions []types.Question) string {
	var sb strings.Builder
	for i, q := range questions {
		fmt.Fprintf(&sb, "%d. Question: %s\n   Type: %s\n   Context: %s\n   Answer: %s\n",
			i+1, q.Text, q.Type, q.Context, q.Answer)
	}
	return format(mustGet("interview.json", "score"), map[string]string{
		"Resume":         resumeText,
		"JobDescription": jobDescription,
		"Questions":      strings.TrimSuffix(sb.String(), "\n"),
	})
}

// JobMatch renders the per-listing match scoring prompt
func JobMatch(resumeText, jobDescription string) string {
	return format(mustGet("matching.json", "job-match"), map[string]string{
		"Resume":         resumeText,
		"JobDescription": jobDescription,
	})
}

// ResumeScore renders the resume-vs-job-description scoring prompt
func ResumeScore(resumeText, jobDescription string) string {
	return format(mustGet("resume.json", "score"), map[string]string{
		"Resume":         resumeText,
		"JobDescription": jobDescription,
	})
}

// KeywordGap renders the keyword gap analysis prompt
func KeywordGap(resumeText, jobDescription string) string {
	return format(mustGet("resume.json", "keyword-gap"), map[string]string{
		"Resume":         resumeText,
		"JobDescription": jobDescription,
	})
}

// AutoRewrite renders the ATS rewrite prompt. When tone is empty the tone
// clause is omitted.
func AutoRewrite(resumeText, jobDescription, tone string) string {
	toneClause := ""
	if tone != "" {
		toneClause = fmt.Sprintf("\n\nTone: Rewrite the resume in a %s tone.", tone)
	}
	return format(mustGet("resume.json", "auto-rewrite"), map[string]string{
		"Resume":         resumeText,
		"JobDescription": jobDescription,
		"ToneClause":     toneClause,
	})
}

// SkillsGap renders the skills gap analysis prompt
func SkillsGap(resumeText, jobDescription string) string {
	return format(mustGet("resume.json", "skills-gap"), map[string]string{
		"Resume":         resumeText,
		"JobDescription": jobDescription,
	})
}

// CareerRecommendation renders the career advice prompt
func CareerRecommendation(resumeText, jobDescription string) string {
	return format(mustGet("resume.json", "career-recommendation"), map[string]string{
		"Resume":         resumeText,
		"JobDescription": jobDescription,
	})
}

// PortfolioFromResume renders the portfolio prompt from extracted resume text
func PortfolioFromResume(resumeText string) string {
	return format(mustGet("portfolio.json", "from-resume"), map[string]string{
		"ResumeText": resumeText,
	})
}

// PortfolioFromQnA renders the portfolio prompt from a budgeted structured
// profile. The profile is embedded as indented JSON; struct fields encode in
// declaration order, so the rendered prompt is deterministic.
func PortfolioFromQnA(profile types.ResumeProfile) (string, error) {
	data, err := json.MarshalIndent(profile, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode profile: %w", err)
	}
	return format(mustGet("portfolio.json", "from-qna"), map[string]string{
		"ProfileJSON": string(data),
	}), nil
}

// ResumeLaTeX renders the one-page LaTeX resume prompt from a budgeted
// profile.
func ResumeLaTeX(profile types.ResumeProfile) string {
	return format(mustGet("resume.json", "latex"), map[string]string{
		"Name":            profile.Name,
		"Role":            profile.Role,
		"Tagline":         profile.Tagline,
		"Bio":             profile.Bio,
		"TechnicalSkills": formatSkills(profile.Skills.Technical),
		"SoftSkills":      formatSkills(profile.Skills.Soft),
		"Projects":        formatProjects(profile.Projects),
		"Experience":      formatExperience(profile.Experience),
		"Education":       formatEducation(profile.Education),
		"Email":           profile.Email,
		"LinkedIn":        profile.LinkedIn,
		"GitHub":          profile.GitHub,
		"Twitter":         profile.Twitter,
	})
}

// formatSkills renders skills as "Name(weight)" pairs; unweighted skills
// render as the bare name.
func formatSkills(skills []types.Skill) string {
	parts := make([]string, 0, len(skills))
	for _, s := range skills {
		if s.Weight > 0 {
			parts = append(parts, fmt.Sprintf("%s(%d)", s.Name, s.Weight))
		} else {
			parts = append(parts, s.Name)
		}
	}
	return strings.Join(parts, ", ")
}

func formatProjects(projects []types.Project) string {
	var sb strings.Builder
	for _, p := range projects {
		fmt.Fprintf(&sb, "- %s: %s\n", p.Title, strings.Join(p.DescriptionLines(), "; "))
	}
	return sb.String()
}

func formatExperience(entries []types.ExperienceEntry) string {
	var sb strings.Builder
	for _, e := range entries {
		fmt.Fprintf(&sb, "- %s at %s (%s): %s\n", e.Role, e.Company, e.Duration, strings.Join(e.DescriptionLines(), "; "))
	}
	return sb.String()
}

func formatEducation(entries []types.EducationEntry) string {
	var sb strings.Builder
	for _, e := range entries {
		fmt.Fprintf(&sb, "- %s from %s (%s)\n", e.Degree, e.Institution, e.Year)
	}
	return sb.String()
}
