// Package types provides type definitions for structured data used throughout the careerpilot system.
//
//nolint:revive // types is a standard Go package name pattern
package types

// ResumeProfile represents the structured candidate data supplied by the
// caller for resume and portfolio generation. Name, role, bio, and email are
// required before any prompt is composed; all list fields default to empty.
type ResumeProfile struct {
	Name    string `json:"name" validate:"required"`
	Role    string `json:"role" validate:"required"`
	Tagline string `json:"tagline,omitempty"`
	Bio     string `json:"bio" validate:"required"`

	Skills Skills `json:"skills,omitempty"`

	Projects   []Project         `json:"projects,omitempty"`
	Experience []ExperienceEntry `json:"experience,omitempty"`
	Education  []EducationEntry  `json:"education,omitempty"`

	Email    string `json:"email" validate:"required,email"`
	LinkedIn string `json:"linkedin,omitempty"`
	GitHub   string `json:"github,omitempty"`
	Twitter  string `json:"twitter,omitempty"`
}

// Skills groups technical and soft skills
type Skills struct {
	Technical []Skill `json:"technical,omitempty"`
	Soft      []Skill `json:"soft,omitempty"`
}

// Skill is a single skill with an optional proficiency weight (1-5, 0 means unset)
type Skill struct {
	Name   string `json:"skill"`
	Weight int    `json:"weight,omitempty" validate:"omitempty,min=1,max=5"`
}

// Project represents a portfolio or side project
type Project struct {
	Title       string   `json:"title"`
	Description string   `json:"desc,omitempty"`
	Lines       []string `json:"lines,omitempty"` // pre-split description lines, if the caller provides them
	Link        string   `json:"link,omitempty"`
}

// DescriptionLines returns the project description as individual lines,
// preferring the pre-split form when present.
func (p Project) DescriptionLines() []string {
	if len(p.Lines) > 0 {
		return p.Lines
	}
	if p.Description == "" {
		return nil
	}
	return []string{p.Description}
}

// ExperienceEntry represents one work experience item
type ExperienceEntry struct {
	Role        string   `json:"role"`
	Company     string   `json:"company"`
	Duration    string   `json:"duration,omitempty"` // free text, e.g. "2023-2025"
	Location    string   `json:"location,omitempty"`
	Description string   `json:"desc,omitempty"`
	Lines       []string `json:"lines,omitempty"`
}

// DescriptionLines returns the experience description as individual lines,
// preferring the pre-split form when present.
func (e ExperienceEntry) DescriptionLines() []string {
	if len(e.Lines) > 0 {
		return e.Lines
	}
	if e.Description == "" {
		return nil
	}
	return []string{e.Description}
}

// EducationEntry represents one education item
type EducationEntry struct {
	Degree      string `json:"degree"`
	Institution string `json:"institution"`
	Year        string `json:"year,omitempty"`
}
