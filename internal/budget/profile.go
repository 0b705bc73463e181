package budget

import "github.com/jonathan/careerpilot/internal/types"

// TrimProfile returns a copy of the profile reshaped to the resume pipeline
// budgets: bio clamped to the summary band, skill lists capped, and project,
// experience, and education lists capped with per-entry bullet limits.
// The input profile is not mutated.
func TrimProfile(p types.ResumeProfile) types.ResumeProfile {
	out := p

	out.Bio = ClampSummary(p.Bio)
	out.Skills.Technical = LimitItems(p.Skills.Technical, MaxTechnicalSkills)
	out.Skills.Soft = LimitItems(p.Skills.Soft, MaxSoftSkills)

	out.Projects = make([]types.Project, 0, MaxProjects)
	for _, proj := range LimitItems(p.Projects, MaxProjects) {
		proj.Lines = LimitBullets(proj.DescriptionLines(), MaxProjectBullets, MaxBulletChars)
		proj.Description = ""
		out.Projects = append(out.Projects, proj)
	}

	out.Experience = make([]types.ExperienceEntry, 0, MaxExperience)
	for _, exp := range LimitItems(p.Experience, MaxExperience) {
		exp.Lines = LimitBullets(exp.DescriptionLines(), MaxExperienceBullets, MaxBulletChars)
		exp.Description = ""
		out.Experience = append(out.Experience, exp)
	}

	out.Education = LimitItems(p.Education, MaxEducation)

	return out
}
