package normalize

import (
	"github.com/jonathan/careerpilot/internal/types"
	"github.com/xeipuuv/gojsonschema"
)

// kindSchemas holds a permissive JSON Schema per artifact kind: property
// types are constrained but nothing is required, so partial model output
// still passes. A type mismatch (e.g. "score" as an object) downgrades the
// result to a fallback.
var kindSchemas = map[types.GenerationKind]string{
	types.KindResumeScore: `{
		"type": "object",
		"properties": {
			"score": {"type": "number"},
			"strengths": {"type": "array", "items": {"type": "string"}},
			"weaknesses": {"type": "array", "items": {"type": "string"}}
		}
	}`,
	types.KindResumeKeywordGap: `{
		"type": "object",
		"properties": {
			"missing_keywords": {"type": "array", "items": {"type": "string"}},
			"present_keywords": {"type": "array", "items": {"type": "string"}},
			"suggestions": {"type": "array", "items": {"type": "string"}}
		}
	}`,
	types.KindResumeAutoRewrite: `{
		"type": "object",
		"properties": {
			"rewritten_resume": {"type": "string"},
			"changes_made": {"type": "array", "items": {"type": "string"}}
		}
	}`,
	types.KindResumeSkillsGap: `{
		"type": "object",
		"properties": {
			"missing_skills": {"type": "array", "items": {"type": "string"}},
			"matching_skills": {"type": "array", "items": {"type": "string"}},
			"average_match_percent": {"type": "number"},
			"learning_priority": {"type": "array", "items": {"type": "string"}}
		}
	}`,
	types.KindResumeCareerRecommendation: `{
		"type": "object",
		"properties": {
			"recommended_roles": {"type": "array", "items": {"type": "string"}},
			"reasoning": {"type": "array", "items": {"type": "string"}},
			"next_steps": {"type": "array", "items": {"type": "string"}}
		}
	}`,
	types.KindInterviewAnswers: `{
		"type": "object",
		"properties": {
			"overall_score": {"type": "number"},
			"strengths": {"type": "array", "items": {"type": "string"}},
			"areas_to_improve": {"type": "array", "items": {"type": "string"}},
			"recommendations": {"type": "array", "items": {"type": "string"}},
			"questions_feedback": {
				"type": "array",
				"items": {
					"type": "object",
					"properties": {
						"question": {"type": "string"},
						"answer": {"type": "string"},
						"feedback": {"type": "string"}
					}
				}
			}
		}
	}`,
}

// matchSchema covers the per-listing job match response, which has no
// recorded generation kind.
const matchSchema = `{
	"type": "object",
	"properties": {
		"score": {"type": "number"},
		"keywords_matched": {"type": "array", "items": {"type": "string"}}
	}
}`

// checkSchema validates cleaned JSON text against the kind's permissive
// schema. The job match descriptor carries no generation kind; other kinds
// without a registered schema pass by default.
func checkSchema(kind types.GenerationKind, jsonText string) bool {
	schema, ok := kindSchemas[kind]
	if !ok {
		if kind != "" {
			return true
		}
		schema = matchSchema
	}

	result, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(schema),
		gojsonschema.NewStringLoader(jsonText),
	)
	if err != nil {
		return false
	}
	return result.Valid()
}
