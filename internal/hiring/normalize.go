package hiring

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// NormalizeAssessment is the single point of schema enforcement for oracle
// output. The model response has no enforced schema at the source boundary,
// so every field is defaulted defensively here: scores are coerced from
// whatever type arrived and clamped into [0,100], strings and lists fall
// back to their documented defaults.
func NormalizeAssessment(raw map[string]any) MatchAssessment {
	return MatchAssessment{
		CandidateName:       stringField(raw, "candidate_name", "Unknown"),
		Email:               stringField(raw, "email", ""),
		Phone:               stringField(raw, "phone", ""),
		OverallScore:        scoreField(raw, "overall_score"),
		SkillScore:          scoreField(raw, "skill_score"),
		ExperienceScore:     scoreField(raw, "experience_score"),
		MatchedSkills:       stringListField(raw, "matched_skills"),
		MissingSkills:       stringListField(raw, "missing_skills"),
		YearsOfExperience:   stringField(raw, "years_of_experience", "Unknown"),
		Summary:             stringField(raw, "summary", "No summary available"),
		MatchReasoning:      stringField(raw, "match_reasoning", ""),
		Strengths:           stringListField(raw, "strengths"),
		AreasForImprovement: stringListField(raw, "areas_for_improvement"),
	}
}

// ClampScore forces a score into the [0,100] band.
func ClampScore(score int) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

// defaultScore is used when the oracle omitted a score or sent something
// that cannot be coerced to a number.
const defaultScore = 50

func scoreField(raw map[string]any, key string) int {
	value, ok := raw[key]
	if !ok || value == nil {
		return defaultScore
	}
	f := coerceFloat(value)
	if math.IsNaN(f) {
		return defaultScore
	}
	return ClampScore(int(f))
}

func stringField(raw map[string]any, key, fallback string) string {
	value, ok := raw[key]
	if !ok || value == nil {
		return fallback
	}
	s := strings.TrimSpace(coerceString(value))
	if s == "" {
		return fallback
	}
	return s
}

func stringListField(raw map[string]any, key string) []string {
	result := []string{}
	value, ok := raw[key]
	if !ok || value == nil {
		return result
	}
	list, ok := value.([]any)
	if !ok {
		// A single bare string is accepted as a one-element list.
		if s := strings.TrimSpace(coerceString(value)); s != "" {
			result = append(result, s)
		}
		return result
	}
	for _, item := range list {
		if s := strings.TrimSpace(coerceString(item)); s != "" {
			result = append(result, s)
		}
	}
	return result
}

func coerceFloat(v any) float64 {
	switch val := v.(type) {
	case float64:
		return val
	case int:
		return float64(val)
	case json.Number:
		f, err := val.Float64()
		if err != nil {
			return math.NaN()
		}
		return f
	case string:
		trimmed := strings.TrimSpace(val)
		if trimmed == "" {
			return math.NaN()
		}
		f, err := strconv.ParseFloat(trimmed, 64)
		if err != nil {
			return math.NaN()
		}
		return f
	default:
		return math.NaN()
	}
}

func coerceString(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case fmt.Stringer:
		return val.String()
	default:
		if v == nil {
			return ""
		}
		data, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprintf("%v", v)
		}
		return strings.Trim(string(data), `"`)
	}
}
