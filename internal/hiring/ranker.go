package hiring

import (
	"fmt"
	"sort"
	"strings"
)

// Default selection parameters, applied by callers that do not override them.
const (
	DefaultMaxCandidates     = 10
	DefaultMinScoreThreshold = 50
)

// Rank returns the assessments ordered by overall score, then skill score,
// then experience score, all descending. The sort is stable: ties keep their
// original input order. The input slice is not modified.
func Rank(assessments []MatchAssessment) []MatchAssessment {
	ranked := make([]MatchAssessment, len(assessments))
	copy(ranked, assessments)

	sort.SliceStable(ranked, func(i, j int) bool {
		return assessmentLess(ranked[i], ranked[j])
	})

	return ranked
}

// assessmentLess orders by overall, then skill, then experience score,
// all descending.
func assessmentLess(a, b MatchAssessment) bool {
	if a.OverallScore != b.OverallScore {
		return a.OverallScore > b.OverallScore
	}
	if a.SkillScore != b.SkillScore {
		return a.SkillScore > b.SkillScore
	}
	return a.ExperienceScore > b.ExperienceScore
}

// SelectTop filters an already ranked list down to entries meeting the score
// threshold, preserving rank order, then truncates to maxCandidates.
func SelectTop(ranked []MatchAssessment, maxCandidates, minScoreThreshold int) []MatchAssessment {
	qualified := make([]MatchAssessment, 0, len(ranked))
	for _, a := range ranked {
		if a.OverallScore >= minScoreThreshold {
			qualified = append(qualified, a)
		}
	}
	if maxCandidates >= 0 && len(qualified) > maxCandidates {
		qualified = qualified[:maxCandidates]
	}
	return qualified
}

// TierBuckets partitions ranked candidates into the four fixed score bands.
// Every assessment lands in exactly one bucket.
type TierBuckets struct {
	TopTier        []MatchAssessment `json:"top_tier"`        // 80-100
	MidTier        []MatchAssessment `json:"mid_tier"`        // 60-79
	LowTier        []MatchAssessment `json:"low_tier"`        // 40-59
	NotRecommended []MatchAssessment `json:"not_recommended"` // 0-39
}

// Categorize buckets assessments by overall score band.
func Categorize(ranked []MatchAssessment) TierBuckets {
	buckets := TierBuckets{
		TopTier:        []MatchAssessment{},
		MidTier:        []MatchAssessment{},
		LowTier:        []MatchAssessment{},
		NotRecommended: []MatchAssessment{},
	}

	for _, a := range ranked {
		switch {
		case a.OverallScore >= 80:
			buckets.TopTier = append(buckets.TopTier, a)
		case a.OverallScore >= 60:
			buckets.MidTier = append(buckets.MidTier, a)
		case a.OverallScore >= 40:
			buckets.LowTier = append(buckets.LowTier, a)
		default:
			buckets.NotRecommended = append(buckets.NotRecommended, a)
		}
	}

	return buckets
}

// emptySummary is returned for an empty ranking.
const emptySummary = "No candidates to summarize."

// Summarize renders the human-readable ranking report: total count, per-tier
// counts and the top three entries by rank.
func Summarize(ranked []MatchAssessment) string {
	total := len(ranked)
	if total == 0 {
		return emptySummary
	}

	buckets := Categorize(ranked)

	var b strings.Builder
	b.WriteString("\nRanking Summary:\n")
	fmt.Fprintf(&b, "- Total candidates: %d\n", total)
	fmt.Fprintf(&b, "- Top tier (80+): %d\n", len(buckets.TopTier))
	fmt.Fprintf(&b, "- Mid tier (60-79): %d\n", len(buckets.MidTier))
	fmt.Fprintf(&b, "- Low tier (40-59): %d\n", len(buckets.LowTier))
	fmt.Fprintf(&b, "- Not recommended (<40): %d\n", len(buckets.NotRecommended))
	b.WriteString("\nTop 3 Candidates:\n")

	for i, a := range ranked {
		if i >= 3 {
			break
		}
		name := a.CandidateName
		if name == "" {
			name = "Unknown"
		}
		fmt.Fprintf(&b, "%d. %s - Score: %d\n", i+1, name, a.OverallScore)
	}

	return b.String()
}

// Comparison is the side-by-side view of two candidates.
type Comparison struct {
	Candidate1     ComparisonSide `json:"candidate1"`
	Candidate2     ComparisonSide `json:"candidate2"`
	ScoreDiff      int            `json:"score_diff"`
	SkillDiff      int            `json:"skill_diff"`
	ExperienceDiff int            `json:"experience_diff"`
	Recommendation string         `json:"recommendation"`
}

// ComparisonSide carries the fields shown for one side of a comparison.
type ComparisonSide struct {
	Name            string   `json:"name"`
	Score           int      `json:"score"`
	SkillScore      int      `json:"skill_score"`
	ExperienceScore int      `json:"experience_score"`
	MatchedSkills   []string `json:"matched_skills"`
	Summary         string   `json:"summary"`
}

// Compare puts two assessments side by side. A gap of more than 10 points in
// overall score yields a clear recommendation, anything closer is reported
// as evenly matched.
func Compare(a, b MatchAssessment) Comparison {
	cmp := Comparison{
		Candidate1:     comparisonSide(a),
		Candidate2:     comparisonSide(b),
		ScoreDiff:      a.OverallScore - b.OverallScore,
		SkillDiff:      a.SkillScore - b.SkillScore,
		ExperienceDiff: a.ExperienceScore - b.ExperienceScore,
	}

	switch {
	case cmp.ScoreDiff > 10:
		cmp.Recommendation = fmt.Sprintf("%s is clearly better", cmp.Candidate1.Name)
	case cmp.ScoreDiff < -10:
		cmp.Recommendation = fmt.Sprintf("%s is clearly better", cmp.Candidate2.Name)
	default:
		cmp.Recommendation = "Candidates are evenly matched"
	}

	return cmp
}

func comparisonSide(a MatchAssessment) ComparisonSide {
	name := a.CandidateName
	if name == "" {
		name = "Unknown"
	}
	return ComparisonSide{
		Name:            name,
		Score:           a.OverallScore,
		SkillScore:      a.SkillScore,
		ExperienceScore: a.ExperienceScore,
		MatchedSkills:   a.MatchedSkills,
		Summary:         a.Summary,
	}
}
