package hiring

import (
	"strings"
	"testing"
)

func assessment(name string, overall, skill, experience int) MatchAssessment {
	return MatchAssessment{
		CandidateName:   name,
		OverallScore:    overall,
		SkillScore:      skill,
		ExperienceScore: experience,
	}
}

func TestRankOrdersByScoreThenTiebreakers(t *testing.T) {
	input := []MatchAssessment{
		assessment("low", 40, 90, 90),
		assessment("high", 90, 10, 10),
		assessment("mid-skill", 70, 80, 10),
		assessment("mid-exp", 70, 80, 50),
	}

	ranked := Rank(input)

	want := []string{"high", "mid-exp", "mid-skill", "low"}
	for i, name := range want {
		if ranked[i].CandidateName != name {
			t.Fatalf("position %d: got %q, want %q", i, ranked[i].CandidateName, name)
		}
	}

	if input[0].CandidateName != "low" {
		t.Fatal("Rank modified its input slice")
	}
}

func TestRankIsStableOnFullTies(t *testing.T) {
	input := []MatchAssessment{
		assessment("first", 70, 70, 70),
		assessment("second", 70, 70, 70),
		assessment("third", 70, 70, 70),
	}

	ranked := Rank(input)

	for i, name := range []string{"first", "second", "third"} {
		if ranked[i].CandidateName != name {
			t.Fatalf("tie order broken at %d: got %q, want %q", i, ranked[i].CandidateName, name)
		}
	}
}

func TestSelectTopAppliesThresholdAndCap(t *testing.T) {
	ranked := Rank([]MatchAssessment{
		assessment("a", 90, 0, 0),
		assessment("b", 60, 0, 0),
		assessment("c", 40, 0, 0),
		assessment("d", 95, 0, 0),
	})

	top := SelectTop(ranked, DefaultMaxCandidates, DefaultMinScoreThreshold)

	if len(top) != 3 {
		t.Fatalf("got %d selected, want 3", len(top))
	}
	if top[0].CandidateName != "d" || top[1].CandidateName != "a" || top[2].CandidateName != "b" {
		t.Fatalf("unexpected selection order: %v", []string{top[0].CandidateName, top[1].CandidateName, top[2].CandidateName})
	}

	capped := SelectTop(ranked, 1, 0)
	if len(capped) != 1 || capped[0].CandidateName != "d" {
		t.Fatalf("cap to 1: got %v", capped)
	}

	if got := SelectTop(ranked, 10, 99); len(got) != 0 {
		t.Fatalf("threshold 99: got %d entries, want 0", len(got))
	}
}

func TestCategorizePartitionsEveryCandidateOnce(t *testing.T) {
	ranked := []MatchAssessment{
		assessment("top", 80, 0, 0),
		assessment("mid", 79, 0, 0),
		assessment("mid-low", 60, 0, 0),
		assessment("low", 59, 0, 0),
		assessment("low-bottom", 40, 0, 0),
		assessment("no", 39, 0, 0),
		assessment("zero", 0, 0, 0),
		assessment("perfect", 100, 0, 0),
	}

	buckets := Categorize(ranked)

	if len(buckets.TopTier) != 2 {
		t.Errorf("top tier: got %d, want 2", len(buckets.TopTier))
	}
	if len(buckets.MidTier) != 2 {
		t.Errorf("mid tier: got %d, want 2", len(buckets.MidTier))
	}
	if len(buckets.LowTier) != 2 {
		t.Errorf("low tier: got %d, want 2", len(buckets.LowTier))
	}
	if len(buckets.NotRecommended) != 2 {
		t.Errorf("not recommended: got %d, want 2", len(buckets.NotRecommended))
	}

	total := len(buckets.TopTier) + len(buckets.MidTier) + len(buckets.LowTier) + len(buckets.NotRecommended)
	if total != len(ranked) {
		t.Fatalf("partition lost candidates: got %d, want %d", total, len(ranked))
	}
}

func TestSummarizeEmpty(t *testing.T) {
	if got := Summarize(nil); got != "No candidates to summarize." {
		t.Fatalf("got %q", got)
	}
}

func TestSummarizeFormat(t *testing.T) {
	ranked := Rank([]MatchAssessment{
		assessment("Alice", 85, 80, 80),
		assessment("Bob", 65, 60, 60),
		assessment("Carol", 45, 40, 40),
		assessment("Dave", 30, 30, 30),
	})

	summary := Summarize(ranked)

	for _, want := range []string{
		"Ranking Summary:",
		"- Total candidates: 4",
		"- Top tier (80+): 1",
		"- Mid tier (60-79): 1",
		"- Low tier (40-59): 1",
		"- Not recommended (<40): 1",
		"Top 3 Candidates:",
		"1. Alice - Score: 85",
		"2. Bob - Score: 65",
		"3. Carol - Score: 45",
	} {
		if !strings.Contains(summary, want) {
			t.Errorf("summary missing %q:\n%s", want, summary)
		}
	}

	if strings.Contains(summary, "Dave") {
		t.Error("summary lists more than three candidates")
	}
}

func TestCompareRecommendation(t *testing.T) {
	strong := assessment("Strong", 90, 85, 80)
	weak := assessment("Weak", 70, 60, 55)

	cmp := Compare(strong, weak)
	if cmp.ScoreDiff != 20 {
		t.Fatalf("score diff: got %d, want 20", cmp.ScoreDiff)
	}
	if cmp.Recommendation != "Strong is clearly better" {
		t.Fatalf("got %q", cmp.Recommendation)
	}

	cmp = Compare(weak, strong)
	if cmp.Recommendation != "Strong is clearly better" {
		t.Fatalf("reversed order: got %q", cmp.Recommendation)
	}

	close1 := assessment("A", 75, 0, 0)
	close2 := assessment("B", 70, 0, 0)
	if got := Compare(close1, close2).Recommendation; got != "Candidates are evenly matched" {
		t.Fatalf("got %q", got)
	}

	// A gap of exactly 10 still counts as even.
	edge := Compare(assessment("A", 80, 0, 0), assessment("B", 70, 0, 0))
	if edge.Recommendation != "Candidates are evenly matched" {
		t.Fatalf("gap of 10: got %q", edge.Recommendation)
	}
}
