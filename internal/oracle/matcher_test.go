package oracle

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"hireFlow/internal/hiring"
)

type stubGenerator struct {
	response string
	err      error
	prompt   string
}

func (s *stubGenerator) GenerateContent(_ context.Context, prompt string) (string, error) {
	s.prompt = prompt
	if s.err != nil {
		return "", s.err
	}
	return s.response, nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func TestAssessParsesResponse(t *testing.T) {
	gen := &stubGenerator{response: `{
		"candidate_name": "Jane Doe",
		"email": "jane@example.com",
		"overall_score": 87,
		"skill_score": "90",
		"experience_score": 82.4,
		"matched_skills": ["Go", "PostgreSQL"],
		"years_of_experience": "6 years",
		"summary": "Strong backend engineer."
	}`}
	m := NewMatcher(gen, testLogger())

	got, err := m.Assess(context.Background(), "resume text", hiring.JobDescription{Title: "Backend Engineer"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got.CandidateName != "Jane Doe" {
		t.Errorf("name: got %q", got.CandidateName)
	}
	if got.OverallScore != 87 || got.SkillScore != 90 || got.ExperienceScore != 82 {
		t.Errorf("scores: got %d/%d/%d", got.OverallScore, got.SkillScore, got.ExperienceScore)
	}
	if len(got.MatchedSkills) != 2 {
		t.Errorf("matched skills: got %v", got.MatchedSkills)
	}
	// Omitted fields land on their defaults.
	if got.Phone != "" || got.YearsOfExperience != "6 years" || got.Summary != "Strong backend engineer." {
		t.Errorf("defaults: got %+v", got)
	}
}

func TestAssessStripsCodeFence(t *testing.T) {
	gen := &stubGenerator{response: "```json\n{\"candidate_name\": \"Bob\", \"overall_score\": 75}\n```"}
	m := NewMatcher(gen, testLogger())

	got, err := m.Assess(context.Background(), "resume text", hiring.JobDescription{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.CandidateName != "Bob" || got.OverallScore != 75 {
		t.Fatalf("got %+v", got)
	}
}

func TestAssessRejectsUnparseableOutput(t *testing.T) {
	m := NewMatcher(&stubGenerator{response: "I cannot assess this resume."}, testLogger())

	if _, err := m.Assess(context.Background(), "resume text", hiring.JobDescription{}); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestAssessPropagatesGeneratorError(t *testing.T) {
	m := NewMatcher(&stubGenerator{err: errors.New("quota exceeded")}, testLogger())

	if _, err := m.Assess(context.Background(), "resume text", hiring.JobDescription{}); err == nil {
		t.Fatal("expected error")
	}
}

func TestBuildPromptTruncatesResume(t *testing.T) {
	gen := &stubGenerator{response: `{"candidate_name": "X"}`}
	m := NewMatcher(gen, testLogger())

	long := strings.Repeat("a", maxResumeChars+500)
	if _, err := m.Assess(context.Background(), long, hiring.JobDescription{Title: "T"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if strings.Count(gen.prompt, "a") > maxResumeChars {
		t.Fatal("resume text not truncated in prompt")
	}
	for _, want := range []string{"Title: T", "Experience Level: mid", "RESUME TEXT:"} {
		if !strings.Contains(gen.prompt, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
}
