package oracle

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"hireFlow/internal/hiring"
)

type contentGenerator interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
}

// maxResumeChars caps the resume text included in the prompt. Anything past
// the first few thousand characters is appendix material that only inflates
// token cost.
const maxResumeChars = 4000

// Matcher turns one (resume, job) pair into a normalized MatchAssessment.
type Matcher struct {
	generator contentGenerator
	logger    *slog.Logger
}

func NewMatcher(generator contentGenerator, logger *slog.Logger) *Matcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Matcher{generator: generator, logger: logger}
}

// Assess asks the model for a structured assessment of the resume against
// the job description. Unparseable output is an error; the caller decides
// what a failed assessment means for the batch.
func (m *Matcher) Assess(ctx context.Context, resumeText string, jd hiring.JobDescription) (hiring.MatchAssessment, error) {
	prompt := buildPrompt(resumeText, jd)

	m.logger.Debug("assessment request",
		slog.String("job_title", jd.Title),
		slog.Int("prompt_length", len(prompt)),
	)

	raw, err := m.generator.GenerateContent(ctx, prompt)
	if err != nil {
		return hiring.MatchAssessment{}, fmt.Errorf("assess resume: %w", err)
	}

	cleaned := extractJSON(raw)

	var data map[string]any
	if err := json.Unmarshal([]byte(cleaned), &data); err != nil {
		return hiring.MatchAssessment{}, fmt.Errorf("parse assessment response: %w", err)
	}

	return hiring.NormalizeAssessment(data), nil
}

func buildPrompt(resumeText string, jd hiring.JobDescription) string {
	if len(resumeText) > maxResumeChars {
		resumeText = resumeText[:maxResumeChars]
	}

	experienceLevel := jd.ExperienceLevel
	if experienceLevel == "" {
		experienceLevel = "mid"
	}

	var b strings.Builder
	b.WriteString("Analyze the following resume against the job description and provide a detailed assessment.\n\n")
	b.WriteString("JOB DESCRIPTION:\n")
	fmt.Fprintf(&b, "Title: %s\n", orNA(jd.Title))
	fmt.Fprintf(&b, "Description: %s\n", orNA(jd.Description))
	fmt.Fprintf(&b, "Requirements: %s\n", strings.Join(jd.Requirements, ", "))
	fmt.Fprintf(&b, "Required Skills: %s\n", strings.Join(jd.Skills, ", "))
	fmt.Fprintf(&b, "Experience Level: %s\n\n", experienceLevel)
	b.WriteString("RESUME TEXT:\n")
	b.WriteString(resumeText)
	b.WriteString(`

Please provide a JSON response with the following structure:
{
    "candidate_name": "Extract the candidate's full name",
    "email": "Extract the email address",
    "phone": "Extract phone number",
    "overall_score": 0-100 score indicating overall match,
    "skill_score": 0-100 score for skill match,
    "experience_score": 0-100 score for experience match,
    "matched_skills": ["list of matched skills from the job requirements"],
    "missing_skills": ["list of missing skills from job requirements"],
    "years_of_experience": "estimated years of relevant experience",
    "summary": "3-4 sentence summary of the candidate's qualifications and fit",
    "match_reasoning": "Detailed explanation of why this candidate is a good match or not",
    "strengths": ["list of key strengths"],
    "areas_for_improvement": ["list of areas where the candidate could improve"]
}
`)
	return b.String()
}

func orNA(s string) string {
	if strings.TrimSpace(s) == "" {
		return "N/A"
	}
	return s
}

// extractJSON strips a markdown code fence the model sometimes wraps around
// its JSON output.
func extractJSON(raw string) string {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "```") {
		raw = strings.TrimPrefix(raw, "```json")
		raw = strings.TrimPrefix(raw, "```")
		raw = strings.TrimSpace(raw)
		if idx := strings.LastIndex(raw, "```"); idx != -1 {
			raw = raw[:idx]
		}
	}
	raw = strings.Trim(raw, "`")
	return strings.TrimSpace(raw)
}
