package hiring

import "time"

// JobDescription is the immutable input every resume in a batch is matched
// against.
type JobDescription struct {
	Title           string   `json:"title"`
	Description     string   `json:"description"`
	Requirements    []string `json:"requirements"`
	Skills          []string `json:"skills"`
	ExperienceLevel string   `json:"experience_level"`
}

// MatchAssessment is the normalized result of one oracle call for a
// (resume, job) pair. All three scores are guaranteed to be in [0,100];
// optional fields are empty strings/slices, never absent.
type MatchAssessment struct {
	CandidateName       string   `json:"candidate_name"`
	Email               string   `json:"email"`
	Phone               string   `json:"phone"`
	OverallScore        int      `json:"overall_score"`
	SkillScore          int      `json:"skill_score"`
	ExperienceScore     int      `json:"experience_score"`
	MatchedSkills       []string `json:"matched_skills"`
	MissingSkills       []string `json:"missing_skills"`
	YearsOfExperience   string   `json:"years_of_experience"`
	Summary             string   `json:"summary"`
	MatchReasoning      string   `json:"match_reasoning"`
	Strengths           []string `json:"strengths"`
	AreasForImprovement []string `json:"areas_for_improvement"`
}

// Candidate is a ranked assessment promoted to an entity with a generated id.
// It is never mutated after creation except for IsSelected.
type Candidate struct {
	ID              string   `json:"id"`
	Name            string   `json:"name"`
	Email           string   `json:"email"`
	Phone           string   `json:"phone"`
	ResumeID        string   `json:"resume_id"`
	JobID           string   `json:"job_id"`
	Filename        string   `json:"filename"`
	Score           int      `json:"score"`
	SkillScore      int      `json:"skill_score"`
	ExperienceScore int      `json:"experience_score"`
	Summary         string   `json:"summary"`
	Skills          []string `json:"skills"`
	Experience      string   `json:"experience"`
	MatchReasoning  string   `json:"match_reasoning"`
	IsSelected      bool     `json:"is_selected"`
}

// Document is one uploaded resume blob entering a batch.
type Document struct {
	Filename string
	Data     []byte
}

// BatchResult is the outcome of processing one batch of resumes.
// Processed is always <= Total: documents that fail extraction, look nothing
// like a resume, or fail the oracle call are skipped without surfacing an
// error to the caller.
type BatchResult struct {
	JobID            string      `json:"job_id"`
	TotalResumes     int         `json:"total_resumes"`
	ProcessedResumes int         `json:"processed_resumes"`
	Candidates       []Candidate `json:"candidates"`
	Summary          string      `json:"summary"`
	Status           string      `json:"status"`
}

// ScheduledInterview records one successfully booked calendar event.
type ScheduledInterview struct {
	CandidateID    string    `json:"candidate_id"`
	CandidateName  string    `json:"candidate_name"`
	CandidateEmail string    `json:"candidate_email"`
	EventID        string    `json:"event_id"`
	InterviewDate  time.Time `json:"interview_date"`
	InterviewLink  string    `json:"interview_link"`
}

// EmailDraft is a composed but unsent confirmation email.
type EmailDraft struct {
	ToEmail       string    `json:"to_email"`
	ToName        string    `json:"to_name"`
	Subject       string    `json:"subject"`
	Body          string    `json:"body"`
	InterviewDate time.Time `json:"interview_date"`
	InterviewLink string    `json:"interview_link"`
}

// ScheduleResult reports the bookings and drafts produced for a selection of
// candidates. Status is "failed" only when no requested candidate was found
// in the pool; "completed" means the loop ran to completion, even if every
// individual booking failed. Callers must inspect the list lengths.
type ScheduleResult struct {
	Scheduled   []ScheduledInterview `json:"scheduled_interviews"`
	EmailDrafts []EmailDraft         `json:"email_drafts"`
	Status      string               `json:"status"`
}

// DispatchResult reports per-recipient send outcomes. Send failures are
// per-item, never batch-fatal, so Status is always "completed".
type DispatchResult struct {
	SentCount   int      `json:"sent_count"`
	FailedCount int      `json:"failed_count"`
	Sent        []string `json:"sent_emails"`
	Failed      []string `json:"failed_emails"`
	Status      string   `json:"status"`
}

const (
	StatusCompleted = "completed"
	StatusFailed    = "failed"
)
