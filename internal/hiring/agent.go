package hiring

import (
	"context"
	"log/slog"
	"sort"
	"time"

	"github.com/google/uuid"
)

// TextExtractor converts an uploaded document to plain text and judges
// whether the text plausibly belongs to a resume.
type TextExtractor interface {
	Extract(filename string, data []byte) (string, error)
	IsPlausibleResume(text string) bool
}

// Oracle assesses one resume against a job description. Any failure,
// including unparseable model output, is reported as an error.
type Oracle interface {
	Assess(ctx context.Context, resumeText string, jd JobDescription) (MatchAssessment, error)
}

// BookingRequest describes one calendar event to create.
type BookingRequest struct {
	CandidateName   string
	CandidateEmail  string
	StartsAt        time.Time
	DurationMinutes int
	JobTitle        string
	Description     string
}

// Booking identifies one created calendar event.
type Booking struct {
	EventID string
	Link    string
}

// Scheduler is the calendar collaborator: it books events and sweeps
// free/busy availability.
type Scheduler interface {
	ScheduleInterview(ctx context.Context, req BookingRequest) (Booking, error)
	FindAvailableSlots(ctx context.Context, start, end time.Time, durationMinutes int) ([]time.Time, error)
}

// Mailer sends a composed draft. A non-nil error counts the recipient as
// failed; it is never escalated beyond that draft.
type Mailer interface {
	Send(ctx context.Context, draft EmailDraft) error
}

// ContactFinder recovers contact details from raw resume text. Used only as
// a fallback when the oracle could not extract them.
type ContactFinder interface {
	Find(text string) (name, email, phone string)
}

// Agent sequences the full pipeline for one batch: extract, assess, rank,
// schedule, compose, dispatch. Processing is strictly sequential; every
// per-item failure is skipped so a batch always produces a best-effort
// structured result.
type Agent struct {
	extractor TextExtractor
	oracle    Oracle
	scheduler Scheduler
	mailer    Mailer
	contacts  ContactFinder
	composer  Composer
	logger    *slog.Logger
}

// NewAgent wires the pipeline collaborators together.
func NewAgent(
	extractor TextExtractor,
	oracle Oracle,
	scheduler Scheduler,
	mailer Mailer,
	contacts ContactFinder,
	composer Composer,
	logger *slog.Logger,
) *Agent {
	if logger == nil {
		logger = slog.Default()
	}
	return &Agent{
		extractor: extractor,
		oracle:    oracle,
		scheduler: scheduler,
		mailer:    mailer,
		contacts:  contacts,
		composer:  composer,
		logger:    logger,
	}
}

// Composer exposes the agent's email composer.
func (a *Agent) Composer() Composer {
	return a.composer
}

// Skip reasons recorded per document. They never reach the caller: a skipped
// document is only visible as the gap between Total and Processed.
const (
	skipReasonExtract     = "extract-failed"
	skipReasonImplausible = "not-a-resume"
	skipReasonOracle      = "oracle-failed"
)

type docOutcome struct {
	assessment MatchAssessment
	filename   string
	skipReason string
}

func (o docOutcome) skipped() bool { return o.skipReason != "" }

// ProcessBatch runs the ingest/assess/rank pipeline over a fresh job id.
func (a *Agent) ProcessBatch(ctx context.Context, docs []Document, jd JobDescription) BatchResult {
	return a.RunBatch(ctx, uuid.NewString(), docs, jd)
}

// RunBatch is ProcessBatch with a caller-assigned job id, used by the async
// worker which hands the id to the client before processing starts.
func (a *Agent) RunBatch(ctx context.Context, jobID string, docs []Document, jd JobDescription) BatchResult {
	log := a.logger.With(slog.String("job_id", jobID))
	log.Info("starting resume batch", slog.Int("documents", len(docs)))

	outcomes := make([]docOutcome, 0, len(docs))
	for _, doc := range docs {
		outcome := a.processDocument(ctx, doc, jd)
		if outcome.skipped() {
			log.Warn("document skipped",
				slog.String("filename", doc.Filename),
				slog.String("reason", outcome.skipReason),
			)
			continue
		}
		log.Info("resume assessed",
			slog.String("filename", doc.Filename),
			slog.String("candidate", outcome.assessment.CandidateName),
			slog.Int("score", outcome.assessment.OverallScore),
		)
		outcomes = append(outcomes, outcome)
	}

	ranked := rankOutcomes(outcomes)

	candidates := make([]Candidate, 0, len(ranked))
	assessments := make([]MatchAssessment, 0, len(ranked))
	for _, o := range ranked {
		assessments = append(assessments, o.assessment)
		candidates = append(candidates, Candidate{
			ID:              uuid.NewString(),
			Name:            o.assessment.CandidateName,
			Email:           o.assessment.Email,
			Phone:           o.assessment.Phone,
			ResumeID:        uuid.NewString(),
			JobID:           jobID,
			Filename:        o.filename,
			Score:           o.assessment.OverallScore,
			SkillScore:      o.assessment.SkillScore,
			ExperienceScore: o.assessment.ExperienceScore,
			Summary:         o.assessment.Summary,
			Skills:          o.assessment.MatchedSkills,
			Experience:      o.assessment.YearsOfExperience,
			MatchReasoning:  o.assessment.MatchReasoning,
		})
	}

	return BatchResult{
		JobID:            jobID,
		TotalResumes:     len(docs),
		ProcessedResumes: len(candidates),
		Candidates:       candidates,
		Summary:          Summarize(assessments),
		Status:           StatusCompleted,
	}
}

func (a *Agent) processDocument(ctx context.Context, doc Document, jd JobDescription) docOutcome {
	text, err := a.extractor.Extract(doc.Filename, doc.Data)
	if err != nil {
		return docOutcome{filename: doc.Filename, skipReason: skipReasonExtract}
	}
	if !a.extractor.IsPlausibleResume(text) {
		return docOutcome{filename: doc.Filename, skipReason: skipReasonImplausible}
	}

	assessment, err := a.oracle.Assess(ctx, text, jd)
	if err != nil {
		return docOutcome{filename: doc.Filename, skipReason: skipReasonOracle}
	}

	a.fillMissingContact(&assessment, text)

	return docOutcome{assessment: assessment, filename: doc.Filename}
}

// fillMissingContact backfills contact fields the oracle left empty from a
// regex pass over the raw text.
func (a *Agent) fillMissingContact(assessment *MatchAssessment, text string) {
	if a.contacts == nil {
		return
	}
	if assessment.Email != "" && assessment.Phone != "" && assessment.CandidateName != "Unknown" {
		return
	}
	name, email, phone := a.contacts.Find(text)
	if assessment.Email == "" {
		assessment.Email = email
	}
	if assessment.Phone == "" {
		assessment.Phone = phone
	}
	if assessment.CandidateName == "Unknown" && name != "" {
		assessment.CandidateName = name
	}
}

func rankOutcomes(outcomes []docOutcome) []docOutcome {
	ranked := make([]docOutcome, len(outcomes))
	copy(ranked, outcomes)
	sort.SliceStable(ranked, func(i, j int) bool {
		return assessmentLess(ranked[i].assessment, ranked[j].assessment)
	})
	return ranked
}

const fallbackCandidateEmail = "no-email@example.com"

// ScheduleInterviews books one slot per selected candidate, spacing slots an
// hour apart. The offset is driven by the count of successful bookings, not
// the loop position, so a failed booking never leaves a gap in the calendar.
func (a *Agent) ScheduleInterviews(
	ctx context.Context,
	jobID string,
	candidateIDs []string,
	pool []Candidate,
	jobTitle string,
	startDate time.Time,
) ScheduleResult {
	log := a.logger.With(slog.String("job_id", jobID))

	if startDate.IsZero() {
		startDate = time.Now().Add(24 * time.Hour)
	}

	requested := make(map[string]struct{}, len(candidateIDs))
	for _, id := range candidateIDs {
		requested[id] = struct{}{}
	}

	selected := make([]Candidate, 0, len(candidateIDs))
	for _, c := range pool {
		if _, ok := requested[c.ID]; ok {
			selected = append(selected, c)
		}
	}

	if len(selected) == 0 {
		log.Warn("no candidates selected for interview")
		return ScheduleResult{
			Scheduled:   []ScheduledInterview{},
			EmailDrafts: []EmailDraft{},
			Status:      StatusFailed,
		}
	}

	log.Info("scheduling interviews", slog.Int("candidates", len(selected)))

	scheduled := make([]ScheduledInterview, 0, len(selected))
	drafts := make([]EmailDraft, 0, len(selected))

	for _, candidate := range selected {
		email := candidate.Email
		if email == "" {
			email = fallbackCandidateEmail
		}

		interviewDate := startDate.Add(time.Duration(len(scheduled)) * time.Hour)

		booking, err := a.bookInterview(ctx, BookingRequest{
			CandidateName:   candidate.Name,
			CandidateEmail:  email,
			StartsAt:        interviewDate,
			DurationMinutes: a.composer.DurationMinutes,
			JobTitle:        jobTitle,
			Description:     candidate.Summary,
		})
		if err != nil || booking.Link == "" {
			log.Warn("booking failed, candidate dropped",
				slog.String("candidate_id", candidate.ID),
				slog.Any("error", err),
			)
			continue
		}

		scheduled = append(scheduled, ScheduledInterview{
			CandidateID:    candidate.ID,
			CandidateName:  candidate.Name,
			CandidateEmail: candidate.Email,
			EventID:        booking.EventID,
			InterviewDate:  interviewDate,
			InterviewLink:  booking.Link,
		})
		drafts = append(drafts, a.composer.Draft(candidate.Name, email, interviewDate, booking.Link, jobTitle))
	}

	return ScheduleResult{
		Scheduled:   scheduled,
		EmailDrafts: drafts,
		Status:      StatusCompleted,
	}
}

func (a *Agent) bookInterview(ctx context.Context, req BookingRequest) (Booking, error) {
	if a.scheduler == nil {
		return Booking{}, nil
	}
	return a.scheduler.ScheduleInterview(ctx, req)
}

// DispatchConfirmations sends each draft independently. Failures are
// recorded against the recipient and never abort the batch.
func (a *Agent) DispatchConfirmations(ctx context.Context, drafts []EmailDraft) DispatchResult {
	sent := []string{}
	failed := []string{}

	for _, draft := range drafts {
		if a.mailer == nil {
			failed = append(failed, draft.ToEmail)
			continue
		}
		if err := a.mailer.Send(ctx, draft); err != nil {
			a.logger.Warn("send confirmation failed",
				slog.String("to", draft.ToEmail),
				slog.Any("error", err),
			)
			failed = append(failed, draft.ToEmail)
			continue
		}
		sent = append(sent, draft.ToEmail)
	}

	return DispatchResult{
		SentCount:   len(sent),
		FailedCount: len(failed),
		Sent:        sent,
		Failed:      failed,
		Status:      StatusCompleted,
	}
}

// AvailableSlots delegates the free/busy sweep to the calendar collaborator.
// Any collaborator-level failure yields an empty list, never an error.
func (a *Agent) AvailableSlots(ctx context.Context, start, end time.Time, durationMinutes int) []time.Time {
	if a.scheduler == nil {
		return []time.Time{}
	}
	slots, err := a.scheduler.FindAvailableSlots(ctx, start, end, durationMinutes)
	if err != nil || slots == nil {
		if err != nil {
			a.logger.Warn("availability sweep failed", slog.Any("error", err))
		}
		return []time.Time{}
	}
	return slots
}
