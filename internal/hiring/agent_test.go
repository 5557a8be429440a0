package hiring

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"
)

type stubExtractor struct {
	failures   map[string]bool
	rejections map[string]bool
}

func (s stubExtractor) Extract(filename string, data []byte) (string, error) {
	if s.failures[filename] {
		return "", errors.New("unreadable document")
	}
	return string(data), nil
}

func (s stubExtractor) IsPlausibleResume(text string) bool {
	return !s.rejections[text]
}

type stubOracle struct {
	byText map[string]MatchAssessment
	errOn  map[string]bool
}

func (s stubOracle) Assess(_ context.Context, resumeText string, _ JobDescription) (MatchAssessment, error) {
	if s.errOn[resumeText] {
		return MatchAssessment{}, errors.New("model unavailable")
	}
	return s.byText[resumeText], nil
}

type stubScheduler struct {
	failOn   map[string]bool
	slots    []time.Time
	slotsErr error
	booked   []BookingRequest
}

func (s *stubScheduler) ScheduleInterview(_ context.Context, req BookingRequest) (Booking, error) {
	if s.failOn[req.CandidateName] {
		return Booking{}, errors.New("calendar rejected event")
	}
	s.booked = append(s.booked, req)
	return Booking{
		EventID: "evt-" + req.CandidateName,
		Link:    "https://meet.example.com/" + req.CandidateName,
	}, nil
}

func (s *stubScheduler) FindAvailableSlots(_ context.Context, _, _ time.Time, _ int) ([]time.Time, error) {
	return s.slots, s.slotsErr
}

type stubMailer struct {
	failOn map[string]bool
	sent   []string
}

func (s *stubMailer) Send(_ context.Context, draft EmailDraft) error {
	if s.failOn[draft.ToEmail] {
		return errors.New("smtp failure")
	}
	s.sent = append(s.sent, draft.ToEmail)
	return nil
}

type stubContacts struct {
	name  string
	email string
	phone string
}

func (s stubContacts) Find(string) (string, string, string) {
	return s.name, s.email, s.phone
}

func testLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func newTestAgent(extractor TextExtractor, oracle Oracle, scheduler Scheduler, mailer Mailer, contacts ContactFinder) *Agent {
	return NewAgent(extractor, oracle, scheduler, mailer, contacts, NewComposer("Acme Corp", 60), testLogger())
}

func TestRunBatchSkipsBadDocumentsWithoutFailing(t *testing.T) {
	extractor := stubExtractor{
		failures:   map[string]bool{"broken.pdf": true},
		rejections: map[string]bool{"grocery list": true},
	}
	oracle := stubOracle{
		byText: map[string]MatchAssessment{
			"good resume": assessment("Alice", 85, 80, 80),
		},
		errOn: map[string]bool{"odd resume": true},
	}
	agent := newTestAgent(extractor, oracle, nil, nil, nil)

	result := agent.RunBatch(context.Background(), "job-1", []Document{
		{Filename: "broken.pdf", Data: []byte("ignored")},
		{Filename: "list.txt", Data: []byte("grocery list")},
		{Filename: "odd.txt", Data: []byte("odd resume")},
		{Filename: "alice.txt", Data: []byte("good resume")},
	}, JobDescription{Title: "Engineer"})

	if result.JobID != "job-1" {
		t.Fatalf("job id: got %q", result.JobID)
	}
	if result.TotalResumes != 4 || result.ProcessedResumes != 1 {
		t.Fatalf("counts: got %d/%d, want 1/4", result.ProcessedResumes, result.TotalResumes)
	}
	if result.Status != StatusCompleted {
		t.Fatalf("status: got %q", result.Status)
	}
	if len(result.Candidates) != 1 || result.Candidates[0].Name != "Alice" {
		t.Fatalf("candidates: got %+v", result.Candidates)
	}
	if result.Candidates[0].Filename != "alice.txt" {
		t.Fatalf("filename not carried: got %q", result.Candidates[0].Filename)
	}
}

func TestProcessBatchRanksCandidates(t *testing.T) {
	extractor := stubExtractor{}
	oracle := stubOracle{byText: map[string]MatchAssessment{
		"r1": assessment("Mid", 60, 60, 60),
		"r2": assessment("Best", 95, 90, 90),
		"r3": assessment("Good", 80, 75, 70),
	}}
	agent := newTestAgent(extractor, oracle, nil, nil, nil)

	result := agent.ProcessBatch(context.Background(), []Document{
		{Filename: "1.txt", Data: []byte("r1")},
		{Filename: "2.txt", Data: []byte("r2")},
		{Filename: "3.txt", Data: []byte("r3")},
	}, JobDescription{Title: "Engineer"})

	if result.JobID == "" {
		t.Fatal("job id not generated")
	}

	want := []string{"Best", "Good", "Mid"}
	for i, name := range want {
		if result.Candidates[i].Name != name {
			t.Fatalf("rank %d: got %q, want %q", i, result.Candidates[i].Name, name)
		}
		if result.Candidates[i].JobID != result.JobID {
			t.Fatalf("candidate %d has job id %q", i, result.Candidates[i].JobID)
		}
	}

	if result.Candidates[0].ID == result.Candidates[1].ID {
		t.Fatal("candidate ids not unique")
	}
}

func TestRunBatchBackfillsContactDetails(t *testing.T) {
	extractor := stubExtractor{}
	oracle := stubOracle{byText: map[string]MatchAssessment{
		"r1": {CandidateName: "Unknown", OverallScore: 70},
	}}
	contacts := stubContacts{name: "Bob Smith", email: "bob@example.com", phone: "(555) 123-4567"}
	agent := newTestAgent(extractor, oracle, nil, nil, contacts)

	result := agent.RunBatch(context.Background(), "job-1", []Document{
		{Filename: "bob.txt", Data: []byte("r1")},
	}, JobDescription{})

	c := result.Candidates[0]
	if c.Name != "Bob Smith" {
		t.Errorf("name: got %q", c.Name)
	}
	if c.Email != "bob@example.com" {
		t.Errorf("email: got %q", c.Email)
	}
	if c.Phone != "(555) 123-4567" {
		t.Errorf("phone: got %q", c.Phone)
	}
}

func TestScheduleInterviewsEmptySelectionFails(t *testing.T) {
	agent := newTestAgent(stubExtractor{}, stubOracle{}, &stubScheduler{}, nil, nil)

	result := agent.ScheduleInterviews(context.Background(), "job-1", []string{"missing"}, []Candidate{
		{ID: "other", Name: "Alice"},
	}, "Engineer", time.Now())

	if result.Status != StatusFailed {
		t.Fatalf("status: got %q", result.Status)
	}
	if len(result.Scheduled) != 0 || len(result.EmailDrafts) != 0 {
		t.Fatalf("expected empty result, got %+v", result)
	}
}

func TestScheduleInterviewsSkipsFailedBookings(t *testing.T) {
	scheduler := &stubScheduler{failOn: map[string]bool{"Bob": true}}
	agent := newTestAgent(stubExtractor{}, stubOracle{}, scheduler, nil, nil)

	start := time.Date(2024, time.June, 3, 10, 0, 0, 0, time.UTC)
	pool := []Candidate{
		{ID: "c1", Name: "Alice", Email: "alice@example.com"},
		{ID: "c2", Name: "Bob", Email: "bob@example.com"},
		{ID: "c3", Name: "Carol", Email: ""},
	}

	result := agent.ScheduleInterviews(context.Background(), "job-1", []string{"c1", "c2", "c3"}, pool, "Engineer", start)

	if result.Status != StatusCompleted {
		t.Fatalf("status: got %q", result.Status)
	}
	if len(result.Scheduled) != 2 {
		t.Fatalf("scheduled: got %d, want 2", len(result.Scheduled))
	}

	// Carol takes the second slot because Bob's booking failed.
	if !result.Scheduled[0].InterviewDate.Equal(start) {
		t.Errorf("first slot: got %v", result.Scheduled[0].InterviewDate)
	}
	if !result.Scheduled[1].InterviewDate.Equal(start.Add(time.Hour)) {
		t.Errorf("second slot: got %v", result.Scheduled[1].InterviewDate)
	}

	if len(result.EmailDrafts) != 2 {
		t.Fatalf("drafts: got %d, want 2", len(result.EmailDrafts))
	}
	if result.EmailDrafts[1].ToEmail != "no-email@example.com" {
		t.Errorf("missing email fallback: got %q", result.EmailDrafts[1].ToEmail)
	}
	if result.Scheduled[1].CandidateEmail != "" {
		t.Errorf("fallback leaked into interview record: got %q", result.Scheduled[1].CandidateEmail)
	}
}

func TestDispatchConfirmationsCountsFailures(t *testing.T) {
	mailer := &stubMailer{failOn: map[string]bool{"bob@example.com": true}}
	agent := newTestAgent(stubExtractor{}, stubOracle{}, nil, mailer, nil)

	result := agent.DispatchConfirmations(context.Background(), []EmailDraft{
		{ToEmail: "alice@example.com", Subject: "s", Body: "b"},
		{ToEmail: "bob@example.com", Subject: "s", Body: "b"},
	})

	if result.SentCount != 1 || result.FailedCount != 1 {
		t.Fatalf("counts: got %d/%d", result.SentCount, result.FailedCount)
	}
	if len(result.Failed) != 1 || result.Failed[0] != "bob@example.com" {
		t.Fatalf("failed list: got %v", result.Failed)
	}
	if result.Status != StatusCompleted {
		t.Fatalf("status: got %q", result.Status)
	}
	if len(mailer.sent) != 1 || mailer.sent[0] != "alice@example.com" {
		t.Fatalf("mailer saw: %v", mailer.sent)
	}
}

func TestAvailableSlotsDegradesToEmpty(t *testing.T) {
	agent := newTestAgent(stubExtractor{}, stubOracle{}, &stubScheduler{slotsErr: errors.New("calendar down")}, nil, nil)

	slots := agent.AvailableSlots(context.Background(), time.Now(), time.Now().Add(24*time.Hour), 60)
	if slots == nil || len(slots) != 0 {
		t.Fatalf("got %v, want empty non-nil slice", slots)
	}

	noScheduler := newTestAgent(stubExtractor{}, stubOracle{}, nil, nil, nil)
	if slots := noScheduler.AvailableSlots(context.Background(), time.Now(), time.Now(), 60); len(slots) != 0 {
		t.Fatalf("nil scheduler: got %v", slots)
	}
}
