package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"hireFlow/internal/database"
	"hireFlow/internal/hiring"
)

type stubScheduler struct {
	failOn map[string]bool
	slots  []time.Time
	booked []hiring.BookingRequest
}

func (s *stubScheduler) ScheduleInterview(_ context.Context, req hiring.BookingRequest) (hiring.Booking, error) {
	if s.failOn[req.CandidateName] {
		return hiring.Booking{}, fmt.Errorf("calendar rejected event")
	}
	s.booked = append(s.booked, req)
	return hiring.Booking{
		EventID: "evt-" + req.CandidateName,
		Link:    "https://meet.example.com/" + req.CandidateName,
	}, nil
}

func (s *stubScheduler) FindAvailableSlots(_ context.Context, _, _ time.Time, _ int) ([]time.Time, error) {
	return s.slots, nil
}

type stubMailer struct {
	sent []string
}

func (s *stubMailer) Send(_ context.Context, draft hiring.EmailDraft) error {
	s.sent = append(s.sent, draft.ToEmail)
	return nil
}

type stubCanceler struct {
	cancelled []string
}

func (s *stubCanceler) CancelInterview(_ context.Context, eventID string) error {
	s.cancelled = append(s.cancelled, eventID)
	return nil
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(
		&database.User{},
		&database.Job{},
		&database.Candidate{},
		&database.Interview{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func newTestHandler(db *gorm.DB, scheduler *stubScheduler, mailer *stubMailer, canceler interviewCanceler) *HiringHandler {
	logger := slog.New(slog.DiscardHandler)

	var schedulerIface hiring.Scheduler
	if scheduler != nil {
		schedulerIface = scheduler
	}
	var mailerIface hiring.Mailer
	if mailer != nil {
		mailerIface = mailer
	}
	agent := hiring.NewAgent(nil, nil, schedulerIface, mailerIface, nil, hiring.NewComposer("Acme Corp", 60), logger)

	return NewHiringHandler(db, nil, nil, nil, agent, canceler, logger, HiringConfig{
		MaxCandidates:     10,
		MinScoreThreshold: 50,
	})
}

func performJSON(t *testing.T, handler gin.HandlerFunc, method, target string, body any, params gin.Params) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)

	var reader *bytes.Buffer
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewBuffer(data)
	} else {
		reader = &bytes.Buffer{}
	}

	req := httptest.NewRequest(method, target, reader)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = req
	c.Params = params
	c.Set("userID", uint(1))

	handler(c)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode response: %v body=%s", err, w.Body.String())
	}
	return out
}

func seedJob(t *testing.T, db *gorm.DB, jobID string, candidateIDs ...string) database.Job {
	t.Helper()
	job := database.Job{JobID: jobID, UserID: 1, Title: "Backend Engineer", Status: "completed"}
	if err := db.Create(&job).Error; err != nil {
		t.Fatalf("seed job: %v", err)
	}
	for i, id := range candidateIDs {
		candidate := database.Candidate{
			CandidateID: id,
			JobRef:      job.ID,
			Name:        "Candidate " + id,
			Email:       id + "@example.com",
			Score:       90 - i*10,
		}
		if err := db.Create(&candidate).Error; err != nil {
			t.Fatalf("seed candidate: %v", err)
		}
	}
	return job
}

func TestRankCandidatesOrdersAndSelects(t *testing.T) {
	h := newTestHandler(newTestDB(t), nil, nil, nil)

	w := performJSON(t, h.RankCandidates, http.MethodPost, "/v1/hiring/rank", map[string]any{
		"candidates": []map[string]any{
			{"candidate_name": "Low", "overall_score": 30},
			{"candidate_name": "High", "overall_score": 92},
			{"candidate_name": "NoScores"},
		},
	}, nil)

	if w.Code != http.StatusOK {
		t.Fatalf("status: got %d body=%s", w.Code, w.Body.String())
	}
	out := decodeBody(t, w)

	ranked := out["ranked"].([]any)
	first := ranked[0].(map[string]any)
	if first["candidate_name"] != "High" {
		t.Errorf("rank 1: got %v", first["candidate_name"])
	}
	// Missing scores default to 50 and pass the threshold; 30 does not.
	selected := out["selected"].([]any)
	if len(selected) != 2 {
		t.Errorf("selected: got %d, want 2", len(selected))
	}
	if !strings.Contains(out["summary"].(string), "Total candidates: 3") {
		t.Errorf("summary: got %q", out["summary"])
	}
}

func TestCompareCandidatesRecommendation(t *testing.T) {
	h := newTestHandler(newTestDB(t), nil, nil, nil)

	w := performJSON(t, h.CompareCandidates, http.MethodPost, "/v1/hiring/compare", map[string]any{
		"candidate1": map[string]any{"candidate_name": "Alice", "overall_score": 90},
		"candidate2": map[string]any{"candidate_name": "Bob", "overall_score": 60},
	}, nil)

	if w.Code != http.StatusOK {
		t.Fatalf("status: got %d body=%s", w.Code, w.Body.String())
	}
	out := decodeBody(t, w)
	if out["recommendation"] != "Alice is clearly better" {
		t.Errorf("recommendation: got %v", out["recommendation"])
	}
}

func TestScheduleInterviewsPersistsBookings(t *testing.T) {
	db := newTestDB(t)
	scheduler := &stubScheduler{}
	h := newTestHandler(db, scheduler, nil, nil)
	seedJob(t, db, "job-1", "c1", "c2")

	w := performJSON(t, h.ScheduleInterviews, http.MethodPost, "/v1/hiring/schedule-interviews", map[string]any{
		"job_id":        "job-1",
		"candidate_ids": []string{"c1", "c2"},
		"start_date":    "2024-06-03T10:00:00Z",
	}, nil)

	if w.Code != http.StatusOK {
		t.Fatalf("status: got %d body=%s", w.Code, w.Body.String())
	}
	if len(scheduler.booked) != 2 {
		t.Fatalf("bookings: got %d, want 2", len(scheduler.booked))
	}

	var interviews []database.Interview
	if err := db.Find(&interviews).Error; err != nil {
		t.Fatalf("load interviews: %v", err)
	}
	if len(interviews) != 2 {
		t.Fatalf("interview rows: got %d, want 2", len(interviews))
	}
	for _, interview := range interviews {
		if interview.Status != "scheduled" || interview.EventID == "" {
			t.Errorf("interview row: %+v", interview)
		}
	}

	var selected int64
	db.Model(&database.Candidate{}).Where("is_selected = ?", true).Count(&selected)
	if selected != 2 {
		t.Errorf("selected candidates: got %d, want 2", selected)
	}
}

func TestScheduleInterviewsUnknownJob(t *testing.T) {
	h := newTestHandler(newTestDB(t), &stubScheduler{}, nil, nil)

	w := performJSON(t, h.ScheduleInterviews, http.MethodPost, "/v1/hiring/schedule-interviews", map[string]any{
		"job_id":        "missing",
		"candidate_ids": []string{"c1"},
	}, nil)

	if w.Code != http.StatusNotFound {
		t.Fatalf("status: got %d, want 404", w.Code)
	}
}

func TestSendConfirmationsDispatches(t *testing.T) {
	mailer := &stubMailer{}
	h := newTestHandler(newTestDB(t), nil, mailer, nil)

	w := performJSON(t, h.SendConfirmations, http.MethodPost, "/v1/hiring/send-confirmations", map[string]any{
		"drafts": []map[string]any{
			{"to_email": "alice@example.com", "subject": "s", "body": "b"},
		},
	}, nil)

	if w.Code != http.StatusOK {
		t.Fatalf("status: got %d body=%s", w.Code, w.Body.String())
	}
	if len(mailer.sent) != 1 || mailer.sent[0] != "alice@example.com" {
		t.Errorf("mailer saw: %v", mailer.sent)
	}
}

func TestAvailableSlotsReturnsSchedulerSlots(t *testing.T) {
	slot := time.Date(2024, time.June, 3, 10, 0, 0, 0, time.UTC)
	h := newTestHandler(newTestDB(t), &stubScheduler{slots: []time.Time{slot}}, nil, nil)

	w := performJSON(t, h.AvailableSlots, http.MethodGet,
		"/v1/hiring/available-slots?start_date=2024-06-03&end_date=2024-06-07", nil, nil)

	if w.Code != http.StatusOK {
		t.Fatalf("status: got %d body=%s", w.Code, w.Body.String())
	}
	out := decodeBody(t, w)
	if out["count"].(float64) != 1 {
		t.Errorf("count: got %v", out["count"])
	}
}

func TestDraftEmailRendersConfirmation(t *testing.T) {
	h := newTestHandler(newTestDB(t), nil, nil, nil)

	w := performJSON(t, h.DraftEmail, http.MethodPost, "/v1/hiring/draft-email", map[string]any{
		"candidate_name":  "Jane Doe",
		"candidate_email": "jane@example.com",
		"interview_date":  "2024-06-03T10:00:00Z",
		"interview_link":  "https://meet.example.com/jane",
		"job_title":       "Backend Engineer",
	}, nil)

	if w.Code != http.StatusOK {
		t.Fatalf("status: got %d body=%s", w.Code, w.Body.String())
	}
	out := decodeBody(t, w)
	if !strings.Contains(out["subject"].(string), "Backend Engineer") {
		t.Errorf("subject: got %q", out["subject"])
	}
	if !strings.Contains(out["body"].(string), "https://meet.example.com/jane") {
		t.Errorf("body missing link")
	}
}

func TestCancelInterviewMarksRecord(t *testing.T) {
	db := newTestDB(t)
	canceler := &stubCanceler{}
	h := newTestHandler(db, nil, nil, canceler)

	job := seedJob(t, db, "job-1")
	interview := database.Interview{
		EventID:       "evt-1",
		JobRef:        job.ID,
		CandidateID:   "c1",
		CandidateName: "Alice",
		Status:        "scheduled",
	}
	if err := db.Create(&interview).Error; err != nil {
		t.Fatalf("seed interview: %v", err)
	}

	w := performJSON(t, h.CancelInterview, http.MethodDelete, "/v1/hiring/interviews/evt-1", nil,
		gin.Params{{Key: "eventID", Value: "evt-1"}})

	if w.Code != http.StatusOK {
		t.Fatalf("status: got %d body=%s", w.Code, w.Body.String())
	}
	if len(canceler.cancelled) != 1 || canceler.cancelled[0] != "evt-1" {
		t.Errorf("canceler saw: %v", canceler.cancelled)
	}

	var updated database.Interview
	if err := db.Where("event_id = ?", "evt-1").First(&updated).Error; err != nil {
		t.Fatalf("reload interview: %v", err)
	}
	if updated.Status != "cancelled" {
		t.Errorf("status: got %q", updated.Status)
	}
}

func TestCancelInterviewWrongOwner(t *testing.T) {
	db := newTestDB(t)
	h := newTestHandler(db, nil, nil, &stubCanceler{})

	job := database.Job{JobID: "job-2", UserID: 2, Title: "Engineer"}
	if err := db.Create(&job).Error; err != nil {
		t.Fatalf("seed job: %v", err)
	}
	interview := database.Interview{EventID: "evt-9", JobRef: job.ID, Status: "scheduled"}
	if err := db.Create(&interview).Error; err != nil {
		t.Fatalf("seed interview: %v", err)
	}

	w := performJSON(t, h.CancelInterview, http.MethodDelete, "/v1/hiring/interviews/evt-9", nil,
		gin.Params{{Key: "eventID", Value: "evt-9"}})

	if w.Code != http.StatusNotFound {
		t.Fatalf("status: got %d, want 404", w.Code)
	}
}
