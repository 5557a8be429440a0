package calendar

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"

	gcal "google.golang.org/api/calendar/v3"

	"hireFlow/internal/hiring"
)

type fakeEventAPI struct {
	busy      map[time.Time]bool
	countErr  error
	createErr error
	deleteErr error
	created   []*gcal.Event
	deleted   []string
}

func (f *fakeEventAPI) CountEvents(_ context.Context, timeMin, _ time.Time) (int, error) {
	if f.countErr != nil {
		return 0, f.countErr
	}
	if f.busy[timeMin] {
		return 1, nil
	}
	return 0, nil
}

func (f *fakeEventAPI) CreateEvent(_ context.Context, event *gcal.Event) (*gcal.Event, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.created = append(f.created, event)
	return &gcal.Event{
		Id:       "evt-1",
		HtmlLink: "https://calendar.example.com/event/1",
	}, nil
}

func (f *fakeEventAPI) DeleteEvent(_ context.Context, eventID string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deleted = append(f.deleted, eventID)
	return nil
}

func testScheduler(api eventAPI) *Scheduler {
	return NewScheduler(api, slog.New(slog.DiscardHandler), 9, 17)
}

func TestFindAvailableSlotsOneWeekday(t *testing.T) {
	s := testScheduler(&fakeEventAPI{})

	// Monday 2024-06-03.
	day := time.Date(2024, time.June, 3, 0, 0, 0, 0, time.UTC)
	slots, err := s.FindAvailableSlots(context.Background(), day, day, 60)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(slots) != 8 {
		t.Fatalf("got %d slots, want 8", len(slots))
	}
	if slots[0].Hour() != 9 || slots[7].Hour() != 16 {
		t.Fatalf("slot bounds: first %v, last %v", slots[0], slots[7])
	}
	for i := 1; i < len(slots); i++ {
		if !slots[i].After(slots[i-1]) {
			t.Fatal("slots out of order")
		}
	}
}

func TestFindAvailableSlotsSkipsWeekends(t *testing.T) {
	s := testScheduler(&fakeEventAPI{})

	// Saturday through Sunday.
	start := time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, time.June, 2, 0, 0, 0, 0, time.UTC)

	slots, err := s.FindAvailableSlots(context.Background(), start, end, 60)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(slots) != 0 {
		t.Fatalf("weekend produced %d slots", len(slots))
	}
}

func TestFindAvailableSlotsExcludesBusy(t *testing.T) {
	day := time.Date(2024, time.June, 3, 0, 0, 0, 0, time.UTC)
	busyAt := time.Date(2024, time.June, 3, 11, 0, 0, 0, time.UTC)
	s := testScheduler(&fakeEventAPI{busy: map[time.Time]bool{busyAt: true}})

	slots, err := s.FindAvailableSlots(context.Background(), day, day, 60)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(slots) != 7 {
		t.Fatalf("got %d slots, want 7", len(slots))
	}
	for _, slot := range slots {
		if slot.Equal(busyAt) {
			t.Fatal("busy slot returned as available")
		}
	}
}

func TestFindAvailableSlotsLookupFailureMeansBusy(t *testing.T) {
	s := testScheduler(&fakeEventAPI{countErr: errors.New("api down")})

	day := time.Date(2024, time.June, 3, 0, 0, 0, 0, time.UTC)
	slots, err := s.FindAvailableSlots(context.Background(), day, day, 60)
	if err != nil {
		t.Fatalf("sweep should not fail: %v", err)
	}
	if len(slots) != 0 {
		t.Fatalf("got %d slots, want 0", len(slots))
	}
}

func TestScheduleInterviewBuildsEvent(t *testing.T) {
	api := &fakeEventAPI{}
	s := testScheduler(api)

	when := time.Date(2024, time.June, 3, 10, 0, 0, 0, time.UTC)
	booking, err := s.ScheduleInterview(context.Background(), hiring.BookingRequest{
		CandidateName:   "Jane Doe",
		CandidateEmail:  "jane@example.com",
		StartsAt:        when,
		DurationMinutes: 60,
		JobTitle:        "Backend Engineer",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if booking.Link == "" || booking.EventID != "evt-1" {
		t.Fatalf("booking: got %+v", booking)
	}

	if len(api.created) != 1 {
		t.Fatalf("created %d events", len(api.created))
	}
	event := api.created[0]
	if event.Summary != "Interview: Jane Doe - Backend Engineer" {
		t.Errorf("summary: got %q", event.Summary)
	}
	if !strings.Contains(event.Description, "Candidate Email: jane@example.com") {
		t.Errorf("description: got %q", event.Description)
	}
	if event.Start.DateTime != "2024-06-03T10:00:00Z" || event.End.DateTime != "2024-06-03T11:00:00Z" {
		t.Errorf("times: got %s / %s", event.Start.DateTime, event.End.DateTime)
	}
	if event.Reminders == nil || event.Reminders.UseDefault || len(event.Reminders.Overrides) != 1 {
		t.Errorf("reminders: got %+v", event.Reminders)
	}
}

func TestScheduleInterviewPropagatesError(t *testing.T) {
	s := testScheduler(&fakeEventAPI{createErr: errors.New("quota")})

	_, err := s.ScheduleInterview(context.Background(), hiring.BookingRequest{
		CandidateName: "Jane",
		StartsAt:      time.Now(),
	})
	if err == nil {
		t.Fatal("expected error")
	}
}

func TestCancelInterview(t *testing.T) {
	api := &fakeEventAPI{}
	s := testScheduler(api)

	if err := s.CancelInterview(context.Background(), "evt-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(api.deleted) != 1 || api.deleted[0] != "evt-1" {
		t.Fatalf("deleted: %v", api.deleted)
	}
}
