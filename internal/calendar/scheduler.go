package calendar

import (
	"context"
	"log/slog"
	"time"

	"google.golang.org/api/calendar/v3"

	"hireFlow/internal/hiring"
)

// eventAPI is the slice of the calendar client the scheduler needs.
type eventAPI interface {
	CountEvents(ctx context.Context, timeMin, timeMax time.Time) (int, error)
	CreateEvent(ctx context.Context, event *calendar.Event) (*calendar.Event, error)
	DeleteEvent(ctx context.Context, eventID string) error
}

const (
	defaultWorkStartHour = 9
	defaultWorkEndHour   = 17
)

// Scheduler books interview events and sweeps hour-aligned availability
// within working hours.
type Scheduler struct {
	api       eventAPI
	logger    *slog.Logger
	workStart int
	workEnd   int
}

// NewScheduler wraps an event API. Working hours outside (0,24] fall back to
// the 9-17 default.
func NewScheduler(api eventAPI, logger *slog.Logger, workStartHour, workEndHour int) *Scheduler {
	if logger == nil {
		logger = slog.Default()
	}
	if workStartHour < 0 || workStartHour > 23 || workEndHour < 1 || workEndHour > 24 {
		workStartHour = defaultWorkStartHour
		workEndHour = defaultWorkEndHour
	}
	return &Scheduler{
		api:       api,
		logger:    logger,
		workStart: workStartHour,
		workEnd:   workEndHour,
	}
}

// FindAvailableSlots walks each day from start through end inclusive,
// skipping weekends, and probes every hour-aligned slot within working hours.
// A slot is free only when no event overlaps it; a lookup failure marks the
// slot busy rather than aborting the sweep.
func (s *Scheduler) FindAvailableSlots(ctx context.Context, start, end time.Time, durationMinutes int) ([]time.Time, error) {
	slots := []time.Time{}

	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		if wd := day.Weekday(); wd == time.Saturday || wd == time.Sunday {
			continue
		}

		for hour := s.workStart; hour < s.workEnd; hour++ {
			slotStart := time.Date(day.Year(), day.Month(), day.Day(), hour, 0, 0, 0, day.Location())
			slotEnd := slotStart.Add(time.Duration(durationMinutes) * time.Minute)

			count, err := s.api.CountEvents(ctx, slotStart, slotEnd)
			if err != nil {
				s.logger.Warn("slot lookup failed, treating as busy",
					slog.Time("slot", slotStart),
					slog.Any("error", err),
				)
				continue
			}
			if count == 0 {
				slots = append(slots, slotStart)
			}
		}
	}

	s.logger.Info("availability sweep complete", slog.Int("slots", len(slots)))
	return slots, nil
}

// ScheduleInterview creates the calendar event for one booking.
func (s *Scheduler) ScheduleInterview(ctx context.Context, req hiring.BookingRequest) (hiring.Booking, error) {
	jobTitle := req.JobTitle
	if jobTitle == "" {
		jobTitle = "Interview"
	}

	description := req.Description
	if description == "" {
		description = "Interview for " + jobTitle + " position"
	}
	description += "\nCandidate Email: " + req.CandidateEmail

	start := req.StartsAt.UTC()
	end := start.Add(time.Duration(req.DurationMinutes) * time.Minute)

	event := &calendar.Event{
		Summary:     "Interview: " + req.CandidateName + " - " + jobTitle,
		Description: description,
		Start: &calendar.EventDateTime{
			DateTime: start.Format(time.RFC3339),
			TimeZone: "UTC",
		},
		End: &calendar.EventDateTime{
			DateTime: end.Format(time.RFC3339),
			TimeZone: "UTC",
		},
		Reminders: &calendar.EventReminders{
			UseDefault: false,
			Overrides: []*calendar.EventReminder{
				{Method: "popup", Minutes: 60},
			},
			// UseDefault must be serialized even when false or the API
			// applies the calendar defaults anyway.
			ForceSendFields: []string{"UseDefault"},
		},
	}

	created, err := s.api.CreateEvent(ctx, event)
	if err != nil {
		return hiring.Booking{}, err
	}

	s.logger.Info("interview scheduled",
		slog.String("candidate", req.CandidateName),
		slog.String("event_id", created.Id),
		slog.Time("start", start),
	)
	return hiring.Booking{EventID: created.Id, Link: created.HtmlLink}, nil
}

// CancelInterview deletes a previously created interview event.
func (s *Scheduler) CancelInterview(ctx context.Context, eventID string) error {
	if err := s.api.DeleteEvent(ctx, eventID); err != nil {
		return err
	}
	s.logger.Info("interview cancelled", slog.String("event_id", eventID))
	return nil
}
