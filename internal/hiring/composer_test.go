package hiring

import (
	"strings"
	"testing"
	"time"
)

func TestComposerDraft(t *testing.T) {
	c := NewComposer("Acme Corp", 45)
	when := time.Date(2024, time.March, 15, 14, 30, 0, 0, time.UTC)

	draft := c.Draft("Jane Doe", "jane@example.com", when, "https://meet.example.com/abc", "Backend Engineer")

	if draft.ToEmail != "jane@example.com" || draft.ToName != "Jane Doe" {
		t.Fatalf("recipient: got %q / %q", draft.ToEmail, draft.ToName)
	}
	if draft.Subject != "Interview Confirmation: Backend Engineer Position - Acme Corp" {
		t.Fatalf("subject: got %q", draft.Subject)
	}
	if !draft.InterviewDate.Equal(when) {
		t.Fatalf("interview date: got %v", draft.InterviewDate)
	}

	for _, want := range []string{
		"Dear Jane Doe,",
		"Backend Engineer position at Acme Corp",
		"- Date: March 15, 2024 at 02:30 PM UTC",
		"- Duration: 45 minutes",
		"- Meeting Link: https://meet.example.com/abc",
		"Best regards,\nHR Team\nAcme Corp",
	} {
		if !strings.Contains(draft.Body, want) {
			t.Errorf("body missing %q:\n%s", want, draft.Body)
		}
	}
}

func TestComposerDraftConvertsToUTC(t *testing.T) {
	c := NewComposer("Acme Corp", 60)
	loc := time.FixedZone("UTC+5", 5*3600)
	when := time.Date(2024, time.March, 15, 19, 30, 0, 0, loc)

	draft := c.Draft("Jane", "jane@example.com", when, "https://meet.example.com/abc", "Engineer")

	if !strings.Contains(draft.Body, "March 15, 2024 at 02:30 PM UTC") {
		t.Fatalf("date not rendered in UTC:\n%s", draft.Body)
	}
}

func TestNewComposerDefaults(t *testing.T) {
	c := NewComposer("", 0)
	if c.CompanyName != "Our Company" {
		t.Errorf("company: got %q", c.CompanyName)
	}
	if c.DurationMinutes != 60 {
		t.Errorf("duration: got %d", c.DurationMinutes)
	}
}
