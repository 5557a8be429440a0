package hiring

import (
	"strings"
	"text/template"
	"time"
)

// Composer builds interview confirmation emails from a fixed template.
type Composer struct {
	CompanyName     string
	DurationMinutes int
}

const (
	defaultCompanyName     = "Our Company"
	defaultDurationMinutes = 60
)

// NewComposer fills unset options with the documented defaults.
func NewComposer(companyName string, durationMinutes int) Composer {
	if strings.TrimSpace(companyName) == "" {
		companyName = defaultCompanyName
	}
	if durationMinutes <= 0 {
		durationMinutes = defaultDurationMinutes
	}
	return Composer{CompanyName: companyName, DurationMinutes: durationMinutes}
}

var confirmationTemplate = template.Must(template.New("confirmation").Parse(`Dear {{.CandidateName}},

We are pleased to inform you that you have been selected for an interview for the {{.JobTitle}} position at {{.CompanyName}}.

Interview Details:
- Date: {{.FormattedDate}}
- Duration: {{.DurationMinutes}} minutes
- Meeting Link: {{.InterviewLink}}

Please click on the meeting link to join the interview at the scheduled time. We recommend joining 5-10 minutes early to ensure you have time to set up your technology.

Before the interview, please:
1. Test your microphone and camera
2. Ensure you have a stable internet connection
3. Have a copy of your resume available
4. Prepare any questions you may have about the role or our company

If you need to reschedule or have any questions, please reply to this email as soon as possible.

We look forward to speaking with you!

Best regards,
HR Team
{{.CompanyName}}
`))

type confirmationData struct {
	CandidateName   string
	JobTitle        string
	CompanyName     string
	FormattedDate   string
	DurationMinutes int
	InterviewLink   string
}

// Draft builds the confirmation email for one booked interview. It never
// fails: if the template cannot be rendered the draft degrades to a generic
// subject and body but remains sendable.
func (c Composer) Draft(candidateName, candidateEmail string, interviewDate time.Time, interviewLink, jobTitle string) EmailDraft {
	draft := EmailDraft{
		ToEmail:       candidateEmail,
		ToName:        candidateName,
		InterviewDate: interviewDate,
		InterviewLink: interviewLink,
	}

	data := confirmationData{
		CandidateName:   candidateName,
		JobTitle:        jobTitle,
		CompanyName:     c.CompanyName,
		FormattedDate:   formatInterviewDate(interviewDate),
		DurationMinutes: c.DurationMinutes,
		InterviewLink:   interviewLink,
	}

	var body strings.Builder
	if err := confirmationTemplate.Execute(&body, data); err != nil {
		draft.Subject = "Interview Confirmation"
		draft.Body = "Error generating email content"
		return draft
	}

	draft.Subject = "Interview Confirmation: " + jobTitle + " Position - " + c.CompanyName
	draft.Body = body.String()
	return draft
}

// formatInterviewDate renders e.g. "March 15, 2024 at 02:30 PM UTC".
func formatInterviewDate(t time.Time) string {
	return t.UTC().Format("January 02, 2006 at 03:04 PM") + " UTC"
}
