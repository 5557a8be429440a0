package mail

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/ses"

	"hireFlow/internal/hiring"
)

type fakeSES struct {
	inputs []*ses.SendEmailInput
	err    error
}

func (f *fakeSES) SendEmail(_ context.Context, params *ses.SendEmailInput, _ ...func(*ses.Options)) (*ses.SendEmailOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.inputs = append(f.inputs, params)
	return &ses.SendEmailOutput{}, nil
}

func newTestMailer(api sesAPI) *SESMailer {
	return &SESMailer{
		client:    api,
		source:    "HR Team <hr@example.com>",
		logger:    slog.New(slog.DiscardHandler),
		charsetID: "UTF-8",
	}
}

func TestSendBuildsInput(t *testing.T) {
	api := &fakeSES{}
	m := newTestMailer(api)

	err := m.Send(context.Background(), hiring.EmailDraft{
		ToEmail: "jane@example.com",
		Subject: "Interview Confirmation",
		Body:    "Dear Jane,",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(api.inputs) != 1 {
		t.Fatalf("sent %d emails", len(api.inputs))
	}
	in := api.inputs[0]
	if in.Destination.ToAddresses[0] != "jane@example.com" {
		t.Errorf("to: got %v", in.Destination.ToAddresses)
	}
	if *in.Message.Subject.Data != "Interview Confirmation" {
		t.Errorf("subject: got %q", *in.Message.Subject.Data)
	}
	if *in.Source != "HR Team <hr@example.com>" {
		t.Errorf("source: got %q", *in.Source)
	}
}

func TestSendWrapsError(t *testing.T) {
	m := newTestMailer(&fakeSES{err: errors.New("throttled")})

	err := m.Send(context.Background(), hiring.EmailDraft{ToEmail: "x@example.com"})
	if err == nil {
		t.Fatal("expected error")
	}
}

func TestFormatSource(t *testing.T) {
	if got := formatSource("hr@example.com", ""); got != "hr@example.com" {
		t.Errorf("got %q", got)
	}
	if got := formatSource("hr@example.com", "Acme HR"); got != "Acme HR <hr@example.com>" {
		t.Errorf("got %q", got)
	}
}
