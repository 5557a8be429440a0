package mail

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"

	"hireFlow/internal/hiring"
)

// sesAPI is the slice of the SES client used here, kept as an interface for
// test doubles.
type sesAPI interface {
	SendEmail(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error)
}

// SESMailer delivers interview confirmation emails through AWS SES.
type SESMailer struct {
	client    sesAPI
	source    string
	logger    *slog.Logger
	charsetID string
}

// NewSESMailer loads the default AWS credential chain for the given region.
// fromName is optional; when set the Source is rendered as "Name <email>".
func NewSESMailer(ctx context.Context, region, fromEmail, fromName string, logger *slog.Logger) (*SESMailer, error) {
	if fromEmail == "" {
		return nil, fmt.Errorf("sender email is required")
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &SESMailer{
		client:    ses.NewFromConfig(cfg),
		source:    formatSource(fromEmail, fromName),
		logger:    logger,
		charsetID: "UTF-8",
	}, nil
}

func formatSource(email, name string) string {
	if name == "" {
		return email
	}
	return fmt.Sprintf("%s <%s>", name, email)
}

// Send delivers one draft to its recipient.
func (m *SESMailer) Send(ctx context.Context, draft hiring.EmailDraft) error {
	_, err := m.client.SendEmail(ctx, &ses.SendEmailInput{
		Destination: &types.Destination{
			ToAddresses: []string{draft.ToEmail},
		},
		Message: &types.Message{
			Subject: &types.Content{
				Data:    aws.String(draft.Subject),
				Charset: aws.String(m.charsetID),
			},
			Body: &types.Body{
				Text: &types.Content{
					Data:    aws.String(draft.Body),
					Charset: aws.String(m.charsetID),
				},
			},
		},
		Source: aws.String(m.source),
	})
	if err != nil {
		return fmt.Errorf("send email to %s: %w", draft.ToEmail, err)
	}

	m.logger.Info("confirmation email sent", slog.String("to", draft.ToEmail))
	return nil
}
