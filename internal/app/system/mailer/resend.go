package mailer

import (
	"context"
	"fmt"

	"github.com/resend/resend-go/v2"
	"go.uber.org/zap"
)

// ResendMailer sends email via the Resend API.
type ResendMailer struct {
	client   *resend.Client
	from     string
	fromName string
	log      *zap.Logger
}

// NewResend builds a mailer with the given API key and default sender.
func NewResend(apiKey, from, fromName string, logger *zap.Logger) (*ResendMailer, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("resend api key is empty")
	}
	if from == "" {
		return nil, fmt.Errorf("mail from address is empty")
	}
	return &ResendMailer{
		client:   resend.NewClient(apiKey),
		from:     from,
		fromName: fromName,
		log:      logger,
	}, nil
}

func (m *ResendMailer) sender() string {
	if m.fromName == "" {
		return m.from
	}
	return fmt.Sprintf("%s <%s>", m.fromName, m.from)
}

// Send dispatches one email. The caller decides how failures map to HTTP
// responses.
func (m *ResendMailer) Send(ctx context.Context, msg Email) error {
	params := &resend.SendEmailRequest{
		From:    m.sender(),
		To:      []string{msg.To},
		Subject: msg.Subject,
		Text:    msg.TextBody,
		Html:    msg.HTMLBody,
	}

	sent, err := m.client.Emails.SendWithContext(ctx, params)
	if err != nil {
		m.log.Error("mail send failed",
			zap.String("to", msg.To),
			zap.String("subject", msg.Subject),
			zap.Error(err))
		return fmt.Errorf("send mail: %w", err)
	}

	m.log.Info("mail sent",
		zap.String("message_id", sent.Id),
		zap.String("to", msg.To),
		zap.String("subject", msg.Subject))
	return nil
}
