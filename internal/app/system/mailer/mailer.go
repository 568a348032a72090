// Package mailer sends outbound email through the Resend API. The
// Mailer interface exists so handlers can be tested with a recording
// fake instead of a live relay.
package mailer

import (
	"context"
	"errors"
)

// Email is one outbound message.
type Email struct {
	To       string
	Subject  string
	TextBody string
	HTMLBody string
}

// Mailer dispatches a single email. Delivery failures surface as errors;
// there are no retries.
type Mailer interface {
	Send(ctx context.Context, msg Email) error
}

// Disabled is the Mailer used when no API key is configured. Every send
// fails, which the query endpoint reports as a delivery error.
type Disabled struct{}

func (Disabled) Send(ctx context.Context, msg Email) error {
	return errors.New("outbound mail is not configured")
}
