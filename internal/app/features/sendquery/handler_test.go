package sendquery_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/pixelit-club/clubhub/internal/app/features/sendquery"
	"github.com/pixelit-club/clubhub/internal/app/system/mailer"
	"github.com/pixelit-club/clubhub/internal/testutil"
)

// recordingMailer captures sent emails instead of delivering them.
type recordingMailer struct {
	sent []mailer.Email
	err  error
}

func (m *recordingMailer) Send(ctx context.Context, msg mailer.Email) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, msg)
	return nil
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]string {
	t.Helper()
	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to parse response %q: %v", rec.Body.String(), err)
	}
	return body
}

func TestSend_Success(t *testing.T) {
	mail := &recordingMailer{}
	handler := sendquery.NewHandler(mail, "club@example.com", zap.NewNop())

	req := testutil.NewJSONRequest(t, "POST", "/api/send-query", map[string]string{
		"name":    "Visitor",
		"email":   "visitor@example.com",
		"message": "When is the next game jam?",
	})
	rec := httptest.NewRecorder()
	handler.Send(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want %d (body %s)", rec.Code, http.StatusOK, rec.Body.String())
	}
	if msg := decodeBody(t, rec)["message"]; msg != "Query sent successfully!" {
		t.Errorf("message: got %q, want %q", msg, "Query sent successfully!")
	}

	if len(mail.sent) != 1 {
		t.Fatalf("expected 1 email, got %d", len(mail.sent))
	}
	sent := mail.sent[0]
	if sent.To != "club@example.com" {
		t.Errorf("To: got %q, want %q", sent.To, "club@example.com")
	}
	if sent.Subject != "New Query from Visitor" {
		t.Errorf("Subject: got %q, want %q", sent.Subject, "New Query from Visitor")
	}
	if !strings.Contains(sent.TextBody, "When is the next game jam?") {
		t.Errorf("text body is missing the message: %q", sent.TextBody)
	}
	if !strings.Contains(sent.TextBody, "visitor@example.com") {
		t.Errorf("text body is missing the sender address: %q", sent.TextBody)
	}
}

func TestSend_FormBody(t *testing.T) {
	mail := &recordingMailer{}
	handler := sendquery.NewHandler(mail, "club@example.com", zap.NewNop())

	form := url.Values{
		"name":    {"Visitor"},
		"email":   {"visitor@example.com"},
		"message": {"Hello"},
	}
	req := httptest.NewRequest("POST", "/api/send-query", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	handler.Send(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d, want %d (body %s)", rec.Code, http.StatusOK, rec.Body.String())
	}
	if len(mail.sent) != 1 {
		t.Errorf("expected 1 email, got %d", len(mail.sent))
	}
}

func TestSend_MissingFields(t *testing.T) {
	tests := []struct {
		name string
		body map[string]string
	}{
		{"no name", map[string]string{"email": "v@example.com", "message": "Hi"}},
		{"no email", map[string]string{"name": "Visitor", "message": "Hi"}},
		{"no message", map[string]string{"name": "Visitor", "email": "v@example.com"}},
		{"whitespace only", map[string]string{"name": "Visitor", "email": "v@example.com", "message": "   "}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mail := &recordingMailer{}
			handler := sendquery.NewHandler(mail, "club@example.com", zap.NewNop())

			req := testutil.NewJSONRequest(t, "POST", "/api/send-query", tt.body)
			rec := httptest.NewRecorder()
			handler.Send(rec, req)

			if rec.Code != http.StatusBadRequest {
				t.Errorf("status: got %d, want %d", rec.Code, http.StatusBadRequest)
			}
			if msg := decodeBody(t, rec)["message"]; msg != "All fields are required" {
				t.Errorf("message: got %q, want %q", msg, "All fields are required")
			}
			if len(mail.sent) != 0 {
				t.Errorf("no mail should be dispatched, got %d", len(mail.sent))
			}
		})
	}
}

func TestSend_DeliveryFailure(t *testing.T) {
	mail := &recordingMailer{err: errors.New("relay down")}
	handler := sendquery.NewHandler(mail, "club@example.com", zap.NewNop())

	req := testutil.NewJSONRequest(t, "POST", "/api/send-query", map[string]string{
		"name":    "Visitor",
		"email":   "visitor@example.com",
		"message": "Hello",
	})
	rec := httptest.NewRecorder()
	handler.Send(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status: got %d, want %d", rec.Code, http.StatusInternalServerError)
	}
	if msg := decodeBody(t, rec)["message"]; msg != "Error sending email" {
		t.Errorf("message: got %q, want %q", msg, "Error sending email")
	}
}
