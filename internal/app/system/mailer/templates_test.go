package mailer_test

import (
	"strings"
	"testing"

	"github.com/pixelit-club/clubhub/internal/app/system/mailer"
)

func TestBuildQueryEmail(t *testing.T) {
	msg := mailer.BuildQueryEmail(mailer.QueryEmailData{
		Name:    "Visitor",
		Email:   "visitor@example.com",
		Message: "When is the next game jam?",
	})

	if msg.Subject != "New Query from Visitor" {
		t.Errorf("Subject: got %q, want %q", msg.Subject, "New Query from Visitor")
	}
	if msg.To != "" {
		t.Errorf("To should be left for the caller, got %q", msg.To)
	}

	for _, want := range []string{"Visitor", "visitor@example.com", "When is the next game jam?"} {
		if !strings.Contains(msg.TextBody, want) {
			t.Errorf("text body is missing %q", want)
		}
		if !strings.Contains(msg.HTMLBody, want) {
			t.Errorf("HTML body is missing %q", want)
		}
	}
}

func TestBuildQueryEmail_EscapesHTML(t *testing.T) {
	msg := mailer.BuildQueryEmail(mailer.QueryEmailData{
		Name:    "Visitor",
		Email:   "visitor@example.com",
		Message: `<img src=x onerror=alert(1)>`,
	})

	if strings.Contains(msg.HTMLBody, "<img src=x") {
		t.Error("HTML body contains unescaped markup")
	}
	if !strings.Contains(msg.HTMLBody, "&lt;img") {
		t.Error("expected the markup to be entity-escaped")
	}
}
