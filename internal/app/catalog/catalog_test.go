package catalog_test

import (
	"errors"
	"testing"

	"github.com/pixelit-club/clubhub/internal/app/catalog"
)

func mustLookup(t *testing.T, route string) catalog.Definition {
	t.Helper()
	def, ok := catalog.Default().Lookup(route)
	if !ok {
		t.Fatalf("catalog is missing the %q collection", route)
	}
	return def
}

func TestDefault_HasAllCollections(t *testing.T) {
	want := []string{"clubGames", "contacts", "coordinators", "members", "upcomingEvents"}
	got := catalog.Default().Routes()

	if len(got) != len(want) {
		t.Fatalf("routes: got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("routes[%d]: got %q, want %q", i, got[i], want[i])
		}
	}
}

func TestLookup_UnknownRoute(t *testing.T) {
	if _, ok := catalog.Default().Lookup("trophies"); ok {
		t.Error("expected lookup of unknown route to fail")
	}
}

func TestValidate_Valid(t *testing.T) {
	def := mustLookup(t, "members")

	err := catalog.Validate(def, map[string]string{
		"name":               "Ada Lovelace",
		"registrationNumber": "2200031234",
		"role":               "President",
		"photo":              "https://cdn.example.com/ada.png",
	}, false)
	if err != nil {
		t.Errorf("expected valid member, got %v", err)
	}
}

func TestValidate_MissingRequired(t *testing.T) {
	def := mustLookup(t, "members")

	err := catalog.Validate(def, map[string]string{"name": "Ada Lovelace"}, false)

	var verr *catalog.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	for _, field := range []string{"registrationNumber", "role"} {
		if _, ok := verr.Fields[field]; !ok {
			t.Errorf("expected a message for missing field %q, got %v", field, verr.Fields)
		}
	}
}

func TestValidate_PartialSkipsMissingRequired(t *testing.T) {
	def := mustLookup(t, "members")

	if err := catalog.Validate(def, map[string]string{"role": "Treasurer"}, true); err != nil {
		t.Errorf("partial update with one field should pass, got %v", err)
	}
}

func TestValidate_PartialStillChecksFormats(t *testing.T) {
	def := mustLookup(t, "coordinators")

	err := catalog.Validate(def, map[string]string{"email": "not-an-email"}, true)

	var verr *catalog.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if _, ok := verr.Fields["email"]; !ok {
		t.Errorf("expected an email message, got %v", verr.Fields)
	}
}

func TestValidate_FieldFormats(t *testing.T) {
	tests := []struct {
		name     string
		route    string
		fields   map[string]string
		badField string
	}{
		{"bad email", "coordinators", map[string]string{"email": "nope"}, "email"},
		{"bad phone", "coordinators", map[string]string{"phone": "abc"}, "phone"},
		{"bad date", "upcomingEvents", map[string]string{"date": "next tuesday"}, "date"},
		{"bad link", "clubGames", map[string]string{"link": "itch.io/game"}, "link"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			def := mustLookup(t, tt.route)
			err := catalog.Validate(def, tt.fields, true)

			var verr *catalog.ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if _, ok := verr.Fields[tt.badField]; !ok {
				t.Errorf("expected a message for %q, got %v", tt.badField, verr.Fields)
			}
		})
	}
}

func TestValidate_DateLayouts(t *testing.T) {
	def := mustLookup(t, "upcomingEvents")

	for _, v := range []string{"2026-03-14", "2026-03-14T18:30", "2026-03-14T18:30:00Z"} {
		if err := catalog.Validate(def, map[string]string{"date": v}, true); err != nil {
			t.Errorf("date %q should be accepted, got %v", v, err)
		}
	}
}

func TestValidate_UnknownField(t *testing.T) {
	def := mustLookup(t, "contacts")

	err := catalog.Validate(def, map[string]string{
		"name":    "Club Desk",
		"email":   "desk@example.com",
		"phone":   "+91 98765 43210",
		"isAdmin": "true",
	}, false)

	var verr *catalog.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if _, ok := verr.Fields["isAdmin"]; !ok {
		t.Errorf("expected undeclared field to be rejected, got %v", verr.Fields)
	}
}

func TestValidate_PhotoRules(t *testing.T) {
	def := mustLookup(t, "members")

	tests := []struct {
		name  string
		photo string
		ok    bool
	}{
		{"image url", "https://cdn.example.com/team/ada.jpg", true},
		{"stored path", "/uploads/members/2026/03/abcd1234-ada.jpg", true},
		{"pdf url", "https://cdn.example.com/ada.pdf", false},
		{"bare path", "ada.jpg", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := catalog.Validate(def, map[string]string{"photo": tt.photo}, true)
			if tt.ok && err != nil {
				t.Errorf("photo %q should be accepted, got %v", tt.photo, err)
			}
			if !tt.ok && err == nil {
				t.Errorf("photo %q should be rejected", tt.photo)
			}
		})
	}
}

func TestValidate_MediaOnlyWhereDeclared(t *testing.T) {
	games := mustLookup(t, "clubGames")
	if err := catalog.Validate(games, map[string]string{"media": "https://cdn.example.com/trailer.mp4"}, true); err != nil {
		t.Errorf("clubGames should accept media, got %v", err)
	}

	members := mustLookup(t, "members")
	if err := catalog.Validate(members, map[string]string{"media": "https://cdn.example.com/trailer.mp4"}, true); err == nil {
		t.Error("members should reject a media field")
	}
}

func TestIsImageURL(t *testing.T) {
	tests := []struct {
		url string
		ok  bool
	}{
		{"https://example.com/a.png", true},
		{"http://example.com/a.jpeg", true},
		{"https://example.com/a.webp", true},
		{"https://example.com/a.svg", false},
		{"ftp://example.com/a.png", false},
		{"https://example.com/a.png?x=1", false},
	}
	for _, tt := range tests {
		if got := catalog.IsImageURL(tt.url); got != tt.ok {
			t.Errorf("IsImageURL(%q): got %v, want %v", tt.url, got, tt.ok)
		}
	}
}

func TestIsVideoURL(t *testing.T) {
	tests := []struct {
		url string
		ok  bool
	}{
		{"https://example.com/v.mp4", true},
		{"https://example.com/v.webm", true},
		{"https://example.com/v.ogg", true},
		{"https://example.com/v.mov", false},
	}
	for _, tt := range tests {
		if got := catalog.IsVideoURL(tt.url); got != tt.ok {
			t.Errorf("IsVideoURL(%q): got %v, want %v", tt.url, got, tt.ok)
		}
	}
}
