// Package catalog defines the fixed set of content collections the admin
// panel manages and the field constraints each one carries.
//
// The catalog is built once at startup and passed into the collection
// router; it is read-only afterwards. Adding a new content type means
// adding a Definition here — the router, store, and upload handling are
// all generic over it.
package catalog

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
	"time"
)

// FieldKind selects the format constraint applied to a field value.
type FieldKind string

const (
	KindText  FieldKind = "text"
	KindDate  FieldKind = "date"
	KindEmail FieldKind = "email"
	KindPhone FieldKind = "phone"
	KindURL   FieldKind = "url"
)

// Field is one declared attribute of a content record.
type Field struct {
	Name     string
	Required bool
	Kind     FieldKind
}

// Definition describes one content collection: the route segment it is
// served under, the Mongo collection it persists to, and its field set.
// Photo and media attachments are handled uniformly and are declared with
// the HasPhoto / HasMedia flags rather than as ordinary fields.
type Definition struct {
	Route      string
	Collection string
	Fields     []Field
	HasPhoto   bool
	HasMedia   bool
}

// FieldNames returns the declared field names in definition order.
func (d Definition) FieldNames() []string {
	names := make([]string, 0, len(d.Fields))
	for _, f := range d.Fields {
		names = append(names, f.Name)
	}
	return names
}

// AttachmentFields returns the attachment field names this definition
// accepts ("photo" and/or "media").
func (d Definition) AttachmentFields() []string {
	var names []string
	if d.HasPhoto {
		names = append(names, "photo")
	}
	if d.HasMedia {
		names = append(names, "media")
	}
	return names
}

// Catalog maps route names to definitions.
type Catalog struct {
	byRoute map[string]Definition
}

// New builds a Catalog from the given definitions.
func New(defs []Definition) *Catalog {
	byRoute := make(map[string]Definition, len(defs))
	for _, d := range defs {
		byRoute[d.Route] = d
	}
	return &Catalog{byRoute: byRoute}
}

// Lookup resolves a route name to its definition.
func (c *Catalog) Lookup(route string) (Definition, bool) {
	d, ok := c.byRoute[route]
	return d, ok
}

// Routes returns the known route names, sorted.
func (c *Catalog) Routes() []string {
	routes := make([]string, 0, len(c.byRoute))
	for r := range c.byRoute {
		routes = append(routes, r)
	}
	sort.Strings(routes)
	return routes
}

// Definitions returns the five content collections this panel manages.
func Definitions() []Definition {
	return []Definition{
		{
			Route:      "members",
			Collection: "members",
			Fields: []Field{
				{Name: "name", Required: true, Kind: KindText},
				{Name: "registrationNumber", Required: true, Kind: KindText},
				{Name: "role", Required: true, Kind: KindText},
			},
			HasPhoto: true,
		},
		{
			Route:      "coordinators",
			Collection: "coordinators",
			Fields: []Field{
				{Name: "name", Required: true, Kind: KindText},
				{Name: "department", Required: true, Kind: KindText},
				{Name: "phone", Required: true, Kind: KindPhone},
				{Name: "email", Required: true, Kind: KindEmail},
			},
			HasPhoto: true,
		},
		{
			Route:      "upcomingEvents",
			Collection: "upcoming_events",
			Fields: []Field{
				{Name: "title", Required: true, Kind: KindText},
				{Name: "date", Required: true, Kind: KindDate},
				{Name: "location", Required: true, Kind: KindText},
				{Name: "link", Required: false, Kind: KindURL},
			},
			HasPhoto: true,
		},
		{
			Route:      "clubGames",
			Collection: "club_games",
			Fields: []Field{
				{Name: "title", Required: true, Kind: KindText},
				{Name: "genre", Required: true, Kind: KindText},
				{Name: "author", Required: true, Kind: KindText},
				{Name: "link", Required: false, Kind: KindURL},
			},
			HasPhoto: true,
			HasMedia: true,
		},
		{
			Route:      "contacts",
			Collection: "contacts",
			Fields: []Field{
				{Name: "name", Required: true, Kind: KindText},
				{Name: "email", Required: true, Kind: KindEmail},
				{Name: "phone", Required: true, Kind: KindPhone},
			},
			HasPhoto: true,
		},
	}
}

// Default returns the catalog of the five content collections.
func Default() *Catalog {
	return New(Definitions())
}

var (
	imageURLRe = regexp.MustCompile(`^https?://.*\.(?:png|jpg|jpeg|gif|webp)$`)
	videoURLRe = regexp.MustCompile(`^https?://.*\.(?:mp4|webm|ogg)$`)
	urlRe      = regexp.MustCompile(`^https?://\S+$`)
	emailRe    = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
	phoneRe    = regexp.MustCompile(`^\+?[0-9][0-9 ().-]{4,}$`)
)

// IsImageURL reports whether v looks like a fetchable image URL.
func IsImageURL(v string) bool { return imageURLRe.MatchString(v) }

// IsVideoURL reports whether v looks like a fetchable video URL.
func IsVideoURL(v string) bool { return videoURLRe.MatchString(v) }

// ValidationError carries per-field validation messages.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return "invalid fields: " + strings.Join(names, ", ")
}

func (e *ValidationError) add(field, msg string) {
	if e.Fields == nil {
		e.Fields = map[string]string{}
	}
	e.Fields[field] = msg
}

// Validate checks the supplied field values against the definition's
// declared constraints. When partial is true (updates), missing required
// fields are not an error — only the fields that are present are checked.
// Attachment fields may hold either a stored upload path or a direct
// image/video URL.
func Validate(def Definition, fields map[string]string, partial bool) error {
	verr := &ValidationError{}

	for _, f := range def.Fields {
		v := strings.TrimSpace(fields[f.Name])
		if v == "" {
			if f.Required && !partial {
				verr.add(f.Name, fmt.Sprintf("%s is required", f.Name))
			}
			continue
		}
		switch f.Kind {
		case KindDate:
			if !validDate(v) {
				verr.add(f.Name, fmt.Sprintf("%q is not a valid date", v))
			}
		case KindEmail:
			if !emailRe.MatchString(v) {
				verr.add(f.Name, fmt.Sprintf("%q is not a valid email address", v))
			}
		case KindPhone:
			if !phoneRe.MatchString(v) {
				verr.add(f.Name, fmt.Sprintf("%q is not a valid phone number", v))
			}
		case KindURL:
			if !urlRe.MatchString(v) {
				verr.add(f.Name, fmt.Sprintf("%q is not a valid URL", v))
			}
		}
	}

	if v := strings.TrimSpace(fields["photo"]); v != "" {
		if !def.HasPhoto {
			verr.add("photo", "this collection does not accept a photo")
		} else if !isStoredPath(v) && !IsImageURL(v) {
			verr.add("photo", fmt.Sprintf("%q is not a valid image URL", v))
		}
	}
	if v := strings.TrimSpace(fields["media"]); v != "" {
		if !def.HasMedia {
			verr.add("media", "this collection does not accept media")
		} else if !isStoredPath(v) && !IsVideoURL(v) {
			verr.add("media", fmt.Sprintf("%q is not a valid media URL", v))
		}
	}

	for name := range fields {
		if !def.knownField(name) {
			verr.add(name, "unknown field")
		}
	}

	if len(verr.Fields) > 0 {
		return verr
	}
	return nil
}

func (d Definition) knownField(name string) bool {
	for _, f := range d.Fields {
		if f.Name == name {
			return true
		}
	}
	if name == "photo" && d.HasPhoto {
		return true
	}
	if name == "media" && d.HasMedia {
		return true
	}
	return false
}

// isStoredPath accepts upload paths the media ingester produced itself;
// hosted-storage backends return full URLs that already match the
// image/video patterns.
func isStoredPath(v string) bool {
	return strings.HasPrefix(v, "/uploads/")
}

func validDate(v string) bool {
	for _, layout := range []string{"2006-01-02", time.RFC3339, "2006-01-02T15:04"} {
		if _, err := time.Parse(layout, v); err == nil {
			return true
		}
	}
	return false
}
