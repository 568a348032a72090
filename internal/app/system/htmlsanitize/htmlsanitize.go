// Package htmlsanitize strips dangerous markup from user-supplied text
// before it is stored or forwarded by mail.
package htmlsanitize

import "github.com/microcosm-cc/bluemonday"

var (
	ugc    = bluemonday.UGCPolicy()
	strict = bluemonday.StrictPolicy()
)

// Sanitize keeps common user-generated-content markup (links, emphasis,
// lists) and removes scripts, event handlers, and javascript: URLs.
func Sanitize(input string) string {
	return ugc.Sanitize(input)
}

// Strip removes all markup, leaving plain text.
func Strip(input string) string {
	return strict.Sanitize(input)
}
