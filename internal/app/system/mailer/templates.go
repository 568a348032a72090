package mailer

import (
	"bytes"
	"fmt"
	"html/template"
)

// QueryEmailData holds data for the contact-query notification email.
type QueryEmailData struct {
	Name    string
	Email   string
	Message string
}

// BuildQueryEmail creates the notification sent to the club inbox when a
// visitor submits the public contact form, with both HTML and text bodies.
func BuildQueryEmail(data QueryEmailData) Email {
	return Email{
		To:       "", // Set by caller
		Subject:  fmt.Sprintf("New Query from %s", data.Name),
		TextBody: buildQueryText(data),
		HTMLBody: buildQueryHTML(data),
	}
}

func buildQueryText(data QueryEmailData) string {
	var buf bytes.Buffer
	buf.WriteString(fmt.Sprintf("Name: %s\n", data.Name))
	buf.WriteString(fmt.Sprintf("Email: %s\n\n", data.Email))
	buf.WriteString("Message:\n")
	buf.WriteString(data.Message + "\n")
	return buf.String()
}

func buildQueryHTML(data QueryEmailData) string {
	tmpl := template.Must(template.New("query").Parse(queryHTMLTemplate))
	var buf bytes.Buffer
	_ = tmpl.Execute(&buf, data)
	return buf.String()
}

const queryHTMLTemplate = `<!DOCTYPE html>
<html>
<head>
  <meta charset="UTF-8">
  <title>New Query</title>
</head>
<body style="margin: 0; padding: 0; font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, Arial, sans-serif; background-color: #f3f4f6;">
  <table role="presentation" width="100%" cellspacing="0" cellpadding="0" style="background-color: #f3f4f6;">
    <tr>
      <td align="center" style="padding: 40px 20px;">
        <table role="presentation" width="100%" cellspacing="0" cellpadding="0" style="max-width: 480px; background-color: #ffffff; border-radius: 8px;">
          <tr>
            <td style="padding: 24px 32px; border-bottom: 1px solid #e5e7eb;">
              <h1 style="margin: 0; font-size: 20px; font-weight: 600; color: #111827;">New query from {{.Name}}</h1>
            </td>
          </tr>
          <tr>
            <td style="padding: 24px 32px;">
              <p style="margin: 0 0 8px; font-size: 14px; color: #6b7280;">Reply to:
                <a href="mailto:{{.Email}}" style="color: #4f46e5;">{{.Email}}</a>
              </p>
              <p style="margin: 16px 0 0; font-size: 15px; color: #374151; line-height: 1.6; white-space: pre-line;">{{.Message}}</p>
            </td>
          </tr>
        </table>
      </td>
    </tr>
  </table>
</body>
</html>`
