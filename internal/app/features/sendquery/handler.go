// Package sendquery forwards public contact-form submissions to the club
// inbox by email.
package sendquery

import (
	"encoding/json"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/pixelit-club/clubhub/internal/app/system/htmlsanitize"
	"github.com/pixelit-club/clubhub/internal/app/system/mailer"
	"github.com/pixelit-club/clubhub/internal/app/system/webjson"
)

type Handler struct {
	Mail      mailer.Mailer
	Recipient string
	Log       *zap.Logger
}

// NewHandler constructs a sendquery Handler; recipient is the fixed club
// address every query is delivered to.
func NewHandler(mail mailer.Mailer, recipient string, logger *zap.Logger) *Handler {
	return &Handler{
		Mail:      mail,
		Recipient: recipient,
		Log:       logger,
	}
}

type queryRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

// Send handles POST /api/send-query. All three fields are required; no
// mail is dispatched when any is empty. Delivery failures are a 500 with
// no retry.
func (h *Handler) Send(w http.ResponseWriter, r *http.Request) {
	var req queryRequest
	ct := r.Header.Get("Content-Type")
	if strings.HasPrefix(ct, "application/json") {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			webjson.Message(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
	} else {
		if err := r.ParseForm(); err != nil {
			webjson.Message(w, http.StatusBadRequest, "invalid form body")
			return
		}
		req.Name = r.FormValue("name")
		req.Email = r.FormValue("email")
		req.Message = r.FormValue("message")
	}

	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)
	req.Message = strings.TrimSpace(req.Message)

	if req.Name == "" || req.Email == "" || req.Message == "" {
		webjson.Message(w, http.StatusBadRequest, "All fields are required")
		return
	}

	msg := mailer.BuildQueryEmail(mailer.QueryEmailData{
		Name:    htmlsanitize.Strip(req.Name),
		Email:   htmlsanitize.Strip(req.Email),
		Message: htmlsanitize.Strip(req.Message),
	})
	msg.To = h.Recipient

	if err := h.Mail.Send(r.Context(), msg); err != nil {
		h.Log.Error("query delivery failed",
			zap.String("from", req.Email),
			zap.Error(err))
		webjson.Message(w, http.StatusInternalServerError, "Error sending email")
		return
	}

	webjson.Message(w, http.StatusOK, "Query sent successfully!")
}
