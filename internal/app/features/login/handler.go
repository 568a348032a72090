// Package login implements admin authentication: credential login that
// issues a bearer token, and one-time admin registration.
package login

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"go.uber.org/zap"

	adminstore "github.com/pixelit-club/clubhub/internal/app/store/admins"
	"github.com/pixelit-club/clubhub/internal/app/system/auth"
	"github.com/pixelit-club/clubhub/internal/app/system/webjson"
)

type Handler struct {
	Admins *adminstore.Store
	Tokens *auth.Tokens
	Log    *zap.Logger
}

func NewHandler(admins *adminstore.Store, tokens *auth.Tokens, logger *zap.Logger) *Handler {
	return &Handler{
		Admins: admins,
		Tokens: tokens,
		Log:    logger,
	}
}

type credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// decodeCredentials accepts a JSON body or a urlencoded form.
func decodeCredentials(r *http.Request) (credentials, error) {
	var c credentials
	ct := r.Header.Get("Content-Type")
	if strings.HasPrefix(ct, "application/json") {
		if err := json.NewDecoder(r.Body).Decode(&c); err != nil {
			return credentials{}, errors.New("invalid JSON body")
		}
	} else {
		if err := r.ParseForm(); err != nil {
			return credentials{}, errors.New("invalid form body")
		}
		c.Username = r.FormValue("username")
		c.Password = r.FormValue("password")
	}
	c.Username = strings.TrimSpace(c.Username)
	return c, nil
}

// Login handles POST /api/login. A matching credential pair yields a
// signed bearer token; anything else is a single undifferentiated 401.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	creds, err := decodeCredentials(r)
	if err != nil {
		webjson.Message(w, http.StatusBadRequest, err.Error())
		return
	}

	admin, err := h.Admins.Authenticate(r.Context(), creds.Username, creds.Password)
	if errors.Is(err, adminstore.ErrNotFound) {
		webjson.Message(w, http.StatusUnauthorized, "Invalid username or password")
		return
	}
	if err != nil {
		h.Log.Error("login lookup failed", zap.Error(err))
		webjson.Message(w, http.StatusInternalServerError, "Error logging in")
		return
	}

	token, err := h.Tokens.Issue(admin.ID.Hex(), admin.Username)
	if err != nil {
		h.Log.Error("token signing failed", zap.Error(err))
		webjson.Message(w, http.StatusInternalServerError, "Error logging in")
		return
	}

	h.Log.Info("admin logged in", zap.String("username", admin.Username))
	webjson.Write(w, http.StatusOK, map[string]string{"token": token})
}

// Register handles POST /api/register. 400 when the username is taken or
// a field is missing.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	creds, err := decodeCredentials(r)
	if err != nil {
		webjson.Message(w, http.StatusBadRequest, err.Error())
		return
	}
	if creds.Username == "" || creds.Password == "" {
		webjson.Message(w, http.StatusBadRequest, "Username and password are required")
		return
	}

	admin, err := h.Admins.Create(r.Context(), creds.Username, creds.Password)
	if errors.Is(err, adminstore.ErrDuplicateUsername) {
		webjson.Message(w, http.StatusBadRequest, "Username is already taken")
		return
	}
	if err != nil {
		h.Log.Error("admin registration failed", zap.Error(err))
		webjson.Message(w, http.StatusInternalServerError, "Error registering admin")
		return
	}

	h.Log.Info("admin registered", zap.String("username", admin.Username))
	webjson.Write(w, http.StatusCreated, map[string]string{"message": "Admin registered"})
}
