package handler

import (
	"log/slog"
	"net/http"

	"github.com/rs/xid"

	"github.com/tlind/coachdesk/internal/apperror"
	"github.com/tlind/coachdesk/internal/auth"
	"github.com/tlind/coachdesk/internal/service"
)

// stateCookie holds the OAuth CSRF state between the redirect to Google and
// the callback.
const stateCookie = "oauth_state"

// AuthHandler exposes registration, login and the Google sign-in flow.
type AuthHandler struct {
	authSvc *service.AuthService
	google  *auth.GoogleProvider
	logger  *slog.Logger
}

func NewAuthHandler(authSvc *service.AuthService, google *auth.GoogleProvider, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{authSvc: authSvc, google: google, logger: logger}
}

type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

// HandleRegister creates a coach account and starts a session.
//
// POST /api/auth/register
func (h *AuthHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	res, err := h.authSvc.Register(r.Context(), req.Email, req.Password, req.Name)
	if err != nil {
		writeError(w, err)
		return
	}

	auth.SetSessionCookie(w, res.Token)
	writeJSON(w, http.StatusCreated, res.Coach)
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// HandleLogin verifies credentials and starts a session.
//
// POST /api/auth/login
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	res, err := h.authSvc.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}

	auth.SetSessionCookie(w, res.Token)
	writeJSON(w, http.StatusOK, res.Coach)
}

// HandleLogout drops the session cookie. Tokens are stateless, so there is
// nothing to revoke server-side; the cookie going away ends the session.
//
// POST /api/auth/logout
func (h *AuthHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	auth.ClearSessionCookie(w)
	w.WriteHeader(http.StatusNoContent)
}

// HandleMe returns the authenticated coach's account.
//
// GET /api/auth/me
func (h *AuthHandler) HandleMe(w http.ResponseWriter, r *http.Request) {
	coachID, ok := auth.CoachIDFromContext(r.Context())
	if !ok {
		writeError(w, apperror.Unauthenticated("authentication required"))
		return
	}

	coach, err := h.authSvc.Me(r.Context(), coachID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, coach)
}

// HandleGoogleLogin starts the Google OAuth flow: generate a state value,
// pin it in a short-lived cookie, redirect to Google.
//
// GET /api/auth/google
func (h *AuthHandler) HandleGoogleLogin(w http.ResponseWriter, r *http.Request) {
	state := xid.New().String()

	http.SetCookie(w, &http.Cookie{
		Name:     stateCookie,
		Value:    state,
		Path:     "/",
		MaxAge:   600,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	http.Redirect(w, r, h.google.AuthURL(state), http.StatusTemporaryRedirect)
}

// HandleGoogleCallback finishes the OAuth flow: verify the state cookie,
// exchange the code, upsert the coach, start a session and send the browser
// back to the app.
//
// GET /api/auth/google/callback
func (h *AuthHandler) HandleGoogleCallback(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie(stateCookie)
	if err != nil || cookie.Value == "" || cookie.Value != r.URL.Query().Get("state") {
		writeError(w, apperror.Unauthenticated("OAuth state mismatch"))
		return
	}

	// State is single-use.
	http.SetCookie(w, &http.Cookie{Name: stateCookie, Value: "", Path: "/", MaxAge: -1})

	code := r.URL.Query().Get("code")
	if code == "" {
		writeError(w, apperror.ValidationFailed("code", "missing OAuth code"))
		return
	}

	gUser, err := h.google.Exchange(r.Context(), code)
	if err != nil {
		h.logger.Error("google exchange failed", slog.String("error", err.Error()))
		writeError(w, apperror.Unauthenticated("Google sign-in failed"))
		return
	}

	res, err := h.authSvc.LoginOrRegisterGoogle(r.Context(), gUser)
	if err != nil {
		writeError(w, err)
		return
	}

	auth.SetSessionCookie(w, res.Token)
	http.Redirect(w, r, "/", http.StatusFound)
}
