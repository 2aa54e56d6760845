package auth

import (
	"context"
	"net/http"
)

// contextKey is unexported so only this package can read or write the
// coach id stored in a request context.
type contextKey string

const coachIDKey contextKey = "coachID"

// SessionCookie is the name of the HttpOnly cookie carrying the JWT.
const SessionCookie = "token"

// RequireAuth enforces authentication on protected routes. It reads the
// JWT from the session cookie, validates it, and stores the coach id in
// the request context. Missing or invalid tokens end the request with 401.
func RequireAuth(tokens *TokenService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			coachID, err := extractCoachID(r, tokens)
			if err != nil {
				w.Header().Set("Content-Type", "application/json")
				http.Error(w, `{"error":"unauthenticated","message":"valid authentication required"}`, http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), coachIDKey, coachID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// CoachIDFromContext retrieves the authenticated coach's id.
// Returns ("", false) on an unauthenticated request.
func CoachIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(coachIDKey).(string)
	return id, ok && id != ""
}

// extractCoachID reads the session cookie and validates the JWT inside it.
func extractCoachID(r *http.Request, tokens *TokenService) (string, error) {
	cookie, err := r.Cookie(SessionCookie)
	if err != nil {
		return "", err
	}
	return tokens.Validate(cookie.Value)
}

// SetSessionCookie writes the JWT as an HttpOnly, SameSite=Lax cookie.
func SetSessionCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   int(sessionDuration.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// ClearSessionCookie tells the browser to drop the session cookie.
func ClearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
