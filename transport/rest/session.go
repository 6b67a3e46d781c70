package rest

import (
	"net/http"
	"time"

	"github.com/google/uuid"
)

const (
	sessionCookie = "user_session"
	sessionTTL    = 24 * time.Hour
)

// session returns the player ID from the session cookie, issuing a new one
// when it is missing or malformed.
func (that *Server) session(w http.ResponseWriter, r *http.Request) string {
	if cookie, err := r.Cookie(sessionCookie); err == nil {
		if _, err = uuid.Parse(cookie.Value); err == nil {
			return cookie.Value
		}
	}

	id := uuid.NewString()
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    id,
		Expires:  time.Now().Add(sessionTTL),
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	that.logger.Debug("session cookie not found, new one created", "playerID", id)

	return id
}
