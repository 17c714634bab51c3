package common

import (
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/matst80/slask-storefront/pkg/types"
)

const (
	SessionCookie = "sid"
	sessionMaxAge = 30 * 24 * 60 * 60
)

func setSessionCookie(w http.ResponseWriter, r *http.Request, sessionId string) {
	host, _, _ := strings.Cut(r.Host, ":")
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    sessionId,
		Domain:   strings.TrimPrefix(host, "."),
		SameSite: http.SameSiteLaxMode,
		HttpOnly: true,
		MaxAge:   sessionMaxAge,
		Path:     "/",
	})
}

// HandleSessionCookie returns the session id of the request, issuing a new one
// when the cookie is missing or malformed. New sessions are tracked.
func HandleSessionCookie(trk types.Tracking, w http.ResponseWriter, r *http.Request) string {
	if c, err := r.Cookie(SessionCookie); err == nil {
		if id, err := uuid.Parse(c.Value); err == nil {
			return id.String()
		}
	}
	sessionId := uuid.NewString()
	if trk != nil {
		go trk.TrackSession(sessionId, r.Clone(r.Context()))
	}
	setSessionCookie(w, r, sessionId)
	return sessionId
}
