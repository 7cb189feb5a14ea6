package auth

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"
)

// The cookie only carries an HMAC-signed user id; the four-field session
// summary is hydrated from the database on every request via the loader
// configured at bootstrap, so the server stays the source of truth for
// username/role/name.

type ctxKey string

const (
	sessionCookieName = "session"
	sessionCtxKey     = ctxKey("session")
)

// Session is the per-request user summary available to handlers.
type Session struct {
	UserID   uint
	Username string
	Role     string
	Name     string
}

// SessionLoader resolves a cookie user id to a live session, or reports
// that the user no longer exists.
type SessionLoader func(ctx context.Context, uid uint) (*Session, bool)

var loader SessionLoader

// SetSessionLoader configures the loader used by Middleware.
func SetSessionLoader(l SessionLoader) { loader = l }

var configuredSecret string

// SetSecret installs the signing secret resolved by the config layer.
// An empty value is ignored so tests keep the default.
func SetSecret(s string) {
	if s != "" {
		configuredSecret = s
	}
}

// Secret returns the configured secret, falling back to SESSION_SECRET and
// then the development default.
func Secret() string {
	if configuredSecret != "" {
		return configuredSecret
	}
	if s := os.Getenv("SESSION_SECRET"); s != "" {
		return s
	}
	return "sona-secret"
}

func sign(uidStr string) string {
	mac := hmac.New(sha256.New, []byte(Secret()))
	mac.Write([]byte(uidStr))
	return base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}

// CreateSession sets a signed cookie with the user id. The cookie is
// session-scoped: no Expires, gone when the browser closes.
func CreateSession(w http.ResponseWriter, userID uint) {
	uidStr := strconv.FormatUint(uint64(userID), 10)
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    uidStr + "." + sign(uidStr),
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// ClearSession deletes the session cookie.
func ClearSession(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{Name: sessionCookieName, Value: "", Path: "/", Expires: time.Unix(0, 0), MaxAge: -1, HttpOnly: true, SameSite: http.SameSiteLaxMode})
}

// ParseSession validates the cookie signature and returns the user id.
func ParseSession(r *http.Request) (uint, bool) {
	c, err := r.Cookie(sessionCookieName)
	if err != nil || c.Value == "" {
		return 0, false
	}
	parts := strings.Split(c.Value, ".")
	if len(parts) != 2 {
		return 0, false
	}
	uidStr, sig := parts[0], parts[1]
	if !hmac.Equal([]byte(sig), []byte(sign(uidStr))) {
		return 0, false
	}
	id64, err := strconv.ParseUint(uidStr, 10, 64)
	if err != nil {
		return 0, false
	}
	return uint(id64), true
}

// WithSession stores a session in the context. Exposed for tests and the
// middleware below.
func WithSession(ctx context.Context, s *Session) context.Context {
	return context.WithValue(ctx, sessionCtxKey, s)
}

// SessionFrom extracts the current session, if any.
func SessionFrom(ctx context.Context) (*Session, bool) {
	s, ok := ctx.Value(sessionCtxKey).(*Session)
	if !ok || s == nil {
		return nil, false
	}
	return s, true
}

// Middleware attaches the hydrated session to the request context when the
// cookie is valid and the user still exists. A stale cookie is cleared.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if uid, ok := ParseSession(r); ok {
			if loader != nil {
				if s, found := loader(r.Context(), uid); found {
					r = r.WithContext(WithSession(r.Context(), s))
				} else {
					ClearSession(w)
				}
			} else {
				r = r.WithContext(WithSession(r.Context(), &Session{UserID: uid}))
			}
		}
		next.ServeHTTP(w, r)
	})
}
