package middleware

import (
	"net/http"

	"github.com/alameree5-svg/sona-recruitment-persistent/internal/auth"
	"github.com/alameree5-svg/sona-recruitment-persistent/internal/httpx"
	"github.com/alameree5-svg/sona-recruitment-persistent/internal/models"
)

// RequireAuth redirects anonymous requests to /login (401 JSON for API
// clients). The wrapped handler never runs without a session.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := auth.SessionFrom(r.Context()); !ok {
			deny(w, r, http.StatusUnauthorized, "unauthorized", "/login")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireAdmin additionally checks the admin role; non-admins are sent home
// with a flash rather than an error page.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s, ok := auth.SessionFrom(r.Context())
		if !ok {
			deny(w, r, http.StatusUnauthorized, "unauthorized", "/login")
			return
		}
		if s.Role != models.RoleAdmin {
			if httpx.WantsJSON(r) {
				httpx.JSONError(w, http.StatusForbidden, "forbidden", nil)
				return
			}
			FlashError(w, r, "flash_admin_required")
			http.Redirect(w, r, "/", http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func deny(w http.ResponseWriter, r *http.Request, status int, code, target string) {
	if httpx.WantsJSON(r) {
		httpx.JSONError(w, status, code, nil)
		return
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}
