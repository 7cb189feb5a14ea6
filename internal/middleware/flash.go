package middleware

import (
	"net/http"
	"net/url"

	"github.com/alameree5-svg/sona-recruitment-persistent/internal/i18n"
)

// Flash messages ride in short-lived cookies: set on the mutating request,
// read and cleared on the next rendered page.

const (
	flashCookie      = "flash"
	flashErrorCookie = "flash_error"
)

// Flash sets a translated success flash from a message code.
func Flash(w http.ResponseWriter, r *http.Request, code string) {
	setFlash(w, flashCookie, i18n.T(LangFrom(r), code))
}

// FlashError sets a translated error flash from a message code.
func FlashError(w http.ResponseWriter, r *http.Request, code string) {
	setFlash(w, flashErrorCookie, i18n.T(LangFrom(r), code))
}

func setFlash(w http.ResponseWriter, name, msg string) {
	http.SetCookie(w, &http.Cookie{Name: name, Value: url.QueryEscape(msg), Path: "/", MaxAge: 60})
}

// PopFlash returns and clears the pending success and error flashes.
func PopFlash(w http.ResponseWriter, r *http.Request) (success, errMsg string) {
	return popOne(w, r, flashCookie), popOne(w, r, flashErrorCookie)
}

func popOne(w http.ResponseWriter, r *http.Request, name string) string {
	c, err := r.Cookie(name)
	if err != nil || c.Value == "" {
		return ""
	}
	http.SetCookie(w, &http.Cookie{Name: name, Value: "", Path: "/", MaxAge: -1})
	if dec, derr := url.QueryUnescape(c.Value); derr == nil {
		return dec
	}
	return c.Value
}
