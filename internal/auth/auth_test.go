package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestSessionRoundTrip(t *testing.T) {
	rec := httptest.NewRecorder()
	CreateSession(rec, 42)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range rec.Result().Cookies() {
		req.AddCookie(c)
	}
	uid, ok := ParseSession(req)
	if !ok || uid != 42 {
		t.Fatalf("ParseSession = %d, %v; want 42, true", uid, ok)
	}
}

func TestParseSessionRejectsTamperedCookie(t *testing.T) {
	rec := httptest.NewRecorder()
	CreateSession(rec, 42)
	cookie := rec.Result().Cookies()[0]

	// another uid with the original signature must not validate
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: cookie.Name, Value: "7" + cookie.Value[2:]})
	if _, ok := ParseSession(req); ok {
		t.Fatal("tampered cookie accepted")
	}
}

func TestParseSessionRejectsMalformed(t *testing.T) {
	for _, val := range []string{"", "justone", "a.b.c", "notanumber.sig"} {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		if val != "" {
			req.AddCookie(&http.Cookie{Name: "session", Value: val})
		}
		if _, ok := ParseSession(req); ok {
			t.Fatalf("cookie %q accepted", val)
		}
	}
}

func TestSetSecretRotatesSigning(t *testing.T) {
	old := configuredSecret
	defer func() { configuredSecret = old }()

	rec := httptest.NewRecorder()
	CreateSession(rec, 7)
	staleCookie := rec.Result().Cookies()[0]

	SetSecret("rotated-secret")

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(staleCookie)
	if _, ok := ParseSession(req); ok {
		t.Fatal("cookie signed under the old secret still validates")
	}

	fresh := httptest.NewRecorder()
	CreateSession(fresh, 7)
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range fresh.Result().Cookies() {
		req.AddCookie(c)
	}
	if uid, ok := ParseSession(req); !ok || uid != 7 {
		t.Fatalf("ParseSession = %d, %v under the configured secret", uid, ok)
	}

	// blank config keeps the current secret
	SetSecret("")
	if Secret() != "rotated-secret" {
		t.Fatalf("Secret() = %q after blank SetSecret", Secret())
	}
}

func TestClearSessionExpiresCookie(t *testing.T) {
	rec := httptest.NewRecorder()
	ClearSession(rec)
	cookies := rec.Result().Cookies()
	if len(cookies) != 1 || cookies[0].MaxAge != -1 {
		t.Fatalf("cookies = %+v", cookies)
	}
}

func TestMiddlewareHydratesSession(t *testing.T) {
	SetSessionLoader(func(_ context.Context, uid uint) (*Session, bool) {
		if uid == 42 {
			return &Session{UserID: 42, Username: "sona", Role: "admin", Name: "Sona"}, true
		}
		return nil, false
	})
	defer SetSessionLoader(nil)

	var got *Session
	h := Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, _ = SessionFrom(r.Context())
	}))

	rec := httptest.NewRecorder()
	CreateSession(rec, 42)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range rec.Result().Cookies() {
		req.AddCookie(c)
	}
	h.ServeHTTP(httptest.NewRecorder(), req)
	if got == nil || got.Username != "sona" || got.Role != "admin" {
		t.Fatalf("session = %+v", got)
	}
}

func TestMiddlewareClearsStaleCookie(t *testing.T) {
	SetSessionLoader(func(context.Context, uint) (*Session, bool) { return nil, false })
	defer SetSessionLoader(nil)

	h := Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := SessionFrom(r.Context()); ok {
			t.Fatal("stale session attached")
		}
	}))

	seed := httptest.NewRecorder()
	CreateSession(seed, 99)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range seed.Result().Cookies() {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	cleared := false
	for _, c := range rec.Result().Cookies() {
		if c.Name == "session" && c.MaxAge == -1 {
			cleared = true
		}
	}
	if !cleared {
		t.Fatal("stale cookie not cleared")
	}
}
