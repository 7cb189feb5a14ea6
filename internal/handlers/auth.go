package handlers

import (
	"net/http"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/alameree5-svg/sona-recruitment-persistent/internal/auth"
	"github.com/alameree5-svg/sona-recruitment-persistent/internal/middleware"
	"github.com/alameree5-svg/sona-recruitment-persistent/internal/models"
	"github.com/alameree5-svg/sona-recruitment-persistent/internal/settings"
)

type AuthHandler struct {
	DB       *gorm.DB
	Settings *settings.Service
}

func NewAuthHandler(db *gorm.DB, st *settings.Service) *AuthHandler {
	return &AuthHandler{DB: db, Settings: st}
}

func (h *AuthHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /login", h.loginForm)
	mux.HandleFunc("POST /login", h.login)
	mux.HandleFunc("GET /logout", h.logout)
}

func (h *AuthHandler) loginForm(w http.ResponseWriter, r *http.Request) {
	if _, ok := auth.SessionFrom(r.Context()); ok {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	data := baseData(w, r, h.Settings)
	renderTemplate(w, r, "login", data)
}

// login verifies credentials and establishes the session cookie. An unknown
// username and a wrong password are indistinguishable to the caller.
func (h *AuthHandler) login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		middleware.FlashError(w, r, "flash_login_invalid")
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}
	username := strings.TrimSpace(r.FormValue("username"))
	password := r.FormValue("password")

	var user models.User
	if err := h.DB.Where("username = ?", username).First(&user).Error; err != nil {
		middleware.FlashError(w, r, "flash_login_invalid")
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		middleware.FlashError(w, r, "flash_login_invalid")
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}
	auth.CreateSession(w, user.ID)
	middleware.Flash(w, r, "flash_welcome")
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// logout destroys the session unconditionally.
func (h *AuthHandler) logout(w http.ResponseWriter, r *http.Request) {
	auth.ClearSession(w)
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}
