package handlers

import (
	"net/http"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/alameree5-svg/sona-recruitment-persistent/internal/httpx"
	"github.com/alameree5-svg/sona-recruitment-persistent/internal/middleware"
	"github.com/alameree5-svg/sona-recruitment-persistent/internal/models"
	"github.com/alameree5-svg/sona-recruitment-persistent/internal/settings"
	"github.com/alameree5-svg/sona-recruitment-persistent/internal/validation"
)

// UserHandler is admin-only; the guard is applied at registration so the
// handler bodies can assume an admin session.
type UserHandler struct {
	DB       *gorm.DB
	Settings *settings.Service
}

func NewUserHandler(db *gorm.DB, st *settings.Service) *UserHandler {
	return &UserHandler{DB: db, Settings: st}
}

func (h *UserHandler) Register(mux *http.ServeMux) {
	admin := middleware.RequireAdmin
	mux.Handle("GET /users", admin(http.HandlerFunc(h.list)))
	mux.Handle("GET /users/new", admin(http.HandlerFunc(h.newForm)))
	mux.Handle("POST /users", admin(http.HandlerFunc(h.create)))
	mux.Handle("GET /users/{id}/edit", admin(http.HandlerFunc(h.editForm)))
	mux.Handle("PUT /users/{id}", admin(http.HandlerFunc(h.update)))
	mux.Handle("DELETE /users/{id}", admin(http.HandlerFunc(h.delete)))
}

func (h *UserHandler) list(w http.ResponseWriter, r *http.Request) {
	var users []models.User
	if err := h.DB.Order("id desc").Find(&users).Error; err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_list_users", nil)
		return
	}
	if httpx.WantsJSON(r) {
		httpx.JSON(w, http.StatusOK, map[string]any{"items": users})
		return
	}
	data := baseData(w, r, h.Settings)
	data["Title"] = "nav_users"
	data["Users"] = users
	renderTemplate(w, r, "users", data)
}

func (h *UserHandler) newForm(w http.ResponseWriter, r *http.Request) {
	data := baseData(w, r, h.Settings)
	data["Title"] = "nav_users"
	data["UserObj"] = models.User{Role: models.RoleStaff}
	data["Action"] = "/users"
	renderTemplate(w, r, "user_form", data)
}

func (h *UserHandler) create(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		middleware.FlashError(w, r, "flash_save_error")
		http.Redirect(w, r, "/users", http.StatusSeeOther)
		return
	}
	username := strings.TrimSpace(r.FormValue("username"))
	password := r.FormValue("password")
	role := r.FormValue("role")
	if role == "" {
		role = models.RoleStaff
	}
	v := validation.Violations{}
	validation.Required("username", username, v)
	validation.OneOf("role", role, []string{models.RoleAdmin, models.RoleStaff}, v)
	if !v.Empty() {
		middleware.FlashError(w, r, "flash_save_error")
		http.Redirect(w, r, "/users", http.StatusSeeOther)
		return
	}
	if password == "" {
		// the office's historical default for freshly provisioned accounts
		password = "1234"
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		middleware.FlashError(w, r, "flash_save_error")
		http.Redirect(w, r, "/users", http.StatusSeeOther)
		return
	}
	user := models.User{Username: username, PasswordHash: string(hash), Role: role, Name: r.FormValue("name"), Phone: r.FormValue("phone")}
	if err := h.DB.Create(&user).Error; err != nil {
		if isDuplicate(err) {
			middleware.FlashError(w, r, "flash_duplicate_user")
		} else {
			middleware.FlashError(w, r, "flash_save_error")
		}
		http.Redirect(w, r, "/users", http.StatusSeeOther)
		return
	}
	middleware.Flash(w, r, "flash_created")
	http.Redirect(w, r, "/users", http.StatusSeeOther)
}

func (h *UserHandler) editForm(w http.ResponseWriter, r *http.Request) {
	var user models.User
	if err := h.DB.First(&user, idParam(r)).Error; err != nil {
		http.Redirect(w, r, "/users", http.StatusSeeOther)
		return
	}
	data := baseData(w, r, h.Settings)
	data["Title"] = "nav_users"
	data["UserObj"] = user
	data["Action"] = "/users/" + r.PathValue("id") + "?_method=PUT"
	renderTemplate(w, r, "user_form", data)
}

// update overwrites the row; a blank password keeps the stored hash.
func (h *UserHandler) update(w http.ResponseWriter, r *http.Request) {
	var user models.User
	if err := h.DB.First(&user, idParam(r)).Error; err != nil {
		http.Redirect(w, r, "/users", http.StatusSeeOther)
		return
	}
	if err := r.ParseForm(); err != nil {
		middleware.FlashError(w, r, "flash_save_error")
		http.Redirect(w, r, "/users", http.StatusSeeOther)
		return
	}
	user.Username = strings.TrimSpace(r.FormValue("username"))
	user.Name = r.FormValue("name")
	user.Phone = r.FormValue("phone")
	if role := r.FormValue("role"); role == models.RoleAdmin || role == models.RoleStaff {
		user.Role = role
	}
	if password := r.FormValue("password"); password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			middleware.FlashError(w, r, "flash_save_error")
			http.Redirect(w, r, "/users", http.StatusSeeOther)
			return
		}
		user.PasswordHash = string(hash)
	}
	if err := h.DB.Save(&user).Error; err != nil {
		if isDuplicate(err) {
			middleware.FlashError(w, r, "flash_duplicate_user")
		} else {
			middleware.FlashError(w, r, "flash_save_error")
		}
		http.Redirect(w, r, "/users", http.StatusSeeOther)
		return
	}
	middleware.Flash(w, r, "flash_saved")
	http.Redirect(w, r, "/users", http.StatusSeeOther)
}

func (h *UserHandler) delete(w http.ResponseWriter, r *http.Request) {
	if id := idParam(r); id != 0 {
		h.DB.Delete(&models.User{}, id)
	}
	middleware.Flash(w, r, "flash_deleted")
	http.Redirect(w, r, "/users", http.StatusSeeOther)
}

// isDuplicate sniffs store-level uniqueness violations across drivers.
func isDuplicate(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique") || strings.Contains(msg, "duplicate")
}
