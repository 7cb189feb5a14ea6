package handlers

import (
	"net/http"

	"gorm.io/gorm"

	"github.com/alameree5-svg/sona-recruitment-persistent/internal/middleware"
	"github.com/alameree5-svg/sona-recruitment-persistent/internal/settings"
)

// SettingsHandler exposes the office settings form. Admin only.
type SettingsHandler struct {
	DB       *gorm.DB
	Settings *settings.Service
}

func NewSettingsHandler(db *gorm.DB, st *settings.Service) *SettingsHandler {
	return &SettingsHandler{DB: db, Settings: st}
}

func (h *SettingsHandler) Register(mux *http.ServeMux) {
	admin := middleware.RequireAdmin
	mux.Handle("GET /settings", admin(http.HandlerFunc(h.form)))
	mux.Handle("POST /settings", admin(http.HandlerFunc(h.save)))
}

func (h *SettingsHandler) form(w http.ResponseWriter, r *http.Request) {
	data := baseData(w, r, h.Settings)
	data["Title"] = "nav_settings"
	data["Values"] = map[string]string{
		settings.KeyBrandName:  h.Settings.Get(settings.KeyBrandName, settings.DefaultBrandName),
		settings.KeyVATRate:    h.Settings.Get(settings.KeyVATRate, settings.DefaultVATRate),
		settings.KeyVATVisible: h.Settings.Get(settings.KeyVATVisible, settings.DefaultVATVisible),
		settings.KeyVATNumber:  h.Settings.Get(settings.KeyVATNumber, settings.DefaultVATNumber),
	}
	renderTemplate(w, r, "settings", data)
}

// save upserts the four known keys. The checkbox posts nothing when
// unchecked, so its absence means "0".
func (h *SettingsHandler) save(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		middleware.FlashError(w, r, "flash_save_error")
		http.Redirect(w, r, "/settings", http.StatusSeeOther)
		return
	}
	visible := "0"
	if r.FormValue(settings.KeyVATVisible) == "1" || r.FormValue(settings.KeyVATVisible) == "on" {
		visible = "1"
	}
	pairs := map[string]string{
		settings.KeyBrandName:  r.FormValue(settings.KeyBrandName),
		settings.KeyVATRate:    r.FormValue(settings.KeyVATRate),
		settings.KeyVATVisible: visible,
		settings.KeyVATNumber:  r.FormValue(settings.KeyVATNumber),
	}
	for key, value := range pairs {
		if err := h.Settings.Set(key, value); err != nil {
			middleware.FlashError(w, r, "flash_save_error")
			http.Redirect(w, r, "/settings", http.StatusSeeOther)
			return
		}
	}
	middleware.Flash(w, r, "flash_settings_saved")
	http.Redirect(w, r, "/settings", http.StatusSeeOther)
}
