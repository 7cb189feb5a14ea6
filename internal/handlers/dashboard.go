package handlers

import (
	"net/http"
	"time"

	"gorm.io/gorm"

	"github.com/alameree5-svg/sona-recruitment-persistent/internal/httpx"
	"github.com/alameree5-svg/sona-recruitment-persistent/internal/middleware"
	"github.com/alameree5-svg/sona-recruitment-persistent/internal/models"
	"github.com/alameree5-svg/sona-recruitment-persistent/internal/settings"
)

type DashboardHandler struct {
	DB       *gorm.DB
	Settings *settings.Service
}

func NewDashboardHandler(db *gorm.DB, st *settings.Service) *DashboardHandler {
	return &DashboardHandler{DB: db, Settings: st}
}

func (h *DashboardHandler) Register(mux *http.ServeMux) {
	mux.Handle("GET /{$}", middleware.RequireAuth(http.HandlerFunc(h.home)))
}

type dashboardStats struct {
	PaymentsToday      int64   `json:"payments_today"`
	PaymentsTodayTotal float64 `json:"payments_today_total"`
	TempContracts      int64   `json:"temp_contracts"`
	PermContracts      int64   `json:"perm_contracts"`
}

func (h *DashboardHandler) home(w http.ResponseWriter, r *http.Request) {
	today := time.Now().Format("2006-01-02")

	var stats dashboardStats
	h.DB.Model(&models.Payment{}).Where("date = ?", today).Count(&stats.PaymentsToday)
	h.DB.Model(&models.Payment{}).Where("date = ?", today).
		Select("COALESCE(SUM(amount_total), 0)").Scan(&stats.PaymentsTodayTotal)
	h.DB.Model(&models.TempContract{}).Count(&stats.TempContracts)
	h.DB.Model(&models.PermContract{}).Count(&stats.PermContracts)

	if httpx.WantsJSON(r) {
		httpx.JSON(w, http.StatusOK, stats)
		return
	}
	data := baseData(w, r, h.Settings)
	data["Title"] = "nav_dashboard"
	data["Stats"] = stats
	renderTemplate(w, r, "dashboard", data)
}
