package handlers

import (
	"net/http"

	"gorm.io/gorm"

	"github.com/alameree5-svg/sona-recruitment-persistent/internal/httpx"
	"github.com/alameree5-svg/sona-recruitment-persistent/internal/middleware"
	"github.com/alameree5-svg/sona-recruitment-persistent/internal/models"
	"github.com/alameree5-svg/sona-recruitment-persistent/internal/services"
	"github.com/alameree5-svg/sona-recruitment-persistent/internal/settings"
)

type ReportHandler struct {
	DB       *gorm.DB
	Settings *settings.Service
	Reports  *services.ReportService
}

func NewReportHandler(db *gorm.DB, st *settings.Service) *ReportHandler {
	return &ReportHandler{DB: db, Settings: st, Reports: services.NewReportService(db)}
}

func (h *ReportHandler) Register(mux *http.ServeMux) {
	mux.Handle("GET /reports/sales", middleware.RequireAuth(http.HandlerFunc(h.sales)))
}

// sales renders the filtered sales report. All filters compose with AND;
// omitted or "all" values match everything.
func (h *ReportHandler) sales(w http.ResponseWriter, r *http.Request) {
	f := services.ReportFilter{
		From:   r.URL.Query().Get("from"),
		To:     r.URL.Query().Get("to"),
		Method: r.URL.Query().Get("method"),
		UserID: r.URL.Query().Get("user_id"),
	}
	rows, totals, err := h.Reports.Sales(f)
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_build_report", nil)
		return
	}
	if httpx.WantsJSON(r) {
		httpx.JSON(w, http.StatusOK, map[string]any{"items": rows, "totals": totals})
		return
	}

	var users []models.User
	h.DB.Order("name asc").Find(&users)

	data := baseData(w, r, h.Settings)
	data["Title"] = "nav_reports"
	data["Rows"] = rows
	data["Totals"] = totals
	data["Users"] = users
	data["Filter"] = f
	renderTemplate(w, r, "reports_sales", data)
}
