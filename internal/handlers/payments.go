package handlers

import (
	"net/http"
	"strconv"
	"time"

	"gorm.io/gorm"

	"github.com/alameree5-svg/sona-recruitment-persistent/internal/auth"
	"github.com/alameree5-svg/sona-recruitment-persistent/internal/httpx"
	"github.com/alameree5-svg/sona-recruitment-persistent/internal/middleware"
	"github.com/alameree5-svg/sona-recruitment-persistent/internal/models"
	"github.com/alameree5-svg/sona-recruitment-persistent/internal/services"
	"github.com/alameree5-svg/sona-recruitment-persistent/internal/settings"
	"github.com/alameree5-svg/sona-recruitment-persistent/internal/validation"
)

const paymentsListLimit = 200

// paymentRow joins each payment with the recording user's name for the
// list view.
type paymentRow struct {
	models.Payment
	UserName string `json:"user_name"`
}

type PaymentHandler struct {
	DB       *gorm.DB
	Settings *settings.Service
}

func NewPaymentHandler(db *gorm.DB, st *settings.Service) *PaymentHandler {
	return &PaymentHandler{DB: db, Settings: st}
}

func (h *PaymentHandler) Register(mux *http.ServeMux) {
	authed := middleware.RequireAuth
	mux.Handle("GET /payments", authed(http.HandlerFunc(h.list)))
	mux.Handle("GET /payments/new", authed(http.HandlerFunc(h.newForm)))
	mux.Handle("POST /payments", authed(http.HandlerFunc(h.create)))
}

func (h *PaymentHandler) list(w http.ResponseWriter, r *http.Request) {
	var rows []paymentRow
	err := h.DB.Model(&models.Payment{}).
		Select("payments.*, (SELECT name FROM users WHERE users.id = payments.user_id) AS user_name").
		Order("payments.id desc").
		Limit(paymentsListLimit).
		Scan(&rows).Error
	if err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_list_payments", nil)
		return
	}
	if httpx.WantsJSON(r) {
		httpx.JSON(w, http.StatusOK, map[string]any{"items": rows})
		return
	}
	data := baseData(w, r, h.Settings)
	data["Title"] = "nav_payments"
	data["Payments"] = rows
	renderTemplate(w, r, "payments", data)
}

func (h *PaymentHandler) newForm(w http.ResponseWriter, r *http.Request) {
	data := baseData(w, r, h.Settings)
	data["Title"] = "nav_payments"
	data["Today"] = time.Now().Format("2006-01-02")
	renderTemplate(w, r, "payment_form", data)
}

// create records a payment. VAT and total are derived server-side from the
// posted net amount and rate; client-submitted derived amounts are ignored.
func (h *PaymentHandler) create(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		middleware.FlashError(w, r, "flash_save_error")
		http.Redirect(w, r, "/payments", http.StatusSeeOther)
		return
	}
	net := formFloat(r, "amount_net")
	method := r.FormValue("method")
	v := validation.Violations{}
	validation.Required("method", method, v)
	validation.NonNegativeFloat("amount_net", net, v)
	if !v.Empty() {
		middleware.FlashError(w, r, "flash_save_error")
		http.Redirect(w, r, "/payments/new", http.StatusSeeOther)
		return
	}

	date := r.FormValue("date")
	if date == "" {
		date = time.Now().Format("2006-01-02")
	}
	if len(date) > 10 {
		date = date[:10]
	}

	// posted rate wins; the office rate is the fallback for forms that
	// leave it out
	rate := h.Settings.Snapshot().VATRate
	if raw := r.FormValue("vat_rate"); raw != "" {
		if parsed, err := strconv.ParseFloat(raw, 64); err == nil && parsed >= 0 {
			rate = parsed
		}
	}
	vat, total := services.ComputeVAT(net, rate)

	p := models.Payment{
		Date:         date,
		Method:       method,
		AmountNet:    net,
		VATRate:      rate,
		AmountVAT:    vat,
		AmountTotal:  total,
		Note:         r.FormValue("note"),
		ContractType: r.FormValue("contract_type"),
		ContractID:   formUint(r, "contract_id"),
	}
	if s, ok := auth.SessionFrom(r.Context()); ok {
		p.UserID = s.UserID
	}
	if err := h.DB.Create(&p).Error; err != nil {
		middleware.FlashError(w, r, "flash_save_error")
		http.Redirect(w, r, "/payments", http.StatusSeeOther)
		return
	}
	middleware.Flash(w, r, "flash_payment_added")
	http.Redirect(w, r, "/payments", http.StatusSeeOther)
}
