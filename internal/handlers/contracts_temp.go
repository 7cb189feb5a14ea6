package handlers

import (
	"net/http"

	"gorm.io/gorm"

	"github.com/alameree5-svg/sona-recruitment-persistent/internal/auth"
	"github.com/alameree5-svg/sona-recruitment-persistent/internal/httpx"
	"github.com/alameree5-svg/sona-recruitment-persistent/internal/middleware"
	"github.com/alameree5-svg/sona-recruitment-persistent/internal/models"
	"github.com/alameree5-svg/sona-recruitment-persistent/internal/settings"
	"github.com/alameree5-svg/sona-recruitment-persistent/internal/uploads"
)

// multipartMemory is the in-memory threshold for multipart parsing; larger
// parts spill to temp files. The request body cap is enforced at the router.
const multipartMemory = 8 << 20

const contractsListLimit = 200

// TempContractHandler manages temporary employment contracts, including the
// drawn party-1 signature submitted as an image data-URL.
type TempContractHandler struct {
	DB       *gorm.DB
	Settings *settings.Service
	Files    *uploads.Store
}

func NewTempContractHandler(db *gorm.DB, st *settings.Service, files *uploads.Store) *TempContractHandler {
	return &TempContractHandler{DB: db, Settings: st, Files: files}
}

func (h *TempContractHandler) Register(mux *http.ServeMux) {
	authed := middleware.RequireAuth
	mux.Handle("GET /contracts/temp", authed(http.HandlerFunc(h.list)))
	mux.Handle("GET /contracts/temp/new", authed(http.HandlerFunc(h.newForm)))
	mux.Handle("POST /contracts/temp", authed(http.HandlerFunc(h.create)))
	mux.Handle("GET /contracts/temp/{id}", authed(http.HandlerFunc(h.show)))
	mux.Handle("GET /contracts/temp/{id}/edit", authed(http.HandlerFunc(h.editForm)))
	mux.Handle("PUT /contracts/temp/{id}", authed(http.HandlerFunc(h.update)))
	mux.Handle("DELETE /contracts/temp/{id}", authed(http.HandlerFunc(h.delete)))
}

func (h *TempContractHandler) list(w http.ResponseWriter, r *http.Request) {
	var rows []models.TempContract
	if err := h.DB.Order("id desc").Limit(contractsListLimit).Find(&rows).Error; err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_list_contracts", nil)
		return
	}
	if httpx.WantsJSON(r) {
		httpx.JSON(w, http.StatusOK, map[string]any{"items": rows})
		return
	}
	data := baseData(w, r, h.Settings)
	data["Title"] = "nav_contracts_temp"
	data["Contracts"] = rows
	renderTemplate(w, r, "contracts_temp", data)
}

func (h *TempContractHandler) newForm(w http.ResponseWriter, r *http.Request) {
	data := baseData(w, r, h.Settings)
	data["Title"] = "nav_contracts_temp"
	data["Contract"] = models.TempContract{Party1: models.AgencyName}
	data["Action"] = "/contracts/temp"
	renderTemplate(w, r, "contract_temp_form", data)
}

func (h *TempContractHandler) create(w http.ResponseWriter, r *http.Request) {
	if err := parseAnyForm(r, multipartMemory); err != nil {
		middleware.FlashError(w, r, "flash_save_error")
		http.Redirect(w, r, "/contracts/temp", http.StatusSeeOther)
		return
	}
	c := models.TempContract{Party1: models.AgencyName}
	h.fill(&c, r)
	if s, ok := auth.SessionFrom(r.Context()); ok {
		c.CreatedBy = s.UserID
	}
	if path := h.storeSignature(r); path != "" {
		c.SignatureParty1Path = &path
	}
	if err := h.DB.Create(&c).Error; err != nil {
		middleware.FlashError(w, r, "flash_save_error")
		http.Redirect(w, r, "/contracts/temp", http.StatusSeeOther)
		return
	}
	middleware.Flash(w, r, "flash_contract_created")
	http.Redirect(w, r, "/contracts/temp", http.StatusSeeOther)
}

func (h *TempContractHandler) show(w http.ResponseWriter, r *http.Request) {
	var c models.TempContract
	if err := h.DB.First(&c, idParam(r)).Error; err != nil {
		http.Redirect(w, r, "/contracts/temp", http.StatusSeeOther)
		return
	}
	if httpx.WantsJSON(r) {
		httpx.JSON(w, http.StatusOK, c)
		return
	}
	data := baseData(w, r, h.Settings)
	data["Title"] = "nav_contracts_temp"
	data["Contract"] = c
	renderTemplate(w, r, "contract_temp_show", data)
}

func (h *TempContractHandler) editForm(w http.ResponseWriter, r *http.Request) {
	var c models.TempContract
	if err := h.DB.First(&c, idParam(r)).Error; err != nil {
		http.Redirect(w, r, "/contracts/temp", http.StatusSeeOther)
		return
	}
	data := baseData(w, r, h.Settings)
	data["Title"] = "nav_contracts_temp"
	data["Contract"] = c
	data["Action"] = "/contracts/temp/" + r.PathValue("id") + "?_method=PUT"
	renderTemplate(w, r, "contract_temp_form", data)
}

// update overwrites the editable fields. An empty or invalid signature
// payload keeps the stored path.
func (h *TempContractHandler) update(w http.ResponseWriter, r *http.Request) {
	var c models.TempContract
	if err := h.DB.First(&c, idParam(r)).Error; err != nil {
		http.Redirect(w, r, "/contracts/temp", http.StatusSeeOther)
		return
	}
	if err := parseAnyForm(r, multipartMemory); err != nil {
		middleware.FlashError(w, r, "flash_save_error")
		http.Redirect(w, r, "/contracts/temp", http.StatusSeeOther)
		return
	}
	h.fill(&c, r)
	if path := h.storeSignature(r); path != "" {
		c.SignatureParty1Path = &path
	}
	if err := h.DB.Save(&c).Error; err != nil {
		middleware.FlashError(w, r, "flash_save_error")
		http.Redirect(w, r, "/contracts/temp", http.StatusSeeOther)
		return
	}
	middleware.Flash(w, r, "flash_contract_saved")
	http.Redirect(w, r, "/contracts/temp", http.StatusSeeOther)
}

// delete removes the row only; the uploaded signature file stays on disk.
func (h *TempContractHandler) delete(w http.ResponseWriter, r *http.Request) {
	if id := idParam(r); id != 0 {
		h.DB.Delete(&models.TempContract{}, id)
	}
	middleware.Flash(w, r, "flash_contract_deleted")
	http.Redirect(w, r, "/contracts/temp", http.StatusSeeOther)
}

func (h *TempContractHandler) fill(c *models.TempContract, r *http.Request) {
	c.Party2EmployeeName = r.FormValue("party2_employee_name")
	c.Party2Profession = r.FormValue("party2_profession")
	c.Party2MonthlySalary = formFloat(r, "party2_monthly_salary")
	c.Party3 = r.FormValue("party3")
	c.Terms = r.FormValue("terms")
}

// storeSignature decodes the posted data-URL and writes it as a PNG,
// returning the public path, or "" when nothing usable was posted.
func (h *TempContractHandler) storeSignature(r *http.Request) string {
	payload := r.FormValue("sign_party1")
	if payload == "" {
		return ""
	}
	data, err := uploads.DecodeDataURL(payload)
	if err != nil {
		return ""
	}
	path, err := h.Files.SaveBytes(data, ".png")
	if err != nil {
		return ""
	}
	return path
}
