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

// PermContractHandler manages permanent contracts and their six attached
// documents posted as multipart files.
type PermContractHandler struct {
	DB       *gorm.DB
	Settings *settings.Service
	Files    *uploads.Store
}

func NewPermContractHandler(db *gorm.DB, st *settings.Service, files *uploads.Store) *PermContractHandler {
	return &PermContractHandler{DB: db, Settings: st, Files: files}
}

func (h *PermContractHandler) Register(mux *http.ServeMux) {
	authed := middleware.RequireAuth
	mux.Handle("GET /contracts/perm", authed(http.HandlerFunc(h.list)))
	mux.Handle("GET /contracts/perm/new", authed(http.HandlerFunc(h.newForm)))
	mux.Handle("POST /contracts/perm", authed(http.HandlerFunc(h.create)))
	mux.Handle("GET /contracts/perm/{id}", authed(http.HandlerFunc(h.show)))
	mux.Handle("GET /contracts/perm/{id}/edit", authed(http.HandlerFunc(h.editForm)))
	mux.Handle("PUT /contracts/perm/{id}", authed(http.HandlerFunc(h.update)))
	mux.Handle("DELETE /contracts/perm/{id}", authed(http.HandlerFunc(h.delete)))
}

func (h *PermContractHandler) list(w http.ResponseWriter, r *http.Request) {
	var rows []models.PermContract
	if err := h.DB.Order("id desc").Limit(contractsListLimit).Find(&rows).Error; err != nil {
		httpx.JSONError(w, http.StatusInternalServerError, "failed_to_list_contracts", nil)
		return
	}
	if httpx.WantsJSON(r) {
		httpx.JSON(w, http.StatusOK, map[string]any{"items": rows})
		return
	}
	data := baseData(w, r, h.Settings)
	data["Title"] = "nav_contracts_perm"
	data["Contracts"] = rows
	renderTemplate(w, r, "contracts_perm", data)
}

func (h *PermContractHandler) newForm(w http.ResponseWriter, r *http.Request) {
	data := baseData(w, r, h.Settings)
	data["Title"] = "nav_contracts_perm"
	data["Contract"] = models.PermContract{Party1: models.AgencyName}
	data["Action"] = "/contracts/perm"
	renderTemplate(w, r, "contract_perm_form", data)
}

func (h *PermContractHandler) create(w http.ResponseWriter, r *http.Request) {
	if err := parseAnyForm(r, multipartMemory); err != nil {
		middleware.FlashError(w, r, "flash_save_error")
		http.Redirect(w, r, "/contracts/perm", http.StatusSeeOther)
		return
	}
	c := models.PermContract{Party1: models.AgencyName}
	h.fill(&c, r)
	if s, ok := auth.SessionFrom(r.Context()); ok {
		c.CreatedBy = s.UserID
	}
	h.applyFiles(&c, r)
	if err := h.DB.Create(&c).Error; err != nil {
		middleware.FlashError(w, r, "flash_save_error")
		http.Redirect(w, r, "/contracts/perm", http.StatusSeeOther)
		return
	}
	middleware.Flash(w, r, "flash_contract_created")
	http.Redirect(w, r, "/contracts/perm", http.StatusSeeOther)
}

func (h *PermContractHandler) show(w http.ResponseWriter, r *http.Request) {
	var c models.PermContract
	if err := h.DB.First(&c, idParam(r)).Error; err != nil {
		http.Redirect(w, r, "/contracts/perm", http.StatusSeeOther)
		return
	}
	if httpx.WantsJSON(r) {
		httpx.JSON(w, http.StatusOK, c)
		return
	}
	data := baseData(w, r, h.Settings)
	data["Title"] = "nav_contracts_perm"
	data["Contract"] = c
	renderTemplate(w, r, "contract_perm_show", data)
}

func (h *PermContractHandler) editForm(w http.ResponseWriter, r *http.Request) {
	var c models.PermContract
	if err := h.DB.First(&c, idParam(r)).Error; err != nil {
		http.Redirect(w, r, "/contracts/perm", http.StatusSeeOther)
		return
	}
	data := baseData(w, r, h.Settings)
	data["Title"] = "nav_contracts_perm"
	data["Contract"] = c
	data["Action"] = "/contracts/perm/" + r.PathValue("id") + "?_method=PUT"
	renderTemplate(w, r, "contract_perm_form", data)
}

// update overwrites the text fields; any document field without a newly
// uploaded file keeps its stored path.
func (h *PermContractHandler) update(w http.ResponseWriter, r *http.Request) {
	var c models.PermContract
	if err := h.DB.First(&c, idParam(r)).Error; err != nil {
		http.Redirect(w, r, "/contracts/perm", http.StatusSeeOther)
		return
	}
	if err := parseAnyForm(r, multipartMemory); err != nil {
		middleware.FlashError(w, r, "flash_save_error")
		http.Redirect(w, r, "/contracts/perm", http.StatusSeeOther)
		return
	}
	h.fill(&c, r)
	h.applyFiles(&c, r)
	if err := h.DB.Save(&c).Error; err != nil {
		middleware.FlashError(w, r, "flash_save_error")
		http.Redirect(w, r, "/contracts/perm", http.StatusSeeOther)
		return
	}
	middleware.Flash(w, r, "flash_contract_saved")
	http.Redirect(w, r, "/contracts/perm", http.StatusSeeOther)
}

func (h *PermContractHandler) delete(w http.ResponseWriter, r *http.Request) {
	if id := idParam(r); id != 0 {
		h.DB.Delete(&models.PermContract{}, id)
	}
	middleware.Flash(w, r, "flash_contract_deleted")
	http.Redirect(w, r, "/contracts/perm", http.StatusSeeOther)
}

func (h *PermContractHandler) fill(c *models.PermContract, r *http.Request) {
	c.SponsorName = r.FormValue("sponsor_name")
	c.SponsorPhone = r.FormValue("sponsor_phone")
	c.SponsorNationality = r.FormValue("sponsor_nationality")
	c.SponsorAddress = r.FormValue("sponsor_address")
	c.EmployeeName = r.FormValue("employee_name")
	c.EmployeePhone = r.FormValue("employee_phone")
	c.Amount = formFloat(r, "amount")
	c.DateFrom = r.FormValue("date_from")
	c.DateTo = r.FormValue("date_to")
	c.HasWarranty = r.FormValue("has_warranty") == "1" || r.FormValue("has_warranty") == "on"
	c.WarrantyDuration = r.FormValue("warranty_duration")
	c.OfficeTerms = r.FormValue("office_terms")
}

// applyFiles stores each uploaded document and points the matching field at
// the new public path. Fields with no upload are left alone.
func (h *PermContractHandler) applyFiles(c *models.PermContract, r *http.Request) {
	for field, target := range map[string]**string{
		"sponsor_id_file":        &c.SponsorIDPath,
		"sponsor_passport_file":  &c.SponsorPassportPath,
		"employee_passport_file": &c.EmployeePassportPath,
		"employee_id_file":       &c.EmployeeIDPath,
		"sign_sponsor_file":      &c.SignSponsorPath,
		"sign_office_file":       &c.SignOfficePath,
	} {
		if r.MultipartForm == nil {
			return
		}
		fhs := r.MultipartForm.File[field]
		if len(fhs) == 0 {
			continue
		}
		path, err := h.Files.SaveFile(fhs[0])
		if err != nil {
			continue
		}
		*target = &path
	}
}
