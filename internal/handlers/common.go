package handlers

import (
	"net/http"
	"strconv"

	"github.com/alameree5-svg/sona-recruitment-persistent/internal/auth"
	"github.com/alameree5-svg/sona-recruitment-persistent/internal/middleware"
	"github.com/alameree5-svg/sona-recruitment-persistent/internal/settings"
	"github.com/alameree5-svg/sona-recruitment-persistent/internal/view"
)

// baseData assembles the view-model fields every rendered page shares:
// the current session, the settings snapshot, and any pending flashes.
func baseData(w http.ResponseWriter, r *http.Request, st *settings.Service) map[string]any {
	data := map[string]any{}
	if s, ok := auth.SessionFrom(r.Context()); ok {
		data["Session"] = s
	}
	data["Brand"] = st.Snapshot()
	flash, flashErr := middleware.PopFlash(w, r)
	if flash != "" {
		data["Flash"] = flash
	}
	if flashErr != "" {
		data["FlashError"] = flashErr
	}
	return data
}

// renderTemplate delegates to view.Render, writing a plain error on failure.
func renderTemplate(w http.ResponseWriter, r *http.Request, name string, data map[string]any) {
	if err := view.Render(w, r, name+".html", data); err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		if _, werr := w.Write([]byte("template error: " + err.Error())); werr != nil {
			_ = werr
		}
	}
}

// idParam reads the {id} path value; 0 means absent or malformed.
func idParam(r *http.Request) uint {
	n, err := strconv.ParseUint(r.PathValue("id"), 10, 64)
	if err != nil {
		return 0
	}
	return uint(n)
}

// parseAnyForm accepts urlencoded and multipart bodies alike, since the
// contract forms post multipart even without files.
func parseAnyForm(r *http.Request, maxMemory int64) error {
	if err := r.ParseMultipartForm(maxMemory); err != nil {
		if err == http.ErrNotMultipart {
			return r.ParseForm()
		}
		return err
	}
	return nil
}

func formFloat(r *http.Request, field string) float64 {
	f, _ := strconv.ParseFloat(r.FormValue(field), 64)
	return f
}

func formUint(r *http.Request, field string) uint {
	n, _ := strconv.ParseUint(r.FormValue(field), 10, 64)
	return uint(n)
}
