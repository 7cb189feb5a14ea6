package server

import (
	"context"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/alameree5-svg/sona-recruitment-persistent/internal/auth"
	"github.com/alameree5-svg/sona-recruitment-persistent/internal/config"
	"github.com/alameree5-svg/sona-recruitment-persistent/internal/handlers"
	"github.com/alameree5-svg/sona-recruitment-persistent/internal/middleware"
	"github.com/alameree5-svg/sona-recruitment-persistent/internal/models"
	"github.com/alameree5-svg/sona-recruitment-persistent/internal/settings"
	"github.com/alameree5-svg/sona-recruitment-persistent/internal/uploads"
	"github.com/alameree5-svg/sona-recruitment-persistent/internal/view"
)

// New assembles the full application handler: routes, session loading,
// static and upload file serving, and the outer middleware chain.
func New(db *gorm.DB, cfg config.Config, files *uploads.Store) http.Handler {
	st := settings.NewService(db)

	auth.SetSecret(cfg.SessionSecret)
	auth.SetSessionLoader(func(ctx context.Context, uid uint) (*auth.Session, bool) {
		var u models.User
		if err := db.WithContext(ctx).First(&u, uid).Error; err != nil {
			return nil, false
		}
		return &auth.Session{UserID: u.ID, Username: u.Username, Role: u.Role, Name: u.Name}, true
	})
	view.SetLangResolver(middleware.LangFrom)

	mux := http.NewServeMux()
	handlers.NewAuthHandler(db, st).Register(mux)
	handlers.NewDashboardHandler(db, st).Register(mux)
	handlers.NewUserHandler(db, st).Register(mux)
	handlers.NewSettingsHandler(db, st).Register(mux)
	handlers.NewPaymentHandler(db, st).Register(mux)
	handlers.NewReportHandler(db, st).Register(mux)
	handlers.NewTempContractHandler(db, st, files).Register(mux)
	handlers.NewPermContractHandler(db, st, files).Register(mux)

	health := func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		if err := db.WithContext(r.Context()).Exec("SELECT 1").Error; err != nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			w.Write([]byte(`{"status":"degraded"}`))
			return
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}
	mux.HandleFunc("GET /health", health)
	mux.HandleFunc("GET /healthz", health)

	mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(http.Dir("static"))))
	mux.Handle("GET /uploads/", http.StripPrefix("/uploads/", http.FileServer(http.Dir(files.Dir()))))

	var h http.Handler = mux
	h = auth.Middleware(h)
	h = middleware.MethodOverride(h)
	h = middleware.Prefs(h)
	h = bodyLimit(cfg.MaxUploadBytes, h)
	h = recoverer(h)
	h = requestLog(h)
	return h
}

// bodyLimit caps request bodies so oversize uploads fail fast instead of
// filling the disk.
func bodyLimit(max int64, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Body != nil {
			r.Body = http.MaxBytesReader(w, r.Body, max)
		}
		next.ServeHTTP(w, r)
	})
}

func recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				logrus.WithFields(logrus.Fields{"panic": rec, "path": r.URL.Path}).Error("request panicked")
				http.Error(w, "internal server error", http.StatusInternalServerError)
			}
		}()
		next.ServeHTTP(w, r)
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (sr *statusRecorder) WriteHeader(code int) {
	sr.status = code
	sr.ResponseWriter.WriteHeader(code)
}

func requestLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sr := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(sr, r)
		logrus.WithFields(logrus.Fields{
			"method":   r.Method,
			"path":     r.URL.Path,
			"status":   sr.status,
			"duration": time.Since(start).String(),
		}).Info("request")
	})
}
