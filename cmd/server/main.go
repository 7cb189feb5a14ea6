package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/alameree5-svg/sona-recruitment-persistent/internal/config"
	"github.com/alameree5-svg/sona-recruitment-persistent/internal/db"
	"github.com/alameree5-svg/sona-recruitment-persistent/internal/server"
	"github.com/alameree5-svg/sona-recruitment-persistent/internal/uploads"
)

func main() {
	migrateOnly := flag.Bool("migrate-only", false, "run migrations and exit")
	flag.Parse()

	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	if os.Getenv("LOG_JSON") == "1" {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	}

	cfg := config.Load()
	if cfg.Env == "production" {
		logrus.SetLevel(logrus.InfoLevel)
	} else {
		logrus.SetLevel(logrus.DebugLevel)
	}

	gdb, err := db.ConnectAndMigrate(cfg)
	if err != nil {
		logrus.WithError(err).Fatal("store bootstrap failed")
	}
	if *migrateOnly {
		logrus.Info("migrations complete")
		return
	}

	files, err := uploads.NewStore(cfg.UploadDir())
	if err != nil {
		logrus.WithError(err).Fatal("upload dir unavailable")
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           server.New(gdb, cfg, files),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logrus.WithField("addr", srv.Addr).Info("listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logrus.WithError(err).Fatal("server stopped")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	logrus.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logrus.WithError(err).Error("shutdown incomplete")
	}
	if sqlDB, err := gdb.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
