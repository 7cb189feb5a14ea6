package db

import (
	"errors"
	"fmt"
	"os"
	"strings"

	migrate "github.com/golang-migrate/migrate/v4"
	// Blank imports register the postgres driver and file source for golang-migrate.
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/alameree5-svg/sona-recruitment-persistent/internal/config"
	"github.com/alameree5-svg/sona-recruitment-persistent/internal/models"
	"github.com/alameree5-svg/sona-recruitment-persistent/internal/settings"
)

// ConnectAndMigrate opens the store and brings the schema up to date.
// With DATABASE_DSN set the store is postgres and MIGRATIONS=1 selects the
// SQL migration path; otherwise a sqlite file under DATA_DIR is used with
// AutoMigrate (the single-office deployment the product ships as).
func ConnectAndMigrate(cfg config.Config) (*gorm.DB, error) {
	logLevel := logger.Silent
	if os.Getenv("DB_DEBUG") == "1" {
		logLevel = logger.Info
	}
	gcfg := &gorm.Config{Logger: logger.Default.LogMode(logLevel)}

	var (
		db  *gorm.DB
		err error
	)
	if cfg.DatabaseDSN != "" {
		db, err = gorm.Open(postgres.Open(cfg.DatabaseDSN), gcfg)
	} else {
		if mkErr := os.MkdirAll(cfg.DataDir, 0o755); mkErr != nil {
			return nil, fmt.Errorf("create data dir: %w", mkErr)
		}
		db, err = gorm.Open(sqlite.Open(cfg.SQLitePath()), gcfg)
	}
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	if pingErr := db.Exec("SELECT 1").Error; pingErr != nil {
		return nil, fmt.Errorf("store ping failed: %w", pingErr)
	}

	if cfg.DatabaseDSN != "" && boolEnv("MIGRATIONS") {
		if err := runSQLMigrations(cfg.DatabaseDSN); err != nil {
			return nil, fmt.Errorf("sql migrations failed: %w", err)
		}
	} else {
		if err := AutoMigrate(db); err != nil {
			return nil, err
		}
	}

	for _, table := range []string{"users", "settings", "payments", "contracts_temp", "contracts_perm"} {
		if !db.Migrator().HasTable(table) {
			return nil, errors.New("missing table after migration: " + table)
		}
	}

	if boolEnv("DB_SEED") {
		if err := Seed(db); err != nil {
			return nil, fmt.Errorf("seed failed: %w", err)
		}
	}
	return db, nil
}

// AutoMigrate creates or updates the five application tables.
func AutoMigrate(db *gorm.DB) error {
	for _, m := range []interface{}{
		&models.User{}, &models.Setting{}, &models.Payment{},
		&models.TempContract{}, &models.PermContract{},
	} {
		if err := db.AutoMigrate(m); err != nil {
			return fmt.Errorf("automigrate %T: %w", m, err)
		}
	}
	return nil
}

// Seed installs the default settings and, when no user exists yet, the
// bootstrap administrator. Idempotent: re-running changes nothing.
//
// The bootstrap credentials are a setup-time convenience only; the operator
// is expected to rotate them immediately, hence the loud warning.
func Seed(db *gorm.DB) error {
	defaults := map[string]string{
		settings.KeyBrandName:  settings.DefaultBrandName,
		settings.KeyVATRate:    settings.DefaultVATRate,
		settings.KeyVATVisible: settings.DefaultVATVisible,
		settings.KeyVATNumber:  settings.DefaultVATNumber,
	}
	for key, value := range defaults {
		var existing models.Setting
		if err := db.Where("key = ?", key).First(&existing).Error; errors.Is(err, gorm.ErrRecordNotFound) {
			if err := db.Create(&models.Setting{Key: key, Value: value}).Error; err != nil {
				return err
			}
		}
	}

	var userCount int64
	if err := db.Model(&models.User{}).Count(&userCount).Error; err != nil {
		return err
	}
	if userCount == 0 {
		hash, err := bcrypt.GenerateFromPassword([]byte("sona"), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		admin := models.User{Username: "sona", PasswordHash: string(hash), Role: models.RoleAdmin, Name: "Sona Admin"}
		if err := db.Create(&admin).Error; err != nil {
			return err
		}
		logrus.Warn("seeded bootstrap admin 'sona' with the default password; rotate it before taking the system into use")
	}
	return nil
}

// runSQLMigrations executes migrations in ./migrations using the
// golang-migrate file source. Postgres only.
func runSQLMigrations(dsn string) error {
	m, err := migrate.New("file://migrations", dsn)
	if err != nil {
		return err
	}
	if err = m.Up(); err != nil && err != migrate.ErrNoChange {
		return err
	}
	return nil
}

func boolEnv(name string) bool {
	v := strings.ToLower(os.Getenv(name))
	return v == "1" || v == "true" || v == "yes"
}
