package db

import (
	"path/filepath"
	"testing"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/alameree5-svg/sona-recruitment-persistent/internal/models"
	"github.com/alameree5-svg/sona-recruitment-persistent/internal/settings"
)

func openMigrated(t *testing.T) *gorm.DB {
	t.Helper()
	gdb, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")),
		&gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := AutoMigrate(gdb); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return gdb
}

func TestAutoMigrateCreatesAllTables(t *testing.T) {
	gdb := openMigrated(t)
	for _, table := range []string{"users", "settings", "payments", "contracts_temp", "contracts_perm"} {
		if !gdb.Migrator().HasTable(table) {
			t.Fatalf("table %s missing", table)
		}
	}
}

func TestSeedInstallsDefaultsAndAdmin(t *testing.T) {
	gdb := openMigrated(t)
	if err := Seed(gdb); err != nil {
		t.Fatalf("Seed: %v", err)
	}

	var s models.Setting
	if err := gdb.Where("key = ?", settings.KeyVATRate).First(&s).Error; err != nil {
		t.Fatalf("vat_rate setting missing: %v", err)
	}
	if s.Value != settings.DefaultVATRate {
		t.Fatalf("vat_rate = %q", s.Value)
	}

	var admin models.User
	if err := gdb.Where("username = ?", "sona").First(&admin).Error; err != nil {
		t.Fatalf("bootstrap admin missing: %v", err)
	}
	if admin.Role != models.RoleAdmin {
		t.Fatalf("role = %q", admin.Role)
	}
	if bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte("sona")) != nil {
		t.Fatal("bootstrap password not set to the documented default")
	}
}

func TestSeedIsIdempotent(t *testing.T) {
	gdb := openMigrated(t)
	if err := Seed(gdb); err != nil {
		t.Fatal(err)
	}
	if err := Seed(gdb); err != nil {
		t.Fatalf("second Seed: %v", err)
	}

	var users, rows int64
	gdb.Model(&models.User{}).Count(&users)
	gdb.Model(&models.Setting{}).Count(&rows)
	if users != 1 {
		t.Fatalf("users = %d, want 1", users)
	}
	if rows != 4 {
		t.Fatalf("settings = %d, want 4", rows)
	}
}

func TestSeedSkipsAdminWhenUsersExist(t *testing.T) {
	gdb := openMigrated(t)
	existing := models.User{Username: "owner", PasswordHash: "x", Role: models.RoleAdmin}
	if err := gdb.Create(&existing).Error; err != nil {
		t.Fatal(err)
	}
	if err := Seed(gdb); err != nil {
		t.Fatal(err)
	}
	var count int64
	gdb.Model(&models.User{}).Where("username = ?", "sona").Count(&count)
	if count != 0 {
		t.Fatal("bootstrap admin created despite existing users")
	}
}

func TestSeedKeepsModifiedSettings(t *testing.T) {
	gdb := openMigrated(t)
	if err := Seed(gdb); err != nil {
		t.Fatal(err)
	}
	if err := gdb.Model(&models.Setting{}).Where("key = ?", settings.KeyVATRate).Update("value", "12").Error; err != nil {
		t.Fatal(err)
	}
	if err := Seed(gdb); err != nil {
		t.Fatal(err)
	}
	var s models.Setting
	gdb.Where("key = ?", settings.KeyVATRate).First(&s)
	if s.Value != "12" {
		t.Fatalf("re-seed overwrote operator value, got %q", s.Value)
	}
}
