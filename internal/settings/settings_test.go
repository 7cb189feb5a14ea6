package settings

import (
	"path/filepath"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/alameree5-svg/sona-recruitment-persistent/internal/models"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")),
		&gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&models.Setting{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return NewService(db)
}

func TestGetReturnsDefaultWhenAbsent(t *testing.T) {
	svc := newTestService(t)
	if got := svc.Get(KeyVATRate, DefaultVATRate); got != "5" {
		t.Fatalf("Get = %q, want %q", got, "5")
	}
}

func TestSetInsertsThenUpdates(t *testing.T) {
	svc := newTestService(t)
	if err := svc.Set(KeyVATRate, "7"); err != nil {
		t.Fatalf("insert: %v", err)
	}
	if got := svc.Get(KeyVATRate, DefaultVATRate); got != "7" {
		t.Fatalf("after insert Get = %q", got)
	}
	if err := svc.Set(KeyVATRate, "10"); err != nil {
		t.Fatalf("update: %v", err)
	}
	if got := svc.Get(KeyVATRate, DefaultVATRate); got != "10" {
		t.Fatalf("after update Get = %q", got)
	}
}

func TestSnapshotDefaults(t *testing.T) {
	svc := newTestService(t)
	snap := svc.Snapshot()
	if snap.BrandName != DefaultBrandName {
		t.Fatalf("BrandName = %q", snap.BrandName)
	}
	if snap.VATRate != 5 {
		t.Fatalf("VATRate = %v", snap.VATRate)
	}
	if !snap.VATVisible {
		t.Fatal("VATVisible should default to true")
	}
	if snap.VATNumber != DefaultVATNumber {
		t.Fatalf("VATNumber = %q", snap.VATNumber)
	}
}

func TestSnapshotBadRateFallsBack(t *testing.T) {
	svc := newTestService(t)
	if err := svc.Set(KeyVATRate, "not-a-number"); err != nil {
		t.Fatal(err)
	}
	if got := svc.Snapshot().VATRate; got != 5 {
		t.Fatalf("VATRate = %v, want default 5", got)
	}

	if err := svc.Set(KeyVATRate, "-3"); err != nil {
		t.Fatal(err)
	}
	if got := svc.Snapshot().VATRate; got != 5 {
		t.Fatalf("negative rate not rejected, VATRate = %v", got)
	}
}

func TestSnapshotVisibleToggle(t *testing.T) {
	svc := newTestService(t)
	if err := svc.Set(KeyVATVisible, "0"); err != nil {
		t.Fatal(err)
	}
	if svc.Snapshot().VATVisible {
		t.Fatal("VATVisible should be false after storing 0")
	}
}
