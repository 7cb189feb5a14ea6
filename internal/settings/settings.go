package settings

import (
	"errors"
	"strconv"

	"gorm.io/gorm"

	"github.com/alameree5-svg/sona-recruitment-persistent/internal/models"
)

// Persisted keys and their documented defaults.
const (
	KeyBrandName  = "brand_name"
	KeyVATRate    = "vat_rate"
	KeyVATVisible = "vat_visible"
	KeyVATNumber  = "vat_number"

	DefaultBrandName  = "سونا للتوظيف - العين"
	DefaultVATRate    = "5"
	DefaultVATVisible = "1"
	DefaultVATNumber  = "1000000000"
)

type Service struct{ DB *gorm.DB }

func NewService(db *gorm.DB) *Service { return &Service{DB: db} }

// Get returns the stored value or def when the key is absent.
func (s *Service) Get(key, def string) string {
	var row models.Setting
	err := s.DB.Where("key = ?", key).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) || err != nil {
		return def
	}
	return row.Value
}

// Set upserts a key. Values are stored as strings; Snapshot does the typing.
func (s *Service) Set(key, value string) error {
	var row models.Setting
	err := s.DB.Where("key = ?", key).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return s.DB.Create(&models.Setting{Key: key, Value: value}).Error
	}
	if err != nil {
		return err
	}
	return s.DB.Model(&models.Setting{}).Where("key = ?", key).Update("value", value).Error
}

// Snapshot is the typed view of the settings table that request paths
// consume, parsed and validated in one place instead of at each call site.
type Snapshot struct {
	BrandName  string
	VATRate    float64
	VATVisible bool
	VATNumber  string
}

// Snapshot loads current settings, applying defaults for absent keys and
// falling back to the default rate when the stored value does not parse.
func (s *Service) Snapshot() Snapshot {
	snap := Snapshot{
		BrandName:  s.Get(KeyBrandName, DefaultBrandName),
		VATVisible: s.Get(KeyVATVisible, DefaultVATVisible) == "1",
		VATNumber:  s.Get(KeyVATNumber, DefaultVATNumber),
	}
	rate, err := strconv.ParseFloat(s.Get(KeyVATRate, DefaultVATRate), 64)
	if err != nil || rate < 0 {
		rate, _ = strconv.ParseFloat(DefaultVATRate, 64)
	}
	snap.VATRate = rate
	return snap
}
