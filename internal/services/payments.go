package services

import (
	"math"

	"gorm.io/gorm"

	"github.com/alameree5-svg/sona-recruitment-persistent/internal/models"
)

// round2 applies the fixed two-decimal rounding policy used everywhere a
// payment amount is derived.
func round2(v float64) float64 { return math.Round(v*100) / 100 }

// ComputeVAT derives the VAT and gross amounts from a net amount and a rate
// expressed in percent. Both results are rounded to two decimals; the total
// is rounded after adding the already-rounded VAT.
func ComputeVAT(net, rate float64) (vat, total float64) {
	vat = round2(net * rate / 100)
	total = round2(net + vat)
	return vat, total
}

// ReportFilter carries the AND-composed sales report criteria. Empty or
// "all" values disable the respective criterion; dates are calendar days,
// inclusive on both ends.
type ReportFilter struct {
	From   string
	To     string
	Method string
	UserID string
}

// ReportTotals is the in-process aggregate over the filtered rows.
type ReportTotals struct {
	Net   float64 `json:"net"`
	VAT   float64 `json:"vat"`
	Total float64 `json:"total"`
}

type ReportService struct{ DB *gorm.DB }

func NewReportService(db *gorm.DB) *ReportService { return &ReportService{DB: db} }

// Sales returns the payments matching the filter ordered by date ascending,
// plus their summed totals. The aggregate is computed here rather than in
// the store so it always reflects exactly the returned rows.
func (s *ReportService) Sales(f ReportFilter) ([]models.Payment, ReportTotals, error) {
	q := s.DB.Model(&models.Payment{})
	if f.From != "" {
		q = q.Where("date >= ?", day(f.From))
	}
	if f.To != "" {
		q = q.Where("date <= ?", day(f.To))
	}
	if f.Method != "" && f.Method != "all" {
		q = q.Where("method = ?", f.Method)
	}
	if f.UserID != "" && f.UserID != "all" {
		q = q.Where("user_id = ?", f.UserID)
	}
	var rows []models.Payment
	if err := q.Order("date asc, id asc").Find(&rows).Error; err != nil {
		return nil, ReportTotals{}, err
	}
	var t ReportTotals
	for _, row := range rows {
		t.Net += row.AmountNet
		t.VAT += row.AmountVAT
		t.Total += row.AmountTotal
	}
	t.Net, t.VAT, t.Total = round2(t.Net), round2(t.VAT), round2(t.Total)
	return rows, t, nil
}

// day truncates a date-time string to its calendar-day prefix so stored
// YYYY-MM-DD values compare correctly.
func day(s string) string {
	if len(s) > 10 {
		return s[:10]
	}
	return s
}
