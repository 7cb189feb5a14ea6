package models

import "time"

// Payment records a received amount with its VAT breakdown. AmountVAT and
// AmountTotal are derived when the row is created and never edited
// independently.
//
// ContractType/ContractID form an opaque annotation pointing at a temp or
// perm contract. There is deliberately no foreign key; see DESIGN.md.
type Payment struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Date         string    `gorm:"index" json:"date"` // calendar day, YYYY-MM-DD
	Method       string    `json:"method"`
	AmountNet    float64   `json:"amount_net"`
	VATRate      float64   `json:"vat_rate"`
	AmountVAT    float64   `json:"amount_vat"`
	AmountTotal  float64   `json:"amount_total"`
	Note         string    `json:"note"`
	UserID       uint      `gorm:"index" json:"user_id"`
	ContractType string    `json:"contract_type"`
	ContractID   uint      `json:"contract_id"`
	CreatedAt    time.Time `json:"created_at"`
}
