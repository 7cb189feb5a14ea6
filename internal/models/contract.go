package models

import "time"

// AgencyName is party1 on every contract the office issues.
const AgencyName = "سونا للتوظيف - العين"

// TempContract is a temporary employment contract. The signature path is
// nil until a drawn signature has been uploaded; it then holds a public
// /uploads/ path.
type TempContract struct {
	ID                  uint      `gorm:"primaryKey" json:"id"`
	Party1              string    `gorm:"not null" json:"party1"`
	Party2EmployeeName  string    `json:"party2_employee_name"`
	Party2Profession    string    `json:"party2_profession"`
	Party2MonthlySalary float64   `json:"party2_monthly_salary"`
	Party3              string    `json:"party3"`
	Terms               string    `json:"terms"`
	SignatureParty1Path *string   `json:"signature_party1_path"`
	CreatedBy           uint      `json:"created_by"`
	CreatedAt           time.Time `json:"created_at"`
}

func (TempContract) TableName() string { return "contracts_temp" }

// PermContract is a permanent employment contract between the agency, a
// sponsor and an employee. Up to six uploaded documents/signatures are
// referenced by public path; each is nil until provided.
type PermContract struct {
	ID                   uint      `gorm:"primaryKey" json:"id"`
	Party1               string    `gorm:"not null" json:"party1"`
	SponsorName          string    `json:"sponsor_name"`
	SponsorPhone         string    `json:"sponsor_phone"`
	SponsorNationality   string    `json:"sponsor_nationality"`
	SponsorAddress       string    `json:"sponsor_address"`
	SponsorIDPath        *string   `json:"sponsor_id_path"`
	SponsorPassportPath  *string   `json:"sponsor_passport_path"`
	EmployeeName         string    `json:"employee_name"`
	EmployeePhone        string    `json:"employee_phone"`
	EmployeePassportPath *string   `json:"employee_passport_path"`
	EmployeeIDPath       *string   `json:"employee_id_path"`
	Amount               float64   `json:"amount"`
	DateFrom             string    `json:"date_from"`
	DateTo               string    `json:"date_to"`
	HasWarranty          bool      `json:"has_warranty"`
	WarrantyDuration     string    `json:"warranty_duration"`
	OfficeTerms          string    `json:"office_terms"`
	SignSponsorPath      *string   `json:"sign_sponsor_path"`
	SignOfficePath       *string   `json:"sign_office_path"`
	CreatedBy            uint      `json:"created_by"`
	CreatedAt            time.Time `json:"created_at"`
}

func (PermContract) TableName() string { return "contracts_perm" }
