package employee

import "time"

// DirectoryEntry is one row of the hospital employee directory. The payroll
// core only reads this table; all mutations happen in the personnel module.
type DirectoryEntry struct {
	ID                string
	Identifier        string // NRP / NIP / NIK, unique across the directory
	FullName          string
	Occupation        string // employment category is derived from this text
	Rank              string
	Grade             string // golongan code, e.g. "III/a"
	Classification    Classification
	BankName          string
	AccountNumber     string
	AccountHolderName string
	Status            Status
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

type Classification string

const (
	ClassificationMedical     Classification = "medical"
	ClassificationParamedical Classification = "paramedical"
)

type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
)

// HasBankAccount reports whether the entry carries complete transfer data.
func (e DirectoryEntry) HasBankAccount() bool {
	return e.BankName != "" && e.AccountNumber != ""
}
