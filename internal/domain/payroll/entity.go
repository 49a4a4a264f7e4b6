package payroll

import (
	"time"

	"github.com/Bee-255/keu-backend-go/internal/domain/employee"
	"github.com/shopspring/decimal"
)

// BatchStatus enum. APPROVED is terminal; there is no transition back.
type BatchStatus string

const (
	BatchStatusNew      BatchStatus = "NEW"
	BatchStatusApproved BatchStatus = "APPROVED"
)

// Batch is one payroll disbursement run: a period plus a payment label,
// e.g. "Jasa Pelayanan Agustus". The totals are derived from the line
// items and never hand-edited.
type Batch struct {
	ID             string
	Period         string // YYYY-MM
	PaymentLabel   string
	PayeeCount     int
	TotalGross     decimal.Decimal
	TotalTax       decimal.Decimal
	TotalDeduction decimal.Decimal
	TotalNet       decimal.Decimal
	Status         BatchStatus
	CreatedAt      time.Time
	ApprovedAt     *time.Time
}

// LineItem is a single payee's computed payment within a batch.
// NetAmount is always recomputed as gross − deduction − tax, never imported.
type LineItem struct {
	ID                 string
	BatchID            string
	EmployeeIdentifier string
	Name               string
	Occupation         string
	Classification     employee.Classification
	GrossAmount        decimal.Decimal
	TaxRate            decimal.Decimal // fraction, e.g. 0.025
	TaxAmount          decimal.Decimal
	Deduction          decimal.Decimal
	NetAmount          decimal.Decimal
	BankName           string
	AccountNumber      string
	AccountHolderName  string
}

// Recompute derives TaxAmount and NetAmount from GrossAmount, TaxRate and
// Deduction. Callers must invoke it after changing any of the inputs.
func (li *LineItem) Recompute() {
	li.TaxAmount = li.GrossAmount.Mul(li.TaxRate)
	li.NetAmount = li.GrossAmount.Sub(li.Deduction).Sub(li.TaxAmount)
}

// Role is the caller role gating batch operations. It arrives as an explicit
// parameter on every service call rather than ambient session state.
type Role string

const (
	RoleOperator  Role = "operator"
	RoleTreasurer Role = "treasurer"
)

// FailureRow is one entry of the import failure report. The as-given fields
// echo the spreadsheet content so the operator can locate the offending row.
type FailureRow struct {
	Identifier string
	Name       string
	Period     string
	Label      string
	Reason     FailureReason
}

type FailureReason string

const (
	ReasonPeriodMismatch     FailureReason = "period mismatch"
	ReasonInconsistentLabel  FailureReason = "inconsistent label"
	ReasonUnknownEmployee    FailureReason = "unknown employee"
	ReasonIncompleteBankData FailureReason = "incomplete bank data"
)
