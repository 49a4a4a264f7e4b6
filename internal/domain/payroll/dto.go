package payroll

import (
	"github.com/Bee-255/keu-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

// ========== IMPORT DTOs ==========

type ImportRequest struct {
	Period   string `json:"period"`
	FileName string `json:"-"`
}

func (r *ImportRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidPeriod(r.Period) {
		errs = append(errs, validator.ValidationError{Field: "period", Message: "must be in YYYY-MM format"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ========== BATCH DTOs ==========

type BatchResponse struct {
	ID             string          `json:"id"`
	Period         string          `json:"period"`
	PaymentLabel   string          `json:"payment_label"`
	PayeeCount     int             `json:"payee_count"`
	TotalGross     decimal.Decimal `json:"total_gross"`
	TotalTax       decimal.Decimal `json:"total_tax"`
	TotalDeduction decimal.Decimal `json:"total_deduction"`
	TotalNet       decimal.Decimal `json:"total_net"`
	Status         string          `json:"status"`
	CreatedAt      string          `json:"created_at"`
	ApprovedAt     *string         `json:"approved_at,omitempty"`
}

type LineItemResponse struct {
	ID                 string          `json:"id"`
	BatchID            string          `json:"batch_id"`
	EmployeeIdentifier string          `json:"employee_identifier"`
	Name               string          `json:"name"`
	Occupation         string          `json:"occupation"`
	Classification     string          `json:"classification"`
	GrossAmount        decimal.Decimal `json:"gross_amount"`
	TaxRate            decimal.Decimal `json:"tax_rate"`
	TaxAmount          decimal.Decimal `json:"tax_amount"`
	Deduction          decimal.Decimal `json:"deduction"`
	NetAmount          decimal.Decimal `json:"net_amount"`
	BankName           string          `json:"bank_name"`
	AccountNumber      string          `json:"account_number"`
	AccountHolderName  string          `json:"account_holder_name"`
}

type BatchDetailResponse struct {
	Batch BatchResponse      `json:"batch"`
	Lines []LineItemResponse `json:"lines"`
}

type UpdateLineItemRequest struct {
	BatchID     string           `json:"-"`
	LineItemID  string           `json:"-"`
	GrossAmount *decimal.Decimal `json:"gross_amount,omitempty"`
	Deduction   *decimal.Decimal `json:"deduction,omitempty"`
}

func (r *UpdateLineItemRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.GrossAmount == nil && r.Deduction == nil {
		errs = append(errs, validator.ValidationError{Field: "gross_amount", Message: "at least one of gross_amount or deduction is required"})
	}
	if r.GrossAmount != nil && !r.GrossAmount.IsPositive() {
		errs = append(errs, validator.ValidationError{Field: "gross_amount", Message: "must be positive"})
	}
	if r.Deduction != nil && r.Deduction.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "deduction", Message: "must be non-negative"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ========== EXPORT DTOs ==========

type ExportBankTransferRequest struct {
	BatchIDs []string `json:"batch_ids"`
	Bank     string   `json:"bank"`
}

func (r *ExportBankTransferRequest) Validate() error {
	var errs validator.ValidationErrors

	if len(r.BatchIDs) == 0 {
		errs = append(errs, validator.ValidationError{Field: "batch_ids", Message: "at least one batch is required"})
	}
	if validator.IsEmpty(r.Bank) {
		errs = append(errs, validator.ValidationError{Field: "bank", Message: "is required"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ExportCashRequest struct {
	BatchIDs []string `json:"batch_ids"`
}

func (r *ExportCashRequest) Validate() error {
	var errs validator.ValidationErrors

	if len(r.BatchIDs) == 0 {
		errs = append(errs, validator.ValidationError{Field: "batch_ids", Message: "at least one batch is required"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ExportRegisterRequest struct {
	Period string `json:"period"`
}

func (r *ExportRegisterRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidPeriod(r.Period) {
		errs = append(errs, validator.ValidationError{Field: "period", Message: "must be in YYYY-MM format"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// Artifact is a generated workbook ready to stream to the operator.
type Artifact struct {
	FileName string
	Content  []byte
}
