package payroll

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/Bee-255/keu-backend-go/internal/domain/employee"
	"github.com/Bee-255/keu-backend-go/internal/domain/payroll"
	"github.com/Bee-255/keu-backend-go/internal/pkg/spreadsheet"
	"github.com/shopspring/decimal"
)

// importRow is one normalized spreadsheet row. Untyped cells never travel
// past this boundary.
type importRow struct {
	Identifier     string
	Name           string
	Occupation     string
	Classification string
	Gross          decimal.Decimal
	Deduction      decimal.Decimal
	Period         string
	Label          string
}

// Column aliases accepted in upload headers, matched case-insensitively.
var (
	identifierAliases     = []string{"employee_identifier", "nrp_nip_nik", "identifier", "nrp", "nip", "nik"}
	grossAliases          = []string{"gross_amount", "gross", "amount", "jumlah", "bruto"}
	deductionAliases      = []string{"deduction", "deductions", "potongan"}
	periodAliases         = []string{"period", "periode"}
	labelAliases          = []string{"payment_label", "label", "keterangan", "uraian"}
	nameAliases           = []string{"name", "employee_name", "nama"}
	occupationAliases     = []string{"occupation", "pekerjaan"}
	classificationAliases = []string{"classification", "klasifikasi"}
)

// parseUpload reads the workbook into normalized rows. Rows with an empty
// identifier or a non-positive gross amount are noise (subtotals, blank
// lines) and are dropped before validation, not reported as failures.
func parseUpload(upload io.Reader) ([]importRow, error) {
	table, err := spreadsheet.Parse(upload)
	if err != nil {
		if err == spreadsheet.ErrEmptyWorkbook {
			return nil, &payroll.InputFormatError{Detail: "workbook has no data rows"}
		}
		return nil, &payroll.InputFormatError{Detail: err.Error()}
	}

	idCol := table.Column(identifierAliases...)
	grossCol := table.Column(grossAliases...)
	periodCol := table.Column(periodAliases...)
	labelCol := table.Column(labelAliases...)
	for col, name := range map[int]string{
		idCol:     "employee_identifier",
		grossCol:  "gross_amount",
		periodCol: "period",
		labelCol:  "payment_label",
	} {
		if col < 0 {
			return nil, &payroll.InputFormatError{Detail: fmt.Sprintf("missing required column %q", name)}
		}
	}
	deductionCol := table.Column(deductionAliases...)
	nameCol := table.Column(nameAliases...)
	occupationCol := table.Column(occupationAliases...)
	classificationCol := table.Column(classificationAliases...)

	var rows []importRow
	for _, raw := range table.Rows {
		identifier := spreadsheet.Cell(raw, idCol)
		gross := parseAmount(spreadsheet.Cell(raw, grossCol))
		if identifier == "" || !gross.IsPositive() {
			continue
		}
		rows = append(rows, importRow{
			Identifier:     identifier,
			Name:           spreadsheet.Cell(raw, nameCol),
			Occupation:     spreadsheet.Cell(raw, occupationCol),
			Classification: spreadsheet.Cell(raw, classificationCol),
			Gross:          gross,
			Deduction:      parseAmount(spreadsheet.Cell(raw, deductionCol)),
			Period:         spreadsheet.Cell(raw, periodCol),
			Label:          spreadsheet.Cell(raw, labelCol),
		})
	}
	return rows, nil
}

// parseAmount tolerates thousand separators; anything unparseable is zero,
// which the noise filter then drops.
func parseAmount(s string) decimal.Decimal {
	s = strings.ReplaceAll(s, ",", "")
	if s == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// resolveLabel picks the batch payment label from the first row that carries
// one. An upload without any label cannot proceed.
func resolveLabel(rows []importRow) (string, error) {
	for _, r := range rows {
		if r.Label != "" {
			return r.Label, nil
		}
	}
	return "", payroll.ErrMissingLabel
}

// validateRows runs every business rule over every row and collects all
// failures. Each row accumulates at most one reason, the first applicable,
// to keep the report legible.
func validateRows(rows []importRow, period, label string, directory map[string]employee.DirectoryEntry) *payroll.ValidationFailedError {
	var failed []payroll.FailureRow
	counts := make(map[payroll.FailureReason]int)

	fail := func(r importRow, reason payroll.FailureReason) {
		failed = append(failed, payroll.FailureRow{
			Identifier: r.Identifier,
			Name:       r.Name,
			Period:     r.Period,
			Label:      r.Label,
			Reason:     reason,
		})
		counts[reason]++
	}

	for _, r := range rows {
		entry, known := directory[r.Identifier]
		switch {
		case r.Period != period:
			fail(r, payroll.ReasonPeriodMismatch)
		case r.Label != label:
			fail(r, payroll.ReasonInconsistentLabel)
		case !known:
			fail(r, payroll.ReasonUnknownEmployee)
		case !entry.HasBankAccount() && (entry.BankName != "" || entry.AccountNumber != ""):
			fail(r, payroll.ReasonIncompleteBankData)
		}
	}

	if len(failed) > 0 {
		return &payroll.ValidationFailedError{Rows: failed, ReasonCounts: counts}
	}
	return nil
}

// buildLineItems computes tax, net and classification for validated rows and
// derives the batch header totals.
func buildLineItems(rows []importRow, directory map[string]employee.DirectoryEntry) ([]payroll.LineItem, payroll.Batch) {
	var batch payroll.Batch
	batch.TotalGross = decimal.Zero
	batch.TotalTax = decimal.Zero
	batch.TotalDeduction = decimal.Zero
	batch.TotalNet = decimal.Zero

	lines := make([]payroll.LineItem, 0, len(rows))
	for _, r := range rows {
		entry := directory[r.Identifier]
		li := payroll.LineItem{
			EmployeeIdentifier: entry.Identifier,
			Name:               entry.FullName,
			Occupation:         entry.Occupation,
			Classification: ResolveClassification(
				string(entry.Classification), r.Classification,
				entry.Occupation, r.Occupation,
			),
			GrossAmount:       r.Gross,
			TaxRate:           TaxRateFor(entry.Grade, entry.Occupation),
			Deduction:         r.Deduction,
			BankName:          entry.BankName,
			AccountNumber:     entry.AccountNumber,
			AccountHolderName: entry.AccountHolderName,
		}
		li.Recompute()
		lines = append(lines, li)

		batch.TotalGross = batch.TotalGross.Add(li.GrossAmount)
		batch.TotalTax = batch.TotalTax.Add(li.TaxAmount)
		batch.TotalDeduction = batch.TotalDeduction.Add(li.Deduction)
		batch.TotalNet = batch.TotalNet.Add(li.NetAmount)
	}
	batch.PayeeCount = len(lines)
	return lines, batch
}

// Import runs the all-or-nothing pipeline: parse, dry-run validate against
// the directory and existing batches, compute, then commit header plus lines.
// Either the full batch is created or nothing is.
func (s *BatchServiceImpl) Import(ctx context.Context, role payroll.Role, req payroll.ImportRequest, upload io.Reader) (payroll.BatchResponse, error) {
	if err := requireRole(role, payroll.RoleOperator, payroll.RoleTreasurer); err != nil {
		return payroll.BatchResponse{}, err
	}
	if err := req.Validate(); err != nil {
		return payroll.BatchResponse{}, err
	}

	rows, err := parseUpload(upload)
	if err != nil {
		return payroll.BatchResponse{}, err
	}
	if len(rows) == 0 {
		return payroll.BatchResponse{}, payroll.ErrNoValidRows
	}

	label, err := resolveLabel(rows)
	if err != nil {
		return payroll.BatchResponse{}, err
	}

	exists, err := s.batchRepo.ExistsByPeriodLabel(ctx, req.Period, label)
	if err != nil {
		return payroll.BatchResponse{}, err
	}
	if exists {
		return payroll.BatchResponse{}, payroll.ErrDuplicateBatch
	}

	directory, err := s.lookupDirectory(ctx, rows)
	if err != nil {
		return payroll.BatchResponse{}, err
	}

	if failure := validateRows(rows, req.Period, label, directory); failure != nil {
		return payroll.BatchResponse{}, failure
	}

	lines, batch := buildLineItems(rows, directory)
	batch.Period = req.Period
	batch.PaymentLabel = label
	batch.Status = payroll.BatchStatusNew

	created, err := s.batchRepo.CreateBatch(ctx, batch, lines)
	if err != nil {
		return payroll.BatchResponse{}, err
	}
	return mapToBatchResponse(created), nil
}

func (s *BatchServiceImpl) lookupDirectory(ctx context.Context, rows []importRow) (map[string]employee.DirectoryEntry, error) {
	seen := make(map[string]bool, len(rows))
	var identifiers []string
	for _, r := range rows {
		if !seen[r.Identifier] {
			seen[r.Identifier] = true
			identifiers = append(identifiers, r.Identifier)
		}
	}

	entries, err := s.directoryRepo.GetActiveByIdentifiers(ctx, identifiers)
	if err != nil {
		return nil, fmt.Errorf("failed to look up employee directory: %w", err)
	}

	directory := make(map[string]employee.DirectoryEntry, len(entries))
	for _, e := range entries {
		directory[e.Identifier] = e
	}
	return directory, nil
}
