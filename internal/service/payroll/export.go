package payroll

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/Bee-255/keu-backend-go/internal/domain/employee"
	"github.com/Bee-255/keu-backend-go/internal/domain/payroll"
	"github.com/Bee-255/keu-backend-go/internal/pkg/spreadsheet"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

// payeeGroup is one output row of the transfer and cash lists: a payout
// destination with its rounded net total and the attributes the comparator
// sorts on.
type payeeGroup struct {
	Payee             Payee
	Identifier        string
	AccountNumber     string
	AccountHolderName string
	Net               decimal.Decimal
}

func normalizeBank(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}

// loadApprovedBatches fetches the requested batches and rejects the whole
// request if any of them is missing or still NEW. Exports never silently
// skip a batch.
func (s *BatchServiceImpl) loadApprovedBatches(ctx context.Context, batchIDs []string) ([]payroll.Batch, []payroll.LineItem, error) {
	batches, err := s.batchRepo.GetBatchesByIDs(ctx, batchIDs)
	if err != nil {
		return nil, nil, err
	}
	if len(batches) != len(batchIDs) {
		return nil, nil, payroll.ErrBatchNotFound
	}
	for _, b := range batches {
		if b.Status != payroll.BatchStatusApproved {
			return nil, nil, payroll.ErrBatchNotApproved
		}
	}

	lines, err := s.batchRepo.GetLineItemsByBatchIDs(ctx, batchIDs)
	if err != nil {
		return nil, nil, err
	}
	return batches, lines, nil
}

// payeeIndex resolves rank and grade for export ordering from the directory.
// Entries that have since gone inactive simply sort after known ones.
func (s *BatchServiceImpl) payeeIndex(ctx context.Context, lines []payroll.LineItem) (map[string]employee.DirectoryEntry, error) {
	seen := make(map[string]bool, len(lines))
	var identifiers []string
	for _, li := range lines {
		if !seen[li.EmployeeIdentifier] {
			seen[li.EmployeeIdentifier] = true
			identifiers = append(identifiers, li.EmployeeIdentifier)
		}
	}

	entries, err := s.directoryRepo.GetActiveByIdentifiers(ctx, identifiers)
	if err != nil {
		return nil, fmt.Errorf("failed to look up employee directory: %w", err)
	}
	index := make(map[string]employee.DirectoryEntry, len(entries))
	for _, e := range entries {
		index[e.Identifier] = e
	}
	return index, nil
}

func payeeOf(li payroll.LineItem, index map[string]employee.DirectoryEntry) Payee {
	entry := index[li.EmployeeIdentifier]
	return Payee{
		Occupation: li.Occupation,
		Rank:       entry.Rank,
		Grade:      entry.Grade,
		Name:       li.Name,
	}
}

// aggregateByAccount groups bank lines for one bank by destination account
// and sums net per group. Each group total is rounded to whole currency
// exactly once, so re-aggregation never drifts.
func aggregateByAccount(lines []payroll.LineItem, bank string, index map[string]employee.DirectoryEntry) []payeeGroup {
	target := normalizeBank(bank)
	groups := make(map[string]*payeeGroup)
	var order []string
	sums := make(map[string]decimal.Decimal)

	for _, li := range lines {
		if normalizeBank(li.BankName) != target {
			continue
		}
		key := li.AccountNumber + "\x00" + li.AccountHolderName
		if _, ok := groups[key]; !ok {
			groups[key] = &payeeGroup{
				Payee:             payeeOf(li, index),
				Identifier:        li.EmployeeIdentifier,
				AccountNumber:     li.AccountNumber,
				AccountHolderName: li.AccountHolderName,
			}
			order = append(order, key)
			sums[key] = decimal.Zero
		}
		sums[key] = sums[key].Add(li.NetAmount)
	}

	out := make([]payeeGroup, 0, len(order))
	for _, key := range order {
		g := groups[key]
		g.Net = sums[key].Round(0)
		out = append(out, *g)
	}
	sortGroups(out)
	return out
}

// aggregateCash groups lines with no bank recorded by payee identity, since
// there is no account to key on. "No bank recorded" means the normalized bank
// name is empty, so a whitespace-only bank cell still counts as cash.
func aggregateCash(lines []payroll.LineItem, index map[string]employee.DirectoryEntry) []payeeGroup {
	groups := make(map[string]*payeeGroup)
	var order []string
	sums := make(map[string]decimal.Decimal)

	for _, li := range lines {
		if normalizeBank(li.BankName) != "" {
			continue
		}
		key := li.Name + "\x00" + li.EmployeeIdentifier
		if _, ok := groups[key]; !ok {
			groups[key] = &payeeGroup{
				Payee:      payeeOf(li, index),
				Identifier: li.EmployeeIdentifier,
			}
			order = append(order, key)
			sums[key] = decimal.Zero
		}
		sums[key] = sums[key].Add(li.NetAmount)
	}

	out := make([]payeeGroup, 0, len(order))
	for _, key := range order {
		g := groups[key]
		g.Net = sums[key].Round(0)
		out = append(out, *g)
	}
	sortGroups(out)
	return out
}

func sortGroups(groups []payeeGroup) {
	sort.Slice(groups, func(i, j int) bool {
		if d := ComparePayees(groups[i].Payee, groups[j].Payee); d != 0 {
			return d < 0
		}
		if groups[i].Identifier != groups[j].Identifier {
			return groups[i].Identifier < groups[j].Identifier
		}
		return groups[i].AccountNumber < groups[j].AccountNumber
	})
}

// ExportBankTransfer emits the per-bank transfer list for a set of approved
// batches.
func (s *BatchServiceImpl) ExportBankTransfer(ctx context.Context, role payroll.Role, req payroll.ExportBankTransferRequest) (payroll.Artifact, error) {
	if err := requireRole(role, payroll.RoleOperator, payroll.RoleTreasurer); err != nil {
		return payroll.Artifact{}, err
	}
	if err := req.Validate(); err != nil {
		return payroll.Artifact{}, err
	}

	batches, lines, err := s.loadApprovedBatches(ctx, req.BatchIDs)
	if err != nil {
		return payroll.Artifact{}, err
	}
	index, err := s.payeeIndex(ctx, lines)
	if err != nil {
		return payroll.Artifact{}, err
	}

	groups := aggregateByAccount(lines, req.Bank, index)
	if len(groups) == 0 {
		return payroll.Artifact{}, payroll.ErrEmptyResult
	}

	label := batches[0].PaymentLabel
	content, err := renderTransferList(label, req.Bank, groups, true)
	if err != nil {
		return payroll.Artifact{}, err
	}
	return payroll.Artifact{
		FileName: fmt.Sprintf("transfer-%s-%s.xlsx", spreadsheet.Slug(label), spreadsheet.Slug(req.Bank)),
		Content:  content,
	}, nil
}

// ExportCash emits the cash payout list for a set of approved batches.
func (s *BatchServiceImpl) ExportCash(ctx context.Context, role payroll.Role, req payroll.ExportCashRequest) (payroll.Artifact, error) {
	if err := requireRole(role, payroll.RoleOperator, payroll.RoleTreasurer); err != nil {
		return payroll.Artifact{}, err
	}
	if err := req.Validate(); err != nil {
		return payroll.Artifact{}, err
	}

	batches, lines, err := s.loadApprovedBatches(ctx, req.BatchIDs)
	if err != nil {
		return payroll.Artifact{}, err
	}
	index, err := s.payeeIndex(ctx, lines)
	if err != nil {
		return payroll.Artifact{}, err
	}

	groups := aggregateCash(lines, index)
	if len(groups) == 0 {
		return payroll.Artifact{}, payroll.ErrEmptyResult
	}

	label := batches[0].PaymentLabel
	content, err := renderTransferList(label, "", groups, false)
	if err != nil {
		return payroll.Artifact{}, err
	}
	return payroll.Artifact{
		FileName: fmt.Sprintf("cash-%s.xlsx", spreadsheet.Slug(label)),
		Content:  content,
	}, nil
}

func renderTransferList(label, bank string, groups []payeeGroup, withAccount bool) ([]byte, error) {
	const sheet = "Payouts"
	f, err := spreadsheet.NewWorkbook(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to build payout list: %w", err)
	}

	if err := spreadsheet.BoldRow(f, sheet, 1, []interface{}{label}); err != nil {
		return nil, fmt.Errorf("failed to build payout list: %w", err)
	}
	title := "Cash payout"
	if withAccount {
		title = "Bank: " + bank
	}
	if err := spreadsheet.SetRow(f, sheet, 2, []interface{}{title}); err != nil {
		return nil, fmt.Errorf("failed to build payout list: %w", err)
	}

	header := []interface{}{"No", "Name", "Identifier"}
	if withAccount {
		header = append(header, "Account Number", "Account Holder")
	}
	header = append(header, "Net Amount")
	if err := spreadsheet.BoldRow(f, sheet, 4, header); err != nil {
		return nil, fmt.Errorf("failed to build payout list: %w", err)
	}

	total := decimal.Zero
	row := 5
	for i, g := range groups {
		name := g.Payee.Name
		values := []interface{}{i + 1, name, g.Identifier}
		if withAccount {
			values = append(values, g.AccountNumber, g.AccountHolderName)
		}
		values = append(values, g.Net.InexactFloat64())
		if err := spreadsheet.SetRow(f, sheet, row, values); err != nil {
			return nil, fmt.Errorf("failed to build payout list: %w", err)
		}
		total = total.Add(g.Net)
		row++
	}

	footer := make([]interface{}, len(header))
	footer[0] = "Total"
	footer[len(footer)-1] = total.InexactFloat64()
	if err := spreadsheet.BoldRow(f, sheet, row, footer); err != nil {
		return nil, fmt.Errorf("failed to build payout list: %w", err)
	}

	lastCol, _ := excelize.ColumnNumberToName(len(header))
	if err := f.SetColWidth(sheet, "B", lastCol, 22); err != nil {
		return nil, fmt.Errorf("failed to build payout list: %w", err)
	}

	return spreadsheet.Bytes(f)
}

// registerRow is one payee of the combined register: gross per payment label
// plus aggregate tax, deduction and net across the whole period.
type registerRow struct {
	Payee          Payee
	Identifier     string
	Classification employee.Classification
	GrossByLabel   map[string]decimal.Decimal
	Tax            decimal.Decimal
	Deduction      decimal.Decimal
	Net            decimal.Decimal
}

// ExportRegister emits the signature register spanning every batch of the
// period, one gross column per payment label, split into Medical and
// Paramedical sheets.
func (s *BatchServiceImpl) ExportRegister(ctx context.Context, role payroll.Role, req payroll.ExportRegisterRequest) (payroll.Artifact, error) {
	if err := requireRole(role, payroll.RoleOperator, payroll.RoleTreasurer); err != nil {
		return payroll.Artifact{}, err
	}
	if err := req.Validate(); err != nil {
		return payroll.Artifact{}, err
	}

	batches, err := s.batchRepo.GetBatchesByPeriod(ctx, req.Period)
	if err != nil {
		return payroll.Artifact{}, err
	}
	if len(batches) == 0 {
		return payroll.Artifact{}, payroll.ErrEmptyResult
	}

	labelByBatch := make(map[string]string, len(batches))
	ids := make([]string, 0, len(batches))
	for _, b := range batches {
		if b.Status != payroll.BatchStatusApproved {
			return payroll.Artifact{}, payroll.ErrBatchNotApproved
		}
		labelByBatch[b.ID] = b.PaymentLabel
		ids = append(ids, b.ID)
	}

	lines, err := s.batchRepo.GetLineItemsByBatchIDs(ctx, ids)
	if err != nil {
		return payroll.Artifact{}, err
	}
	if len(lines) == 0 {
		return payroll.Artifact{}, payroll.ErrEmptyResult
	}
	index, err := s.payeeIndex(ctx, lines)
	if err != nil {
		return payroll.Artifact{}, err
	}

	labels, rows := aggregateRegister(lines, labelByBatch, index)

	content, err := renderRegister(labels, rows)
	if err != nil {
		return payroll.Artifact{}, err
	}
	return payroll.Artifact{
		FileName: fmt.Sprintf("register-%s.xlsx", req.Period),
		Content:  content,
	}, nil
}

// aggregateRegister groups the period's line items by payee name. The column
// set is the union of payment labels, sorted ascending so re-exports lay out
// identically.
func aggregateRegister(lines []payroll.LineItem, labelByBatch map[string]string, index map[string]employee.DirectoryEntry) ([]string, []registerRow) {
	labelSet := make(map[string]bool)
	rows := make(map[string]*registerRow)
	var order []string

	for _, li := range lines {
		label := labelByBatch[li.BatchID]
		labelSet[label] = true

		r, ok := rows[li.Name]
		if !ok {
			r = &registerRow{
				Payee:          payeeOf(li, index),
				Identifier:     li.EmployeeIdentifier,
				Classification: li.Classification,
				GrossByLabel:   make(map[string]decimal.Decimal),
				Tax:            decimal.Zero,
				Deduction:      decimal.Zero,
				Net:            decimal.Zero,
			}
			rows[li.Name] = r
			order = append(order, li.Name)
		}
		r.GrossByLabel[label] = r.GrossByLabel[label].Add(li.GrossAmount)
		r.Tax = r.Tax.Add(li.TaxAmount)
		r.Deduction = r.Deduction.Add(li.Deduction)
		r.Net = r.Net.Add(li.NetAmount)
	}

	labels := make([]string, 0, len(labelSet))
	for l := range labelSet {
		labels = append(labels, l)
	}
	sort.Strings(labels)

	out := make([]registerRow, 0, len(order))
	for _, name := range order {
		r := rows[name]
		for l, g := range r.GrossByLabel {
			r.GrossByLabel[l] = g.Round(0)
		}
		r.Tax = r.Tax.Round(0)
		r.Deduction = r.Deduction.Round(0)
		r.Net = r.Net.Round(0)
		out = append(out, *r)
	}
	sort.Slice(out, func(i, j int) bool {
		if d := ComparePayees(out[i].Payee, out[j].Payee); d != 0 {
			return d < 0
		}
		return out[i].Identifier < out[j].Identifier
	})
	return labels, out
}

func renderRegister(labels []string, rows []registerRow) ([]byte, error) {
	f, err := spreadsheet.NewWorkbook("Medical", "Paramedical")
	if err != nil {
		return nil, fmt.Errorf("failed to build register: %w", err)
	}

	header := []interface{}{"No", "Name", "Identifier", "Rank/Grade"}
	for _, l := range labels {
		header = append(header, l)
	}
	header = append(header, "Tax", "Deduction", "Net", "Signature")

	for _, sheet := range []string{"Medical", "Paramedical"} {
		want := employee.ClassificationMedical
		if sheet == "Paramedical" {
			want = employee.ClassificationParamedical
		}

		if err := spreadsheet.BoldRow(f, sheet, 1, header); err != nil {
			return nil, fmt.Errorf("failed to build register: %w", err)
		}

		row, no := 2, 1
		for _, r := range rows {
			if r.Classification != want {
				continue
			}
			values := []interface{}{no, r.Payee.Name, r.Identifier, rankOrGrade(r.Payee)}
			for _, l := range labels {
				values = append(values, r.GrossByLabel[l].InexactFloat64())
			}
			values = append(values,
				r.Tax.InexactFloat64(),
				r.Deduction.InexactFloat64(),
				r.Net.InexactFloat64(),
				"",
			)
			if err := spreadsheet.SetRow(f, sheet, row, values); err != nil {
				return nil, fmt.Errorf("failed to build register: %w", err)
			}
			row++
			no++
		}

		lastCol, _ := excelize.ColumnNumberToName(len(header))
		if err := f.SetColWidth(sheet, "B", lastCol, 20); err != nil {
			return nil, fmt.Errorf("failed to build register: %w", err)
		}
	}

	return spreadsheet.Bytes(f)
}

func rankOrGrade(p Payee) string {
	switch {
	case p.Rank != "" && p.Grade != "":
		return p.Rank + " / " + p.Grade
	case p.Rank != "":
		return p.Rank
	default:
		return p.Grade
	}
}
