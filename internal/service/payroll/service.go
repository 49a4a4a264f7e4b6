package payroll

import (
	"context"
	"fmt"
	"time"

	"github.com/Bee-255/keu-backend-go/internal/domain/employee"
	"github.com/Bee-255/keu-backend-go/internal/domain/payroll"
	"github.com/Bee-255/keu-backend-go/internal/pkg/spreadsheet"
	"github.com/Bee-255/keu-backend-go/internal/pkg/validator"
)

type BatchServiceImpl struct {
	batchRepo     payroll.BatchRepository
	directoryRepo employee.DirectoryRepository
}

func NewBatchService(batchRepo payroll.BatchRepository, directoryRepo employee.DirectoryRepository) payroll.BatchService {
	return &BatchServiceImpl{
		batchRepo:     batchRepo,
		directoryRepo: directoryRepo,
	}
}

func requireRole(role payroll.Role, allowed ...payroll.Role) error {
	for _, a := range allowed {
		if role == a {
			return nil
		}
	}
	return payroll.ErrRoleNotAllowed
}

func (s *BatchServiceImpl) GetBatch(ctx context.Context, id string) (payroll.BatchDetailResponse, error) {
	batch, err := s.batchRepo.GetBatchByID(ctx, id)
	if err != nil {
		return payroll.BatchDetailResponse{}, err
	}

	lines, err := s.batchRepo.GetLineItems(ctx, id)
	if err != nil {
		return payroll.BatchDetailResponse{}, err
	}

	resp := payroll.BatchDetailResponse{
		Batch: mapToBatchResponse(batch),
		Lines: make([]payroll.LineItemResponse, 0, len(lines)),
	}
	for _, li := range lines {
		resp.Lines = append(resp.Lines, mapToLineItemResponse(li))
	}
	return resp, nil
}

func (s *BatchServiceImpl) ListBatches(ctx context.Context, period string) ([]payroll.BatchResponse, error) {
	if period != "" && !validator.IsValidPeriod(period) {
		return nil, validator.ValidationErrors{
			{Field: "period", Message: "must be in YYYY-MM format"},
		}
	}

	batches, err := s.batchRepo.GetBatchesByPeriod(ctx, period)
	if err != nil {
		return nil, err
	}

	resp := make([]payroll.BatchResponse, 0, len(batches))
	for _, b := range batches {
		resp = append(resp, mapToBatchResponse(b))
	}
	return resp, nil
}

// Approve flips NEW to APPROVED. The storage layer performs the transition as
// a compare-and-set so concurrent approvals have exactly one winner.
func (s *BatchServiceImpl) Approve(ctx context.Context, role payroll.Role, batchID string) (payroll.BatchResponse, error) {
	if err := requireRole(role, payroll.RoleTreasurer); err != nil {
		return payroll.BatchResponse{}, err
	}

	batch, err := s.batchRepo.ApproveBatch(ctx, batchID)
	if err != nil {
		return payroll.BatchResponse{}, err
	}
	return mapToBatchResponse(batch), nil
}

func (s *BatchServiceImpl) DeleteBatch(ctx context.Context, role payroll.Role, batchID string) error {
	if err := requireRole(role, payroll.RoleOperator, payroll.RoleTreasurer); err != nil {
		return err
	}
	return s.batchRepo.DeleteBatch(ctx, batchID)
}

// UpdateLineItem edits gross or deduction of one line while the batch is
// still NEW. Tax and net are recomputed here; the header totals are re-derived
// from the stored lines by the repository inside its transaction so they
// never drift from their sum.
func (s *BatchServiceImpl) UpdateLineItem(ctx context.Context, role payroll.Role, req payroll.UpdateLineItemRequest) (payroll.LineItemResponse, error) {
	if err := requireRole(role, payroll.RoleOperator, payroll.RoleTreasurer); err != nil {
		return payroll.LineItemResponse{}, err
	}
	if err := req.Validate(); err != nil {
		return payroll.LineItemResponse{}, err
	}

	batch, err := s.batchRepo.GetBatchByID(ctx, req.BatchID)
	if err != nil {
		return payroll.LineItemResponse{}, err
	}
	if batch.Status == payroll.BatchStatusApproved {
		return payroll.LineItemResponse{}, payroll.ErrBatchLocked
	}

	line, err := s.batchRepo.GetLineItemByID(ctx, req.BatchID, req.LineItemID)
	if err != nil {
		return payroll.LineItemResponse{}, err
	}

	if req.GrossAmount != nil {
		line.GrossAmount = *req.GrossAmount
	}
	if req.Deduction != nil {
		line.Deduction = *req.Deduction
	}
	line.Recompute()

	if err := s.batchRepo.UpdateLineItem(ctx, line); err != nil {
		return payroll.LineItemResponse{}, err
	}
	return mapToLineItemResponse(line), nil
}

// FailureReport renders the rejected rows of an import as a workbook the
// operator can download, fix and re-submit.
func (s *BatchServiceImpl) FailureReport(failure *payroll.ValidationFailedError, period string) (payroll.Artifact, error) {
	f, err := spreadsheet.NewWorkbook("Failures")
	if err != nil {
		return payroll.Artifact{}, fmt.Errorf("failed to build failure report: %w", err)
	}

	if err := spreadsheet.BoldRow(f, "Failures", 1, []interface{}{
		"Identifier", "Name", "Period", "Label", "Reason",
	}); err != nil {
		return payroll.Artifact{}, fmt.Errorf("failed to build failure report: %w", err)
	}
	for i, row := range failure.Rows {
		err := spreadsheet.SetRow(f, "Failures", i+2, []interface{}{
			row.Identifier, row.Name, row.Period, row.Label, string(row.Reason),
		})
		if err != nil {
			return payroll.Artifact{}, fmt.Errorf("failed to build failure report: %w", err)
		}
	}

	content, err := spreadsheet.Bytes(f)
	if err != nil {
		return payroll.Artifact{}, fmt.Errorf("failed to build failure report: %w", err)
	}
	return payroll.Artifact{
		FileName: fmt.Sprintf("import-failures-%s.xlsx", period),
		Content:  content,
	}, nil
}

func mapToBatchResponse(b payroll.Batch) payroll.BatchResponse {
	resp := payroll.BatchResponse{
		ID:             b.ID,
		Period:         b.Period,
		PaymentLabel:   b.PaymentLabel,
		PayeeCount:     b.PayeeCount,
		TotalGross:     b.TotalGross,
		TotalTax:       b.TotalTax,
		TotalDeduction: b.TotalDeduction,
		TotalNet:       b.TotalNet,
		Status:         string(b.Status),
		CreatedAt:      b.CreatedAt.Format(time.RFC3339),
	}
	if b.ApprovedAt != nil {
		approvedAt := b.ApprovedAt.Format(time.RFC3339)
		resp.ApprovedAt = &approvedAt
	}
	return resp
}

func mapToLineItemResponse(li payroll.LineItem) payroll.LineItemResponse {
	return payroll.LineItemResponse{
		ID:                 li.ID,
		BatchID:            li.BatchID,
		EmployeeIdentifier: li.EmployeeIdentifier,
		Name:               li.Name,
		Occupation:         li.Occupation,
		Classification:     string(li.Classification),
		GrossAmount:        li.GrossAmount,
		TaxRate:            li.TaxRate,
		TaxAmount:          li.TaxAmount,
		Deduction:          li.Deduction,
		NetAmount:          li.NetAmount,
		BankName:           li.BankName,
		AccountNumber:      li.AccountNumber,
		AccountHolderName:  li.AccountHolderName,
	}
}
