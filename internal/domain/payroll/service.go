package payroll

import (
	"context"
	"io"
)

// BatchService is the payroll pipeline: import, lifecycle and exports.
// Every mutating or exporting operation takes the caller role explicitly so
// the core stays testable without a simulated session.
type BatchService interface {
	Import(ctx context.Context, role Role, req ImportRequest, upload io.Reader) (BatchResponse, error)
	GetBatch(ctx context.Context, id string) (BatchDetailResponse, error)
	ListBatches(ctx context.Context, period string) ([]BatchResponse, error)
	Approve(ctx context.Context, role Role, batchID string) (BatchResponse, error)
	DeleteBatch(ctx context.Context, role Role, batchID string) error
	UpdateLineItem(ctx context.Context, role Role, req UpdateLineItemRequest) (LineItemResponse, error)

	ExportBankTransfer(ctx context.Context, role Role, req ExportBankTransferRequest) (Artifact, error)
	ExportCash(ctx context.Context, role Role, req ExportCashRequest) (Artifact, error)
	ExportRegister(ctx context.Context, role Role, req ExportRegisterRequest) (Artifact, error)

	// FailureReport renders the failure rows of a rejected import as a
	// downloadable workbook.
	FailureReport(failure *ValidationFailedError, period string) (Artifact, error)
}
