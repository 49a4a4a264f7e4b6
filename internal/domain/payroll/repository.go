package payroll

import "context"

// BatchRepository defines data access for payroll batches and their lines.
//
// CreateBatch is the only multi-row write: it inserts the header first, then
// every line item. If line insertion fails after the header succeeded, the
// implementation must delete the header as a compensating action so no orphan
// header survives. A unique constraint on (period, payment_label) is the
// authoritative guard against concurrent duplicate imports.
type BatchRepository interface {
	CreateBatch(ctx context.Context, batch Batch, lines []LineItem) (Batch, error)
	GetBatchByID(ctx context.Context, id string) (Batch, error)
	GetBatchesByIDs(ctx context.Context, ids []string) ([]Batch, error)
	GetBatchesByPeriod(ctx context.Context, period string) ([]Batch, error)
	ExistsByPeriodLabel(ctx context.Context, period, paymentLabel string) (bool, error)

	GetLineItems(ctx context.Context, batchID string) ([]LineItem, error)
	GetLineItemsByBatchIDs(ctx context.Context, batchIDs []string) ([]LineItem, error)
	GetLineItemByID(ctx context.Context, batchID, lineItemID string) (LineItem, error)

	// ApproveBatch is a compare-and-set on status NEW -> APPROVED. Exactly one
	// of two concurrent calls wins; the loser gets ErrAlreadyApproved.
	ApproveBatch(ctx context.Context, id string) (Batch, error)

	// DeleteBatch removes header and lines together, only while status is NEW.
	DeleteBatch(ctx context.Context, id string) error

	// UpdateLineItem persists a recomputed line and re-derives the header
	// totals from the stored lines inside the same transaction, only while
	// the batch is NEW. Totals are never accepted from the caller; concurrent
	// edits to different lines must both end up reflected in the header.
	UpdateLineItem(ctx context.Context, line LineItem) error
}
