package payroll

import (
	"errors"
	"fmt"
)

var (
	ErrBatchNotFound    = errors.New("payroll batch not found")
	ErrLineItemNotFound = errors.New("payroll line item not found")
	ErrDuplicateBatch   = errors.New("a batch already exists for this period and payment label")
	ErrBatchLocked      = errors.New("batch is approved and locked, cannot modify")
	ErrAlreadyApproved  = errors.New("batch already approved")
	ErrBatchNotApproved = errors.New("batch is not approved yet, cannot export")
	ErrMissingLabel     = errors.New("no payment label found in upload")
	ErrNoValidRows      = errors.New("no valid data found in upload")
	ErrEmptyResult      = errors.New("no matching data for export")
	ErrRoleNotAllowed   = errors.New("caller role is not allowed to perform this operation")
)

// InputFormatError reports an unreadable workbook or a missing required
// column. It is fatal and raised before any business validation runs.
type InputFormatError struct {
	Detail string
}

func (e *InputFormatError) Error() string {
	return "invalid upload format: " + e.Detail
}

// ValidationFailedError aggregates every row that failed business rules in a
// dry-run import. Nothing is persisted when this error is returned.
type ValidationFailedError struct {
	Rows         []FailureRow
	ReasonCounts map[FailureReason]int
}

func (e *ValidationFailedError) Error() string {
	return fmt.Sprintf("import validation failed: %d row(s) rejected", len(e.Rows))
}

// CommitFailure wraps a storage error raised while persisting a validated
// batch. The compensating rollback has already run by the time it surfaces.
type CommitFailure struct {
	Stage string // "header", "lines" or "rollback"
	Err   error
}

func (e *CommitFailure) Error() string {
	return fmt.Sprintf("batch commit failed at %s: %v", e.Stage, e.Err)
}

func (e *CommitFailure) Unwrap() error {
	return e.Err
}
