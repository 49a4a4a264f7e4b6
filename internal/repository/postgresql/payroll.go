package postgresql

import (
	"context"
	"fmt"
	"strings"

	"github.com/Bee-255/keu-backend-go/internal/domain/payroll"
	"github.com/Bee-255/keu-backend-go/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type batchRepository struct {
	db *database.DB
}

func NewBatchRepository(db *database.DB) payroll.BatchRepository {
	return &batchRepository{db: db}
}

const batchColumns = `
	id, period, payment_label, payee_count, total_gross, total_tax,
	total_deduction, total_net, status, created_at, approved_at
`

const lineColumns = `
	id, batch_id, employee_identifier, name, occupation, classification,
	gross_amount, tax_rate, tax_amount, deduction, net_amount,
	bank_name, account_number, account_holder_name
`

func scanBatch(row pgx.Row) (payroll.Batch, error) {
	var b payroll.Batch
	err := row.Scan(
		&b.ID, &b.Period, &b.PaymentLabel, &b.PayeeCount, &b.TotalGross, &b.TotalTax,
		&b.TotalDeduction, &b.TotalNet, &b.Status, &b.CreatedAt, &b.ApprovedAt,
	)
	return b, err
}

func scanLineItem(row pgx.Row) (payroll.LineItem, error) {
	var li payroll.LineItem
	err := row.Scan(
		&li.ID, &li.BatchID, &li.EmployeeIdentifier, &li.Name, &li.Occupation, &li.Classification,
		&li.GrossAmount, &li.TaxRate, &li.TaxAmount, &li.Deduction, &li.NetAmount,
		&li.BankName, &li.AccountNumber, &li.AccountHolderName,
	)
	return li, err
}

// CreateBatch inserts the header first, then all line items. The unique
// constraint on (period, payment_label) is the authoritative guard against a
// concurrent duplicate import. If any line insert fails the header is deleted
// again, so either the full batch exists or nothing does.
func (r *batchRepository) CreateBatch(ctx context.Context, batch payroll.Batch, lines []payroll.LineItem) (payroll.Batch, error) {
	q := GetQuerier(ctx, r.db)

	headerQuery := `
		INSERT INTO payroll_batches (
			id, period, payment_label, payee_count, total_gross, total_tax,
			total_deduction, total_net, status
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING ` + batchColumns

	created, err := scanBatch(q.QueryRow(ctx, headerQuery,
		uuid.New().String(), batch.Period, batch.PaymentLabel, batch.PayeeCount,
		batch.TotalGross, batch.TotalTax, batch.TotalDeduction, batch.TotalNet,
		payroll.BatchStatusNew,
	))
	if err != nil {
		if strings.Contains(err.Error(), "uk_payroll_batch_period_label") {
			return payroll.Batch{}, payroll.ErrDuplicateBatch
		}
		return payroll.Batch{}, &payroll.CommitFailure{Stage: "header", Err: err}
	}

	lineQuery := `
		INSERT INTO payroll_line_items (
			id, batch_id, employee_identifier, name, occupation, classification,
			gross_amount, tax_rate, tax_amount, deduction, net_amount,
			bank_name, account_number, account_holder_name
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`

	for _, li := range lines {
		_, err := q.Exec(ctx, lineQuery,
			uuid.New().String(), created.ID, li.EmployeeIdentifier, li.Name, li.Occupation, li.Classification,
			li.GrossAmount, li.TaxRate, li.TaxAmount, li.Deduction, li.NetAmount,
			li.BankName, li.AccountNumber, li.AccountHolderName,
		)
		if err != nil {
			// Compensating action: no orphan header may survive.
			_, _ = q.Exec(ctx, `DELETE FROM payroll_line_items WHERE batch_id = $1`, created.ID)
			_, _ = q.Exec(ctx, `DELETE FROM payroll_batches WHERE id = $1`, created.ID)
			return payroll.Batch{}, &payroll.CommitFailure{Stage: "lines", Err: err}
		}
	}

	return created, nil
}

func (r *batchRepository) GetBatchByID(ctx context.Context, id string) (payroll.Batch, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + batchColumns + ` FROM payroll_batches WHERE id = $1`

	b, err := scanBatch(q.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return payroll.Batch{}, payroll.ErrBatchNotFound
		}
		return payroll.Batch{}, fmt.Errorf("failed to get batch: %w", err)
	}

	return b, nil
}

func (r *batchRepository) GetBatchesByIDs(ctx context.Context, ids []string) ([]payroll.Batch, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + batchColumns + ` FROM payroll_batches WHERE id = ANY($1) ORDER BY created_at`

	rows, err := q.Query(ctx, query, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to list batches: %w", err)
	}
	defer rows.Close()

	var batches []payroll.Batch
	for rows.Next() {
		b, err := scanBatch(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan batch: %w", err)
		}
		batches = append(batches, b)
	}

	return batches, nil
}

func (r *batchRepository) GetBatchesByPeriod(ctx context.Context, period string) ([]payroll.Batch, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + batchColumns + ` FROM payroll_batches`
	args := []interface{}{}
	if period != "" {
		query += ` WHERE period = $1`
		args = append(args, period)
	}
	query += ` ORDER BY period DESC, payment_label`

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list batches: %w", err)
	}
	defer rows.Close()

	var batches []payroll.Batch
	for rows.Next() {
		b, err := scanBatch(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan batch: %w", err)
		}
		batches = append(batches, b)
	}

	return batches, nil
}

func (r *batchRepository) ExistsByPeriodLabel(ctx context.Context, period, paymentLabel string) (bool, error) {
	q := GetQuerier(ctx, r.db)

	var exists bool
	err := q.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM payroll_batches WHERE period = $1 AND payment_label = $2)`,
		period, paymentLabel,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check batch existence: %w", err)
	}

	return exists, nil
}

func (r *batchRepository) GetLineItems(ctx context.Context, batchID string) ([]payroll.LineItem, error) {
	return r.GetLineItemsByBatchIDs(ctx, []string{batchID})
}

func (r *batchRepository) GetLineItemsByBatchIDs(ctx context.Context, batchIDs []string) ([]payroll.LineItem, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + lineColumns + ` FROM payroll_line_items WHERE batch_id = ANY($1) ORDER BY batch_id, name`

	rows, err := q.Query(ctx, query, batchIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to list line items: %w", err)
	}
	defer rows.Close()

	var lines []payroll.LineItem
	for rows.Next() {
		li, err := scanLineItem(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan line item: %w", err)
		}
		lines = append(lines, li)
	}

	return lines, nil
}

func (r *batchRepository) GetLineItemByID(ctx context.Context, batchID, lineItemID string) (payroll.LineItem, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + lineColumns + ` FROM payroll_line_items WHERE id = $1 AND batch_id = $2`

	li, err := scanLineItem(q.QueryRow(ctx, query, lineItemID, batchID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return payroll.LineItem{}, payroll.ErrLineItemNotFound
		}
		return payroll.LineItem{}, fmt.Errorf("failed to get line item: %w", err)
	}

	return li, nil
}

// ApproveBatch is a compare-and-set on status. Two concurrent approvals have
// exactly one winner; the loser is told the batch is already approved.
func (r *batchRepository) ApproveBatch(ctx context.Context, id string) (payroll.Batch, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE payroll_batches
		SET status = $2, approved_at = NOW()
		WHERE id = $1 AND status = $3
		RETURNING ` + batchColumns

	b, err := scanBatch(q.QueryRow(ctx, query, id, payroll.BatchStatusApproved, payroll.BatchStatusNew))
	if err != nil {
		if err == pgx.ErrNoRows {
			if _, getErr := r.GetBatchByID(ctx, id); getErr != nil {
				return payroll.Batch{}, getErr
			}
			return payroll.Batch{}, payroll.ErrAlreadyApproved
		}
		return payroll.Batch{}, fmt.Errorf("failed to approve batch: %w", err)
	}

	return b, nil
}

// DeleteBatch removes header and lines together, only while the batch is NEW.
func (r *batchRepository) DeleteBatch(ctx context.Context, id string) error {
	return WithTransaction(ctx, r.db, func(ctx context.Context) error {
		q := GetQuerier(ctx, r.db)

		var status payroll.BatchStatus
		err := q.QueryRow(ctx, `SELECT status FROM payroll_batches WHERE id = $1 FOR UPDATE`, id).Scan(&status)
		if err != nil {
			if err == pgx.ErrNoRows {
				return payroll.ErrBatchNotFound
			}
			return fmt.Errorf("failed to check batch status: %w", err)
		}
		if status == payroll.BatchStatusApproved {
			return payroll.ErrBatchLocked
		}

		if _, err := q.Exec(ctx, `DELETE FROM payroll_line_items WHERE batch_id = $1`, id); err != nil {
			return fmt.Errorf("failed to delete line items: %w", err)
		}
		if _, err := q.Exec(ctx, `DELETE FROM payroll_batches WHERE id = $1`, id); err != nil {
			return fmt.Errorf("failed to delete batch: %w", err)
		}
		return nil
	})
}

// UpdateLineItem persists a recomputed line and re-derives the header totals
// from the stored lines while the row lock is held, so the invariant "totals
// equal the sum of lines" holds in every committed state even under
// concurrent edits to different lines of the same batch.
func (r *batchRepository) UpdateLineItem(ctx context.Context, line payroll.LineItem) error {
	return WithTransaction(ctx, r.db, func(ctx context.Context) error {
		q := GetQuerier(ctx, r.db)

		var status payroll.BatchStatus
		err := q.QueryRow(ctx, `SELECT status FROM payroll_batches WHERE id = $1 FOR UPDATE`, line.BatchID).Scan(&status)
		if err != nil {
			if err == pgx.ErrNoRows {
				return payroll.ErrBatchNotFound
			}
			return fmt.Errorf("failed to check batch status: %w", err)
		}
		if status == payroll.BatchStatusApproved {
			return payroll.ErrBatchLocked
		}

		lineQuery := `
			UPDATE payroll_line_items
			SET gross_amount = $3, tax_rate = $4, tax_amount = $5, deduction = $6, net_amount = $7
			WHERE id = $1 AND batch_id = $2
			RETURNING id
		`
		var updatedID string
		err = q.QueryRow(ctx, lineQuery,
			line.ID, line.BatchID, line.GrossAmount, line.TaxRate, line.TaxAmount, line.Deduction, line.NetAmount,
		).Scan(&updatedID)
		if err != nil {
			if err == pgx.ErrNoRows {
				return payroll.ErrLineItemNotFound
			}
			return fmt.Errorf("failed to update line item: %w", err)
		}

		headerQuery := `
			UPDATE payroll_batches
			SET total_gross = (SELECT COALESCE(SUM(gross_amount), 0) FROM payroll_line_items WHERE batch_id = $1),
				total_tax = (SELECT COALESCE(SUM(tax_amount), 0) FROM payroll_line_items WHERE batch_id = $1),
				total_deduction = (SELECT COALESCE(SUM(deduction), 0) FROM payroll_line_items WHERE batch_id = $1),
				total_net = (SELECT COALESCE(SUM(net_amount), 0) FROM payroll_line_items WHERE batch_id = $1)
			WHERE id = $1
		`
		if _, err := q.Exec(ctx, headerQuery, line.BatchID); err != nil {
			return fmt.Errorf("failed to update batch totals: %w", err)
		}
		return nil
	})
}
