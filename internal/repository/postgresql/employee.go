package postgresql

import (
	"context"
	"fmt"

	"github.com/Bee-255/keu-backend-go/internal/domain/employee"
	"github.com/Bee-255/keu-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type employeeRepository struct {
	db *database.DB
}

func NewEmployeeRepository(db *database.DB) employee.DirectoryRepository {
	return &employeeRepository{db: db}
}

const directoryColumns = `
	id, identifier, full_name, occupation, rank, grade, classification,
	bank_name, account_number, account_holder_name, status, created_at, updated_at
`

func scanDirectoryEntry(row pgx.Row) (employee.DirectoryEntry, error) {
	var e employee.DirectoryEntry
	err := row.Scan(
		&e.ID, &e.Identifier, &e.FullName, &e.Occupation, &e.Rank, &e.Grade, &e.Classification,
		&e.BankName, &e.AccountNumber, &e.AccountHolderName, &e.Status, &e.CreatedAt, &e.UpdatedAt,
	)
	return e, err
}

func (r *employeeRepository) GetActiveByIdentifiers(ctx context.Context, identifiers []string) ([]employee.DirectoryEntry, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + directoryColumns + `
		FROM employees
		WHERE identifier = ANY($1) AND status = 'active'
		ORDER BY full_name
	`

	rows, err := q.Query(ctx, query, identifiers)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	defer rows.Close()

	var entries []employee.DirectoryEntry
	for rows.Next() {
		e, err := scanDirectoryEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan employee: %w", err)
		}
		entries = append(entries, e)
	}

	return entries, nil
}

func (r *employeeRepository) GetActiveByIdentifier(ctx context.Context, identifier string) (employee.DirectoryEntry, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + directoryColumns + `
		FROM employees
		WHERE identifier = $1 AND status = 'active'
	`

	e, err := scanDirectoryEntry(q.QueryRow(ctx, query, identifier))
	if err != nil {
		if err == pgx.ErrNoRows {
			return employee.DirectoryEntry{}, employee.ErrEmployeeNotFound
		}
		return employee.DirectoryEntry{}, fmt.Errorf("failed to get employee: %w", err)
	}

	return e, nil
}
