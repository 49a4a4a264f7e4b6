package employee

import "context"

// DirectoryRepository is the read-only view of the employee directory used by
// the payroll pipeline. Only active entries are visible; resigned or
// terminated employees do not take part in payroll.
type DirectoryRepository interface {
	GetActiveByIdentifiers(ctx context.Context, identifiers []string) ([]DirectoryEntry, error)
	GetActiveByIdentifier(ctx context.Context, identifier string) (DirectoryEntry, error)
}
