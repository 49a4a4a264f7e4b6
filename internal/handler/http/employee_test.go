package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Bee-255/keu-backend-go/internal/domain/employee"
)

type stubDirectoryRepository struct {
	entries []employee.DirectoryEntry
}

func (s *stubDirectoryRepository) GetActiveByIdentifiers(ctx context.Context, identifiers []string) ([]employee.DirectoryEntry, error) {
	return s.entries, nil
}

func (s *stubDirectoryRepository) GetActiveByIdentifier(ctx context.Context, identifier string) (employee.DirectoryEntry, error) {
	if len(s.entries) > 0 {
		return s.entries[0], nil
	}
	return employee.DirectoryEntry{}, employee.ErrEmployeeNotFound
}

func TestEmployeeListSerializesDirectoryDTO(t *testing.T) {
	repo := &stubDirectoryRepository{entries: []employee.DirectoryEntry{
		{
			ID: "emp-1", Identifier: "198801012010011001", FullName: "Agus Salim",
			Occupation: "Perawat PNS", Grade: "III/a",
			Classification: employee.ClassificationParamedical,
			BankName:       "BRI", AccountNumber: "001122334455", AccountHolderName: "Agus Salim",
			Status:    employee.StatusActive,
			CreatedAt: time.Now(), UpdatedAt: time.Now(),
		},
	}}
	handler := NewEmployeeHandler(repo)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/payroll/employees?ids=198801012010011001", nil)
	rec := httptest.NewRecorder()
	handler.List(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Success bool                     `json:"success"`
		Data    []map[string]interface{} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.True(t, body.Success)
	require.Len(t, body.Data, 1)

	entry := body.Data[0]
	assert.Equal(t, "Agus Salim", entry["full_name"])
	assert.Equal(t, "198801012010011001", entry["identifier"])
	assert.Equal(t, "paramedical", entry["classification"])
	assert.Equal(t, "active", entry["status"])
	assert.Equal(t, "001122334455", entry["account_number"])

	// Internal field names and timestamps never reach the wire.
	for _, key := range []string{"FullName", "Identifier", "created_at", "CreatedAt", "updated_at", "UpdatedAt"} {
		_, found := entry[key]
		assert.False(t, found, "unexpected key %q", key)
	}
}

func TestEmployeeListRequiresIDs(t *testing.T) {
	handler := NewEmployeeHandler(&stubDirectoryRepository{})

	for _, query := range []string{"", "?ids=", "?ids=,%20,"} {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/payroll/employees"+query, nil)
		rec := httptest.NewRecorder()
		handler.List(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code, "query %q", query)
	}
}
