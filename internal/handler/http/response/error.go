package response

import (
	"errors"
	"net/http"

	"github.com/Bee-255/keu-backend-go/internal/domain/employee"
	"github.com/Bee-255/keu-backend-go/internal/domain/payroll"
	"github.com/Bee-255/keu-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses. ValidationFailedError is
// not handled here; the import handler streams it as a failure-report
// workbook instead.
func HandleError(w http.ResponseWriter, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	var formatErr *payroll.InputFormatError
	if errors.As(err, &formatErr) {
		BadRequest(w, formatErr.Error(), nil)
		return
	}

	switch {
	case errors.Is(err, payroll.ErrRoleNotAllowed):
		Forbidden(w, "Caller role is not allowed to perform this operation")

	case errors.Is(err, payroll.ErrBatchNotFound):
		NotFound(w, "Batch not found")
	case errors.Is(err, payroll.ErrLineItemNotFound):
		NotFound(w, "Line item not found")
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")

	case errors.Is(err, payroll.ErrDuplicateBatch):
		Conflict(w, "A batch for this period and payment label already exists")
	case errors.Is(err, payroll.ErrBatchLocked):
		Conflict(w, "Batch is approved and can no longer be modified")
	case errors.Is(err, payroll.ErrAlreadyApproved):
		Conflict(w, "Batch is already approved")
	case errors.Is(err, payroll.ErrBatchNotApproved):
		Conflict(w, "All batches in the export must be approved")

	case errors.Is(err, payroll.ErrMissingLabel):
		BadRequest(w, "Upload carries no payment label", nil)
	case errors.Is(err, payroll.ErrNoValidRows):
		BadRequest(w, "No valid data found in upload", nil)
	case errors.Is(err, payroll.ErrEmptyResult):
		NotFound(w, "No matching data for this export")

	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
