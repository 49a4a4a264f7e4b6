package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/Bee-255/keu-backend-go/internal/domain/payroll"
	"github.com/Bee-255/keu-backend-go/internal/handler/http/middleware"
	"github.com/Bee-255/keu-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type PayrollHandler interface {
	Import(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	GetByID(w http.ResponseWriter, r *http.Request)
	Approve(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
	UpdateLineItem(w http.ResponseWriter, r *http.Request)
	ExportBankTransfer(w http.ResponseWriter, r *http.Request)
	ExportCash(w http.ResponseWriter, r *http.Request)
	ExportRegister(w http.ResponseWriter, r *http.Request)
}

type PayrollHandlerImpl struct {
	batchService payroll.BatchService
}

func NewPayrollHandler(batchService payroll.BatchService) PayrollHandler {
	return &PayrollHandlerImpl{batchService: batchService}
}

// Import implements PayrollHandler. A rejected upload answers 422 with the
// failure report workbook attached, so the operator gets the row-by-row
// reasons without a second request.
func (h *PayrollHandlerImpl) Import(w http.ResponseWriter, r *http.Request) {
	role, ok := middleware.CallerRole(r)
	if !ok {
		response.Forbidden(w, "Caller role is missing or unknown")
		return
	}

	if err := r.ParseMultipartForm(10 << 20); err != nil {
		slog.Error("Failed to parse multipart form", "error", err)
		response.BadRequest(w, "Failed to parse form data", nil)
		return
	}

	file, fileHeader, err := r.FormFile("file")
	if err != nil {
		response.BadRequest(w, "Field 'file' is required", nil)
		return
	}
	defer file.Close()

	req := payroll.ImportRequest{
		Period:   r.FormValue("period"),
		FileName: fileHeader.Filename,
	}

	batch, err := h.batchService.Import(r.Context(), role, req, file)
	if err != nil {
		var failure *payroll.ValidationFailedError
		if errors.As(err, &failure) {
			artifact, reportErr := h.batchService.FailureReport(failure, req.Period)
			if reportErr != nil {
				slog.Error("Failed to render failure report", "error", reportErr)
				response.InternalServerError(w, "Failed to render failure report")
				return
			}
			slog.Info("Import rejected", "period", req.Period, "failed_rows", len(failure.Rows))
			response.Attachment(w, http.StatusUnprocessableEntity, artifact.FileName, artifact.Content)
			return
		}
		slog.Error("Failed to import batch", "error", err)
		response.HandleError(w, err)
		return
	}

	slog.Info("Batch imported", "batch_id", batch.ID, "period", batch.Period, "payees", batch.PayeeCount)
	response.Created(w, "Batch imported successfully", batch)
}

// List implements PayrollHandler.
func (h *PayrollHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	batches, err := h.batchService.ListBatches(r.Context(), r.URL.Query().Get("period"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, batches)
}

// GetByID implements PayrollHandler.
func (h *PayrollHandlerImpl) GetByID(w http.ResponseWriter, r *http.Request) {
	detail, err := h.batchService.GetBatch(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, detail)
}

// Approve implements PayrollHandler.
func (h *PayrollHandlerImpl) Approve(w http.ResponseWriter, r *http.Request) {
	role, ok := middleware.CallerRole(r)
	if !ok {
		response.Forbidden(w, "Caller role is missing or unknown")
		return
	}

	batch, err := h.batchService.Approve(r.Context(), role, chi.URLParam(r, "id"))
	if err != nil {
		slog.Error("Failed to approve batch", "error", err)
		response.HandleError(w, err)
		return
	}

	slog.Info("Batch approved", "batch_id", batch.ID)
	response.SuccessWithMessage(w, "Batch approved", batch)
}

// Delete implements PayrollHandler.
func (h *PayrollHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	role, ok := middleware.CallerRole(r)
	if !ok {
		response.Forbidden(w, "Caller role is missing or unknown")
		return
	}

	if err := h.batchService.DeleteBatch(r.Context(), role, chi.URLParam(r, "id")); err != nil {
		slog.Error("Failed to delete batch", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Batch deleted", nil)
}

// UpdateLineItem implements PayrollHandler.
func (h *PayrollHandlerImpl) UpdateLineItem(w http.ResponseWriter, r *http.Request) {
	role, ok := middleware.CallerRole(r)
	if !ok {
		response.Forbidden(w, "Caller role is missing or unknown")
		return
	}

	var req payroll.UpdateLineItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.BatchID = chi.URLParam(r, "id")
	req.LineItemID = chi.URLParam(r, "lineId")

	line, err := h.batchService.UpdateLineItem(r.Context(), role, req)
	if err != nil {
		slog.Error("Failed to update line item", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Line item updated", line)
}

// ExportBankTransfer implements PayrollHandler.
func (h *PayrollHandlerImpl) ExportBankTransfer(w http.ResponseWriter, r *http.Request) {
	role, ok := middleware.CallerRole(r)
	if !ok {
		response.Forbidden(w, "Caller role is missing or unknown")
		return
	}

	var req payroll.ExportBankTransferRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	artifact, err := h.batchService.ExportBankTransfer(r.Context(), role, req)
	if err != nil {
		slog.Error("Failed to export bank transfer list", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Attachment(w, http.StatusOK, artifact.FileName, artifact.Content)
}

// ExportCash implements PayrollHandler.
func (h *PayrollHandlerImpl) ExportCash(w http.ResponseWriter, r *http.Request) {
	role, ok := middleware.CallerRole(r)
	if !ok {
		response.Forbidden(w, "Caller role is missing or unknown")
		return
	}

	var req payroll.ExportCashRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	artifact, err := h.batchService.ExportCash(r.Context(), role, req)
	if err != nil {
		slog.Error("Failed to export cash list", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Attachment(w, http.StatusOK, artifact.FileName, artifact.Content)
}

// ExportRegister implements PayrollHandler.
func (h *PayrollHandlerImpl) ExportRegister(w http.ResponseWriter, r *http.Request) {
	role, ok := middleware.CallerRole(r)
	if !ok {
		response.Forbidden(w, "Caller role is missing or unknown")
		return
	}

	var req payroll.ExportRegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	artifact, err := h.batchService.ExportRegister(r.Context(), role, req)
	if err != nil {
		slog.Error("Failed to export register", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Attachment(w, http.StatusOK, artifact.FileName, artifact.Content)
}
