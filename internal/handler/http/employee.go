package http

import (
	"net/http"
	"strings"

	"github.com/Bee-255/keu-backend-go/internal/domain/employee"
	"github.com/Bee-255/keu-backend-go/internal/handler/http/response"
)

type EmployeeHandler interface {
	List(w http.ResponseWriter, r *http.Request)
}

type EmployeeHandlerImpl struct {
	directoryRepo employee.DirectoryRepository
}

func NewEmployeeHandler(directoryRepo employee.DirectoryRepository) EmployeeHandler {
	return &EmployeeHandlerImpl{directoryRepo: directoryRepo}
}

// List is a read-only passthrough over the active directory, used by the
// front office to preview payees before an import.
func (h *EmployeeHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("ids")
	if raw == "" {
		response.BadRequest(w, "Query parameter 'ids' is required", nil)
		return
	}

	var ids []string
	for _, id := range strings.Split(raw, ",") {
		if id = strings.TrimSpace(id); id != "" {
			ids = append(ids, id)
		}
	}
	if len(ids) == 0 {
		response.BadRequest(w, "Query parameter 'ids' is required", nil)
		return
	}

	entries, err := h.directoryRepo.GetActiveByIdentifiers(r.Context(), ids)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	resp := make([]employee.DirectoryEntryResponse, 0, len(entries))
	for _, e := range entries {
		resp = append(resp, employee.ToDirectoryEntryResponse(e))
	}
	response.Success(w, resp)
}
