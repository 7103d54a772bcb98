package httpx

import (
	"net/http"

	"github.com/mleczna-droga/printbridge/internal/service"
)

// PrinterHandlers serves the printer directory and reachability.
type PrinterHandlers struct {
	Svc *service.PrinterStatusService
}

// List handles GET /printers.
func (h *PrinterHandlers) List(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, map[string]any{"printers": h.Svc.List(r.Context())})
}

// Probe handles POST /printers/{name}/probe.
func (h *PrinterHandlers) Probe(w http.ResponseWriter, r *http.Request) {
	status, err := h.Svc.ProbePrinter(r.Context(), r.PathValue("name"))
	if err != nil {
		WriteAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, status)
}
