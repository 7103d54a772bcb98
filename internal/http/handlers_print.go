package httpx

import (
	"encoding/json"
	"net/http"

	"github.com/mleczna-droga/printbridge/internal/domain/printing"
	"github.com/mleczna-droga/printbridge/internal/service"
)

// DefaultMaxPrintBodyBytes caps a print request body.
const DefaultMaxPrintBodyBytes int64 = 1 << 20

const statusMessage = "Print bridge is running"

// printLabelRequest is the body of POST /print-label.
type printLabelRequest struct {
	Data        json.RawMessage `json:"data"`
	PrinterName string          `json:"printerName"`
	IP          string          `json:"ip"`
	JobType     string          `json:"jobType"`
}

// printLabelResponse is the body of every /print-label and /status response.
type printLabelResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	JobID   string `json:"jobId,omitempty"`
}

// PrintHandlers serves the label job endpoint used by the warehouse UI.
type PrintHandlers struct {
	Svc          *service.PrintJobService
	MaxBodyBytes int64
}

// PrintLabel handles POST /print-label.
func (h *PrintHandlers) PrintLabel(w http.ResponseWriter, r *http.Request) {
	limit := h.MaxBodyBytes
	if limit <= 0 {
		limit = DefaultMaxPrintBodyBytes
	}
	r.Body = http.MaxBytesReader(w, r.Body, limit)

	var body printLabelRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writePrintFailure(w, statusForDecodeError(err), "invalid request body: "+err.Error())
		return
	}

	payload, err := printing.ParsePayload(body.Data)
	if err != nil {
		writePrintFailure(w, statusForError(err), err.Error())
		return
	}

	res, err := h.Svc.Submit(r.Context(), printing.JobRequest{
		Payload:     payload,
		PrinterName: body.PrinterName,
		IP:          body.IP,
		JobType:     body.JobType,
	})
	if err != nil {
		resp := printLabelResponse{Success: false, Message: err.Error()}
		if res != nil {
			resp.JobID = res.JobID
		}
		WriteJSON(w, statusForError(err), resp)
		return
	}

	WriteJSON(w, http.StatusOK, printLabelResponse{Success: true, JobID: res.JobID})
}

// Status handles GET /status. It never consults printers, the database or the cache.
func (h *PrintHandlers) Status(w http.ResponseWriter, _ *http.Request) {
	WriteJSON(w, http.StatusOK, printLabelResponse{Success: true, Message: statusMessage})
}

func writePrintFailure(w http.ResponseWriter, status int, message string) {
	WriteJSON(w, status, printLabelResponse{Success: false, Message: message})
}
