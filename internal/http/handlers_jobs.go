package httpx

import (
	"net/http"
	"strings"

	"github.com/mleczna-droga/printbridge/internal/domain/model"
	"github.com/mleczna-droga/printbridge/internal/service"
)

// JobHandlers serves the print job history.
type JobHandlers struct {
	Svc *service.PrintJobService
}

// List handles GET /jobs?limit=&offset=&printer=&ip=&status=&since=.
func (h *JobHandlers) List(w http.ResponseWriter, r *http.Request) {
	opts, err := parseJobListOptions(r)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	jobs, err := h.Svc.ListJobs(r.Context(), opts)
	if err != nil {
		WriteAppError(w, err)
		return
	}
	if jobs == nil {
		jobs = []*model.PrintJob{}
	}
	WriteJSON(w, http.StatusOK, map[string]any{
		"jobs":   jobs,
		"limit":  opts.Limit,
		"offset": opts.Offset,
	})
}

// Get handles GET /jobs/{id}.
func (h *JobHandlers) Get(w http.ResponseWriter, r *http.Request) {
	job, err := h.Svc.GetJob(r.Context(), r.PathValue("id"))
	if err != nil {
		WriteAppError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, job)
}

func parseJobListOptions(r *http.Request) (model.PrintJobListOptions, error) {
	q := r.URL.Query()
	limit, offset := ParseLimitOffset(r, model.DefaultPrintJobListLimit, model.MaxPrintJobListLimit)
	opts := model.PrintJobListOptions{
		PrinterName: strings.TrimSpace(q.Get("printer")),
		IP:          strings.TrimSpace(q.Get("ip")),
		Limit:       limit,
		Offset:      offset,
	}

	if raw := q.Get("status"); raw != "" {
		var status model.PrintJobStatus
		if err := status.UnmarshalText([]byte(raw)); err != nil {
			return opts, validationf("status", err)
		}
		opts.Status = &status
	}

	since, err := parseTimeQuery(r, "since")
	if err != nil {
		return opts, err
	}
	opts.Since = since
	return opts, nil
}
