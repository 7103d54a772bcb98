// Package httpx provides the HTTP surface of the print bridge: the label job
// endpoint used by the warehouse UI plus printer, history and event endpoints
// for operators.
package httpx

import (
	"log/slog"
	"net/http"

	"github.com/mleczna-droga/printbridge/internal/service"
)

// RouterServices holds all the services needed by the HTTP router.
type RouterServices struct {
	PrintJobs *service.PrintJobService      // Required
	Printers  *service.PrinterStatusService // Optional: enables /printers
	Events    *service.JobEventHub          // Optional: enables /ws/jobs

	AllowedOrigin string // CORS origin, "*" when empty
	MaxBodyBytes  int64  // print request body cap
	Logger        *slog.Logger
}

// NewRouter creates and configures the HTTP router with logging, panic
// recovery and CORS middleware.
func NewRouter(services RouterServices) http.Handler {
	logger := services.Logger
	if logger == nil {
		logger = slog.Default()
	}

	mux := http.NewServeMux()

	printHandlers := &PrintHandlers{Svc: services.PrintJobs, MaxBodyBytes: services.MaxBodyBytes}
	mux.HandleFunc("POST /print-label", printHandlers.PrintLabel)
	mux.HandleFunc("GET /status", printHandlers.Status)

	jobHandlers := &JobHandlers{Svc: services.PrintJobs}
	mux.HandleFunc("GET /jobs", jobHandlers.List)
	mux.HandleFunc("GET /jobs/{id}", jobHandlers.Get)

	if services.Printers != nil {
		printerHandlers := &PrinterHandlers{Svc: services.Printers}
		mux.HandleFunc("GET /printers", printerHandlers.List)
		mux.HandleFunc("POST /printers/{name}/probe", printerHandlers.Probe)
	}

	if services.Events != nil {
		streamHandlers := &EventStreamHandlers{
			Hub:           services.Events,
			AllowedOrigin: services.AllowedOrigin,
			Logger:        logger.With("component", "event_stream"),
		}
		mux.HandleFunc("GET /ws/jobs", streamHandlers.Stream)
	}

	mux.HandleFunc("GET /healthz", healthHandler)
	mux.HandleFunc("HEAD /healthz", healthHandler)

	return Chain(mux,
		Recover(logger),
		Logging(logger),
		CORS(services.AllowedOrigin),
	)
}
