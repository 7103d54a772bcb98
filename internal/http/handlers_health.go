package httpx

import "net/http"

var healthBody = []byte(`{"status":"ok"}`)

// healthHandler reports process liveness. It does not dial printers or the
// history database; GET /printers and the supervisor cover those.
func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	if r.Method != http.MethodHead {
		_, _ = w.Write(healthBody)
	}
}
