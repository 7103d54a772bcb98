package httpx

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/mleczna-droga/printbridge/internal/adapters/zebra"
	"github.com/mleczna-droga/printbridge/internal/core"
	"github.com/mleczna-droga/printbridge/internal/domain/label"
	"github.com/mleczna-droga/printbridge/internal/domain/printing"
	"github.com/mleczna-droga/printbridge/internal/service"
)

type testEnv struct {
	router   http.Handler
	hub      *service.JobEventHub
	received chan []byte
}

type testEnvOptions struct {
	history     core.PrintJobRepository
	printerDown bool
}

// newTestEnv wires the real formatter and socket client to an in-process
// printer listening on 127.0.0.1, registered as "Zebra-Hala-A".
func newTestEnv(t *testing.T, opts testEnvOptions) *testEnv {
	t.Helper()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	port := ln.Addr().(*net.TCPAddr).Port

	received := make(chan []byte, 4)
	if opts.printerDown {
		require.NoError(t, ln.Close())
	} else {
		t.Cleanup(func() { _ = ln.Close() })
		go func() {
			for {
				conn, err := ln.Accept()
				if err != nil {
					return
				}
				data, _ := io.ReadAll(conn)
				_ = conn.Close()
				received <- data
			}
		}()
	}

	dir, err := printing.NewDirectory([]printing.Printer{{Name: "Zebra-Hala-A", IP: "127.0.0.1"}})
	require.NoError(t, err)
	formatter, err := label.NewFormatter(label.Options{})
	require.NoError(t, err)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	client := zebra.NewClient(zebra.Options{Port: port, Timeout: 2 * time.Second, Logger: logger})
	hub := service.NewJobEventHub(service.JobEventHubOptions{Logger: logger})

	jobs, err := service.NewPrintJobService(service.PrintJobServiceOptions{
		Directory: dir,
		Formatter: formatter,
		Deliverer: client,
		History:   opts.history,
		Events:    hub,
		Logger:    logger,
	})
	require.NoError(t, err)
	t.Cleanup(jobs.Wait)

	printers, err := service.NewPrinterStatusService(service.PrinterStatusServiceOptions{
		Directory: dir,
		Prober:    client,
		Logger:    logger,
	})
	require.NoError(t, err)

	return &testEnv{
		router: NewRouter(RouterServices{
			PrintJobs:    jobs,
			Printers:     printers,
			Events:       hub,
			MaxBodyBytes: 4096,
			Logger:       logger,
		}),
		hub:      hub,
		received: received,
	}
}

func (e *testEnv) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var r io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		r = bytes.NewBufferString(b)
	default:
		buf, err := json.Marshal(b)
		require.NoError(t, err)
		r = bytes.NewReader(buf)
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), "body: %s", rec.Body.String())
	return out
}
