package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/mleczna-droga/printbridge/internal/core"
	"github.com/mleczna-droga/printbridge/internal/domain/model"
	"github.com/mleczna-droga/printbridge/internal/domain/printing"
	apperrors "github.com/mleczna-droga/printbridge/internal/errors"
	"github.com/mleczna-droga/printbridge/internal/observability/metrics"
	"github.com/mleczna-droga/printbridge/internal/observability/statsd"
)

const (
	// DefaultProbeInterval is how often Run probes the whole directory.
	DefaultProbeInterval = 30 * time.Second
	// DefaultProbeConcurrency caps simultaneous probes.
	DefaultProbeConcurrency = 8
)

// PrinterStatusServiceOptions groups dependencies for PrinterStatusService.
type PrinterStatusServiceOptions struct {
	Directory   *printing.Directory      // Required: printers to probe
	Prober      core.PrinterProber       // Required: reachability check
	Cache       *core.PrinterStatusCache // Optional: last known status store
	Metrics     statsd.Sink              // Optional: metrics sink (StatsD-compatible)
	Logger      *slog.Logger             // Optional: structured logger
	Interval    time.Duration            // Optional: defaults to DefaultProbeInterval
	Concurrency int                      // Optional: defaults to DefaultProbeConcurrency
}

// PrinterStatusService probes directory printers and serves their last known status.
type PrinterStatusService struct {
	directory   *printing.Directory
	prober      core.PrinterProber
	cache       *core.PrinterStatusCache
	metrics     statsd.Sink
	logger      *slog.Logger
	interval    time.Duration
	concurrency int
}

// NewPrinterStatusService constructs a new PrinterStatusService.
func NewPrinterStatusService(opts PrinterStatusServiceOptions) (*PrinterStatusService, error) {
	if opts.Prober == nil {
		return nil, errors.New("PrinterProber is required")
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	interval := opts.Interval
	if interval <= 0 {
		interval = DefaultProbeInterval
	}
	concurrency := opts.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultProbeConcurrency
	}
	return &PrinterStatusService{
		directory:   opts.Directory,
		prober:      opts.Prober,
		cache:       opts.Cache,
		metrics:     opts.Metrics,
		logger:      logger.With("component", "printer_status_service"),
		interval:    interval,
		concurrency: concurrency,
	}, nil
}

// ProbeAll probes every directory printer concurrently and caches the results.
// The returned statuses are sorted by printer name.
func (s *PrinterStatusService) ProbeAll(ctx context.Context) ([]model.PrinterStatus, error) {
	printers := s.directory.List()
	statuses := make([]model.PrinterStatus, len(printers))

	var g errgroup.Group
	g.SetLimit(s.concurrency)
	for i, p := range printers {
		g.Go(func() error {
			statuses[i] = s.probe(ctx, p)
			return nil
		})
	}
	_ = g.Wait() // probe failures live in each status
	return statuses, ctx.Err()
}

// ProbePrinter probes a single printer by name.
func (s *PrinterStatusService) ProbePrinter(ctx context.Context, name string) (model.PrinterStatus, error) {
	p, ok := s.directory.Lookup(name)
	if !ok {
		return model.PrinterStatus{}, apperrors.NotFoundf("printer %q is not configured", name)
	}
	return s.probe(ctx, p), nil
}

// List returns directory printers joined with their cached status. Cache
// failures leave the status empty rather than failing the listing.
func (s *PrinterStatusService) List(ctx context.Context) []model.PrinterView {
	printers := s.directory.List()
	views := make([]model.PrinterView, 0, len(printers))
	for _, p := range printers {
		view := model.PrinterView{Name: p.Name, IP: p.IP, Description: p.Description}
		if s.cache != nil {
			status, err := s.cache.Get(ctx, p.Name)
			if err != nil {
				s.logger.WarnContext(ctx, "read cached printer status failed", "printer", p.Name, "error", err)
			}
			view.Status = status
		}
		views = append(views, view)
	}
	return views
}

// Run probes the directory immediately and then on every interval until ctx is cancelled.
// Returns nil on graceful shutdown.
func (s *PrinterStatusService) Run(ctx context.Context) error {
	if s.directory.Len() == 0 {
		s.logger.InfoContext(ctx, "no printers configured, prober idle")
		<-ctx.Done()
		return nil
	}

	s.logger.InfoContext(ctx, "starting printer prober",
		"interval", s.interval,
		"printers", s.directory.Len(),
		"concurrency", s.concurrency,
	)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.sweep(ctx)
	for {
		select {
		case <-ctx.Done():
			s.logger.InfoContext(ctx, "printer prober stopping", "reason", context.Cause(ctx))
			return nil
		case <-ticker.C:
			s.sweep(ctx)
		}
	}
}

func (s *PrinterStatusService) sweep(ctx context.Context) {
	statuses, err := s.ProbeAll(ctx)
	if err != nil {
		return
	}
	down := 0
	for _, st := range statuses {
		if !st.Reachable {
			down++
		}
	}
	s.logger.DebugContext(ctx, "printer probe sweep finished", "printers", len(statuses), "unreachable", down)
}

func (s *PrinterStatusService) probe(ctx context.Context, p printing.Printer) model.PrinterStatus {
	status := model.PrinterStatus{Name: p.Name, IP: p.IP}

	rtt, err := s.prober.Probe(ctx, p.IP)
	status.CheckedAt = time.Now().UTC()
	if err != nil {
		status.Error = err.Error()
		s.logger.DebugContext(ctx, "printer unreachable", "printer", p.Name, "ip", p.IP, "error", err)
	} else {
		status.Reachable = true
		status.LatencyMS = rtt.Milliseconds()
	}
	metrics.EmitPrinterReachability(s.metrics, p.Name, status.Reachable, rtt)

	if s.cache != nil && ctx.Err() == nil {
		if err := s.cache.Put(ctx, status); err != nil {
			s.logger.WarnContext(ctx, "cache printer status failed", "printer", p.Name, "error", err)
		}
	}
	return status
}
