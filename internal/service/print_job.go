package service

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/mleczna-droga/printbridge/internal/core"
	"github.com/mleczna-droga/printbridge/internal/domain/model"
	"github.com/mleczna-droga/printbridge/internal/domain/printing"
	apperrors "github.com/mleczna-droga/printbridge/internal/errors"
	"github.com/mleczna-droga/printbridge/internal/observability/metrics"
	"github.com/mleczna-droga/printbridge/internal/observability/statsd"
)

// DefaultHistoryTimeout bounds the best-effort history write after a delivery.
const DefaultHistoryTimeout = 2 * time.Second

// PrintJobServiceOptions groups dependencies for PrintJobService.
type PrintJobServiceOptions struct {
	Directory      *printing.Directory     // Required: printer name to IP table
	Formatter      core.LabelFormatter     // Required: payload to printer markup
	Deliverer      core.LabelDeliverer     // Required: socket delivery
	History        core.PrintJobRepository // Optional: job history store
	Events         core.JobEventPublisher  // Optional: live job events
	Metrics        statsd.Sink             // Optional: metrics sink (StatsD-compatible)
	Logger         *slog.Logger            // Optional: structured logger
	HistoryTimeout time.Duration           // Optional: defaults to DefaultHistoryTimeout
	NewID          func() string           // Optional: job ID generator, defaults to uuid
}

// PrintJobService resolves, formats and delivers label jobs.
//
// A job is a single attempt: there is no queue and no retry. History, events
// and metrics are side channels and never change the outcome of a job.
type PrintJobService struct {
	directory      *printing.Directory
	formatter      core.LabelFormatter
	deliverer      core.LabelDeliverer
	history        core.PrintJobRepository
	events         core.JobEventPublisher
	metrics        statsd.Sink
	logger         *slog.Logger
	historyTimeout time.Duration
	newID          func() string

	pending sync.WaitGroup
}

// SubmitResult describes a delivered or attempted job.
type SubmitResult struct {
	JobID    string
	IP       string
	Delivery printing.DeliveryResult
}

// NewPrintJobService constructs a new PrintJobService.
func NewPrintJobService(opts PrintJobServiceOptions) (*PrintJobService, error) {
	if opts.Formatter == nil {
		return nil, errors.New("LabelFormatter is required")
	}
	if opts.Deliverer == nil {
		return nil, errors.New("LabelDeliverer is required")
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	timeout := opts.HistoryTimeout
	if timeout <= 0 {
		timeout = DefaultHistoryTimeout
	}
	newID := opts.NewID
	if newID == nil {
		newID = uuid.NewString
	}

	return &PrintJobService{
		directory:      opts.Directory,
		formatter:      opts.Formatter,
		deliverer:      opts.Deliverer,
		history:        opts.History,
		events:         opts.Events,
		metrics:        opts.Metrics,
		logger:         logger.With("component", "print_job_service"),
		historyTimeout: timeout,
		newID:          newID,
	}, nil
}

// Submit runs one job: resolve the target, format the payload, deliver it.
//
// Resolution and formatting errors reject the job before any socket is opened.
// Delivery errors are DeliveryFailed. A non-nil result is returned whenever
// a delivery was attempted, including failed ones.
func (s *PrintJobService) Submit(ctx context.Context, req printing.JobRequest) (*SubmitResult, error) {
	jobID := s.newID()
	jobType := req.NormalizedJobType()

	ip, err := s.directory.Resolve(req.IP, req.PrinterName)
	if err != nil {
		s.reject(ctx, jobID, req, jobType, err)
		return nil, err
	}

	markup, err := s.formatter.Format(req.Payload)
	if err != nil {
		s.reject(ctx, jobID, req, jobType, err)
		return nil, err
	}

	started := time.Now().UTC()
	s.publish(model.JobEvent{
		Type:        model.JobEventStarted,
		JobID:       jobID,
		PrinterName: req.PrinterName,
		IP:          ip,
		JobType:     jobType,
		State:       string(printing.StateIdle),
		At:          started,
	})

	res, deliverErr := s.deliverer.Deliver(ctx, printing.Delivery{
		JobID:   jobID,
		IP:      ip,
		Payload: markup,
		Observer: func(from, to printing.State) {
			s.logger.DebugContext(ctx, "job state", "job_id", jobID, "from", from, "to", to)
			s.publish(model.JobEvent{
				Type:        model.JobEventState,
				JobID:       jobID,
				PrinterName: req.PrinterName,
				IP:          ip,
				JobType:     jobType,
				State:       string(to),
				At:          time.Now().UTC(),
			})
		},
	})
	finished := time.Now().UTC()

	record := buildRecord(jobID, req, jobType, ip, res, deliverErr, started, finished)
	s.recordHistory(ctx, record)
	s.finish(ctx, record, res, deliverErr)

	return &SubmitResult{JobID: jobID, IP: ip, Delivery: res}, deliverErr
}

// GetJob returns one history record.
func (s *PrintJobService) GetJob(ctx context.Context, id string) (*model.PrintJob, error) {
	if s.history == nil {
		return nil, apperrors.Unavailable("job history is disabled")
	}
	return s.history.GetByID(ctx, id)
}

// ListJobs returns a page of history records, newest first.
func (s *PrintJobService) ListJobs(ctx context.Context, opts model.PrintJobListOptions) ([]*model.PrintJob, error) {
	if s.history == nil {
		return nil, apperrors.Unavailable("job history is disabled")
	}
	return s.history.List(ctx, opts.Normalize())
}

// HistoryEnabled reports whether a history store is configured.
func (s *PrintJobService) HistoryEnabled() bool {
	return s.history != nil
}

func (s *PrintJobService) reject(
	ctx context.Context,
	jobID string,
	req printing.JobRequest,
	jobType string,
	err error,
) {
	s.logger.WarnContext(ctx, "print job rejected",
		"job_id", jobID,
		"printer_name", req.PrinterName,
		"ip", req.IP,
		"job_type", jobType,
		"payload_kind", req.Payload.Kind,
		"error", err,
	)
	metrics.EmitPrintJob(s.metrics, metrics.PrintJobMetric{
		Printer: req.PrinterName,
		JobType: jobType,
		Result:  metrics.ResultRejected,
		Err:     err,
	})
}

func (s *PrintJobService) finish(
	ctx context.Context,
	record *model.PrintJob,
	res printing.DeliveryResult,
	deliverErr error,
) {
	printer := ""
	if record.PrinterName != nil {
		printer = *record.PrinterName
	}

	evt := model.JobEvent{
		Type:        model.JobEventSucceeded,
		JobID:       record.ID,
		PrinterName: printer,
		IP:          record.IP,
		JobType:     record.JobType,
		State:       record.State,
		At:          record.FinishedAt,
	}
	result := metrics.ResultSucceeded

	if deliverErr != nil {
		evt.Type = model.JobEventFailed
		evt.Error = deliverErr.Error()
		result = metrics.ResultFailed
		s.logger.ErrorContext(ctx, "print job failed",
			"job_id", record.ID,
			"printer_name", printer,
			"addr", res.Addr,
			"timed_out", res.TimedOut,
			"duration", res.Duration,
			"error", deliverErr,
		)
	} else {
		s.logger.InfoContext(ctx, "print job delivered",
			"job_id", record.ID,
			"printer_name", printer,
			"addr", res.Addr,
			"bytes", res.Bytes,
			"duration", res.Duration,
		)
	}

	s.publish(evt)
	metrics.EmitPrintJob(s.metrics, metrics.PrintJobMetric{
		Printer:  printer,
		JobType:  record.JobType,
		Result:   result,
		Duration: res.Duration,
		Bytes:    res.Bytes,
		Err:      deliverErr,
	})
}

// recordHistory writes the record in the background so the HTTP response
// does not wait on the database. Failures are logged and counted.
func (s *PrintJobService) recordHistory(ctx context.Context, record *model.PrintJob) {
	if s.history == nil {
		return
	}
	ctx = context.WithoutCancel(ctx)
	s.pending.Add(1)
	go func() {
		defer s.pending.Done()
		ctx, cancel := context.WithTimeout(ctx, s.historyTimeout)
		defer cancel()
		if err := s.history.Record(ctx, record); err != nil {
			s.logger.WarnContext(ctx, "record print job history failed", "job_id", record.ID, "error", err)
			metrics.EmitHistoryWriteError(s.metrics, err)
		}
	}()
}

// Wait blocks until in-flight history writes have finished.
func (s *PrintJobService) Wait() {
	s.pending.Wait()
}

func (s *PrintJobService) publish(evt model.JobEvent) {
	if s.events != nil {
		s.events.Publish(evt)
	}
}

func buildRecord(
	jobID string,
	req printing.JobRequest,
	jobType, ip string,
	res printing.DeliveryResult,
	deliverErr error,
	started, finished time.Time,
) *model.PrintJob {
	record := &model.PrintJob{
		ID:          jobID,
		IP:          ip,
		JobType:     jobType,
		PayloadKind: string(req.Payload.Kind),
		Status:      model.PrintJobStatusSucceeded,
		State:       string(res.State),
		TimedOut:    res.TimedOut,
		Bytes:       res.Bytes,
		StartedAt:   started,
		FinishedAt:  finished,
	}
	if req.PrinterName != "" {
		name := req.PrinterName
		record.PrinterName = &name
	}
	if deliverErr != nil {
		msg := deliverErr.Error()
		record.Status = model.PrintJobStatusFailed
		record.Error = &msg
	}
	if record.State == "" {
		record.State = string(printing.StateFailed)
		if deliverErr == nil {
			record.State = string(printing.StateClosed)
		}
	}
	return record
}
