// Package metrics holds the metric names and tag sets emitted by the print bridge.
package metrics

import (
	"maps"
	"time"

	obserrors "github.com/mleczna-droga/printbridge/internal/observability/errors"
	"github.com/mleczna-droga/printbridge/internal/observability/statsd"
)

// Result constants for metric tagging.
const (
	ResultSucceeded = "succeeded"
	ResultFailed    = "failed"
	ResultRejected  = "rejected"
)

// Metric names.
const (
	PrintJobResult    = "print_job.result"
	PrintJobDuration  = "print_job.duration"
	PrintJobBytes     = "print_job.bytes"
	PrinterReachable  = "printer.reachable"
	PrinterProbeRTT   = "printer.probe_rtt"
	HistoryWriteError = "history.write_error"
)

// PrintJobMetric captures the outcome of one submitted print job.
type PrintJobMetric struct {
	Printer  string
	JobType  string
	Result   string
	Duration time.Duration
	Bytes    int
	Err      error
}

// EmitPrintJob emits the standard counters and timings for a print job.
func EmitPrintJob(sink statsd.Sink, in PrintJobMetric) {
	if sink == nil {
		return
	}

	tags := map[string]string{
		"printer":  printerTag(in.Printer),
		"job_type": in.JobType,
		"result":   in.Result,
	}
	if in.Err != nil && in.Result != ResultSucceeded {
		if class := obserrors.Classify(in.Err); class != "" {
			tags["error_class"] = class
		}
	}

	sink.Count(PrintJobResult, 1, tags)
	if in.Duration > 0 {
		sink.Timing(PrintJobDuration, in.Duration, CloneTags(tags))
	}
	if in.Bytes > 0 && in.Result == ResultSucceeded {
		sink.Count(PrintJobBytes, int64(in.Bytes), CloneTags(tags))
	}
}

// EmitPrinterReachability reports one probe result as a 0/1 gauge plus its round trip.
func EmitPrinterReachability(sink statsd.Sink, printer string, reachable bool, rtt time.Duration) {
	if sink == nil {
		return
	}
	tags := map[string]string{"printer": printerTag(printer)}
	value := 0.0
	if reachable {
		value = 1
		sink.Timing(PrinterProbeRTT, rtt, CloneTags(tags))
	}
	sink.Gauge(PrinterReachable, value, tags)
}

// EmitHistoryWriteError counts a print job that could not be written to history.
func EmitHistoryWriteError(sink statsd.Sink, err error) {
	if sink == nil {
		return
	}
	sink.Count(HistoryWriteError, 1, map[string]string{"error_class": obserrors.Classify(err)})
}

// CloneTags creates a shallow copy of a tag map, filtering out empty keys.
func CloneTags(src map[string]string) map[string]string {
	if len(src) == 0 {
		return nil
	}
	out := maps.Clone(src)
	delete(out, "")
	return out
}

func printerTag(name string) string {
	if name == "" {
		return "direct"
	}
	return name
}
