// Package model defines the records the print bridge stores, caches and streams.
package model

import (
	"fmt"
	"strings"
	"time"
)

// PrintJobStatus is the outcome of a delivered (or attempted) label job.
//
//nolint:recvcheck // UnmarshalText needs pointer receiver, Valid needs value receiver
type PrintJobStatus string

const (
	// PrintJobStatusSucceeded indicates the label was written and the socket closed cleanly.
	PrintJobStatusSucceeded PrintJobStatus = "succeeded"
	// PrintJobStatusFailed indicates the delivery failed or timed out.
	PrintJobStatusFailed PrintJobStatus = "failed"
)

// Valid returns true if the status is known.
func (s PrintJobStatus) Valid() bool {
	return s == PrintJobStatusSucceeded || s == PrintJobStatusFailed
}

// UnmarshalText implements encoding.TextUnmarshaler so query parameters can be decoded.
func (s *PrintJobStatus) UnmarshalText(text []byte) error {
	v := PrintJobStatus(strings.ToLower(strings.TrimSpace(string(text))))
	if !v.Valid() {
		return fmt.Errorf("invalid print job status: %q", v)
	}
	*s = v
	return nil
}

// PrintJob is one history entry of a delivery attempt.
type PrintJob struct {
	ID          string         `json:"id"                     db:"id"`
	PrinterName *string        `json:"printer_name,omitempty" db:"printer_name"`
	IP          string         `json:"ip"                     db:"ip"`
	JobType     string         `json:"job_type"               db:"job_type"`
	PayloadKind string         `json:"payload_kind"           db:"payload_kind"`
	Status      PrintJobStatus `json:"status"                 db:"status"`
	State       string         `json:"state"                  db:"state"`
	Error       *string        `json:"error,omitempty"        db:"error"`
	TimedOut    bool           `json:"timed_out"              db:"timed_out"`
	Bytes       int            `json:"bytes"                  db:"bytes"`
	StartedAt   time.Time      `json:"started_at"             db:"started_at"`
	FinishedAt  time.Time      `json:"finished_at"            db:"finished_at"`
}

// Duration returns how long the delivery attempt took.
func (j PrintJob) Duration() time.Duration {
	return j.FinishedAt.Sub(j.StartedAt)
}

// PrintJobListOptions groups the optional filters of a history query.
type PrintJobListOptions struct {
	PrinterName string          // Optional exact printer name
	IP          string          // Optional exact printer address
	Status      *PrintJobStatus // Optional outcome filter
	Since       *time.Time      // Optional lower bound on started_at
	Limit       int             // Pagination limit (default 50, max 500)
	Offset      int             // Pagination offset
}

const (
	// DefaultPrintJobListLimit is used when no limit is given.
	DefaultPrintJobListLimit = 50
	// MaxPrintJobListLimit caps a single history page.
	MaxPrintJobListLimit = 500
)

// Normalize applies the default and maximum page size.
func (o PrintJobListOptions) Normalize() PrintJobListOptions {
	if o.Limit <= 0 {
		o.Limit = DefaultPrintJobListLimit
	}
	if o.Limit > MaxPrintJobListLimit {
		o.Limit = MaxPrintJobListLimit
	}
	o.Offset = max(o.Offset, 0)
	o.PrinterName = strings.TrimSpace(o.PrinterName)
	o.IP = strings.TrimSpace(o.IP)
	return o
}
