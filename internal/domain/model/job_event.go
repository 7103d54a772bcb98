package model

import "time"

// JobEventType names a point in a print job's life.
type JobEventType string

const (
	JobEventStarted   JobEventType = "job.started"
	JobEventState     JobEventType = "job.state"
	JobEventSucceeded JobEventType = "job.succeeded"
	JobEventFailed    JobEventType = "job.failed"
)

// JobEvent is streamed to dashboards as jobs progress.
type JobEvent struct {
	Type        JobEventType `json:"type"`
	JobID       string       `json:"job_id"`
	PrinterName string       `json:"printer_name,omitempty"`
	IP          string       `json:"ip"`
	JobType     string       `json:"job_type,omitempty"`
	State       string       `json:"state,omitempty"`
	Error       string       `json:"error,omitempty"`
	At          time.Time    `json:"at"`
}
