package printing

import (
	"strings"
	"time"
)

// DefaultJobType is used when a request does not name one.
const DefaultJobType = "label"

// JobRequest is a single label job as submitted by the warehouse UI.
type JobRequest struct {
	Payload     Payload
	PrinterName string
	IP          string
	JobType     string
}

// NormalizedJobType returns the trimmed job type, defaulting to DefaultJobType.
func (r JobRequest) NormalizedJobType() string {
	if jt := strings.TrimSpace(r.JobType); jt != "" {
		return jt
	}
	return DefaultJobType
}

// Delivery is one attempt to write a rendered label to a printer.
type Delivery struct {
	JobID    string
	IP       string
	Payload  string
	Observer StateObserver
}

// DeliveryResult describes how a delivery attempt ended.
type DeliveryResult struct {
	Addr     string
	Bytes    int
	State    State
	TimedOut bool
	Path     []State
	Duration time.Duration
}
