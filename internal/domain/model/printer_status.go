package model

import "time"

// PrinterStatus is the last known reachability of a printer.
type PrinterStatus struct {
	Name      string    `json:"name"`
	IP        string    `json:"ip"`
	Reachable bool      `json:"reachable"`
	LatencyMS int64     `json:"latency_ms,omitempty"`
	Error     string    `json:"error,omitempty"`
	CheckedAt time.Time `json:"checked_at"`
}

// PrinterView is a directory entry joined with its cached status.
type PrinterView struct {
	Name        string         `json:"name"`
	IP          string         `json:"ip"`
	Description string         `json:"description,omitempty"`
	Status      *PrinterStatus `json:"status,omitempty"`
}
