package statsd

import (
	"strings"
	"sync"
	"time"
)

// Recorder is an in-memory Sink that keeps every emitted line. The admin CLI
// uses it to print metrics for one-off jobs, and tests use it to assert on them.
type Recorder struct {
	mu    sync.Mutex
	lines []string
}

var _ Sink = (*Recorder)(nil)

// NewRecorder returns an empty Recorder.
func NewRecorder() *Recorder { return &Recorder{} }

// Count records a counter line.
func (r *Recorder) Count(name string, value int64, tags map[string]string) {
	r.add(name, countValue(value), tags)
}

// Gauge records a gauge line.
func (r *Recorder) Gauge(name string, value float64, tags map[string]string) {
	r.add(name, gaugeValue(value), tags)
}

// Timing records a timing line.
func (r *Recorder) Timing(name string, value time.Duration, tags map[string]string) {
	r.add(name, timingValue(value), tags)
}

// Lines returns a copy of the recorded lines in emission order.
func (r *Recorder) Lines() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.lines...)
}

// Find returns recorded lines whose metric name equals name.
func (r *Recorder) Find(name string) []string {
	var out []string
	for _, line := range r.Lines() {
		if metric, _, ok := strings.Cut(line, ":"); ok && metric == name {
			out = append(out, line)
		}
	}
	return out
}

func (r *Recorder) add(name, value string, tags map[string]string) {
	line := formatLine("", name, value, nil, tags)
	if line == "" {
		return
	}
	r.mu.Lock()
	r.lines = append(r.lines, line)
	r.mu.Unlock()
}
