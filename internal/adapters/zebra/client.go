// Package zebra delivers rendered labels to network printers over raw TCP (port 9100).
package zebra

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"strconv"
	"time"

	"github.com/mleczna-droga/printbridge/internal/domain/printing"
	apperrors "github.com/mleczna-droga/printbridge/internal/errors"
)

const (
	// DefaultPort is the raw printing port of Zebra network printers.
	DefaultPort = 9100
	// DefaultTimeout bounds connect plus write of a single delivery.
	DefaultTimeout = 5 * time.Second
	// DefaultProbeTimeout bounds a reachability probe.
	DefaultProbeTimeout = time.Second
)

// Dialer opens network connections. *net.Dialer satisfies it.
type Dialer interface {
	DialContext(ctx context.Context, network, address string) (net.Conn, error)
}

// Options configures a Client.
type Options struct {
	Port         int
	Timeout      time.Duration
	ProbeTimeout time.Duration
	Dialer       Dialer
	Logger       *slog.Logger
}

// Client sends labels to printers. Each call owns its own socket.
type Client struct {
	port         int
	timeout      time.Duration
	probeTimeout time.Duration
	dialer       Dialer
	logger       *slog.Logger
}

// NewClient returns a Client with defaults applied to zero options.
func NewClient(opts Options) *Client {
	if opts.Port <= 0 {
		opts.Port = DefaultPort
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.ProbeTimeout <= 0 {
		opts.ProbeTimeout = DefaultProbeTimeout
	}
	if opts.Dialer == nil {
		opts.Dialer = &net.Dialer{}
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	return &Client{
		port:         opts.Port,
		timeout:      opts.Timeout,
		probeTimeout: opts.ProbeTimeout,
		dialer:       opts.Dialer,
		logger:       opts.Logger.With("component", "zebra"),
	}
}

// Addr returns the host:port a delivery to ip is sent to.
func (c *Client) Addr(ip string) string {
	return net.JoinHostPort(ip, strconv.Itoa(c.port))
}

// Timeout returns the delivery bound.
func (c *Client) Timeout() time.Duration {
	return c.timeout
}

// Deliver makes a single attempt to write d.Payload to the printer at d.IP.
//
// The attempt is bounded by the client timeout covering connect and write.
// Cancellation of ctx does not abort an in-flight delivery; only the timeout does.
// The socket is closed on every exit path. Failures are DeliveryFailed errors
// that carry the underlying socket message.
func (c *Client) Deliver(ctx context.Context, d printing.Delivery) (printing.DeliveryResult, error) {
	addr := c.Addr(d.IP)
	start := time.Now()
	tracker := printing.NewTracker(d.Observer)
	res := printing.DeliveryResult{Addr: addr}

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), c.timeout)
	defer cancel()

	c.advance(tracker, d.JobID, printing.StateConnecting)
	conn, err := c.dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return c.fail(tracker, d.JobID, res, start, addr, err)
	}

	if deadline, ok := ctx.Deadline(); ok {
		if err := conn.SetDeadline(deadline); err != nil {
			_ = conn.Close()
			return c.fail(tracker, d.JobID, res, start, addr, err)
		}
	}

	c.advance(tracker, d.JobID, printing.StateSending)
	n, err := conn.Write([]byte(d.Payload))
	res.Bytes = n
	if err != nil {
		_ = conn.Close()
		return c.fail(tracker, d.JobID, res, start, addr, err)
	}
	if err := conn.Close(); err != nil {
		return c.fail(tracker, d.JobID, res, start, addr, err)
	}

	c.advance(tracker, d.JobID, printing.StateClosed)
	res.State = tracker.State()
	res.Path = tracker.Path()
	res.Duration = time.Since(start)
	return res, nil
}

func (c *Client) fail(
	tracker *printing.Tracker,
	jobID string,
	res printing.DeliveryResult,
	start time.Time,
	addr string,
	cause error,
) (printing.DeliveryResult, error) {
	if isTimeout(cause) {
		res.TimedOut = true
		c.advance(tracker, jobID, printing.StateTimedOut)
		cause = fmt.Errorf("timed out after %s: %w", c.timeout, cause)
	}
	c.advance(tracker, jobID, printing.StateFailed)

	res.State = tracker.State()
	res.Path = tracker.Path()
	res.Duration = time.Since(start)
	return res, apperrors.DeliveryFailed(cause, addr)
}

func (c *Client) advance(tracker *printing.Tracker, jobID string, to printing.State) {
	if err := tracker.Advance(to); err != nil {
		c.logger.Error("job state transition rejected", "job_id", jobID, "error", err)
	}
}

// Probe dials the printer and closes the connection immediately. It returns
// the connect latency.
func (c *Client) Probe(ctx context.Context, ip string) (time.Duration, error) {
	ctx, cancel := context.WithTimeout(ctx, c.probeTimeout)
	defer cancel()

	start := time.Now()
	conn, err := c.dialer.DialContext(ctx, "tcp", c.Addr(ip))
	if err != nil {
		return 0, fmt.Errorf("probe %s: %w", c.Addr(ip), err)
	}
	rtt := time.Since(start)
	_ = conn.Close()
	return rtt, nil
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}
