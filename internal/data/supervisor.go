package data

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"sync"
	"time"

	apperrors "github.com/mleczna-droga/printbridge/internal/errors"
	"github.com/mleczna-droga/printbridge/internal/util"
)

// OpenFunc opens a database handle. The supervisor pings it before use.
type OpenFunc func(ctx context.Context) (*sql.DB, error)

// SupervisorOptions configures a Supervisor.
type SupervisorOptions struct {
	Open           OpenFunc
	Backoff        util.Backoff
	HealthInterval time.Duration
	PingTimeout    time.Duration
	// OnConnect runs after every successful connect, e.g. to apply migrations.
	// A failing hook counts as a failed connect.
	OnConnect func(ctx context.Context, db *sql.DB) error
	Logger    *slog.Logger
}

// Supervisor keeps a database connection alive. It connects with exponential
// backoff, pings on an interval and reconnects when a ping fails. It stops
// when its context is canceled or Stop is called.
type Supervisor struct {
	opts SupervisorOptions

	mu sync.RWMutex
	db *sql.DB

	stop     chan struct{}
	stopOnce sync.Once
	done     chan struct{}
}

// NewSupervisor validates options and returns an idle supervisor.
func NewSupervisor(opts SupervisorOptions) (*Supervisor, error) {
	if opts.Open == nil {
		return nil, errors.New("supervisor open func is required")
	}
	if opts.HealthInterval <= 0 {
		opts.HealthInterval = 10 * time.Second
	}
	if opts.PingTimeout <= 0 {
		opts.PingTimeout = 3 * time.Second
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	opts.Logger = opts.Logger.With("component", "db_supervisor")
	return &Supervisor{
		opts: opts,
		stop: make(chan struct{}),
		done: make(chan struct{}),
	}, nil
}

// DB returns the live handle or an unavailable error while disconnected.
func (s *Supervisor) DB() (*sql.DB, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.db == nil {
		return nil, apperrors.Unavailable("job history database is not connected")
	}
	return s.db, nil
}

// Connected reports whether a live handle is available.
func (s *Supervisor) Connected() bool {
	_, err := s.DB()
	return err == nil
}

// Stop asks Run to exit. It is safe to call more than once.
func (s *Supervisor) Stop() {
	s.stopOnce.Do(func() { close(s.stop) })
}

// Done is closed when Run has returned.
func (s *Supervisor) Done() <-chan struct{} {
	return s.done
}

// Run blocks until ctx is canceled or Stop is called. The handle is closed on exit.
func (s *Supervisor) Run(ctx context.Context) error {
	defer close(s.done)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	go func() {
		select {
		case <-s.stop:
			cancel()
		case <-ctx.Done():
		}
	}()

	attempt := 0
	for {
		db, err := s.connect(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			delay := s.opts.Backoff.Delay(attempt)
			attempt++
			s.opts.Logger.WarnContext(ctx, "database connect failed",
				"attempt", attempt, "retry_in", delay, "error", err)
			if !util.Sleep(ctx, delay) {
				return nil
			}
			continue
		}

		attempt = 0
		s.setDB(db)
		s.opts.Logger.InfoContext(ctx, "database connected")

		err = s.watch(ctx, db)
		s.setDB(nil)
		if cerr := db.Close(); cerr != nil {
			s.opts.Logger.Debug("close database handle", "error", cerr)
		}
		if ctx.Err() != nil {
			return nil
		}
		s.opts.Logger.WarnContext(ctx, "database connection lost", "error", err)
	}
}

func (s *Supervisor) connect(ctx context.Context) (*sql.DB, error) {
	db, err := s.opts.Open(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.ping(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	if s.opts.OnConnect != nil {
		if err := s.opts.OnConnect(ctx, db); err != nil {
			_ = db.Close()
			return nil, err
		}
	}
	return db, nil
}

// watch pings db until a ping fails or ctx is done.
func (s *Supervisor) watch(ctx context.Context, db *sql.DB) error {
	ticker := time.NewTicker(s.opts.HealthInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := s.ping(ctx, db); err != nil {
				return err
			}
		}
	}
}

func (s *Supervisor) ping(ctx context.Context, db *sql.DB) error {
	pingCtx, cancel := context.WithTimeout(ctx, s.opts.PingTimeout)
	defer cancel()
	return db.PingContext(pingCtx)
}

func (s *Supervisor) setDB(db *sql.DB) {
	s.mu.Lock()
	s.db = db
	s.mu.Unlock()
}
