package data

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/mleczna-droga/printbridge/internal/data/database"
	"github.com/mleczna-droga/printbridge/internal/data/pgxutil"
	"github.com/mleczna-droga/printbridge/internal/domain/model"
	apperrors "github.com/mleczna-droga/printbridge/internal/errors"
)

// DBProvider hands out the current database handle. Implementations return an
// unavailable error while no connection is established.
type DBProvider interface {
	DB() (*sql.DB, error)
}

// StaticDB is a DBProvider over a fixed handle.
type StaticDB struct {
	db *sql.DB
}

// NewStaticDB wraps db.
func NewStaticDB(db *sql.DB) StaticDB {
	return StaticDB{db: db}
}

// DB returns the wrapped handle.
func (s StaticDB) DB() (*sql.DB, error) {
	if s.db == nil {
		return nil, apperrors.Unavailable("database is not configured")
	}
	return s.db, nil
}

const printJobTable = "print_jobs"

var printJobColumns = []string{
	"id",
	"printer_name",
	"ip",
	"job_type",
	"payload_kind",
	"status",
	"state",
	"error",
	"timed_out",
	"bytes",
	"started_at",
	"finished_at",
}

// PrintJobRepo stores delivery attempts in PostgreSQL.
type PrintJobRepo struct {
	dbs          DBProvider
	timeProvider TimeProvider
}

// NewPrintJobRepo creates a PrintJobRepo with the real time provider.
func NewPrintJobRepo(dbs DBProvider) *PrintJobRepo {
	return &PrintJobRepo{dbs: dbs, timeProvider: RealTimeProvider{}}
}

// NewPrintJobRepoWithTimeProvider creates a PrintJobRepo with a custom time provider (useful for tests).
func NewPrintJobRepoWithTimeProvider(dbs DBProvider, tp TimeProvider) *PrintJobRepo {
	return &PrintJobRepo{dbs: dbs, timeProvider: tp}
}

// Record inserts one history entry. FinishedAt defaults to now.
func (r *PrintJobRepo) Record(ctx context.Context, job *model.PrintJob) error {
	if job == nil {
		return ErrPrintJobRequired
	}
	if strings.TrimSpace(job.ID) == "" {
		return ErrPrintJobIDRequired
	}
	if job.FinishedAt.IsZero() {
		job.FinishedAt = r.timeProvider.Now().UTC()
	}
	if job.StartedAt.IsZero() {
		job.StartedAt = job.FinishedAt
	}

	db, err := r.dbs.DB()
	if err != nil {
		return err
	}

	_, err = db.ExecContext(ctx, `
		INSERT INTO print_jobs (
			id, printer_name, ip, job_type, payload_kind, status, state, error, timed_out, bytes, started_at, finished_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		job.ID,
		job.PrinterName,
		job.IP,
		job.JobType,
		job.PayloadKind,
		job.Status,
		job.State,
		job.Error,
		job.TimedOut,
		job.Bytes,
		job.StartedAt,
		job.FinishedAt,
	)
	if err != nil {
		return fmt.Errorf("insert print job: %w", apperrors.MapDBError(err))
	}
	return nil
}

// GetByID returns one history entry. Unknown or malformed IDs are NotFound.
func (r *PrintJobRepo) GetByID(ctx context.Context, id string) (*model.PrintJob, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, apperrors.NotFoundf("print job %q not found", id)
	}

	db, err := r.dbs.DB()
	if err != nil {
		return nil, err
	}

	query, args := database.BuildListQuery(database.NewListQueryOptions(printJobTable,
		database.WithColumns(printJobColumns...),
		database.WithCondition(database.WhereCond("id", database.Equal, id)),
	))
	job, err := pgxutil.CollectOne[model.PrintJob](ctx, db, query, args...)
	if err != nil {
		mapped := apperrors.MapDBError(err)
		if apperrors.IsNotFound(mapped) {
			return nil, apperrors.NotFoundf("print job %q not found", id)
		}
		return nil, fmt.Errorf("get print job: %w", mapped)
	}
	return &job, nil
}

// List returns history entries, newest first.
func (r *PrintJobRepo) List(ctx context.Context, opts model.PrintJobListOptions) ([]*model.PrintJob, error) {
	opts = opts.Normalize()

	db, err := r.dbs.DB()
	if err != nil {
		return nil, err
	}

	query, args := database.BuildListQuery(database.NewListQueryOptions(printJobTable,
		append(listConditions(opts),
			database.WithColumns(printJobColumns...),
			database.WithOrderBy("started_at", "DESC"),
			database.WithLimit(opts.Limit),
			database.WithOffset(opts.Offset),
		)...,
	))

	rows, err := pgxutil.CollectAll[model.PrintJob](ctx, db, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list print jobs: %w", apperrors.MapDBError(err))
	}
	out := make([]*model.PrintJob, len(rows))
	for i := range rows {
		out[i] = &rows[i]
	}
	return out, nil
}

func listConditions(opts model.PrintJobListOptions) []database.ListQueryOption {
	var conds []database.ListQueryOption
	if opts.PrinterName != "" {
		conds = append(conds, database.WithCondition(database.WhereCond("printer_name", database.Equal, opts.PrinterName)))
	}
	if opts.IP != "" {
		conds = append(conds, database.WithCondition(database.WhereCond("ip", database.Equal, opts.IP)))
	}
	if opts.Status != nil {
		conds = append(conds, database.WithCondition(database.WhereCond("status", database.Equal, string(*opts.Status))))
	}
	if opts.Since != nil {
		conds = append(conds, database.WithCondition(database.WhereCond("started_at", database.GreaterThanOrEqual, *opts.Since)))
	}
	return conds
}
