package core

import (
	"context"
	"time"

	"github.com/mleczna-droga/printbridge/internal/domain/model"
	"github.com/mleczna-droga/printbridge/internal/domain/printing"
)

// This file contains the ports between the service layer and its adapters.
// Services depend on these interfaces, not on concrete implementations.

// PrintJobRepository stores the history of delivery attempts.
type PrintJobRepository interface {
	Record(ctx context.Context, job *model.PrintJob) error
	GetByID(ctx context.Context, id string) (*model.PrintJob, error)
	List(ctx context.Context, opts model.PrintJobListOptions) ([]*model.PrintJob, error)
}

// LabelFormatter renders a payload into printer markup.
type LabelFormatter interface {
	Format(p printing.Payload) (string, error)
}

// LabelDeliverer writes rendered labels to a printer.
type LabelDeliverer interface {
	Deliver(ctx context.Context, d printing.Delivery) (printing.DeliveryResult, error)
}

// PrinterProber checks whether a printer accepts connections.
type PrinterProber interface {
	Probe(ctx context.Context, ip string) (time.Duration, error)
}

// JobEventPublisher fans job events out to live subscribers.
type JobEventPublisher interface {
	Publish(evt model.JobEvent)
}
