package service

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/mleczna-droga/printbridge/internal/core"
	"github.com/mleczna-droga/printbridge/internal/data"
	"github.com/mleczna-droga/printbridge/internal/domain/printing"
	apperrors "github.com/mleczna-droga/printbridge/internal/errors"
	"github.com/mleczna-droga/printbridge/internal/mocks"
	"github.com/mleczna-droga/printbridge/internal/observability/statsd"
)

func newStatusService(t *testing.T, prober core.PrinterProber) (*PrinterStatusService, *core.PrinterStatusCache, *statsd.Recorder) {
	t.Helper()
	dir, err := printing.NewDirectory([]printing.Printer{
		{Name: "Zebra-Hala-B", IP: "10.0.0.22"},
		{Name: "Zebra-Hala-A", IP: "10.0.0.21", Description: "Hala A, rampa 3"},
	})
	require.NoError(t, err)

	cache := core.NewPrinterStatusCache(core.PrinterStatusCacheOptions{Cache: data.NewMemoryCacheRepo()})
	rec := statsd.NewRecorder()
	svc, err := NewPrinterStatusService(PrinterStatusServiceOptions{
		Directory:   dir,
		Prober:      prober,
		Cache:       cache,
		Metrics:     rec,
		Interval:    10 * time.Millisecond,
		Concurrency: 2,
	})
	require.NoError(t, err)
	return svc, cache, rec
}

func TestPrinterStatusService_ProbeAll(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	prober := mocks.NewMockPrinterProber(ctrl)
	svc, cache, rec := newStatusService(t, prober)
	ctx := context.Background()

	prober.EXPECT().Probe(gomock.Any(), "10.0.0.21").Return(3*time.Millisecond, nil)
	prober.EXPECT().Probe(gomock.Any(), "10.0.0.22").Return(time.Duration(0), errors.New("connect: connection refused"))

	statuses, err := svc.ProbeAll(ctx)
	require.NoError(t, err)
	require.Len(t, statuses, 2)

	assert.Equal(t, "Zebra-Hala-A", statuses[0].Name)
	assert.True(t, statuses[0].Reachable)
	assert.EqualValues(t, 3, statuses[0].LatencyMS)

	assert.Equal(t, "Zebra-Hala-B", statuses[1].Name)
	assert.False(t, statuses[1].Reachable)
	assert.Contains(t, statuses[1].Error, "connection refused")

	cached, err := cache.Get(ctx, "Zebra-Hala-B")
	require.NoError(t, err)
	require.NotNil(t, cached)
	assert.False(t, cached.Reachable)

	assert.ElementsMatch(t, []string{
		"printer.reachable:1|g|#printer:Zebra-Hala-A",
		"printer.reachable:0|g|#printer:Zebra-Hala-B",
	}, rec.Find("printer.reachable"))
}

func TestPrinterStatusService_List(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	prober := mocks.NewMockPrinterProber(ctrl)
	svc, _, _ := newStatusService(t, prober)
	ctx := context.Background()

	views := svc.List(ctx)
	require.Len(t, views, 2)
	assert.Nil(t, views[0].Status)
	assert.Equal(t, "Hala A, rampa 3", views[0].Description)

	prober.EXPECT().Probe(gomock.Any(), "10.0.0.21").Return(time.Millisecond, nil)
	_, err := svc.ProbePrinter(ctx, "Zebra-Hala-A")
	require.NoError(t, err)

	views = svc.List(ctx)
	require.NotNil(t, views[0].Status)
	assert.True(t, views[0].Status.Reachable)
	assert.Nil(t, views[1].Status)
}

func TestPrinterStatusService_ProbePrinterUnknown(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	svc, _, _ := newStatusService(t, mocks.NewMockPrinterProber(ctrl))

	_, err := svc.ProbePrinter(context.Background(), "nope")
	assert.True(t, apperrors.IsNotFound(err))
}

type countingProber struct{ calls atomic.Int64 }

func (p *countingProber) Probe(context.Context, string) (time.Duration, error) {
	p.calls.Add(1)
	return time.Millisecond, nil
}

func TestPrinterStatusService_RunSweepsUntilCancelled(t *testing.T) {
	t.Parallel()
	prober := &countingProber{}
	svc, _, _ := newStatusService(t, prober)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- svc.Run(ctx) }()

	require.Eventually(t, func() bool { return prober.calls.Load() >= 4 }, 2*time.Second, 5*time.Millisecond)
	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("prober did not stop")
	}
}

func TestPrinterStatusService_RunWithoutPrinters(t *testing.T) {
	t.Parallel()
	svc, err := NewPrinterStatusService(PrinterStatusServiceOptions{Prober: &countingProber{}})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.NoError(t, svc.Run(ctx))
	assert.Empty(t, svc.List(ctx))
}

func TestNewPrinterStatusService_RequiresProber(t *testing.T) {
	t.Parallel()
	_, err := NewPrinterStatusService(PrinterStatusServiceOptions{})
	require.Error(t, err)
}
