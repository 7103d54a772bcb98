package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/mleczna-droga/printbridge/internal/domain/model"
	"github.com/mleczna-droga/printbridge/internal/domain/printing"
	apperrors "github.com/mleczna-droga/printbridge/internal/errors"
	"github.com/mleczna-droga/printbridge/internal/mocks"
	"github.com/mleczna-droga/printbridge/internal/observability/statsd"
)

const testJobID = "3f0c1b52-7d2e-4d0b-9a5e-8f3c2e1d0a11"

type printJobFixture struct {
	formatter *mocks.MockLabelFormatter
	deliverer *mocks.MockLabelDeliverer
	history   *mocks.MockPrintJobRepository
	events    *mocks.MockJobEventPublisher
	metrics   *statsd.Recorder
	service   *PrintJobService
}

func newPrintJobFixture(t *testing.T) *printJobFixture {
	t.Helper()
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	dir, err := printing.NewDirectory([]printing.Printer{
		{Name: "Zebra-Hala-A", IP: "10.0.0.21"},
		{Name: "Zebra-Hala-B", IP: "10.0.0.22"},
	})
	require.NoError(t, err)

	f := &printJobFixture{
		formatter: mocks.NewMockLabelFormatter(ctrl),
		deliverer: mocks.NewMockLabelDeliverer(ctrl),
		history:   mocks.NewMockPrintJobRepository(ctrl),
		events:    mocks.NewMockJobEventPublisher(ctrl),
		metrics:   statsd.NewRecorder(),
	}
	f.service, err = NewPrintJobService(PrintJobServiceOptions{
		Directory: dir,
		Formatter: f.formatter,
		Deliverer: f.deliverer,
		History:   f.history,
		Events:    f.events,
		Metrics:   f.metrics,
		NewID:     func() string { return testJobID },
	})
	require.NoError(t, err)
	t.Cleanup(f.service.Wait)
	return f
}

func collectEvents(f *printJobFixture) *[]model.JobEvent {
	var got []model.JobEvent
	f.events.EXPECT().Publish(gomock.Any()).Do(func(evt model.JobEvent) {
		got = append(got, evt)
	}).AnyTimes()
	return &got
}

func TestPrintJobService_Submit_ByName(t *testing.T) {
	t.Parallel()
	f := newPrintJobFixture(t)
	ctx := context.Background()
	payload := printing.RecordPayload(map[string]any{"id": "PAL-1"})

	f.formatter.EXPECT().Format(payload).Return("^XA^XZ", nil)
	f.deliverer.EXPECT().
		Deliver(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, d printing.Delivery) (printing.DeliveryResult, error) {
			assert.Equal(t, "10.0.0.21", d.IP)
			assert.Equal(t, "^XA^XZ", d.Payload)
			assert.Equal(t, testJobID, d.JobID)
			d.Observer(printing.StateIdle, printing.StateConnecting)
			return printing.DeliveryResult{
				Addr:     "10.0.0.21:9100",
				Bytes:    6,
				State:    printing.StateClosed,
				Duration: 4 * time.Millisecond,
			}, nil
		})
	f.history.EXPECT().
		Record(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, job *model.PrintJob) error {
			assert.Equal(t, testJobID, job.ID)
			require.NotNil(t, job.PrinterName)
			assert.Equal(t, "Zebra-Hala-A", *job.PrinterName)
			assert.Equal(t, "10.0.0.21", job.IP)
			assert.Equal(t, "pallet", job.JobType)
			assert.Equal(t, "record", job.PayloadKind)
			assert.Equal(t, model.PrintJobStatusSucceeded, job.Status)
			assert.Equal(t, "closed", job.State)
			assert.Nil(t, job.Error)
			assert.Equal(t, 6, job.Bytes)
			return nil
		})
	events := collectEvents(f)

	res, err := f.service.Submit(ctx, printing.JobRequest{
		Payload:     payload,
		PrinterName: "Zebra-Hala-A",
		JobType:     "pallet",
	})
	require.NoError(t, err)
	assert.Equal(t, testJobID, res.JobID)
	assert.Equal(t, "10.0.0.21", res.IP)

	require.Len(t, *events, 3)
	assert.Equal(t, model.JobEventStarted, (*events)[0].Type)
	assert.Equal(t, model.JobEventState, (*events)[1].Type)
	assert.Equal(t, "connecting", (*events)[1].State)
	assert.Equal(t, model.JobEventSucceeded, (*events)[2].Type)

	assert.Len(t, f.metrics.Find("print_job.result"), 1)
	assert.Contains(t, f.metrics.Find("print_job.result")[0], "result:succeeded")
}

func TestPrintJobService_Submit_ExplicitIPWins(t *testing.T) {
	t.Parallel()
	f := newPrintJobFixture(t)
	collectEvents(f)

	f.formatter.EXPECT().Format(gomock.Any()).Return("^XA^XZ", nil)
	f.deliverer.EXPECT().
		Deliver(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, d printing.Delivery) (printing.DeliveryResult, error) {
			assert.Equal(t, "192.168.5.5", d.IP)
			return printing.DeliveryResult{State: printing.StateClosed}, nil
		})
	f.history.EXPECT().Record(gomock.Any(), gomock.Any()).Return(nil)

	res, err := f.service.Submit(context.Background(), printing.JobRequest{
		Payload:     printing.RawPayload("^XA^XZ"),
		PrinterName: "Zebra-Hala-A",
		IP:          "192.168.5.5",
	})
	require.NoError(t, err)
	assert.Equal(t, "192.168.5.5", res.IP)
}

func TestPrintJobService_Submit_MissingTarget(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		req  printing.JobRequest
	}{
		{name: "no name and no ip", req: printing.JobRequest{Payload: printing.RawPayload("^XA^XZ")}},
		{name: "unknown name", req: printing.JobRequest{Payload: printing.RawPayload("^XA^XZ"), PrinterName: "zebra-hala-a"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			f := newPrintJobFixture(t)

			res, err := f.service.Submit(context.Background(), tt.req)
			require.Error(t, err)
			assert.Nil(t, res)
			assert.True(t, apperrors.IsMissingTarget(err))
			assert.Contains(t, f.metrics.Find("print_job.result")[0], "result:rejected")
		})
	}
}

func TestPrintJobService_Submit_MalformedPayloadOpensNoSocket(t *testing.T) {
	t.Parallel()
	f := newPrintJobFixture(t)

	f.formatter.EXPECT().Format(gomock.Any()).Return("", apperrors.MalformedPayload("label data is required"))

	_, err := f.service.Submit(context.Background(), printing.JobRequest{IP: "10.0.0.1"})
	require.Error(t, err)
	assert.True(t, apperrors.IsMalformedPayload(err))
}

func TestPrintJobService_Submit_DeliveryFailed(t *testing.T) {
	t.Parallel()
	f := newPrintJobFixture(t)
	events := collectEvents(f)

	cause := errors.New("dial tcp 10.0.0.22:9100: connect: connection refused")
	f.formatter.EXPECT().Format(gomock.Any()).Return("^XA^XZ", nil)
	f.deliverer.EXPECT().
		Deliver(gomock.Any(), gomock.Any()).
		Return(printing.DeliveryResult{
			Addr:  "10.0.0.22:9100",
			State: printing.StateFailed,
		}, apperrors.DeliveryFailed(cause, "10.0.0.22:9100"))
	f.history.EXPECT().
		Record(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, job *model.PrintJob) error {
			assert.Equal(t, model.PrintJobStatusFailed, job.Status)
			assert.Equal(t, "failed", job.State)
			require.NotNil(t, job.Error)
			assert.Contains(t, *job.Error, "connection refused")
			return nil
		})

	res, err := f.service.Submit(context.Background(), printing.JobRequest{
		Payload:     printing.RawPayload("^XA^XZ"),
		PrinterName: "Zebra-Hala-B",
	})
	require.Error(t, err)
	assert.True(t, apperrors.IsDeliveryFailed(err))
	require.NotNil(t, res)
	assert.Equal(t, testJobID, res.JobID)

	last := (*events)[len(*events)-1]
	assert.Equal(t, model.JobEventFailed, last.Type)
	assert.Contains(t, last.Error, "connection refused")
}

func TestPrintJobService_Submit_HistoryFailureDoesNotFailJob(t *testing.T) {
	t.Parallel()
	f := newPrintJobFixture(t)
	collectEvents(f)

	f.formatter.EXPECT().Format(gomock.Any()).Return("^XA^XZ", nil)
	f.deliverer.EXPECT().Deliver(gomock.Any(), gomock.Any()).
		Return(printing.DeliveryResult{State: printing.StateClosed}, nil)
	f.history.EXPECT().Record(gomock.Any(), gomock.Any()).
		Return(apperrors.Unavailable("database is not connected"))

	_, err := f.service.Submit(context.Background(), printing.JobRequest{
		Payload: printing.RawPayload("^XA^XZ"),
		IP:      "10.0.0.9",
	})
	require.NoError(t, err)
	f.service.Wait()
	assert.Equal(t, []string{"history.write_error:1|c|#error_class:unavailable"}, f.metrics.Find("history.write_error"))
}

func TestPrintJobService_Submit_HistoryIgnoresCallerCancel(t *testing.T) {
	t.Parallel()
	f := newPrintJobFixture(t)
	collectEvents(f)

	ctx, cancel := context.WithCancel(context.Background())
	f.formatter.EXPECT().Format(gomock.Any()).Return("^XA^XZ", nil)
	f.deliverer.EXPECT().Deliver(gomock.Any(), gomock.Any()).
		DoAndReturn(func(context.Context, printing.Delivery) (printing.DeliveryResult, error) {
			cancel()
			return printing.DeliveryResult{State: printing.StateClosed}, nil
		})
	f.history.EXPECT().Record(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, _ *model.PrintJob) error {
			assert.NoError(t, ctx.Err())
			_, hasDeadline := ctx.Deadline()
			assert.True(t, hasDeadline)
			return nil
		})

	_, err := f.service.Submit(ctx, printing.JobRequest{Payload: printing.RawPayload("x"), IP: "10.0.0.9"})
	require.NoError(t, err)
	f.service.Wait()
}

func TestPrintJobService_Submit_DoesNotWaitForHistory(t *testing.T) {
	t.Parallel()
	f := newPrintJobFixture(t)
	collectEvents(f)

	release := make(chan struct{})
	written := make(chan struct{})
	f.formatter.EXPECT().Format(gomock.Any()).Return("^XA^XZ", nil)
	f.deliverer.EXPECT().Deliver(gomock.Any(), gomock.Any()).
		Return(printing.DeliveryResult{State: printing.StateClosed}, nil)
	f.history.EXPECT().Record(gomock.Any(), gomock.Any()).
		DoAndReturn(func(context.Context, *model.PrintJob) error {
			<-release
			close(written)
			return nil
		})

	res, err := f.service.Submit(context.Background(), printing.JobRequest{
		Payload: printing.RawPayload("^XA^XZ"),
		IP:      "10.0.0.9",
	})
	require.NoError(t, err)
	assert.Equal(t, testJobID, res.JobID)

	select {
	case <-written:
		t.Fatal("history write finished before release")
	default:
	}

	close(release)
	f.service.Wait()
	select {
	case <-written:
	default:
		t.Fatal("Wait returned before the history write finished")
	}
}

func TestPrintJobService_WithoutHistory(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	formatter := mocks.NewMockLabelFormatter(ctrl)
	deliverer := mocks.NewMockLabelDeliverer(ctrl)

	svc, err := NewPrintJobService(PrintJobServiceOptions{Formatter: formatter, Deliverer: deliverer})
	require.NoError(t, err)
	assert.False(t, svc.HistoryEnabled())

	formatter.EXPECT().Format(gomock.Any()).Return("^XA^XZ", nil)
	deliverer.EXPECT().Deliver(gomock.Any(), gomock.Any()).
		Return(printing.DeliveryResult{State: printing.StateClosed}, nil)

	res, err := svc.Submit(context.Background(), printing.JobRequest{Payload: printing.RawPayload("x"), IP: "10.0.0.9"})
	require.NoError(t, err)
	assert.NotEmpty(t, res.JobID)

	_, err = svc.ListJobs(context.Background(), model.PrintJobListOptions{})
	assert.True(t, apperrors.IsUnavailable(err))
	_, err = svc.GetJob(context.Background(), "x")
	assert.True(t, apperrors.IsUnavailable(err))
}

func TestPrintJobService_ListJobsNormalizes(t *testing.T) {
	t.Parallel()
	f := newPrintJobFixture(t)

	f.history.EXPECT().
		List(gomock.Any(), model.PrintJobListOptions{Limit: model.MaxPrintJobListLimit, PrinterName: "Zebra-Hala-A"}).
		Return([]*model.PrintJob{{ID: testJobID}}, nil)

	jobs, err := f.service.ListJobs(context.Background(), model.PrintJobListOptions{Limit: 10_000, Offset: -3, PrinterName: " Zebra-Hala-A "})
	require.NoError(t, err)
	require.Len(t, jobs, 1)
}

func TestNewPrintJobService_RequiresDependencies(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)

	_, err := NewPrintJobService(PrintJobServiceOptions{Deliverer: mocks.NewMockLabelDeliverer(ctrl)})
	require.Error(t, err)
	_, err = NewPrintJobService(PrintJobServiceOptions{Formatter: mocks.NewMockLabelFormatter(ctrl)})
	require.Error(t, err)
}
