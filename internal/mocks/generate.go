// Package mocks provides gomock implementations of the core ports.
//
// To regenerate mocks after interface changes, run:
//
//	go generate ./internal/mocks
//
// Usage in tests:
//
//	ctrl := gomock.NewController(t)
//	deliverer := mocks.NewMockLabelDeliverer(ctrl)
//	deliverer.EXPECT().Deliver(gomock.Any(), gomock.Any()).Return(printing.DeliveryResult{}, nil)
package mocks

//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=cache_repository_mock.go github.com/mleczna-droga/printbridge/internal/core CacheRepository
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=print_job_repository_mock.go github.com/mleczna-droga/printbridge/internal/core PrintJobRepository
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=label_formatter_mock.go github.com/mleczna-droga/printbridge/internal/core LabelFormatter
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=label_deliverer_mock.go github.com/mleczna-droga/printbridge/internal/core LabelDeliverer
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=printer_prober_mock.go github.com/mleczna-droga/printbridge/internal/core PrinterProber
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=job_event_publisher_mock.go github.com/mleczna-droga/printbridge/internal/core JobEventPublisher
