package core_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/mleczna-droga/printbridge/internal/core"
	"github.com/mleczna-droga/printbridge/internal/domain/model"
	"github.com/mleczna-droga/printbridge/internal/mocks"
)

func TestPrinterStatusCache_PutGet(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	cache := mocks.NewMockCacheRepository(ctrl)
	svc := core.NewPrinterStatusCache(core.PrinterStatusCacheOptions{Cache: cache, TTL: time.Minute})
	ctx := context.Background()

	checked := time.Date(2025, 2, 3, 4, 5, 6, 0, time.UTC)
	status := model.PrinterStatus{Name: "Magazyn-A", IP: "10.0.0.5", Reachable: true, LatencyMS: 3, CheckedAt: checked}

	var stored []byte
	cache.EXPECT().
		Set(gomock.Any(), "printer:status:Magazyn-A", gomock.Any(), time.Minute).
		DoAndReturn(func(_ context.Context, _ string, value []byte, _ time.Duration) error {
			stored = value
			return nil
		})
	require.NoError(t, svc.Put(ctx, status))

	cache.EXPECT().Get(gomock.Any(), "printer:status:Magazyn-A").Return(stored, nil)
	got, err := svc.Get(ctx, "Magazyn-A")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, status, *got)
}

func TestPrinterStatusCache_Miss(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	cache := mocks.NewMockCacheRepository(ctrl)
	svc := core.NewPrinterStatusCache(core.PrinterStatusCacheOptions{Cache: cache})

	cache.EXPECT().Get(gomock.Any(), "printer:status:Biuro").Return(nil, nil)
	got, err := svc.Get(context.Background(), "Biuro")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestPrinterStatusCache_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		setup func(*mocks.MockCacheRepository)
		call  func(*core.PrinterStatusCache) error
	}{
		{
			name: "get error",
			setup: func(c *mocks.MockCacheRepository) {
				c.EXPECT().Get(gomock.Any(), gomock.Any()).Return(nil, errors.New("redis down"))
			},
			call: func(s *core.PrinterStatusCache) error {
				_, err := s.Get(context.Background(), "A")
				return err
			},
		},
		{
			name: "corrupt entry",
			setup: func(c *mocks.MockCacheRepository) {
				c.EXPECT().Get(gomock.Any(), gomock.Any()).Return([]byte("{"), nil)
			},
			call: func(s *core.PrinterStatusCache) error {
				_, err := s.Get(context.Background(), "A")
				return err
			},
		},
		{
			name: "set error",
			setup: func(c *mocks.MockCacheRepository) {
				c.EXPECT().Set(gomock.Any(), gomock.Any(), gomock.Any(), core.DefaultPrinterStatusTTL).
					Return(errors.New("redis down"))
			},
			call: func(s *core.PrinterStatusCache) error {
				return s.Put(context.Background(), model.PrinterStatus{Name: "A"})
			},
		},
		{
			name: "delete error",
			setup: func(c *mocks.MockCacheRepository) {
				c.EXPECT().Delete(gomock.Any(), "printer:status:A").Return(false, errors.New("redis down"))
			},
			call: func(s *core.PrinterStatusCache) error {
				return s.Invalidate(context.Background(), "A")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			ctrl := gomock.NewController(t)
			cache := mocks.NewMockCacheRepository(ctrl)
			tt.setup(cache)
			svc := core.NewPrinterStatusCache(core.PrinterStatusCacheOptions{Cache: cache})
			assert.Error(t, tt.call(svc))
		})
	}
}

func TestPrinterStatusCache_EmptyNameIsNoop(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	svc := core.NewPrinterStatusCache(core.PrinterStatusCacheOptions{Cache: mocks.NewMockCacheRepository(ctrl)})

	require.NoError(t, svc.Put(context.Background(), model.PrinterStatus{}))
	got, err := svc.Get(context.Background(), "")
	require.NoError(t, err)
	assert.Nil(t, got)
	require.NoError(t, svc.Invalidate(context.Background(), ""))
}

func TestNewPrinterStatusCache_PanicsWithoutCache(t *testing.T) {
	t.Parallel()
	assert.Panics(t, func() { core.NewPrinterStatusCache(core.PrinterStatusCacheOptions{}) })
}
