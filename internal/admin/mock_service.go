package admin

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/osse101/mobmoney/internal/domain"
	"github.com/osse101/mobmoney/internal/metrics"
)

// MockService is a mock implementation of the Service interface
type MockService struct {
	mock.Mock
}

func (m *MockService) MetricsEnabled() bool {
	args := m.Called()
	return args.Bool(0)
}

func (m *MockService) Reload(ctx context.Context) (ReloadResult, error) {
	args := m.Called(ctx)
	return args.Get(0).(ReloadResult), args.Error(1)
}

func (m *MockService) Status(ctx context.Context) (domain.MetricsStatus, error) {
	args := m.Called(ctx)
	return args.Get(0).(domain.MetricsStatus), args.Error(1)
}

func (m *MockService) Record(ctx context.Context) (metrics.Record, error) {
	args := m.Called(ctx)
	return args.Get(0).(metrics.Record), args.Error(1)
}
