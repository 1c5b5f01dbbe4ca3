// Package storagemock provides a testify based mock of storage.Repository
// for unit tests.
package storagemock

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/opsdesk/opsdesk/internal/model"
)

// MockRepository is a mock implementation of storage.Repository.
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) CreateOrder(ctx context.Context, o model.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockRepository) GetOrder(ctx context.Context, id string) (*model.Order, error) {
	args := m.Called(ctx, id)
	order, _ := args.Get(0).(*model.Order)
	return order, args.Error(1)
}

func (m *MockRepository) ListOrders(ctx context.Context) ([]model.Order, error) {
	args := m.Called(ctx)
	orders, _ := args.Get(0).([]model.Order)
	return orders, args.Error(1)
}

func (m *MockRepository) UpdateOrder(ctx context.Context, o model.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockRepository) DeleteOrder(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockRepository) CreateDocument(ctx context.Context, d model.Document) error {
	args := m.Called(ctx, d)
	return args.Error(0)
}

func (m *MockRepository) CancelDocument(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
