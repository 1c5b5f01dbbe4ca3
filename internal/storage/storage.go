package storage

import (
	"context"

	"github.com/opsdesk/opsdesk/internal/model"
)

// Repository is the interface for order persistence.
//
// GetOrder returns the order with its issued documents attached; ListOrders
// returns bare orders (no documents) for listing surfaces.
type Repository interface {
	CreateOrder(ctx context.Context, o model.Order) error
	GetOrder(ctx context.Context, id string) (*model.Order, error)
	ListOrders(ctx context.Context) ([]model.Order, error)
	UpdateOrder(ctx context.Context, o model.Order) error
	DeleteOrder(ctx context.Context, id string) error

	CreateDocument(ctx context.Context, d model.Document) error
	CancelDocument(ctx context.Context, id string) error
}
