package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/opsdesk/opsdesk/internal/log"
	"github.com/opsdesk/opsdesk/internal/model"
)

// RepositoryConfig is the configuration for the memory repository.
type RepositoryConfig struct {
	Logger log.Logger
}

func (c *RepositoryConfig) defaults() error {
	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "storage.Memory"})
	return nil
}

// Repository is an in-memory implementation of storage.Repository. Used by
// tests and as a throwaway backend; everything is lost on process exit.
type Repository struct {
	orders    map[string]model.Order
	documents map[string]model.Document
	mu        sync.RWMutex
	logger    log.Logger
}

// NewRepository creates a new memory repository.
func NewRepository(cfg RepositoryConfig) (*Repository, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Repository{
		orders:    make(map[string]model.Order),
		documents: make(map[string]model.Document),
		logger:    cfg.Logger,
	}, nil
}

// CreateOrder creates a new order in the repository.
func (r *Repository) CreateOrder(ctx context.Context, o model.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.orders[o.ID]; ok {
		return fmt.Errorf("order with id %s: %w", o.ID, model.ErrAlreadyExists)
	}

	o.Documents = nil // documents live in their own map.
	r.orders[o.ID] = copyOrder(o)
	r.logger.Debugf("Created order in repository: %s", o.ID)

	return nil
}

// GetOrder retrieves an order by ID with its documents attached.
func (r *Repository) GetOrder(ctx context.Context, id string) (*model.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	order, ok := r.orders[id]
	if !ok {
		return nil, fmt.Errorf("order %s: %w", id, model.ErrNotFound)
	}

	orderCopy := copyOrder(order)
	for _, d := range r.documents {
		if d.OrderID == id {
			orderCopy.Documents = append(orderCopy.Documents, d)
		}
	}
	sort.Slice(orderCopy.Documents, func(i, j int) bool {
		return orderCopy.Documents[i].CreatedAt.Before(orderCopy.Documents[j].CreatedAt)
	})

	return &orderCopy, nil
}

// ListOrders returns all orders, newest first, without documents.
func (r *Repository) ListOrders(ctx context.Context) ([]model.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	orders := make([]model.Order, 0, len(r.orders))
	for _, o := range r.orders {
		orders = append(orders, copyOrder(o))
	}
	sort.Slice(orders, func(i, j int) bool {
		return orders[i].CreatedAt.After(orders[j].CreatedAt)
	})

	return orders, nil
}

// UpdateOrder updates an existing order.
func (r *Repository) UpdateOrder(ctx context.Context, o model.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.orders[o.ID]; !ok {
		return fmt.Errorf("order %s: %w", o.ID, model.ErrNotFound)
	}

	o.Documents = nil
	r.orders[o.ID] = copyOrder(o)
	r.logger.Debugf("Updated order in repository: %s", o.ID)

	return nil
}

// DeleteOrder deletes an order and its documents.
func (r *Repository) DeleteOrder(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.orders[id]; !ok {
		return fmt.Errorf("order %s: %w", id, model.ErrNotFound)
	}

	delete(r.orders, id)
	for docID, d := range r.documents {
		if d.OrderID == id {
			delete(r.documents, docID)
		}
	}
	r.logger.Debugf("Deleted order from repository: %s", id)

	return nil
}

// CreateDocument records a document issued for an order.
func (r *Repository) CreateDocument(ctx context.Context, d model.Document) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.orders[d.OrderID]; !ok {
		return fmt.Errorf("order %s: %w", d.OrderID, model.ErrNotFound)
	}
	if _, ok := r.documents[d.ID]; ok {
		return fmt.Errorf("document with id %s: %w", d.ID, model.ErrAlreadyExists)
	}

	r.documents[d.ID] = d

	return nil
}

// CancelDocument marks a document as cancelled.
func (r *Repository) CancelDocument(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	d, ok := r.documents[id]
	if !ok {
		return fmt.Errorf("document %s: %w", id, model.ErrNotFound)
	}

	d.Cancelled = true
	r.documents[id] = d

	return nil
}

// copyOrder returns a deep enough copy so callers cannot alias the stored
// maps and slices.
func copyOrder(o model.Order) model.Order {
	if o.TaskOverrides != nil {
		overrides := make(map[string]bool, len(o.TaskOverrides))
		for k, v := range o.TaskOverrides {
			overrides[k] = v
		}
		o.TaskOverrides = overrides
	}
	if o.Documents != nil {
		o.Documents = append([]model.Document(nil), o.Documents...)
	}

	return o
}
