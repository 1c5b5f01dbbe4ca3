package transition

import (
	"context"
	"fmt"
	"time"

	"github.com/opsdesk/opsdesk/internal/lifecycle"
	"github.com/opsdesk/opsdesk/internal/log"
	"github.com/opsdesk/opsdesk/internal/model"
	"github.com/opsdesk/opsdesk/internal/storage"
)

// ServiceConfig is the configuration for the transition service.
type ServiceConfig struct {
	Repository storage.Repository
	Logger     log.Logger
}

func (c *ServiceConfig) defaults() error {
	if c.Repository == nil {
		return fmt.Errorf("repository is required")
	}
	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "app.Transition"})
	return nil
}

// Service changes an order's status and appends transition notes. This is
// the only code path allowed to mutate an order's status or note log; it
// performs a single read-modify-write and skips the write entirely when the
// transition is a no-op.
type Service struct {
	repo   storage.Repository
	logger log.Logger
}

// NewService creates a new transition service.
func NewService(cfg ServiceConfig) (*Service, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Service{
		repo:   cfg.Repository,
		logger: cfg.Logger,
	}, nil
}

// Request represents a status transition request.
type Request struct {
	OrderID      string
	TargetStatus string
	// Note is optional free text recorded on the note log. An empty note on
	// an otherwise vacuous transition makes the whole request a no-op.
	Note  string
	Actor model.Actor
	// Now defaults to the current time when zero.
	Now time.Time
}

// Run applies the transition. It returns the resulting order snapshot,
// which is the unchanged one when the no-op guard fired.
func (s *Service) Run(ctx context.Context, req Request) (*model.Order, error) {
	now := req.Now
	if now.IsZero() {
		now = time.Now().UTC()
	}

	order, err := s.repo.GetOrder(ctx, req.OrderID)
	if err != nil {
		return nil, fmt.Errorf("could not get order: %w", err)
	}

	result := lifecycle.ApplyTransition(*order, req.TargetStatus, req.Note, req.Actor, now)
	if !result.Changed {
		s.logger.Debugf("transition is a no-op for order %s, skipping write", order.ID)
		return order, nil
	}

	order.Status = result.Status
	order.NoteLog = result.NoteLog
	order.RequiresReview = result.RequiresReview
	order.UpdatedAt = now

	if err := s.repo.UpdateOrder(ctx, *order); err != nil {
		return nil, fmt.Errorf("could not save order: %w", err)
	}

	s.logger.Infof("Order %s moved to %s", order.ID, order.Status)

	return order, nil
}
