package override

import (
	"context"
	"fmt"
	"time"

	"github.com/opsdesk/opsdesk/internal/lifecycle"
	"github.com/opsdesk/opsdesk/internal/log"
	"github.com/opsdesk/opsdesk/internal/model"
	"github.com/opsdesk/opsdesk/internal/storage"
)

// ServiceConfig is the configuration for the override service.
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
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "app.Override"})
	return nil
}

// Service records manual checklist decisions on an order.
type Service struct {
	repo   storage.Repository
	logger log.Logger
}

// NewService creates a new override service.
func NewService(cfg ServiceConfig) (*Service, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Service{
		repo:   cfg.Repository,
		logger: cfg.Logger,
	}, nil
}

// Request represents an override mutation.
type Request struct {
	OrderID string
	TaskID  string
	// Value sets the manual completion; nil clears the stored decision so
	// the task goes back to automatic inference.
	Value *bool
}

// Run applies the override and returns the updated sparse override map.
func (s *Service) Run(ctx context.Context, req Request) (map[string]bool, error) {
	if !lifecycle.KnownTaskID(req.TaskID) {
		return nil, fmt.Errorf("unknown task %q: %w", req.TaskID, model.ErrNotValid)
	}

	order, err := s.repo.GetOrder(ctx, req.OrderID)
	if err != nil {
		return nil, fmt.Errorf("could not get order: %w", err)
	}

	order.TaskOverrides = lifecycle.SetOverride(order.TaskOverrides, req.TaskID, req.Value)
	order.UpdatedAt = time.Now().UTC()

	if err := s.repo.UpdateOrder(ctx, *order); err != nil {
		return nil, fmt.Errorf("could not save order: %w", err)
	}

	if req.Value == nil {
		s.logger.Infof("Cleared override %s on order %s", req.TaskID, order.ID)
	} else {
		s.logger.Infof("Set override %s=%t on order %s", req.TaskID, *req.Value, order.ID)
	}

	return order.TaskOverrides, nil
}
