package timeline

import (
	"context"
	"fmt"

	"github.com/opsdesk/opsdesk/internal/lifecycle"
	"github.com/opsdesk/opsdesk/internal/log"
	"github.com/opsdesk/opsdesk/internal/model"
	"github.com/opsdesk/opsdesk/internal/storage"
)

// ServiceConfig is the configuration for the timeline service.
type ServiceConfig struct {
	Repository storage.Repository
	Logger     log.Logger
	// LegacyStageTimestamps enables the historical backdated display
	// timestamps on completed stage entries.
	LegacyStageTimestamps bool
}

func (c *ServiceConfig) defaults() error {
	if c.Repository == nil {
		return fmt.Errorf("repository is required")
	}
	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "app.Timeline"})
	return nil
}

// Service derives the lifecycle timeline view of an order. Reads never
// mutate anything; the same stored order always renders the same timeline.
type Service struct {
	repo    storage.Repository
	builder *lifecycle.Builder
	logger  log.Logger
}

// NewService creates a new timeline service.
func NewService(cfg ServiceConfig) (*Service, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Service{
		repo:    cfg.Repository,
		builder: lifecycle.NewBuilder(lifecycle.BuilderConfig{LegacyStageTimestamps: cfg.LegacyStageTimestamps}),
		logger:  cfg.Logger,
	}, nil
}

// Request represents the timeline request parameters.
type Request struct {
	OrderID string
}

// Response is the derived timeline plus the order's raw current status
// echoed back for convenience.
type Response struct {
	Order         model.Order
	CurrentStatus string
	Entries       []model.TimelineEntry
}

// Run loads an order and derives its timeline.
func (s *Service) Run(ctx context.Context, req Request) (*Response, error) {
	s.logger.Debugf("building timeline for order: %s", req.OrderID)

	order, err := s.repo.GetOrder(ctx, req.OrderID)
	if err != nil {
		return nil, fmt.Errorf("could not get order: %w", err)
	}

	return &Response{
		Order:         *order,
		CurrentStatus: order.Status,
		Entries:       s.builder.Build(*order),
	}, nil
}
