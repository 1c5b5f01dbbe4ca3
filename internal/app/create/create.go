package create

import (
	"context"
	"crypto/rand"
	"fmt"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/opsdesk/opsdesk/internal/lifecycle"
	"github.com/opsdesk/opsdesk/internal/log"
	"github.com/opsdesk/opsdesk/internal/model"
	"github.com/opsdesk/opsdesk/internal/storage"
)

// ServiceConfig is the configuration for the create service.
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
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "app.Create"})
	return nil
}

// Service handles order registration business logic.
type Service struct {
	repo   storage.Repository
	logger log.Logger
}

// NewService creates a new create service.
func NewService(cfg ServiceConfig) (*Service, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Service{
		repo:   cfg.Repository,
		logger: cfg.Logger,
	}, nil
}

// CreateOptions are the options for registering an order.
type CreateOptions struct {
	Config model.OrderConfig
	// Actor is attributed on the initial note, if the intake carries one.
	Actor model.Actor
	// Now defaults to the current time when zero.
	Now time.Time
}

// Create registers a new order. New orders start in the first actionable
// stage flagged for review; the intake note, when present, becomes the first
// note-log line.
func (s *Service) Create(ctx context.Context, opts CreateOptions) (*model.Order, error) {
	if err := opts.Config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	now := opts.Now
	if now.IsZero() {
		now = time.Now().UTC()
	}

	stage := lifecycle.FirstActionable()
	order := model.Order{
		ID:             ulid.MustNew(ulid.Timestamp(now), rand.Reader).String(),
		Customer:       opts.Config.Customer,
		Kind:           opts.Config.Kind,
		Status:         stage.Key,
		NoteLog:        lifecycle.AppendNote("", stage, opts.Config.InitialNote, opts.Actor, now),
		RequiresReview: true,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := s.repo.CreateOrder(ctx, order); err != nil {
		return nil, fmt.Errorf("could not save order: %w", err)
	}

	s.logger.Infof("Created order: %s (%s)", order.Customer, order.ID)

	return &order, nil
}
