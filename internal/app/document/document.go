package document

import (
	"context"
	"crypto/rand"
	"fmt"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/opsdesk/opsdesk/internal/log"
	"github.com/opsdesk/opsdesk/internal/model"
	"github.com/opsdesk/opsdesk/internal/storage"
)

// ServiceConfig is the configuration for the document service.
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
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "app.Document"})
	return nil
}

// Service records documents issued for orders by the external invoicing
// system. It is bookkeeping only: documents are rendered and numbered
// elsewhere, here they exist so checklist inference can observe them.
type Service struct {
	repo   storage.Repository
	logger log.Logger
}

// NewService creates a new document service.
func NewService(cfg ServiceConfig) (*Service, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Service{
		repo:   cfg.Repository,
		logger: cfg.Logger,
	}, nil
}

// RecordOptions are the options for recording an issued document.
type RecordOptions struct {
	OrderID string
	Kind    string
	FileRef string
	// Now defaults to the current time when zero.
	Now time.Time
}

// Record registers an issued document against an order.
func (s *Service) Record(ctx context.Context, opts RecordOptions) (*model.Document, error) {
	if opts.Kind == "" {
		return nil, fmt.Errorf("document kind is required: %w", model.ErrNotValid)
	}

	now := opts.Now
	if now.IsZero() {
		now = time.Now().UTC()
	}

	doc := model.Document{
		ID:        ulid.MustNew(ulid.Timestamp(now), rand.Reader).String(),
		OrderID:   opts.OrderID,
		Kind:      opts.Kind,
		FileRef:   opts.FileRef,
		CreatedAt: now,
	}

	if err := s.repo.CreateDocument(ctx, doc); err != nil {
		return nil, fmt.Errorf("could not save document: %w", err)
	}

	s.logger.Infof("Recorded %s document for order %s", doc.Kind, doc.OrderID)

	return &doc, nil
}

// Cancel marks a recorded document as cancelled so it stops counting for
// checklist inference.
func (s *Service) Cancel(ctx context.Context, documentID string) error {
	if err := s.repo.CancelDocument(ctx, documentID); err != nil {
		return fmt.Errorf("could not cancel document: %w", err)
	}

	s.logger.Infof("Cancelled document %s", documentID)

	return nil
}
