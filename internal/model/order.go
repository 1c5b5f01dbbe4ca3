package model

import (
	"fmt"
	"time"
)

// Order represents a customer order tracked by the back office.
//
// Status holds the key of the lifecycle stage the order is currently in.
// NoteLog holds the full status/note history encoded as one line per entry
// (legacy single-field representation, decoded by the lifecycle package).
// TaskOverrides holds manual checklist decisions keyed by task ID; an absent
// key means the checklist item defers to automatic inference.
type Order struct {
	ID             string
	Customer       string
	Kind           string
	Status         string
	NoteLog        string
	RequiresReview bool
	TaskOverrides  map[string]bool
	Documents      []Document
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Document is a record of a document issued for an order by the external
// invoicing system. The engine only observes documents, it never issues them.
type Document struct {
	ID        string
	OrderID   string
	Kind      string
	Cancelled bool
	// FileRef points at the rendered artifact (PDF path or URL). Empty means
	// the document exists as a database row only.
	FileRef   string
	CreatedAt time.Time
}

// Known document kinds.
const (
	DocumentKindQuote    = "quote"
	DocumentKindProforma = "proforma"
	DocumentKindInvoice  = "invoice"
)

// Actor identifies who performed a manual action, for note attribution.
type Actor struct {
	DisplayName string
}

// OrderConfig is the data required to register a new order.
type OrderConfig struct {
	Customer    string
	Kind        string
	InitialNote string
}

// Validate validates the order configuration.
func (c *OrderConfig) Validate() error {
	if c.Customer == "" {
		return fmt.Errorf("customer is required: %w", ErrNotValid)
	}
	if c.Kind == "" {
		return fmt.Errorf("kind is required: %w", ErrNotValid)
	}

	return nil
}
