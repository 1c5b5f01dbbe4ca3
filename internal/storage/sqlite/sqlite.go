package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/opsdesk/opsdesk/internal/lifecycle"
	"github.com/opsdesk/opsdesk/internal/log"
	"github.com/opsdesk/opsdesk/internal/model"
	"github.com/opsdesk/opsdesk/internal/storage/sqlite/migrations"
)

// RepositoryConfig is the configuration for the SQLite repository.
type RepositoryConfig struct {
	DBPath string
	Logger log.Logger
}

func (c *RepositoryConfig) defaults() error {
	if c.DBPath == "" {
		return fmt.Errorf("db path is required")
	}
	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "storage.SQLite"})
	return nil
}

// Repository is a SQLite implementation of storage.Repository.
//
// The note log and the task overrides are stored exactly in their legacy
// single-field encodings (one line per entry, compact JSON object), so the
// rows stay readable by the previous generation of the tooling.
type Repository struct {
	db     *sql.DB
	logger log.Logger
}

// NewRepository creates a new SQLite repository.
func NewRepository(ctx context.Context, cfg RepositoryConfig) (*Repository, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	dir := filepath.Dir(cfg.DBPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("could not create db directory: %w", err)
	}

	dsn := fmt.Sprintf("%s?_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)", cfg.DBPath)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("could not open database: %w", err)
	}

	migrator, err := migrations.NewMigrator(db, cfg.Logger)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("could not create migrator: %w", err)
	}
	if err := migrator.Up(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("could not run migrations: %w", err)
	}

	cfg.Logger.Debugf("SQLite repository initialized at %s", cfg.DBPath)

	return &Repository{db: db, logger: cfg.Logger}, nil
}

// Close closes the database connection.
func (r *Repository) Close() error { return r.db.Close() }

// CreateOrder creates a new order in the repository.
func (r *Repository) CreateOrder(ctx context.Context, o model.Order) error {
	query := `
		INSERT INTO orders (
			id, customer, kind, status,
			note_log, requires_review, task_overrides,
			created_at, updated_at
		)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(
		ctx,
		query,
		o.ID,
		o.Customer,
		o.Kind,
		o.Status,
		o.NoteLog,
		o.RequiresReview,
		lifecycle.EncodeOverrides(o.TaskOverrides),
		o.CreatedAt.Unix(),
		o.UpdatedAt.Unix(),
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed: orders.") {
			return fmt.Errorf("order already exists: %w", model.ErrAlreadyExists)
		}
		return fmt.Errorf("could not insert order: %w", err)
	}

	r.logger.Debugf("Created order in repository: %s", o.ID)
	return nil
}

// GetOrder retrieves an order by ID with its documents attached.
func (r *Repository) GetOrder(ctx context.Context, id string) (*model.Order, error) {
	query := `
		SELECT id, customer, kind, status,
			note_log, requires_review, task_overrides,
			created_at, updated_at
		FROM orders
		WHERE id = ?
	`

	row := r.db.QueryRowContext(ctx, query, id)
	order, err := scanOrder(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("order %s: %w", id, model.ErrNotFound)
		}
		return nil, fmt.Errorf("could not query order: %w", err)
	}

	documents, err := r.listDocuments(ctx, id)
	if err != nil {
		return nil, err
	}
	order.Documents = documents

	return order, nil
}

// ListOrders returns all orders, newest first, without documents.
func (r *Repository) ListOrders(ctx context.Context) ([]model.Order, error) {
	query := `
		SELECT id, customer, kind, status,
			note_log, requires_review, task_overrides,
			created_at, updated_at
		FROM orders
		ORDER BY created_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("could not query orders: %w", err)
	}
	defer rows.Close()

	var orders []model.Order
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("could not scan order: %w", err)
		}
		orders = append(orders, *order)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("could not iterate orders: %w", err)
	}

	return orders, nil
}

// UpdateOrder updates an existing order. The status, note log, review flag
// and overrides land in a single statement, so a transition write is applied
// atomically or not at all.
func (r *Repository) UpdateOrder(ctx context.Context, o model.Order) error {
	query := `
		UPDATE orders
		SET customer = ?, kind = ?, status = ?,
			note_log = ?, requires_review = ?, task_overrides = ?,
			updated_at = ?
		WHERE id = ?
	`

	res, err := r.db.ExecContext(
		ctx,
		query,
		o.Customer,
		o.Kind,
		o.Status,
		o.NoteLog,
		o.RequiresReview,
		lifecycle.EncodeOverrides(o.TaskOverrides),
		o.UpdatedAt.Unix(),
		o.ID,
	)
	if err != nil {
		return fmt.Errorf("could not update order: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("could not check update result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("order %s: %w", o.ID, model.ErrNotFound)
	}

	r.logger.Debugf("Updated order in repository: %s", o.ID)
	return nil
}

// DeleteOrder deletes an order; its documents go with it via the foreign key.
func (r *Repository) DeleteOrder(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM orders WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("could not delete order: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("could not check delete result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("order %s: %w", id, model.ErrNotFound)
	}

	r.logger.Debugf("Deleted order from repository: %s", id)
	return nil
}

// CreateDocument records a document issued for an order.
func (r *Repository) CreateDocument(ctx context.Context, d model.Document) error {
	query := `
		INSERT INTO documents (id, order_id, kind, cancelled, file_ref, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query, d.ID, d.OrderID, d.Kind, d.Cancelled, d.FileRef, d.CreatedAt.Unix())
	if err != nil {
		switch {
		case strings.Contains(err.Error(), "UNIQUE constraint failed: documents."):
			return fmt.Errorf("document already exists: %w", model.ErrAlreadyExists)
		case strings.Contains(err.Error(), "FOREIGN KEY constraint failed"):
			return fmt.Errorf("order %s: %w", d.OrderID, model.ErrNotFound)
		}
		return fmt.Errorf("could not insert document: %w", err)
	}

	return nil
}

// CancelDocument marks a document as cancelled.
func (r *Repository) CancelDocument(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `UPDATE documents SET cancelled = 1 WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("could not cancel document: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("could not check cancel result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("document %s: %w", id, model.ErrNotFound)
	}

	return nil
}

func (r *Repository) listDocuments(ctx context.Context, orderID string) ([]model.Document, error) {
	query := `
		SELECT id, order_id, kind, cancelled, file_ref, created_at
		FROM documents
		WHERE order_id = ?
		ORDER BY created_at ASC
	`

	rows, err := r.db.QueryContext(ctx, query, orderID)
	if err != nil {
		return nil, fmt.Errorf("could not query documents: %w", err)
	}
	defer rows.Close()

	var documents []model.Document
	for rows.Next() {
		var d model.Document
		var createdAt int64
		if err := rows.Scan(&d.ID, &d.OrderID, &d.Kind, &d.Cancelled, &d.FileRef, &createdAt); err != nil {
			return nil, fmt.Errorf("could not scan document: %w", err)
		}
		d.CreatedAt = time.Unix(createdAt, 0).UTC()
		documents = append(documents, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("could not iterate documents: %w", err)
	}

	return documents, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanOrder(row rowScanner) (*model.Order, error) {
	var o model.Order
	var overridesRaw string
	var createdAt, updatedAt int64

	err := row.Scan(
		&o.ID,
		&o.Customer,
		&o.Kind,
		&o.Status,
		&o.NoteLog,
		&o.RequiresReview,
		&overridesRaw,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	o.TaskOverrides = lifecycle.DecodeOverrides(overridesRaw)
	o.CreatedAt = time.Unix(createdAt, 0).UTC()
	o.UpdatedAt = time.Unix(updatedAt, 0).UTC()

	return &o, nil
}
