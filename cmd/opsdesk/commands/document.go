package commands

import (
	"context"
	"fmt"

	"github.com/alecthomas/kingpin/v2"

	"github.com/opsdesk/opsdesk/internal/app/document"
	"github.com/opsdesk/opsdesk/internal/model"
	"github.com/opsdesk/opsdesk/internal/printer"
	"github.com/opsdesk/opsdesk/internal/storage/sqlite"
)

// NewDocumentCommand returns the parent document command.
func NewDocumentCommand(app *kingpin.Application) *kingpin.CmdClause {
	return app.Command("document", "Manage documents issued for orders.")
}

type DocumentAddCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	orderID string
	kind    string
	fileRef string
}

// NewDocumentAddCommand returns the document add command.
func NewDocumentAddCommand(rootCmd *RootCommand, parent *kingpin.CmdClause) *DocumentAddCommand {
	c := &DocumentAddCommand{rootCmd: rootCmd}

	c.Cmd = parent.Command("add", "Record a document issued for an order.")
	c.Cmd.Arg("order-id", "Order ID.").Required().StringVar(&c.orderID)
	c.Cmd.Arg("kind", "Document kind.").Required().EnumVar(&c.kind,
		model.DocumentKindQuote, model.DocumentKindProforma, model.DocumentKindInvoice)
	c.Cmd.Flag("file", "Reference to the generated file.").Short('f').StringVar(&c.fileRef)

	return c
}

func (c DocumentAddCommand) Name() string { return c.Cmd.FullCommand() }

func (c DocumentAddCommand) Run(ctx context.Context) error {
	logger := c.rootCmd.Logger

	repo, err := sqlite.NewRepository(ctx, sqlite.RepositoryConfig{
		DBPath: c.rootCmd.DBPath,
		Logger: logger,
	})
	if err != nil {
		return fmt.Errorf("could not create repository: %w", err)
	}

	svc, err := document.NewService(document.ServiceConfig{
		Repository: repo,
		Logger:     logger,
	})
	if err != nil {
		return fmt.Errorf("could not create service: %w", err)
	}

	doc, err := svc.Record(ctx, document.RecordOptions{
		OrderID: c.orderID,
		Kind:    c.kind,
		FileRef: c.fileRef,
	})
	if err != nil {
		return fmt.Errorf("could not record document: %w", err)
	}

	p := printer.NewTablePrinter(c.rootCmd.Stdout)
	if err := p.PrintDocument(*doc); err != nil {
		return fmt.Errorf("could not print document: %w", err)
	}

	return nil
}

type DocumentCancelCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	documentID string
}

// NewDocumentCancelCommand returns the document cancel command.
func NewDocumentCancelCommand(rootCmd *RootCommand, parent *kingpin.CmdClause) *DocumentCancelCommand {
	c := &DocumentCancelCommand{rootCmd: rootCmd}

	c.Cmd = parent.Command("cancel", "Cancel a recorded document.")
	c.Cmd.Arg("document-id", "Document ID.").Required().StringVar(&c.documentID)

	return c
}

func (c DocumentCancelCommand) Name() string { return c.Cmd.FullCommand() }

func (c DocumentCancelCommand) Run(ctx context.Context) error {
	logger := c.rootCmd.Logger

	repo, err := sqlite.NewRepository(ctx, sqlite.RepositoryConfig{
		DBPath: c.rootCmd.DBPath,
		Logger: logger,
	})
	if err != nil {
		return fmt.Errorf("could not create repository: %w", err)
	}

	svc, err := document.NewService(document.ServiceConfig{
		Repository: repo,
		Logger:     logger,
	})
	if err != nil {
		return fmt.Errorf("could not create service: %w", err)
	}

	if err := svc.Cancel(ctx, c.documentID); err != nil {
		return fmt.Errorf("could not cancel document: %w", err)
	}

	fmt.Fprintf(c.rootCmd.Stdout, "%s cancelled\n", c.documentID)

	return nil
}
