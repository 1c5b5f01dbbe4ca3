package commands

import (
	"context"
	"fmt"

	"github.com/alecthomas/kingpin/v2"

	"github.com/opsdesk/opsdesk/internal/app/transition"
	"github.com/opsdesk/opsdesk/internal/model"
	"github.com/opsdesk/opsdesk/internal/storage/sqlite"
)

type NoteCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	orderID string
	text    string
}

// NewNoteCommand returns the note command.
func NewNoteCommand(rootCmd *RootCommand, app *kingpin.Application) *NoteCommand {
	c := &NoteCommand{rootCmd: rootCmd}

	c.Cmd = app.Command("note", "Append a note to an order without moving it.")
	c.Cmd.Arg("order-id", "Order ID.").Required().StringVar(&c.orderID)
	c.Cmd.Arg("text", "Note text.").Required().StringVar(&c.text)

	return c
}

func (c NoteCommand) Name() string { return c.Cmd.FullCommand() }

func (c NoteCommand) Run(ctx context.Context) error {
	logger := c.rootCmd.Logger

	repo, err := sqlite.NewRepository(ctx, sqlite.RepositoryConfig{
		DBPath: c.rootCmd.DBPath,
		Logger: logger,
	})
	if err != nil {
		return fmt.Errorf("could not create repository: %w", err)
	}

	svc, err := transition.NewService(transition.ServiceConfig{
		Repository: repo,
		Logger:     logger,
	})
	if err != nil {
		return fmt.Errorf("could not create service: %w", err)
	}

	// A note is a transition to the order's current status: the log records
	// the stage context without moving the order.
	order, err := repo.GetOrder(ctx, c.orderID)
	if err != nil {
		return fmt.Errorf("could not get order: %w", err)
	}

	if _, err := svc.Run(ctx, transition.Request{
		OrderID:      c.orderID,
		TargetStatus: order.Status,
		Note:         c.text,
		Actor:        model.Actor{DisplayName: c.rootCmd.Actor},
	}); err != nil {
		return fmt.Errorf("could not append note: %w", err)
	}

	return nil
}
