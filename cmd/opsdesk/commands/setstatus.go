package commands

import (
	"context"
	"fmt"

	"github.com/alecthomas/kingpin/v2"

	"github.com/opsdesk/opsdesk/internal/app/transition"
	"github.com/opsdesk/opsdesk/internal/lifecycle"
	"github.com/opsdesk/opsdesk/internal/model"
	"github.com/opsdesk/opsdesk/internal/storage/sqlite"
)

type SetStatusCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	orderID string
	status  string
	note    string
}

// NewSetStatusCommand returns the set-status command.
func NewSetStatusCommand(rootCmd *RootCommand, app *kingpin.Application) *SetStatusCommand {
	c := &SetStatusCommand{rootCmd: rootCmd}

	c.Cmd = app.Command("set-status", "Move an order to a lifecycle stage.")
	c.Cmd.Arg("order-id", "Order ID.").Required().StringVar(&c.orderID)

	keys := make([]string, 0, len(lifecycle.ActionableStages()))
	for _, s := range lifecycle.ActionableStages() {
		keys = append(keys, s.Key)
	}
	c.Cmd.Arg("status", "Target stage key.").Required().EnumVar(&c.status, keys...)
	c.Cmd.Flag("note", "Note recorded alongside the status change.").StringVar(&c.note)

	return c
}

func (c SetStatusCommand) Name() string { return c.Cmd.FullCommand() }

func (c SetStatusCommand) Run(ctx context.Context) error {
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

	order, err := svc.Run(ctx, transition.Request{
		OrderID:      c.orderID,
		TargetStatus: c.status,
		Note:         c.note,
		Actor:        model.Actor{DisplayName: c.rootCmd.Actor},
	})
	if err != nil {
		return fmt.Errorf("could not change status: %w", err)
	}

	fmt.Fprintf(c.rootCmd.Stdout, "%s %s\n", order.ID, order.Status)

	return nil
}
