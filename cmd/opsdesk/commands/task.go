package commands

import (
	"context"
	"fmt"

	"github.com/alecthomas/kingpin/v2"

	"github.com/opsdesk/opsdesk/internal/app/override"
	"github.com/opsdesk/opsdesk/internal/storage/sqlite"
)

// NewTaskCommand returns the parent task command.
func NewTaskCommand(app *kingpin.Application) *kingpin.CmdClause {
	return app.Command("task", "Manage checklist item overrides.")
}

type TaskSetCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	orderID string
	taskID  string
	value   string
}

// NewTaskSetCommand returns the task set command.
func NewTaskSetCommand(rootCmd *RootCommand, parent *kingpin.CmdClause) *TaskSetCommand {
	c := &TaskSetCommand{rootCmd: rootCmd}

	c.Cmd = parent.Command("set", "Set or clear a manual checklist decision.")
	c.Cmd.Arg("order-id", "Order ID.").Required().StringVar(&c.orderID)
	c.Cmd.Arg("task-id", "Task ID (stage/label-slug, shown in the timeline JSON output).").Required().StringVar(&c.taskID)
	c.Cmd.Arg("value", "done marks it complete, open marks it incomplete, auto clears the manual decision.").Required().EnumVar(&c.value, "done", "open", "auto")

	return c
}

func (c TaskSetCommand) Name() string { return c.Cmd.FullCommand() }

func (c TaskSetCommand) Run(ctx context.Context) error {
	logger := c.rootCmd.Logger

	repo, err := sqlite.NewRepository(ctx, sqlite.RepositoryConfig{
		DBPath: c.rootCmd.DBPath,
		Logger: logger,
	})
	if err != nil {
		return fmt.Errorf("could not create repository: %w", err)
	}

	svc, err := override.NewService(override.ServiceConfig{
		Repository: repo,
		Logger:     logger,
	})
	if err != nil {
		return fmt.Errorf("could not create service: %w", err)
	}

	var value *bool
	switch c.value {
	case "done":
		v := true
		value = &v
	case "open":
		v := false
		value = &v
	case "auto":
		// nil clears the override.
	}

	if _, err := svc.Run(ctx, override.Request{
		OrderID: c.orderID,
		TaskID:  c.taskID,
		Value:   value,
	}); err != nil {
		return fmt.Errorf("could not update task: %w", err)
	}

	fmt.Fprintf(c.rootCmd.Stdout, "%s %s\n", c.taskID, c.value)

	return nil
}
