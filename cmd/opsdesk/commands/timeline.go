package commands

import (
	"context"
	"fmt"

	"github.com/alecthomas/kingpin/v2"

	"github.com/opsdesk/opsdesk/internal/app/timeline"
	"github.com/opsdesk/opsdesk/internal/printer"
	"github.com/opsdesk/opsdesk/internal/storage/sqlite"
)

type TimelineCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	orderID          string
	format           string
	legacyTimestamps bool
}

// NewTimelineCommand returns the timeline command.
func NewTimelineCommand(rootCmd *RootCommand, app *kingpin.Application) *TimelineCommand {
	c := &TimelineCommand{rootCmd: rootCmd}

	c.Cmd = app.Command("timeline", "Show an order's lifecycle timeline and checklists.")
	c.Cmd.Arg("order-id", "Order ID.").Required().StringVar(&c.orderID)
	c.Cmd.Flag("format", "Output format (table, json).").Default("table").EnumVar(&c.format, "table", "json")
	c.Cmd.Flag("legacy-timestamps", "Render the historical backdated stage timestamps.").BoolVar(&c.legacyTimestamps)

	return c
}

func (c TimelineCommand) Name() string { return c.Cmd.FullCommand() }

func (c TimelineCommand) Run(ctx context.Context) error {
	logger := c.rootCmd.Logger

	repo, err := sqlite.NewRepository(ctx, sqlite.RepositoryConfig{
		DBPath: c.rootCmd.DBPath,
		Logger: logger,
	})
	if err != nil {
		return fmt.Errorf("could not create repository: %w", err)
	}

	svc, err := timeline.NewService(timeline.ServiceConfig{
		Repository:            repo,
		Logger:                logger,
		LegacyStageTimestamps: c.legacyTimestamps,
	})
	if err != nil {
		return fmt.Errorf("could not create service: %w", err)
	}

	resp, err := svc.Run(ctx, timeline.Request{OrderID: c.orderID})
	if err != nil {
		return fmt.Errorf("could not build timeline: %w", err)
	}

	var p printer.Printer
	switch c.format {
	case "json":
		p = printer.NewJSONPrinter(c.rootCmd.Stdout)
	default: // table
		p = printer.NewTablePrinter(c.rootCmd.Stdout)
	}

	if err := p.PrintTimeline(resp.Order, resp.Entries); err != nil {
		return fmt.Errorf("could not print timeline: %w", err)
	}

	return nil
}
