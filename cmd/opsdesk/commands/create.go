package commands

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/alecthomas/kingpin/v2"

	"github.com/opsdesk/opsdesk/internal/app/create"
	"github.com/opsdesk/opsdesk/internal/model"
	storageio "github.com/opsdesk/opsdesk/internal/storage/io"
	"github.com/opsdesk/opsdesk/internal/storage/sqlite"
)

type CreateCommand struct {
	Cmd     *kingpin.CmdClause
	rootCmd *RootCommand

	customer   string
	kind       string
	note       string
	intakeFile string
}

// NewCreateCommand returns the create command.
func NewCreateCommand(rootCmd *RootCommand, app *kingpin.Application) *CreateCommand {
	c := &CreateCommand{rootCmd: rootCmd}

	c.Cmd = app.Command("create", "Register a new order.")
	c.Cmd.Flag("customer", "Customer name.").Short('c').StringVar(&c.customer)
	c.Cmd.Flag("kind", "Order kind (e.g. installation, delivery).").Short('k').StringVar(&c.kind)
	c.Cmd.Flag("note", "Initial note recorded on the order.").StringVar(&c.note)
	c.Cmd.Flag("file", "Order intake YAML file (alternative to flags).").Short('f').StringVar(&c.intakeFile)

	return c
}

func (c CreateCommand) Name() string { return c.Cmd.FullCommand() }

func (c CreateCommand) Run(ctx context.Context) error {
	logger := c.rootCmd.Logger

	cfg := model.OrderConfig{
		Customer:    c.customer,
		Kind:        c.kind,
		InitialNote: c.note,
	}

	// An intake file replaces the flags entirely.
	if c.intakeFile != "" {
		dir, file := filepath.Split(c.intakeFile)
		if dir == "" {
			dir = "."
		}
		loader := storageio.NewIntakeYAMLRepository(os.DirFS(dir))

		var err error
		cfg, err = loader.GetIntake(ctx, file)
		if err != nil {
			return fmt.Errorf("could not load intake file: %w", err)
		}
	}

	repo, err := sqlite.NewRepository(ctx, sqlite.RepositoryConfig{
		DBPath: c.rootCmd.DBPath,
		Logger: logger,
	})
	if err != nil {
		return fmt.Errorf("could not create repository: %w", err)
	}

	svc, err := create.NewService(create.ServiceConfig{
		Repository: repo,
		Logger:     logger,
	})
	if err != nil {
		return fmt.Errorf("could not create service: %w", err)
	}

	order, err := svc.Create(ctx, create.CreateOptions{
		Config: cfg,
		Actor:  model.Actor{DisplayName: c.rootCmd.Actor},
	})
	if err != nil {
		return fmt.Errorf("could not create order: %w", err)
	}

	fmt.Fprintln(c.rootCmd.Stdout, order.ID)

	return nil
}
