package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"enterprise-registry/internal/config"
	"enterprise-registry/internal/datastore"
	"enterprise-registry/internal/logging"
)

// OpenFunc opens the data store a command runs against.
type OpenFunc func(ctx context.Context, cfg datastore.Config, log logrus.FieldLogger) (datastore.DataStore, error)

// App is the state shared by every command of one invocation.
type App struct {
	Out    io.Writer
	ErrOut io.Writer
	Open   OpenFunc

	configPath string
	ds         datastore.DataStore
	log        *logrus.Logger
}

// NewApp returns an App writing to stdout/stderr and opening the configured
// PostgreSQL store.
func NewApp() *App {
	return &App{Out: os.Stdout, ErrOut: os.Stderr, Open: datastore.NewDataStore}
}

// Store returns the data store opened for the running command.
func (a *App) Store() datastore.DataStore { return a.ds }

// RootCommand builds the registry command tree.
func (a *App) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "registry",
		Short: "Enterprise registry: enterprises, products, assortments, sales departments and bank details",
		Long: `Manage the enterprise registry stored in PostgreSQL.

The connection string is taken from --db, REGISTRY_DB_CONN_STRING,
DB_CONN_STRING or the config file, in that order.

Examples:
  # Create the schema and seed the lookup tables
  registry init-db --seed

  # Register an enterprise
  registry enterprise create --name "Acme" --legal-form 1 --ownership-form 1 \
      --address "1 Main St" --inn 7701234567

  # Put a product into its assortment at a wholesale price
  registry assortment add 1 1 7.50`,
		SilenceUsage:      true,
		PersistentPreRunE: a.open,
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return a.close()
		},
	}
	root.SetOut(a.Out)
	root.SetErr(a.ErrOut)

	pf := root.PersistentFlags()
	pf.StringVar(&a.configPath, "config", "", "Config file (yaml, toml or json)")
	pf.String("db", "", "Database connection string (overrides env var)")
	pf.String("log-level", "", "Log level (debug, info, warn, error)")
	pf.String("log-format", "", "Log format (text or json)")

	root.AddCommand(
		a.initDBCommand(),
		a.enterpriseCommand(),
		a.productCommand(),
		a.assortmentCommand(),
		a.salesCommand(),
		a.bankCommand(),
		a.dictionaryCommand(),
		a.dumpCommand(),
	)
	return root
}

func (a *App) open(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(a.configPath, cmd.Flags())
	if err != nil {
		return err
	}

	logger, err := logging.New(cfg.Log.Level, cfg.Log.Format, a.ErrOut)
	if err != nil {
		return err
	}
	a.log = logger

	ds, err := a.Open(cmd.Context(), cfg.DataStore, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize data store: %w", err)
	}
	a.ds = ds
	return nil
}

func (a *App) close() error {
	if a.ds == nil {
		return nil
	}
	err := a.ds.Close()
	a.ds = nil
	return err
}

// Execute runs the command tree with args and returns the process exit code.
func (a *App) Execute(ctx context.Context, args []string) int {
	root := a.RootCommand()
	root.SetArgs(args)
	if err := root.ExecuteContext(ctx); err != nil {
		// PersistentPostRunE does not run after a failing RunE.
		_ = a.close()
		fmt.Fprintf(a.ErrOut, "Command failed: %v\n", err)
		return 1
	}
	return 0
}
