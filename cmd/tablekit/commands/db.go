package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tablekit/tablekit/internal/adapters/database"
	"github.com/tablekit/tablekit/internal/adapters/database/mysql"
	"github.com/tablekit/tablekit/internal/adapters/database/postgres"
	"github.com/tablekit/tablekit/internal/adapters/database/sqlite"
	"github.com/tablekit/tablekit/internal/cli/config"
	"github.com/tablekit/tablekit/internal/cli/ui"
	"github.com/tablekit/tablekit/query/sqlgen"
	"github.com/tablekit/tablekit/typegen"
)

var (
	dbProvider string
	dbURL      string
	pullName   string
	pullTables []string
)

// NewDBCommand creates the db command group.
func NewDBCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "db",
		Short: "Inspect a live database",
	}

	cmd.PersistentFlags().StringVar(&dbProvider, "provider", "", "Database provider (sqlite, postgres, mysql)")
	cmd.PersistentFlags().StringVar(&dbURL, "url", "", "Database connection URL (default $DATABASE_URL)")

	ping := &cobra.Command{
		Use:   "ping",
		Short: "Check database connectivity",
		RunE:  runDBPing,
	}

	pull := &cobra.Command{
		Use:   "pull",
		Short: "Generate type declarations from a live SQLite database",
		RunE:  runDBPull,
	}
	pull.Flags().StringVarP(&pullName, "name", "n", "", "Name of the emitted interface")
	pull.Flags().StringArrayVarP(&pullTables, "table", "t", nil, "Restrict output to a table (repeatable)")

	cmd.AddCommand(ping)
	cmd.AddCommand(pull)
	return cmd
}

func openAdapter(cfg *config.Config) (database.Adapter, error) {
	provider := cfg.Provider
	if dbProvider != "" {
		provider = dbProvider
	}
	url := cfg.DatabaseURL
	if dbURL != "" {
		url = dbURL
	}
	if url == "" {
		return nil, fmt.Errorf("no database URL; pass --url or set DATABASE_URL")
	}

	dbCfg := database.Config{
		Provider:       provider,
		URL:            url,
		MaxConnections: 10,
		ConnectTimeout: 10,
	}

	switch provider {
	case "sqlite", "sqlite3":
		return sqlite.New(dbCfg), nil
	case "postgres", "postgresql":
		return postgres.New(dbCfg), nil
	case "mysql":
		return mysql.New(dbCfg), nil
	default:
		return nil, fmt.Errorf("unsupported provider: %s", provider)
	}
}

func runDBPing(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	adapter, err := openAdapter(cfg)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if err := adapter.Connect(ctx); err != nil {
		ui.PrintError("Connection failed: %v", err)
		return err
	}
	defer adapter.Disconnect(ctx)

	if err := adapter.Ping(ctx); err != nil {
		ui.PrintError("Ping failed: %v", err)
		return err
	}

	ui.PrintSuccess("Database is reachable (%s)", adapter.Dialect())
	return nil
}

func runDBPull(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	adapter, err := openAdapter(cfg)
	if err != nil {
		return err
	}
	// Schema introspection uses SQLite PRAGMA queries.
	if adapter.Dialect() != sqlgen.SQLite {
		return fmt.Errorf("db pull supports sqlite only, got %s", adapter.Dialect())
	}

	ctx := cmd.Context()
	if err := adapter.Connect(ctx); err != nil {
		return err
	}
	defer adapter.Disconnect(ctx)

	name := cfg.InterfaceName
	if pullName != "" {
		name = pullName
	}

	decl, err := typegen.FromDB(ctx, adapter.DB(), typegen.Options{
		Name:       name,
		TableNames: pullTables,
	})
	if err != nil {
		return err
	}

	fmt.Print(decl)
	return nil
}
