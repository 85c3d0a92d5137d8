package commands

import (
	"context"
	"fmt"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/tablekit/tablekit/internal/cli/config"
	"github.com/tablekit/tablekit/internal/cli/ui"
	"github.com/tablekit/tablekit/internal/cli/watch"
	"github.com/tablekit/tablekit/typegen"
)

var (
	typegenSchemaPath string
	typegenName       string
	typegenTables     []string
	typegenOut        string
	typegenWatch      bool
)

// NewTypegenCommand creates the typegen command.
func NewTypegenCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "typegen [schema-path]",
		Short: "Generate type declarations from a SQL schema script",
		Long: `Generate a type declaration from a SQL schema script.

The script runs against a disposable in-memory SQLite instance; only
its column metadata is read. The resulting declaration lists every
column with its base type (number or string) and nullability.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runTypegen,
	}

	cmd.Flags().StringVarP(&typegenSchemaPath, "schema", "s", "", "Path to schema script")
	cmd.Flags().StringVarP(&typegenName, "name", "n", "", "Name of the emitted interface")
	cmd.Flags().StringArrayVarP(&typegenTables, "table", "t", nil, "Restrict output to a table (repeatable)")
	cmd.Flags().StringVarP(&typegenOut, "out", "o", "", "Output file (default stdout)")
	cmd.Flags().BoolVarP(&typegenWatch, "watch", "w", false, "Watch the schema script and regenerate on change")

	return cmd
}

func runTypegen(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	schemaPath := cfg.SchemaPath
	if typegenSchemaPath != "" {
		schemaPath = typegenSchemaPath
	}
	if len(args) > 0 {
		schemaPath = args[0]
	}

	name := cfg.InterfaceName
	if typegenName != "" {
		name = typegenName
	}

	out := cfg.OutputPath
	if typegenOut != "" {
		out = typegenOut
	}

	generate := func() error {
		return generateTypes(cmd.Context(), schemaPath, name, out)
	}

	if typegenWatch {
		ui.PrintHeader("tablekit", "typegen --watch")
		w, err := watch.New(schemaPath, generate)
		if err != nil {
			return err
		}
		if err := w.Start(); err != nil {
			return err
		}
		defer w.Stop()
		ui.PrintInfo("Watching %s, press Ctrl+C to stop", schemaPath)
		<-cmd.Context().Done()
		return nil
	}

	return generate()
}

func generateTypes(ctx context.Context, schemaPath, name, out string) error {
	script, err := afero.ReadFile(config.AppFs, schemaPath)
	if err != nil {
		return fmt.Errorf("failed to read schema script: %w", err)
	}

	decl, err := typegen.Generate(ctx, string(script), typegen.Options{
		Name:       name,
		TableNames: typegenTables,
	})
	if err != nil {
		return err
	}

	if out == "" {
		fmt.Print(decl)
		return nil
	}
	if err := afero.WriteFile(config.AppFs, out, []byte(decl), 0644); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	ui.PrintSuccess("Wrote %s", out)
	return nil
}
