package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"enterprise-registry/internal/entities"
	"enterprise-registry/internal/gateway"
)

func (a *App) initDBCommand() *cobra.Command {
	var seed bool

	cmd := &cobra.Command{
		Use:   "init-db",
		Short: "Create the registry tables if they do not exist",
		Long: `Create the lookup tables (legal forms, ownership forms, product categories,
delivery terms) and the entity tables in dependency order. Safe to run again.

Examples:
  # Schema only
  registry init-db

  # Schema plus the default lookup entries
  registry init-db --seed`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.ds.Bootstrap(cmd.Context()); err != nil {
				return fmt.Errorf("failed to initialize database: %w", err)
			}
			if seed {
				if err := a.ds.SeedDictionaries(cmd.Context()); err != nil {
					return fmt.Errorf("failed to seed dictionaries: %w", err)
				}
			}
			fmt.Fprintln(a.Out, "Database initialized successfully.")
			return nil
		},
	}
	cmd.Flags().BoolVar(&seed, "seed", false, "Insert the default dictionary entries")
	return cmd
}

func (a *App) dictionaryCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dictionary",
		Short: "Inspect the lookup tables",
	}

	names := make([]string, len(gateway.Dictionaries))
	for i, d := range gateway.Dictionaries {
		names[i] = d.Name
	}

	list := &cobra.Command{
		Use:       "list <name>",
		Short:     "List a lookup table: " + strings.Join(names, ", "),
		Args:      cobra.ExactArgs(1),
		ValidArgs: names,
		RunE: func(cmd *cobra.Command, args []string) error {
			d, ok := gateway.DictionaryByName(args[0])
			if !ok {
				return fmt.Errorf("unknown dictionary %q, want one of: %s", args[0], strings.Join(names, ", "))
			}
			entries, err := a.ds.ListDictionary(cmd.Context(), d)
			if err != nil {
				return fmt.Errorf("failed to list %s: %w", d.Name, err)
			}
			return printPage(a.Out, entries, pageFlags{}, "No entries found.", "ID\tLABEL",
				func(e entities.DictionaryEntry) []interface{} {
					return []interface{}{e.ID, e.Label}
				})
		},
	}

	cmd.AddCommand(list)
	return cmd
}

func (a *App) dumpCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "dump",
		Short: "Write the registry as a replayable SQL script",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if output == "" || output == "-" {
				return a.ds.ExportSQL(cmd.Context(), a.Out)
			}

			f, err := os.Create(output)
			if err != nil {
				return fmt.Errorf("failed to create %s: %w", output, err)
			}
			w := bufio.NewWriter(f)
			if err := a.ds.ExportSQL(cmd.Context(), w); err != nil {
				f.Close()
				return fmt.Errorf("failed to export: %w", err)
			}
			if err := w.Flush(); err != nil {
				f.Close()
				return fmt.Errorf("failed to write %s: %w", output, err)
			}
			if err := f.Close(); err != nil {
				return fmt.Errorf("failed to close %s: %w", output, err)
			}
			fmt.Fprintf(a.Out, "Registry exported to %s\n", output)
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "File to write (default stdout)")
	return cmd
}
