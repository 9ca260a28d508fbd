package cli

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/posworks/counterpoint/internal/seed"
	"github.com/posworks/counterpoint/internal/store"
)

// SeedOptions holds flags for the seed command.
type SeedOptions struct {
	*RootOptions
	Database string
}

// NewSeedCommand creates the seed command.
func NewSeedCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &SeedOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "seed FILE",
		Short: "Load reference data from a YAML seed file",
		Long: `Validate a YAML seed document (stores, customers, vendors, items,
inventory) against the embedded schema and upsert its rows. A document
that fails validation is rejected before anything is written.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSeed(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite database (required)")
	_ = cmd.MarkFlagRequired("db")

	return cmd
}

func runSeed(opts *SeedOptions, path string, cmd *cobra.Command) error {
	doc, err := seed.Load(path)
	if err != nil {
		return WrapExitError(ExitCommandError, "invalid seed file", err)
	}

	s, err := store.Open(opts.Database)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to open database", err)
	}
	defer func() {
		if closeErr := s.Close(); closeErr != nil {
			slog.Error("error closing database", "error", closeErr)
		}
	}()

	if err := doc.Apply(cmd.Context(), s); err != nil {
		return WrapExitError(ExitFailure, "failed to apply seed file", err)
	}

	formatter := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout(), Verbose: opts.Verbose}
	return formatter.Success(fmt.Sprintf(
		"Seeded %d store(s), %d customer(s), %d vendor(s), %d item(s), %d inventory record(s)",
		len(doc.Stores), len(doc.Customers), len(doc.Vendors), len(doc.Items), len(doc.Inventory)))
}
