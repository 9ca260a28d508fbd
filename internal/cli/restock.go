package cli

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/posworks/counterpoint/internal/pos"
	"github.com/posworks/counterpoint/internal/replenish"
	"github.com/posworks/counterpoint/internal/store"
)

// RestockOptions holds flags for the restock command.
type RestockOptions struct {
	*RootOptions
	Database string
	StoreID  string

	Clock pos.Clock
	IDs   pos.IDGenerator
}

// NewRestockCommand creates the restock command.
func NewRestockCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RestockOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "restock",
		Short: "Apply arrived shipments to inventory",
		Long: `Scan the store's reorder requests that have a shipment date, apply
those whose date has arrived (added quantity, request removed), and leave
future shipments pending. Safe to re-run; an applied shipment is never
applied twice.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRestock(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite database (required)")
	cmd.Flags().StringVar(&opts.StoreID, "store", "", "store location id (required)")
	_ = cmd.MarkFlagRequired("db")
	_ = cmd.MarkFlagRequired("store")

	return cmd
}

func runRestock(opts *RestockOptions, cmd *cobra.Command) error {
	s, err := store.Open(opts.Database)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to open database", err)
	}
	defer func() {
		if closeErr := s.Close(); closeErr != nil {
			slog.Error("error closing database", "error", closeErr)
		}
	}()

	ctx := cmd.Context()
	if err := requireExists(ctx, "store", opts.StoreID, s.StoreExists); err != nil {
		return err
	}

	clock := opts.Clock
	if clock == nil {
		clock = pos.SystemClock{}
	}
	ids := opts.IDs
	if ids == nil {
		ids = pos.UUIDv7Generator{}
	}

	trigger := replenish.NewTrigger(s, ids, clock)
	report, err := replenish.NewProcessor(s, clock, trigger).Run(ctx, opts.StoreID)
	if err != nil {
		return WrapExitError(ExitFailure, "restock failed", err)
	}

	out := cmd.OutOrStdout()
	formatter := &OutputFormatter{Format: opts.Format, Writer: out, Verbose: opts.Verbose}
	if formatter.JSON() {
		if err := formatter.Success(report); err != nil {
			return err
		}
	} else {
		for _, f := range report.Fulfilled {
			fmt.Fprintf(out, "Restocked %s: +%d (on hand %d)\n", f.UPC, f.Quantity, f.NewQuantity)
		}
		if report.Pending > 0 {
			fmt.Fprintf(out, "%d shipment(s) not yet due\n", report.Pending)
		}
		for _, re := range report.Errors {
			fmt.Fprintf(out, "Failed request %s: %v\n", re.RequestID, re.Err)
		}
		if len(report.Fulfilled) == 0 && report.Pending == 0 && len(report.Errors) == 0 {
			fmt.Fprintln(out, "Nothing to restock")
		}
	}

	if len(report.Errors) > 0 {
		return NewExitError(ExitFailure, fmt.Sprintf("%d request(s) could not be fulfilled", len(report.Errors)))
	}
	return nil
}
