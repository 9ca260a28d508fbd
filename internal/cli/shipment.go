package cli

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/posworks/counterpoint/internal/pos"
	"github.com/posworks/counterpoint/internal/replenish"
	"github.com/posworks/counterpoint/internal/store"
)

// ShipmentOptions holds flags for the shipment command.
type ShipmentOptions struct {
	*RootOptions
	Database string
	VendorID string
	Date     string

	Clock pos.Clock
}

// NewShipmentCommand creates the shipment command.
func NewShipmentCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ShipmentOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "shipment REQUEST_ID...",
		Short: "Close reorder requests with a shipment date",
		Long: `Record that a vendor shipment covering the given reorder requests will
arrive on --date. The date applies to the whole shipment and may not be in
the past. Each request id must be an open request assigned to the acting
vendor; ids that are not are rejected individually.`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShipment(opts, args, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite database (required)")
	cmd.Flags().StringVar(&opts.VendorID, "vendor", "", "acting vendor id (required)")
	cmd.Flags().StringVar(&opts.Date, "date", "", "shipment date, MM/DD/YYYY (required)")
	_ = cmd.MarkFlagRequired("db")
	_ = cmd.MarkFlagRequired("vendor")
	_ = cmd.MarkFlagRequired("date")

	return cmd
}

func runShipment(opts *ShipmentOptions, args []string, cmd *cobra.Command) error {
	date, err := replenish.ParseShipmentDate(opts.Date)
	if err != nil {
		return WrapExitError(ExitCommandError, "invalid shipment date", err)
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

	ctx := cmd.Context()
	if err := requireExists(ctx, "vendor", opts.VendorID, s.VendorExists); err != nil {
		return err
	}

	clock := opts.Clock
	if clock == nil {
		clock = pos.SystemClock{}
	}

	report, err := replenish.NewCloser(s, clock).Close(ctx, opts.VendorID, date, args)
	if errors.Is(err, replenish.ErrPastDate) {
		return WrapExitError(ExitFailure, "shipment date is in the past", err)
	}
	if err != nil {
		return WrapExitError(ExitFailure, "shipment entry failed", err)
	}

	out := cmd.OutOrStdout()
	formatter := &OutputFormatter{Format: opts.Format, Writer: out, Verbose: opts.Verbose}
	if formatter.JSON() {
		if err := formatter.Success(report); err != nil {
			return err
		}
	} else {
		for _, id := range report.Closed {
			fmt.Fprintf(out, "Closed %s (arrives %s)\n", id, opts.Date)
		}
		for _, rej := range report.Rejected {
			fmt.Fprintf(out, "Rejected %s: %s\n", rej.RequestID, rej.Reason)
		}
	}

	if len(report.Closed) == 0 {
		return NewExitError(ExitFailure, "no requests were closed")
	}
	return nil
}
