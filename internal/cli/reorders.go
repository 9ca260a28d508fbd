package cli

import (
	"fmt"
	"log/slog"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/posworks/counterpoint/internal/pos"
	"github.com/posworks/counterpoint/internal/store"
)

// ReordersOptions holds flags shared by the reorders subcommands.
type ReordersOptions struct {
	*RootOptions
	Database string
	StoreID  string
	VendorID string
}

// NewReordersCommand creates the reorders command group.
func NewReordersCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reorders",
		Short: "Inspect and assign open reorder requests",
	}

	cmd.AddCommand(newReordersListCommand(rootOpts))
	cmd.AddCommand(newReordersAssignCommand(rootOpts))

	return cmd
}

func newReordersListCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ReordersOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List open reorder requests",
		Long: `List open reorder requests for one store location (--store) or one
vendor (--vendor). Requests listed by vendor are the ones that vendor can
close with the shipment command.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReordersList(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite database (required)")
	cmd.Flags().StringVar(&opts.StoreID, "store", "", "list requests for this store")
	cmd.Flags().StringVar(&opts.VendorID, "vendor", "", "list requests assigned to this vendor")
	_ = cmd.MarkFlagRequired("db")
	cmd.MarkFlagsOneRequired("store", "vendor")
	cmd.MarkFlagsMutuallyExclusive("store", "vendor")

	return cmd
}

func runReordersList(opts *ReordersOptions, cmd *cobra.Command) error {
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
	var reqs []pos.ReorderRequest
	if opts.StoreID != "" {
		if err := requireExists(ctx, "store", opts.StoreID, s.StoreExists); err != nil {
			return err
		}
		reqs, err = s.ListOpenByStore(ctx, opts.StoreID)
	} else {
		if err := requireExists(ctx, "vendor", opts.VendorID, s.VendorExists); err != nil {
			return err
		}
		reqs, err = s.ListOpenByVendor(ctx, opts.VendorID)
	}
	if err != nil {
		return WrapExitError(ExitFailure, "failed to list reorder requests", err)
	}

	out := cmd.OutOrStdout()
	formatter := &OutputFormatter{Format: opts.Format, Writer: out, Verbose: opts.Verbose}
	if formatter.JSON() {
		return formatter.Success(reqs)
	}

	if len(reqs) == 0 {
		fmt.Fprintln(out, "No open reorder requests")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "REQUEST\tUPC\tQTY\tSTORE\tVENDOR\tCREATED")
	for _, req := range reqs {
		vendor := req.VendorID
		if vendor == "" {
			vendor = "-"
		}
		fmt.Fprintf(w, "%s\t%s\t%d\t%s\t%s\t%s\n",
			req.ID, req.UPC, req.Quantity, req.StoreID, vendor, req.CreatedAt.Format("2006-01-02"))
	}
	return w.Flush()
}

func newReordersAssignCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ReordersOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "assign REQUEST_ID VENDOR_ID",
		Short: "Assign an open reorder request to a vendor",
		Long: `Resolve the vendor of an open, unassigned reorder request. Once
assigned, the request shows up in that vendor's list and only that vendor
can close it.`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReordersAssign(opts, args[0], args[1], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite database (required)")
	_ = cmd.MarkFlagRequired("db")

	return cmd
}

func runReordersAssign(opts *ReordersOptions, requestID, vendorID string, cmd *cobra.Command) error {
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
	if err := requireExists(ctx, "vendor", vendorID, s.VendorExists); err != nil {
		return err
	}

	ok, err := s.AssignVendor(ctx, requestID, vendorID)
	if err != nil {
		return WrapExitError(ExitFailure, "failed to assign vendor", err)
	}
	if !ok {
		return NewExitError(ExitFailure,
			fmt.Sprintf("request %s is not an open, unassigned request", requestID))
	}

	formatter := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout(), Verbose: opts.Verbose}
	return formatter.Success(fmt.Sprintf("Assigned %s to %s", requestID, vendorID))
}
