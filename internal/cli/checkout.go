package cli

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/posworks/counterpoint/internal/checkout"
	"github.com/posworks/counterpoint/internal/pos"
	"github.com/posworks/counterpoint/internal/receipt"
	"github.com/posworks/counterpoint/internal/replenish"
	"github.com/posworks/counterpoint/internal/store"
)

// CheckoutOptions holds flags for the checkout command.
type CheckoutOptions struct {
	*RootOptions
	Database   string
	StoreID    string
	CustomerID string

	// Clock and IDs allow overriding the time and identity sources (for
	// testing). Nil defaults to the system clock and UUIDv7.
	Clock pos.Clock
	IDs   pos.IDGenerator
}

// NewCheckoutCommand creates the checkout command.
func NewCheckoutCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &CheckoutOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "checkout UPC=QTY...",
		Short: "Ring up a sale",
		Long: `Build a cart from UPC=QTY arguments, clamp it against the store's
live inventory, and commit the sale atomically. Entries that cannot be
satisfied at all are dropped; entries with less on hand than requested are
reduced. A receipt for what was actually sold is printed.

Example:
  counterpoint checkout --db ./pos.db --store store-1 --customer cust-1 00000000000001=2`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheckout(opts, args, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite database (required)")
	cmd.Flags().StringVar(&opts.StoreID, "store", "", "store location id (required)")
	cmd.Flags().StringVar(&opts.CustomerID, "customer", "", "customer id (required)")
	_ = cmd.MarkFlagRequired("db")
	_ = cmd.MarkFlagRequired("store")
	_ = cmd.MarkFlagRequired("customer")

	return cmd
}

func runCheckout(opts *CheckoutOptions, args []string, cmd *cobra.Command) error {
	cart, err := parseCartArgs(args)
	if err != nil {
		return WrapExitError(ExitCommandError, "invalid cart entry", err)
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
	if err := requireExists(ctx, "store", opts.StoreID, s.StoreExists); err != nil {
		return err
	}
	if err := requireExists(ctx, "customer", opts.CustomerID, s.CustomerExists); err != nil {
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

	cc := checkout.NewReconciler(s, opts.StoreID).Reconcile(ctx, cart)

	trigger := replenish.NewTrigger(s, ids, clock)
	manager := checkout.NewManager(s, ids, clock, trigger)
	order, err := manager.Commit(ctx, cc, opts.StoreID, opts.CustomerID)
	if errors.Is(err, checkout.ErrEmptyCart) {
		return WrapExitError(ExitFailure, "nothing to sell: no cart entry could be satisfied", err)
	}
	if err != nil {
		return WrapExitError(ExitFailure, "checkout failed", err)
	}

	customerName, err := s.CustomerName(ctx, opts.CustomerID)
	if err != nil {
		return WrapExitError(ExitFailure, "failed to resolve customer", err)
	}
	rcpt := receipt.Build(ctx, order, cc, customerName, s.ItemName)

	out := cmd.OutOrStdout()
	formatter := &OutputFormatter{Format: opts.Format, Writer: out, Verbose: opts.Verbose}
	if formatter.JSON() {
		return formatter.Success(struct {
			Receipt *receipt.Receipt       `json:"receipt"`
			Dropped []checkout.DroppedLine `json:"dropped,omitempty"`
		}{Receipt: rcpt, Dropped: cc.Dropped})
	}

	for _, d := range cc.Dropped {
		fmt.Fprintf(out, "note: %s is unavailable, dropped from sale\n", d.UPC)
	}
	for _, l := range cc.Lines {
		if l.Clamped() {
			fmt.Fprintf(out, "note: %s reduced to %d (requested %d)\n", l.UPC, l.Quantity, l.Requested)
		}
	}
	return rcpt.Render(out)
}

// parseCartArgs builds a cart from UPC=QTY arguments.
func parseCartArgs(args []string) (*pos.Cart, error) {
	cart := pos.NewCart()
	for _, arg := range args {
		upc, qtyStr, ok := strings.Cut(arg, "=")
		if !ok || upc == "" {
			return nil, fmt.Errorf("%q: want UPC=QTY", arg)
		}
		qty, err := strconv.Atoi(qtyStr)
		if err != nil {
			return nil, fmt.Errorf("%q: quantity is non-numeric", arg)
		}
		if qty <= 0 {
			return nil, fmt.Errorf("%q: quantity must be positive", arg)
		}
		cart.Add(upc, qty)
	}
	return cart, nil
}
