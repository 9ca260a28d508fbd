package replenish

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/posworks/counterpoint/internal/pos"
	"github.com/posworks/counterpoint/internal/store"
)

// Processor applies arrived shipments back into a store's inventory.
//
// A run scans the location's reorder requests that have a shipment date,
// fulfills those whose date has arrived (day granularity), and leaves the
// rest for a later run. Each fulfillment adds the request's quantity to
// inventory and deletes the request in one transaction, so re-running the
// processor never double-applies a shipment.
type Processor struct {
	store   *store.Store
	clock   pos.Clock
	trigger *Trigger
}

// NewProcessor creates a restock processor. The trigger is re-evaluated on
// every restock adjustment, same as on checkout decrements.
func NewProcessor(s *store.Store, clock pos.Clock, trigger *Trigger) *Processor {
	return &Processor{store: s, clock: clock, trigger: trigger}
}

// Fulfillment is one applied shipment within a restock run.
type Fulfillment struct {
	RequestID   string
	UPC         string
	Quantity    int
	NewQuantity int
}

// RequestError records a request that could not be fulfilled this run.
type RequestError struct {
	RequestID string
	Err       error
}

// Report summarizes one restock run.
type Report struct {
	Fulfilled []Fulfillment
	Pending   int // shipment date set but still in the future
	Errors    []RequestError
}

// Run processes all fulfillable reorder requests for a location.
//
// Errors on individual requests (for example a vanished inventory record)
// are recorded in the report and do not stop the batch. The returned error
// is non-nil only when the request listing itself fails.
func (p *Processor) Run(ctx context.Context, storeID string) (*Report, error) {
	reqs, err := p.store.ListShippableByStore(ctx, storeID)
	if err != nil {
		return nil, fmt.Errorf("restock %s: %w", storeID, err)
	}

	today := pos.Today(p.clock)
	report := &Report{}

	for _, req := range reqs {
		if !req.Fulfillable(today) {
			report.Pending++
			continue
		}

		change, err := p.store.FulfillRequest(ctx, req)
		if err != nil {
			slog.Error("restock request failed",
				"error", err,
				"request_id", req.ID,
				"upc", req.UPC,
				"store_id", storeID,
			)
			report.Errors = append(report.Errors, RequestError{RequestID: req.ID, Err: err})
			continue
		}

		slog.Info("restock applied",
			"request_id", req.ID,
			"upc", req.UPC,
			"quantity", req.Quantity,
			"new_quantity", change.NewQuantity,
			"store_id", storeID,
		)
		report.Fulfilled = append(report.Fulfilled, Fulfillment{
			RequestID:   req.ID,
			UPC:         req.UPC,
			Quantity:    req.Quantity,
			NewQuantity: change.NewQuantity,
		})

		// Restock is still an inventory mutation; a shipment too small to
		// lift a negative quantity above zero reopens a request.
		if err := p.trigger.Fire(ctx, change); err != nil {
			slog.Error("replenishment trigger failed after restock",
				"error", err,
				"request_id", req.ID,
				"upc", req.UPC,
			)
		}
	}

	return report, nil
}
