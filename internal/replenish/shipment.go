package replenish

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/posworks/counterpoint/internal/pos"
	"github.com/posworks/counterpoint/internal/store"
)

// ShipmentDateFormat is the vendor-facing date layout, MM/DD/YYYY.
const ShipmentDateFormat = "01/02/2006"

// ErrPastDate reports a shipment date strictly before today.
var ErrPastDate = errors.New("shipment date is in the past")

// ParseShipmentDate parses a vendor-entered MM/DD/YYYY date.
func ParseShipmentDate(s string) (time.Time, error) {
	t, err := time.Parse(ShipmentDateFormat, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid shipment date %q (want MM/DD/YYYY): %w", s, err)
	}
	return t, nil
}

// Closer is the shipment-entry workflow: the only writer of a reorder
// request's shipment date. Closing a request turns it from "open" into
// "fulfillable once the date arrives".
type Closer struct {
	store *store.Store
	clock pos.Clock
}

// NewCloser creates a shipment closer bound to a store handle.
func NewCloser(s *store.Store, clock pos.Clock) *Closer {
	return &Closer{store: s, clock: clock}
}

// Rejection records a request id that could not be closed and why.
type Rejection struct {
	RequestID string
	Reason    string
}

// CloseReport lists the outcome per request id of one shipment entry.
type CloseReport struct {
	Closed   []string
	Rejected []Rejection
}

// Close sets the shipment date on each of the given open requests for the
// acting vendor.
//
// The date applies to the whole shipment and must not be before today
// (day granularity); a past date fails the call with ErrPastDate before
// any request is touched. Request ids are then handled individually: an
// id that is unknown, already closed, or assigned to another vendor is
// rejected without aborting the rest of the batch.
func (c *Closer) Close(ctx context.Context, vendorID string, date time.Time, requestIDs []string) (*CloseReport, error) {
	if pos.DateOnly(date).Before(pos.Today(c.clock)) {
		return nil, fmt.Errorf("close shipment for vendor %s: %w", vendorID, ErrPastDate)
	}

	report := &CloseReport{}
	for _, id := range requestIDs {
		ok, err := c.store.SetShipmentDate(ctx, id, vendorID, date)
		if err != nil {
			report.Rejected = append(report.Rejected, Rejection{RequestID: id, Reason: err.Error()})
			continue
		}
		if !ok {
			report.Rejected = append(report.Rejected, Rejection{
				RequestID: id,
				Reason:    "not an open request for this vendor",
			})
			continue
		}
		report.Closed = append(report.Closed, id)
	}

	return report, nil
}
