// Package receipt builds and renders the printed record of a committed
// sale. Amounts are decimal end to end; nothing in here touches floats.
package receipt

import (
	"context"
	"io"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/posworks/counterpoint/internal/checkout"
	"github.com/posworks/counterpoint/internal/pos"
)

// Line is one printed receipt entry.
type Line struct {
	UPC       string          `json:"upc"`
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Extended  decimal.Decimal `json:"extended"`
}

// Receipt is the customer-facing record of one committed order.
type Receipt struct {
	OrderID      string          `json:"order_id"`
	CustomerName string          `json:"customer_name"`
	Lines        []Line          `json:"lines"`
	Total        decimal.Decimal `json:"total"`
}

// NameLookup resolves an item's display name from its UPC.
type NameLookup func(ctx context.Context, upc string) (string, error)

// Build assembles a receipt from a committed order and the corrected cart
// it was committed from. Item names come through the lookup; a failed
// lookup falls back to the raw UPC rather than losing the line.
func Build(ctx context.Context, order pos.Order, cc *checkout.CorrectedCart, customerName string, itemName NameLookup) *Receipt {
	r := &Receipt{
		OrderID:      order.ID,
		CustomerName: customerName,
		Total:        decimal.Zero,
	}

	for _, l := range cc.Lines {
		name, err := itemName(ctx, l.UPC)
		if err != nil {
			name = l.UPC
		}

		extended := l.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
		r.Lines = append(r.Lines, Line{
			UPC:       l.UPC,
			Name:      name,
			Quantity:  l.Quantity,
			UnitPrice: l.Price,
			Extended:  extended,
		})
		r.Total = r.Total.Add(extended)
	}

	return r
}

// Render writes the printed receipt: customer header, one row per line
// with unit price and quantity, and the grand total.
func (r *Receipt) Render(w io.Writer) error {
	p := message.NewPrinter(language.AmericanEnglish)

	if _, err := p.Fprintf(w, "Customer: %s\n", r.CustomerName); err != nil {
		return err
	}
	if _, err := p.Fprintf(w, "\n\t %-10s%-10s%s\n", "Price", "Quantity", "Item"); err != nil {
		return err
	}
	for _, l := range r.Lines {
		if _, err := p.Fprintf(w, "\t %-10s%-10d%s\n", l.UnitPrice.StringFixed(2), l.Quantity, l.Name); err != nil {
			return err
		}
	}
	if _, err := p.Fprintf(w, "\n\tTotal: %s\n", r.Total.StringFixed(2)); err != nil {
		return err
	}

	return nil
}
