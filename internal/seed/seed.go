// Package seed loads reference data (stores, customers, vendors, items,
// inventory) from YAML documents into the store. Documents are validated
// against an embedded CUE schema before anything is written, so a
// malformed file can never half-apply.
package seed

import (
	"context"
	_ "embed"
	"fmt"
	"os"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/posworks/counterpoint/internal/pos"
	"github.com/posworks/counterpoint/internal/store"
)

//go:embed schema.cue
var schemaSource string

// Seed is one decoded, validated seed document.
type Seed struct {
	Stores    []StoreRow     `yaml:"stores"`
	Customers []CustomerRow  `yaml:"customers"`
	Vendors   []VendorRow    `yaml:"vendors"`
	Items     []ItemRow      `yaml:"items"`
	Inventory []InventoryRow `yaml:"inventory"`
}

type StoreRow struct {
	ID   string `yaml:"id"`
	Name string `yaml:"name"`
	City string `yaml:"city"`
}

type CustomerRow struct {
	ID        string `yaml:"id"`
	FirstName string `yaml:"first_name"`
	LastName  string `yaml:"last_name"`
	Phone     string `yaml:"phone"`
}

type VendorRow struct {
	ID   string `yaml:"id"`
	Name string `yaml:"name"`
}

type ItemRow struct {
	UPC      string `yaml:"upc"`
	Name     string `yaml:"name"`
	Category string `yaml:"category"`
}

type InventoryRow struct {
	UPC      string `yaml:"upc"`
	StoreID  string `yaml:"store_id"`
	Quantity int    `yaml:"quantity"`
	Price    string `yaml:"price"`
}

// Load reads, validates, and decodes a seed file.
func Load(path string) (*Seed, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}
	return Parse(data)
}

// Parse validates a seed document against the embedded schema and decodes
// it. Validation errors carry CUE's field positions.
func Parse(data []byte) (*Seed, error) {
	var generic map[string]any
	if err := yaml.Unmarshal(data, &generic); err != nil {
		return nil, fmt.Errorf("decode seed document: %w", err)
	}

	ctx := cuecontext.New()
	schema := ctx.CompileString(schemaSource)
	if err := schema.Err(); err != nil {
		return nil, fmt.Errorf("compile seed schema: %w", err)
	}
	def := schema.LookupPath(cue.ParsePath("#Seed"))
	if !def.Exists() {
		return nil, fmt.Errorf("seed schema has no #Seed definition")
	}

	unified := def.Unify(ctx.Encode(generic))
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		return nil, fmt.Errorf("invalid seed document: %w", err)
	}

	var doc Seed
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode seed document: %w", err)
	}
	return &doc, nil
}

// Apply upserts the document's rows in foreign-key order. Re-applying the
// same document is a no-op beyond refreshing mutable columns.
func (d *Seed) Apply(ctx context.Context, s *store.Store) error {
	for _, row := range d.Stores {
		if err := s.UpsertStore(ctx, row.ID, row.Name, row.City); err != nil {
			return fmt.Errorf("seed store %s: %w", row.ID, err)
		}
	}
	for _, row := range d.Customers {
		if err := s.UpsertCustomer(ctx, row.ID, row.FirstName, row.LastName, row.Phone); err != nil {
			return fmt.Errorf("seed customer %s: %w", row.ID, err)
		}
	}
	for _, row := range d.Vendors {
		if err := s.UpsertVendor(ctx, row.ID, row.Name); err != nil {
			return fmt.Errorf("seed vendor %s: %w", row.ID, err)
		}
	}
	for _, row := range d.Items {
		category := pos.CategoryItem
		if row.Category != "" {
			var err error
			if category, err = pos.ParseCategory(row.Category); err != nil {
				return fmt.Errorf("seed item %s: %w", row.UPC, err)
			}
		}
		if err := s.UpsertItem(ctx, row.UPC, row.Name, category); err != nil {
			return fmt.Errorf("seed item %s: %w", row.UPC, err)
		}
	}
	for _, row := range d.Inventory {
		price, err := decimal.NewFromString(row.Price)
		if err != nil {
			return fmt.Errorf("seed inventory %s: %w", row.UPC, err)
		}
		if err := s.UpsertInventory(ctx, pos.InventoryRecord{
			UPC:      row.UPC,
			StoreID:  row.StoreID,
			Quantity: row.Quantity,
			Price:    price,
		}); err != nil {
			return fmt.Errorf("seed inventory %s: %w", row.UPC, err)
		}
	}

	return nil
}
