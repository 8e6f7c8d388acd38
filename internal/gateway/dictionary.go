package gateway

import (
	"context"
	"fmt"

	"enterprise-registry/internal/entities"
	"enterprise-registry/internal/store"
)

// Dictionary is a static lookup table referenced by foreign key. It has no
// CRUD surface beyond being created, seeded and listed.
type Dictionary struct {
	Name        string
	Table       string
	IDColumn    string
	LabelColumn string
}

var (
	LegalForms        = Dictionary{Name: "legal-form", Table: "legal_form", IDColumn: "legal_form_id", LabelColumn: "name"}
	OwnershipForms    = Dictionary{Name: "ownership-form", Table: "ownership_form", IDColumn: "ownership_form_id", LabelColumn: "name"}
	ProductCategories = Dictionary{Name: "product-category", Table: "product_category", IDColumn: "category_id", LabelColumn: "name"}
	DeliveryTerms     = Dictionary{Name: "delivery-terms", Table: "delivery_terms", IDColumn: "delivery_terms_id", LabelColumn: "description"}
)

// Dictionaries lists every lookup table in creation order.
var Dictionaries = []Dictionary{LegalForms, OwnershipForms, ProductCategories, DeliveryTerms}

// DefaultLabels are the entries written by Seed when no labels are given.
var DefaultLabels = map[string][]string{
	LegalForms.Table:        {"LLC", "JSC", "PJSC", "Sole proprietor"},
	OwnershipForms.Table:    {"Private", "State", "Municipal", "Mixed"},
	ProductCategories.Table: {"Food", "Beverages", "Household goods", "Electronics"},
	DeliveryTerms.Table:     {"Pickup", "Supplier delivery", "Courier", "Prepaid shipping"},
}

// DictionaryByName resolves a dictionary by its Name or Table.
func DictionaryByName(name string) (Dictionary, bool) {
	for _, d := range Dictionaries {
		if d.Name == name || d.Table == name {
			return d, true
		}
	}
	return Dictionary{}, false
}

// DDL returns the CREATE TABLE IF NOT EXISTS statement for d.
func (d Dictionary) DDL() string {
	return fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
	%s SERIAL PRIMARY KEY,
	%s TEXT NOT NULL UNIQUE
)`, d.Table, d.IDColumn, d.LabelColumn)
}

// EnsureSchema creates the table if absent.
func (d Dictionary) EnsureSchema(ctx context.Context, conn *store.Conn) error {
	if _, err := conn.Exec(ctx, d.DDL()); err != nil {
		return fmt.Errorf("failed to create table %s: %w", d.Table, err)
	}
	return nil
}

// List returns the entries ordered by id.
func (d Dictionary) List(ctx context.Context, conn *store.Conn) ([]entities.DictionaryEntry, error) {
	query := fmt.Sprintf(`SELECT %s AS id, %s AS label FROM %s ORDER BY %s`,
		d.IDColumn, d.LabelColumn, d.Table, d.IDColumn)

	entries := []entities.DictionaryEntry{}
	if err := conn.Select(ctx, &entries, query); err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", d.Table, err)
	}
	return entries, nil
}

// Seed inserts labels that are not present yet. With no labels it writes
// DefaultLabels for the table.
func (d Dictionary) Seed(ctx context.Context, conn *store.Conn, labels ...string) error {
	if len(labels) == 0 {
		labels = DefaultLabels[d.Table]
	}
	query := fmt.Sprintf(`INSERT INTO %s (%s) VALUES ($1) ON CONFLICT (%s) DO NOTHING`,
		d.Table, d.LabelColumn, d.LabelColumn)

	for _, label := range labels {
		if _, err := conn.Exec(ctx, query, label); err != nil {
			return fmt.Errorf("failed to seed %s %q: %w", d.Table, label, err)
		}
	}
	return nil
}
