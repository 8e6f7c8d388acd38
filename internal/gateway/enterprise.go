package gateway

import (
	"context"

	"enterprise-registry/internal/entities"
	"enterprise-registry/internal/store"
)

// EnterpriseSchema depends on legal_form and ownership_form.
var EnterpriseSchema = Schema{
	Table:   "enterprise",
	Alias:   "e",
	Key:     []string{"enterprise_id"},
	Serial:  true,
	Columns: []string{"name", "legal_form_id", "ownership_form_id", "postal_address", "inn"},
	DDL: `CREATE TABLE IF NOT EXISTS enterprise (
	enterprise_id SERIAL PRIMARY KEY,
	name TEXT NOT NULL,
	legal_form_id INTEGER NOT NULL REFERENCES legal_form(legal_form_id),
	ownership_form_id INTEGER NOT NULL REFERENCES ownership_form(ownership_form_id),
	postal_address TEXT NOT NULL,
	inn TEXT NOT NULL UNIQUE
)`,
	Select: `SELECT e.enterprise_id, e.name, e.legal_form_id, e.ownership_form_id,
	e.postal_address, e.inn,
	COALESCE(lf.name, '') AS legal_form_name,
	COALESCE(owf.name, '') AS ownership_form_name
FROM enterprise e
LEFT JOIN legal_form lf ON e.legal_form_id = lf.legal_form_id
LEFT JOIN ownership_form owf ON e.ownership_form_id = owf.ownership_form_id`,
}

// EnterpriseGateway reads and writes the enterprise table.
type EnterpriseGateway struct {
	*Gateway[entities.Enterprise]
}

// NewEnterpriseGateway creates an EnterpriseGateway over conn.
func NewEnterpriseGateway(conn *store.Conn) *EnterpriseGateway {
	return &EnterpriseGateway{New[entities.Enterprise](conn, EnterpriseSchema)}
}

// FindByInn returns the enterprise with the given tax id, or the zero value.
func (g *EnterpriseGateway) FindByInn(ctx context.Context, inn string) (entities.Enterprise, error) {
	return g.FindOne(ctx, "inn", inn)
}
