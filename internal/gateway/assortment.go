package gateway

import (
	"context"

	"enterprise-registry/internal/entities"
	"enterprise-registry/internal/store"
)

// EnterpriseProductSchema is the many-to-many link between enterprise and
// product. Deleting either side removes the link.
var EnterpriseProductSchema = Schema{
	Table:   "enterprise_product",
	Alias:   "ep",
	Key:     []string{"enterprise_id", "product_id"},
	Columns: []string{"wholesale_price"},
	DDL: `CREATE TABLE IF NOT EXISTS enterprise_product (
	enterprise_id INTEGER NOT NULL REFERENCES enterprise(enterprise_id) ON DELETE CASCADE,
	product_id INTEGER NOT NULL REFERENCES product(product_id) ON DELETE CASCADE,
	wholesale_price NUMERIC(10,2),
	PRIMARY KEY (enterprise_id, product_id)
)`,
	Select: `SELECT ep.enterprise_id, ep.product_id,
	COALESCE(ep.wholesale_price, 0) AS wholesale_price
FROM enterprise_product ep`,
}

// EnterpriseProductGateway reads and writes assortment links.
type EnterpriseProductGateway struct {
	*Gateway[entities.EnterpriseProduct]
}

// NewEnterpriseProductGateway creates an EnterpriseProductGateway over conn.
func NewEnterpriseProductGateway(conn *store.Conn) *EnterpriseProductGateway {
	return &EnterpriseProductGateway{New[entities.EnterpriseProduct](conn, EnterpriseProductSchema)}
}

// FindByEnterprise lists the links of one enterprise, ordered by product id.
func (g *EnterpriseProductGateway) FindByEnterprise(ctx context.Context, enterpriseID int64) ([]entities.EnterpriseProduct, error) {
	return g.FindAllBy(ctx, "enterprise_id", enterpriseID)
}

// FindByProduct lists the enterprises carrying one product.
func (g *EnterpriseProductGateway) FindByProduct(ctx context.Context, productID int64) ([]entities.EnterpriseProduct, error) {
	return g.FindAllBy(ctx, "product_id", productID)
}

// Remove deletes the link identified by the composite key.
func (g *EnterpriseProductGateway) Remove(ctx context.Context, enterpriseID, productID int64) error {
	return g.Delete(ctx, enterpriseID, productID)
}
