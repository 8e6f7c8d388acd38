package gateway

import (
	"context"

	"enterprise-registry/internal/entities"
	"enterprise-registry/internal/store"
)

// ProductSchema depends on product_category and delivery_terms.
var ProductSchema = Schema{
	Table:  "product",
	Alias:  "p",
	Key:    []string{"product_id"},
	Serial: true,
	Columns: []string{
		"category_id", "name", "shelf_life_days", "delivery_terms_id",
		"retail_price", "purchase_price",
	},
	DDL: `CREATE TABLE IF NOT EXISTS product (
	product_id SERIAL PRIMARY KEY,
	category_id INTEGER NOT NULL REFERENCES product_category(category_id),
	name TEXT NOT NULL,
	shelf_life_days INTEGER,
	delivery_terms_id INTEGER NOT NULL REFERENCES delivery_terms(delivery_terms_id),
	retail_price NUMERIC(10,2),
	purchase_price NUMERIC(10,2)
)`,
	Select: `SELECT p.product_id, p.category_id, p.name,
	COALESCE(p.shelf_life_days, 0) AS shelf_life_days,
	p.delivery_terms_id,
	COALESCE(p.retail_price, 0) AS retail_price,
	COALESCE(p.purchase_price, 0) AS purchase_price,
	COALESCE(pc.name, '') AS category_name,
	COALESCE(dt.description, '') AS delivery_terms_description
FROM product p
LEFT JOIN product_category pc ON p.category_id = pc.category_id
LEFT JOIN delivery_terms dt ON p.delivery_terms_id = dt.delivery_terms_id`,
}

// ProductGateway reads and writes the product table.
type ProductGateway struct {
	*Gateway[entities.Product]
}

// NewProductGateway creates a ProductGateway over conn.
func NewProductGateway(conn *store.Conn) *ProductGateway {
	return &ProductGateway{New[entities.Product](conn, ProductSchema)}
}

// FindByName returns the product with exactly this name, or the zero value.
func (g *ProductGateway) FindByName(ctx context.Context, name string) (entities.Product, error) {
	return g.FindOne(ctx, "name", name)
}
