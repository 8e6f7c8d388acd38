package gateway

import (
	"enterprise-registry/internal/entities"
	"enterprise-registry/internal/store"
)

// SalesDepartmentSchema allows one department per enterprise.
var SalesDepartmentSchema = Schema{
	Table:  "sales_department",
	Alias:  "sd",
	Key:    []string{"depart_id"},
	Serial: true,
	Columns: []string{
		"enterprise_id", "phone", "fax", "email",
		"contact_last_name", "contact_first_name", "contact_patronymic",
	},
	DDL: `CREATE TABLE IF NOT EXISTS sales_department (
	depart_id SERIAL PRIMARY KEY,
	enterprise_id INTEGER NOT NULL UNIQUE REFERENCES enterprise(enterprise_id) ON DELETE CASCADE,
	phone TEXT,
	fax TEXT,
	email TEXT,
	contact_last_name TEXT NOT NULL,
	contact_first_name TEXT NOT NULL,
	contact_patronymic TEXT
)`,
	Select: `SELECT sd.depart_id, sd.enterprise_id, e.name AS enterprise_name,
	COALESCE(sd.phone, '') AS phone,
	COALESCE(sd.fax, '') AS fax,
	COALESCE(sd.email, '') AS email,
	sd.contact_last_name, sd.contact_first_name,
	COALESCE(sd.contact_patronymic, '') AS contact_patronymic
FROM sales_department sd
JOIN enterprise e ON sd.enterprise_id = e.enterprise_id`,
}

// SalesDepartmentGateway reads and writes the sales_department table.
type SalesDepartmentGateway struct {
	*Gateway[entities.SalesDepartment]
}

// NewSalesDepartmentGateway creates a SalesDepartmentGateway over conn.
func NewSalesDepartmentGateway(conn *store.Conn) *SalesDepartmentGateway {
	return &SalesDepartmentGateway{New[entities.SalesDepartment](conn, SalesDepartmentSchema)}
}
