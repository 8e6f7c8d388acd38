package gateway

import (
	"enterprise-registry/internal/entities"
	"enterprise-registry/internal/store"
)

// BankDetailsSchema allows one bank record per enterprise.
var BankDetailsSchema = Schema{
	Table:   "bank_details",
	Alias:   "bd",
	Key:     []string{"bank_id"},
	Serial:  true,
	Columns: []string{"enterprise_id", "bank_name", "bank_city", "account_number"},
	DDL: `CREATE TABLE IF NOT EXISTS bank_details (
	bank_id SERIAL PRIMARY KEY,
	enterprise_id INTEGER NOT NULL UNIQUE REFERENCES enterprise(enterprise_id) ON DELETE CASCADE,
	bank_name TEXT NOT NULL,
	bank_city TEXT NOT NULL,
	account_number TEXT NOT NULL
)`,
	Select: `SELECT bd.bank_id, bd.enterprise_id, e.name AS enterprise_name,
	bd.bank_name, bd.bank_city, bd.account_number
FROM bank_details bd
JOIN enterprise e ON bd.enterprise_id = e.enterprise_id`,
}

// BankDetailsGateway reads and writes the bank_details table.
type BankDetailsGateway struct {
	*Gateway[entities.BankDetails]
}

// NewBankDetailsGateway creates a BankDetailsGateway over conn.
func NewBankDetailsGateway(conn *store.Conn) *BankDetailsGateway {
	return &BankDetailsGateway{New[entities.BankDetails](conn, BankDetailsSchema)}
}
