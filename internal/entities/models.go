package entities

import (
	"github.com/shopspring/decimal"
)

// ============================================================================
// REGISTRY ENTITIES
// ============================================================================

// Enterprise is a registered legal entity. INN is the tax identifier and is
// unique across the registry.
type Enterprise struct {
	ID              int64  `json:"enterprise_id" db:"enterprise_id"`
	Name            string `json:"name" db:"name"`
	LegalFormID     int64  `json:"legal_form_id" db:"legal_form_id"`
	OwnershipFormID int64  `json:"ownership_form_id" db:"ownership_form_id"`
	PostalAddress   string `json:"postal_address" db:"postal_address"`
	INN             string `json:"inn" db:"inn"`

	// Read-only, filled from the dictionary joins
	LegalFormName     string `json:"legal_form_name,omitempty" db:"legal_form_name"`
	OwnershipFormName string `json:"ownership_form_name,omitempty" db:"ownership_form_name"`
}

// IsZero reports whether e is the not-found sentinel.
func (e Enterprise) IsZero() bool { return e.ID == 0 }

// Product is a catalog item that enterprises may carry in their assortment.
type Product struct {
	ID              int64           `json:"product_id" db:"product_id"`
	CategoryID      int64           `json:"category_id" db:"category_id"`
	Name            string          `json:"name" db:"name"`
	ShelfLifeDays   int             `json:"shelf_life_days" db:"shelf_life_days"`
	DeliveryTermsID int64           `json:"delivery_terms_id" db:"delivery_terms_id"`
	RetailPrice     decimal.Decimal `json:"retail_price" db:"retail_price"`
	PurchasePrice   decimal.Decimal `json:"purchase_price" db:"purchase_price"`

	CategoryName             string `json:"category_name,omitempty" db:"category_name"`
	DeliveryTermsDescription string `json:"delivery_terms_description,omitempty" db:"delivery_terms_description"`
}

// IsZero reports whether p is the not-found sentinel.
func (p Product) IsZero() bool { return p.ID == 0 }

// EnterpriseProduct links a product into an enterprise's assortment.
// The pair (EnterpriseID, ProductID) is the key.
type EnterpriseProduct struct {
	EnterpriseID   int64           `json:"enterprise_id" db:"enterprise_id"`
	ProductID      int64           `json:"product_id" db:"product_id"`
	WholesalePrice decimal.Decimal `json:"wholesale_price" db:"wholesale_price"`
}

// SalesDepartment is the single sales contact point of an enterprise.
type SalesDepartment struct {
	ID                int64  `json:"depart_id" db:"depart_id"`
	EnterpriseID      int64  `json:"enterprise_id" db:"enterprise_id"`
	Phone             string `json:"phone" db:"phone"`
	Fax               string `json:"fax" db:"fax"`
	Email             string `json:"email" db:"email"`
	ContactLastName   string `json:"contact_last_name" db:"contact_last_name"`
	ContactFirstName  string `json:"contact_first_name" db:"contact_first_name"`
	ContactPatronymic string `json:"contact_patronymic" db:"contact_patronymic"`

	EnterpriseName string `json:"enterprise_name,omitempty" db:"enterprise_name"`
}

// IsZero reports whether d is the not-found sentinel.
func (d SalesDepartment) IsZero() bool { return d.ID == 0 }

// BankDetails holds the settlement account of an enterprise.
type BankDetails struct {
	ID            int64  `json:"bank_id" db:"bank_id"`
	EnterpriseID  int64  `json:"enterprise_id" db:"enterprise_id"`
	BankName      string `json:"bank_name" db:"bank_name"`
	BankCity      string `json:"bank_city" db:"bank_city"`
	AccountNumber string `json:"account_number" db:"account_number"`

	EnterpriseName string `json:"enterprise_name,omitempty" db:"enterprise_name"`
}

// IsZero reports whether b is the not-found sentinel.
func (b BankDetails) IsZero() bool { return b.ID == 0 }

// ============================================================================
// READ MODELS
// ============================================================================

// AssortmentItem is a product as carried by one enterprise.
type AssortmentItem struct {
	Product        Product         `json:"product"`
	WholesalePrice decimal.Decimal `json:"wholesale_price"`
}

// ProductOffer is an enterprise carrying a given product.
type ProductOffer struct {
	Enterprise     Enterprise      `json:"enterprise"`
	WholesalePrice decimal.Decimal `json:"wholesale_price"`
}

// DictionaryEntry is one row of a lookup table (legal form, ownership form,
// product category, delivery terms).
type DictionaryEntry struct {
	ID    int64  `json:"id" db:"id"`
	Label string `json:"label" db:"label"`
}
