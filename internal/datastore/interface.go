package datastore

import (
	"context"
	"fmt"
	"io"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"enterprise-registry/internal/entities"
	"enterprise-registry/internal/gateway"
	"enterprise-registry/internal/registry"
)

// DataStore defines the interface for all registry operations.
// It is implemented by *registry.Service; the CLI depends only on this.
type DataStore interface {
	// Lifecycle
	Close() error
	Bootstrap(ctx context.Context) error
	SeedDictionaries(ctx context.Context) error

	// Enterprise Operations
	ListEnterprises(ctx context.Context) ([]entities.Enterprise, error)
	GetEnterpriseByID(ctx context.Context, id int64) (entities.Enterprise, error)
	CreateEnterprise(ctx context.Context, ent entities.Enterprise) (int64, error)
	UpdateEnterprise(ctx context.Context, ent entities.Enterprise) error
	DeleteEnterprise(ctx context.Context, id int64) error

	// Product Operations
	ListProducts(ctx context.Context) ([]entities.Product, error)
	GetProductByID(ctx context.Context, id int64) (entities.Product, error)
	CreateProduct(ctx context.Context, p entities.Product) (int64, error)
	UpdateProduct(ctx context.Context, p entities.Product) error
	DeleteProduct(ctx context.Context, id int64) error

	// Assortment Operations
	GetAssortmentForEnterprise(ctx context.Context, enterpriseID int64) ([]entities.AssortmentItem, error)
	GetEnterprisesForProduct(ctx context.Context, productID int64) ([]entities.ProductOffer, error)
	AddProductToAssortment(ctx context.Context, enterpriseID, productID int64, wholesalePrice decimal.Decimal) error
	UpdateProductPriceInAssortment(ctx context.Context, enterpriseID, productID int64, newPrice decimal.Decimal) error
	RemoveProductFromAssortment(ctx context.Context, enterpriseID, productID int64) error

	// Sales Department Operations
	ListSalesDepartments(ctx context.Context) ([]entities.SalesDepartment, error)
	GetSalesDepartmentByID(ctx context.Context, id int64) (entities.SalesDepartment, error)
	CreateSalesDepartment(ctx context.Context, d entities.SalesDepartment) (int64, error)
	UpdateSalesDepartment(ctx context.Context, d entities.SalesDepartment) error
	DeleteSalesDepartment(ctx context.Context, id int64) error

	// Bank Details Operations
	ListBankDetails(ctx context.Context) ([]entities.BankDetails, error)
	GetBankDetailsByID(ctx context.Context, id int64) (entities.BankDetails, error)
	CreateBankDetails(ctx context.Context, b entities.BankDetails) (int64, error)
	UpdateBankDetails(ctx context.Context, b entities.BankDetails) error
	DeleteBankDetails(ctx context.Context, id int64) error

	// Dictionary Operations
	ListDictionary(ctx context.Context, d gateway.Dictionary) ([]entities.DictionaryEntry, error)

	// Export Operations
	ExportSQL(ctx context.Context, w io.Writer) error
}

var _ DataStore = (*registry.Service)(nil)

// Type represents the type of data store to use
type Type string

const (
	// PostgreSQLStore uses a PostgreSQL database
	PostgreSQLStore Type = "postgresql"
)

// Config holds configuration for data store creation
type Config struct {
	Type             Type
	ConnectionString string

	// MaxOpenConns caps the session pool; 0 keeps the default of one.
	MaxOpenConns int

	// SeedDictionaries writes the default dictionary labels after bootstrap.
	SeedDictionaries bool
}

// NewDataStore creates and initializes a data store based on configuration.
func NewDataStore(ctx context.Context, config Config, log logrus.FieldLogger) (DataStore, error) {
	switch config.Type {
	case PostgreSQLStore:
		return newPostgreSQLStore(ctx, config, log)
	default:
		return nil, &UnsupportedStoreTypeError{Type: string(config.Type)}
	}
}

// newPostgreSQLStore connects a registry service and bootstraps its schema.
func newPostgreSQLStore(ctx context.Context, config Config, log logrus.FieldLogger) (DataStore, error) {
	svc := registry.New(log)
	if config.MaxOpenConns > 0 {
		svc.Conn().MaxOpenConns = config.MaxOpenConns
	}

	if err := svc.Initialize(ctx, config.ConnectionString); err != nil {
		return nil, fmt.Errorf("failed to initialize registry: %w", err)
	}

	if config.SeedDictionaries {
		if err := svc.SeedDictionaries(ctx); err != nil {
			_ = svc.Close()
			return nil, fmt.Errorf("failed to seed dictionaries: %w", err)
		}
	}
	return svc, nil
}

// UnsupportedStoreTypeError is returned when an unsupported store type is requested
type UnsupportedStoreTypeError struct {
	Type string
}

func (e *UnsupportedStoreTypeError) Error() string {
	return "unsupported store type: " + e.Type
}
