// Package registry is the service layer of the enterprise registry. It owns
// the store session, bootstraps the schema and checks business rules before
// any gateway call is made.
package registry

import (
	"context"
	"database/sql"
	"strings"
	"sync"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"enterprise-registry/internal/entities"
	"enterprise-registry/internal/gateway"
	"enterprise-registry/internal/store"
)

// MaxPrice is the first value that no longer fits NUMERIC(10,2).
var MaxPrice = decimal.New(1, 8)

// Service is the registry facade. Gateways share its connection and never
// outlive it.
type Service struct {
	conn *store.Conn
	log  logrus.FieldLogger

	enterprises  *gateway.EnterpriseGateway
	products     *gateway.ProductGateway
	assortment   *gateway.EnterpriseProductGateway
	departments  *gateway.SalesDepartmentGateway
	bankAccounts *gateway.BankDetailsGateway

	mu      sync.Mutex
	initErr error
}

// New creates a Service with an unconnected session. Call Initialize before
// anything else.
func New(log logrus.FieldLogger) *Service {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return newService(store.NewConn(log), log)
}

// NewFromDB creates a Service over an already open handle.
func NewFromDB(db *sql.DB, log logrus.FieldLogger) *Service {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return newService(store.NewConnFromDB(db, log), log)
}

func newService(conn *store.Conn, log logrus.FieldLogger) *Service {
	return &Service{
		conn:         conn,
		log:          log,
		enterprises:  gateway.NewEnterpriseGateway(conn),
		products:     gateway.NewProductGateway(conn),
		assortment:   gateway.NewEnterpriseProductGateway(conn),
		departments:  gateway.NewSalesDepartmentGateway(conn),
		bankAccounts: gateway.NewBankDetailsGateway(conn),
	}
}

// Conn exposes the session, mainly so callers can tune MaxOpenConns before
// Initialize.
func (s *Service) Conn() *store.Conn { return s.conn }

// Initialize connects to dsn (unless a handle was injected) and bootstraps the
// schema. A failed Initialize leaves the Service unusable; calling it again
// returns the same error.
func (s *Service) Initialize(ctx context.Context, dsn string) error {
	const op = "initialize"

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.initErr != nil {
		return s.initErr
	}

	if !s.conn.IsConnected() {
		if err := s.conn.Connect(ctx, dsn); err != nil {
			s.initErr = &Error{Op: op, Kind: KindStoreUnavailable, Msg: "cannot connect to store", Err: err}
			return s.initErr
		}
	}

	if err := s.Bootstrap(ctx); err != nil {
		_ = s.conn.Disconnect()
		s.initErr = err
		return err
	}

	s.log.WithField("session", s.conn.SessionID()).Info("registry initialized")
	return nil
}

// Bootstrap creates the dictionary tables and then the entity tables in
// dependency order. Every statement is idempotent.
func (s *Service) Bootstrap(ctx context.Context) error {
	const op = "bootstrap"

	for _, d := range gateway.Dictionaries {
		if err := d.EnsureSchema(ctx, s.conn); err != nil {
			return wrap(op, err)
		}
	}

	steps := []func(context.Context) error{
		s.enterprises.EnsureSchema,
		s.products.EnsureSchema,
		s.assortment.EnsureSchema,
		s.departments.EnsureSchema,
		s.bankAccounts.EnsureSchema,
	}
	for _, ensure := range steps {
		if err := ensure(ctx); err != nil {
			return wrap(op, err)
		}
	}

	s.log.Debug("schema ready")
	return nil
}

// SeedDictionaries writes the default labels of every dictionary table.
// Labels already present are left alone.
func (s *Service) SeedDictionaries(ctx context.Context) error {
	for _, d := range gateway.Dictionaries {
		if err := d.Seed(ctx, s.conn); err != nil {
			return wrap("seed dictionaries", err)
		}
	}
	return nil
}

// ListDictionary returns the entries of one lookup table.
func (s *Service) ListDictionary(ctx context.Context, d gateway.Dictionary) ([]entities.DictionaryEntry, error) {
	entries, err := d.List(ctx, s.conn)
	return entries, wrap("list "+d.Name, err)
}

// Close releases the session. Safe to call more than once.
func (s *Service) Close() error {
	return s.conn.Disconnect()
}

func (s *Service) reject(op, msg string) error {
	s.log.WithField("op", op).Warn(msg)
	return invalid(op, msg)
}

func blank(v string) bool { return strings.TrimSpace(v) == "" }

func (s *Service) checkPrice(op, field string, price decimal.Decimal) error {
	if price.IsNegative() {
		return s.reject(op, field+" must not be negative")
	}
	if !price.Equal(price.Truncate(2)) {
		return s.reject(op, field+" has more than two decimal places")
	}
	if price.GreaterThanOrEqual(MaxPrice) {
		return s.reject(op, field+" is too large")
	}
	return nil
}

// ============================================================================
// ENTERPRISE
// ============================================================================

// ListEnterprises returns every enterprise ordered by id.
func (s *Service) ListEnterprises(ctx context.Context) ([]entities.Enterprise, error) {
	list, err := s.enterprises.FindAll(ctx)
	return list, wrap("list enterprises", err)
}

// GetEnterpriseByID returns the enterprise or the zero value when absent.
func (s *Service) GetEnterpriseByID(ctx context.Context, id int64) (entities.Enterprise, error) {
	ent, err := s.enterprises.FindByID(ctx, id)
	return ent, wrap("get enterprise", err)
}

// CreateEnterprise stores a new enterprise and returns its id, or -1.
func (s *Service) CreateEnterprise(ctx context.Context, ent entities.Enterprise) (int64, error) {
	const op = "create enterprise"

	if blank(ent.Name) || blank(ent.INN) {
		return -1, s.reject(op, "enterprise name and INN are required")
	}

	existing, err := s.enterprises.FindByInn(ctx, ent.INN)
	if err != nil {
		return -1, wrap(op, err)
	}
	if !existing.IsZero() {
		s.log.WithFields(logrus.Fields{"op": op, "inn": ent.INN}).Warn("INN already registered")
		return -1, conflict(op, "an enterprise with this INN already exists")
	}

	id, err := s.enterprises.Insert(ctx, ent)
	if err != nil {
		return -1, wrap(op, err)
	}
	return id, nil
}

// UpdateEnterprise overwrites an existing enterprise. INN uniqueness is left
// to the store.
func (s *Service) UpdateEnterprise(ctx context.Context, ent entities.Enterprise) error {
	const op = "update enterprise"

	if ent.ID <= 0 {
		return s.reject(op, "enterprise id must be positive")
	}
	if blank(ent.Name) || blank(ent.INN) {
		return s.reject(op, "enterprise name and INN are required")
	}
	return wrap(op, s.enterprises.Update(ctx, ent))
}

// DeleteEnterprise removes the enterprise together with its sales
// department, bank details and assortment links.
func (s *Service) DeleteEnterprise(ctx context.Context, id int64) error {
	return wrap("delete enterprise", s.enterprises.Delete(ctx, id))
}

// ============================================================================
// PRODUCT
// ============================================================================

// ListProducts returns every product ordered by id.
func (s *Service) ListProducts(ctx context.Context) ([]entities.Product, error) {
	list, err := s.products.FindAll(ctx)
	return list, wrap("list products", err)
}

// GetProductByID returns the product or the zero value when absent.
func (s *Service) GetProductByID(ctx context.Context, id int64) (entities.Product, error) {
	p, err := s.products.FindByID(ctx, id)
	return p, wrap("get product", err)
}

// CreateProduct stores a new product and returns its id, or -1. Nothing is
// sent to the store unless every check passes.
func (s *Service) CreateProduct(ctx context.Context, p entities.Product) (int64, error) {
	const op = "create product"

	if blank(p.Name) {
		return -1, s.reject(op, "product name is required")
	}
	if err := s.checkPrice(op, "retail price", p.RetailPrice); err != nil {
		return -1, err
	}
	if err := s.checkPrice(op, "purchase price", p.PurchasePrice); err != nil {
		return -1, err
	}

	existing, err := s.products.FindByName(ctx, p.Name)
	if err != nil {
		return -1, wrap(op, err)
	}
	if !existing.IsZero() {
		s.log.WithFields(logrus.Fields{"op": op, "name": p.Name}).Warn("product name already in use")
		return -1, conflict(op, "a product with this name already exists")
	}

	id, err := s.products.Insert(ctx, p)
	if err != nil {
		return -1, wrap(op, err)
	}
	return id, nil
}

// UpdateProduct overwrites an existing product. Only the id is checked.
func (s *Service) UpdateProduct(ctx context.Context, p entities.Product) error {
	const op = "update product"

	if p.ID <= 0 {
		return s.reject(op, "product id must be positive")
	}
	return wrap(op, s.products.Update(ctx, p))
}

// DeleteProduct removes the product and every assortment link to it.
func (s *Service) DeleteProduct(ctx context.Context, id int64) error {
	return wrap("delete product", s.products.Delete(ctx, id))
}

// ============================================================================
// ASSORTMENT
// ============================================================================

// GetAssortmentForEnterprise returns the products an enterprise carries with
// its wholesale price, ordered by product id. Links whose product vanished
// between the two reads are skipped.
func (s *Service) GetAssortmentForEnterprise(ctx context.Context, enterpriseID int64) ([]entities.AssortmentItem, error) {
	const op = "get assortment"

	links, err := s.assortment.FindByEnterprise(ctx, enterpriseID)
	if err != nil {
		return nil, wrap(op, err)
	}

	items := make([]entities.AssortmentItem, 0, len(links))
	for _, link := range links {
		p, err := s.products.FindByID(ctx, link.ProductID)
		if err != nil {
			return nil, wrap(op, err)
		}
		if p.IsZero() {
			continue
		}
		items = append(items, entities.AssortmentItem{Product: p, WholesalePrice: link.WholesalePrice})
	}
	return items, nil
}

// GetEnterprisesForProduct returns the enterprises carrying a product with
// their wholesale price.
func (s *Service) GetEnterprisesForProduct(ctx context.Context, productID int64) ([]entities.ProductOffer, error) {
	const op = "get enterprises for product"

	links, err := s.assortment.FindByProduct(ctx, productID)
	if err != nil {
		return nil, wrap(op, err)
	}

	offers := make([]entities.ProductOffer, 0, len(links))
	for _, link := range links {
		ent, err := s.enterprises.FindByID(ctx, link.EnterpriseID)
		if err != nil {
			return nil, wrap(op, err)
		}
		if ent.IsZero() {
			continue
		}
		offers = append(offers, entities.ProductOffer{Enterprise: ent, WholesalePrice: link.WholesalePrice})
	}
	return offers, nil
}

// AddProductToAssortment links a product to an enterprise. A pair that is
// already linked is reported as KindConflict.
func (s *Service) AddProductToAssortment(ctx context.Context, enterpriseID, productID int64, wholesalePrice decimal.Decimal) error {
	const op = "add to assortment"

	if err := s.checkPrice(op, "wholesale price", wholesalePrice); err != nil {
		return err
	}

	link := entities.EnterpriseProduct{EnterpriseID: enterpriseID, ProductID: productID, WholesalePrice: wholesalePrice}
	if _, err := s.assortment.Insert(ctx, link); err != nil {
		if store.IsUniqueViolation(err) {
			return &Error{Op: op, Kind: KindConflict, Msg: "product is already in the assortment", Err: err}
		}
		return wrap(op, err)
	}
	return nil
}

// UpdateProductPriceInAssortment changes the wholesale price of one link.
func (s *Service) UpdateProductPriceInAssortment(ctx context.Context, enterpriseID, productID int64, newPrice decimal.Decimal) error {
	const op = "update assortment price"

	if err := s.checkPrice(op, "wholesale price", newPrice); err != nil {
		return err
	}
	link := entities.EnterpriseProduct{EnterpriseID: enterpriseID, ProductID: productID, WholesalePrice: newPrice}
	return wrap(op, s.assortment.Update(ctx, link))
}

// RemoveProductFromAssortment deletes one link.
func (s *Service) RemoveProductFromAssortment(ctx context.Context, enterpriseID, productID int64) error {
	return wrap("remove from assortment", s.assortment.Remove(ctx, enterpriseID, productID))
}

// ============================================================================
// SALES DEPARTMENT
// ============================================================================

// ListSalesDepartments returns every sales department ordered by id.
func (s *Service) ListSalesDepartments(ctx context.Context) ([]entities.SalesDepartment, error) {
	list, err := s.departments.FindAll(ctx)
	return list, wrap("list sales departments", err)
}

// GetSalesDepartmentByID returns the department or the zero value when absent.
func (s *Service) GetSalesDepartmentByID(ctx context.Context, id int64) (entities.SalesDepartment, error) {
	d, err := s.departments.FindByID(ctx, id)
	return d, wrap("get sales department", err)
}

// CreateSalesDepartment stores a department and returns its id, or -1. A
// second department for the same enterprise is a KindConflict.
func (s *Service) CreateSalesDepartment(ctx context.Context, d entities.SalesDepartment) (int64, error) {
	const op = "create sales department"

	if blank(d.ContactLastName) || blank(d.ContactFirstName) {
		return -1, s.reject(op, "contact last name and first name are required")
	}

	id, err := s.departments.Insert(ctx, d)
	if err != nil {
		return -1, wrap(op, err)
	}
	return id, nil
}

// UpdateSalesDepartment overwrites an existing department.
func (s *Service) UpdateSalesDepartment(ctx context.Context, d entities.SalesDepartment) error {
	const op = "update sales department"

	if d.ID <= 0 {
		return s.reject(op, "sales department id must be positive")
	}
	return wrap(op, s.departments.Update(ctx, d))
}

// DeleteSalesDepartment removes a department.
func (s *Service) DeleteSalesDepartment(ctx context.Context, id int64) error {
	return wrap("delete sales department", s.departments.Delete(ctx, id))
}

// ============================================================================
// BANK DETAILS
// ============================================================================

// ListBankDetails returns every bank record ordered by id.
func (s *Service) ListBankDetails(ctx context.Context) ([]entities.BankDetails, error) {
	list, err := s.bankAccounts.FindAll(ctx)
	return list, wrap("list bank details", err)
}

// GetBankDetailsByID returns the record or the zero value when absent.
func (s *Service) GetBankDetailsByID(ctx context.Context, id int64) (entities.BankDetails, error) {
	b, err := s.bankAccounts.FindByID(ctx, id)
	return b, wrap("get bank details", err)
}

// CreateBankDetails stores a bank record and returns its id, or -1.
func (s *Service) CreateBankDetails(ctx context.Context, b entities.BankDetails) (int64, error) {
	const op = "create bank details"

	if blank(b.BankName) || blank(b.AccountNumber) {
		return -1, s.reject(op, "bank name and account number are required")
	}

	id, err := s.bankAccounts.Insert(ctx, b)
	if err != nil {
		return -1, wrap(op, err)
	}
	return id, nil
}

// UpdateBankDetails overwrites an existing bank record.
func (s *Service) UpdateBankDetails(ctx context.Context, b entities.BankDetails) error {
	const op = "update bank details"

	if b.ID <= 0 {
		return s.reject(op, "bank details id must be positive")
	}
	return wrap(op, s.bankAccounts.Update(ctx, b))
}

// DeleteBankDetails removes a bank record.
func (s *Service) DeleteBankDetails(ctx context.Context, id int64) error {
	return wrap("delete bank details", s.bankAccounts.Delete(ctx, id))
}
