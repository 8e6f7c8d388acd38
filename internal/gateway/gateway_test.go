package gateway

import (
	"context"
	"errors"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"enterprise-registry/internal/entities"
	"enterprise-registry/internal/store"
)

var enterpriseColumns = []string{
	"enterprise_id", "name", "legal_form_id", "ownership_form_id",
	"postal_address", "inn", "legal_form_name", "ownership_form_name",
}

func setupMock(t *testing.T) (*store.Conn, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err, "failed to create sqlmock")
	t.Cleanup(func() { db.Close() })

	logger, _ := test.NewNullLogger()
	return store.NewConnFromDB(db, logger), mock
}

func TestSchemaStatements(t *testing.T) {
	assert.Equal(t,
		"INSERT INTO enterprise (name, legal_form_id, ownership_form_id, postal_address, inn) VALUES (:name, :legal_form_id, :ownership_form_id, :postal_address, :inn) RETURNING enterprise_id",
		EnterpriseSchema.insertSQL())
	assert.Equal(t,
		"UPDATE enterprise SET name = :name, legal_form_id = :legal_form_id, ownership_form_id = :ownership_form_id, postal_address = :postal_address, inn = :inn WHERE enterprise_id = :enterprise_id",
		EnterpriseSchema.updateSQL())
	assert.Equal(t, "DELETE FROM enterprise WHERE enterprise_id = $1", EnterpriseSchema.deleteSQL())

	assert.Equal(t,
		"INSERT INTO enterprise_product (enterprise_id, product_id, wholesale_price) VALUES (:enterprise_id, :product_id, :wholesale_price)",
		EnterpriseProductSchema.insertSQL())
	assert.Equal(t,
		"UPDATE enterprise_product SET wholesale_price = :wholesale_price WHERE enterprise_id = :enterprise_id AND product_id = :product_id",
		EnterpriseProductSchema.updateSQL())
	assert.Equal(t,
		"DELETE FROM enterprise_product WHERE enterprise_id = $1 AND product_id = $2",
		EnterpriseProductSchema.deleteSQL())
	assert.Equal(t, " ORDER BY ep.enterprise_id, ep.product_id", EnterpriseProductSchema.orderBy())
}

func TestEnterpriseGateway_EnsureSchema(t *testing.T) {
	conn, mock := setupMock(t)
	g := NewEnterpriseGateway(conn)

	mock.ExpectExec(`CREATE TABLE IF NOT EXISTS enterprise \(`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, g.EnsureSchema(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEnterpriseGateway_InsertBindsStringsVerbatim(t *testing.T) {
	conn, mock := setupMock(t)
	g := NewEnterpriseGateway(conn)

	ent := entities.Enterprise{
		Name:            "O'Brien'); DROP TABLE enterprise; --",
		LegalFormID:     1,
		OwnershipFormID: 2,
		PostalAddress:   "1 Main St",
		INN:             "7701234567",
	}

	mock.ExpectQuery(`INSERT INTO enterprise \(name, legal_form_id, ownership_form_id, postal_address, inn\) VALUES \(\$1, \$2, \$3, \$4, \$5\) RETURNING enterprise_id`).
		WithArgs(ent.Name, int64(1), int64(2), "1 Main St", "7701234567").
		WillReturnRows(sqlmock.NewRows([]string{"enterprise_id"}).AddRow(int64(12)))

	id, err := g.Insert(context.Background(), ent)
	require.NoError(t, err)
	assert.Equal(t, int64(12), id)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEnterpriseGateway_InsertFailureReturnsMinusOne(t *testing.T) {
	conn, mock := setupMock(t)
	g := NewEnterpriseGateway(conn)

	mock.ExpectQuery(`INSERT INTO enterprise`).
		WillReturnError(&pq.Error{Code: store.CodeUniqueViolation})

	id, err := g.Insert(context.Background(), entities.Enterprise{Name: "Acme", INN: "123"})
	require.Error(t, err)
	assert.Equal(t, int64(-1), id)
	assert.True(t, store.IsUniqueViolation(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEnterpriseGateway_FindAllOrdersByKey(t *testing.T) {
	conn, mock := setupMock(t)
	g := NewEnterpriseGateway(conn)

	rows := sqlmock.NewRows(enterpriseColumns).
		AddRow(int64(1), "Acme", int64(1), int64(1), "1 Main St", "123", "LLC", "Private").
		AddRow(int64(2), "Globex", int64(2), int64(3), "2 Side St", "456", "JSC", "Municipal")

	mock.ExpectQuery(`FROM enterprise e LEFT JOIN legal_form lf ON e.legal_form_id = lf.legal_form_id LEFT JOIN ownership_form owf ON e.ownership_form_id = owf.ownership_form_id ORDER BY e.enterprise_id`).
		WillReturnRows(rows)

	list, err := g.FindAll(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Acme", list[0].Name)
	assert.Equal(t, "LLC", list[0].LegalFormName)
	assert.Equal(t, "Municipal", list[1].OwnershipFormName)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEnterpriseGateway_FindAllEmptyIsNotNil(t *testing.T) {
	conn, mock := setupMock(t)
	g := NewEnterpriseGateway(conn)

	mock.ExpectQuery(`FROM enterprise e`).WillReturnRows(sqlmock.NewRows(enterpriseColumns))

	list, err := g.FindAll(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, list)
	assert.Empty(t, list)
}

func TestEnterpriseGateway_FindByIDNotFoundIsSentinel(t *testing.T) {
	conn, mock := setupMock(t)
	g := NewEnterpriseGateway(conn)

	mock.ExpectQuery(`FROM enterprise e .* WHERE e.enterprise_id = \$1 ORDER BY e.enterprise_id LIMIT 1`).
		WithArgs(int64(99)).
		WillReturnRows(sqlmock.NewRows(enterpriseColumns))

	ent, err := g.FindByID(context.Background(), 99)
	require.NoError(t, err)
	assert.True(t, ent.IsZero())
	assert.Equal(t, int64(0), ent.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEnterpriseGateway_FindByInn(t *testing.T) {
	conn, mock := setupMock(t)
	g := NewEnterpriseGateway(conn)

	mock.ExpectQuery(`WHERE e.inn = \$1`).
		WithArgs("12'3").
		WillReturnRows(sqlmock.NewRows(enterpriseColumns).
			AddRow(int64(5), "Acme", int64(1), int64(1), "addr", "12'3", "", ""))

	ent, err := g.FindByInn(context.Background(), "12'3")
	require.NoError(t, err)
	assert.Equal(t, int64(5), ent.ID)
	assert.Equal(t, "12'3", ent.INN)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEnterpriseGateway_UpdateNoRowsIsNotFound(t *testing.T) {
	conn, mock := setupMock(t)
	g := NewEnterpriseGateway(conn)

	ent := entities.Enterprise{ID: 3, Name: "Acme", LegalFormID: 1, OwnershipFormID: 1, PostalAddress: "a", INN: "1"}
	mock.ExpectExec(`UPDATE enterprise SET name = \$1, legal_form_id = \$2, ownership_form_id = \$3, postal_address = \$4, inn = \$5 WHERE enterprise_id = \$6`).
		WithArgs("Acme", int64(1), int64(1), "a", "1", int64(3)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := g.Update(context.Background(), ent)
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEnterpriseGateway_Delete(t *testing.T) {
	conn, mock := setupMock(t)
	g := NewEnterpriseGateway(conn)

	mock.ExpectExec(`DELETE FROM enterprise WHERE enterprise_id = \$1`).
		WithArgs(int64(3)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, g.Delete(context.Background(), int64(3)))
	assert.Error(t, g.Delete(context.Background()), "wrong key arity")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProductGateway_InsertAndFindByName(t *testing.T) {
	conn, mock := setupMock(t)
	g := NewProductGateway(conn)

	retail := decimal.RequireFromString("10.00")
	purchase := decimal.RequireFromString("5.50")
	prod := entities.Product{
		CategoryID: 1, Name: "Widget", ShelfLifeDays: 30, DeliveryTermsID: 2,
		RetailPrice: retail, PurchasePrice: purchase,
	}

	mock.ExpectQuery(`INSERT INTO product \(category_id, name, shelf_life_days, delivery_terms_id, retail_price, purchase_price\) VALUES \(\$1, \$2, \$3, \$4, \$5, \$6\) RETURNING product_id`).
		WithArgs(int64(1), "Widget", 30, int64(2), retail, purchase).
		WillReturnRows(sqlmock.NewRows([]string{"product_id"}).AddRow(int64(1)))

	id, err := g.Insert(context.Background(), prod)
	require.NoError(t, err)
	assert.Equal(t, int64(1), id)

	mock.ExpectQuery(`FROM product p .* WHERE p.name = \$1`).
		WithArgs("Widget").
		WillReturnRows(sqlmock.NewRows([]string{
			"product_id", "category_id", "name", "shelf_life_days", "delivery_terms_id",
			"retail_price", "purchase_price", "category_name", "delivery_terms_description",
		}).AddRow(int64(1), int64(1), "Widget", int64(30), int64(2), "10.00", "5.50", "Food", "Pickup"))

	found, err := g.FindByName(context.Background(), "Widget")
	require.NoError(t, err)
	assert.Equal(t, int64(1), found.ID)
	assert.True(t, found.RetailPrice.Equal(retail))
	assert.True(t, found.PurchasePrice.Equal(purchase))
	assert.Equal(t, "Food", found.CategoryName)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEnterpriseProductGateway(t *testing.T) {
	conn, mock := setupMock(t)
	g := NewEnterpriseProductGateway(conn)
	ctx := context.Background()
	price := decimal.RequireFromString("7.5")

	mock.ExpectExec(`INSERT INTO enterprise_product \(enterprise_id, product_id, wholesale_price\) VALUES \(\$1, \$2, \$3\)$`).
		WithArgs(int64(1), int64(2), price).
		WillReturnResult(sqlmock.NewResult(0, 1))

	id, err := g.Insert(ctx, entities.EnterpriseProduct{EnterpriseID: 1, ProductID: 2, WholesalePrice: price})
	require.NoError(t, err)
	assert.Equal(t, int64(0), id)

	mock.ExpectQuery(`FROM enterprise_product ep WHERE ep.enterprise_id = \$1 ORDER BY ep.enterprise_id, ep.product_id`).
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"enterprise_id", "product_id", "wholesale_price"}).
			AddRow(int64(1), int64(2), "7.50").
			AddRow(int64(1), int64(4), "1.00"))

	links, err := g.FindByEnterprise(ctx, 1)
	require.NoError(t, err)
	require.Len(t, links, 2)
	assert.True(t, links[0].WholesalePrice.Equal(price))

	mock.ExpectQuery(`FROM enterprise_product ep WHERE ep.product_id = \$1`).
		WithArgs(int64(2)).
		WillReturnRows(sqlmock.NewRows([]string{"enterprise_id", "product_id", "wholesale_price"}).
			AddRow(int64(1), int64(2), "7.50"))

	byProduct, err := g.FindByProduct(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, byProduct, 1)

	mock.ExpectExec(`UPDATE enterprise_product SET wholesale_price = \$1 WHERE enterprise_id = \$2 AND product_id = \$3`).
		WithArgs(price, int64(1), int64(2)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, g.Update(ctx, entities.EnterpriseProduct{EnterpriseID: 1, ProductID: 2, WholesalePrice: price}))

	mock.ExpectExec(`DELETE FROM enterprise_product WHERE enterprise_id = \$1 AND product_id = \$2`).
		WithArgs(int64(1), int64(2)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, g.Remove(ctx, 1, 2))

	_, err = g.FindByID(ctx, 1)
	assert.Error(t, err, "composite key tables have no FindByID")

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSalesDepartmentGateway_FindByID(t *testing.T) {
	conn, mock := setupMock(t)
	g := NewSalesDepartmentGateway(conn)

	mock.ExpectQuery(`FROM sales_department sd JOIN enterprise e ON sd.enterprise_id = e.enterprise_id WHERE sd.depart_id = \$1`).
		WithArgs(int64(4)).
		WillReturnRows(sqlmock.NewRows([]string{
			"depart_id", "enterprise_id", "enterprise_name", "phone", "fax", "email",
			"contact_last_name", "contact_first_name", "contact_patronymic",
		}).AddRow(int64(4), int64(1), "Acme", "+7 495 000", "", "sales@acme.test", "Ivanov", "Ivan", ""))

	dept, err := g.FindByID(context.Background(), 4)
	require.NoError(t, err)
	assert.Equal(t, "Acme", dept.EnterpriseName)
	assert.Equal(t, "Ivanov", dept.ContactLastName)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBankDetailsGateway_Insert(t *testing.T) {
	conn, mock := setupMock(t)
	g := NewBankDetailsGateway(conn)

	mock.ExpectQuery(`INSERT INTO bank_details \(enterprise_id, bank_name, bank_city, account_number\) VALUES \(\$1, \$2, \$3, \$4\) RETURNING bank_id`).
		WithArgs(int64(1), "First Bank", "Moscow", "40702810000000000001").
		WillReturnRows(sqlmock.NewRows([]string{"bank_id"}).AddRow(int64(9)))

	id, err := g.Insert(context.Background(), entities.BankDetails{
		EnterpriseID: 1, BankName: "First Bank", BankCity: "Moscow", AccountNumber: "40702810000000000001",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(9), id)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGateway_NotConnected(t *testing.T) {
	g := NewProductGateway(store.NewConn(nil))

	_, err := g.FindAll(context.Background())
	assert.ErrorIs(t, err, store.ErrNotConnected)

	p, err := g.FindByID(context.Background(), 1)
	assert.ErrorIs(t, err, store.ErrNotConnected)
	assert.True(t, p.IsZero())

	id, err := g.Insert(context.Background(), entities.Product{Name: "x"})
	assert.ErrorIs(t, err, store.ErrNotConnected)
	assert.Equal(t, int64(-1), id)
}
