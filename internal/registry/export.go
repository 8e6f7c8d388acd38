package registry

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"

	"enterprise-registry/internal/gateway"
	"enterprise-registry/internal/store"
)

// dumpWriter keeps the first write error so the export can stay linear.
type dumpWriter struct {
	w   io.Writer
	err error
}

func (d *dumpWriter) printf(format string, args ...interface{}) {
	if d.err != nil {
		return
	}
	_, d.err = fmt.Fprintf(d.w, format, args...)
}

func (d *dumpWriter) insert(table string, columns []string, values ...string) {
	d.printf("INSERT INTO %s (%s) VALUES (%s);\n",
		table, strings.Join(columns, ", "), strings.Join(values, ", "))
}

func (d *dumpWriter) setval(table, column string) {
	d.printf("SELECT setval(pg_get_serial_sequence(%s, %s), COALESCE(MAX(%s), 0) + 1, false) FROM %s;\n",
		store.Literal(table), store.Literal(column), column, table)
}

func num(v int64) string { return fmt.Sprintf("%d", v) }

func money(v decimal.Decimal) string { return v.StringFixed(2) }

// ExportSQL writes the whole registry to w as a script of INSERT statements
// that recreates it on an empty schema. Text values go through store.Literal;
// serial sequences are re-synced at the end. Optional columns are read through
// COALESCE, so a NULL left by a row written outside the service is dumped as
// an empty string or zero.
func (s *Service) ExportSQL(ctx context.Context, w io.Writer) error {
	const op = "export"
	out := &dumpWriter{w: w}

	out.printf("-- enterprise registry dump\n")
	if sid := s.conn.SessionID(); sid != "" {
		out.printf("-- session %s\n", sid)
	}

	for _, d := range gateway.Dictionaries {
		entries, err := d.List(ctx, s.conn)
		if err != nil {
			return wrap(op, err)
		}
		out.printf("\n-- %s\n", d.Table)
		for _, e := range entries {
			out.insert(d.Table, []string{d.IDColumn, d.LabelColumn}, num(e.ID), store.Literal(e.Label))
		}
	}

	enterprises, err := s.enterprises.FindAll(ctx)
	if err != nil {
		return wrap(op, err)
	}
	out.printf("\n-- enterprise\n")
	for _, e := range enterprises {
		out.insert("enterprise",
			[]string{"enterprise_id", "name", "legal_form_id", "ownership_form_id", "postal_address", "inn"},
			num(e.ID), store.Literal(e.Name), num(e.LegalFormID), num(e.OwnershipFormID),
			store.Literal(e.PostalAddress), store.Literal(e.INN))
	}

	products, err := s.products.FindAll(ctx)
	if err != nil {
		return wrap(op, err)
	}
	out.printf("\n-- product\n")
	for _, p := range products {
		out.insert("product",
			[]string{"product_id", "category_id", "name", "shelf_life_days", "delivery_terms_id", "retail_price", "purchase_price"},
			num(p.ID), num(p.CategoryID), store.Literal(p.Name), num(int64(p.ShelfLifeDays)), num(p.DeliveryTermsID),
			money(p.RetailPrice), money(p.PurchasePrice))
	}

	links, err := s.assortment.FindAll(ctx)
	if err != nil {
		return wrap(op, err)
	}
	out.printf("\n-- enterprise_product\n")
	for _, l := range links {
		out.insert("enterprise_product",
			[]string{"enterprise_id", "product_id", "wholesale_price"},
			num(l.EnterpriseID), num(l.ProductID), money(l.WholesalePrice))
	}

	departments, err := s.departments.FindAll(ctx)
	if err != nil {
		return wrap(op, err)
	}
	out.printf("\n-- sales_department\n")
	for _, d := range departments {
		out.insert("sales_department",
			[]string{"depart_id", "enterprise_id", "phone", "fax", "email", "contact_last_name", "contact_first_name", "contact_patronymic"},
			num(d.ID), num(d.EnterpriseID), store.Literal(d.Phone), store.Literal(d.Fax), store.Literal(d.Email),
			store.Literal(d.ContactLastName), store.Literal(d.ContactFirstName), store.Literal(d.ContactPatronymic))
	}

	accounts, err := s.bankAccounts.FindAll(ctx)
	if err != nil {
		return wrap(op, err)
	}
	out.printf("\n-- bank_details\n")
	for _, b := range accounts {
		out.insert("bank_details",
			[]string{"bank_id", "enterprise_id", "bank_name", "bank_city", "account_number"},
			num(b.ID), num(b.EnterpriseID), store.Literal(b.BankName), store.Literal(b.BankCity), store.Literal(b.AccountNumber))
	}

	out.printf("\n-- sequences\n")
	for _, d := range gateway.Dictionaries {
		out.setval(d.Table, d.IDColumn)
	}
	for _, sc := range []gateway.Schema{
		gateway.EnterpriseSchema, gateway.ProductSchema,
		gateway.SalesDepartmentSchema, gateway.BankDetailsSchema,
	} {
		out.setval(sc.Table, sc.Key[0])
	}

	if out.err != nil {
		return &Error{Op: op, Kind: KindStoreError, Msg: "failed to write dump", Err: out.err}
	}
	return nil
}
