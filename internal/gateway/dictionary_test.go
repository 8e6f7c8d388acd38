package gateway

import (
	"context"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDictionaryByName(t *testing.T) {
	d, ok := DictionaryByName("delivery-terms")
	require.True(t, ok)
	assert.Equal(t, "description", d.LabelColumn)

	d, ok = DictionaryByName("legal_form")
	require.True(t, ok)
	assert.Equal(t, LegalForms, d)

	_, ok = DictionaryByName("currency")
	assert.False(t, ok)
}

func TestDictionary_DDL(t *testing.T) {
	assert.Equal(t, `CREATE TABLE IF NOT EXISTS product_category (
	category_id SERIAL PRIMARY KEY,
	name TEXT NOT NULL UNIQUE
)`, ProductCategories.DDL())
}

func TestDictionary_SeedDefaults(t *testing.T) {
	conn, mock := setupMock(t)

	for _, label := range DefaultLabels["ownership_form"] {
		mock.ExpectExec(`INSERT INTO ownership_form \(name\) VALUES \(\$1\) ON CONFLICT \(name\) DO NOTHING`).
			WithArgs(label).
			WillReturnResult(sqlmock.NewResult(0, 1))
	}

	require.NoError(t, OwnershipForms.Seed(context.Background(), conn))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDictionary_SeedExplicitLabels(t *testing.T) {
	conn, mock := setupMock(t)

	mock.ExpectExec(`INSERT INTO delivery_terms \(description\) VALUES \(\$1\) ON CONFLICT \(description\) DO NOTHING`).
		WithArgs("Ex works").
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, DeliveryTerms.Seed(context.Background(), conn, "Ex works"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDictionary_List(t *testing.T) {
	conn, mock := setupMock(t)

	mock.ExpectQuery(`SELECT legal_form_id AS id, name AS label FROM legal_form ORDER BY legal_form_id`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "label"}).
			AddRow(int64(1), "LLC").
			AddRow(int64(2), "JSC"))

	entries, err := LegalForms.List(context.Background(), conn)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "JSC", entries[1].Label)
	assert.Equal(t, int64(2), entries[1].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}
