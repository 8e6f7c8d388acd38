// Package gateway maps registry entities to rows of their tables.
//
// A single generic Gateway does the work for every table; what differs
// between entities (columns, keys, joins, DDL) lives in a Schema value.
// Every value reaches the store as a bound parameter, never as SQL text.
package gateway

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"enterprise-registry/internal/store"
)

// ErrNotFound is returned by Update and Delete when the key matches no row.
var ErrNotFound = errors.New("no row matches key")

// Schema describes one table well enough to generate its statements.
type Schema struct {
	// Table is the table name; Alias is the name it goes by in Select.
	Table string
	Alias string

	// Key lists the primary key columns. Serial marks a single store
	// generated key that Insert requests back with RETURNING.
	Key    []string
	Serial bool

	// Columns are the writable non-key columns, in statement order.
	Columns []string

	// DDL creates the table if absent.
	DDL string

	// Select is the SELECT ... FROM ... [JOIN ...] the gateway reads rows
	// with; the column names it yields must match the entity's db tags.
	Select string
}

func (s Schema) ref(column string) string {
	if s.Alias == "" {
		return column
	}
	return s.Alias + "." + column
}

func (s Schema) orderBy() string {
	refs := make([]string, len(s.Key))
	for i, k := range s.Key {
		refs[i] = s.ref(k)
	}
	return " ORDER BY " + strings.Join(refs, ", ")
}

func (s Schema) insertSQL() string {
	cols := s.Columns
	if !s.Serial {
		cols = append(append([]string{}, s.Key...), s.Columns...)
	}
	params := make([]string, len(cols))
	for i, c := range cols {
		params[i] = ":" + c
	}
	q := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		s.Table, strings.Join(cols, ", "), strings.Join(params, ", "))
	if s.Serial {
		q += " RETURNING " + s.Key[0]
	}
	return q
}

func (s Schema) updateSQL() string {
	set := make([]string, len(s.Columns))
	for i, c := range s.Columns {
		set[i] = c + " = :" + c
	}
	where := make([]string, len(s.Key))
	for i, k := range s.Key {
		where[i] = k + " = :" + k
	}
	return fmt.Sprintf("UPDATE %s SET %s WHERE %s",
		s.Table, strings.Join(set, ", "), strings.Join(where, " AND "))
}

func (s Schema) deleteSQL() string {
	where := make([]string, len(s.Key))
	for i, k := range s.Key {
		where[i] = fmt.Sprintf("%s = $%d", k, i+1)
	}
	return fmt.Sprintf("DELETE FROM %s WHERE %s", s.Table, strings.Join(where, " AND "))
}

// Gateway translates values of T to and from rows of one table.
type Gateway[T any] struct {
	conn   *store.Conn
	schema Schema

	insertSQL string
	updateSQL string
	deleteSQL string
}

// New builds a gateway for schema over conn. conn is borrowed, not owned.
func New[T any](conn *store.Conn, schema Schema) *Gateway[T] {
	return &Gateway[T]{
		conn:      conn,
		schema:    schema,
		insertSQL: schema.insertSQL(),
		updateSQL: schema.updateSQL(),
		deleteSQL: schema.deleteSQL(),
	}
}

// Schema returns the table description the gateway was built with.
func (g *Gateway[T]) Schema() Schema { return g.schema }

// EnsureSchema creates the table if it does not exist yet. Referenced tables
// must already exist.
func (g *Gateway[T]) EnsureSchema(ctx context.Context) error {
	if _, err := g.conn.Exec(ctx, g.schema.DDL); err != nil {
		return fmt.Errorf("failed to create table %s: %w", g.schema.Table, err)
	}
	return nil
}

// FindAll returns every row, lookup names joined in, ordered by key.
func (g *Gateway[T]) FindAll(ctx context.Context) ([]T, error) {
	items := []T{}
	if err := g.conn.Select(ctx, &items, g.schema.Select+g.schema.orderBy()); err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", g.schema.Table, err)
	}
	return items, nil
}

// FindByID returns the row with the given single-column key. When no row
// matches it returns the zero T (ID 0) and a nil error.
func (g *Gateway[T]) FindByID(ctx context.Context, id int64) (T, error) {
	if len(g.schema.Key) != 1 {
		var zero T
		return zero, fmt.Errorf("table %s has a composite key", g.schema.Table)
	}
	return g.FindOne(ctx, g.schema.Key[0], id)
}

// FindOne returns the first row whose column equals value, or the zero T.
func (g *Gateway[T]) FindOne(ctx context.Context, column string, value interface{}) (T, error) {
	var item T
	query := g.schema.Select + " WHERE " + g.schema.ref(column) + " = $1" + g.schema.orderBy() + " LIMIT 1"
	err := g.conn.Get(ctx, &item, query, value)
	if errors.Is(err, sql.ErrNoRows) {
		var zero T
		return zero, nil
	}
	if err != nil {
		var zero T
		return zero, fmt.Errorf("failed to get %s by %s: %w", g.schema.Table, column, err)
	}
	return item, nil
}

// FindAllBy returns every row whose column equals value, ordered by key.
func (g *Gateway[T]) FindAllBy(ctx context.Context, column string, value interface{}) ([]T, error) {
	items := []T{}
	query := g.schema.Select + " WHERE " + g.schema.ref(column) + " = $1" + g.schema.orderBy()
	if err := g.conn.Select(ctx, &items, query, value); err != nil {
		return nil, fmt.Errorf("failed to list %s by %s: %w", g.schema.Table, column, err)
	}
	return items, nil
}

// Insert writes item and returns the key the store generated for it, in the
// same round trip. Tables without a serial key return 0. On failure the
// returned id is -1.
func (g *Gateway[T]) Insert(ctx context.Context, item T) (int64, error) {
	if !g.schema.Serial {
		if _, err := g.conn.NamedExec(ctx, g.insertSQL, item); err != nil {
			return -1, fmt.Errorf("failed to insert into %s: %w", g.schema.Table, err)
		}
		return 0, nil
	}

	var id int64
	if err := g.conn.NamedGet(ctx, &id, g.insertSQL, item); err != nil {
		return -1, fmt.Errorf("failed to insert into %s: %w", g.schema.Table, err)
	}
	return id, nil
}

// Update overwrites every non-key column of the row identified by item's key.
func (g *Gateway[T]) Update(ctx context.Context, item T) error {
	result, err := g.conn.NamedExec(ctx, g.updateSQL, item)
	if err != nil {
		return fmt.Errorf("failed to update %s: %w", g.schema.Table, err)
	}
	return checkAffected(result, g.schema.Table)
}

// Delete removes the row with the given key values, in Key order.
func (g *Gateway[T]) Delete(ctx context.Context, key ...interface{}) error {
	if len(key) != len(g.schema.Key) {
		return fmt.Errorf("table %s expects %d key values, got %d", g.schema.Table, len(g.schema.Key), len(key))
	}
	result, err := g.conn.Exec(ctx, g.deleteSQL, key...)
	if err != nil {
		return fmt.Errorf("failed to delete from %s: %w", g.schema.Table, err)
	}
	return checkAffected(result, g.schema.Table)
}

func checkAffected(result sql.Result, table string) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("%s: %w", table, ErrNotFound)
	}
	return nil
}
