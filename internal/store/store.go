package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/sirupsen/logrus"
)

// ErrNotConnected is returned by every statement helper when the session is
// not (or no longer) established.
var ErrNotConnected = errors.New("not connected to database")

// Conn owns the single session to the relational store. Gateways hold a
// non-owning reference to it and go through its helpers for every statement,
// so connectivity is checked and store failures are reported in one place.
type Conn struct {
	mu        sync.RWMutex
	db        *sqlx.DB
	sessionID string
	log       logrus.FieldLogger

	// MaxOpenConns caps the pool behind the session. One models the single
	// exclusive session the registry is designed for.
	MaxOpenConns int
}

// NewConn creates an unconnected Conn.
func NewConn(log logrus.FieldLogger) *Conn {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Conn{log: log, MaxOpenConns: 1}
}

// NewConnFromDB wraps an existing *sql.DB as an established session. Useful for tests.
func NewConnFromDB(db *sql.DB, log logrus.FieldLogger) *Conn {
	c := NewConn(log)
	c.db = sqlx.NewDb(db, "postgres")
	c.sessionID = uuid.NewString()
	return c
}

// Connect opens and pings the session described by dsn.
func (c *Conn) Connect(ctx context.Context, dsn string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.db != nil {
		return fmt.Errorf("already connected (session %s)", c.sessionID)
	}

	db, err := sqlx.Open("postgres", dsn)
	if err != nil {
		c.log.WithError(err).Error("failed to open database")
		return fmt.Errorf("failed to open database: %w", err)
	}

	if pingErr := db.PingContext(ctx); pingErr != nil {
		_ = db.Close()
		c.log.WithError(pingErr).Error("failed to ping database")
		return fmt.Errorf("failed to ping database: %w", pingErr)
	}

	if c.MaxOpenConns > 0 {
		db.SetMaxOpenConns(c.MaxOpenConns)
		db.SetMaxIdleConns(c.MaxOpenConns)
	}

	c.db = db
	c.sessionID = uuid.NewString()
	c.log.WithField("session", c.sessionID).Info("connected to database")
	return nil
}

// IsConnected reports whether a session is established.
func (c *Conn) IsConnected() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.db != nil
}

// SessionID returns the id assigned to the current session, or "" when disconnected.
func (c *Conn) SessionID() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.sessionID
}

// Disconnect releases the session. Safe to call when not connected.
func (c *Conn) Disconnect() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.db == nil {
		return nil
	}

	err := c.db.Close()
	c.log.WithField("session", c.sessionID).Info("disconnected from database")
	c.db = nil
	c.sessionID = ""
	if err != nil {
		return fmt.Errorf("failed to close database: %w", err)
	}
	return nil
}

func (c *Conn) handle() (*sqlx.DB, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.db == nil {
		c.log.Error(ErrNotConnected.Error())
		return nil, ErrNotConnected
	}
	return c.db, nil
}

// Exec runs a single statement that returns no rows.
func (c *Conn) Exec(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	db, err := c.handle()
	if err != nil {
		return nil, err
	}
	res, err := db.ExecContext(ctx, query, args...)
	if err != nil {
		return nil, c.report(err, query)
	}
	return res, nil
}

// NamedExec runs a single statement whose :name parameters are bound from arg.
func (c *Conn) NamedExec(ctx context.Context, query string, arg interface{}) (sql.Result, error) {
	db, err := c.handle()
	if err != nil {
		return nil, err
	}
	res, err := db.NamedExecContext(ctx, query, arg)
	if err != nil {
		return nil, c.report(err, query)
	}
	return res, nil
}

// Get scans a single row into dest. sql.ErrNoRows is returned unlogged.
func (c *Conn) Get(ctx context.Context, dest interface{}, query string, args ...interface{}) error {
	db, err := c.handle()
	if err != nil {
		return err
	}
	if err := db.GetContext(ctx, dest, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return err
		}
		return c.report(err, query)
	}
	return nil
}

// NamedGet binds :name parameters from arg and scans the single returned row
// into dest. Used for INSERT ... RETURNING.
func (c *Conn) NamedGet(ctx context.Context, dest interface{}, query string, arg interface{}) error {
	db, err := c.handle()
	if err != nil {
		return err
	}
	bound, args, err := db.BindNamed(query, arg)
	if err != nil {
		return fmt.Errorf("failed to bind parameters: %w", err)
	}
	if err := db.QueryRowxContext(ctx, bound, args...).Scan(dest); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return err
		}
		return c.report(err, query)
	}
	return nil
}

// Select scans all returned rows into dest, which must be a pointer to a slice.
func (c *Conn) Select(ctx context.Context, dest interface{}, query string, args ...interface{}) error {
	db, err := c.handle()
	if err != nil {
		return err
	}
	if err := db.SelectContext(ctx, dest, query, args...); err != nil {
		return c.report(err, query)
	}
	return nil
}

// report logs the store's diagnostic for a failed statement and returns err unchanged.
func (c *Conn) report(err error, query string) error {
	entry := c.log.WithFields(logrus.Fields{
		"session": c.SessionID(),
		"sql":     query,
	})
	if code := Code(err); code != "" {
		entry = entry.WithField("code", code)
	}
	entry.WithError(err).Error("statement failed")
	return err
}
