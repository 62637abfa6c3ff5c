package database

import (
	"database/sql"
)

// DBTX is the common query surface of *DB and *Tx so callers can run
// the same statements inside or outside a transaction.
type DBTX interface {
	Exec(query string, args ...interface{}) (sql.Result, error)
	Query(query string, args ...interface{}) (*sql.Rows, error)
	QueryRow(query string, args ...interface{}) *sql.Row
	GetDialect() Dialect
}

// Tx wraps sql.Tx with dialect-aware methods
type Tx struct {
	*sql.Tx
	dialect Dialect
}

// Begin starts a new transaction
func (db *DB) Begin() (*Tx, error) {
	tx, err := db.DB.Begin()
	if err != nil {
		return nil, err
	}
	return &Tx{Tx: tx, dialect: db.Dialect}, nil
}

// GetDialect returns the database dialect
func (db *DB) GetDialect() Dialect {
	return db.Dialect
}

// Query executes a query with automatic placeholder rewriting
func (tx *Tx) Query(query string, args ...interface{}) (*sql.Rows, error) {
	return tx.Tx.Query(tx.dialect.RewriteQuery(query), args...)
}

// QueryRow executes a query that returns a single row with automatic placeholder rewriting
func (tx *Tx) QueryRow(query string, args ...interface{}) *sql.Row {
	return tx.Tx.QueryRow(tx.dialect.RewriteQuery(query), args...)
}

// Exec executes a query that doesn't return rows with automatic placeholder rewriting
func (tx *Tx) Exec(query string, args ...interface{}) (sql.Result, error) {
	return tx.Tx.Exec(tx.dialect.RewriteQuery(query), args...)
}

// GetDialect returns the transaction's dialect
func (tx *Tx) GetDialect() Dialect {
	return tx.dialect
}

// Commit commits the transaction
func (tx *Tx) Commit() error {
	return tx.Tx.Commit()
}

// Rollback aborts the transaction
func (tx *Tx) Rollback() error {
	return tx.Tx.Rollback()
}
