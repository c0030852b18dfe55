package database

import (
	"database/sql"
	"strings"
)

// DBTX is the subset of database/sql shared by *sql.DB and *sql.Tx.
// Ledger operations that must run inside a caller-owned unit of work
// take a DBTX instead of reaching for a global handle; the caller
// decides the transaction boundary.
type DBTX interface {
	Exec(query string, args ...interface{}) (sql.Result, error)
	Query(query string, args ...interface{}) (*sql.Rows, error)
	QueryRow(query string, args ...interface{}) *sql.Row
}

// prefixColumns qualifies a comma-separated column list with a table
// alias, so shared column constants work in joined queries.
func prefixColumns(alias, columns string) string {
	parts := strings.Split(columns, ",")
	for i, part := range parts {
		parts[i] = alias + "." + strings.TrimSpace(part)
	}
	return strings.Join(parts, ", ")
}
