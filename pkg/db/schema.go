// Package db provides the SQL-backed transaction ledger store.
package db

import "context"

// sqliteSchema creates the ledger table on SQLite.
// AUTOINCREMENT keeps ids from being reused after a delete.
const sqliteSchema = `
CREATE TABLE IF NOT EXISTS transacoes (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    descricao TEXT NOT NULL,
    valor REAL NOT NULL,               -- negative = expense
    data TEXT NOT NULL                 -- YYYY-MM-DD
);

CREATE INDEX IF NOT EXISTS idx_transacoes_data
    ON transacoes(data, id);
`

// postgresSchema creates the ledger table on PostgreSQL.
const postgresSchema = `
CREATE TABLE IF NOT EXISTS transacoes (
    id BIGSERIAL PRIMARY KEY,
    descricao TEXT NOT NULL,
    valor NUMERIC NOT NULL,
    data DATE NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_transacoes_data
    ON transacoes(data, id);
`

// InitializeSchema creates all tables if they don't exist.
func InitializeSchema(ctx context.Context, conn *Connection) error {
	if _, err := conn.db.ExecContext(ctx, conn.dialect.Schema()); err != nil {
		return err
	}
	return nil
}
