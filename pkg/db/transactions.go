package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"

	"github.com/shopspring/decimal"

	"github.com/shunichi-ikebuchi/finance-ledger/pkg/model"
)

// ErrNotFound is returned when no transaction matches the given ID.
var ErrNotFound = errors.New("transaction not found")

// querier is satisfied by both *sql.DB and *sql.Tx.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

// amountColumn scans valor, turning non-finite floats into an error instead of a decimal panic.
type amountColumn struct {
	dst *decimal.Decimal
}

func (a amountColumn) Scan(src interface{}) error {
	if f, ok := src.(float64); ok && (math.IsInf(f, 0) || math.IsNaN(f)) {
		return fmt.Errorf("%w: stored value %v", model.ErrAmountOutOfRange, f)
	}
	return a.dst.Scan(src)
}

func checkAmount(amount decimal.Decimal) error {
	if !model.ValidAmount(amount) {
		return model.ErrAmountOutOfRange
	}
	return nil
}

// TransactionStore owns the transacoes table and all reads and writes against it.
// Returned transactions are copies; changing them does not touch storage.
type TransactionStore struct {
	q       querier
	dialect Dialect
}

// NewTransactionStore creates a TransactionStore backed by the connection pool.
func NewTransactionStore(conn *Connection) *TransactionStore {
	return &TransactionStore{q: conn.db, dialect: conn.dialect}
}

// WithTx returns a store whose statements run inside tx.
func (s *TransactionStore) WithTx(tx *sql.Tx) *TransactionStore {
	return &TransactionStore{q: tx, dialect: s.dialect}
}

// Create inserts a new transaction and returns it with its assigned ID.
// Identical submissions create distinct rows.
func (s *TransactionStore) Create(ctx context.Context, description string, amount decimal.Decimal, date model.Date) (*model.Transaction, error) {
	if err := checkAmount(amount); err != nil {
		return nil, fmt.Errorf("failed to create transaction: %w", err)
	}

	query := s.dialect.Rebind(`
		INSERT INTO transacoes (descricao, valor, data)
		VALUES (?, ?, ?)
		RETURNING id
	`)

	var id int64
	if err := s.q.QueryRowContext(ctx, query, description, amount, date).Scan(&id); err != nil {
		return nil, fmt.Errorf("failed to create transaction: %w", err)
	}

	return &model.Transaction{
		ID:          id,
		Description: description,
		Amount:      amount,
		Date:        date,
	}, nil
}

// Get retrieves a transaction by ID.
func (s *TransactionStore) Get(ctx context.Context, id int64) (*model.Transaction, error) {
	query := s.dialect.Rebind(`
		SELECT id, descricao, valor, data
		FROM transacoes
		WHERE id = ?
	`)

	var txn model.Transaction
	err := s.q.QueryRowContext(ctx, query, id).Scan(
		&txn.ID,
		&txn.Description,
		amountColumn{&txn.Amount},
		&txn.Date,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get transaction: %w", err)
	}

	return &txn, nil
}

// List returns every transaction ordered by date, then by ID.
func (s *TransactionStore) List(ctx context.Context) ([]model.Transaction, error) {
	query := `
		SELECT id, descricao, valor, data
		FROM transacoes
		ORDER BY data ASC, id ASC
	`

	rows, err := s.q.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	defer rows.Close()

	transactions := []model.Transaction{}
	for rows.Next() {
		var txn model.Transaction
		if err := rows.Scan(
			&txn.ID,
			&txn.Description,
			amountColumn{&txn.Amount},
			&txn.Date,
		); err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		transactions = append(transactions, txn)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate transactions: %w", err)
	}

	return transactions, nil
}

// Update replaces the description, amount and date of an existing transaction.
// Returns ErrNotFound if no row has the given ID.
func (s *TransactionStore) Update(ctx context.Context, id int64, description string, amount decimal.Decimal, date model.Date) error {
	if err := checkAmount(amount); err != nil {
		return fmt.Errorf("failed to update transaction: %w", err)
	}

	query := s.dialect.Rebind(`
		UPDATE transacoes
		SET descricao = ?, valor = ?, data = ?
		WHERE id = ?
	`)

	result, err := s.q.ExecContext(ctx, query, description, amount, date, id)
	if err != nil {
		return fmt.Errorf("failed to update transaction: %w", err)
	}

	return requireAffected(result)
}

// Delete removes a transaction.
// Returns ErrNotFound if no row has the given ID.
func (s *TransactionStore) Delete(ctx context.Context, id int64) error {
	query := s.dialect.Rebind(`DELETE FROM transacoes WHERE id = ?`)

	result, err := s.q.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete transaction: %w", err)
	}

	return requireAffected(result)
}

// SumBalance returns the sum of all amounts, computed by the database and rounded to cents.
// An empty ledger has a balance of zero.
func (s *TransactionStore) SumBalance(ctx context.Context) (decimal.Decimal, error) {
	var balance decimal.Decimal
	err := s.q.QueryRowContext(ctx, `SELECT COALESCE(SUM(valor), 0) FROM transacoes`).Scan(amountColumn{&balance})
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum balance: %w", err)
	}
	// REAL columns add float noise (0.1 + 0.2 = 0.30000000000000004).
	return balance.Round(2), nil
}

// Count returns the number of stored transactions.
func (s *TransactionStore) Count(ctx context.Context) (int, error) {
	var count int
	if err := s.q.QueryRowContext(ctx, `SELECT COUNT(*) FROM transacoes`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count transactions: %w", err)
	}
	return count, nil
}

func requireAffected(result sql.Result) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}
