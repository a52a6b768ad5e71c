// Package importer replays a legacy ledger export into the database.
package importer

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/shunichi-ikebuchi/finance-ledger/pkg/db"
	"github.com/shunichi-ikebuchi/finance-ledger/pkg/model"
)

// ErrFileNotFound is returned when the legacy export does not exist.
var ErrFileNotFound = errors.New("legacy file not found")

// Load reads a legacy export: a list of {descricao, valor, data} records.
// Files ending in .yaml or .yml are decoded as YAML, everything else as JSON.
// The first invalid record aborts the load.
func Load(path string) ([]model.Transaction, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read legacy file: %w", err)
	}

	var inputs []model.TransactionInput
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &inputs); err != nil {
			return nil, fmt.Errorf("failed to parse YAML: %w", err)
		}
	default:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.UseNumber()
		if err := dec.Decode(&inputs); err != nil {
			return nil, fmt.Errorf("failed to parse JSON: %w", err)
		}
	}

	transactions := make([]model.Transaction, 0, len(inputs))
	for i, in := range inputs {
		txn, err := in.Parse()
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		transactions = append(transactions, txn)
	}

	return transactions, nil
}

// Import inserts the transactions in order inside a single database transaction.
// Either every record is stored or none is.
func Import(ctx context.Context, conn *db.Connection, transactions []model.Transaction) ([]model.Transaction, error) {
	store := db.NewTransactionStore(conn)
	created := make([]model.Transaction, 0, len(transactions))

	err := conn.Transaction(ctx, func(tx *sql.Tx) error {
		txStore := store.WithTx(tx)
		for i, txn := range transactions {
			saved, err := txStore.Create(ctx, txn.Description, txn.Amount, txn.Date)
			if err != nil {
				return fmt.Errorf("record %d: %w", i, err)
			}
			slog.Info("Migrating transaction", "description", saved.Description, "id", saved.ID)
			created = append(created, *saved)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return created, nil
}

// ImportFile loads path and imports its records.
func ImportFile(ctx context.Context, conn *db.Connection, path string) ([]model.Transaction, error) {
	transactions, err := Load(path)
	if err != nil {
		return nil, err
	}
	slog.Info("Records found in legacy file", "count", len(transactions), "path", path)

	return Import(ctx, conn, transactions)
}
