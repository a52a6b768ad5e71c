package importer

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/shunichi-ikebuchi/finance-ledger/pkg/db"
	"github.com/shunichi-ikebuchi/finance-ledger/pkg/model"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write %s: %v", name, err)
	}
	return path
}

func openTestConnection(t *testing.T) *db.Connection {
	t.Helper()
	conn, err := db.Open(db.DriverSQLite, filepath.Join(t.TempDir(), "ledger.db"))
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	t.Cleanup(func() {
		_ = conn.Close()
	})
	return conn
}

const legacyJSON = `[
  {"descricao": "Salário", "valor": 5000.00, "data": "2024-01-05"},
  {"descricao": "Aluguel", "valor": -1200.00, "data": "2024-01-10"},
  {"descricao": "Bônus", "valor": "300.50", "data": "2023-12-20"}
]`

func TestLoadJSON(t *testing.T) {
	txns, err := Load(writeFile(t, "financas.json", legacyJSON))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(txns) != 3 {
		t.Fatalf("Load() returned %d records, expected 3", len(txns))
	}

	// File order is preserved.
	expected := []string{"Salário", "Aluguel", "Bônus"}
	for i, desc := range expected {
		if txns[i].Description != desc {
			t.Errorf("Load()[%d] = %q, expected %q", i, txns[i].Description, desc)
		}
	}
	if !txns[2].Amount.Equal(decimal.RequireFromString("300.50")) {
		t.Errorf("Load()[2].Amount = %s, expected 300.50", txns[2].Amount)
	}
}

func TestLoadYAML(t *testing.T) {
	content := `
- descricao: Salário
  valor: 5000.00
  data: "2024-01-05"
- descricao: Aluguel
  valor: -1200
  data: 2024-01-10
`
	txns, err := Load(writeFile(t, "financas.yaml", content))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(txns) != 2 {
		t.Fatalf("Load() returned %d records, expected 2", len(txns))
	}
	if txns[1].Date.String() != "2024-01-10" {
		t.Errorf("Load()[1].Date = %s, expected 2024-01-10", txns[1].Date)
	}
	if !txns[1].Amount.Equal(decimal.NewFromInt(-1200)) {
		t.Errorf("Load()[1].Amount = %s, expected -1200", txns[1].Amount)
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.json"))
	if !errors.Is(err, ErrFileNotFound) {
		t.Errorf("Load() error = %v, expected ErrFileNotFound", err)
	}
}

func TestLoadInvalidRecord(t *testing.T) {
	content := `[
  {"descricao": "ok", "valor": 1, "data": "2024-01-05"},
  {"descricao": "sem data", "valor": 2}
]`
	_, err := Load(writeFile(t, "financas.json", content))

	var vErr *model.ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("Load() error = %v, expected *model.ValidationError", err)
	}
}

func TestImportFile(t *testing.T) {
	ctx := context.Background()
	conn := openTestConnection(t)

	created, err := ImportFile(ctx, conn, writeFile(t, "financas.json", legacyJSON))
	if err != nil {
		t.Fatalf("ImportFile() error = %v", err)
	}
	if len(created) != 3 {
		t.Fatalf("ImportFile() created %d records, expected 3", len(created))
	}
	for i := 1; i < len(created); i++ {
		if created[i].ID <= created[i-1].ID {
			t.Errorf("IDs not assigned in file order: %d after %d", created[i].ID, created[i-1].ID)
		}
	}

	balance, err := db.NewTransactionStore(conn).SumBalance(ctx)
	if err != nil {
		t.Fatalf("SumBalance() error = %v", err)
	}
	if !balance.Equal(decimal.RequireFromString("4100.50")) {
		t.Errorf("SumBalance() = %s, expected 4100.50", balance)
	}
}

func TestImportIsAllOrNothing(t *testing.T) {
	ctx := context.Background()
	conn := openTestConnection(t)

	txns, err := Load(writeFile(t, "financas.json", legacyJSON))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	// The second record is rejected after the first one was inserted.
	trigger := `
		CREATE TRIGGER reject_rent BEFORE INSERT ON transacoes
		WHEN NEW.descricao = 'Aluguel'
		BEGIN
			SELECT RAISE(ABORT, 'rejected');
		END;
	`
	if _, err := conn.GetDB().ExecContext(ctx, trigger); err != nil {
		t.Fatalf("Failed to create trigger: %v", err)
	}

	if _, err := Import(ctx, conn, txns); err == nil {
		t.Fatal("Import() expected error from rejected record")
	}

	count, err := db.NewTransactionStore(conn).Count(ctx)
	if err != nil {
		t.Fatalf("Count() error = %v", err)
	}
	if count != 0 {
		t.Errorf("Count() after failed import = %d, expected 0", count)
	}
}

func TestImportFileMissingAbortsBeforeWriting(t *testing.T) {
	ctx := context.Background()
	conn := openTestConnection(t)

	if _, err := ImportFile(ctx, conn, filepath.Join(t.TempDir(), "financas.json")); !errors.Is(err, ErrFileNotFound) {
		t.Fatalf("ImportFile() error = %v, expected ErrFileNotFound", err)
	}

	count, err := db.NewTransactionStore(conn).Count(ctx)
	if err != nil {
		t.Fatalf("Count() error = %v", err)
	}
	if count != 0 {
		t.Errorf("Count() = %d, expected 0", count)
	}
}
