package beancount

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/shunichi-ikebuchi/finance-ledger/pkg/pathutil"
)

func sampleTransaction() Transaction {
	return Transaction{
		Date:      "2024-01-05",
		Narration: `Salário "janeiro"`,
		Tags:      []string{"ledger-1"},
		Metadata:  map[string]string{"ledger_id": "1"},
		Postings: []Posting{
			{Account: "Assets:Conta", Amount: decimal.RequireFromString("5000"), Currency: "BRL"},
			{Account: "Income:Salario", Amount: decimal.RequireFromString("-5000"), Currency: "BRL"},
		},
	}
}

func TestFormat(t *testing.T) {
	expected := `2024-01-05 * "Salário \"janeiro\"" #ledger-1
  ledger_id: "1"
  Assets:Conta         5000.00 BRL
  Income:Salario      -5000.00 BRL
`
	if got := Format(sampleTransaction()); got != expected {
		t.Errorf("Format() =\n%s\nexpected\n%s", got, expected)
	}
}

func TestFormatPayeeAndComment(t *testing.T) {
	txn := sampleTransaction()
	txn.Payee = "Empresa"
	txn.Postings[0].Comment = "depósito"

	got := Format(txn)
	if !strings.HasPrefix(got, `2024-01-05 * "Empresa" "Salário \"janeiro\""`) {
		t.Errorf("Format() header = %q", strings.SplitN(got, "\n", 2)[0])
	}
	if !strings.Contains(got, "BRL ; depósito") {
		t.Errorf("Format() missing posting comment:\n%s", got)
	}
}

func TestWriteAndReadMonthFile(t *testing.T) {
	resolver := pathutil.New(pathutil.Config{ExportDir: t.TempDir()})
	repo := NewFileSystemRepository(resolver)
	repo.now = func() time.Time { return time.Date(2024, 2, 1, 12, 0, 0, 0, time.UTC) }

	content, err := repo.ReadMonthFile("2024-01")
	if err != nil {
		t.Fatalf("ReadMonthFile() error = %v", err)
	}
	if content != "" {
		t.Errorf("ReadMonthFile() before write = %q, expected empty", content)
	}

	txns := []Transaction{sampleTransaction()}
	// Writing twice must not duplicate entries.
	for i := 0; i < 2; i++ {
		if err := repo.WriteMonthFile("2024-01", txns); err != nil {
			t.Fatalf("WriteMonthFile() error = %v", err)
		}
	}

	content, err = repo.ReadMonthFile("2024-01")
	if err != nil {
		t.Fatalf("ReadMonthFile() error = %v", err)
	}
	if !strings.HasPrefix(content, "; Ledger export for 2024-01\n; Generated at 2024-02-01T12:00:00Z\n") {
		t.Errorf("ReadMonthFile() header = %q", content)
	}
	if strings.Count(content, "Assets:Conta") != 1 {
		t.Errorf("ReadMonthFile() contains %d entries, expected 1", strings.Count(content, "Assets:Conta"))
	}

	months, err := repo.GetMonthFilesInYear("2024")
	if err != nil {
		t.Fatalf("GetMonthFilesInYear() error = %v", err)
	}
	if len(months) != 1 || months[0] != "2024-01" {
		t.Errorf("GetMonthFilesInYear() = %v, expected [2024-01]", months)
	}

	months, err = repo.GetMonthFilesInYear("1999")
	if err != nil {
		t.Fatalf("GetMonthFilesInYear() error = %v", err)
	}
	if len(months) != 0 {
		t.Errorf("GetMonthFilesInYear(1999) = %v, expected empty", months)
	}
}

func TestWriteMonthFileInvalidMonth(t *testing.T) {
	repo := NewFileSystemRepository(pathutil.New(pathutil.Config{ExportDir: t.TempDir()}))
	if err := repo.WriteMonthFile("January", nil); err == nil {
		t.Error("WriteMonthFile() expected error for invalid month")
	}
}
