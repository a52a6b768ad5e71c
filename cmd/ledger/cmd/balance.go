package cmd

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/shunichi-ikebuchi/finance-ledger/pkg/converter"
	"github.com/shunichi-ikebuchi/finance-ledger/pkg/db"
)

// balanceCmd represents the balance command.
var balanceCmd = &cobra.Command{
	Use:   "balance",
	Short: "Display ledger statistics",
	Long: `Display the number of stored transactions and the current balance.

Example:
  ledger balance`,
	Run: runBalance,
}

func runBalance(cmd *cobra.Command, args []string) {
	cfg, pathResolver := loadConfig()

	conn := openDatabase(cfg, pathResolver)
	defer conn.Close()

	store := db.NewTransactionStore(conn)
	ctx := cmd.Context()

	count, err := store.Count(ctx)
	exitOnError(err, "failed to count transactions")

	balance, err := store.SumBalance(ctx)
	exitOnError(err, "failed to sum balance")

	currency := cfg.Ledger.Currency
	if currency == "" {
		mapper, err := converter.NewMapper(cfg.Ledger.MappingFile)
		exitOnError(err, "failed to load account mapping")
		currency = mapper.Currency()
	}

	fmt.Println("\n=== Ledger Statistics ===")
	fmt.Printf("Transactions:  %d\n", count)
	fmt.Printf("Balance:       %s %s\n", balance.StringFixed(2), currency)
	fmt.Println()

	slog.Info("Statistics displayed successfully")
}
