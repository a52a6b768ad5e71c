package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/shunichi-ikebuchi/finance-ledger/internal/console"
	"github.com/shunichi-ikebuchi/finance-ledger/pkg/db"
)

// consoleCmd represents the console command.
var consoleCmd = &cobra.Command{
	Use:   "console",
	Short: "Run the interactive menu",
	Long: `Run the interactive menu on the terminal.

Options:
1. Add a transaction (amount and DD-MM-AAAA date are asked again until valid)
2. List all transactions by date
3. Show the current balance
4. Exit

Example:
  ledger console`,
	Run: runConsole,
}

func runConsole(cmd *cobra.Command, args []string) {
	cfg, pathResolver := loadConfig()

	conn := openDatabase(cfg, pathResolver)
	defer conn.Close()

	session := console.New(db.NewTransactionStore(conn), os.Stdin, os.Stdout)
	if err := session.Run(cmd.Context()); err != nil {
		conn.Close()
		exitOnError(err, "console session failed")
	}
}
