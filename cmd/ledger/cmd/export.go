package cmd

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/shunichi-ikebuchi/finance-ledger/pkg/beancount"
	"github.com/shunichi-ikebuchi/finance-ledger/pkg/converter"
	"github.com/shunichi-ikebuchi/finance-ledger/pkg/db"
	"github.com/shunichi-ikebuchi/finance-ledger/pkg/pathutil"
)

var (
	exportDir string
	dryRun    bool
)

// exportCmd represents the export command.
var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the ledger to Beancount files",
	Long: `Export every transaction to monthly Beancount files.

This command:
1. Reads all transactions ordered by date
2. Maps each one to a counter account using the YAML mapping (LEDGER_MAPPING_FILE)
3. Rewrites {out}/{YYYY}/{YYYY-MM}.beancount for every month with transactions

Running it again produces the same files.

Example:
  ledger export
  ledger export --out ~/beancount --dry-run`,
	Run: runExport,
}

func init() {
	exportCmd.Flags().StringVar(&exportDir, "out", "", "Export directory (default {LEDGER_DATA_DIR}/beancount)")
	exportCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Dry run mode (print instead of writing files)")
}

func runExport(cmd *cobra.Command, args []string) {
	cfg, pathResolver := loadConfig()

	if exportDir != "" {
		pathResolver = pathutil.New(pathutil.Config{
			DataDir:      pathResolver.GetDataDir(),
			DatabasePath: pathResolver.GetDatabasePath(),
			LegacyFile:   pathResolver.GetLegacyFile(),
			ExportDir:    exportDir,
		})
	}

	conn := openDatabase(cfg, pathResolver)
	defer conn.Close()

	transactions, err := db.NewTransactionStore(conn).List(cmd.Context())
	exitOnError(err, "failed to list transactions")

	if len(transactions) == 0 {
		fmt.Println("No transactions to export")
		return
	}

	// Initialize account mapper
	mapper, err := converter.NewMapper(cfg.Ledger.MappingFile)
	exitOnError(err, "failed to load account mapping")

	cvtr := converter.NewConverter(mapper, cfg.Ledger.Currency)
	beancountRepo := beancount.NewFileSystemRepository(pathResolver)

	months, byMonth := cvtr.GroupByMonth(transactions)

	filesWritten := 0
	for _, month := range months {
		monthTxns := byMonth[month]

		filePath, err := pathResolver.GetMonthFilePath(month)
		if err != nil {
			slog.Error("Failed to get month file path", "month", month, "error", err)
			continue
		}

		if dryRun {
			fmt.Printf("[DRY RUN] Would write %s\n", filePath)
			for _, txn := range monthTxns {
				fmt.Println(beancount.Format(txn))
			}
			continue
		}

		if err := beancountRepo.WriteMonthFile(month, monthTxns); err != nil {
			slog.Error("Failed to write month file", "month", month, "error", err)
			continue
		}

		filesWritten++
		slog.Info("Updated file", "path", filePath, "transactions", len(monthTxns))
	}

	if !dryRun {
		fmt.Printf("Exported %d transactions to %d files in %s\n",
			len(transactions), filesWritten, pathResolver.GetExportDir())
	}

	slog.Info("Export completed", "transactions", len(transactions), "files_written", filesWritten)
}
