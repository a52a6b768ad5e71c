package cmd

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/shunichi-ikebuchi/finance-ledger/pkg/importer"
)

var importFile string

// importCmd represents the import command.
var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Import a legacy JSON or YAML export",
	Long: `Import a legacy export of {descricao, valor, data} records.

All records are inserted in file order inside a single database transaction:
either every record is stored or none is. A missing file aborts the import.

Example:
  ledger import
  ledger import --file backup/financas.json
  ledger import --file financas.yaml`,
	Run: runImport,
}

func init() {
	importCmd.Flags().StringVar(&importFile, "file", "", "Legacy file to import (default {LEDGER_DATA_DIR}/financas.json)")
}

func runImport(cmd *cobra.Command, args []string) {
	cfg, pathResolver := loadConfig()

	path := importFile
	if path == "" {
		path = pathResolver.GetLegacyFile()
	}

	// Read the export before touching the database.
	transactions, err := importer.Load(path)
	exitOnError(err, "failed to load legacy file")

	conn := openDatabase(cfg, pathResolver)
	defer conn.Close()

	slog.Info("Starting import", "file", path, "records", len(transactions))

	imported, err := importer.Import(cmd.Context(), conn, transactions)
	if err != nil {
		conn.Close()
		exitOnError(err, "import failed, no transaction was stored")
	}

	fmt.Printf("Imported %d transactions from %s\n", len(imported), path)
	slog.Info("Import completed", "imported", len(imported))
}
