package converter

import (
	"sort"
	"strconv"

	"github.com/shunichi-ikebuchi/finance-ledger/pkg/beancount"
	"github.com/shunichi-ikebuchi/finance-ledger/pkg/model"
)

// Converter converts ledger transactions to Beancount format.
type Converter struct {
	mapper   *Mapper
	currency string
}

// NewConverter creates a new Converter. An empty currency falls back to the mapper's.
func NewConverter(mapper *Mapper, currency string) *Converter {
	if currency == "" {
		currency = mapper.Currency()
	}
	return &Converter{
		mapper:   mapper,
		currency: currency,
	}
}

// Convert converts a ledger transaction to a balanced Beancount transaction.
// The asset account takes the signed amount; the counter account takes its negation.
func (c *Converter) Convert(txn model.Transaction) beancount.Transaction {
	id := strconv.FormatInt(txn.ID, 10)

	return beancount.Transaction{
		Date:      txn.Date.String(),
		Narration: txn.Description,
		Tags:      []string{"ledger-" + id},
		Metadata:  map[string]string{"ledger_id": id},
		Postings: []beancount.Posting{
			{
				Account:  c.mapper.AssetAccount(),
				Amount:   txn.Amount,
				Currency: c.currency,
			},
			{
				Account:  c.mapper.GetCounterAccount(txn.Description, txn.IsIncome()),
				Amount:   txn.Amount.Neg(),
				Currency: c.currency,
			},
		},
	}
}

// GroupByMonth converts transactions and groups them by YYYY-MM, keeping input order
// within each month. The returned keys are sorted.
func (c *Converter) GroupByMonth(transactions []model.Transaction) ([]string, map[string][]beancount.Transaction) {
	grouped := make(map[string][]beancount.Transaction)
	for _, txn := range transactions {
		month := txn.Date.YearMonth()
		grouped[month] = append(grouped[month], c.Convert(txn))
	}

	months := make([]string, 0, len(grouped))
	for month := range grouped {
		months = append(months, month)
	}
	sort.Strings(months)

	return months, grouped
}
