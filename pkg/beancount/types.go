// Package beancount provides Beancount entry formatting and monthly file storage.
package beancount

import "github.com/shopspring/decimal"

// Transaction represents a Beancount transaction.
type Transaction struct {
	Date      string            // YYYY-MM-DD
	Narration string            // Transaction description
	Payee     string            // Payee name (optional)
	Tags      []string          // Tags (e.g., ["ledger-12"])
	Metadata  map[string]string // Metadata key-value pairs
	Postings  []Posting         // Transaction postings
}

// Posting represents a posting in a Beancount transaction.
type Posting struct {
	Account  string          // Account name (e.g., "Assets:Conta")
	Amount   decimal.Decimal // positive for debit, negative for credit
	Currency string          // Currency code (e.g., "BRL")
	Comment  string          // Posting comment (optional)
}
