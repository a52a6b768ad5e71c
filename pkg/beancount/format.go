package beancount

import (
	"fmt"
	"sort"
	"strings"
)

// Format renders a transaction as a Beancount entry, ending with a newline.
//
//	2024-01-05 * "Empresa" "Salário" #ledger-1
//	  ledger_id: "1"
//	  Assets:Conta         5000.00 BRL
//	  Income:Salario      -5000.00 BRL
func Format(txn Transaction) string {
	var b strings.Builder

	b.WriteString(txn.Date)
	b.WriteString(" *")
	if txn.Payee != "" {
		fmt.Fprintf(&b, " %s", quote(txn.Payee))
	}
	fmt.Fprintf(&b, " %s", quote(txn.Narration))
	for _, tag := range txn.Tags {
		fmt.Fprintf(&b, " #%s", tag)
	}
	b.WriteByte('\n')

	keys := make([]string, 0, len(txn.Metadata))
	for k := range txn.Metadata {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(&b, "  %s: %s\n", k, quote(txn.Metadata[k]))
	}

	width := 0
	for _, p := range txn.Postings {
		if len(p.Account) > width {
			width = len(p.Account)
		}
	}
	for _, p := range txn.Postings {
		fmt.Fprintf(&b, "  %-*s  %12s %s", width, p.Account, p.Amount.StringFixed(2), p.Currency)
		if p.Comment != "" {
			fmt.Fprintf(&b, " ; %s", p.Comment)
		}
		b.WriteByte('\n')
	}

	return b.String()
}

func quote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `\"`) + `"`
}
