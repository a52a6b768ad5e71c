// Package console runs the interactive text menu over a ledger store.
package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/shunichi-ikebuchi/finance-ledger/pkg/model"
)

// Menu options.
const (
	optionAdd     = "1"
	optionList    = "2"
	optionBalance = "3"
	optionExit    = "4"
)

const menu = `
===== Gestor de Finanças Pessoais =====
1. Adicionar nova transação
2. Listar todas as transações
3. Exibir saldo atual
4. Sair
==============================================
`

// errEndOfInput ends the session when the input stream is exhausted.
var errEndOfInput = errors.New("end of input")

// Ledger is the subset of the store the console needs.
type Ledger interface {
	Create(ctx context.Context, description string, amount decimal.Decimal, date model.Date) (*model.Transaction, error)
	List(ctx context.Context) ([]model.Transaction, error)
	SumBalance(ctx context.Context) (decimal.Decimal, error)
}

// Console is an interactive menu session.
type Console struct {
	ledger Ledger
	in     *bufio.Scanner
	out    io.Writer
}

// New creates a Console reading answers from in and printing to out.
func New(ledger Ledger, in io.Reader, out io.Writer) *Console {
	return &Console{
		ledger: ledger,
		in:     bufio.NewScanner(in),
		out:    out,
	}
}

// Run shows the menu until the user exits or the input ends.
// Storage failures terminate the session and are returned.
func (c *Console) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		fmt.Fprint(c.out, menu)
		choice, err := c.prompt("Escolha uma opção: ")
		if err != nil {
			return c.finish(err)
		}

		switch strings.TrimSpace(choice) {
		case optionAdd:
			err = c.add(ctx)
		case optionList:
			err = c.list(ctx)
		case optionBalance:
			err = c.balance(ctx)
		case optionExit:
			fmt.Fprintln(c.out, "\nObrigado por usar o Gerenciador de Finanças! Até logo 😉")
			return nil
		default:
			fmt.Fprintln(c.out, "\nOpção inválida. Por favor, tente novamente.")
		}

		if err != nil {
			return c.finish(err)
		}
	}
}

func (c *Console) finish(err error) error {
	if errors.Is(err, errEndOfInput) {
		slog.Debug("console input closed")
		return nil
	}
	return err
}

func (c *Console) add(ctx context.Context) error {
	fmt.Fprintln(c.out, "\n--- Adicionar Nova Transação ---")

	var description string
	for {
		answer, err := c.prompt("Descrição: ")
		if err != nil {
			return err
		}
		if strings.TrimSpace(answer) != "" {
			description = answer
			break
		}
		fmt.Fprintln(c.out, "Descrição inválida. Por favor, informe um texto não vazio.")
	}

	var amount decimal.Decimal
	for {
		answer, err := c.prompt("Valor (use sinal de - para despesas, ex: -10.46): ")
		if err != nil {
			return err
		}
		amount, err = decimal.NewFromString(strings.TrimSpace(answer))
		if err == nil && model.ValidAmount(amount) {
			break
		}
		fmt.Fprintln(c.out, "Valor inválido. Por favor, insira um número (ex: 100.00 ou -25.30).")
	}

	var date model.Date
	for {
		answer, err := c.prompt("Data (DD-MM-AAAA): ")
		if err != nil {
			return err
		}
		date, err = model.ParseDisplayDate(strings.TrimSpace(answer))
		if err == nil {
			break
		}
		fmt.Fprintln(c.out, "Formato de data inválido. Por favor, use DD-MM-AAAA.")
	}

	txn, err := c.ledger.Create(ctx, description, amount, date)
	if err != nil {
		return fmt.Errorf("failed to add transaction: %w", err)
	}

	slog.Debug("transaction added", "id", txn.ID)
	fmt.Fprintln(c.out, "Transação adicionada com sucesso! 🤝")
	return nil
}

func (c *Console) list(ctx context.Context) error {
	transactions, err := c.ledger.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to list transactions: %w", err)
	}

	if len(transactions) == 0 {
		fmt.Fprintln(c.out, "\nNenhuma transação cadastrada.")
		return nil
	}

	fmt.Fprintln(c.out, "\n--- Lista de Transações ---")
	for _, txn := range transactions {
		fmt.Fprintln(c.out, txn.String())
	}
	fmt.Fprintln(c.out, "---------------------------")
	fmt.Fprintln(c.out)
	return nil
}

func (c *Console) balance(ctx context.Context) error {
	balance, err := c.ledger.SumBalance(ctx)
	if err != nil {
		return fmt.Errorf("failed to compute balance: %w", err)
	}

	fmt.Fprintf(c.out, "\n>> Saldo Atual: R$%s\n", balance.StringFixed(2))
	return nil
}

// prompt prints a question and reads one line of answer.
func (c *Console) prompt(question string) (string, error) {
	fmt.Fprint(c.out, question)
	if !c.in.Scan() {
		if err := c.in.Err(); err != nil {
			return "", fmt.Errorf("failed to read input: %w", err)
		}
		return "", errEndOfInput
	}
	return strings.TrimRight(c.in.Text(), "\r"), nil
}
