package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/shunichi-ikebuchi/finance-ledger/pkg/db"
	"github.com/shunichi-ikebuchi/finance-ledger/pkg/model"
)

// Ledger is the store the handlers delegate to.
type Ledger interface {
	Create(ctx context.Context, description string, amount decimal.Decimal, date model.Date) (*model.Transaction, error)
	Get(ctx context.Context, id int64) (*model.Transaction, error)
	List(ctx context.Context) ([]model.Transaction, error)
	Update(ctx context.Context, id int64, description string, amount decimal.Decimal, date model.Date) error
	Delete(ctx context.Context, id int64) error
	SumBalance(ctx context.Context) (decimal.Decimal, error)
}

// TransactionResponse is the wire form of a transaction.
type TransactionResponse struct {
	ID        int64       `json:"id"`
	Descricao string      `json:"descricao"`
	Valor     json.Number `json:"valor"`
	Data      model.Date  `json:"data"`
}

// BalanceResponse is the wire form of the ledger balance.
type BalanceResponse struct {
	Saldo json.Number `json:"saldo"`
}

func toResponse(txn model.Transaction) TransactionResponse {
	return TransactionResponse{
		ID:        txn.ID,
		Descricao: txn.Description,
		Valor:     json.Number(txn.Amount.String()),
		Data:      txn.Date,
	}
}

// TransactionsHandler handles transaction-related API endpoints.
type TransactionsHandler struct {
	ledger Ledger
}

// NewTransactionsHandler creates a new TransactionsHandler.
func NewTransactionsHandler(ledger Ledger) *TransactionsHandler {
	return &TransactionsHandler{ledger: ledger}
}

// List handles GET /transacoes.
func (h *TransactionsHandler) List(w http.ResponseWriter, r *http.Request) {
	transactions, err := h.ledger.List(r.Context())
	if err != nil {
		h.storageError(w, "failed to list transactions", err)
		return
	}

	response := make([]TransactionResponse, 0, len(transactions))
	for _, txn := range transactions {
		response = append(response, toResponse(txn))
	}

	writeJSON(w, http.StatusOK, response)
}

// Get handles GET /transacoes/{id}.
func (h *TransactionsHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	txn, err := h.ledger.Get(r.Context(), id)
	if err != nil {
		h.writeLookupError(w, id, "failed to get transaction", err)
		return
	}

	writeJSON(w, http.StatusOK, toResponse(*txn))
}

// Create handles POST /transacoes.
func (h *TransactionsHandler) Create(w http.ResponseWriter, r *http.Request) {
	txn, ok := decodeTransaction(w, r)
	if !ok {
		return
	}

	created, err := h.ledger.Create(r.Context(), txn.Description, txn.Amount, txn.Date)
	if err != nil {
		h.storageError(w, "failed to create transaction", err)
		return
	}

	writeJSON(w, http.StatusCreated, MessageResponse{
		Mensagem: "Transação criada com sucesso!",
		ID:       created.ID,
	})
}

// Update handles PUT /transacoes/{id}.
func (h *TransactionsHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	txn, ok := decodeTransaction(w, r)
	if !ok {
		return
	}

	if err := h.ledger.Update(r.Context(), id, txn.Description, txn.Amount, txn.Date); err != nil {
		h.writeLookupError(w, id, "failed to update transaction", err)
		return
	}

	writeJSON(w, http.StatusOK, MessageResponse{
		Mensagem: fmt.Sprintf("Transação ID %d atualizada com sucesso!", id),
	})
}

// Delete handles DELETE /transacoes/{id}.
func (h *TransactionsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	if err := h.ledger.Delete(r.Context(), id); err != nil {
		h.writeLookupError(w, id, "failed to delete transaction", err)
		return
	}

	writeJSON(w, http.StatusOK, MessageResponse{
		Mensagem: fmt.Sprintf("Transação ID %d excluída com sucesso!", id),
	})
}

// Balance handles GET /saldo.
func (h *TransactionsHandler) Balance(w http.ResponseWriter, r *http.Request) {
	balance, err := h.ledger.SumBalance(r.Context())
	if err != nil {
		h.storageError(w, "failed to sum balance", err)
		return
	}

	writeJSON(w, http.StatusOK, BalanceResponse{Saldo: json.Number(balance.String())})
}

func parseID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	idStr := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil || id <= 0 {
		writeJSONError(w, http.StatusBadRequest, "ID de transação inválido")
		return 0, false
	}
	return id, true
}

// decodeTransaction reads and validates a {descricao, valor, data} body.
func decodeTransaction(w http.ResponseWriter, r *http.Request) (model.Transaction, bool) {
	var in model.TransactionInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeJSONError(w, http.StatusBadRequest, "Erro no formato dos dados", err.Error())
		return model.Transaction{}, false
	}

	txn, err := in.Parse()
	if err != nil {
		var vErr *model.ValidationError
		if errors.As(err, &vErr) {
			writeJSONError(w, http.StatusBadRequest, "Dados incompletos ou inválidos. Campos necessários: descricao, valor, data", vErr.Problems...)
			return model.Transaction{}, false
		}
		writeJSONError(w, http.StatusBadRequest, "Erro no formato dos dados", err.Error())
		return model.Transaction{}, false
	}

	return txn, true
}

func (h *TransactionsHandler) writeLookupError(w http.ResponseWriter, id int64, msg string, err error) {
	if errors.Is(err, db.ErrNotFound) {
		writeJSONError(w, http.StatusNotFound, fmt.Sprintf("Transação ID %d não encontrada", id))
		return
	}
	h.storageError(w, msg, err)
}

func (h *TransactionsHandler) storageError(w http.ResponseWriter, msg string, err error) {
	slog.Error(msg, "error", err)
	writeJSONError(w, http.StatusInternalServerError, "Erro interno", err.Error())
}
