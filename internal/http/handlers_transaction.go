package http

import (
	"net/http"

	"expensed/internal/core"
	"expensed/internal/summary"
)

type transactionRequest struct {
	Category    string  `json:"category"`
	Amount      float64 `json:"amount"`
	Description string  `json:"description"`
	Date        string  `json:"date"`
	ReceiptRef  *string `json:"receipt_ref"`
}

type transactionResponse struct {
	ID                 int64   `json:"id"`
	Category           string  `json:"category"`
	CategoryLabel      string  `json:"category_label"`
	Amount             float64 `json:"amount"`
	Description        string  `json:"description"`
	DisplayDescription string  `json:"display_description"`
	Date               string  `json:"date"`
	ReceiptRef         *string `json:"receipt_ref,omitempty"`
}

func toTransactionResponse(t core.Transaction) transactionResponse {
	return transactionResponse{
		ID:                 t.ID,
		Category:           string(t.Category),
		CategoryLabel:      t.Category.Label(),
		Amount:             t.Amount,
		Description:        t.Description,
		DisplayDescription: t.DisplayDescription(),
		Date:               t.Date.String(),
		ReceiptRef:         t.ReceiptRef,
	}
}

// toTransaction converts the request payload; malformed fields surface as the
// core validation errors so the caller sees 422, not 500.
func (req transactionRequest) toTransaction(id int64) (core.Transaction, error) {
	date, err := core.ParseDate(req.Date)
	if err != nil {
		return core.Transaction{}, err
	}
	t := core.Transaction{
		ID:          id,
		Category:    core.Category(req.Category),
		Amount:      req.Amount,
		Description: req.Description,
		Date:        date,
		ReceiptRef:  req.ReceiptRef,
	}
	if err := t.Validate(); err != nil {
		return core.Transaction{}, err
	}
	return t, nil
}

func (s *Server) handleTransactions(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.listTransactions(w, r)
	case http.MethodPost:
		s.createTransaction(w, r)
	default:
		methodNotAllowed(w, http.MethodGet, http.MethodPost)
	}
}

// listTransactions returns the selected period's transactions, most recent
// first, straight from the published snapshot.
func (s *Server) listTransactions(w http.ResponseWriter, r *http.Request) {
	period, err := parsePeriodQuery(r, s.agg.Period())
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	txs := summary.TransactionsIn(period, s.store.Transactions().Get())
	out := make([]transactionResponse, 0, len(txs))
	for _, t := range txs {
		out = append(out, toTransactionResponse(t))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) createTransaction(w http.ResponseWriter, r *http.Request) {
	var req transactionRequest
	if err := decodeJSON(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "malformed request body"})
		return
	}

	t, err := req.toTransaction(0)
	if err != nil {
		writeError(w, r, err)
		return
	}

	id, err := s.store.CreateTransaction(r.Context(), t)
	if err != nil {
		writeError(w, r, err)
		return
	}

	t.ID = id
	writeJSON(w, http.StatusCreated, toTransactionResponse(t))
}

func (s *Server) handleTransactionByID(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r.URL.Path, "/api/transactions/")
	if !ok {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "not found"})
		return
	}

	switch r.Method {
	case http.MethodGet:
		t, err := s.store.TransactionByID(r.Context(), id)
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, toTransactionResponse(t))

	case http.MethodPut:
		var req transactionRequest
		if err := decodeJSON(r, &req); err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "malformed request body"})
			return
		}
		t, err := req.toTransaction(id)
		if err != nil {
			writeError(w, r, err)
			return
		}
		if err := s.store.UpdateTransaction(r.Context(), t); err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, toTransactionResponse(t))

	case http.MethodDelete:
		if err := s.store.DeleteTransaction(r.Context(), id); err != nil {
			writeError(w, r, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)

	default:
		methodNotAllowed(w, http.MethodGet, http.MethodPut, http.MethodDelete)
	}
}
