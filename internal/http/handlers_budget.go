package http

import (
	"net/http"

	"expensed/internal/core"
	"expensed/internal/summary"
)

type budgetRequest struct {
	Category string  `json:"category"`
	Amount   float64 `json:"amount"`
	Period   string  `json:"period"`
}

type budgetResponse struct {
	Category      string  `json:"category"`
	CategoryLabel string  `json:"category_label"`
	Amount        float64 `json:"amount"`
	Period        string  `json:"period"`
}

func toBudgetResponse(b core.Budget) budgetResponse {
	return budgetResponse{
		Category:      string(b.Category),
		CategoryLabel: b.Category.Label(),
		Amount:        b.Amount,
		Period:        b.Period,
	}
}

func (s *Server) handleBudgets(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.listBudgets(w, r)
	case http.MethodPut:
		s.upsertBudget(w, r)
	default:
		methodNotAllowed(w, http.MethodGet, http.MethodPut)
	}
}

// listBudgets returns the selected period's budgets with a zero row for every
// category that has none, so the budget screen always shows the full set.
func (s *Server) listBudgets(w http.ResponseWriter, r *http.Request) {
	period, err := parsePeriodQuery(r, s.agg.Period())
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	budgets := summary.BudgetsIn(period, s.store.Budgets().Get())
	out := make([]budgetResponse, 0, len(budgets))
	for _, b := range budgets {
		out = append(out, toBudgetResponse(b))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) upsertBudget(w http.ResponseWriter, r *http.Request) {
	var req budgetRequest
	if err := decodeJSON(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "malformed request body"})
		return
	}

	// An absent period means the currently selected one.
	period := req.Period
	if period == "" {
		period = s.agg.Period().Key()
	}

	b := core.Budget{
		Category: core.Category(req.Category),
		Amount:   req.Amount,
		Period:   period,
	}
	if err := s.store.UpsertBudget(r.Context(), b); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toBudgetResponse(b))
}
