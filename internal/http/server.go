// Package http is the presentation collaborator over the core: a local JSON
// surface that reads the store's snapshots and the aggregator's summaries,
// and issues mutations and period navigation into them. It is a single-user
// localhost surface, not a public service.
package http

import (
	"context"
	"net/http"
	"time"

	"expensed/internal/core"
	applog "expensed/internal/log"
	"expensed/internal/observe"
	"expensed/internal/summary"
)

// Store is the slice of the storage API the handlers need.
type Store interface {
	CreateTransaction(ctx context.Context, t core.Transaction) (int64, error)
	UpdateTransaction(ctx context.Context, t core.Transaction) error
	DeleteTransaction(ctx context.Context, id int64) error
	TransactionByID(ctx context.Context, id int64) (core.Transaction, error)
	UpsertBudget(ctx context.Context, b core.Budget) error
	Transactions() *observe.Value[[]core.Transaction]
	Budgets() *observe.Value[[]core.Budget]
}

// Server serves the JSON surface.
type Server struct {
	http.Server

	store Store
	agg   *summary.Aggregator
}

// NewServer wires the routes and returns a server ready for ListenAndServe.
func NewServer(addr string, store Store, agg *summary.Aggregator, logger *applog.Logger) *Server {
	s := &Server{
		store: store,
		agg:   agg,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", s.handleHealth)
	mux.HandleFunc("/api/transactions", s.handleTransactions)
	mux.HandleFunc("/api/transactions/", s.handleTransactionByID)
	mux.HandleFunc("/api/budgets", s.handleBudgets)
	mux.HandleFunc("/api/summary", s.handleSummary)
	mux.HandleFunc("/api/period", s.handlePeriod)
	mux.HandleFunc("/api/period/next", s.handlePeriodNext)
	mux.HandleFunc("/api/period/previous", s.handlePeriodPrevious)
	mux.HandleFunc("/api/events", s.handleEvents)

	s.Server = http.Server{
		Addr:           addr,
		Handler:        applog.RequestMiddleware(logger)(mux),
		ReadTimeout:    10 * time.Second,
		IdleTimeout:    60 * time.Second,
		MaxHeaderBytes: 1 << 16, // 64KB
	}
	return s
}

// HTTPHandler exposes the routed handler for tests.
func (s *Server) HTTPHandler() http.Handler {
	return s.Server.Handler
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, http.MethodGet)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
