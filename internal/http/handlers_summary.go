package http

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"expensed/internal/core"
	"expensed/internal/summary"
)

type categorySummaryResponse struct {
	Category   string  `json:"category"`
	Label      string  `json:"label"`
	Color      string  `json:"color"`
	Spent      float64 `json:"spent"`
	Budget     float64 `json:"budget"`
	Percentage float64 `json:"percentage"`
	Remaining  float64 `json:"remaining"`
}

type summaryResponse struct {
	Year        int                       `json:"year"`
	Month       int                       `json:"month"`
	Period      string                    `json:"period"`
	Display     string                    `json:"display"`
	TotalSpent  float64                   `json:"total_spent"`
	TotalBudget float64                   `json:"total_budget"`
	Categories  []categorySummaryResponse `json:"categories"`
}

func toSummaryResponse(s core.PeriodSummary) summaryResponse {
	out := summaryResponse{
		Year:        s.Period.Year,
		Month:       s.Period.Month,
		Period:      s.Period.Key(),
		Display:     s.Period.Display(),
		TotalSpent:  s.TotalSpent,
		TotalBudget: s.TotalBudget,
		Categories:  make([]categorySummaryResponse, 0, len(s.Categories)),
	}
	for _, cs := range s.Categories {
		out.Categories = append(out.Categories, categorySummaryResponse{
			Category:   string(cs.Category),
			Label:      cs.Category.Label(),
			Color:      cs.Category.Color(),
			Spent:      cs.Spent,
			Budget:     cs.Budget,
			Percentage: cs.Percentage,
			Remaining:  cs.Remaining,
		})
	}
	return out
}

type periodRequest struct {
	Year  int `json:"year"`
	Month int `json:"month"`
}

type periodResponse struct {
	Year    int    `json:"year"`
	Month   int    `json:"month"`
	Period  string `json:"period"`
	Display string `json:"display"`
}

func toPeriodResponse(p core.Period) periodResponse {
	return periodResponse{Year: p.Year, Month: p.Month, Period: p.Key(), Display: p.Display()}
}

// handleSummary derives the summary for the requested period directly from
// the current snapshots. Any period can be asked for; the aggregator's
// selected period is only the default.
func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, http.MethodGet)
		return
	}
	period, err := parsePeriodQuery(r, s.agg.Period())
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	sum := summary.Summarize(period, s.store.Transactions().Get(), s.store.Budgets().Get())
	writeJSON(w, http.StatusOK, toSummaryResponse(sum))
}

func (s *Server) handlePeriod(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		writeJSON(w, http.StatusOK, toPeriodResponse(s.agg.Period()))
	case http.MethodPut:
		var req periodRequest
		if err := decodeJSON(r, &req); err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "malformed request body"})
			return
		}
		p := core.Period{Month: req.Month, Year: req.Year}
		if err := s.agg.SetPeriod(p); err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, toPeriodResponse(p))
	default:
		methodNotAllowed(w, http.MethodGet, http.MethodPut)
	}
}

func (s *Server) handlePeriodNext(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, http.MethodPost)
		return
	}
	writeJSON(w, http.StatusOK, toPeriodResponse(s.agg.NextPeriod()))
}

func (s *Server) handlePeriodPrevious(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, http.MethodPost)
		return
	}
	writeJSON(w, http.StatusOK, toPeriodResponse(s.agg.PreviousPeriod()))
}

// handleEvents streams the derived summary over SSE: the current value is
// sent immediately, then every republish. This is the observable-state
// contract the presentation layer subscribes to.
func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, http.MethodGet)
		return
	}
	flusher, ok := w.(http.Flusher)
	if !ok {
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "streaming unsupported"})
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)

	ch, cancel := s.agg.Summary().Subscribe()
	defer cancel()

	for {
		select {
		case <-r.Context().Done():
			return
		case sum, open := <-ch:
			if !open {
				return
			}
			payload, err := json.Marshal(toSummaryResponse(sum))
			if err != nil {
				slog.ErrorContext(r.Context(), "Encode summary event", "error", err)
				return
			}
			fmt.Fprintf(w, "event: summary\ndata: %s\n\n", payload)
			flusher.Flush()
		}
	}
}
