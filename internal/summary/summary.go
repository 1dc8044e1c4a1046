// Package summary derives budget/spending summaries from the raw transaction
// and budget snapshots. The derivation is a pure function of
// (period, transactions, budgets); recomputation is total, never incremental,
// which is fine at personal single-device scale.
package summary

import (
	"sort"

	"expensed/internal/core"
)

// TransactionsIn returns the transactions whose date falls in the period,
// sorted by date descending. The sort is stable: ties preserve the snapshot's
// relative order.
func TransactionsIn(p core.Period, txs []core.Transaction) []core.Transaction {
	out := make([]core.Transaction, 0)
	for _, t := range txs {
		if p.Contains(t.Date) {
			out = append(out, t)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date.After(out[j].Date.Time)
	})
	return out
}

// BudgetsIn returns the period's budget rows with a zero-amount row
// synthesized for every category that has none. Every enumeration member is
// always represented, in canonical order.
func BudgetsIn(p core.Period, budgets []core.Budget) []core.Budget {
	key := p.Key()
	byCategory := make(map[core.Category]core.Budget, len(core.Categories()))
	for _, b := range budgets {
		if b.Period == key {
			byCategory[b.Category] = b
		}
	}

	out := make([]core.Budget, 0, len(core.Categories()))
	for _, c := range core.Categories() {
		b, ok := byCategory[c]
		if !ok {
			b = core.Budget{Category: c, Amount: 0, Period: key}
		}
		out = append(out, b)
	}
	return out
}

// Summarize computes the PeriodSummary for the period from the given
// snapshots. A zero budget yields percentage 0 regardless of spend; overspend
// against it is visible only through a negative Remaining.
func Summarize(p core.Period, txs []core.Transaction, budgets []core.Budget) core.PeriodSummary {
	inPeriod := TransactionsIn(p, txs)
	periodBudgets := BudgetsIn(p, budgets)

	budgetByCategory := make(map[core.Category]float64, len(periodBudgets))
	for _, b := range periodBudgets {
		budgetByCategory[b.Category] = b.Amount
	}

	spentByCategory := make(map[core.Category]float64)
	for _, t := range inPeriod {
		spentByCategory[t.Category] += t.Amount
	}

	summary := core.PeriodSummary{
		Period:     p,
		Categories: make([]core.CategorySummary, 0, len(core.Categories())),
	}
	for _, c := range core.Categories() {
		spent := spentByCategory[c]
		budget := budgetByCategory[c]

		percentage := 0.0
		if budget > 0 {
			percentage = spent / budget
			if percentage > 1 {
				percentage = 1
			}
		}

		summary.Categories = append(summary.Categories, core.CategorySummary{
			Category:   c,
			Spent:      spent,
			Budget:     budget,
			Percentage: percentage,
			Remaining:  budget - spent,
		})
		summary.TotalSpent += spent
		summary.TotalBudget += budget
	}
	return summary
}
