package summary

import (
	"context"
	"testing"
	"time"

	"expensed/internal/core"
	"expensed/internal/observe"
)

// waitForSummary reads the subscription until the predicate holds or the
// deadline passes. Updates conflate, so intermediate summaries may be skipped.
func waitForSummary(t *testing.T, ch <-chan core.PeriodSummary, pred func(core.PeriodSummary) bool) core.PeriodSummary {
	t.Helper()
	deadline := time.After(5 * time.Second)
	for {
		select {
		case s := <-ch:
			if pred(s) {
				return s
			}
		case <-deadline:
			t.Fatal("summary never reached the expected state")
		}
	}
}

func startAggregator(t *testing.T) (*Aggregator, *observe.Value[[]core.Transaction], *observe.Value[[]core.Budget]) {
	t.Helper()
	txs := observe.NewValue([]core.Transaction{})
	budgets := observe.NewValue([]core.Budget{})
	agg := New(txs, budgets)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = agg.Run(ctx)
	}()
	t.Cleanup(func() {
		cancel()
		<-done
	})
	return agg, txs, budgets
}

func TestAggregatorRecomputesOnSnapshotChange(t *testing.T) {
	agg, txs, budgets := startAggregator(t)
	if err := agg.SetPeriod(core.Period{Month: 3, Year: 2024}); err != nil {
		t.Fatalf("set period: %v", err)
	}

	ch, cancel := agg.Summary().Subscribe()
	defer cancel()

	txs.Set([]core.Transaction{
		{ID: 1, Category: core.NTUC, Amount: 20, Date: core.NewDate(2024, 3, 5)},
	})
	s := waitForSummary(t, ch, func(s core.PeriodSummary) bool {
		return s.Period == (core.Period{Month: 3, Year: 2024}) && s.TotalSpent == 20
	})
	if findCategory(t, s, core.NTUC).Spent != 20 {
		t.Fatalf("NTUC spend not derived: %+v", s)
	}

	budgets.Set([]core.Budget{
		{Category: core.NTUC, Amount: 50, Period: "2024-03"},
	})
	s = waitForSummary(t, ch, func(s core.PeriodSummary) bool {
		return s.TotalBudget == 50
	})
	ntuc := findCategory(t, s, core.NTUC)
	if ntuc.Percentage != 0.4 || ntuc.Remaining != 30 {
		t.Fatalf("budget change not derived: %+v", ntuc)
	}
}

func TestAggregatorRecomputesOnPeriodChange(t *testing.T) {
	agg, txs, _ := startAggregator(t)
	if err := agg.SetPeriod(core.Period{Month: 3, Year: 2024}); err != nil {
		t.Fatalf("set period: %v", err)
	}

	ch, cancel := agg.Summary().Subscribe()
	defer cancel()

	txs.Set([]core.Transaction{
		{ID: 1, Category: core.Fuel, Amount: 60, Date: core.NewDate(2024, 2, 1)},
	})
	waitForSummary(t, ch, func(s core.PeriodSummary) bool {
		return s.Period == (core.Period{Month: 3, Year: 2024}) && s.TotalSpent == 0
	})

	agg.PreviousPeriod()
	s := waitForSummary(t, ch, func(s core.PeriodSummary) bool {
		return s.Period == (core.Period{Month: 2, Year: 2024})
	})
	if s.TotalSpent != 60 {
		t.Fatalf("expected February spend after navigating back, got %v", s.TotalSpent)
	}
}

func TestPeriodNavigation(t *testing.T) {
	txs := observe.NewValue([]core.Transaction{})
	budgets := observe.NewValue([]core.Budget{})
	agg := New(txs, budgets)

	if err := agg.SetPeriod(core.Period{Month: 12, Year: 2023}); err != nil {
		t.Fatalf("set period: %v", err)
	}
	if got := agg.NextPeriod(); got != (core.Period{Month: 1, Year: 2024}) {
		t.Fatalf("NextPeriod: %+v", got)
	}
	if got := agg.PreviousPeriod(); got != (core.Period{Month: 12, Year: 2023}) {
		t.Fatalf("PreviousPeriod: %+v", got)
	}
	if got := agg.Period(); got != (core.Period{Month: 12, Year: 2023}) {
		t.Fatalf("Period: %+v", got)
	}

	if err := agg.SetPeriod(core.Period{Month: 13, Year: 2024}); err == nil {
		t.Fatal("expected an error for month 13")
	}
}

func TestInitialSummaryIsForCurrentPeriod(t *testing.T) {
	txs := observe.NewValue([]core.Transaction{})
	budgets := observe.NewValue([]core.Budget{})
	agg := New(txs, budgets)

	s := agg.Summary().Get()
	if s.Period != core.CurrentPeriod() {
		t.Fatalf("expected the current period, got %+v", s.Period)
	}
	if len(s.Categories) != len(core.Categories()) {
		t.Fatalf("expected a fully populated initial summary, got %d categories", len(s.Categories))
	}
}
