package summary

import (
	"context"
	"log/slog"

	"expensed/internal/core"
	"expensed/internal/observe"
)

// Aggregator is the reactive half of the pipeline: it owns the selected
// period and republishes a PeriodSummary whenever the period or either store
// snapshot changes. Recomputation is idempotent and side-effect free, so the
// loop needs no synchronization with its inputs beyond the observables
// themselves.
type Aggregator struct {
	transactions *observe.Value[[]core.Transaction]
	budgets      *observe.Value[[]core.Budget]
	period       *observe.Value[core.Period]
	summary      *observe.Value[core.PeriodSummary]
}

// New creates an Aggregator over the store's observables, selecting the
// current month initially.
func New(transactions *observe.Value[[]core.Transaction], budgets *observe.Value[[]core.Budget]) *Aggregator {
	p := core.CurrentPeriod()
	a := &Aggregator{
		transactions: transactions,
		budgets:      budgets,
		period:       observe.NewValue(p),
	}
	a.summary = observe.NewValue(Summarize(p, transactions.Get(), budgets.Get()))
	return a
}

// Summary is the observable derived PeriodSummary.
func (a *Aggregator) Summary() *observe.Value[core.PeriodSummary] {
	return a.summary
}

// Period returns the currently selected period.
func (a *Aggregator) Period() core.Period {
	return a.period.Get()
}

// SetPeriod selects a period; Run republishes the summary for it.
func (a *Aggregator) SetPeriod(p core.Period) error {
	if err := p.Validate(); err != nil {
		return err
	}
	a.period.Set(p)
	return nil
}

// NextPeriod advances the selected period by one month and returns it.
func (a *Aggregator) NextPeriod() core.Period {
	next := a.period.Get().Next()
	a.period.Set(next)
	return next
}

// PreviousPeriod moves the selected period back one month and returns it.
func (a *Aggregator) PreviousPeriod() core.Period {
	prev := a.period.Get().Previous()
	a.period.Set(prev)
	return prev
}

// Run recomputes and republishes the summary on every input change until ctx
// is done. It always returns nil once the context ends, so it slots into an
// errgroup alongside the serving loop.
func (a *Aggregator) Run(ctx context.Context) error {
	periodCh, cancelPeriod := a.period.Subscribe()
	defer cancelPeriod()
	txCh, cancelTx := a.transactions.Subscribe()
	defer cancelTx()
	budgetCh, cancelBudgets := a.budgets.Subscribe()
	defer cancelBudgets()

	slog.InfoContext(ctx, "Aggregation pipeline started", "period", a.period.Get().Key())

	for {
		select {
		case <-ctx.Done():
			slog.InfoContext(ctx, "Aggregation pipeline stopped")
			return nil
		case <-periodCh:
		case <-txCh:
		case <-budgetCh:
		}
		a.recompute()
	}
}

func (a *Aggregator) recompute() {
	p := a.period.Get()
	a.summary.Set(Summarize(p, a.transactions.Get(), a.budgets.Get()))
}
