package core

// CategorySummary is the derived spend-vs-budget breakdown for one category in
// one period. It holds no identity of its own and is recomputed whenever its
// inputs change.
type CategorySummary struct {
	Category   Category
	Spent      float64
	Budget     float64
	Percentage float64 // spent/budget clamped to [0,1]; 0 when Budget == 0
	Remaining  float64 // Budget - Spent, negative on overspend
}

// PeriodSummary aggregates spend vs budget for one period, broken down by
// category and totaled. Categories always contains exactly one entry per
// enumeration member, in canonical order, even when a category has no
// transactions and no budget row.
type PeriodSummary struct {
	Period      Period
	TotalSpent  float64
	TotalBudget float64
	Categories  []CategorySummary
}
