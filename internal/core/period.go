package core

import (
	"fmt"
	"time"
)

// Period identifies one budgeting cycle: a (month, year) pair. Its canonical
// string form "YYYY-MM" is the budget period key and the grouping key for
// transactions.
type Period struct {
	Month int // 1-12
	Year  int
}

// CurrentPeriod returns the period containing today.
func CurrentPeriod() Period {
	now := time.Now()
	return Period{Month: int(now.Month()), Year: now.Year()}
}

// PeriodOf returns the period containing the given date.
func PeriodOf(d Date) Period {
	return Period{Month: d.Month(), Year: d.Year()}
}

// ParsePeriodKey parses a canonical "YYYY-MM" key.
func ParsePeriodKey(s string) (Period, error) {
	t, err := time.Parse("2006-01", s)
	if err != nil {
		return Period{}, fmt.Errorf("%w: %q", ErrInvalidPeriod, s)
	}
	return Period{Month: int(t.Month()), Year: t.Year()}, nil
}

// Key returns the canonical zero-padded "YYYY-MM" form.
func (p Period) Key() string {
	return fmt.Sprintf("%04d-%02d", p.Year, p.Month)
}

// Display returns a human-readable form, e.g. "March 2024".
func (p Period) Display() string {
	return fmt.Sprintf("%s %d", time.Month(p.Month).String(), p.Year)
}

// Next returns the following period, wrapping across year boundaries.
func (p Period) Next() Period {
	if p.Month == 12 {
		return Period{Month: 1, Year: p.Year + 1}
	}
	return Period{Month: p.Month + 1, Year: p.Year}
}

// Previous returns the preceding period, wrapping across year boundaries.
func (p Period) Previous() Period {
	if p.Month == 1 {
		return Period{Month: 12, Year: p.Year - 1}
	}
	return Period{Month: p.Month - 1, Year: p.Year}
}

// Before reports whether p precedes o in time.
func (p Period) Before(o Period) bool {
	if p.Year != o.Year {
		return p.Year < o.Year
	}
	return p.Month < o.Month
}

// Contains reports whether the date falls inside the period.
func (p Period) Contains(d Date) bool {
	return d.Month() == p.Month && d.Year() == p.Year
}

func (p Period) Validate() error {
	if p.Month < 1 || p.Month > 12 {
		return ErrInvalidMonth
	}
	if p.Year < 1 {
		return fmt.Errorf("%w: year %d", ErrInvalidPeriod, p.Year)
	}
	return nil
}
