package core

import (
	"errors"
	"fmt"
	"time"
)

type (
	// Date is a calendar date with no time component. It serializes as an
	// ISO-8601 calendar-date string ("2006-01-02").
	Date struct {
		time.Time
	}

	// Transaction is one recorded expense. The store assigns ID on creation;
	// identifiers are unique, monotonically issued and never reused.
	// Description may be empty and is stored as the empty string, never NULL.
	// ReceiptRef is an opaque reference; nil means absent and is distinct
	// from a present-but-empty string.
	Transaction struct {
		ID          int64
		Category    Category
		Amount      float64
		Description string
		Date        Date
		ReceiptRef  *string
	}

	// Budget is a per-category spending limit for one period. At most one
	// budget exists per (category, period); amount zero means "no budget set".
	Budget struct {
		Category Category
		Amount   float64
		Period   string // canonical "YYYY-MM" key
	}
)

var (
	ErrInvalidDate     = errors.New("invalid date")
	ErrInvalidMonth    = errors.New("invalid month")
	ErrInvalidPeriod   = errors.New("invalid period")
	ErrInvalidAmount   = errors.New("invalid amount")
	ErrInvalidCategory = errors.New("invalid category")
	ErrNegativeBudget  = errors.New("negative budget amount")
)

// NewDate creates a Date from year, month, day.
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses an ISO-8601 calendar date ("2006-01-02").
func ParseDate(s string) (Date, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return Date{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return Date{Time: t}, nil
}

// String returns the ISO-8601 serialized form.
func (d Date) String() string {
	return d.Format("2006-01-02")
}

// Month returns the month as an int in 1-12.
func (d Date) Month() int {
	return int(d.Time.Month())
}

// Year returns the year.
func (d Date) Year() int {
	return d.Time.Year()
}

func (d Date) Validate() error {
	if d.IsZero() {
		return ErrInvalidDate
	}
	return nil
}

// Validate checks the invariants the store enforces before a write: a valid
// calendar date, a known category and a strictly positive amount. The amount
// check lives here rather than only in UI input validation so that no caller
// can push non-positive amounts into durable storage.
func (t Transaction) Validate() error {
	if err := t.Date.Validate(); err != nil {
		return err
	}
	if !t.Category.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidCategory, string(t.Category))
	}
	if t.Amount <= 0 {
		return ErrInvalidAmount
	}
	return nil
}

func (b Budget) Validate() error {
	if !b.Category.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidCategory, string(b.Category))
	}
	if b.Amount < 0 {
		return ErrNegativeBudget
	}
	if _, err := ParsePeriodKey(b.Period); err != nil {
		return err
	}
	return nil
}

// NoDescription is the presentation fallback for an empty description.
const NoDescription = "(No description)"

// DisplayDescription returns the description, substituting the presentation
// fallback when it is empty.
func (t Transaction) DisplayDescription() string {
	if t.Description == "" {
		return NoDescription
	}
	return t.Description
}
