package core

import "testing"

func TestPeriodKey(t *testing.T) {
	cases := []struct {
		p    Period
		want string
	}{
		{Period{Month: 3, Year: 2024}, "2024-03"},
		{Period{Month: 12, Year: 2023}, "2023-12"},
		{Period{Month: 1, Year: 999}, "0999-01"},
	}
	for i, tc := range cases {
		if got := tc.p.Key(); got != tc.want {
			t.Fatalf("case %d: got %q want %q", i, got, tc.want)
		}
	}
}

func TestParsePeriodKey(t *testing.T) {
	p, err := ParsePeriodKey("2024-03")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Month != 3 || p.Year != 2024 {
		t.Fatalf("got %+v", p)
	}

	for _, bad := range []string{"", "2024", "2024-13", "03-2024", "2024-3"} {
		if _, err := ParsePeriodKey(bad); err == nil {
			t.Fatalf("expected error for %q", bad)
		}
	}
}

func TestPeriodNavigationWrapsYears(t *testing.T) {
	p := Period{Month: 12, Year: 2023}
	if got := p.Next(); got != (Period{Month: 1, Year: 2024}) {
		t.Fatalf("Next: got %+v", got)
	}
	p = Period{Month: 1, Year: 2024}
	if got := p.Previous(); got != (Period{Month: 12, Year: 2023}) {
		t.Fatalf("Previous: got %+v", got)
	}
	// Next then Previous is identity.
	p = Period{Month: 6, Year: 2024}
	if got := p.Next().Previous(); got != p {
		t.Fatalf("round trip: got %+v", got)
	}
}

func TestPeriodContains(t *testing.T) {
	p := Period{Month: 3, Year: 2024}
	if !p.Contains(NewDate(2024, 3, 1)) || !p.Contains(NewDate(2024, 3, 31)) {
		t.Fatal("expected dates inside the period")
	}
	if p.Contains(NewDate(2024, 2, 29)) || p.Contains(NewDate(2023, 3, 15)) {
		t.Fatal("expected dates outside the period")
	}
}

func TestPeriodOrdering(t *testing.T) {
	a := Period{Month: 12, Year: 2023}
	b := Period{Month: 1, Year: 2024}
	if !a.Before(b) || b.Before(a) {
		t.Fatal("expected 2023-12 < 2024-01")
	}
	if a.Before(a) {
		t.Fatal("Before must be strict")
	}
}

func TestPeriodOf(t *testing.T) {
	if got := PeriodOf(NewDate(2024, 3, 5)); got != (Period{Month: 3, Year: 2024}) {
		t.Fatalf("got %+v", got)
	}
}
