package core

import "testing"

func TestCategoriesOrderIsCanonical(t *testing.T) {
	want := []Category{NTUC, Meal, Fuel, JLJE, Others, Cash, CreditCard}
	got := Categories()
	if len(got) != len(want) {
		t.Fatalf("got %d categories, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("position %d: got %q want %q", i, got[i], want[i])
		}
	}

	// Returned slice is a copy; mutating it must not corrupt the canonical order.
	got[0] = "MUTATED"
	if Categories()[0] != NTUC {
		t.Fatal("Categories must return a copy")
	}
}

func TestCategoryAttributesCoverEveryMember(t *testing.T) {
	for _, c := range Categories() {
		if c.Label() == "" {
			t.Fatalf("category %q has no label", c)
		}
		if c.Color() == "" {
			t.Fatalf("category %q has no color", c)
		}
	}
	if JLJE.Label() != "JL & JE" {
		t.Fatalf("got %q", JLJE.Label())
	}
	if CreditCard.Label() != "Credit Card" {
		t.Fatalf("got %q", CreditCard.Label())
	}
}

func TestParseCategory(t *testing.T) {
	c, ok := ParseCategory("CREDIT_CARD")
	if !ok || c != CreditCard {
		t.Fatalf("got %q ok=%v", c, ok)
	}
	if _, ok := ParseCategory("credit_card"); ok {
		t.Fatal("identifiers are case-sensitive")
	}
	if _, ok := ParseCategory("Credit Card"); ok {
		t.Fatal("display labels are not identifiers")
	}
}

func TestCategoryOrFallback(t *testing.T) {
	c, ok := CategoryOrFallback("FUEL")
	if !ok || c != Fuel {
		t.Fatalf("got %q ok=%v", c, ok)
	}
	c, ok = CategoryOrFallback("LEGACY_STUFF")
	if ok || c != Others {
		t.Fatalf("unknown identifier must fall back to Others, got %q ok=%v", c, ok)
	}
}
