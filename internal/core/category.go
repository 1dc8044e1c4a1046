package core

// Category is one of the fixed spending classifications. The string value is
// the stable identifier persisted to storage; display labels live in the
// attribute table below.
type Category string

const (
	NTUC       Category = "NTUC"
	Meal       Category = "MEAL"
	Fuel       Category = "FUEL"
	JLJE       Category = "JL_JE"
	Others     Category = "OTHERS"
	Cash       Category = "CASH"
	CreditCard Category = "CREDIT_CARD"
)

// categories holds every member in declaration order. This order is canonical:
// it governs summary iteration, display order and tie-breaks everywhere.
var categories = []Category{NTUC, Meal, Fuel, JLJE, Others, Cash, CreditCard}

// Categories returns all category members in canonical order.
func Categories() []Category {
	out := make([]Category, len(categories))
	copy(out, categories)
	return out
}

// CategoryAttributes describes how a category is presented.
type CategoryAttributes struct {
	Label string
	Color string // hex RGB, e.g. "#2196F3"
}

var categoryAttributes = map[Category]CategoryAttributes{
	NTUC:       {Label: "NTUC", Color: "#2196F3"},
	Meal:       {Label: "Meal", Color: "#4CAF50"},
	Fuel:       {Label: "Fuel", Color: "#F44336"},
	JLJE:       {Label: "JL & JE", Color: "#9C27B0"},
	Others:     {Label: "Others", Color: "#FF9800"},
	Cash:       {Label: "Cash", Color: "#2196F3"},
	CreditCard: {Label: "Credit Card", Color: "#4CAF50"},
}

// Label returns the display label for the category.
func (c Category) Label() string {
	return categoryAttributes[c].Label
}

// Color returns the display color for the category.
func (c Category) Color() string {
	return categoryAttributes[c].Color
}

// Valid reports whether c is a member of the fixed enumeration.
func (c Category) Valid() bool {
	_, ok := categoryAttributes[c]
	return ok
}

// ParseCategory maps a stored identifier to its category member.
func ParseCategory(s string) (Category, bool) {
	c := Category(s)
	if c.Valid() {
		return c, true
	}
	return "", false
}

// CategoryOrFallback maps a stored identifier to its category member,
// substituting Others for identifiers that match no member. The read path
// must never fail a whole snapshot load over one bad row; callers log the
// anomaly when ok is false.
func CategoryOrFallback(s string) (c Category, ok bool) {
	if c, ok := ParseCategory(s); ok {
		return c, true
	}
	return Others, false
}
