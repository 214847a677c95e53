package core

import (
	"fmt"
	"strings"
)

// AllValues is the UI sentinel meaning "no constraint on this field".
const AllValues = "All"

// Filter field names, as they appear on listings_with_provider.
const (
	FieldLocation     = "Location"
	FieldProviderName = "Provider_Name"
	FieldFoodType     = "Food_Type"
	FieldMealType     = "Meal_Type"
)

// FilterFields lists the filterable fields in UI order.
var FilterFields = []string{FieldLocation, FieldProviderName, FieldFoodType, FieldMealType}

// Constraint is either unconstrained (the zero value) or an exact match on
// one text value.
type Constraint struct {
	value string
	set   bool
}

// Any returns the unconstrained Constraint.
func Any() Constraint { return Constraint{} }

// Eq matches cells whose text equals v exactly.
func Eq(v string) Constraint { return Constraint{value: v, set: true} }

// IsSet reports whether the constraint restricts anything.
func (c Constraint) IsSet() bool { return c.set }

// Value returns the required value, or "" when unconstrained.
func (c Constraint) Value() string { return c.value }

func (c Constraint) String() string {
	if !c.set {
		return AllValues
	}
	return c.value
}

// PredicateSet holds one constraint per filterable field.
type PredicateSet struct {
	Location     Constraint
	ProviderName Constraint
	FoodType     Constraint
	MealType     Constraint
}

// constraints pairs each field name with its constraint.
func (p PredicateSet) constraints() []struct {
	field string
	c     Constraint
} {
	return []struct {
		field string
		c     Constraint
	}{
		{FieldLocation, p.Location},
		{FieldProviderName, p.ProviderName},
		{FieldFoodType, p.FoodType},
		{FieldMealType, p.MealType},
	}
}

// Active returns the constrained fields and their values.
func (p PredicateSet) Active() map[string]string {
	out := make(map[string]string)
	for _, fc := range p.constraints() {
		if fc.c.IsSet() {
			out[fc.field] = fc.c.Value()
		}
	}
	return out
}

// ParsePredicates builds a PredicateSet from a field-to-selection map.
// Field names match case-insensitively; an empty selection or "All" leaves
// the field unconstrained. An unknown field wraps ErrUnknownFilterField and
// a field given under two spellings wraps ErrDuplicateFilterField.
func ParsePredicates(sel map[string]string) (PredicateSet, error) {
	var p PredicateSet
	seen := make(map[string]string, len(sel))
	for field, raw := range sel {
		name, ok := canonicalFilterField(field)
		if !ok {
			return PredicateSet{}, fmt.Errorf("%w: %q", ErrUnknownFilterField, field)
		}
		if prev, dup := seen[name]; dup {
			return PredicateSet{}, fmt.Errorf("%w: %q and %q", ErrDuplicateFilterField, prev, field)
		}
		seen[name] = field

		v := strings.TrimSpace(raw)
		c := Any()
		if v != "" && v != AllValues {
			c = Eq(v)
		}

		switch name {
		case FieldLocation:
			p.Location = c
		case FieldProviderName:
			p.ProviderName = c
		case FieldFoodType:
			p.FoodType = c
		case FieldMealType:
			p.MealType = c
		}
	}
	return p, nil
}

func canonicalFilterField(field string) (string, bool) {
	for _, f := range FilterFields {
		if strings.EqualFold(field, f) {
			return f, true
		}
	}
	return "", false
}

// Filter returns the rows of listings satisfying every active constraint,
// in original order and with all columns. Null cells never match a
// constraint. Constraining a field the table lacks is a *MissingColumnError;
// unconstrained fields need not exist.
func Filter(listings *Table, p PredicateSet) (*Table, error) {
	type check struct {
		col  int
		want string
	}
	var checks []check
	for _, fc := range p.constraints() {
		if !fc.c.IsSet() {
			continue
		}
		idx, err := listings.ColumnIndex(fc.field)
		if err != nil {
			return nil, err
		}
		checks = append(checks, check{col: idx, want: fc.c.Value()})
	}

	return Where(listings, func(r Row) bool {
		for _, ch := range checks {
			v := r[ch.col]
			if v.IsNull() || v.String() != ch.want {
				return false
			}
		}
		return true
	}), nil
}

// FilterOptions are the choices offered for each filter field.
type FilterOptions struct {
	Locations []string `json:"locations"`
	Providers []string `json:"providers"`
	FoodTypes []string `json:"food_types"`
	MealTypes []string `json:"meal_types"`
}

// BuildFilterOptions collects the sorted distinct non-null values of
// Location, Food_Type and Meal_Type from listings and Name from providers.
func BuildFilterOptions(listings, providers *Table) (FilterOptions, error) {
	var (
		opts FilterOptions
		err  error
	)
	if opts.Locations, err = distinctStrings(listings, FieldLocation); err != nil {
		return FilterOptions{}, err
	}
	if opts.FoodTypes, err = distinctStrings(listings, FieldFoodType); err != nil {
		return FilterOptions{}, err
	}
	if opts.MealTypes, err = distinctStrings(listings, FieldMealType); err != nil {
		return FilterOptions{}, err
	}
	if opts.Providers, err = distinctStrings(providers, "Name"); err != nil {
		return FilterOptions{}, err
	}
	return opts, nil
}

func distinctStrings(t *Table, column string) ([]string, error) {
	vals, err := Distinct(t, column)
	if err != nil {
		return nil, err
	}
	out := make([]string, len(vals))
	for i, v := range vals {
		out[i] = v.String()
	}
	return out, nil
}

// ProviderContacts projects the provider directory shown next to filter
// results.
func ProviderContacts(providers *Table) (*Table, error) {
	t, err := Project(providers, "Name", "Type", "City", "Contact")
	if err != nil {
		return nil, err
	}
	return Named(t, "provider_contacts"), nil
}
