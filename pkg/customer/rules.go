package customer

import "math"

// Rule is a closed numeric range enforced on a single field.
type Rule struct {
	Field   string
	Min     float64
	Max     float64
	Message string
	// Hint is the softer wording used when checking a single field while
	// the form is still being filled in.
	Hint string
}

// Contains reports whether v lies in [Min, Max].
func (r Rule) Contains(v float64) bool {
	return v >= r.Min && v <= r.Max
}

// Rules are evaluated in order, the first violation wins.
var Rules = []Rule{
	{
		Field:   FieldCreditScore,
		Min:     300,
		Max:     850,
		Message: "Credit score must be between 300 and 850",
		Hint:    "Credit score should be between 300 and 850",
	},
	{
		Field:   FieldAge,
		Min:     18,
		Max:     100,
		Message: "Age must be between 18 and 100",
		Hint:    "Age should be between 18 and 100",
	},
	{
		Field:   FieldTenure,
		Min:     0,
		Max:     50,
		Message: "Years as customer must be between 0 and 50",
		Hint:    "Years as customer should be between 0 and 50",
	},
	{
		Field:   FieldBalance,
		Min:     0,
		Max:     math.Inf(1),
		Message: "Account balance cannot be negative",
		Hint:    "Account balance cannot be negative",
	},
	{
		Field:   FieldEstimatedSalary,
		Min:     0,
		Max:     math.Inf(1),
		Message: "Estimated salary cannot be negative",
		Hint:    "Estimated salary cannot be negative",
	},
	{
		Field:   FieldNumProducts,
		Min:     1,
		Max:     math.Inf(1),
		Message: "Number of products must be at least 1",
		Hint:    "Number of products should be at least 1",
	},
}

// RuleFor returns the range rule for the field.
func RuleFor(field string) (Rule, bool) {
	for _, r := range Rules {
		if r.Field == field {
			return r, true
		}
	}
	return Rule{}, false
}

// Validate checks the record against Rules.
func Validate(r Record) error {
	for _, rule := range Rules {
		v, ok := r.numeric(rule.Field)
		if !ok {
			continue
		}
		if !rule.Contains(v) {
			return &ValidationError{Kind: KindRange, Field: rule.Field, Message: rule.Message}
		}
	}
	return nil
}
