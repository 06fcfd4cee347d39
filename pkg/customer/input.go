package customer

import (
	"errors"
	"fmt"
	"math"
	"net/url"
	"strconv"
	"strings"
)

// Input holds raw, untyped field values keyed by field name.
type Input map[string]string

// FromValues builds input from submitted form values.
func FromValues(v url.Values) Input {
	in := make(Input, len(Fields))
	for _, f := range Fields {
		if _, ok := v[f]; ok {
			in[f] = v.Get(f)
		}
	}
	return in
}

func (in Input) get(field string) string {
	return strings.TrimSpace(in[field])
}

// Parse extracts a record from the input and validates it. Extraction
// failures are reported before range violations.
func Parse(in Input) (Record, error) {
	r, err := extract(in)
	if err != nil {
		return Record{}, err
	}
	if err := Validate(r); err != nil {
		return Record{}, err
	}
	return r, nil
}

func extract(in Input) (Record, error) {
	var (
		r   Record
		err *ValidationError
	)

	if r.CreditScore, err = parseInt(in, FieldCreditScore); err != nil {
		return Record{}, err
	}

	if r.Country = in.get(FieldCountry); r.Country == "" {
		return Record{}, requiredError(FieldCountry)
	}

	g := in.get(FieldGender)
	if g == "" {
		return Record{}, requiredError(FieldGender)
	}
	var ok bool
	if r.Gender, ok = ParseGender(g); !ok {
		return Record{}, parseError(FieldGender, "Gender must be one of male, female, other")
	}

	if r.Age, err = parseInt(in, FieldAge); err != nil {
		return Record{}, err
	}
	if r.Tenure, err = parseInt(in, FieldTenure); err != nil {
		return Record{}, err
	}
	if r.Balance, err = parseFloat(in, FieldBalance); err != nil {
		return Record{}, err
	}
	if r.NumProducts, err = parseInt(in, FieldNumProducts); err != nil {
		return Record{}, err
	}
	if r.HasCreditCard, err = parseBool(in, FieldHasCreditCard); err != nil {
		return Record{}, err
	}
	if r.IsActiveMember, err = parseBool(in, FieldIsActiveMember); err != nil {
		return Record{}, err
	}
	if r.EstimatedSalary, err = parseFloat(in, FieldEstimatedSalary); err != nil {
		return Record{}, err
	}

	return r, nil
}

// CheckField validates a single value while the form is being filled in.
// Empty values are not reported. The returned message uses the rule hint.
func CheckField(field, value string) *ValidationError {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}

	rule, ok := RuleFor(field)
	if !ok {
		return nil
	}

	if wholeFields[field] {
		if _, err := toInt(field, value); err != nil {
			if err.Kind == KindRange {
				err.Message = rule.Hint
			}
			return err
		}
	}

	v, err := strconv.ParseFloat(value, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return parseError(field, fmt.Sprintf("%s must be a number", Label(field)))
	}

	if !rule.Contains(v) {
		return &ValidationError{Kind: KindRange, Field: field, Message: rule.Hint}
	}
	return nil
}

func requiredError(field string) *ValidationError {
	return parseError(field, fmt.Sprintf("%s is required", Label(field)))
}

// wholeFields are the fields extracted with parseInt.
var wholeFields = map[string]bool{
	FieldCreditScore: true,
	FieldAge:         true,
	FieldTenure:      true,
	FieldNumProducts: true,
}

func parseInt(in Input, field string) (int, *ValidationError) {
	s := in.get(field)
	if s == "" {
		return 0, requiredError(field)
	}
	return toInt(field, s)
}

// toInt converts a whole number. Values too large for int are outside any
// rule range and fail as range violations.
func toInt(field, s string) (int, *ValidationError) {
	v, err := strconv.Atoi(s)
	if err == nil {
		return v, nil
	}
	if errors.Is(err, strconv.ErrRange) {
		if rule, ok := RuleFor(field); ok {
			return 0, &ValidationError{Kind: KindRange, Field: field, Message: rule.Message}
		}
	}
	if f, ferr := strconv.ParseFloat(s, 64); ferr == nil && !math.IsNaN(f) && !math.IsInf(f, 0) {
		return 0, parseError(field, fmt.Sprintf("%s must be a whole number", Label(field)))
	}
	return 0, parseError(field, fmt.Sprintf("%s must be a number", Label(field)))
}

func parseFloat(in Input, field string) (float64, *ValidationError) {
	s := in.get(field)
	if s == "" {
		return 0, requiredError(field)
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, parseError(field, fmt.Sprintf("%s must be a number", Label(field)))
	}
	return v, nil
}

func parseBool(in Input, field string) (bool, *ValidationError) {
	s := strings.ToLower(in.get(field))
	switch s {
	case "yes", "true", "1":
		return true, nil
	case "no", "false", "0":
		return false, nil
	case "":
		return false, requiredError(field)
	default:
		return false, parseError(field, fmt.Sprintf("%s must be yes or no", Label(field)))
	}
}
