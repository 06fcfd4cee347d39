package customer

import (
	"fmt"
	"strings"
)

// Field names as they appear on the input form.
const (
	FieldCreditScore     = "creditScore"
	FieldCountry         = "country"
	FieldGender          = "gender"
	FieldAge             = "age"
	FieldTenure          = "tenure"
	FieldBalance         = "balance"
	FieldNumProducts     = "numProducts"
	FieldHasCreditCard   = "hasCreditCard"
	FieldIsActiveMember  = "isActiveMember"
	FieldEstimatedSalary = "estimatedSalary"
)

// Fields lists all input fields in form order.
var Fields = []string{
	FieldCreditScore,
	FieldCountry,
	FieldGender,
	FieldAge,
	FieldTenure,
	FieldBalance,
	FieldNumProducts,
	FieldHasCreditCard,
	FieldIsActiveMember,
	FieldEstimatedSalary,
}

var fieldLabels = map[string]string{
	FieldCreditScore:     "Credit score",
	FieldCountry:         "Country",
	FieldGender:          "Gender",
	FieldAge:             "Age",
	FieldTenure:          "Years as customer",
	FieldBalance:         "Account balance",
	FieldNumProducts:     "Number of products",
	FieldHasCreditCard:   "Has credit card",
	FieldIsActiveMember:  "Active member",
	FieldEstimatedSalary: "Estimated salary",
}

// Label returns the human readable name of the field.
func Label(field string) string {
	if l, ok := fieldLabels[field]; ok {
		return l
	}
	return field
}

type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
	GenderOther  Gender = "other"
)

// Genders lists the accepted gender values.
var Genders = []Gender{GenderMale, GenderFemale, GenderOther}

// ParseGender returns the gender for the given value (case-insensitive).
func ParseGender(v string) (Gender, bool) {
	g := Gender(strings.ToLower(strings.TrimSpace(v)))
	for _, known := range Genders {
		if g == known {
			return g, true
		}
	}
	return "", false
}

// Record is a validated customer submission. Values are created fresh for
// each submission and never modified afterwards.
type Record struct {
	CreditScore     int     `json:"creditScore" yaml:"creditScore"`
	Country         string  `json:"country" yaml:"country"`
	Gender          Gender  `json:"gender" yaml:"gender"`
	Age             int     `json:"age" yaml:"age"`
	Tenure          int     `json:"tenure" yaml:"tenure"`
	Balance         float64 `json:"balance" yaml:"balance"`
	NumProducts     int     `json:"numProducts" yaml:"numProducts"`
	HasCreditCard   bool    `json:"hasCreditCard" yaml:"hasCreditCard"`
	IsActiveMember  bool    `json:"isActiveMember" yaml:"isActiveMember"`
	EstimatedSalary float64 `json:"estimatedSalary" yaml:"estimatedSalary"`
}

func (r Record) String() string {
	return fmt.Sprintf("credit=%d country=%s gender=%s age=%d tenure=%d balance=%.2f products=%d card=%t active=%t salary=%.2f",
		r.CreditScore, r.Country, r.Gender, r.Age, r.Tenure, r.Balance,
		r.NumProducts, r.HasCreditCard, r.IsActiveMember, r.EstimatedSalary)
}

// numeric returns the numeric value of the field used by the range rules.
func (r Record) numeric(field string) (float64, bool) {
	switch field {
	case FieldCreditScore:
		return float64(r.CreditScore), true
	case FieldAge:
		return float64(r.Age), true
	case FieldTenure:
		return float64(r.Tenure), true
	case FieldBalance:
		return r.Balance, true
	case FieldNumProducts:
		return float64(r.NumProducts), true
	case FieldEstimatedSalary:
		return r.EstimatedSalary, true
	default:
		return 0, false
	}
}
