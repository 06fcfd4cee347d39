package view

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/dustin/go-humanize"
	"github.com/mchmarny/churnpulse/pkg/customer"
	"github.com/mchmarny/churnpulse/pkg/scoring"
)

const (
	// Placeholder is shown in prediction cells before a submission.
	Placeholder = "--"
	// NoDataText replaces the record listing before a submission.
	NoDataText = "No data entered yet"

	notAvailable   = "N/A"
	currencyFormat = "#,###.##"
)

type slot struct {
	name string
	id   string
}

var slots = map[scoring.Model]slot{
	scoring.DecisionTree:       {name: "Decision Tree", id: "pred-dt"},
	scoring.KNN:                {name: "K-Nearest Neighbors", id: "pred-knn"},
	scoring.LogisticRegression: {name: "Logistic Regression", id: "pred-lr"},
	scoring.RandomForest:       {name: "Random Forest", id: "pred-rf"},
	scoring.XGBoost:            {name: "XGBoost", id: "pred-xgb"},
}

// Cell is one rendered prediction slot.
type Cell struct {
	Model     scoring.Model `json:"model" yaml:"model"`
	Name      string        `json:"name" yaml:"name"`
	ElementID string        `json:"element_id" yaml:"element_id"`
	Percent   float64       `json:"percent" yaml:"percent"`
	Text      string        `json:"text" yaml:"text"`
	Tier      Tier          `json:"tier,omitempty" yaml:"tier,omitempty"`
	Color     string        `json:"color,omitempty" yaml:"color,omitempty"`
}

// Field is a labeled value of the record listing.
type Field struct {
	Label string `json:"label" yaml:"label"`
	Value string `json:"value" yaml:"value"`
}

// Model is everything the output surface needs to render a submission.
type Model struct {
	ID          string           `json:"id,omitempty" yaml:"id,omitempty"`
	Empty       bool             `json:"empty" yaml:"empty"`
	Predictions []Cell           `json:"predictions" yaml:"predictions"`
	Record      []Field          `json:"record,omitempty" yaml:"record,omitempty"`
	Factors     []scoring.Factor `json:"factors,omitempty" yaml:"factors,omitempty"`
	EmptyText   string           `json:"empty_text,omitempty" yaml:"empty_text,omitempty"`
}

// Empty returns the placeholder model shown before a submission and after
// a reset.
func Empty() Model {
	cells := make([]Cell, 0, len(scoring.Models))
	for _, m := range scoring.Models {
		s := slots[m]
		cells = append(cells, Cell{
			Model:     m,
			Name:      s.name,
			ElementID: s.id,
			Text:      Placeholder,
		})
	}
	return Model{
		Empty:       true,
		Predictions: cells,
		EmptyText:   NoDataText,
	}
}

// New builds the model for a scored record.
func New(id string, r customer.Record, v scoring.Vector) Model {
	cells := make([]Cell, 0, len(scoring.Models))
	for _, sc := range v.Scores() {
		s := slots[sc.Model]
		t := TierOf(sc.Percent)
		cells = append(cells, Cell{
			Model:     sc.Model,
			Name:      s.name,
			ElementID: s.id,
			Percent:   sc.Percent,
			Text:      FormatPercent(sc.Percent),
			Tier:      t,
			Color:     t.Color(),
		})
	}
	return Model{
		ID:          id,
		Predictions: cells,
		Record:      Fields(r),
		Factors:     scoring.Factors(r),
	}
}

// Fields returns the labeled record listing.
func Fields(r customer.Record) []Field {
	return []Field{
		{Label: "Credit Score", Value: strconv.Itoa(r.CreditScore)},
		{Label: "Country", Value: Capitalize(r.Country)},
		{Label: "Gender", Value: Capitalize(string(r.Gender))},
		{Label: "Age", Value: fmt.Sprintf("%d years", r.Age)},
		{Label: "Years as Customer", Value: fmt.Sprintf("%d years", r.Tenure)},
		{Label: "Account Balance", Value: FormatCurrency(r.Balance)},
		{Label: "Products Used", Value: strconv.Itoa(r.NumProducts)},
		{Label: "Has Credit Card", Value: YesNo(r.HasCreditCard)},
		{Label: "Active Member", Value: YesNo(r.IsActiveMember)},
		{Label: "Estimated Salary", Value: FormatCurrency(r.EstimatedSalary)},
	}
}

// FormatPercent renders p with a single decimal, e.g. 45.3%.
func FormatPercent(p float64) string {
	return strconv.FormatFloat(p, 'f', 1, 64) + "%"
}

// FormatCurrency renders v as US dollars, e.g. $12,500.50.
func FormatCurrency(v float64) string {
	if v < 0 {
		return "-$" + humanize.FormatFloat(currencyFormat, -v)
	}
	return "$" + humanize.FormatFloat(currencyFormat, v)
}

// Capitalize upper-cases the first letter, empty strings render as N/A.
func Capitalize(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return notAvailable
	}
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(r)) + s[size:]
}

func YesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}
