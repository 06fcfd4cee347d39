package scoring

import (
	"github.com/mchmarny/churnpulse/pkg/customer"
)

const (
	baseProbability = 0.5
	maxPercent      = 100.0
)

// Model is one of the fixed prediction slots.
type Model string

const (
	DecisionTree       Model = "decisionTree"
	KNN                Model = "knn"
	LogisticRegression Model = "logisticRegression"
	RandomForest       Model = "randomForest"
	XGBoost            Model = "xgboost"
)

// Models lists the prediction slots in display order.
var Models = []Model{DecisionTree, KNN, LogisticRegression, RandomForest, XGBoost}

// Variance is the jitter amplitude applied to each model's draw.
var Variance = map[Model]float64{
	DecisionTree:       0.22,
	KNN:                0.28,
	LogisticRegression: 0.18,
	RandomForest:       0.15,
	XGBoost:            0.12,
}

// Factor is a single named contribution to the base probability.
type Factor struct {
	Name       string  `json:"name" yaml:"name"`
	Adjustment float64 `json:"adjustment" yaml:"adjustment"`
}

// Factors returns the eight heuristic contributions for the record. Each
// ladder stops at its first matching branch, unmatched ladders contribute 0.
func Factors(r customer.Record) []Factor {
	return []Factor{
		{Name: "age", Adjustment: ageFactor(r.Age)},
		{Name: "tenure", Adjustment: tenureFactor(r.Tenure)},
		{Name: "numProducts", Adjustment: productsFactor(r.NumProducts)},
		{Name: "activeMember", Adjustment: activeFactor(r.IsActiveMember)},
		{Name: "balance", Adjustment: balanceFactor(r.Balance)},
		{Name: "hasCreditCard", Adjustment: creditCardFactor(r.HasCreditCard)},
		{Name: "creditScore", Adjustment: creditScoreFactor(r.CreditScore)},
		{Name: "salary", Adjustment: salaryFactor(r.EstimatedSalary)},
	}
}

// Base returns the unclamped pre-jitter probability for the record.
func Base(r customer.Record) float64 {
	p := baseProbability
	for _, f := range Factors(r) {
		p += f.Adjustment
	}
	return p
}

func ageFactor(age int) float64 {
	switch {
	case age > 60:
		return 0.12
	case age > 50:
		return 0.08
	case age < 25:
		return -0.05
	}
	return 0
}

func tenureFactor(tenure int) float64 {
	switch {
	case tenure > 10:
		return -0.15
	case tenure > 5:
		return -0.08
	case tenure < 2:
		return 0.12
	}
	return 0
}

func productsFactor(n int) float64 {
	switch {
	case n == 1:
		return 0.18
	case n >= 3:
		return -0.12
	}
	return 0
}

func activeFactor(active bool) float64 {
	if active {
		return -0.15
	}
	return 0.18
}

func balanceFactor(balance float64) float64 {
	switch {
	case balance == 0:
		return 0.25
	case balance > 150000:
		return -0.15
	case balance > 100000:
		return -0.08
	}
	return 0
}

func creditCardFactor(has bool) float64 {
	if has {
		return -0.05
	}
	return 0
}

func creditScoreFactor(score int) float64 {
	switch {
	case score < 500:
		return 0.10
	case score > 750:
		return -0.08
	}
	return 0
}

func salaryFactor(salary float64) float64 {
	switch {
	case salary < 30000:
		return 0.08
	case salary > 100000:
		return -0.05
	}
	return 0
}
