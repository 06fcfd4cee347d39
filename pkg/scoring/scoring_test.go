package scoring

import (
	"testing"

	"github.com/mchmarny/churnpulse/pkg/customer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const delta = 1e-9

// neutral hits no branch of any ladder except the two boolean factors.
func neutral() customer.Record {
	return customer.Record{
		CreditScore:     600,
		Country:         "spain",
		Gender:          customer.GenderMale,
		Age:             40,
		Tenure:          3,
		Balance:         50000,
		NumProducts:     2,
		HasCreditCard:   false,
		IsActiveMember:  true,
		EstimatedSalary: 50000,
	}
}

func highRisk() customer.Record {
	return customer.Record{
		CreditScore:     300,
		Country:         "germany",
		Gender:          customer.GenderOther,
		Age:             18,
		Tenure:          0,
		Balance:         0,
		NumProducts:     1,
		HasCreditCard:   false,
		IsActiveMember:  false,
		EstimatedSalary: 0,
	}
}

func lowRisk() customer.Record {
	return customer.Record{
		CreditScore:     800,
		Country:         "france",
		Gender:          customer.GenderFemale,
		Age:             70,
		Tenure:          15,
		Balance:         200000,
		NumProducts:     4,
		HasCreditCard:   true,
		IsActiveMember:  true,
		EstimatedSalary: 150000,
	}
}

func TestBaseNeutral(t *testing.T) {
	assert.InDelta(t, 0.35, Base(neutral()), delta)
}

func TestBaseHighRisk(t *testing.T) {
	assert.InDelta(t, 1.36, Base(highRisk()), delta)

	for _, u := range []float64{0, 0.25, 0.5, 0.999} {
		v := Predict(highRisk(), Fixed(u))
		for _, m := range Models {
			assert.Equal(t, 100.0, v[m], "model %s draw %v", m, u)
		}
	}
}

func TestBaseLowRisk(t *testing.T) {
	r := lowRisk()
	// 0.5 + 0.12 - 0.15 - 0.12 - 0.15 - 0.15 - 0.05 - 0.08 - 0.05
	assert.InDelta(t, -0.13, Base(r), delta)

	for _, u := range []float64{0, 0.25, 0.5} {
		v := Predict(r, Fixed(u))
		for _, m := range Models {
			assert.Equal(t, 0.0, v[m], "model %s draw %v", m, u)
		}
	}

	// only knn has a band wide enough to lift it above zero
	v := Predict(r, Fixed(0.999))
	for _, m := range Models {
		assert.LessOrEqual(t, v[m], max(0, (Base(r)+Variance[m]/2)*100)+delta, "model %s", m)
	}
	assert.Greater(t, v[KNN], 0.0)
	for _, m := range []Model{DecisionTree, LogisticRegression, RandomForest, XGBoost} {
		assert.Equal(t, 0.0, v[m], "model %s", m)
	}
}

func TestBalanceZeroFactor(t *testing.T) {
	r := neutral()
	without := Base(r)

	r.Balance = 0
	assert.InDelta(t, without+0.25, Base(r), delta)

	v := Predict(r, NoJitter)
	assert.InDelta(t, (without+0.25)*100, v[DecisionTree], 1e-7)
}

func TestFactorLadders(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(r *customer.Record)
		factor string
		want   float64
	}{
		{"age over 60", func(r *customer.Record) { r.Age = 61 }, "age", 0.12},
		{"age over 50", func(r *customer.Record) { r.Age = 60 }, "age", 0.08},
		{"age 50", func(r *customer.Record) { r.Age = 50 }, "age", 0},
		{"age under 25", func(r *customer.Record) { r.Age = 24 }, "age", -0.05},
		{"age 25", func(r *customer.Record) { r.Age = 25 }, "age", 0},
		{"tenure over 10", func(r *customer.Record) { r.Tenure = 11 }, "tenure", -0.15},
		{"tenure over 5", func(r *customer.Record) { r.Tenure = 10 }, "tenure", -0.08},
		{"tenure 5", func(r *customer.Record) { r.Tenure = 5 }, "tenure", 0},
		{"tenure under 2", func(r *customer.Record) { r.Tenure = 1 }, "tenure", 0.12},
		{"tenure 2", func(r *customer.Record) { r.Tenure = 2 }, "tenure", 0},
		{"one product", func(r *customer.Record) { r.NumProducts = 1 }, "numProducts", 0.18},
		{"two products", func(r *customer.Record) { r.NumProducts = 2 }, "numProducts", 0},
		{"three products", func(r *customer.Record) { r.NumProducts = 3 }, "numProducts", -0.12},
		{"active", func(r *customer.Record) { r.IsActiveMember = true }, "activeMember", -0.15},
		{"inactive", func(r *customer.Record) { r.IsActiveMember = false }, "activeMember", 0.18},
		{"zero balance", func(r *customer.Record) { r.Balance = 0 }, "balance", 0.25},
		{"balance over 150k", func(r *customer.Record) { r.Balance = 150000.01 }, "balance", -0.15},
		{"balance 150k", func(r *customer.Record) { r.Balance = 150000 }, "balance", -0.08},
		{"balance 100k", func(r *customer.Record) { r.Balance = 100000 }, "balance", 0},
		{"has card", func(r *customer.Record) { r.HasCreditCard = true }, "hasCreditCard", -0.05},
		{"no card", func(r *customer.Record) { r.HasCreditCard = false }, "hasCreditCard", 0},
		{"credit under 500", func(r *customer.Record) { r.CreditScore = 499 }, "creditScore", 0.10},
		{"credit 500", func(r *customer.Record) { r.CreditScore = 500 }, "creditScore", 0},
		{"credit over 750", func(r *customer.Record) { r.CreditScore = 751 }, "creditScore", -0.08},
		{"credit 750", func(r *customer.Record) { r.CreditScore = 750 }, "creditScore", 0},
		{"salary under 30k", func(r *customer.Record) { r.EstimatedSalary = 29999 }, "salary", 0.08},
		{"salary 30k", func(r *customer.Record) { r.EstimatedSalary = 30000 }, "salary", 0},
		{"salary over 100k", func(r *customer.Record) { r.EstimatedSalary = 100001 }, "salary", -0.05},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := neutral()
			tt.mutate(&r)

			found := false
			for _, f := range Factors(r) {
				if f.Name == tt.factor {
					assert.InDelta(t, tt.want, f.Adjustment, delta)
					found = true
				}
			}
			require.True(t, found, "factor %s", tt.factor)
		})
	}
}

func TestFactorsSumToBase(t *testing.T) {
	for _, r := range []customer.Record{neutral(), highRisk(), lowRisk()} {
		sum := 0.5
		fs := Factors(r)
		assert.Len(t, fs, 8)
		for _, f := range fs {
			sum += f.Adjustment
		}
		assert.InDelta(t, Base(r), sum, delta)
	}
}

func TestPredictWithinBounds(t *testing.T) {
	src := NewRandSource(42)
	records := []customer.Record{neutral(), highRisk(), lowRisk()}

	for i := 0; i < 500; i++ {
		r := records[i%len(records)]
		r.Age = 18 + i%83
		r.Tenure = i % 51
		r.NumProducts = 1 + i%4
		v := Predict(r, src)
		require.Len(t, v, len(Models))
		for m, p := range v {
			assert.GreaterOrEqual(t, p, 0.0, "model %s", m)
			assert.LessOrEqual(t, p, 100.0, "model %s", m)
		}
	}
}

func TestPredictWithinVarianceBand(t *testing.T) {
	r := neutral()
	base := Base(r) * 100
	src := NewRandSource(7)

	for i := 0; i < 200; i++ {
		v := Predict(r, src)
		for _, m := range Models {
			band := Variance[m] * 50
			assert.InDelta(t, base, v[m], band+1e-9, "model %s", m)
		}
	}
}

func TestPredictNoJitter(t *testing.T) {
	v := Predict(neutral(), NoJitter)
	for _, m := range Models {
		assert.InDelta(t, 35.0, v[m], 1e-7)
	}

	v = Predict(neutral(), nil)
	assert.InDelta(t, 35.0, v[XGBoost], 1e-7)
}

func TestPredictDrawsPerModel(t *testing.T) {
	// a draw of 0 moves every model down by half its variance
	v := Predict(neutral(), Fixed(0))
	assert.InDelta(t, 35.0-11.0, v[DecisionTree], 1e-7)
	assert.InDelta(t, 35.0-14.0, v[KNN], 1e-7)
	assert.InDelta(t, 35.0-9.0, v[LogisticRegression], 1e-7)
	assert.InDelta(t, 35.0-7.5, v[RandomForest], 1e-7)
	assert.InDelta(t, 35.0-6.0, v[XGBoost], 1e-7)
}

func TestRandSourceDeterministic(t *testing.T) {
	a := NewRandSource(99)
	b := NewRandSource(99)
	for i := 0; i < 10; i++ {
		assert.Equal(t, a.Float64(), b.Float64())
	}

	s := NewSource()
	u := s.Float64()
	assert.GreaterOrEqual(t, u, 0.0)
	assert.Less(t, u, 1.0)
}

func TestScoresOrder(t *testing.T) {
	v := Predict(neutral(), NoJitter)
	scores := v.Scores()
	require.Len(t, scores, len(Models))
	for i, s := range scores {
		assert.Equal(t, Models[i], s.Model)
	}
}

func TestClamp(t *testing.T) {
	assert.Equal(t, 0.0, Clamp(-3))
	assert.Equal(t, 100.0, Clamp(136))
	assert.Equal(t, 55.5, Clamp(55.5))
}
