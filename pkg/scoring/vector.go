package scoring

import (
	"github.com/mchmarny/churnpulse/pkg/customer"
)

// Vector maps each model to a percentage in [0, 100].
type Vector map[Model]float64

// Score is a single model result.
type Score struct {
	Model   Model   `json:"model" yaml:"model"`
	Percent float64 `json:"percent" yaml:"percent"`
}

// Scores returns the vector entries in display order.
func (v Vector) Scores() []Score {
	list := make([]Score, 0, len(Models))
	for _, m := range Models {
		if p, ok := v[m]; ok {
			list = append(list, Score{Model: m, Percent: p})
		}
	}
	return list
}

// Predict computes the vector for the record, drawing one independent value
// from src per model.
func Predict(r customer.Record, src Source) Vector {
	if src == nil {
		src = NoJitter
	}
	base := Base(r)
	v := make(Vector, len(Models))
	for _, m := range Models {
		v[m] = Jitter(base, Variance[m], src.Float64())
	}
	return v
}

// Jitter applies a centered draw u in [0, 1) scaled by variance to the base
// probability and returns the clamped percentage.
func Jitter(base, variance, u float64) float64 {
	return Clamp((base + (u-0.5)*variance) * maxPercent)
}

// Clamp limits p to [0, 100].
func Clamp(p float64) float64 {
	return max(0, min(maxPercent, p))
}
