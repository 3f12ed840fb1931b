package economy

import (
	opensimplex "github.com/ojrac/opensimplex-go"
)

// TrendField produces the slow-moving overall market direction sampled
// once per tick. Simplex noise gives a smooth drift between bull and bear
// phases instead of uncorrelated per-tick jumps.
type TrendField struct {
	noise opensimplex.Noise
	scale float64
}

// NewTrendField creates a trend field from a seed. Lower scale means
// slower market cycles.
func NewTrendField(seed int64) *TrendField {
	return &TrendField{
		noise: opensimplex.NewNormalized(seed),
		scale: 0.005,
	}
}

// At returns the market trend in [-1, 1] for a tick number.
func (f *TrendField) At(tick uint64) float64 {
	return f.noise.Eval2(float64(tick)*f.scale, 0)*2 - 1
}

// MarketCondition labels the trend for the AI decision engine.
type MarketCondition string

const (
	ConditionBull   MarketCondition = "bull"
	ConditionStable MarketCondition = "stable"
	ConditionBear   MarketCondition = "bear"
)

// Condition buckets a trend value.
func Condition(trend float64) MarketCondition {
	switch {
	case trend > 0.3:
		return ConditionBull
	case trend < -0.3:
		return ConditionBear
	default:
		return ConditionStable
	}
}
