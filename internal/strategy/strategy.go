package strategy

import (
	"github.com/nayaksatyadeep876-ai/indian-trading/internal/indicator"
	"github.com/nayaksatyadeep876-ai/indian-trading/internal/model"
)

// Strategy scores a symbol at the current price given an indicator snapshot.
// Implementations are pure: same inputs, same result.
type Strategy interface {
	Name() string
	Evaluate(price float64, ind *indicator.Snapshot) model.StrategyResult
}

// hold builds the "no opinion" result: target and stop pinned to the current
// price with a low non-zero confidence, distinguishing it from the
// zero-confidence error state.
func hold(name string, price, confidence float64) model.StrategyResult {
	return model.StrategyResult{
		Type:       model.SignalHold,
		Confidence: confidence,
		Target:     price,
		StopLoss:   price,
		Strategy:   name,
	}
}

func clampConfidence(c float64) float64 {
	if c > 1 {
		return 1
	}
	if c < 0 {
		return 0
	}
	return c
}
