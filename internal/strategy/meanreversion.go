package strategy

import (
	"github.com/nayaksatyadeep876-ai/indian-trading/internal/indicator"
	"github.com/nayaksatyadeep876-ai/indian-trading/internal/model"
)

// MeanReversion fades oversold/overbought extremes at the Bollinger bands,
// targeting the middle band. Confidence scales with how deep RSI sits past
// the 30/70 threshold, capped at 1.0.
type MeanReversion struct{}

func (MeanReversion) Name() string { return "Mean Reversion" }

func (s MeanReversion) Evaluate(price float64, ind *indicator.Snapshot) model.StrategyResult {
	oversold := ind.RSI < 30 && price <= ind.BBLower
	overbought := ind.RSI > 70 && price >= ind.BBUpper

	switch {
	case oversold:
		return model.StrategyResult{
			Type:       model.SignalBuy,
			Confidence: clampConfidence((30 - ind.RSI) / 30),
			Target:     ind.BBMiddle,
			StopLoss:   price * 0.98,
			Strategy:   s.Name(),
		}
	case overbought:
		return model.StrategyResult{
			Type:       model.SignalSell,
			Confidence: clampConfidence((ind.RSI - 70) / 30),
			Target:     ind.BBMiddle,
			StopLoss:   price * 1.02,
			Strategy:   s.Name(),
		}
	default:
		return hold(s.Name(), price, 0.3)
	}
}
