package strategy

import (
	"github.com/nayaksatyadeep876-ai/indian-trading/internal/indicator"
	"github.com/nayaksatyadeep876-ai/indian-trading/internal/model"
)

// VolatilityExpansion only trades when the Bollinger band width exceeds 3%.
// It buys a volume-confirmed touch of the lower band with a 2-ATR target and
// 1-ATR stop; symmetric at the upper band.
type VolatilityExpansion struct{}

func (VolatilityExpansion) Name() string { return "Volatility" }

func (s VolatilityExpansion) Evaluate(price float64, ind *indicator.Snapshot) model.StrategyResult {
	if ind.BBWidth > 0.03 {
		if price <= ind.BBLower && ind.VolumeRatio > 1.2 {
			return model.StrategyResult{
				Type:       model.SignalBuy,
				Confidence: 0.6,
				Target:     price + 2*ind.ATR,
				StopLoss:   price - ind.ATR,
				Strategy:   "Volatility Expansion",
			}
		}
		if price >= ind.BBUpper && ind.VolumeRatio > 1.2 {
			return model.StrategyResult{
				Type:       model.SignalSell,
				Confidence: 0.6,
				Target:     price - 2*ind.ATR,
				StopLoss:   price + ind.ATR,
				Strategy:   "Volatility Expansion",
			}
		}
	}
	return hold(s.Name(), price, 0.3)
}
