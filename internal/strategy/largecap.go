package strategy

import (
	"github.com/nayaksatyadeep876-ai/indian-trading/internal/indicator"
	"github.com/nayaksatyadeep876-ai/indian-trading/internal/model"
)

// LargeCap is the conservative entry for index heavyweights: RSI must sit in
// a neutral band, the long moving averages must be ordered, MACD must agree
// and volume must run above average. Targets are a modest 2%.
type LargeCap struct{}

func (LargeCap) Name() string { return "Large Cap" }

func (s LargeCap) Evaluate(price float64, ind *indicator.Snapshot) model.StrategyResult {
	bullish := ind.RSI > 45 && ind.RSI < 65 &&
		price > ind.SMA50 && ind.SMA50 > ind.SMA200 &&
		ind.MACD > ind.MACDSignal &&
		ind.VolumeRatio > 1.2

	bearish := ind.RSI < 55 && ind.RSI > 35 &&
		price < ind.SMA50 &&
		ind.MACD < ind.MACDSignal &&
		ind.VolumeRatio > 1.2

	switch {
	case bullish:
		return model.StrategyResult{
			Type:       model.SignalBuy,
			Confidence: 0.6,
			Target:     price * 1.02,
			StopLoss:   price * 0.98,
			Strategy:   s.Name(),
		}
	case bearish:
		return model.StrategyResult{
			Type:       model.SignalSell,
			Confidence: 0.6,
			Target:     price * 0.98,
			StopLoss:   price * 1.02,
			Strategy:   s.Name(),
		}
	default:
		return hold(s.Name(), price, 0.4)
	}
}
