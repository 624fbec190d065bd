package strategy

import (
	"github.com/nayaksatyadeep876-ai/indian-trading/internal/indicator"
	"github.com/nayaksatyadeep876-ai/indian-trading/internal/model"
)

// TrendFollowing enters only when price, both SMA orderings, the EMA pair
// and MACD all line up. Stops sit just past the 20-bar SMA.
type TrendFollowing struct{}

func (TrendFollowing) Name() string { return "Trend Following" }

func (s TrendFollowing) Evaluate(price float64, ind *indicator.Snapshot) model.StrategyResult {
	bullish := price > ind.SMA20 && ind.SMA20 > ind.SMA50 &&
		ind.EMA12 > ind.EMA26 &&
		ind.MACD > ind.MACDSignal

	bearish := price < ind.SMA20 && ind.SMA20 < ind.SMA50 &&
		ind.EMA12 < ind.EMA26 &&
		ind.MACD < ind.MACDSignal

	switch {
	case bullish:
		return model.StrategyResult{
			Type:       model.SignalBuy,
			Confidence: 0.7,
			Target:     price * 1.025,
			StopLoss:   ind.SMA20 * 0.995,
			Strategy:   s.Name(),
		}
	case bearish:
		return model.StrategyResult{
			Type:       model.SignalSell,
			Confidence: 0.7,
			Target:     price * 0.975,
			StopLoss:   ind.SMA20 * 1.005,
			Strategy:   s.Name(),
		}
	default:
		return hold(s.Name(), price, 0.3)
	}
}
