package strategy

import (
	"github.com/nayaksatyadeep876-ai/indian-trading/internal/indicator"
	"github.com/nayaksatyadeep876-ai/indian-trading/internal/model"
)

// Momentum trades the position of price relative to the 50-bar SMA with a
// fixed 2% target and stop. Deliberately aggressive: the only condition is
// the SMA side, so it almost never holds.
type Momentum struct{}

func (Momentum) Name() string { return "NIFTY Momentum" }

func (s Momentum) Evaluate(price float64, ind *indicator.Snapshot) model.StrategyResult {
	switch {
	case price > ind.SMA50:
		return model.StrategyResult{
			Type:       model.SignalBuy,
			Confidence: 0.7,
			Target:     price * 1.02,
			StopLoss:   price * 0.98,
			Strategy:   s.Name(),
		}
	case price < ind.SMA50:
		return model.StrategyResult{
			Type:       model.SignalSell,
			Confidence: 0.7,
			Target:     price * 0.98,
			StopLoss:   price * 1.02,
			Strategy:   s.Name(),
		}
	default:
		return hold(s.Name(), price, 0.3)
	}
}

// StockMomentum requires RSI, stochastic, Williams %R and volume to agree
// before taking a 3% swing in either direction.
type StockMomentum struct{}

func (StockMomentum) Name() string { return "Stock Momentum" }

func (s StockMomentum) Evaluate(price float64, ind *indicator.Snapshot) model.StrategyResult {
	buy := ind.RSI > 50 && ind.RSI < 70 &&
		ind.StochasticK > 50 &&
		ind.WilliamsR > -50 &&
		ind.VolumeRatio > 1.3

	sell := ind.RSI < 50 && ind.RSI > 30 &&
		ind.StochasticK < 50 &&
		ind.WilliamsR < -50 &&
		ind.VolumeRatio > 1.3

	switch {
	case buy:
		return model.StrategyResult{
			Type:       model.SignalBuy,
			Confidence: 0.7,
			Target:     price * 1.03,
			StopLoss:   price * 0.97,
			Strategy:   s.Name(),
		}
	case sell:
		return model.StrategyResult{
			Type:       model.SignalSell,
			Confidence: 0.7,
			Target:     price * 0.97,
			StopLoss:   price * 1.03,
			Strategy:   s.Name(),
		}
	default:
		return hold(s.Name(), price, 0.3)
	}
}
