package strategy

import (
	"github.com/nayaksatyadeep876-ai/indian-trading/internal/indicator"
	"github.com/nayaksatyadeep876-ai/indian-trading/internal/model"
)

// Breakout buys a close above any tracked resistance level on heavy volume
// (ratio > 1.5), targeting 2% past the broken level; symmetric breakdown
// through support sells. Without volume confirmation it holds.
type Breakout struct{}

func (Breakout) Name() string { return "Stock Breakout" }

func (s Breakout) Evaluate(price float64, ind *indicator.Snapshot) model.StrategyResult {
	if ind.VolumeRatio > 1.5 {
		for _, resistance := range ind.Resistance {
			if price > resistance {
				return model.StrategyResult{
					Type:       model.SignalBuy,
					Confidence: 0.8,
					Target:     resistance * 1.02,
					StopLoss:   price * 0.98,
					Strategy:   s.Name(),
				}
			}
		}
		for _, support := range ind.Support {
			if price < support {
				return model.StrategyResult{
					Type:       model.SignalSell,
					Confidence: 0.8,
					Target:     support * 0.98,
					StopLoss:   price * 1.02,
					Strategy:   "Stock Breakdown",
				}
			}
		}
	}
	return hold(s.Name(), price, 0.5)
}
