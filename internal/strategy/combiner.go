package strategy

import (
	"github.com/nayaksatyadeep876-ai/indian-trading/internal/model"
)

// Weighted pairs a strategy with its vote weight inside a strategy set.
type Weighted struct {
	Strategy Strategy
	Weight   float64
}

// Vote is one strategy's result together with its weight, ready to combine.
type Vote struct {
	Result model.StrategyResult
	Weight float64
}

// Combiner resolves the per-class strategy sets once at construction and
// merges their votes into a single decision.
type Combiner struct {
	sets map[Class][]Weighted
}

// NewCombiner builds the fixed symbol-class weight tables.
func NewCombiner() *Combiner {
	return &Combiner{
		sets: map[Class][]Weighted{
			ClassIndex: {
				{Momentum{}, 0.4},
				{MeanReversion{}, 0.3},
				{TrendFollowing{}, 0.3},
			},
			ClassBankIndex: {
				{VolatilityExpansion{}, 0.5},
				{Breakout{}, 0.5},
			},
			ClassLargeCap: {
				{LargeCap{}, 0.6},
				{StockMomentum{}, 0.4},
			},
			ClassStock: {
				{Breakout{}, 0.7},
				{VolatilityExpansion{}, 0.3},
			},
		},
	}
}

// StrategiesFor returns the weighted strategy set for a symbol.
func (c *Combiner) StrategiesFor(symbol string) []Weighted {
	return c.sets[Classify(symbol)]
}

// Evaluate runs the symbol's strategy set against the snapshot inputs and
// combines the votes.
func (c *Combiner) Evaluate(symbol string, price float64, votesFor func(Weighted) Vote) model.StrategyResult {
	set := c.StrategiesFor(symbol)
	votes := make([]Vote, 0, len(set))
	for _, w := range set {
		votes = append(votes, votesFor(w))
	}
	return Combine(price, votes)
}

// Combine merges weighted strategy votes into one decision.
//
// BUY wins only on a strict weight majority over SELL; otherwise any nonzero
// SELL weight wins before HOLD is considered. Equal BUY/SELL weights
// therefore resolve to SELL, and a lone SELL vote beats a HOLD majority.
// This bias toward trading over abstaining is intentional and must not be
// "fixed" without product sign-off.
//
// Target and stop are weight-averaged across the strategies that voted for
// the winning type, falling back to ±2% of the current price.
func Combine(currentPrice float64, votes []Vote) model.StrategyResult {
	var totalWeight, buyWeight, sellWeight, holdWeight float64
	for _, v := range votes {
		totalWeight += v.Weight
		switch v.Result.Type {
		case model.SignalBuy:
			buyWeight += v.Weight
		case model.SignalSell:
			sellWeight += v.Weight
		case model.SignalHold:
			holdWeight += v.Weight
		}
	}
	if totalWeight <= 0 {
		return model.StrategyResult{
			Type:       model.SignalHold,
			Confidence: 0,
			Target:     currentPrice,
			StopLoss:   currentPrice,
			Strategy:   "Multi-Strategy",
		}
	}

	var winner model.SignalType
	var confidence float64
	switch {
	case buyWeight > sellWeight:
		winner = model.SignalBuy
		confidence = buyWeight / totalWeight
	case sellWeight > 0:
		winner = model.SignalSell
		confidence = sellWeight / totalWeight
	default:
		winner = model.SignalHold
		confidence = holdWeight / totalWeight
	}

	target, stop := currentPrice, currentPrice
	if winner != model.SignalHold {
		winnerWeight := buyWeight
		if winner == model.SignalSell {
			winnerWeight = sellWeight
		}
		var targetSum, stopSum float64
		for _, v := range votes {
			if v.Result.Type != winner {
				continue
			}
			targetSum += v.Result.Target * v.Weight
			stopSum += v.Result.StopLoss * v.Weight
		}
		if winnerWeight > 0 {
			target = targetSum / winnerWeight
			stop = stopSum / winnerWeight
		} else if winner == model.SignalBuy {
			target = currentPrice * 1.02
			stop = currentPrice * 0.98
		} else {
			target = currentPrice * 0.98
			stop = currentPrice * 1.02
		}
	}

	return model.StrategyResult{
		Type:       winner,
		Confidence: confidence,
		Target:     target,
		StopLoss:   stop,
		Strategy:   "Multi-Strategy",
	}
}

// RiskReward computes reward/risk for a decision at the given entry price.
// Returns 0 for HOLD and whenever risk is not positive.
func RiskReward(sig model.StrategyResult, entry float64) float64 {
	if sig.Type == model.SignalHold {
		return 0
	}
	var reward, risk float64
	if sig.Type == model.SignalBuy {
		reward = sig.Target - entry
		risk = entry - sig.StopLoss
	} else {
		reward = entry - sig.Target
		risk = sig.StopLoss - entry
	}
	if risk <= 0 {
		return 0
	}
	return reward / risk
}
