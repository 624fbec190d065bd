package strategy

import (
	"math"
	"testing"

	"github.com/nayaksatyadeep876-ai/indian-trading/internal/model"
)

func vote(typ model.SignalType, target, stop, weight float64) Vote {
	return Vote{
		Result: model.StrategyResult{Type: typ, Confidence: 0.7, Target: target, StopLoss: stop},
		Weight: weight,
	}
}

func TestCombine_BuyStrictMajority(t *testing.T) {
	sig := Combine(100, []Vote{
		vote(model.SignalBuy, 103, 98, 0.6),
		vote(model.SignalSell, 97, 102, 0.4),
	})
	if sig.Type != model.SignalBuy {
		t.Fatalf("expected BUY, got %s", sig.Type)
	}
	if sig.Confidence != 0.6 {
		t.Errorf("expected confidence 0.6, got %.3f", sig.Confidence)
	}
	if sig.Target != 103 || sig.StopLoss != 98 {
		t.Errorf("target/stop should come from the BUY voter, got %.2f/%.2f", sig.Target, sig.StopLoss)
	}
}

func TestCombine_EqualWeightsResolveToSell(t *testing.T) {
	sig := Combine(100, []Vote{
		vote(model.SignalBuy, 103, 98, 0.5),
		vote(model.SignalSell, 97, 102, 0.5),
	})
	if sig.Type != model.SignalSell {
		t.Fatalf("equal weights must resolve to SELL, got %s", sig.Type)
	}
	if sig.Confidence != 0.5 {
		t.Errorf("expected confidence 0.5, got %.3f", sig.Confidence)
	}
}

func TestCombine_LoneSellBeatsHoldMajority(t *testing.T) {
	sig := Combine(100, []Vote{
		vote(model.SignalHold, 100, 100, 0.7),
		vote(model.SignalSell, 97, 102, 0.3),
	})
	if sig.Type != model.SignalSell {
		t.Fatalf("any SELL weight must beat HOLD, got %s", sig.Type)
	}
	if sig.Confidence != 0.3 {
		t.Errorf("expected confidence 0.3, got %.3f", sig.Confidence)
	}
}

func TestCombine_AllHold(t *testing.T) {
	sig := Combine(100, []Vote{
		vote(model.SignalHold, 100, 100, 0.6),
		vote(model.SignalHold, 100, 100, 0.4),
	})
	if sig.Type != model.SignalHold {
		t.Fatalf("expected HOLD, got %s", sig.Type)
	}
	if sig.Target != 100 || sig.StopLoss != 100 {
		t.Errorf("HOLD should pin target/stop to price, got %.2f/%.2f", sig.Target, sig.StopLoss)
	}
	if sig.Confidence != 1.0 {
		t.Errorf("all-HOLD confidence is the full weight share, got %.3f", sig.Confidence)
	}
}

func TestCombine_WeightedTargetAverage(t *testing.T) {
	sig := Combine(100, []Vote{
		vote(model.SignalBuy, 102, 98, 0.6),
		vote(model.SignalBuy, 104, 96, 0.2),
		vote(model.SignalHold, 100, 100, 0.2),
	})
	if sig.Type != model.SignalBuy {
		t.Fatalf("expected BUY, got %s", sig.Type)
	}
	wantTarget := (102*0.6 + 104*0.2) / 0.8
	wantStop := (98*0.6 + 96*0.2) / 0.8
	if math.Abs(sig.Target-wantTarget) > 1e-9 {
		t.Errorf("expected target %.4f, got %.4f", wantTarget, sig.Target)
	}
	if math.Abs(sig.StopLoss-wantStop) > 1e-9 {
		t.Errorf("expected stop %.4f, got %.4f", wantStop, sig.StopLoss)
	}
	if math.Abs(sig.Confidence-0.6) > 1e-9 {
		t.Errorf("expected confidence 0.6, got %.3f", sig.Confidence)
	}
}

func TestCombine_NoVotes(t *testing.T) {
	sig := Combine(100, nil)
	if sig.Type != model.SignalHold || sig.Confidence != 0 {
		t.Errorf("empty vote set must be a zero-confidence HOLD, got %s/%.2f", sig.Type, sig.Confidence)
	}
}

func TestCombine_Deterministic(t *testing.T) {
	votes := []Vote{
		vote(model.SignalBuy, 103, 98, 0.4),
		vote(model.SignalSell, 97, 102, 0.3),
		vote(model.SignalHold, 100, 100, 0.3),
	}
	first := Combine(100, votes)
	for i := 0; i < 10; i++ {
		if got := Combine(100, votes); got != first {
			t.Fatalf("combine must be deterministic: %+v vs %+v", got, first)
		}
	}
}

func TestRiskReward(t *testing.T) {
	buy := model.StrategyResult{Type: model.SignalBuy, Target: 106, StopLoss: 98}
	if got := RiskReward(buy, 100); got != 3.0 {
		t.Errorf("expected 3.0, got %.2f", got)
	}

	sell := model.StrategyResult{Type: model.SignalSell, Target: 94, StopLoss: 102}
	if got := RiskReward(sell, 100); got != 3.0 {
		t.Errorf("expected 3.0, got %.2f", got)
	}

	hold := model.StrategyResult{Type: model.SignalHold, Target: 100, StopLoss: 100}
	if got := RiskReward(hold, 100); got != 0 {
		t.Errorf("HOLD must have 0 risk-reward, got %.2f", got)
	}

	// Stop at entry means zero risk: guard against division blow-up.
	degenerate := model.StrategyResult{Type: model.SignalBuy, Target: 105, StopLoss: 100}
	if got := RiskReward(degenerate, 100); got != 0 {
		t.Errorf("zero risk must yield 0, got %.2f", got)
	}
}
