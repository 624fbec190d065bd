package strategy

import (
	"testing"

	"github.com/nayaksatyadeep876-ai/indian-trading/internal/indicator"
	"github.com/nayaksatyadeep876-ai/indian-trading/internal/model"
)

func neutralSnapshot(price float64) *indicator.Snapshot {
	return &indicator.Snapshot{
		RSI:         50,
		SMA5:        price,
		SMA10:       price,
		SMA20:       price,
		SMA50:       price,
		SMA200:      price,
		EMA12:       price,
		EMA26:       price,
		EMA50:       price,
		BBUpper:     price * 1.02,
		BBMiddle:    price,
		BBLower:     price * 0.98,
		BBWidth:     0.04,
		StochasticK: 50,
		StochasticD: 50,
		WilliamsR:   -50,
		ATR:         price * 0.02,
		VolumeRatio: 1.0,
	}
}

func TestMomentum_SidesOfSMA50(t *testing.T) {
	snap := neutralSnapshot(100)
	snap.SMA50 = 95

	res := Momentum{}.Evaluate(100, snap)
	if res.Type != model.SignalBuy {
		t.Fatalf("expected BUY above SMA50, got %s", res.Type)
	}
	if res.Target != 102 || res.StopLoss != 98 {
		t.Errorf("expected 2%% target/stop, got %.2f/%.2f", res.Target, res.StopLoss)
	}

	snap.SMA50 = 105
	res = Momentum{}.Evaluate(100, snap)
	if res.Type != model.SignalSell {
		t.Fatalf("expected SELL below SMA50, got %s", res.Type)
	}
}

func TestStockMomentum_RequiresAllConditions(t *testing.T) {
	snap := neutralSnapshot(100)
	snap.RSI = 60
	snap.StochasticK = 60
	snap.WilliamsR = -40
	snap.VolumeRatio = 1.5

	res := StockMomentum{}.Evaluate(100, snap)
	if res.Type != model.SignalBuy {
		t.Fatalf("expected BUY, got %s", res.Type)
	}
	if res.Target != 103 {
		t.Errorf("expected 3%% target, got %.2f", res.Target)
	}

	// Drop volume confirmation and it should hold.
	snap.VolumeRatio = 1.0
	res = StockMomentum{}.Evaluate(100, snap)
	if res.Type != model.SignalHold {
		t.Errorf("expected HOLD without volume, got %s", res.Type)
	}
	if res.Target != 100 || res.StopLoss != 100 {
		t.Errorf("HOLD should pin target/stop to price, got %.2f/%.2f", res.Target, res.StopLoss)
	}
}

func TestMeanReversion_Oversold(t *testing.T) {
	snap := neutralSnapshot(100)
	snap.RSI = 24
	snap.BBLower = 100.5
	snap.BBMiddle = 105

	res := MeanReversion{}.Evaluate(100, snap)
	if res.Type != model.SignalBuy {
		t.Fatalf("expected BUY, got %s", res.Type)
	}
	if res.Target != 105 {
		t.Errorf("target should be middle band, got %.2f", res.Target)
	}
	if want := (30.0 - 24.0) / 30.0; res.Confidence != want {
		t.Errorf("expected confidence %.3f, got %.3f", want, res.Confidence)
	}
}

func TestMeanReversion_OverboughtConfidenceCapped(t *testing.T) {
	snap := neutralSnapshot(100)
	snap.RSI = 99
	snap.BBUpper = 99.5

	res := MeanReversion{}.Evaluate(100, snap)
	if res.Type != model.SignalSell {
		t.Fatalf("expected SELL, got %s", res.Type)
	}
	if res.Confidence < 0 || res.Confidence > 1 {
		t.Errorf("confidence out of range: %.3f", res.Confidence)
	}
}

func TestTrendFollowing_ConjunctiveAlignment(t *testing.T) {
	snap := neutralSnapshot(100)
	snap.SMA20 = 98
	snap.SMA50 = 96
	snap.EMA12 = 99
	snap.EMA26 = 97
	snap.MACD = 0.5
	snap.MACDSignal = 0.2

	res := TrendFollowing{}.Evaluate(100, snap)
	if res.Type != model.SignalBuy {
		t.Fatalf("expected BUY on full alignment, got %s", res.Type)
	}
	if res.StopLoss != 98*0.995 {
		t.Errorf("stop should hug SMA20, got %.3f", res.StopLoss)
	}

	// Break one condition and it must hold.
	snap.MACD = 0.1
	res = TrendFollowing{}.Evaluate(100, snap)
	if res.Type != model.SignalHold {
		t.Errorf("expected HOLD when MACD disagrees, got %s", res.Type)
	}
}

func TestBreakout_NeedsVolume(t *testing.T) {
	snap := neutralSnapshot(100)
	snap.Resistance = []float64{99}
	snap.VolumeRatio = 1.6

	res := Breakout{}.Evaluate(100, snap)
	if res.Type != model.SignalBuy {
		t.Fatalf("expected BUY through resistance, got %s", res.Type)
	}
	if res.Target != 99*1.02 {
		t.Errorf("target should be 2%% past the level, got %.2f", res.Target)
	}

	snap.VolumeRatio = 1.2
	res = Breakout{}.Evaluate(100, snap)
	if res.Type != model.SignalHold {
		t.Errorf("expected HOLD without volume, got %s", res.Type)
	}
	if res.Confidence != 0.5 {
		t.Errorf("breakout HOLD confidence should be 0.5, got %.2f", res.Confidence)
	}
}

func TestBreakout_BreakdownRenamed(t *testing.T) {
	snap := neutralSnapshot(100)
	snap.Support = []float64{101}
	snap.VolumeRatio = 1.6

	res := Breakout{}.Evaluate(100, snap)
	if res.Type != model.SignalSell {
		t.Fatalf("expected SELL through support, got %s", res.Type)
	}
	if res.Strategy != "Stock Breakdown" {
		t.Errorf("breakdown should rename the strategy, got %q", res.Strategy)
	}
}

func TestVolatilityExpansion_WidthGate(t *testing.T) {
	snap := neutralSnapshot(100)
	snap.BBWidth = 0.02
	snap.BBLower = 100.5
	snap.VolumeRatio = 1.5

	res := VolatilityExpansion{}.Evaluate(100, snap)
	if res.Type != model.SignalHold {
		t.Fatalf("narrow bands must hold, got %s", res.Type)
	}

	snap.BBWidth = 0.05
	res = VolatilityExpansion{}.Evaluate(100, snap)
	if res.Type != model.SignalBuy {
		t.Fatalf("expected BUY at lower band, got %s", res.Type)
	}
	if res.Target != 100+2*snap.ATR || res.StopLoss != 100-snap.ATR {
		t.Errorf("expected 2-ATR target and 1-ATR stop, got %.2f/%.2f", res.Target, res.StopLoss)
	}
}

func TestLargeCap_ConservativeEntry(t *testing.T) {
	snap := neutralSnapshot(100)
	snap.RSI = 55
	snap.SMA50 = 97
	snap.SMA200 = 95
	snap.MACD = 0.5
	snap.MACDSignal = 0.2
	snap.VolumeRatio = 1.3

	res := LargeCap{}.Evaluate(100, snap)
	if res.Type != model.SignalBuy {
		t.Fatalf("expected BUY, got %s", res.Type)
	}
	if res.Confidence != 0.6 {
		t.Errorf("expected conservative 0.6 confidence, got %.2f", res.Confidence)
	}

	// RSI outside the neutral band blocks entry.
	snap.RSI = 72
	res = LargeCap{}.Evaluate(100, snap)
	if res.Type != model.SignalHold {
		t.Errorf("expected HOLD at high RSI, got %s", res.Type)
	}
	if res.Confidence != 0.4 {
		t.Errorf("large-cap HOLD confidence should be 0.4, got %.2f", res.Confidence)
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		symbol string
		want   Class
	}{
		{"NIFTY50", ClassIndex},
		{"NIFTY", ClassIndex},
		{"BANKNIFTY", ClassBankIndex},
		{"banknifty", ClassBankIndex},
		{"RELIANCE", ClassLargeCap},
		{"TCS", ClassLargeCap},
		{"HDFCBANK", ClassLargeCap},
		{"INFY", ClassLargeCap},
		{"TATAMOTORS", ClassStock},
		{"", ClassStock},
	}
	for _, tt := range tests {
		if got := Classify(tt.symbol); got != tt.want {
			t.Errorf("Classify(%q) = %s, want %s", tt.symbol, got, tt.want)
		}
	}
}

func TestStrategySets(t *testing.T) {
	c := NewCombiner()
	tests := []struct {
		symbol string
		names  []string
	}{
		{"NIFTY50", []string{"NIFTY Momentum", "Mean Reversion", "Trend Following"}},
		{"BANKNIFTY", []string{"Volatility", "Stock Breakout"}},
		{"RELIANCE", []string{"Large Cap", "Stock Momentum"}},
		{"TATAMOTORS", []string{"Stock Breakout", "Volatility"}},
	}
	for _, tt := range tests {
		set := c.StrategiesFor(tt.symbol)
		if len(set) != len(tt.names) {
			t.Errorf("%s: expected %d strategies, got %d", tt.symbol, len(tt.names), len(set))
			continue
		}
		var total float64
		for i, w := range set {
			if w.Strategy.Name() != tt.names[i] {
				t.Errorf("%s[%d]: expected %q, got %q", tt.symbol, i, tt.names[i], w.Strategy.Name())
			}
			total += w.Weight
		}
		if total < 0.999 || total > 1.001 {
			t.Errorf("%s: weights should sum to 1, got %.3f", tt.symbol, total)
		}
	}
}
