package indicator

import (
	"math"
	"testing"
	"time"

	"github.com/nayaksatyadeep876-ai/indian-trading/internal/model"
)

func flatBars(price float64, count int) []model.OHLCV {
	bars := make([]model.OHLCV, count)
	for i := range bars {
		bars[i] = model.OHLCV{
			Time:   time.Now().AddDate(0, 0, -(count - i)),
			Open:   price,
			High:   price,
			Low:    price,
			Close:  price,
			Volume: 1_000_000,
		}
	}
	return bars
}

func TestRSI_ShortSeries(t *testing.T) {
	if got := RSI([]float64{100, 101, 102}, 14); got != 50.0 {
		t.Errorf("expected neutral RSI 50 for short series, got %.2f", got)
	}
}

func TestRSI_FlatSeries(t *testing.T) {
	closes := make([]float64, 20)
	for i := range closes {
		closes[i] = 100
	}
	if got := RSI(closes, 14); got != 50.0 {
		t.Errorf("expected RSI 50 for flat series, got %.2f", got)
	}
}

func TestRSI_AllGains(t *testing.T) {
	closes := make([]float64, 20)
	for i := range closes {
		closes[i] = 100 + float64(i)
	}
	if got := RSI(closes, 14); got != 100.0 {
		t.Errorf("expected RSI 100 for monotonic gains, got %.2f", got)
	}
}

func TestRSI_Bounded(t *testing.T) {
	closes := []float64{100, 102, 99, 103, 98, 104, 97, 105, 96, 106, 95, 107, 94, 108, 93, 109}
	got := RSI(closes, 14)
	if got < 0 || got > 100 {
		t.Errorf("RSI out of range: %.2f", got)
	}
}

func TestSMA(t *testing.T) {
	v, ok := SMA([]float64{1, 2, 3, 4, 5}, 5)
	if !ok || v != 3 {
		t.Errorf("expected SMA 3, got %.2f (ok=%v)", v, ok)
	}
	if _, ok := SMA([]float64{1, 2}, 5); ok {
		t.Error("expected SMA to fail on short series")
	}
	if got := SMAOr([]float64{1, 2}, 5, 42); got != 42 {
		t.Errorf("expected fallback 42, got %.2f", got)
	}
}

func TestBollinger_CollapsesOnShortSeries(t *testing.T) {
	upper, middle, lower := Bollinger([]float64{100, 101}, 20, 2.0)
	if upper != 101 || middle != 101 || lower != 101 {
		t.Errorf("expected collapsed bands at 101, got %.2f/%.2f/%.2f", upper, middle, lower)
	}
}

func TestBollinger_FlatSeries(t *testing.T) {
	closes := make([]float64, 25)
	for i := range closes {
		closes[i] = 100
	}
	upper, middle, lower := Bollinger(closes, 20, 2.0)
	if upper != 100 || middle != 100 || lower != 100 {
		t.Errorf("flat series should give zero-width bands, got %.2f/%.2f/%.2f", upper, middle, lower)
	}
}

func TestBollinger_WiderMultiplier(t *testing.T) {
	closes := []float64{100, 102, 98, 103, 97, 104, 96, 105, 95, 106, 94, 107, 93, 108, 92, 109, 91, 110, 90, 111}
	u2, _, l2 := Bollinger(closes, 20, 2.0)
	u22, _, l22 := Bollinger(closes, 20, 2.2)
	if u22-l22 <= u2-l2 {
		t.Errorf("2.2 sigma bands should be wider: %.2f vs %.2f", u22-l22, u2-l2)
	}
}

func TestStochastic_Defaults(t *testing.T) {
	k, d := Stochastic(nil, 14, 3)
	if k != 50 || d != 50 {
		t.Errorf("expected 50/50 defaults, got %.2f/%.2f", k, d)
	}
	k, d = Stochastic(flatBars(100, 20), 14, 3)
	if k != 50 || d != 50 {
		t.Errorf("flat range should give 50/50, got %.2f/%.2f", k, d)
	}
}

func TestStochastic_AtRangeTop(t *testing.T) {
	bars := make([]model.OHLCV, 20)
	for i := range bars {
		p := 100 + float64(i)
		bars[i] = model.OHLCV{Open: p, High: p, Low: p - 1, Close: p, Volume: 1000}
	}
	k, _ := Stochastic(bars, 14, 3)
	if k < 90 {
		t.Errorf("close at range top should give high %%K, got %.2f", k)
	}
}

func TestWilliamsR_Defaults(t *testing.T) {
	if got := WilliamsR(nil, 14); got != -50 {
		t.Errorf("expected -50 default, got %.2f", got)
	}
	if got := WilliamsR(flatBars(100, 20), 14); got != -50 {
		t.Errorf("flat range should give -50, got %.2f", got)
	}
}

func TestATR_Fallback(t *testing.T) {
	bars := flatBars(200, 5)
	if got := ATR(bars, 14); got != 200*0.02 {
		t.Errorf("expected 2%% fallback ATR 4.0, got %.2f", got)
	}
	if got := ATR(nil, 14); got != 0 {
		t.Errorf("expected 0 for empty series, got %.2f", got)
	}
}

func TestATR_FlatSeries(t *testing.T) {
	if got := ATR(flatBars(100, 30), 14); got != 0 {
		t.Errorf("flat bars have zero true range, got %.2f", got)
	}
}

func TestVolumeRatio(t *testing.T) {
	bars := flatBars(100, 25)
	bars[len(bars)-1].Volume = 2_000_000
	got := VolumeRatio(bars, 20)
	// 19 bars at 1M plus one at 2M, latest is 2M.
	want := 2_000_000.0 / ((19*1_000_000.0 + 2_000_000.0) / 20)
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("expected ratio %.4f, got %.4f", want, got)
	}
	if got := VolumeRatio(bars[:5], 20); got != 1.0 {
		t.Errorf("expected default 1.0 on short series, got %.2f", got)
	}
}

func TestPivots_ShortSeries(t *testing.T) {
	if got := PivotLows([]float64{1, 2, 3}, 5); got != nil {
		t.Errorf("expected nil for short series, got %v", got)
	}
}

func TestPivots_FindsExtrema(t *testing.T) {
	closes := make([]float64, 40)
	for i := range closes {
		closes[i] = 100 + 10*math.Sin(float64(i)/3)
	}
	lows := PivotLows(closes, 3)
	highs := PivotHighs(closes, 3)
	if len(lows) == 0 {
		t.Fatal("expected at least one support level")
	}
	if len(highs) == 0 {
		t.Fatal("expected at least one resistance level")
	}
	if len(lows) > 3 || len(highs) > 3 {
		t.Errorf("levels must be capped at 3, got %d lows and %d highs", len(lows), len(highs))
	}
	for _, l := range lows {
		for _, h := range highs {
			if l >= h {
				t.Errorf("support %.2f should sit below resistance %.2f", l, h)
			}
		}
	}
}

func TestCompute_FlatSeriesIsNeutral(t *testing.T) {
	snap := Compute(flatBars(100, 60), Options{})
	if snap.RSI != 50 {
		t.Errorf("expected RSI 50, got %.2f", snap.RSI)
	}
	if snap.SMA20 != 100 || snap.SMA50 != 100 {
		t.Errorf("flat SMAs should equal price, got %.2f/%.2f", snap.SMA20, snap.SMA50)
	}
	if snap.MACD != 0 || snap.MACDSignal != 0 {
		t.Errorf("flat MACD should be 0, got %.4f/%.4f", snap.MACD, snap.MACDSignal)
	}
	if snap.BBWidth != 0 {
		t.Errorf("flat band width should be 0, got %.4f", snap.BBWidth)
	}
	if snap.VolumeRatio != 1.0 {
		t.Errorf("constant volume ratio should be 1.0, got %.2f", snap.VolumeRatio)
	}
}

func TestCompute_EmptySeries(t *testing.T) {
	snap := Compute(nil, Options{})
	if snap.RSI != 50 {
		t.Errorf("expected RSI 50, got %.2f", snap.RSI)
	}
	if snap.StochasticK != 50 || snap.WilliamsR != -50 {
		t.Errorf("expected neutral oscillators, got K=%.2f W=%.2f", snap.StochasticK, snap.WilliamsR)
	}
	if len(snap.Support) != 0 || len(snap.Resistance) != 0 {
		t.Error("expected no levels for empty series")
	}
}
