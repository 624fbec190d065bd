package indicator

import (
	"math"

	"github.com/nayaksatyadeep876-ai/indian-trading/internal/model"
)

// Snapshot holds all technical indicators computed from one bar series.
type Snapshot struct {
	RSI         float64
	MACD        float64
	MACDSignal  float64
	BBUpper     float64
	BBMiddle    float64
	BBLower     float64
	BBWidth     float64
	SMA5        float64
	SMA10       float64
	SMA20       float64
	SMA50       float64
	SMA200      float64
	EMA12       float64
	EMA26       float64
	EMA50       float64
	StochasticK float64
	StochasticD float64
	WilliamsR   float64
	ATR         float64
	VolumeRatio float64
	Support     []float64
	Resistance  []float64
}

// Options tunes per-caller indicator parameters. Zero values select the
// defaults (2.0 Bollinger multiplier, pivot window 5).
type Options struct {
	BollingerMult float64
	PivotWindow   int
}

// Compute calculates the full indicator snapshot from chronological bars.
// Every indicator degrades to a documented neutral value when the series is
// shorter than its window; callers never see NaN.
func Compute(bars []model.OHLCV, opts Options) *Snapshot {
	mult := opts.BollingerMult
	if mult <= 0 {
		mult = 2.0
	}
	window := opts.PivotWindow
	if window <= 0 {
		window = 5
	}

	closes := extractCloses(bars)
	var last float64
	if len(closes) > 0 {
		last = closes[len(closes)-1]
	}

	snap := &Snapshot{
		RSI:         RSI(closes, 14),
		SMA5:        SMAOr(closes, 5, last),
		SMA10:       SMAOr(closes, 10, last),
		SMA20:       SMAOr(closes, 20, last),
		SMA50:       SMAOr(closes, 50, last),
		SMA200:      SMAOr(closes, 200, last),
		EMA12:       EMAOr(closes, 12, last),
		EMA26:       EMAOr(closes, 26, last),
		EMA50:       EMAOr(closes, 50, last),
		ATR:         ATR(bars, 14),
		VolumeRatio: VolumeRatio(bars, 20),
		Support:     PivotLows(closes, window),
		Resistance:  PivotHighs(closes, window),
	}

	snap.MACD, snap.MACDSignal = MACD(closes, 12, 26, 9)
	snap.BBUpper, snap.BBMiddle, snap.BBLower = Bollinger(closes, 20, mult)
	if snap.BBMiddle > 0 {
		snap.BBWidth = (snap.BBUpper - snap.BBLower) / snap.BBMiddle
	}
	snap.StochasticK, snap.StochasticD = Stochastic(bars, 14, 3)
	snap.WilliamsR = WilliamsR(bars, 14)

	return snap
}

// RSI computes the simple-average RSI over the given period. Returns 50 when
// fewer than period+1 closes are available or the series is flat; returns 100
// when there are gains and no losses.
func RSI(closes []float64, period int) float64 {
	if period <= 0 || len(closes) < period+1 {
		return 50.0
	}
	var gain, loss float64
	for i := len(closes) - period; i < len(closes); i++ {
		change := closes[i] - closes[i-1]
		if change > 0 {
			gain += change
		} else {
			loss -= change
		}
	}
	gain /= float64(period)
	loss /= float64(period)
	if loss == 0 {
		if gain == 0 {
			return 50.0
		}
		return 100.0
	}
	rs := gain / loss
	return 100.0 - 100.0/(1.0+rs)
}

// SMA computes the simple moving average of the last period values.
// Returns false when there is not enough data.
func SMA(values []float64, period int) (float64, bool) {
	if period <= 0 || len(values) < period {
		return 0, false
	}
	sum := 0.0
	for i := len(values) - period; i < len(values); i++ {
		sum += values[i]
	}
	return sum / float64(period), true
}

// SMAOr is SMA with a fallback value for short series.
func SMAOr(values []float64, period int, fallback float64) float64 {
	if v, ok := SMA(values, period); ok {
		return v
	}
	return fallback
}

// EMASeries computes the exponential moving average series, seeded from the
// first value, with alpha = 2/(span+1).
func EMASeries(values []float64, span int) []float64 {
	if len(values) == 0 || span <= 0 {
		return nil
	}
	alpha := 2.0 / (float64(span) + 1.0)
	out := make([]float64, len(values))
	out[0] = values[0]
	for i := 1; i < len(values); i++ {
		out[i] = alpha*values[i] + (1-alpha)*out[i-1]
	}
	return out
}

// EMAOr returns the latest EMA value, or the fallback for an empty series.
func EMAOr(values []float64, span int, fallback float64) float64 {
	series := EMASeries(values, span)
	if len(series) == 0 {
		return fallback
	}
	return series[len(series)-1]
}

// MACD computes the MACD line (EMA fast − EMA slow) and its signal line
// (EMA of the MACD over signalSpan). Both default to 0 on an empty series.
func MACD(closes []float64, fast, slow, signalSpan int) (macd, signal float64) {
	if len(closes) == 0 {
		return 0, 0
	}
	fastSeries := EMASeries(closes, fast)
	slowSeries := EMASeries(closes, slow)
	line := make([]float64, len(closes))
	for i := range closes {
		line[i] = fastSeries[i] - slowSeries[i]
	}
	signalSeries := EMASeries(line, signalSpan)
	return line[len(line)-1], signalSeries[len(signalSeries)-1]
}

// Bollinger computes the middle band (SMA) and upper/lower bands at
// mult standard deviations. With fewer than period closes all three bands
// collapse to the last close.
func Bollinger(closes []float64, period int, mult float64) (upper, middle, lower float64) {
	if len(closes) < period || period < 2 {
		var last float64
		if len(closes) > 0 {
			last = closes[len(closes)-1]
		}
		return last, last, last
	}
	mean, _ := SMA(closes, period)
	var sum float64
	for i := len(closes) - period; i < len(closes); i++ {
		d := closes[i] - mean
		sum += d * d
	}
	std := math.Sqrt(sum / float64(period-1))
	return mean + mult*std, mean, mean - mult*std
}

// Stochastic computes %K from the period high/low range and %D as a dSpan
// SMA of %K. Both default to 50 on insufficient history or a flat range.
func Stochastic(bars []model.OHLCV, period, dSpan int) (k, d float64) {
	ks := stochasticKSeries(bars, period)
	if len(ks) == 0 {
		return 50.0, 50.0
	}
	k = ks[len(ks)-1]
	d = SMAOr(ks, dSpan, k)
	return k, d
}

func stochasticKSeries(bars []model.OHLCV, period int) []float64 {
	if len(bars) < period || period <= 0 {
		return nil
	}
	out := make([]float64, 0, len(bars)-period+1)
	for i := period - 1; i < len(bars); i++ {
		hh := math.Inf(-1)
		ll := math.Inf(1)
		for j := i - period + 1; j <= i; j++ {
			if bars[j].High > hh {
				hh = bars[j].High
			}
			if bars[j].Low < ll {
				ll = bars[j].Low
			}
		}
		if hh == ll {
			out = append(out, 50.0)
			continue
		}
		out = append(out, 100.0*(bars[i].Close-ll)/(hh-ll))
	}
	return out
}

// WilliamsR computes Williams %R over the period. Defaults to -50 on
// insufficient history or a flat range.
func WilliamsR(bars []model.OHLCV, period int) float64 {
	if len(bars) < period || period <= 0 {
		return -50.0
	}
	hh := math.Inf(-1)
	ll := math.Inf(1)
	for i := len(bars) - period; i < len(bars); i++ {
		if bars[i].High > hh {
			hh = bars[i].High
		}
		if bars[i].Low < ll {
			ll = bars[i].Low
		}
	}
	if hh == ll {
		return -50.0
	}
	last := bars[len(bars)-1].Close
	return -100.0 * (hh - last) / (hh - ll)
}

// ATR computes the rolling mean of the true range over the period.
// With insufficient history it falls back to 2% of the last close, a neutral
// stand-in that keeps ATR-derived stops meaningful.
func ATR(bars []model.OHLCV, period int) float64 {
	if len(bars) < period+1 || period <= 0 {
		if len(bars) > 0 {
			return bars[len(bars)-1].Close * 0.02
		}
		return 0
	}
	var sum float64
	for i := len(bars) - period; i < len(bars); i++ {
		tr := bars[i].High - bars[i].Low
		prevClose := bars[i-1].Close
		if v := math.Abs(bars[i].High - prevClose); v > tr {
			tr = v
		}
		if v := math.Abs(bars[i].Low - prevClose); v > tr {
			tr = v
		}
		sum += tr
	}
	return sum / float64(period)
}

// VolumeRatio compares the latest bar's volume to its rolling mean.
// Defaults to 1.0 on insufficient history or zero average volume.
func VolumeRatio(bars []model.OHLCV, period int) float64 {
	if len(bars) < period || period <= 0 {
		return 1.0
	}
	var sum float64
	for i := len(bars) - period; i < len(bars); i++ {
		sum += float64(bars[i].Volume)
	}
	avg := sum / float64(period)
	if avg <= 0 {
		return 1.0
	}
	return float64(bars[len(bars)-1].Volume) / avg
}

func extractCloses(bars []model.OHLCV) []float64 {
	closes := make([]float64, len(bars))
	for i, b := range bars {
		closes[i] = b.Close
	}
	return closes
}
