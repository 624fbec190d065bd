package engine

import (
	"fmt"
	"log"
	"math"
	"time"

	"github.com/nayaksatyadeep876-ai/indian-trading/internal/indicator"
	"github.com/nayaksatyadeep876-ai/indian-trading/internal/ledger"
	"github.com/nayaksatyadeep876-ai/indian-trading/internal/market"
	"github.com/nayaksatyadeep876-ai/indian-trading/internal/model"
	"github.com/nayaksatyadeep876-ai/indian-trading/internal/risk"
	"github.com/nayaksatyadeep876-ai/indian-trading/internal/strategy"
)

// SignalStore is the slice of persistence the engine writes to directly.
type SignalStore interface {
	Portfolio(userID int64) (model.Portfolio, error)
	ClosedTrades(userID int64) ([]model.ClosedTrade, error)
	SaveSignal(sig model.CombinedSignal) error
}

// Engine drives one evaluation cycle: fetch data, run the symbol's strategy
// set, combine votes, size the position and hand accepted trades to the
// ledger.
type Engine struct {
	provider market.Provider
	store    SignalStore
	combiner *strategy.Combiner
	sizer    *risk.Sizer
	ledger   *ledger.Ledger

	riskPerTrade  float64
	minConfidence float64
	barPeriod     string
	barInterval   string
	now           func() time.Time
}

// Params configures an Engine.
type Params struct {
	RiskPerTrade  float64
	MinConfidence float64
	BarPeriod     string
	BarInterval   string
}

// New creates an Engine. Zero Params fields fall back to 1% risk per trade,
// 0.6 minimum confidence and 60-day daily bars.
func New(provider market.Provider, store SignalStore, sizer *risk.Sizer, lg *ledger.Ledger, p Params) *Engine {
	if p.RiskPerTrade <= 0 {
		p.RiskPerTrade = 0.01
	}
	if p.MinConfidence <= 0 {
		p.MinConfidence = 0.6
	}
	if p.BarPeriod == "" {
		p.BarPeriod = "60d"
	}
	if p.BarInterval == "" {
		p.BarInterval = "1d"
	}
	return &Engine{
		provider:      provider,
		store:         store,
		combiner:      strategy.NewCombiner(),
		sizer:         sizer,
		ledger:        lg,
		riskPerTrade:  p.RiskPerTrade,
		minConfidence: p.MinConfidence,
		barPeriod:     p.BarPeriod,
		barInterval:   p.BarInterval,
		now:           time.Now,
	}
}

// Evaluate produces and persists the combined signal for one symbol.
// Missing or empty history yields a neutral HOLD rather than an error, so a
// flaky data source degrades one cycle instead of failing the scan.
func (e *Engine) Evaluate(symbol string) (model.CombinedSignal, error) {
	bars, err := e.provider.Bars(symbol, e.barPeriod, e.barInterval)
	if err != nil {
		log.Printf("[WARN] bars %s unavailable: %v", symbol, err)
		return e.neutral(symbol), nil
	}
	if len(bars) == 0 {
		return e.neutral(symbol), nil
	}
	price := bars[len(bars)-1].Close
	if q, err := e.provider.Quote(symbol); err == nil && q.LTP > 0 {
		price = q.LTP
	}

	snap := indicator.Compute(bars, indicatorOptions(symbol))
	result := e.combiner.Evaluate(symbol, price, func(w strategy.Weighted) strategy.Vote {
		return strategy.Vote{
			Result: w.Strategy.Evaluate(price, snap),
			Weight: w.Weight,
		}
	})

	sig := model.CombinedSignal{
		Symbol:         symbol,
		Type:           result.Type,
		Confidence:     result.Confidence,
		EntryPrice:     price,
		TargetPrice:    result.Target,
		StopLoss:       result.StopLoss,
		Strategy:       result.Strategy,
		RiskReward:     strategy.RiskReward(result, price),
		Sentiment:      sentiment(bars),
		VolumeAnalysis: volumeLevel(bars),
		Volatility:     returnVolatility(bars),
		Time:           e.now(),
	}

	if err := e.store.SaveSignal(sig); err != nil {
		log.Printf("[WARN] save signal %s: %v", symbol, err)
	}
	return sig, nil
}

// indicatorOptions widens Bollinger bands for the bank index and the pivot
// window for indices, per their volatility profiles.
func indicatorOptions(symbol string) indicator.Options {
	var opts indicator.Options
	switch strategy.Classify(symbol) {
	case strategy.ClassBankIndex:
		opts.BollingerMult = 2.2
		opts.PivotWindow = 10
	case strategy.ClassIndex:
		opts.PivotWindow = 10
	}
	return opts
}

func (e *Engine) neutral(symbol string) model.CombinedSignal {
	return model.CombinedSignal{
		Symbol:         symbol,
		Type:           model.SignalHold,
		Confidence:     0,
		Strategy:       "Multi-Strategy",
		Sentiment:      model.SentimentNeutral,
		VolumeAnalysis: model.VolumeNormal,
		Time:           e.now(),
	}
}

// SizeAndOpen turns an actionable signal into an open trade: it enforces the
// confidence floor, sizes the position against one portfolio snapshot and
// runs the pre-trade limit checks before handing the trade to the ledger.
// A *risk.Rejection means no trade this cycle, not a failure.
func (e *Engine) SizeAndOpen(userID int64, sig model.CombinedSignal) (model.Trade, error) {
	if sig.Type == model.SignalHold {
		return model.Trade{}, fmt.Errorf("HOLD signal for %s is not tradeable", sig.Symbol)
	}
	if sig.Confidence < e.minConfidence {
		return model.Trade{}, &risk.Rejection{
			Check:  "confidence",
			Detail: fmt.Sprintf("confidence %.2f below floor %.2f", sig.Confidence, e.minConfidence),
		}
	}

	quote, err := e.provider.Quote(sig.Symbol)
	if err != nil {
		return model.Trade{}, fmt.Errorf("quote %s: %w", sig.Symbol, err)
	}
	portfolio, err := e.store.Portfolio(userID)
	if err != nil {
		return model.Trade{}, fmt.Errorf("portfolio %d: %w", userID, err)
	}

	quantity, err := e.sizer.PositionSize(portfolio, quote, e.riskPerTrade)
	if err != nil {
		return model.Trade{}, err
	}
	if err := e.sizer.CheckLimits(portfolio, sig.Symbol, quantity, quote.LTP); err != nil {
		return model.Trade{}, err
	}

	return e.ledger.Open(userID, sig, quantity)
}

// MonitorTick checks exits and trails stops across the user's open trades.
func (e *Engine) MonitorTick(userID int64) ([]model.ClosedTrade, error) {
	return e.ledger.MonitorTick(userID, func(symbol string) (float64, error) {
		q, err := e.provider.Quote(symbol)
		if err != nil {
			return 0, err
		}
		return q.LTP, nil
	})
}

// ActiveTrades exposes the ledger's open positions.
func (e *Engine) ActiveTrades(userID int64) []model.Trade {
	return e.ledger.ActiveTrades(userID)
}

// Summary aggregates closed-trade performance for a user.
type Summary struct {
	TotalTrades int
	Wins        int
	WinRate     float64
	TotalPnL    float64
}

// PerformanceSummary computes win rate and cumulative P&L over trade history.
func (e *Engine) PerformanceSummary(userID int64) (Summary, error) {
	trades, err := e.store.ClosedTrades(userID)
	if err != nil {
		return Summary{}, fmt.Errorf("trade history: %w", err)
	}
	s := Summary{TotalTrades: len(trades)}
	for _, t := range trades {
		s.TotalPnL += t.ProfitLoss
		if t.ProfitLoss > 0 {
			s.Wins++
		}
	}
	if s.TotalTrades > 0 {
		s.WinRate = float64(s.Wins) / float64(s.TotalTrades)
	}
	return s, nil
}

// sentiment classifies the last five bars' move: beyond ±2% is directional.
func sentiment(bars []model.OHLCV) model.Sentiment {
	if len(bars) < 5 {
		return model.SentimentNeutral
	}
	first := bars[len(bars)-5].Close
	last := bars[len(bars)-1].Close
	if first <= 0 {
		return model.SentimentNeutral
	}
	change := (last - first) / first
	switch {
	case change > 0.02:
		return model.SentimentBullish
	case change < -0.02:
		return model.SentimentBearish
	default:
		return model.SentimentNeutral
	}
}

// volumeLevel compares the 5-bar average volume against the 20-bar average.
func volumeLevel(bars []model.OHLCV) model.VolumeLevel {
	if len(bars) < 20 {
		return model.VolumeNormal
	}
	var recent, base float64
	for _, b := range bars[len(bars)-5:] {
		recent += float64(b.Volume)
	}
	recent /= 5
	for _, b := range bars[len(bars)-20:] {
		base += float64(b.Volume)
	}
	base /= 20
	if base <= 0 {
		return model.VolumeNormal
	}
	switch {
	case recent > base*1.5:
		return model.VolumeHigh
	case recent < base*0.5:
		return model.VolumeLow
	default:
		return model.VolumeNormal
	}
}

// returnVolatility is the standard deviation of daily returns over the last
// 20 bars, 0 when history is too short.
func returnVolatility(bars []model.OHLCV) float64 {
	if len(bars) < 20 {
		return 0
	}
	window := bars[len(bars)-20:]
	returns := make([]float64, 0, len(window)-1)
	for i := 1; i < len(window); i++ {
		prev := window[i-1].Close
		if prev <= 0 {
			continue
		}
		returns = append(returns, (window[i].Close-prev)/prev)
	}
	if len(returns) < 2 {
		return 0
	}
	var mean float64
	for _, r := range returns {
		mean += r
	}
	mean /= float64(len(returns))
	var variance float64
	for _, r := range returns {
		variance += (r - mean) * (r - mean)
	}
	variance /= float64(len(returns) - 1)
	return math.Sqrt(variance)
}
