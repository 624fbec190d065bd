package risk

import (
	"fmt"
	"math"
	"time"

	"github.com/nayaksatyadeep876-ai/indian-trading/internal/model"
)

// Limits are the portfolio-level risk constraints.
type Limits struct {
	MaxPositionSize      float64 // fraction of portfolio value per position
	MaxDailyLoss         float64 // fraction of portfolio value
	MaxDrawdown          float64 // peak-to-current fraction
	MaxConcurrentTrades  int
	SectorExposureLimit  float64 // fraction of portfolio value per sector
	CorrelationThreshold float64
	MinPositionFraction  float64 // sizing clamp floor
	MaxPositionFraction  float64 // sizing clamp ceiling
}

// DefaultLimits returns the standard limit set.
func DefaultLimits() Limits {
	return Limits{
		MaxPositionSize:      0.02,
		MaxDailyLoss:         0.05,
		MaxDrawdown:          0.15,
		MaxConcurrentTrades:  5,
		SectorExposureLimit:  0.30,
		CorrelationThreshold: 0.7,
		MinPositionFraction:  0.005,
		MaxPositionFraction:  0.05,
	}
}

// Rejection is a structured risk-limit failure. Callers treat it as
// "no trade this cycle", not as an application error.
type Rejection struct {
	Check  string
	Detail string
}

func (r *Rejection) Error() string {
	return fmt.Sprintf("risk limit %s: %s", r.Check, r.Detail)
}

// Rejection check names, one per limit.
const (
	CheckPositionSize   = "position-size"
	CheckConcurrent     = "concurrent-trades"
	CheckDailyLoss      = "daily-loss"
	CheckDrawdown       = "drawdown"
	CheckSectorExposure = "sector-exposure"
	CheckCorrelation    = "correlation"
)

// ErrInvalidConfig marks a sizing call that must not proceed at all
// (non-positive risk fraction, empty portfolio, bad price).
type ErrInvalidConfig struct{ Reason string }

func (e *ErrInvalidConfig) Error() string { return "invalid sizing input: " + e.Reason }

// PortfolioReader supplies the history-derived inputs for limit checks.
type PortfolioReader interface {
	DailyPnL(userID int64, day time.Time) (float64, error)
	PortfolioHistory(userID int64) ([]model.PortfolioPoint, error)
	ActiveTradeCount(userID int64) (int, error)
}

// Sizer checks risk limits and computes bounded position sizes.
type Sizer struct {
	limits Limits
	reader PortfolioReader
	now    func() time.Time
}

// NewSizer creates a Sizer over the given portfolio reader.
func NewSizer(limits Limits, reader PortfolioReader) *Sizer {
	return &Sizer{limits: limits, reader: reader, now: time.Now}
}

// Limits returns the configured limit set.
func (s *Sizer) Limits() Limits { return s.limits }

// CheckLimits runs the six pre-trade checks in order and returns the first
// failing one as a *Rejection.
func (s *Sizer) CheckLimits(portfolio model.Portfolio, symbol string, quantity, price float64) error {
	value := portfolio.Value()
	if value <= 0 {
		return &ErrInvalidConfig{Reason: "portfolio value is not positive"}
	}

	if quantity*price > value*s.limits.MaxPositionSize {
		return &Rejection{
			Check:  CheckPositionSize,
			Detail: fmt.Sprintf("position value %.2f exceeds %.0f%% of portfolio", quantity*price, s.limits.MaxPositionSize*100),
		}
	}

	active, err := s.reader.ActiveTradeCount(portfolio.UserID)
	if err != nil {
		return fmt.Errorf("count active trades: %w", err)
	}
	if active >= s.limits.MaxConcurrentTrades {
		return &Rejection{
			Check:  CheckConcurrent,
			Detail: fmt.Sprintf("limit of %d concurrent trades reached", s.limits.MaxConcurrentTrades),
		}
	}

	dailyPnL, err := s.reader.DailyPnL(portfolio.UserID, s.now())
	if err != nil {
		return fmt.Errorf("daily pnl: %w", err)
	}
	if dailyPnL < -value*s.limits.MaxDailyLoss {
		return &Rejection{
			Check:  CheckDailyLoss,
			Detail: fmt.Sprintf("daily loss limit of %.0f%% reached", s.limits.MaxDailyLoss*100),
		}
	}

	drawdown, err := s.Drawdown(portfolio.UserID)
	if err != nil {
		return fmt.Errorf("drawdown: %w", err)
	}
	if drawdown > s.limits.MaxDrawdown {
		return &Rejection{
			Check:  CheckDrawdown,
			Detail: fmt.Sprintf("drawdown %.1f%% exceeds %.0f%%", drawdown*100, s.limits.MaxDrawdown*100),
		}
	}

	if exposure := sectorExposure(portfolio, symbol); exposure > s.limits.SectorExposureLimit {
		return &Rejection{
			Check:  CheckSectorExposure,
			Detail: fmt.Sprintf("%s exposure %.1f%% exceeds %.0f%%", SectorOf(symbol), exposure*100, s.limits.SectorExposureLimit*100),
		}
	}

	if s.correlated(symbol, portfolio.Positions) {
		return &Rejection{
			Check:  CheckCorrelation,
			Detail: "high correlation with an existing position",
		}
	}

	return nil
}

// PositionSize computes the risk-adjusted quantity for a new position.
// The result is clamped to [MinPositionFraction, MaxPositionFraction] of the
// portfolio value divided by price, and is monotonically non-decreasing in
// riskPerTrade for fixed market inputs.
func (s *Sizer) PositionSize(portfolio model.Portfolio, quote model.Quote, riskPerTrade float64) (float64, error) {
	value := portfolio.Value()
	switch {
	case riskPerTrade <= 0:
		return 0, &ErrInvalidConfig{Reason: "risk per trade must be positive"}
	case value <= 0:
		return 0, &ErrInvalidConfig{Reason: "portfolio value is not positive"}
	case quote.LTP <= 0:
		return 0, &ErrInvalidConfig{Reason: "quote price is not positive"}
	}

	baseRisk := value * riskPerTrade
	volatility := intradayVolatility(quote)

	penalty := 1.0
	if s.correlated(quote.Symbol, portfolio.Positions) {
		penalty = 0.5
	}

	adjusted := baseRisk *
		volatilityAdjustment(volatility) *
		volumeAdjustment(quote.Volume) *
		trendAdjustment(quote.PercentChange) *
		penalty

	quantity := adjusted / quote.LTP
	minQty := value * s.limits.MinPositionFraction / quote.LTP
	maxQty := value * s.limits.MaxPositionFraction / quote.LTP
	return math.Max(minQty, math.Min(maxQty, quantity)), nil
}

// intradayVolatility uses the day's range as a volatility proxy, capped
// at 10%.
func intradayVolatility(q model.Quote) float64 {
	if q.LTP <= 0 {
		return 0.02
	}
	return math.Min((q.High-q.Low)/q.LTP, 0.10)
}

// Stepped band tables. The thresholds are fixed; no model justifies
// smoothing them, so they stay literal.

func volatilityAdjustment(volatility float64) float64 {
	switch {
	case volatility < 0.01:
		return 1.5
	case volatility < 0.02:
		return 1.2
	case volatility < 0.03:
		return 1.0
	case volatility < 0.05:
		return 0.8
	default:
		return 0.5
	}
}

func volumeAdjustment(volume int64) float64 {
	switch {
	case volume <= 0:
		return 1.0
	case volume > 5_000_000:
		return 1.3
	case volume > 2_000_000:
		return 1.1
	case volume > 1_000_000:
		return 1.0
	case volume > 500_000:
		return 0.9
	default:
		return 0.7
	}
}

func trendAdjustment(percentChange float64) float64 {
	change := math.Abs(percentChange)
	switch {
	case change > 3:
		return 1.2
	case change > 2:
		return 1.1
	case change > 1:
		return 1.0
	default:
		return 0.9
	}
}

// Drawdown returns the peak-to-current decline of the portfolio value
// series, 0 with no history.
func (s *Sizer) Drawdown(userID int64) (float64, error) {
	history, err := s.reader.PortfolioHistory(userID)
	if err != nil {
		return 0, err
	}
	if len(history) == 0 {
		return 0, nil
	}
	peak := history[0].Value
	for _, p := range history {
		if p.Value > peak {
			peak = p.Value
		}
	}
	current := history[len(history)-1].Value
	if peak <= 0 {
		return 0, nil
	}
	return (peak - current) / peak, nil
}

func (s *Sizer) correlated(symbol string, positions []model.Position) bool {
	for _, pos := range positions {
		if pos.Quantity <= 0 {
			continue
		}
		if Correlation(symbol, pos.Symbol) > s.limits.CorrelationThreshold {
			return true
		}
	}
	return false
}

func sectorExposure(portfolio model.Portfolio, symbol string) float64 {
	value := portfolio.Value()
	if value <= 0 {
		return 0
	}
	sector := SectorOf(symbol)
	var exposure float64
	for _, pos := range portfolio.Positions {
		if pos.Quantity > 0 && SectorOf(pos.Symbol) == sector {
			exposure += pos.Quantity * pos.CurrentPrice
		}
	}
	return exposure / value
}
