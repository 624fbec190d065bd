package store

import (
	"time"

	"github.com/nayaksatyadeep876-ai/indian-trading/internal/model"
)

// Store persists trades, portfolio history and generated signals.
// Implementations must be safe for concurrent use.
type Store interface {
	// Portfolio returns the current snapshot for a user. A user with no
	// recorded history gets an empty portfolio with zero cash.
	Portfolio(userID int64) (model.Portfolio, error)

	ActiveTrades(userID int64) ([]model.Trade, error)
	ActiveTradeCount(userID int64) (int, error)
	UpsertActiveTrade(trade model.Trade) error
	DeleteActiveTrade(id string) error

	AppendClosedTrade(trade model.ClosedTrade) error
	ClosedTrades(userID int64) ([]model.ClosedTrade, error)

	AppendPortfolioValue(userID int64, value float64, at time.Time) error
	PortfolioHistory(userID int64) ([]model.PortfolioPoint, error)
	LastPortfolioValue(userID int64) (float64, bool, error)

	// DailyPnL sums the realized P&L of closed trades entered on the
	// given calendar day (IST).
	DailyPnL(userID int64, day time.Time) (float64, error)

	SaveSignal(sig model.CombinedSignal) error

	Close() error
}
