package model

import "time"

// TradeStatus is the lifecycle state of a trade.
type TradeStatus string

const (
	TradeActive TradeStatus = "ACTIVE"
	TradeClosed TradeStatus = "CLOSED"
)

// CloseReason records why an active trade was closed.
type CloseReason string

const (
	ReasonStopLoss    CloseReason = "Stop Loss Hit"
	ReasonTarget      CloseReason = "Target Reached"
	ReasonMaxDuration CloseReason = "Max Duration Exit"
	ReasonMarketClose CloseReason = "Market Close Exit"
)

// Trade is an open logical position owned by the ledger.
type Trade struct {
	ID          string
	UserID      int64
	Symbol      string
	Direction   SignalType
	EntryPrice  float64
	TargetPrice float64
	StopLoss    float64
	Quantity    float64
	Strategy    string
	Confidence  float64
	EntryTime   time.Time
	Status      TradeStatus
}

// ClosedTrade is the append-only record produced when a trade exits.
type ClosedTrade struct {
	Trade
	ExitPrice  float64
	ExitTime   time.Time
	ProfitLoss float64
	Reason     CloseReason
}

// Position is a holding inside a portfolio snapshot.
type Position struct {
	Symbol       string
	Quantity     float64
	CurrentPrice float64
	AveragePrice float64
}

// Portfolio is a read-only snapshot of a user's cash and holdings.
type Portfolio struct {
	UserID      int64
	CashBalance float64
	Positions   []Position
}

// Value returns cash plus the marked-to-market value of all positions.
func (p Portfolio) Value() float64 {
	v := p.CashBalance
	for _, pos := range p.Positions {
		v += pos.Quantity * pos.CurrentPrice
	}
	return v
}

// PortfolioPoint is one sample of the portfolio-value time series.
type PortfolioPoint struct {
	Value float64
	Time  time.Time
}
