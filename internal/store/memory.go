package store

import (
	"sync"
	"time"

	"github.com/nayaksatyadeep876-ai/indian-trading/internal/market"
	"github.com/nayaksatyadeep876-ai/indian-trading/internal/model"
)

// MemoryStore keeps everything in process memory. Used in dry-run mode and
// in tests.
type MemoryStore struct {
	mu         sync.Mutex
	active     map[string]model.Trade
	closed     map[int64][]model.ClosedTrade
	history    map[int64][]model.PortfolioPoint
	signals    []model.CombinedSignal
	portfolios map[int64]model.Portfolio
}

// NewMemoryStore returns an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		active:     make(map[string]model.Trade),
		closed:     make(map[int64][]model.ClosedTrade),
		history:    make(map[int64][]model.PortfolioPoint),
		portfolios: make(map[int64]model.Portfolio),
	}
}

// SetPortfolio installs a fixed snapshot for a user, overriding the derived
// one.
func (s *MemoryStore) SetPortfolio(p model.Portfolio) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.portfolios[p.UserID] = p
}

func (s *MemoryStore) Portfolio(userID int64) (model.Portfolio, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if p, ok := s.portfolios[userID]; ok {
		return p, nil
	}
	p := model.Portfolio{UserID: userID}
	if pts := s.history[userID]; len(pts) > 0 {
		p.CashBalance = pts[len(pts)-1].Value
	}
	for _, t := range s.active {
		if t.UserID != userID {
			continue
		}
		p.CashBalance -= t.Quantity * t.EntryPrice
		p.Positions = append(p.Positions, model.Position{
			Symbol:       t.Symbol,
			Quantity:     t.Quantity,
			CurrentPrice: t.EntryPrice,
			AveragePrice: t.EntryPrice,
		})
	}
	return p, nil
}

func (s *MemoryStore) ActiveTrades(userID int64) ([]model.Trade, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var trades []model.Trade
	for _, t := range s.active {
		if t.UserID == userID {
			trades = append(trades, t)
		}
	}
	return trades, nil
}

func (s *MemoryStore) ActiveTradeCount(userID int64) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for _, t := range s.active {
		if t.UserID == userID {
			n++
		}
	}
	return n, nil
}

func (s *MemoryStore) UpsertActiveTrade(t model.Trade) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.active[t.ID] = t
	return nil
}

func (s *MemoryStore) DeleteActiveTrade(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.active, id)
	return nil
}

func (s *MemoryStore) AppendClosedTrade(t model.ClosedTrade) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed[t.UserID] = append(s.closed[t.UserID], t)
	return nil
}

func (s *MemoryStore) ClosedTrades(userID int64) ([]model.ClosedTrade, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]model.ClosedTrade, len(s.closed[userID]))
	copy(out, s.closed[userID])
	return out, nil
}

func (s *MemoryStore) AppendPortfolioValue(userID int64, value float64, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.history[userID] = append(s.history[userID], model.PortfolioPoint{Value: value, Time: at})
	return nil
}

func (s *MemoryStore) PortfolioHistory(userID int64) ([]model.PortfolioPoint, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]model.PortfolioPoint, len(s.history[userID]))
	copy(out, s.history[userID])
	return out, nil
}

func (s *MemoryStore) LastPortfolioValue(userID int64) (float64, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	pts := s.history[userID]
	if len(pts) == 0 {
		return 0, false, nil
	}
	return pts[len(pts)-1].Value, true, nil
}

func (s *MemoryStore) DailyPnL(userID int64, day time.Time) (float64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	local := day.In(market.IST)
	y, m, d := local.Date()

	var pnl float64
	for _, t := range s.closed[userID] {
		ty, tm, td := t.EntryTime.In(market.IST).Date()
		if ty == y && tm == m && td == d {
			pnl += t.ProfitLoss
		}
	}
	return pnl, nil
}

func (s *MemoryStore) SaveSignal(sig model.CombinedSignal) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.signals = append(s.signals, sig)
	return nil
}

// Signals returns all recorded signals, oldest first.
func (s *MemoryStore) Signals() []model.CombinedSignal {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]model.CombinedSignal, len(s.signals))
	copy(out, s.signals)
	return out
}

func (s *MemoryStore) Close() error { return nil }
