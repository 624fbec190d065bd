package ledger

import (
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/nayaksatyadeep876-ai/indian-trading/internal/market"
	"github.com/nayaksatyadeep876-ai/indian-trading/internal/model"
)

// ErrDuplicatePosition is returned when a symbol already has an active trade
// for the same user.
var ErrDuplicatePosition = errors.New("symbol already has an active trade")

// Store is the subset of persistence the ledger needs.
type Store interface {
	ActiveTrades(userID int64) ([]model.Trade, error)
	UpsertActiveTrade(trade model.Trade) error
	DeleteActiveTrade(id string) error
	AppendClosedTrade(trade model.ClosedTrade) error
	AppendPortfolioValue(userID int64, value float64, at time.Time) error
	LastPortfolioValue(userID int64) (float64, bool, error)
}

// Ledger owns the set of active trades: it opens them, monitors exits in
// priority order, trails stops and records closes.
type Ledger struct {
	mu             sync.Mutex
	store          Store
	trades         map[string]*model.Trade // id -> trade
	bySymbol       map[string]string       // symbol|user -> id
	maxHold        time.Duration
	initialBalance float64
	now            func() time.Time
}

// New creates a Ledger over the given store. initialBalance seeds the
// portfolio value series when there is no history yet.
func New(store Store, maxHold time.Duration, initialBalance float64) *Ledger {
	if maxHold <= 0 {
		maxHold = 6 * time.Hour
	}
	return &Ledger{
		store:          store,
		trades:         make(map[string]*model.Trade),
		bySymbol:       make(map[string]string),
		maxHold:        maxHold,
		initialBalance: initialBalance,
		now:            time.Now,
	}
}

// SetClock overrides the time source. Tests use this to pin entry times and
// exit-priority decisions.
func (l *Ledger) SetClock(now func() time.Time) {
	l.now = now
}

func positionKey(symbol string, userID int64) string {
	return fmt.Sprintf("%s|%d", symbol, userID)
}

// Restore reloads active trades from the store after a restart.
func (l *Ledger) Restore(userID int64) error {
	trades, err := l.store.ActiveTrades(userID)
	if err != nil {
		return fmt.Errorf("restore active trades: %w", err)
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	for i := range trades {
		t := trades[i]
		l.trades[t.ID] = &t
		l.bySymbol[positionKey(t.Symbol, t.UserID)] = t.ID
	}
	if len(trades) > 0 {
		log.Printf("[INFO] restored %d active trades for user %d", len(trades), userID)
	}
	return nil
}

// Open records a new active trade from a combined signal and the sized
// quantity. At most one active trade per (symbol, user) is allowed.
func (l *Ledger) Open(userID int64, sig model.CombinedSignal, quantity float64) (model.Trade, error) {
	if sig.Type != model.SignalBuy && sig.Type != model.SignalSell {
		return model.Trade{}, fmt.Errorf("cannot open trade for %s signal", sig.Type)
	}
	if quantity <= 0 {
		return model.Trade{}, fmt.Errorf("quantity must be positive, got %f", quantity)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	key := positionKey(sig.Symbol, userID)
	if _, exists := l.bySymbol[key]; exists {
		return model.Trade{}, ErrDuplicatePosition
	}

	trade := model.Trade{
		ID:          uuid.NewString(),
		UserID:      userID,
		Symbol:      sig.Symbol,
		Direction:   sig.Type,
		EntryPrice:  sig.EntryPrice,
		TargetPrice: sig.TargetPrice,
		StopLoss:    sig.StopLoss,
		Quantity:    quantity,
		Strategy:    sig.Strategy,
		Confidence:  sig.Confidence,
		EntryTime:   l.now(),
		Status:      model.TradeActive,
	}
	if err := l.store.UpsertActiveTrade(trade); err != nil {
		return model.Trade{}, fmt.Errorf("persist trade: %w", err)
	}

	l.trades[trade.ID] = &trade
	l.bySymbol[key] = trade.ID
	log.Printf("[INFO] opened %s %s qty %.2f @ %.2f (target %.2f, stop %.2f)",
		trade.Direction, trade.Symbol, trade.Quantity, trade.EntryPrice,
		trade.TargetPrice, trade.StopLoss)
	return trade, nil
}

// MonitorTick walks every active trade for the user, closing any whose exit
// condition fires and trailing the stop of those still open. quoteFn supplies
// the current price per symbol; a quote error skips that trade for this tick.
// Exit priority: market-close guard, max hold duration, stop loss, target.
func (l *Ledger) MonitorTick(userID int64, quoteFn func(symbol string) (float64, error)) ([]model.ClosedTrade, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	var closed []model.ClosedTrade

	for id, trade := range l.trades {
		if trade.UserID != userID {
			continue
		}
		price, err := quoteFn(trade.Symbol)
		if err != nil {
			log.Printf("[WARN] quote %s failed, skipping monitor: %v", trade.Symbol, err)
			continue
		}
		if price <= 0 {
			continue
		}

		if reason, hit := exitReason(trade, price, now, l.maxHold); hit {
			ct, err := l.close(id, price, now, reason)
			if err != nil {
				return closed, err
			}
			closed = append(closed, ct)
			continue
		}

		l.trailStop(trade, price)
	}
	return closed, nil
}

func exitReason(t *model.Trade, price float64, now time.Time, maxHold time.Duration) (model.CloseReason, bool) {
	if market.InCloseGuard(now) {
		return model.ReasonMarketClose, true
	}
	if now.Sub(t.EntryTime) >= maxHold {
		return model.ReasonMaxDuration, true
	}
	if t.Direction == model.SignalBuy {
		if price <= t.StopLoss {
			return model.ReasonStopLoss, true
		}
		if price >= t.TargetPrice {
			return model.ReasonTarget, true
		}
	} else {
		if price >= t.StopLoss {
			return model.ReasonStopLoss, true
		}
		if price <= t.TargetPrice {
			return model.ReasonTarget, true
		}
	}
	return "", false
}

// trailStop moves the stop in the trade's favor once price has advanced past
// entry, keeping the original entry-to-stop distance. The stop never loosens.
func (l *Ledger) trailStop(t *model.Trade, price float64) {
	var newStop float64
	switch t.Direction {
	case model.SignalBuy:
		if price <= t.EntryPrice {
			return
		}
		newStop = price - (t.EntryPrice - t.StopLoss)
		if newStop <= t.StopLoss {
			return
		}
	case model.SignalSell:
		if price >= t.EntryPrice {
			return
		}
		newStop = price + (t.StopLoss - t.EntryPrice)
		if newStop >= t.StopLoss {
			return
		}
	default:
		return
	}

	t.StopLoss = newStop
	if err := l.store.UpsertActiveTrade(*t); err != nil {
		log.Printf("[WARN] persist trailed stop for %s: %v", t.Symbol, err)
	}
}

// close finalizes a trade at the given price. Caller holds the mutex.
func (l *Ledger) close(id string, price float64, at time.Time, reason model.CloseReason) (model.ClosedTrade, error) {
	trade := l.trades[id]

	pnl := (price - trade.EntryPrice) * trade.Quantity
	if trade.Direction == model.SignalSell {
		pnl = (trade.EntryPrice - price) * trade.Quantity
	}

	ct := model.ClosedTrade{
		Trade:      *trade,
		ExitPrice:  price,
		ExitTime:   at,
		ProfitLoss: pnl,
		Reason:     reason,
	}
	ct.Status = model.TradeClosed

	if err := l.store.AppendClosedTrade(ct); err != nil {
		return model.ClosedTrade{}, fmt.Errorf("record closed trade: %w", err)
	}
	if err := l.store.DeleteActiveTrade(id); err != nil {
		return model.ClosedTrade{}, fmt.Errorf("remove active trade: %w", err)
	}

	last, ok, err := l.store.LastPortfolioValue(trade.UserID)
	if err != nil {
		return model.ClosedTrade{}, fmt.Errorf("read portfolio value: %w", err)
	}
	if !ok {
		last = l.initialBalance
	}
	if err := l.store.AppendPortfolioValue(trade.UserID, last+pnl, at); err != nil {
		return model.ClosedTrade{}, fmt.Errorf("append portfolio value: %w", err)
	}

	delete(l.trades, id)
	delete(l.bySymbol, positionKey(trade.Symbol, trade.UserID))
	log.Printf("[INFO] closed %s %s @ %.2f (%s), P&L %.2f",
		trade.Direction, trade.Symbol, price, reason, pnl)
	return ct, nil
}

// ActiveTrades returns a snapshot of the user's open trades.
func (l *Ledger) ActiveTrades(userID int64) []model.Trade {
	l.mu.Lock()
	defer l.mu.Unlock()

	var out []model.Trade
	for _, t := range l.trades {
		if t.UserID == userID {
			out = append(out, *t)
		}
	}
	return out
}

// ActiveCount returns the number of open trades for the user.
func (l *Ledger) ActiveCount(userID int64) int {
	l.mu.Lock()
	defer l.mu.Unlock()

	n := 0
	for _, t := range l.trades {
		if t.UserID == userID {
			n++
		}
	}
	return n
}
