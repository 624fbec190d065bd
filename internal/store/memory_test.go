package store

import (
	"testing"
	"time"

	"github.com/nayaksatyadeep876-ai/indian-trading/internal/market"
	"github.com/nayaksatyadeep876-ai/indian-trading/internal/model"
)

func TestMemoryStore_ActiveTradeLifecycle(t *testing.T) {
	s := NewMemoryStore()

	trade := model.Trade{
		ID: "t1", UserID: 1, Symbol: "RELIANCE", Direction: model.SignalBuy,
		EntryPrice: 100, TargetPrice: 103, StopLoss: 98, Quantity: 10,
		EntryTime: time.Now(), Status: model.TradeActive,
	}
	if err := s.UpsertActiveTrade(trade); err != nil {
		t.Fatal(err)
	}
	n, err := s.ActiveTradeCount(1)
	if err != nil || n != 1 {
		t.Fatalf("expected 1 active trade, got %d (%v)", n, err)
	}

	// Upsert with the same id updates in place.
	trade.StopLoss = 99
	if err := s.UpsertActiveTrade(trade); err != nil {
		t.Fatal(err)
	}
	trades, err := s.ActiveTrades(1)
	if err != nil || len(trades) != 1 {
		t.Fatalf("expected 1 trade, got %d (%v)", len(trades), err)
	}
	if trades[0].StopLoss != 99 {
		t.Errorf("upsert should update the stop, got %.2f", trades[0].StopLoss)
	}

	if err := s.DeleteActiveTrade("t1"); err != nil {
		t.Fatal(err)
	}
	if n, _ := s.ActiveTradeCount(1); n != 0 {
		t.Errorf("expected 0 after delete, got %d", n)
	}
}

func TestMemoryStore_PortfolioHistory(t *testing.T) {
	s := NewMemoryStore()

	if _, ok, err := s.LastPortfolioValue(1); err != nil || ok {
		t.Fatalf("expected no value yet, got ok=%v err=%v", ok, err)
	}
	now := time.Now()
	for i, v := range []float64{100000, 101000, 99500} {
		if err := s.AppendPortfolioValue(1, v, now.Add(time.Duration(i)*time.Hour)); err != nil {
			t.Fatal(err)
		}
	}
	last, ok, err := s.LastPortfolioValue(1)
	if err != nil || !ok || last != 99500 {
		t.Errorf("expected last value 99500, got %.2f (ok=%v err=%v)", last, ok, err)
	}
	points, err := s.PortfolioHistory(1)
	if err != nil || len(points) != 3 {
		t.Fatalf("expected 3 points, got %d (%v)", len(points), err)
	}
	if points[0].Value != 100000 {
		t.Errorf("history must keep insertion order, got %.2f first", points[0].Value)
	}
}

func TestMemoryStore_DailyPnLBucketsByEntryDay(t *testing.T) {
	s := NewMemoryStore()

	today := time.Date(2026, 1, 5, 10, 0, 0, 0, market.IST)
	yesterday := today.AddDate(0, 0, -1)

	mk := func(id string, entry time.Time, pnl float64) model.ClosedTrade {
		return model.ClosedTrade{
			Trade:      model.Trade{ID: id, UserID: 1, Symbol: "X", EntryTime: entry},
			ProfitLoss: pnl,
		}
	}
	if err := s.AppendClosedTrade(mk("a", today, -300)); err != nil {
		t.Fatal(err)
	}
	if err := s.AppendClosedTrade(mk("b", today, 100)); err != nil {
		t.Fatal(err)
	}
	if err := s.AppendClosedTrade(mk("c", yesterday, 999)); err != nil {
		t.Fatal(err)
	}

	pnl, err := s.DailyPnL(1, today)
	if err != nil {
		t.Fatal(err)
	}
	if pnl != -200 {
		t.Errorf("expected today's P&L -200, got %.2f", pnl)
	}
}

func TestMemoryStore_DerivedPortfolio(t *testing.T) {
	s := NewMemoryStore()

	if err := s.AppendPortfolioValue(1, 100000, time.Now()); err != nil {
		t.Fatal(err)
	}
	if err := s.UpsertActiveTrade(model.Trade{
		ID: "t1", UserID: 1, Symbol: "TCS", Direction: model.SignalBuy,
		EntryPrice: 100, Quantity: 50, EntryTime: time.Now(),
	}); err != nil {
		t.Fatal(err)
	}

	p, err := s.Portfolio(1)
	if err != nil {
		t.Fatal(err)
	}
	if p.CashBalance != 95000 {
		t.Errorf("cash should be value minus invested, got %.2f", p.CashBalance)
	}
	if len(p.Positions) != 1 || p.Positions[0].Symbol != "TCS" {
		t.Errorf("expected one TCS position, got %+v", p.Positions)
	}
	// Total value is preserved: 95000 cash + 50*100 position.
	if p.Value() != 100000 {
		t.Errorf("expected total value 100000, got %.2f", p.Value())
	}
}

func TestMemoryStore_SetPortfolioOverrides(t *testing.T) {
	s := NewMemoryStore()
	s.SetPortfolio(model.Portfolio{UserID: 1, CashBalance: 42})

	p, err := s.Portfolio(1)
	if err != nil || p.CashBalance != 42 {
		t.Errorf("expected overridden portfolio, got %+v (%v)", p, err)
	}
}
