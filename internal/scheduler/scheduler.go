package scheduler

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/nayaksatyadeep876-ai/indian-trading/internal/engine"
	"github.com/nayaksatyadeep876-ai/indian-trading/internal/market"
	"github.com/nayaksatyadeep876-ai/indian-trading/internal/model"
	"github.com/nayaksatyadeep876-ai/indian-trading/internal/notifier"
	"github.com/nayaksatyadeep876-ai/indian-trading/internal/risk"
)

// Scheduler manages all cron tasks.
type Scheduler struct {
	Cron     *cron.Cron
	Engine   *engine.Engine
	Notifier notifier.Notifier
	Symbols  []string
	UserID   int64
	Ctx      context.Context

	now func() time.Time
}

// NewScheduler creates a new Scheduler.
func NewScheduler(ctx context.Context, eng *engine.Engine, tn notifier.Notifier, symbols []string, userID int64) *Scheduler {
	return &Scheduler{
		Cron:     cron.New(cron.WithSeconds()),
		Engine:   eng,
		Notifier: tn,
		Symbols:  symbols,
		UserID:   userID,
		Ctx:      ctx,
		now:      time.Now,
	}
}

// RegisterAll registers the scan, monitor and end-of-day summary tasks.
func (s *Scheduler) RegisterAll(scanCron, monitorCron, summaryCron string) error {
	if _, err := s.Cron.AddFunc(scanCron, s.scanTask); err != nil {
		return fmt.Errorf("register scan task: %w", err)
	}
	if _, err := s.Cron.AddFunc(monitorCron, s.monitorTask); err != nil {
		return fmt.Errorf("register monitor task: %w", err)
	}
	if _, err := s.Cron.AddFunc(summaryCron, s.summaryTask); err != nil {
		return fmt.Errorf("register summary task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Println("[INFO] scheduler started")
}

// Stop stops the cron scheduler gracefully.
func (s *Scheduler) Stop() {
	s.Cron.Stop()
	log.Println("[INFO] scheduler stopped")
}

// RunScanNow executes the scan task immediately (manual trigger / RUN_ON_START).
func (s *Scheduler) RunScanNow() {
	s.scanTask()
}

// scanTask evaluates every configured symbol and opens trades for actionable
// signals. The cron expression keeps it inside session hours, but the gate
// stays: cron fires on holidays too.
func (s *Scheduler) scanTask() {
	if !market.IsOpen(s.now()) {
		log.Println("[INFO] market closed, skipping scan")
		return
	}
	log.Println("[INFO] running signal scan")

	for _, symbol := range s.Symbols {
		sig, err := s.Engine.Evaluate(symbol)
		if err != nil {
			log.Printf("[ERROR] evaluate %s: %v", symbol, err)
			continue
		}
		if sig.Type == model.SignalHold {
			continue
		}
		s.trySend(notifier.FormatSignal(sig))

		trade, err := s.Engine.SizeAndOpen(s.UserID, sig)
		if err != nil {
			var rej *risk.Rejection
			if errors.As(err, &rej) {
				log.Printf("[INFO] %s not traded: %v", symbol, rej)
			} else {
				log.Printf("[ERROR] open %s: %v", symbol, err)
			}
			continue
		}
		s.trySend(notifier.FormatTradeOpen(trade))
	}
}

func (s *Scheduler) monitorTask() {
	if !market.IsOpen(s.now()) {
		return
	}
	closed, err := s.Engine.MonitorTick(s.UserID)
	if err != nil {
		log.Printf("[ERROR] monitor tick: %v", err)
	}
	for _, ct := range closed {
		s.trySend(notifier.FormatTradeClose(ct))
	}
}

func (s *Scheduler) summaryTask() {
	summary, err := s.Engine.PerformanceSummary(s.UserID)
	if err != nil {
		log.Printf("[ERROR] performance summary: %v", err)
		return
	}
	active := len(s.Engine.ActiveTrades(s.UserID))
	s.trySend(notifier.FormatDailySummary(summary.TotalTrades, summary.Wins,
		summary.WinRate, summary.TotalPnL, active))
}

func (s *Scheduler) trySend(text string) {
	if err := s.Notifier.SendWithRetry(s.Ctx, text, 3); err != nil {
		log.Printf("[ERROR] send notification: %v", err)
	}
}
