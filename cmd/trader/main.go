package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/nayaksatyadeep876-ai/indian-trading/internal/config"
	"github.com/nayaksatyadeep876-ai/indian-trading/internal/engine"
	"github.com/nayaksatyadeep876-ai/indian-trading/internal/ledger"
	"github.com/nayaksatyadeep876-ai/indian-trading/internal/market"
	"github.com/nayaksatyadeep876-ai/indian-trading/internal/notifier"
	"github.com/nayaksatyadeep876-ai/indian-trading/internal/risk"
	"github.com/nayaksatyadeep876-ai/indian-trading/internal/scheduler"
	"github.com/nayaksatyadeep876-ai/indian-trading/internal/store"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("[INFO] trader starting...")

	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	// Load config
	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("[FATAL] load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("[FATAL] config validation: %v", err)
	}

	// Init market data provider
	var provider market.Provider
	if cfg.DataSource.Mock {
		provider = &market.MockProvider{Price: 100}
	} else {
		provider = market.NewAngelFetcher(cfg.DataSource.BaseURL, cfg.DataSource.APIKey, cfg.Proxy)
	}
	log.Printf("[INFO] data source: %s", provider.Name())

	// Init store
	var st store.Store
	if cfg.Database.InMemory {
		st = store.NewMemoryStore()
	} else {
		ss, err := store.NewSQLiteStore(cfg.Database.SQLitePath)
		if err != nil {
			log.Fatalf("[FATAL] init sqlite store: %v", err)
		}
		st = ss
	}
	defer st.Close()

	// Seed the portfolio series on first run so sizing has a base value.
	if _, ok, err := st.LastPortfolioValue(cfg.Trading.UserID); err != nil {
		log.Fatalf("[FATAL] read portfolio history: %v", err)
	} else if !ok {
		if err := st.AppendPortfolioValue(cfg.Trading.UserID, cfg.Trading.InitialBalance, time.Now()); err != nil {
			log.Fatalf("[FATAL] seed portfolio value: %v", err)
		}
		log.Printf("[INFO] seeded portfolio with initial balance %.2f", cfg.Trading.InitialBalance)
	}

	// Init ledger and restore any trades left open by a previous run
	lg := ledger.New(st, time.Duration(cfg.Trading.MaxHoldHours)*time.Hour, cfg.Trading.InitialBalance)
	if err := lg.Restore(cfg.Trading.UserID); err != nil {
		log.Fatalf("[FATAL] restore ledger: %v", err)
	}

	// Init risk sizer and engine
	sizer := risk.NewSizer(risk.DefaultLimits(), st)
	eng := engine.New(provider, st, sizer, lg, engine.Params{
		RiskPerTrade:  cfg.Trading.RiskPerTrade,
		MinConfidence: cfg.Trading.MinConfidence,
	})

	// Init Telegram notifier
	var tn notifier.Notifier
	if cfg.Telegram.BotToken != "" {
		tn = notifier.NewTelegramNotifier(cfg.Telegram.BotToken, cfg.Telegram.ChatID, cfg.Proxy)
	} else {
		tn = notifier.NoopNotifier{}
	}

	// Context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Init scheduler
	sched := scheduler.NewScheduler(ctx, eng, tn, cfg.DataSource.Symbols, cfg.Trading.UserID)
	if err := sched.RegisterAll(cfg.Schedule.ScanCron, cfg.Schedule.MonitorCron, cfg.Schedule.SummaryCron); err != nil {
		log.Fatalf("[FATAL] register cron tasks: %v", err)
	}
	sched.Start()
	defer sched.Stop()

	// Optional: run immediately on start
	if os.Getenv("RUN_ON_START") == "true" {
		log.Println("[INFO] RUN_ON_START enabled, executing scan now")
		go sched.RunScanNow()
	}

	log.Println("[INFO] trader is running. Press Ctrl+C to stop.")

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Println("[INFO] shutdown signal received, stopping...")
	cancel()
	log.Println("[INFO] trader stopped")
}
