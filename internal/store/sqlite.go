package store

import (
	"database/sql"
	"fmt"
	"log"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"github.com/nayaksatyadeep876-ai/indian-trading/internal/market"
	"github.com/nayaksatyadeep876-ai/indian-trading/internal/model"
)

// SQLiteStore persists all trading state to a SQLite database.
type SQLiteStore struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLiteStore opens (or creates) the SQLite database and runs migrations.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL mode for better concurrent read performance.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	s := &SQLiteStore{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Printf("[INFO] sqlite store opened: %s", dbPath)
	return s, nil
}

func (s *SQLiteStore) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS active_trades (
			id           TEXT PRIMARY KEY,
			user_id      INTEGER NOT NULL,
			symbol       TEXT NOT NULL,
			direction    TEXT NOT NULL,
			entry_price  REAL NOT NULL,
			target_price REAL NOT NULL,
			stop_loss    REAL NOT NULL,
			quantity     REAL NOT NULL,
			strategy     TEXT,
			confidence   REAL,
			entry_time   INTEGER NOT NULL
		)`,
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_active_symbol_user
			ON active_trades(symbol, user_id)`,

		`CREATE TABLE IF NOT EXISTS trade_history (
			id           TEXT PRIMARY KEY,
			user_id      INTEGER NOT NULL,
			symbol       TEXT NOT NULL,
			direction    TEXT NOT NULL,
			entry_price  REAL NOT NULL,
			target_price REAL NOT NULL,
			stop_loss    REAL NOT NULL,
			quantity     REAL NOT NULL,
			strategy     TEXT,
			confidence   REAL,
			entry_time   INTEGER NOT NULL,
			exit_price   REAL NOT NULL,
			exit_time    INTEGER NOT NULL,
			profit_loss  REAL NOT NULL,
			reason       TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_history_user ON trade_history(user_id, entry_time)`,

		`CREATE TABLE IF NOT EXISTS portfolio_history (
			id        INTEGER PRIMARY KEY AUTOINCREMENT,
			user_id   INTEGER NOT NULL,
			value     REAL NOT NULL,
			timestamp INTEGER NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_portfolio_user ON portfolio_history(user_id, timestamp)`,

		`CREATE TABLE IF NOT EXISTS signals (
			id           INTEGER PRIMARY KEY AUTOINCREMENT,
			symbol       TEXT NOT NULL,
			signal_type  TEXT NOT NULL,
			confidence   REAL,
			entry_price  REAL,
			target_price REAL,
			stop_loss    REAL,
			strategy     TEXT,
			risk_reward  REAL,
			sentiment    TEXT,
			volume_level TEXT,
			volatility   REAL,
			timestamp    INTEGER NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_signals_symbol ON signals(symbol, timestamp)`,
	}

	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("exec %q: %w", stmt[:40], err)
		}
	}
	return nil
}

// Portfolio builds a snapshot from the latest portfolio value and the open
// trades marked at their entry price.
func (s *SQLiteStore) Portfolio(userID int64) (model.Portfolio, error) {
	value, ok, err := s.LastPortfolioValue(userID)
	if err != nil {
		return model.Portfolio{}, err
	}
	trades, err := s.ActiveTrades(userID)
	if err != nil {
		return model.Portfolio{}, err
	}
	p := model.Portfolio{UserID: userID}
	var invested float64
	for _, t := range trades {
		invested += t.Quantity * t.EntryPrice
		p.Positions = append(p.Positions, model.Position{
			Symbol:       t.Symbol,
			Quantity:     t.Quantity,
			CurrentPrice: t.EntryPrice,
			AveragePrice: t.EntryPrice,
		})
	}
	if ok {
		p.CashBalance = value - invested
	}
	return p, nil
}

func (s *SQLiteStore) ActiveTrades(userID int64) ([]model.Trade, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.db.Query(`SELECT id, user_id, symbol, direction, entry_price,
		target_price, stop_loss, quantity, strategy, confidence, entry_time
		FROM active_trades WHERE user_id = ? ORDER BY entry_time`, userID)
	if err != nil {
		return nil, fmt.Errorf("query active trades: %w", err)
	}
	defer rows.Close()

	var trades []model.Trade
	for rows.Next() {
		var t model.Trade
		var entryUnix int64
		if err := rows.Scan(&t.ID, &t.UserID, &t.Symbol, &t.Direction, &t.EntryPrice,
			&t.TargetPrice, &t.StopLoss, &t.Quantity, &t.Strategy, &t.Confidence, &entryUnix); err != nil {
			return nil, fmt.Errorf("scan active trade: %w", err)
		}
		t.EntryTime = time.Unix(entryUnix, 0).In(market.IST)
		t.Status = model.TradeActive
		trades = append(trades, t)
	}
	return trades, rows.Err()
}

func (s *SQLiteStore) ActiveTradeCount(userID int64) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var n int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM active_trades WHERE user_id = ?`, userID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count active trades: %w", err)
	}
	return n, nil
}

func (s *SQLiteStore) UpsertActiveTrade(t model.Trade) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(`INSERT INTO active_trades
		(id, user_id, symbol, direction, entry_price, target_price, stop_loss,
		 quantity, strategy, confidence, entry_time)
		VALUES (?,?,?,?,?,?,?,?,?,?,?)
		ON CONFLICT(id) DO UPDATE SET
			target_price = excluded.target_price,
			stop_loss    = excluded.stop_loss`,
		t.ID, t.UserID, t.Symbol, t.Direction, t.EntryPrice, t.TargetPrice,
		t.StopLoss, t.Quantity, t.Strategy, t.Confidence, t.EntryTime.Unix(),
	)
	if err != nil {
		return fmt.Errorf("upsert active trade: %w", err)
	}
	return nil
}

func (s *SQLiteStore) DeleteActiveTrade(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.db.Exec(`DELETE FROM active_trades WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete active trade: %w", err)
	}
	return nil
}

func (s *SQLiteStore) AppendClosedTrade(t model.ClosedTrade) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(`INSERT INTO trade_history
		(id, user_id, symbol, direction, entry_price, target_price, stop_loss,
		 quantity, strategy, confidence, entry_time, exit_price, exit_time,
		 profit_loss, reason)
		VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)`,
		t.ID, t.UserID, t.Symbol, t.Direction, t.EntryPrice, t.TargetPrice,
		t.StopLoss, t.Quantity, t.Strategy, t.Confidence, t.EntryTime.Unix(),
		t.ExitPrice, t.ExitTime.Unix(), t.ProfitLoss, t.Reason,
	)
	if err != nil {
		return fmt.Errorf("append closed trade: %w", err)
	}
	return nil
}

func (s *SQLiteStore) ClosedTrades(userID int64) ([]model.ClosedTrade, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.db.Query(`SELECT id, user_id, symbol, direction, entry_price,
		target_price, stop_loss, quantity, strategy, confidence, entry_time,
		exit_price, exit_time, profit_loss, reason
		FROM trade_history WHERE user_id = ? ORDER BY exit_time`, userID)
	if err != nil {
		return nil, fmt.Errorf("query trade history: %w", err)
	}
	defer rows.Close()

	var trades []model.ClosedTrade
	for rows.Next() {
		var t model.ClosedTrade
		var entryUnix, exitUnix int64
		if err := rows.Scan(&t.ID, &t.UserID, &t.Symbol, &t.Direction, &t.EntryPrice,
			&t.TargetPrice, &t.StopLoss, &t.Quantity, &t.Strategy, &t.Confidence,
			&entryUnix, &t.ExitPrice, &exitUnix, &t.ProfitLoss, &t.Reason); err != nil {
			return nil, fmt.Errorf("scan closed trade: %w", err)
		}
		t.EntryTime = time.Unix(entryUnix, 0).In(market.IST)
		t.ExitTime = time.Unix(exitUnix, 0).In(market.IST)
		t.Status = model.TradeClosed
		trades = append(trades, t)
	}
	return trades, rows.Err()
}

func (s *SQLiteStore) AppendPortfolioValue(userID int64, value float64, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(`INSERT INTO portfolio_history (user_id, value, timestamp)
		VALUES (?,?,?)`, userID, value, at.Unix())
	if err != nil {
		return fmt.Errorf("append portfolio value: %w", err)
	}
	return nil
}

func (s *SQLiteStore) PortfolioHistory(userID int64) ([]model.PortfolioPoint, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.db.Query(`SELECT value, timestamp FROM portfolio_history
		WHERE user_id = ? ORDER BY timestamp`, userID)
	if err != nil {
		return nil, fmt.Errorf("query portfolio history: %w", err)
	}
	defer rows.Close()

	var points []model.PortfolioPoint
	for rows.Next() {
		var p model.PortfolioPoint
		var ts int64
		if err := rows.Scan(&p.Value, &ts); err != nil {
			return nil, fmt.Errorf("scan portfolio point: %w", err)
		}
		p.Time = time.Unix(ts, 0).In(market.IST)
		points = append(points, p)
	}
	return points, rows.Err()
}

func (s *SQLiteStore) LastPortfolioValue(userID int64) (float64, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var value float64
	err := s.db.QueryRow(`SELECT value FROM portfolio_history
		WHERE user_id = ? ORDER BY timestamp DESC, id DESC LIMIT 1`, userID).Scan(&value)
	if err == sql.ErrNoRows {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("last portfolio value: %w", err)
	}
	return value, true, nil
}

func (s *SQLiteStore) DailyPnL(userID int64, day time.Time) (float64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	local := day.In(market.IST)
	start := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, market.IST)
	end := start.AddDate(0, 0, 1)

	var pnl sql.NullFloat64
	err := s.db.QueryRow(`SELECT SUM(profit_loss) FROM trade_history
		WHERE user_id = ? AND entry_time >= ? AND entry_time < ?`,
		userID, start.Unix(), end.Unix()).Scan(&pnl)
	if err != nil {
		return 0, fmt.Errorf("daily pnl: %w", err)
	}
	return pnl.Float64, nil
}

func (s *SQLiteStore) SaveSignal(sig model.CombinedSignal) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(`INSERT INTO signals
		(symbol, signal_type, confidence, entry_price, target_price, stop_loss,
		 strategy, risk_reward, sentiment, volume_level, volatility, timestamp)
		VALUES (?,?,?,?,?,?,?,?,?,?,?,?)`,
		sig.Symbol, sig.Type, sig.Confidence, sig.EntryPrice, sig.TargetPrice,
		sig.StopLoss, sig.Strategy, sig.RiskReward, sig.Sentiment,
		sig.VolumeAnalysis, sig.Volatility, sig.Time.Unix(),
	)
	if err != nil {
		return fmt.Errorf("save signal: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Close() error {
	log.Println("[INFO] closing sqlite store")
	return s.db.Close()
}
