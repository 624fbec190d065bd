package market

import "github.com/nayaksatyadeep876-ai/indian-trading/internal/model"

// Provider supplies historical bars and live quotes for symbols.
// An empty bar slice means "no data", not an error; retries and backoff
// belong inside implementations, never in callers.
type Provider interface {
	Bars(symbol, period, interval string) ([]model.OHLCV, error)
	Quote(symbol string) (model.Quote, error)
	Name() string
}
