package market

import (
	"time"

	"github.com/nayaksatyadeep876-ai/indian-trading/internal/model"
)

// MockProvider returns controllable fixed data for development and testing.
type MockProvider struct {
	Price     float64
	BarsData  []model.OHLCV
	QuoteData *model.Quote
	BarsErr   error
	QuoteErr  error
}

func (m *MockProvider) Name() string { return "mock" }

func (m *MockProvider) Bars(_ string, _, _ string) ([]model.OHLCV, error) {
	if m.BarsErr != nil {
		return nil, m.BarsErr
	}
	if m.BarsData != nil {
		return m.BarsData, nil
	}
	return GenerateBars(m.Price, 60), nil
}

func (m *MockProvider) Quote(symbol string) (model.Quote, error) {
	if m.QuoteErr != nil {
		return model.Quote{}, m.QuoteErr
	}
	if m.QuoteData != nil {
		return *m.QuoteData, nil
	}
	return model.Quote{
		Symbol:    symbol,
		LTP:       m.Price,
		Open:      m.Price * 0.999,
		High:      m.Price * 1.005,
		Low:       m.Price * 0.995,
		PrevClose: m.Price,
		Volume:    1_000_000,
		Time:      time.Now(),
	}, nil
}

// GenerateBars builds a mildly trending deterministic series around a base
// price.
func GenerateBars(basePrice float64, count int) []model.OHLCV {
	bars := make([]model.OHLCV, count)
	for i := 0; i < count; i++ {
		p := basePrice * (1 + float64(i-count/2)*0.001)
		bars[i] = model.OHLCV{
			Time:   time.Now().AddDate(0, 0, -(count - i)),
			Open:   p * 0.999,
			High:   p * 1.005,
			Low:    p * 0.995,
			Close:  p,
			Volume: 1_000_000,
		}
	}
	return bars
}

// FlatBars builds a series with no movement at all, useful for neutral
// indicator checks.
func FlatBars(price float64, count int) []model.OHLCV {
	bars := make([]model.OHLCV, count)
	for i := 0; i < count; i++ {
		bars[i] = model.OHLCV{
			Time:   time.Now().AddDate(0, 0, -(count - i)),
			Open:   price,
			High:   price,
			Low:    price,
			Close:  price,
			Volume: 1_000_000,
		}
	}
	return bars
}
