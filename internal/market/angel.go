package market

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"time"

	"github.com/nayaksatyadeep876-ai/indian-trading/internal/model"
)

// AngelFetcher implements Provider against the broker's REST gateway.
type AngelFetcher struct {
	BaseURL string
	APIKey  string
	Client  *http.Client
}

// NewAngelFetcher creates a fetcher with optional proxy support.
func NewAngelFetcher(baseURL, apiKey, proxyURL string) *AngelFetcher {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	return &AngelFetcher{
		BaseURL: baseURL,
		APIKey:  apiKey,
		Client: &http.Client{
			Timeout:   30 * time.Second,
			Transport: transport,
		},
	}
}

func (f *AngelFetcher) Name() string { return "angel" }

// candle is the expected JSON shape of one historical bar.
type candle struct {
	Timestamp int64   `json:"timestamp"`
	Open      float64 `json:"open"`
	High      float64 `json:"high"`
	Low       float64 `json:"low"`
	Close     float64 `json:"close"`
	Volume    int64   `json:"volume"`
}

// Bars fetches historical candles for a symbol, chronological order.
func (f *AngelFetcher) Bars(symbol, period, interval string) ([]model.OHLCV, error) {
	endpoint := fmt.Sprintf("%s/api/v1/candles?symbol=%s&period=%s&interval=%s",
		f.BaseURL, url.QueryEscape(symbol), url.QueryEscape(period), url.QueryEscape(interval))
	req, err := http.NewRequest("GET", endpoint, nil)
	if err != nil {
		return nil, err
	}
	if f.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+f.APIKey)
	}
	resp, err := f.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch bars: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("fetch bars: status %d, body: %s", resp.StatusCode, string(body))
	}
	var candles []candle
	if err := json.NewDecoder(resp.Body).Decode(&candles); err != nil {
		return nil, fmt.Errorf("decode bars: %w", err)
	}
	bars := make([]model.OHLCV, len(candles))
	for i, c := range candles {
		bars[i] = model.OHLCV{
			Time:   time.Unix(c.Timestamp, 0),
			Open:   c.Open,
			High:   c.High,
			Low:    c.Low,
			Close:  c.Close,
			Volume: c.Volume,
		}
	}
	sort.Slice(bars, func(i, j int) bool { return bars[i].Time.Before(bars[j].Time) })
	return bars, nil
}

// Quote fetches the live snapshot for a symbol.
func (f *AngelFetcher) Quote(symbol string) (model.Quote, error) {
	endpoint := fmt.Sprintf("%s/api/v1/quote?symbol=%s", f.BaseURL, url.QueryEscape(symbol))
	req, err := http.NewRequest("GET", endpoint, nil)
	if err != nil {
		return model.Quote{}, err
	}
	if f.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+f.APIKey)
	}
	resp, err := f.Client.Do(req)
	if err != nil {
		return model.Quote{}, fmt.Errorf("fetch quote: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return model.Quote{}, fmt.Errorf("fetch quote: status %d", resp.StatusCode)
	}
	var result struct {
		LTP           float64 `json:"ltp"`
		Open          float64 `json:"open"`
		High          float64 `json:"high"`
		Low           float64 `json:"low"`
		Close         float64 `json:"close"`
		Volume        int64   `json:"volume"`
		PercentChange float64 `json:"percent_change"`
		Week52High    float64 `json:"week_52_high"`
		Week52Low     float64 `json:"week_52_low"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return model.Quote{}, fmt.Errorf("decode quote: %w", err)
	}
	return model.Quote{
		Symbol:        symbol,
		LTP:           result.LTP,
		Open:          result.Open,
		High:          result.High,
		Low:           result.Low,
		PrevClose:     result.Close,
		Volume:        result.Volume,
		PercentChange: result.PercentChange,
		Week52High:    result.Week52High,
		Week52Low:     result.Week52Low,
		Time:          time.Now(),
	}, nil
}
