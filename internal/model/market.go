package model

import "time"

// OHLCV represents a single candlestick bar.
type OHLCV struct {
	Time   time.Time
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume int64
}

// Quote is a live snapshot for a symbol, produced fresh per polling cycle.
type Quote struct {
	Symbol        string
	LTP           float64 // last traded price
	Open          float64
	High          float64
	Low           float64
	PrevClose     float64
	Volume        int64
	PercentChange float64
	Week52High    float64
	Week52Low     float64
	Time          time.Time
}
