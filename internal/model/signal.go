package model

import "time"

// SignalType indicates the trade direction of a signal.
type SignalType string

const (
	SignalBuy  SignalType = "BUY"
	SignalSell SignalType = "SELL"
	SignalHold SignalType = "HOLD"
)

// Sentiment classifies recent price action.
type Sentiment string

const (
	SentimentBullish Sentiment = "Bullish"
	SentimentBearish Sentiment = "Bearish"
	SentimentNeutral Sentiment = "Neutral"
)

// VolumeLevel classifies recent traded volume against its 20-bar average.
type VolumeLevel string

const (
	VolumeHigh   VolumeLevel = "High"
	VolumeNormal VolumeLevel = "Normal"
	VolumeLow    VolumeLevel = "Low"
)

// StrategyResult is one strategy's verdict for a symbol at the current price.
// For HOLD, Target and StopLoss equal the current price and Confidence is the
// strategy's residual confidence, not zero (zero marks an error state).
type StrategyResult struct {
	Type       SignalType
	Confidence float64
	Target     float64
	StopLoss   float64
	Strategy   string
}

// CombinedSignal is the weighted combination of several strategy results.
type CombinedSignal struct {
	Symbol         string
	Type           SignalType
	Confidence     float64
	EntryPrice     float64
	TargetPrice    float64
	StopLoss       float64
	Strategy       string
	RiskReward     float64
	Sentiment      Sentiment
	VolumeAnalysis VolumeLevel
	Volatility     float64
	Time           time.Time
}
