package notifier

import (
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/nayaksatyadeep876-ai/indian-trading/internal/model"
)

// FormatSignal formats a combined signal into a Telegram message.
func FormatSignal(sig model.CombinedSignal) string {
	var b strings.Builder

	emoji := "⏸"
	switch sig.Type {
	case model.SignalBuy:
		emoji = "🟢"
	case model.SignalSell:
		emoji = "🔴"
	}

	b.WriteString(fmt.Sprintf("%s <b>%s %s</b> | %s\n\n", emoji, sig.Type, sig.Symbol,
		sig.Time.Format("2006-01-02 15:04")))
	b.WriteString(fmt.Sprintf("Strategy: %s\n", sig.Strategy))
	b.WriteString(fmt.Sprintf("Confidence: %.0f%%\n", sig.Confidence*100))
	b.WriteString(fmt.Sprintf("Entry: ₹%s\n", humanize.CommafWithDigits(sig.EntryPrice, 2)))
	if sig.Type != model.SignalHold {
		b.WriteString(fmt.Sprintf("Target: ₹%s | Stop: ₹%s\n",
			humanize.CommafWithDigits(sig.TargetPrice, 2),
			humanize.CommafWithDigits(sig.StopLoss, 2)))
		b.WriteString(fmt.Sprintf("Risk/Reward: %.2f\n", sig.RiskReward))
	}
	b.WriteString(fmt.Sprintf("\nSentiment: %s | Volume: %s\n", sig.Sentiment, sig.VolumeAnalysis))
	return b.String()
}

// FormatTradeOpen formats a newly opened trade.
func FormatTradeOpen(t model.Trade) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("✅ <b>Trade Opened</b> | %s %s\n\n", t.Direction, t.Symbol))
	b.WriteString(fmt.Sprintf("Quantity: %s @ ₹%s\n",
		humanize.CommafWithDigits(t.Quantity, 2),
		humanize.CommafWithDigits(t.EntryPrice, 2)))
	b.WriteString(fmt.Sprintf("Target: ₹%s | Stop: ₹%s\n",
		humanize.CommafWithDigits(t.TargetPrice, 2),
		humanize.CommafWithDigits(t.StopLoss, 2)))
	b.WriteString(fmt.Sprintf("Strategy: %s (%.0f%%)\n", t.Strategy, t.Confidence*100))
	return b.String()
}

// FormatTradeClose formats a trade exit with its P&L.
func FormatTradeClose(t model.ClosedTrade) string {
	emoji := "🟢"
	if t.ProfitLoss < 0 {
		emoji = "🔴"
	}
	var b strings.Builder
	b.WriteString(fmt.Sprintf("%s <b>Trade Closed</b> | %s %s\n\n", emoji, t.Direction, t.Symbol))
	b.WriteString(fmt.Sprintf("Reason: %s\n", t.Reason))
	b.WriteString(fmt.Sprintf("Entry: ₹%s → Exit: ₹%s\n",
		humanize.CommafWithDigits(t.EntryPrice, 2),
		humanize.CommafWithDigits(t.ExitPrice, 2)))
	b.WriteString(fmt.Sprintf("P&L: ₹%s\n", humanize.CommafWithDigits(t.ProfitLoss, 2)))
	b.WriteString(fmt.Sprintf("Held: %s\n", humanize.RelTime(t.EntryTime, t.ExitTime, "", "")))
	return b.String()
}

// FormatDailySummary formats the end-of-day performance wrap-up.
func FormatDailySummary(totalTrades, wins int, winRate, totalPnL float64, activeCount int) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("📊 <b>Daily Summary</b> | %s\n\n", time.Now().Format("2006-01-02")))
	b.WriteString(fmt.Sprintf("Closed trades: %d (wins %d, %.0f%%)\n", totalTrades, wins, winRate*100))
	b.WriteString(fmt.Sprintf("Total P&L: ₹%s\n", humanize.CommafWithDigits(totalPnL, 2)))
	b.WriteString(fmt.Sprintf("Still open: %d\n", activeCount))
	return b.String()
}
