package risk

import "strings"

// Static sector and correlation tables. Correlation is not computed from
// price history; the hard-coded pairs and sector buckets stand in for it.

var sectorBySymbol = map[string]string{
	"RELIANCE":   "Energy",
	"TCS":        "Technology",
	"INFY":       "Technology",
	"HDFCBANK":   "Banking",
	"ICICIBANK":  "Banking",
	"SBIN":       "Banking",
	"KOTAKBANK":  "Banking",
	"BHARTIARTL": "Telecom",
	"HINDUNILVR": "FMCG",
	"BAJFINANCE": "Financial Services",
}

// SectorOf maps a symbol to its sector, defaulting to "Other".
func SectorOf(symbol string) string {
	if s, ok := sectorBySymbol[strings.ToUpper(symbol)]; ok {
		return s
	}
	return "Other"
}

var highCorrelationPairs = [][2]string{
	{"HDFCBANK", "ICICIBANK"},
	{"HDFCBANK", "SBIN"},
	{"ICICIBANK", "SBIN"},
	{"TCS", "INFY"},
	{"NIFTY50", "SENSEX"},
}

var correlationBuckets = [][]string{
	{"HDFCBANK", "ICICIBANK", "SBIN", "KOTAKBANK"},
	{"TCS", "INFY"},
}

// Correlation returns the assumed correlation between two symbols:
// 0.8 for listed pairs, 0.6 within a sector bucket, 0.2 otherwise.
func Correlation(a, b string) float64 {
	a, b = strings.ToUpper(a), strings.ToUpper(b)
	for _, pair := range highCorrelationPairs {
		if (a == pair[0] || a == pair[1]) && (b == pair[0] || b == pair[1]) {
			return 0.8
		}
	}
	for _, bucket := range correlationBuckets {
		if inBucket(a, bucket) && inBucket(b, bucket) {
			return 0.6
		}
	}
	return 0.2
}

func inBucket(symbol string, bucket []string) bool {
	for _, s := range bucket {
		if s == symbol {
			return true
		}
	}
	return false
}
