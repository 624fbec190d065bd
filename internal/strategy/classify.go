package strategy

import "strings"

// Class buckets symbols into the strategy sets used by the combiner.
type Class int

const (
	ClassIndex Class = iota
	ClassBankIndex
	ClassLargeCap
	ClassStock
)

func (c Class) String() string {
	switch c {
	case ClassIndex:
		return "index"
	case ClassBankIndex:
		return "bank-index"
	case ClassLargeCap:
		return "large-cap"
	default:
		return "stock"
	}
}

// largeCaps are the NSE heavyweights traded with the conservative set.
var largeCaps = map[string]bool{
	"RELIANCE": true,
	"TCS":      true,
	"HDFCBANK": true,
	"INFY":     true,
}

// Classify maps a symbol to its class. BANKNIFTY is checked before NIFTY
// since the former contains the latter as a substring.
func Classify(symbol string) Class {
	upper := strings.ToUpper(symbol)
	switch {
	case strings.Contains(upper, "BANKNIFTY"):
		return ClassBankIndex
	case strings.Contains(upper, "NIFTY"):
		return ClassIndex
	case largeCaps[upper]:
		return ClassLargeCap
	default:
		return ClassStock
	}
}
