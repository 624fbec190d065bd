package indicator

// Pivot levels are local extrema over a symmetric window. A price qualifies
// as support when it is the minimum of the window centered on it, and as
// resistance when it is the maximum. Up to the three most recent qualifying
// pivots are returned, oldest first.

const maxLevels = 3

// PivotLows returns up to three most recent local minima.
func PivotLows(closes []float64, window int) []float64 {
	return pivots(closes, window, func(v, extreme float64) bool { return v < extreme })
}

// PivotHighs returns up to three most recent local maxima.
func PivotHighs(closes []float64, window int) []float64 {
	return pivots(closes, window, func(v, extreme float64) bool { return v > extreme })
}

func pivots(closes []float64, window int, beats func(v, extreme float64) bool) []float64 {
	if len(closes) < 20 || window <= 0 {
		return nil
	}
	var levels []float64
	for i := window; i < len(closes)-window; i++ {
		extreme := closes[i]
		for j := i - window; j <= i+window; j++ {
			if beats(closes[j], extreme) {
				extreme = closes[j]
			}
		}
		if closes[i] == extreme {
			levels = append(levels, closes[i])
		}
	}
	if len(levels) > maxLevels {
		levels = levels[len(levels)-maxLevels:]
	}
	return levels
}
