package stats

import (
	"fmt"
	"strconv"
)

// FormatNumber renders n with a K/M/B/T suffix and the given number of
// decimals. Sub-thousand values render plain, as an integer when decimals
// is zero.
func FormatNumber(n float64, decimals int) string {
	switch {
	case n >= 1e12:
		return fmt.Sprintf("%.*fT", decimals, n/1e12)
	case n >= 1e9:
		return fmt.Sprintf("%.*fB", decimals, n/1e9)
	case n >= 1e6:
		return fmt.Sprintf("%.*fM", decimals, n/1e6)
	case n >= 1e3:
		return fmt.Sprintf("%.*fK", decimals, n/1e3)
	}
	if decimals > 0 {
		return strconv.FormatFloat(n, 'f', decimals, 64)
	}
	return strconv.FormatInt(int64(n), 10)
}
