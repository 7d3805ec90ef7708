package engine

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/Gugan3007/nexus-prime/api/schemas"
)

// -- Normalization Primitives --

// UnparseableDeliveryDays is the penalty value assigned when delivery terms
// carry no recognizable duration. It sorts such vendors behind any vendor
// with a real timeline.
const UnparseableDeliveryDays = 999

var (
	reDeliveryDays   = regexp.MustCompile(`(\d+)\s*(?:calendar\s*)?days?`)
	reDeliveryWeeks  = regexp.MustCompile(`(\d+)\s*(?:business\s*)?weeks?`)
	reDeliveryMonths = regexp.MustCompile(`(\d+)\s*(?:business\s*)?months?`)
	reBareNumber     = regexp.MustCompile(`(\d+)`)
)

// toBase converts an amount from the quoted currency into the base currency
// (USD) and rounds to cents. Unknown or empty currency codes convert 1:1.
func (e *Engine) toBase(amount float64, currency string) float64 {
	rate, ok := e.rates[strings.ToUpper(currency)]
	if !ok {
		rate = 1.0
	}
	return round2(amount * rate)
}

// deliveryToDays normalizes free-text delivery terms to a day count. Units
// are tried in a fixed order (days, weeks, months, bare number) so "2 weeks
// or 14 days" resolves deterministically. Weeks convert at 7 days and months
// at 30. Text with no usable number yields UnparseableDeliveryDays.
func (e *Engine) deliveryToDays(text string) int {
	if text == "" || text == schemas.NotSpecified {
		return UnparseableDeliveryDays
	}
	s := strings.TrimSpace(strings.ToLower(text))

	if m := reDeliveryDays.FindStringSubmatch(s); m != nil {
		if n, ok := parseDigits(m[1]); ok {
			return n
		}
	}
	if m := reDeliveryWeeks.FindStringSubmatch(s); m != nil {
		if n, ok := parseDigits(m[1]); ok {
			return n * 7
		}
	}
	if m := reDeliveryMonths.FindStringSubmatch(s); m != nil {
		if n, ok := parseDigits(m[1]); ok {
			return n * 30
		}
	}
	if m := reBareNumber.FindStringSubmatch(s); m != nil {
		if n, ok := parseDigits(m[1]); ok {
			return n
		}
	}
	return UnparseableDeliveryDays
}

// parseDigits converts a digit run to int, rejecting values that overflow or
// that would overflow once a unit multiplier is applied.
func parseDigits(s string) (int, bool) {
	n, err := strconv.Atoi(s)
	if err != nil || n > math.MaxInt/30 {
		return 0, false
	}
	return n, true
}

// round2 rounds to 2 decimal places, half away from zero.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// round1 rounds to 1 decimal place, half away from zero.
func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
