// Package format renders numeric flight data as display strings.
package format

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Number formats a value with a fixed number of decimal places.
func Number(value float64, decimals int) string {
	return strconv.FormatFloat(value, 'f', decimals, 64)
}

// Price renders a flight price as "<total> <currency>" with two decimals
// and comma-grouped thousands.
func Price(total float64, currencyCode string) string {
	return groupThousands(Number(total, 2)) + " " + currencyCode
}

// groupThousands inserts comma separators into the integer part of a
// formatted number.
func groupThousands(s string) string {
	intPart, fracPart, hasFrac := strings.Cut(s, ".")

	sign := ""
	if strings.HasPrefix(intPart, "-") {
		sign = "-"
		intPart = intPart[1:]
	}

	result := sign + addThousandsSeparator(intPart, ",")
	if hasFrac {
		result += "." + fracPart
	}
	return result
}

func addThousandsSeparator(s string, sep string) string {
	n := len(s)
	if n <= 3 {
		return s
	}

	numSeps := (n - 1) / 3
	result := make([]byte, n+numSeps)

	j := len(result) - 1
	for i := n - 1; i >= 0; i-- {
		result[j] = s[i]
		j--

		pos := n - i
		if pos%3 == 0 && i > 0 {
			result[j] = sep[0]
			j--
		}
	}

	return string(result)
}

// AwardMiles renders a mileage amount. Most programs earn integer values,
// but some return decimals: the remainder of (value*100) mod 100 decides
// how many decimal places are shown, using the digit count of the
// remainder itself. 1234.5 therefore renders with two decimal places.
func AwardMiles(value float64) string {
	remainder := int64(value*100) % 100
	decimals := 0
	if remainder > 0 {
		decimals = len(strconv.FormatInt(remainder, 10))
	}
	return Number(value, decimals)
}

// Duration renders a minute count as "{h}h {m}m". The hour part is
// omitted when zero; the minute part is omitted when zero unless there is
// no hour part either, so a zero duration still renders as "0m".
func Duration(totalMinutes float64) string {
	m := int64(math.Floor(totalMinutes))
	h := m / 60
	d := h / 24

	if h > 0 {
		m -= h * 60
	}

	result := ""
	if h > 0 {
		result = fmt.Sprintf("%dh", h)
	}
	if m > 0 || (h <= 0 && d <= 0) {
		if result != "" {
			result += " "
		}
		result += fmt.Sprintf("%dm", m)
	}

	return result
}
