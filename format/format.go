package format

import (
	"fmt"
	"math"
	"time"
)

// Change classifies a signed delta for presentation mapping
type Change string

const (
	ChangePositive Change = "positive"
	ChangeNegative Change = "negative"
	ChangeNeutral  Change = "neutral"
)

// Currency formats a value as an abbreviated USD string.
// Zero returns "$0.00". The sign comes before the currency symbol,
// e.g. Currency(-1000) == "-$1.00K". Values below 1 keep six decimal
// places so sub-cent prices stay readable.
func Currency(value float64) string {
	if value == 0 {
		return "$0.00"
	}

	abs := math.Abs(value)

	var result string
	switch {
	case abs >= 1e9:
		result = fmt.Sprintf("$%.2fB", abs/1e9)
	case abs >= 1e6:
		result = fmt.Sprintf("$%.2fM", abs/1e6)
	case abs >= 1e3:
		result = fmt.Sprintf("$%.2fK", abs/1e3)
	case abs >= 1:
		result = fmt.Sprintf("$%.2f", abs)
	default:
		result = fmt.Sprintf("$%.6f", abs)
	}

	if value < 0 {
		return "-" + result
	}
	return result
}

// CurrencySafe is the detail-view variant of Currency: it adds a
// trillions tier and treats nil and non-finite values as zero.
func CurrencySafe(value *float64) string {
	if value == nil || math.IsNaN(*value) || math.IsInf(*value, 0) {
		return "$0.00"
	}

	v := *value
	abs := math.Abs(v)

	var result string
	switch {
	case abs >= 1e12:
		result = fmt.Sprintf("$%.2fT", abs/1e12)
	case abs >= 1e9:
		result = fmt.Sprintf("$%.2fB", abs/1e9)
	case abs >= 1e6:
		result = fmt.Sprintf("$%.2fM", abs/1e6)
	case abs >= 1e3:
		result = fmt.Sprintf("$%.2fK", abs/1e3)
	case abs >= 1:
		result = fmt.Sprintf("$%.2f", abs)
	case abs > 0:
		result = fmt.Sprintf("$%.6f", abs)
	default:
		return "$0.00"
	}

	if v < 0 {
		return "-" + result
	}
	return result
}

// Percentage formats a signed percentage with an explicit leading plus
// for non-negative values. Zero returns "0.00%".
func Percentage(value float64) string {
	if value == 0 {
		return "0.00%"
	}
	if value >= 0 {
		return fmt.Sprintf("+%.2f%%", value)
	}
	return fmt.Sprintf("%.2f%%", value)
}

// PercentageSafe maps nil and non-finite values to "0.00%".
func PercentageSafe(value *float64) string {
	if value == nil || math.IsNaN(*value) || math.IsInf(*value, 0) {
		return "0.00%"
	}
	return Percentage(*value)
}

// Number formats a value with magnitude abbreviations and no currency
// symbol. Zero returns "0".
func Number(value float64) string {
	if value == 0 {
		return "0"
	}

	abs := math.Abs(value)
	switch {
	case abs >= 1e12:
		return fmt.Sprintf("%.2fT", value/1e12)
	case abs >= 1e9:
		return fmt.Sprintf("%.2fB", value/1e9)
	case abs >= 1e6:
		return fmt.Sprintf("%.2fM", value/1e6)
	case abs >= 1e3:
		return fmt.Sprintf("%.2fK", value/1e3)
	}
	return fmt.Sprintf("%.2f", value)
}

// ChangeColor partitions a delta into positive, negative and neutral,
// with zero mapping to neutral.
func ChangeColor(value float64) Change {
	if value > 0 {
		return ChangePositive
	}
	if value < 0 {
		return ChangeNegative
	}
	return ChangeNeutral
}

// Date renders a millisecond timestamp as "Jan 2, 2006".
func Date(timestampMs int64) string {
	return time.UnixMilli(timestampMs).UTC().Format("Jan 2, 2006")
}

// ChartDate renders a millisecond timestamp in the short axis-label
// form "Jan 2".
func ChartDate(timestampMs int64) string {
	return time.UnixMilli(timestampMs).UTC().Format("Jan 2")
}

// TruncateText shortens s to max runes, appending an ellipsis when the
// text was cut.
func TruncateText(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max]) + "..."
}
