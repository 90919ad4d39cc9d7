package format

import (
	"strconv"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// FormatStat formats a possibly absent count for the info boxes and table.
// nil → "0"; otherwise digits grouped in thousands, e.g. 1234567 → "1,234,567".
func FormatStat(n *int64) string {
	if n == nil {
		return "0"
	}
	return FormatNumber(*n)
}

// FormatNumber formats an integer with comma thousands separators.
// Example: 12345678 → "12,345,678", -12345 → "-12,345".
func FormatNumber(n int64) string {
	return message.NewPrinter(language.English).Sprintf("%d", n)
}

// FormatSigned formats a delta with an explicit sign on non-zero values.
// Example: 1234 → "+1,234", -3 → "-3", 0 → "0".
func FormatSigned(n int64) string {
	if n > 0 {
		return "+" + FormatNumber(n)
	}
	return FormatNumber(n)
}

// FormatCompact abbreviates a count for chart axis labels, truncating toward
// zero: 999 → "999", 1500 → "1k", 12345678 → "12m", -2500 → "-2k".
func FormatCompact(n int64) string {
	sign := ""
	u := uint64(n)
	if n < 0 {
		sign = "-"
		u = uint64(-(n + 1)) + 1 // avoids overflow for math.MinInt64
	}

	const (
		k = 1_000
		m = k * 1_000
		b = m * 1_000
		t = b * 1_000
	)
	switch {
	case u < k:
		return sign + strconv.FormatUint(u, 10)
	case u < m:
		return sign + strconv.FormatUint(u/k, 10) + "k"
	case u < b:
		return sign + strconv.FormatUint(u/m, 10) + "m"
	case u < t:
		return sign + strconv.FormatUint(u/b, 10) + "b"
	default:
		return sign + strconv.FormatUint(u/t, 10) + "t"
	}
}
