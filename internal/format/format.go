package format

import (
	"fmt"
	"math"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

// Duration renders seconds as "HH:MM:SS", prefixed with "Nd " when the
// duration spans at least one day. Fractional seconds are truncated;
// negative or NaN input renders as zero and huge values saturate.
func Duration(seconds float64) string {
	var total int64
	switch {
	case math.IsNaN(seconds) || seconds <= 0:
		total = 0
	case seconds >= float64(math.MaxInt64):
		total = math.MaxInt64
	default:
		total = int64(math.Floor(seconds))
	}
	days := total / 86400
	hours := (total % 86400) / 3600
	minutes := (total % 3600) / 60
	secs := total % 60

	if days > 0 {
		return fmt.Sprintf("%dd %02d:%02d:%02d", days, hours, minutes, secs)
	}
	return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, secs)
}

// Number renders an amount with thousands separators (1234567 -> "1,234,567")
func Number(n int64) string {
	return printer.Sprintf("%d", n)
}

// Percent renders a bonus percentage without trailing zeros
func Percent(p float64) string {
	if p == math.Trunc(p) {
		return fmt.Sprintf("%.0f%%", p)
	}
	return fmt.Sprintf("%.1f%%", p)
}

// Name converts "command_center" or "lancer camp" into "Command Center"
func Name(name string) string {
	name = strings.ReplaceAll(name, "_", " ")
	words := strings.Fields(name)
	for i, w := range words {
		r, size := utf8.DecodeRuneInString(w)
		words[i] = string(unicode.ToUpper(r)) + w[size:]
	}
	return strings.Join(words, " ")
}
