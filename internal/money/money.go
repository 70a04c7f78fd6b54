package money

import (
	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
)

// ToMajor converts an amount in minor units (cents) to major units.
func ToMajor(minor int64) decimal.Decimal {
	return decimal.New(minor, -2)
}

// FormatCurrency renders minor units as a USD display string, e.g. 123456 -> "$1,234.56".
func FormatCurrency(minor int64) string {
	sign := ""
	if minor < 0 {
		sign = "-"
		minor = -minor
	}
	f, _ := ToMajor(minor).Float64()
	return sign + "$" + humanize.FormatFloat("#,###.##", f)
}
