package money

import "github.com/shopspring/decimal"

// Format renders a monetary amount as a fixed-point string with exactly two
// fractional digits. Every monetary value leaving the reporting API goes
// through this function; consumers compare these strings verbatim.
// Example: 12.3456 -> "12.35", 1000 -> "1000.00".
func Format(amount decimal.Decimal) string {
	return amount.StringFixed(2)
}

// FormatPtr formats a nullable amount, returning nil for nil input.
func FormatPtr(amount *decimal.Decimal) *string {
	if amount == nil {
		return nil
	}
	s := Format(*amount)
	return &s
}

// Zero is the canonical zero money string.
const Zero = "0.00"
