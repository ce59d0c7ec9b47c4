package market

import "strings"

// NSESuffix is the exchange suffix the quote provider expects for NSE listings.
const NSESuffix = ".NS"

// EnsureSuffix appends suffix to symbol unless it is already present.
func EnsureSuffix(symbol, suffix string) string {
	s := strings.TrimSpace(symbol)
	if s == "" || suffix == "" || strings.HasSuffix(s, suffix) {
		return s
	}
	return s + suffix
}

// RemoveSuffix strips suffix from symbol for display.
func RemoveSuffix(symbol, suffix string) string {
	s := strings.TrimSpace(symbol)
	if suffix == "" {
		return s
	}
	return strings.TrimSuffix(s, suffix)
}
