package dto

import "github.com/shopspring/decimal"

// The engine computes with full precision; rounding happens only here, at
// the presentation boundary. Money gets 2 places, rates 4.

func Money(d decimal.Decimal) float64 {
	return d.Round(2).InexactFloat64()
}

func Rate(d decimal.Decimal) float64 {
	return d.Round(4).InexactFloat64()
}
