package currency

import (
	"fmt"
	"math"
)

// Rates is a snapshot of USD exchange rates for the supported currencies.
// ECS is pegged 1:1 to USD and never read from the feed.
type Rates struct {
	USDCOP float64 `json:"USDCOP"`
	USDCLP float64 `json:"USDCLP"`
	USDPEN float64 `json:"USDPEN"`
	USDBRL float64 `json:"USDBRL"`
	USDMXN float64 `json:"USDMXN"`
	USDECS float64 `json:"USDECS"`
}

// DefaultRates is the fallback table used whenever the rate service is
// unreachable or answers garbage. The workflow must never block on it.
func DefaultRates() Rates {
	return Rates{
		USDCOP: 4100,
		USDCLP: 950,
		USDPEN: 3.8,
		USDBRL: 5.2,
		USDMXN: 17.5,
		USDECS: 1,
	}
}

// Convert multiplies a USD amount by the snapshot rate for the target
// currency. Unknown codes convert 1:1. Pure function over its inputs.
func Convert(amountUSD float64, code string, rates Rates) float64 {
	switch code {
	case "COP":
		return amountUSD * rates.USDCOP
	case "CLP":
		return amountUSD * rates.USDCLP
	case "PEN":
		return amountUSD * rates.USDPEN
	case "BRL":
		return amountUSD * rates.USDBRL
	case "MXN":
		return amountUSD * rates.USDMXN
	case "ECS":
		return amountUSD * rates.USDECS
	}
	return amountUSD
}

// Round2 applies half-up rounding to 2 decimal places.
func Round2(amount float64) float64 {
	return math.Round(amount*100) / 100
}

// FormatAmount renders an amount for display with exactly 2 decimals.
func FormatAmount(amount float64) string {
	return fmt.Sprintf("%.2f", Round2(amount))
}
