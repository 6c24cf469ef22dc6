package fx

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// DefaultNGNPerUSD is the fixed demo conversion rate. There is no live FX
// feed; every derived currency pair in the system uses this one rate.
var DefaultNGNPerUSD = decimal.NewFromInt(1600)

// Converter performs fixed-rate NGN<->USD conversion. NGN amounts are kept
// as whole naira and USD amounts as two-decimal dollars; rounding happens at
// the conversion boundary only, so small drift across repeated conversions
// is expected demo behavior.
type Converter struct {
	ngnPerUSD decimal.Decimal
}

// NewConverter creates a Converter for the given NGN-per-USD rate.
func NewConverter(ngnPerUSD decimal.Decimal) (*Converter, error) {
	if ngnPerUSD.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("conversion rate must be positive, got %s", ngnPerUSD)
	}
	return &Converter{ngnPerUSD: ngnPerUSD}, nil
}

// Rate returns the NGN-per-USD rate in use.
func (c *Converter) Rate() decimal.Decimal {
	return c.ngnPerUSD
}

// NGNToUSD converts a naira amount to dollars, rounded to 2 decimals.
func (c *Converter) NGNToUSD(amountNGN decimal.Decimal) decimal.Decimal {
	return amountNGN.Div(c.ngnPerUSD).Round(2)
}

// USDToNGN converts a dollar amount to whole naira.
func (c *Converter) USDToNGN(amountUSD decimal.Decimal) decimal.Decimal {
	return amountUSD.Mul(c.ngnPerUSD).Round(0)
}
