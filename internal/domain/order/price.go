package order

import "github.com/shopspring/decimal"

// cryptoDiscountRate is the flat crypto incentive. Breakdown is the
// single authoritative implementation; nothing else may recompute
// "price - 20%" on its own.
var cryptoDiscountRate = decimal.NewFromFloat(0.20)

// PriceBreakdown is the priced view of an order for a given channel.
type PriceBreakdown struct {
	Subtotal decimal.Decimal
	Discount decimal.Decimal
	Total    decimal.Decimal
}

// Breakdown computes subtotal, discount, and total for a unit price and
// payment channel. Crypto orders get 20% off; every other channel pays
// the listed price. Amounts are rounded to 2 decimal places, matching
// BRL display precision.
func Breakdown(price decimal.Decimal, channel Channel) PriceBreakdown {
	subtotal := price.Round(2)

	discount := decimal.Zero
	if channel == ChannelCrypto {
		discount = price.Mul(cryptoDiscountRate).Round(2)
	}

	return PriceBreakdown{
		Subtotal: subtotal,
		Discount: discount,
		Total:    subtotal.Sub(discount),
	}
}

// Breakdown prices the form with its currently selected channel.
func (f *Form) Breakdown() PriceBreakdown {
	return Breakdown(f.Price, f.Channel)
}
