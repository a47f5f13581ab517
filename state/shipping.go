package state

import "github.com/shopspring/decimal"

// FreeGiftThreshold is the cart total that unlocks the free gift.
var FreeGiftThreshold = decimal.NewFromInt(100)

var hundred = decimal.NewFromInt(100)

// ShippingProgress is the drawer's progress bar towards FreeGiftThreshold.
type ShippingProgress struct {
	Percent   decimal.Decimal
	Remaining decimal.Decimal
	Unlocked  bool
}

func NewShippingProgress(total decimal.Decimal) ShippingProgress {
	percent := decimal.Min(total.Div(FreeGiftThreshold).Mul(hundred), hundred)
	return ShippingProgress{
		Percent:   percent,
		Remaining: decimal.Max(FreeGiftThreshold.Sub(total), decimal.Zero),
		Unlocked:  percent.GreaterThanOrEqual(hundred),
	}
}
