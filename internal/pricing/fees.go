package pricing

import (
	"foodnet/internal/domain"

	"github.com/shopspring/decimal"
)

// FeeCalculator selects platform fee rates from region settings by
// cooperative membership and applies them to net amounts. Rates are
// configured per region; the calculator never computes them.
type FeeCalculator struct {
	settings domain.RegionSettings
}

// NewFeeCalculator builds a calculator over a region's settings.
func NewFeeCalculator(settings domain.RegionSettings) *FeeCalculator {
	return &FeeCalculator{settings: settings}
}

// SellerRate returns the seller-side fee percentage for the given
// membership status.
func (c *FeeCalculator) SellerRate(member bool) decimal.Decimal {
	if member {
		return c.settings.SellerFeeMemberRate
	}
	return c.settings.SellerFeeRate
}

// SellerFee applies the seller rate to a net amount.
func (c *FeeCalculator) SellerFee(member bool, net decimal.Decimal) decimal.Decimal {
	return net.Mul(c.SellerRate(member)).Div(hundred).Round(2)
}

// BuyerRate returns the buyer-side surcharge percentage. Cooperative
// members pay none.
func (c *FeeCalculator) BuyerRate(member bool) decimal.Decimal {
	if member {
		return decimal.Zero
	}
	return c.settings.BuyerFeeRate
}

// BuyerFee applies the buyer rate to a net amount.
func (c *FeeCalculator) BuyerFee(member bool, net decimal.Decimal) decimal.Decimal {
	return net.Mul(c.BuyerRate(member)).Div(hundred).Round(2)
}

// OwnerShare returns the slice of a collected platform fee owed to
// the region's local platform owner. Without a configured owner the
// share is zero.
func (c *FeeCalculator) OwnerShare(fee decimal.Decimal) decimal.Decimal {
	if c.settings.PlatformOwnerID == nil {
		return decimal.Zero
	}
	return fee.Mul(c.settings.OwnerShareRate).Div(hundred).Round(2)
}
