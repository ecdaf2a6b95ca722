package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Region is the top-level scope: every user, product and order belongs
// to exactly one region.
type Region struct {
	ID        string    `json:"id"`
	Key       string    `json:"key"`
	Name      string    `json:"name"`
	Currency  string    `json:"currency"`
	CreatedAt time.Time `json:"createdAt"`
}

// RegionSettings holds the per-region fee configuration read during
// pricing. Rates are percentages (10 means 10%).
type RegionSettings struct {
	RegionID string `json:"-"`
	// Seller-side platform fee rates, selected by cooperative membership.
	SellerFeeMemberRate decimal.Decimal `json:"sellerFeeMemberRate"`
	SellerFeeRate       decimal.Decimal `json:"sellerFeeRate"`
	// Buyer-side surcharge for non-members; members pay none.
	BuyerFeeRate decimal.Decimal `json:"buyerFeeRate"`
	// Orders below this net value are rejected at checkout.
	MinPurchaseValue decimal.Decimal `json:"minPurchaseValue"`
	// Third-party delivery pricing.
	LogisticsBaseFee   decimal.Decimal `json:"logisticsBaseFee"`
	LogisticsPerKmRate decimal.Decimal `json:"logisticsPerKmRate"`
	LogisticsVATRate   decimal.Decimal `json:"logisticsVatRate"`
	// Share of collected platform fees forwarded to a local platform
	// owner. Nil PlatformOwnerID means no owner is configured and the
	// share is zero.
	PlatformOwnerID *string         `json:"platformOwnerId,omitempty"`
	OwnerShareRate  decimal.Decimal `json:"ownerShareRate"`
}
