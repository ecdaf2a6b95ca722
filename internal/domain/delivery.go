package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Delivery option kinds. The kind decides how the delivery fee is
// assigned at checkout.
const (
	DeliveryBuyer     = "buyer"     // buyer picks up, no fee
	DeliverySeller    = "seller"    // seller delivers for a flat charge
	DeliveryLogistics = "logistics" // third-party, fee from route length
)

// DeliveryOption is a seller-configured way of getting an item to the
// buyer. ChargeNet only applies to the seller kind.
type DeliveryOption struct {
	ID        string          `json:"id"`
	RegionID  string          `json:"-"`
	SellerID  string          `json:"sellerId"`
	Kind      string          `json:"kind"`
	Name      string          `json:"name"`
	ChargeNet decimal.Decimal `json:"chargeNet"`
	VATRate   decimal.Decimal `json:"vatRate"`
	CreatedAt time.Time       `json:"createdAt"`
}
