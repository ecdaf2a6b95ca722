package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order states. An order starts life as the buyer's cart and moves
// one-way through checkout and payment.
const (
	OrderStatusCart    = "cart"
	OrderStatusOrdered = "ordered"
	OrderStatusPaid    = "paid"
)

// Order owns a collection of items. Processed marks the end of
// logistics handling: once set, delivery fees are frozen and jobs can
// no longer be claimed.
type Order struct {
	ID                   string          `json:"id"`
	RegionID             string          `json:"-"`
	BuyerID              string          `json:"buyerId"`
	Status               string          `json:"status"`
	Processed            bool            `json:"processed"`
	DeliveryAddress      string          `json:"deliveryAddress,omitempty"`
	EarliestDeliveryDate *time.Time      `json:"earliestDeliveryDate,omitempty"`
	TotalNet             decimal.Decimal `json:"totalNet"`
	TotalGross           decimal.Decimal `json:"totalGross"`
	CreatedAt            time.Time       `json:"createdAt"`
	Items                []OrderItem     `json:"items,omitempty"`
}

// OrderItem references a product while the order is a cart. At
// checkout the product and seller are frozen into Snapshot so later
// catalog edits never change the order's pricing.
type OrderItem struct {
	ID                 string                 `json:"id"`
	OrderID            string                 `json:"orderId"`
	ProductID          string                 `json:"productId"`
	DeliveryOptionID   *string                `json:"deliveryOptionId,omitempty"`
	Quantity           int                    `json:"quantity"`
	LatestDeliveryDate *time.Time             `json:"latestDeliveryDate,omitempty"`
	Snapshot           map[string]interface{} `json:"snapshot,omitempty"`
	DeliveryFeeNet     decimal.Decimal        `json:"deliveryFeeNet"`
	PlatformFeeNet     decimal.Decimal        `json:"platformFeeNet"`
	BuyerFeeNet        decimal.Decimal        `json:"buyerFeeNet"`
	TotalNet           decimal.Decimal        `json:"totalNet"`
	TotalGross         decimal.Decimal        `json:"totalGross"`
	CreatedAt          time.Time              `json:"createdAt"`
}
