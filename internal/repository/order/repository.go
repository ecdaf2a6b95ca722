package order

import (
	"context"
	"time"

	"foodnet/internal/domain"
	"github.com/shopspring/decimal"
)

// FinalizedItem carries the frozen snapshot and pricing for one item
// at checkout time.
type FinalizedItem struct {
	ItemID             string
	Snapshot           map[string]interface{}
	LatestDeliveryDate *time.Time
	DeliveryFeeNet     decimal.Decimal
	PlatformFeeNet     decimal.Decimal
	BuyerFeeNet        decimal.Decimal
	TotalNet           decimal.Decimal
	TotalGross         decimal.Decimal
}

// FinalizeInput transitions a cart to an ordered order in one
// transaction.
type FinalizeInput struct {
	OrderID              string
	DeliveryAddress      string
	EarliestDeliveryDate time.Time
	Items                []FinalizedItem
}

type Repository interface {
	CreateCart(ctx context.Context, regionID, buyerID string) (*domain.Order, error)
	GetByID(ctx context.Context, regionID, id string) (*domain.Order, error)
	GetActiveCart(ctx context.Context, regionID, buyerID string) (*domain.Order, error)
	AddItem(ctx context.Context, orderID string, product domain.Product, quantity int, deliveryOptionID *string) error
	ChangeItemQuantity(ctx context.Context, orderID, itemID string, quantity int) error
	SetItemDeliveryOption(ctx context.Context, orderID, itemID, optionID string, latestDeliveryDate *time.Time) error
	Finalize(ctx context.Context, in FinalizeInput) error
	SetStatus(ctx context.Context, regionID, orderID, status string) error
	SetProcessed(ctx context.Context, regionID, orderID string) error
	GetItem(ctx context.Context, itemID string) (*domain.OrderItem, error)
	UpdateItemDeliveryFee(ctx context.Context, itemID string, feeNet, totalNet, totalGross decimal.Decimal) error
}
