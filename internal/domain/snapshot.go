package domain

import (
	"github.com/shopspring/decimal"
)

// ItemSnapshot is the frozen copy of product, seller and delivery
// option data written into an order item at checkout. Later catalog
// edits must never change an existing order, so all pricing after
// checkout reads from here instead of the live tables.
type ItemSnapshot struct {
	ProductKey     string
	ProductName    string
	Unit           string
	Amount         decimal.Decimal
	PriceNet       decimal.Decimal
	VATRate        decimal.Decimal
	DepositNet     decimal.Decimal
	DepositVATRate decimal.Decimal

	SellerID     string
	SellerName   string
	SellerMember bool
	BuyerMember  bool

	DeliveryKind    string
	DeliveryName    string
	DeliveryCharge  decimal.Decimal
	DeliveryVATRate decimal.Decimal
}

// ToMap renders the snapshot for JSONB storage. Decimals are kept as
// strings so values survive the round trip without float drift.
func (s ItemSnapshot) ToMap() map[string]interface{} {
	return map[string]interface{}{
		"productKey":      s.ProductKey,
		"productName":     s.ProductName,
		"unit":            s.Unit,
		"amount":          s.Amount.String(),
		"priceNet":        s.PriceNet.String(),
		"vatRate":         s.VATRate.String(),
		"depositNet":      s.DepositNet.String(),
		"depositVatRate":  s.DepositVATRate.String(),
		"sellerId":        s.SellerID,
		"sellerName":      s.SellerName,
		"sellerMember":    s.SellerMember,
		"buyerMember":     s.BuyerMember,
		"deliveryKind":    s.DeliveryKind,
		"deliveryName":    s.DeliveryName,
		"deliveryCharge":  s.DeliveryCharge.String(),
		"deliveryVatRate": s.DeliveryVATRate.String(),
	}
}

// ParseItemSnapshot reads a stored snapshot map back into a typed
// value. Missing keys fall back to zero values.
func ParseItemSnapshot(raw map[string]interface{}) ItemSnapshot {
	var s ItemSnapshot
	if raw == nil {
		return s
	}
	s.ProductKey = stringAt(raw, "productKey")
	s.ProductName = stringAt(raw, "productName")
	s.Unit = stringAt(raw, "unit")
	s.Amount = decimalAt(raw, "amount")
	s.PriceNet = decimalAt(raw, "priceNet")
	s.VATRate = decimalAt(raw, "vatRate")
	s.DepositNet = decimalAt(raw, "depositNet")
	s.DepositVATRate = decimalAt(raw, "depositVatRate")
	s.SellerID = stringAt(raw, "sellerId")
	s.SellerName = stringAt(raw, "sellerName")
	s.SellerMember = boolAt(raw, "sellerMember")
	s.BuyerMember = boolAt(raw, "buyerMember")
	s.DeliveryKind = stringAt(raw, "deliveryKind")
	s.DeliveryName = stringAt(raw, "deliveryName")
	s.DeliveryCharge = decimalAt(raw, "deliveryCharge")
	s.DeliveryVATRate = decimalAt(raw, "deliveryVatRate")
	return s
}

func stringAt(raw map[string]interface{}, key string) string {
	if v, ok := raw[key].(string); ok {
		return v
	}
	return ""
}

func boolAt(raw map[string]interface{}, key string) bool {
	if v, ok := raw[key].(bool); ok {
		return v
	}
	return false
}

func decimalAt(raw map[string]interface{}, key string) decimal.Decimal {
	switch v := raw[key].(type) {
	case string:
		if d, err := decimal.NewFromString(v); err == nil {
			return d
		}
	case float64:
		return decimal.NewFromFloat(v)
	}
	return decimal.Zero
}
