package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is a seller's listing. Prices are net; VAT rates are
// percentages. Deposit covers returnable containers (crates, jars)
// and may carry a different VAT rate than the product itself.
type Product struct {
	ID             string          `json:"id"`
	RegionID       string          `json:"-"`
	SellerID       string          `json:"sellerId"`
	Key            string          `json:"key"`
	Name           string          `json:"name"`
	Description    string          `json:"description,omitempty"`
	Unit           string          `json:"unit"`
	Amount         decimal.Decimal `json:"amount"`
	PriceNet       decimal.Decimal `json:"priceNet"`
	VATRate        decimal.Decimal `json:"vatRate"`
	DepositNet     decimal.Decimal `json:"depositNet"`
	DepositVATRate decimal.Decimal `json:"depositVatRate"`
	CreatedAt      time.Time       `json:"createdAt"`
}
