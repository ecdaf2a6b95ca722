package pricing

import "github.com/shopspring/decimal"

var (
	one      = decimal.NewFromInt(1)
	hundred  = decimal.NewFromInt(100)
	thousand = decimal.NewFromInt(1000)
)

// Price is a net amount with a VAT rate in percent. It is a value
// built per calculation and never persisted on its own.
type Price struct {
	Net     decimal.Decimal
	VATRate decimal.Decimal
}

// New builds a Price from a net amount and a VAT percentage.
func New(net, vatRate decimal.Decimal) Price {
	return Price{Net: net, VATRate: vatRate}
}

// Gross returns net * (1 + vat/100) rounded to two decimal places,
// half away from zero.
func (p Price) Gross() decimal.Decimal {
	return p.Net.Mul(one.Add(p.VATRate.Div(hundred))).Round(2)
}

// VAT returns the tax portion of the gross amount.
func (p Price) VAT() decimal.Decimal {
	return p.Gross().Sub(p.Net.Round(2))
}
