package pricing

import (
	"foodnet/internal/domain"

	"github.com/shopspring/decimal"
)

// ItemQuote is the full pricing breakdown for one order item. The
// platform and buyer fees are accounting figures computed on the
// product net only; they are not part of TotalGross.
type ItemQuote struct {
	ProductNet       decimal.Decimal
	ProductGross     decimal.Decimal
	DepositNet       decimal.Decimal
	DepositGross     decimal.Decimal
	DeliveryFeeNet   decimal.Decimal
	DeliveryFeeGross decimal.Decimal
	TotalNet         decimal.Decimal
	TotalGross       decimal.Decimal
	PlatformFeeNet   decimal.Decimal
	BuyerFeeNet      decimal.Decimal
}

// QuoteItem prices quantity units of a product plus container deposit
// and delivery fee. VAT is applied per component, since product,
// deposit and delivery may carry different rates, and the gross parts
// are summed.
func QuoteItem(p domain.Product, quantity int, deliveryFee Price, calc *FeeCalculator, sellerMember, buyerMember bool) ItemQuote {
	qty := decimal.NewFromInt(int64(quantity))
	productNet := p.PriceNet.Mul(qty)
	depositNet := p.DepositNet.Mul(qty)

	q := ItemQuote{
		ProductNet:       productNet,
		ProductGross:     Price{Net: productNet, VATRate: p.VATRate}.Gross(),
		DepositNet:       depositNet,
		DepositGross:     Price{Net: depositNet, VATRate: p.DepositVATRate}.Gross(),
		DeliveryFeeNet:   deliveryFee.Net,
		DeliveryFeeGross: deliveryFee.Gross(),
	}
	q.TotalNet = productNet.Add(depositNet).Add(deliveryFee.Net)
	q.TotalGross = q.ProductGross.Add(q.DepositGross).Add(q.DeliveryFeeGross)
	q.PlatformFeeNet = calc.SellerFee(sellerMember, productNet)
	q.BuyerFeeNet = calc.BuyerFee(buyerMember, productNet)
	return q
}
