package pricing

import (
	"foodnet/internal/domain"

	"github.com/shopspring/decimal"
)

// DeliveryFee assigns the fee for a delivery option. Buyer-arranged
// pickup is free, seller delivery carries the seller's flat charge,
// and third-party logistics derives the fee from the route length the
// caller obtained from the routing service.
func DeliveryFee(opt domain.DeliveryOption, routeLengthM int64, s domain.RegionSettings) Price {
	switch opt.Kind {
	case domain.DeliverySeller:
		return Price{Net: opt.ChargeNet, VATRate: opt.VATRate}
	case domain.DeliveryLogistics:
		km := decimal.NewFromInt(routeLengthM).Div(thousand)
		net := s.LogisticsBaseFee.Add(s.LogisticsPerKmRate.Mul(km)).Round(2)
		return Price{Net: net, VATRate: s.LogisticsVATRate}
	default:
		return Price{}
	}
}
