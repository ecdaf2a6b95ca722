package pricing

import (
	"testing"

	"foodnet/internal/domain"
)

func logisticsSettings() domain.RegionSettings {
	return domain.RegionSettings{
		LogisticsBaseFee:   dec("2.50"),
		LogisticsPerKmRate: dec("0.30"),
		LogisticsVATRate:   dec("19"),
	}
}

func TestDeliveryFeeBuyerArranged(t *testing.T) {
	opt := domain.DeliveryOption{Kind: domain.DeliveryBuyer}
	fee := DeliveryFee(opt, 0, logisticsSettings())
	if !fee.Net.IsZero() {
		t.Fatalf("expected zero fee for pickup, got %s", fee.Net)
	}
}

func TestDeliveryFeeSellerArranged(t *testing.T) {
	opt := domain.DeliveryOption{Kind: domain.DeliverySeller, ChargeNet: dec("4.50"), VATRate: dec("7")}
	fee := DeliveryFee(opt, 0, logisticsSettings())
	if !fee.Net.Equal(dec("4.50")) {
		t.Fatalf("expected flat 4.50, got %s", fee.Net)
	}
	if !fee.Gross().Equal(dec("4.82")) {
		t.Fatalf("expected gross 4.82, got %s", fee.Gross())
	}
}

func TestDeliveryFeeLogistics(t *testing.T) {
	opt := domain.DeliveryOption{Kind: domain.DeliveryLogistics}
	// 12 km route: 2.50 + 12 * 0.30 = 6.10
	fee := DeliveryFee(opt, 12000, logisticsSettings())
	if !fee.Net.Equal(dec("6.10")) {
		t.Fatalf("expected 6.10, got %s", fee.Net)
	}
	if !fee.VATRate.Equal(dec("19")) {
		t.Fatalf("expected logistics VAT rate, got %s", fee.VATRate)
	}
}

func TestDeliveryFeeLogisticsPartialKm(t *testing.T) {
	opt := domain.DeliveryOption{Kind: domain.DeliveryLogistics}
	// 3.725 km: 2.50 + 1.1175 = 3.6175 -> 3.62
	fee := DeliveryFee(opt, 3725, logisticsSettings())
	if !fee.Net.Equal(dec("3.62")) {
		t.Fatalf("expected 3.62, got %s", fee.Net)
	}
}

func TestDeliveryFeeUnknownKind(t *testing.T) {
	fee := DeliveryFee(domain.DeliveryOption{Kind: "carrier-pigeon"}, 500, logisticsSettings())
	if !fee.Net.IsZero() {
		t.Fatalf("expected zero fee for unknown kind, got %s", fee.Net)
	}
}
