package pricing

import (
	"testing"

	"foodnet/internal/domain"
)

func TestQuoteItemMixedVATRates(t *testing.T) {
	p := domain.Product{
		PriceNet:       dec("10.00"),
		VATRate:        dec("7"),
		DepositNet:     dec("0.50"),
		DepositVATRate: dec("19"),
	}
	calc := NewFeeCalculator(testSettings())
	fee := Price{Net: dec("5.00"), VATRate: dec("19")}

	q := QuoteItem(p, 2, fee, calc, true, true)

	if !q.ProductNet.Equal(dec("20.00")) {
		t.Fatalf("product net: got %s", q.ProductNet)
	}
	if !q.ProductGross.Equal(dec("21.40")) {
		t.Fatalf("product gross: got %s", q.ProductGross)
	}
	if !q.DepositGross.Equal(dec("1.19")) {
		t.Fatalf("deposit gross: got %s", q.DepositGross)
	}
	if !q.DeliveryFeeGross.Equal(dec("5.95")) {
		t.Fatalf("delivery gross: got %s", q.DeliveryFeeGross)
	}
	if !q.TotalNet.Equal(dec("26.00")) {
		t.Fatalf("total net: got %s", q.TotalNet)
	}
	if !q.TotalGross.Equal(dec("28.54")) {
		t.Fatalf("total gross: got %s", q.TotalGross)
	}
}

func TestQuoteItemPlatformFeeOnProductNetOnly(t *testing.T) {
	p := domain.Product{
		PriceNet:       dec("100"),
		VATRate:        dec("7"),
		DepositNet:     dec("5"),
		DepositVATRate: dec("19"),
	}
	calc := NewFeeCalculator(testSettings())
	fee := Price{Net: dec("8.00"), VATRate: dec("19")}

	q := QuoteItem(p, 1, fee, calc, true, false)

	// 10% of the 100 product net; deposit and delivery excluded.
	if !q.PlatformFeeNet.Equal(dec("10")) {
		t.Fatalf("platform fee: got %s", q.PlatformFeeNet)
	}
	// 2% buyer surcharge for the non-member buyer, also net-based.
	if !q.BuyerFeeNet.Equal(dec("2")) {
		t.Fatalf("buyer fee: got %s", q.BuyerFeeNet)
	}
}

func TestQuoteItemNoDeposit(t *testing.T) {
	p := domain.Product{PriceNet: dec("3.20"), VATRate: dec("7")}
	calc := NewFeeCalculator(testSettings())

	q := QuoteItem(p, 3, Price{}, calc, false, true)

	if !q.DepositNet.IsZero() || !q.DepositGross.IsZero() {
		t.Fatalf("expected zero deposit, got %s/%s", q.DepositNet, q.DepositGross)
	}
	if !q.TotalNet.Equal(dec("9.60")) {
		t.Fatalf("total net: got %s", q.TotalNet)
	}
	if !q.TotalGross.Equal(dec("10.27")) {
		t.Fatalf("total gross: got %s", q.TotalGross)
	}
}
