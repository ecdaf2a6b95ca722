package pricing

import (
	"testing"

	"foodnet/internal/domain"
)

func testSettings() domain.RegionSettings {
	return domain.RegionSettings{
		SellerFeeMemberRate: dec("10"),
		SellerFeeRate:       dec("12"),
		BuyerFeeRate:        dec("2"),
		OwnerShareRate:      dec("25"),
	}
}

func TestSellerFeeMember(t *testing.T) {
	calc := NewFeeCalculator(testSettings())
	got := calc.SellerFee(true, dec("100"))
	if !got.Equal(dec("10")) {
		t.Fatalf("expected 10, got %s", got)
	}
}

func TestSellerFeeNonMember(t *testing.T) {
	calc := NewFeeCalculator(testSettings())
	got := calc.SellerFee(false, dec("100"))
	if !got.Equal(dec("12")) {
		t.Fatalf("expected 12, got %s", got)
	}
}

func TestBuyerFeeMemberIsZero(t *testing.T) {
	calc := NewFeeCalculator(testSettings())
	got := calc.BuyerFee(true, dec("100"))
	if !got.IsZero() {
		t.Fatalf("expected 0, got %s", got)
	}
}

func TestBuyerFeeNonMember(t *testing.T) {
	calc := NewFeeCalculator(testSettings())
	got := calc.BuyerFee(false, dec("100"))
	if !got.Equal(dec("2")) {
		t.Fatalf("expected 2, got %s", got)
	}
}

func TestFeeRounding(t *testing.T) {
	calc := NewFeeCalculator(testSettings())
	// 12% of 10.49 = 1.2588
	got := calc.SellerFee(false, dec("10.49"))
	if !got.Equal(dec("1.26")) {
		t.Fatalf("expected 1.26, got %s", got)
	}
}

func TestOwnerShareWithoutOwner(t *testing.T) {
	calc := NewFeeCalculator(testSettings())
	got := calc.OwnerShare(dec("10"))
	if !got.IsZero() {
		t.Fatalf("expected 0 share without platform owner, got %s", got)
	}
}

func TestOwnerShareWithOwner(t *testing.T) {
	s := testSettings()
	owner := "owner-id"
	s.PlatformOwnerID = &owner
	calc := NewFeeCalculator(s)
	got := calc.OwnerShare(dec("10"))
	if !got.Equal(dec("2.50")) {
		t.Fatalf("expected 2.50, got %s", got)
	}
}
