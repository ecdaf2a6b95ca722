package importer

import (
	"context"
	"strings"
	"testing"

	"foodnet/internal/domain"

	"github.com/shopspring/decimal"
)

type stubProductWriter struct {
	products []domain.Product
	err      error
}

func (s *stubProductWriter) Upsert(_ context.Context, p domain.Product) (*domain.Product, error) {
	if s.err != nil {
		return nil, s.err
	}
	s.products = append(s.products, p)
	return &p, nil
}

type stubSellerResolver struct {
	sellers map[string]*domain.User
	calls   int
}

func (s *stubSellerResolver) GetByEmail(_ context.Context, _, email string) (*domain.User, error) {
	s.calls++
	u, ok := s.sellers[email]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return u, nil
}

const sampleCSV = `key,name,description,unit,amount,price_net,vat_rate,deposit_net,deposit_vat_rate,seller_email
carrots-1kg,Carrots,Fresh from the field,kg,1,2.50,7,,,anna@demo.foodnet
apple-juice-1l,Apple juice,,l,1,3.20,7,0.15,19,anna@demo.foodnet
`

func TestRunImportsProducts(t *testing.T) {
	writer := &stubProductWriter{}
	sellers := &stubSellerResolver{sellers: map[string]*domain.User{
		"anna@demo.foodnet": {ID: "seller-1"},
	}}
	imp := NewCSVImporter(strings.NewReader(sampleCSV), writer, sellers, "r1")

	n, err := imp.Run(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != 2 {
		t.Fatalf("expected 2 imported, got %d", n)
	}
	if sellers.calls != 1 {
		t.Fatalf("seller lookup not cached: %d calls", sellers.calls)
	}

	first := writer.products[0]
	if first.Key != "carrots-1kg" || first.SellerID != "seller-1" || first.RegionID != "r1" {
		t.Fatalf("unexpected product: %+v", first)
	}
	if !first.PriceNet.Equal(decimalFrom(t, "2.50")) {
		t.Fatalf("unexpected price: %s", first.PriceNet)
	}
	// Empty deposit falls back to zero with the standard deposit VAT.
	if !first.DepositNet.IsZero() || !first.DepositVATRate.Equal(decimalFrom(t, "19")) {
		t.Fatalf("unexpected deposit: %+v", first)
	}
}

func TestRunUnknownSeller(t *testing.T) {
	writer := &stubProductWriter{}
	sellers := &stubSellerResolver{sellers: map[string]*domain.User{}}
	imp := NewCSVImporter(strings.NewReader(sampleCSV), writer, sellers, "r1")

	if _, err := imp.Run(context.Background()); err == nil {
		t.Fatalf("expected error for unknown seller")
	}
}

func TestRunMissingColumn(t *testing.T) {
	csv := "key,name\ncarrots,Carrots\n"
	imp := NewCSVImporter(strings.NewReader(csv), &stubProductWriter{}, &stubSellerResolver{}, "r1")

	if _, err := imp.Run(context.Background()); err == nil {
		t.Fatalf("expected error for missing columns")
	}
}

func TestRunBadPrice(t *testing.T) {
	csv := "key,name,price_net,seller_email\ncarrots,Carrots,not-a-number,anna@demo.foodnet\n"
	sellers := &stubSellerResolver{sellers: map[string]*domain.User{
		"anna@demo.foodnet": {ID: "seller-1"},
	}}
	imp := NewCSVImporter(strings.NewReader(csv), &stubProductWriter{}, sellers, "r1")

	if _, err := imp.Run(context.Background()); err == nil {
		t.Fatalf("expected error for bad price")
	}
}

func decimalFrom(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	return decimal.RequireFromString(s)
}
