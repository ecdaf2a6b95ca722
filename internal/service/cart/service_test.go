package cart

import (
	"context"
	"testing"
	"time"

	"foodnet/internal/domain"
	orderrepo "foodnet/internal/repository/order"

	"github.com/shopspring/decimal"
)

type memOrderRepo struct {
	cart    *domain.Order
	nextID  int
	created bool
}

func (m *memOrderRepo) CreateCart(_ context.Context, regionID, buyerID string) (*domain.Order, error) {
	m.created = true
	m.cart = &domain.Order{ID: "cart-1", RegionID: regionID, BuyerID: buyerID, Status: domain.OrderStatusCart}
	return m.cart, nil
}

func (m *memOrderRepo) GetByID(_ context.Context, _, id string) (*domain.Order, error) {
	if m.cart == nil || m.cart.ID != id {
		return nil, domain.ErrNotFound
	}
	return m.cart, nil
}

func (m *memOrderRepo) GetActiveCart(_ context.Context, _, _ string) (*domain.Order, error) {
	if m.cart == nil {
		return nil, domain.ErrNotFound
	}
	return m.cart, nil
}

func (m *memOrderRepo) AddItem(_ context.Context, orderID string, product domain.Product, quantity int, deliveryOptionID *string) error {
	for i := range m.cart.Items {
		if m.cart.Items[i].ProductID == product.ID {
			m.cart.Items[i].Quantity += quantity
			return nil
		}
	}
	m.nextID++
	m.cart.Items = append(m.cart.Items, domain.OrderItem{
		ID:               "item-" + product.ID,
		OrderID:          orderID,
		ProductID:        product.ID,
		Quantity:         quantity,
		DeliveryOptionID: deliveryOptionID,
	})
	return nil
}

func (m *memOrderRepo) ChangeItemQuantity(_ context.Context, _, itemID string, quantity int) error {
	for i := range m.cart.Items {
		if m.cart.Items[i].ID == itemID {
			if quantity <= 0 {
				m.cart.Items = append(m.cart.Items[:i], m.cart.Items[i+1:]...)
			} else {
				m.cart.Items[i].Quantity = quantity
			}
			return nil
		}
	}
	return domain.ErrNotFound
}

func (m *memOrderRepo) SetItemDeliveryOption(_ context.Context, _, itemID, optionID string, latestDeliveryDate *time.Time) error {
	for i := range m.cart.Items {
		if m.cart.Items[i].ID == itemID {
			m.cart.Items[i].DeliveryOptionID = &optionID
			m.cart.Items[i].LatestDeliveryDate = latestDeliveryDate
			return nil
		}
	}
	return domain.ErrNotFound
}

func (m *memOrderRepo) Finalize(_ context.Context, _ orderrepo.FinalizeInput) error {
	return nil
}

func (m *memOrderRepo) SetStatus(_ context.Context, _, _, _ string) error { return nil }

func (m *memOrderRepo) SetProcessed(_ context.Context, _, _ string) error { return nil }

func (m *memOrderRepo) GetItem(_ context.Context, _ string) (*domain.OrderItem, error) {
	return nil, domain.ErrNotFound
}

func (m *memOrderRepo) UpdateItemDeliveryFee(_ context.Context, _ string, _, _, _ decimal.Decimal) error {
	return nil
}

type stubProductRepo struct {
	products map[string]*domain.Product
}

func (s *stubProductRepo) GetByID(_ context.Context, _, id string) (*domain.Product, error) {
	p, ok := s.products[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return p, nil
}

type stubOptionRepo struct {
	options map[string]*domain.DeliveryOption
}

func (s *stubOptionRepo) GetByID(_ context.Context, _, id string) (*domain.DeliveryOption, error) {
	o, ok := s.options[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return o, nil
}

func newTestService(orders *memOrderRepo) *Service {
	products := &stubProductRepo{products: map[string]*domain.Product{
		"p1": {ID: "p1", SellerID: "seller-1", Name: "Carrots", PriceNet: decimal.RequireFromString("2.50")},
	}}
	options := &stubOptionRepo{options: map[string]*domain.DeliveryOption{
		"opt-own":   {ID: "opt-own", SellerID: "seller-1", Kind: domain.DeliverySeller},
		"opt-other": {ID: "opt-other", SellerID: "seller-2", Kind: domain.DeliverySeller},
		"opt-3pl":   {ID: "opt-3pl", SellerID: "seller-2", Kind: domain.DeliveryLogistics},
	}}
	return New(orders, products, options)
}

func TestUpdateCreatesCartOnFirstUse(t *testing.T) {
	orders := &memOrderRepo{}
	svc := newTestService(orders)

	got, err := svc.Update(context.Background(), "r1", "buyer-1", UpdateInput{
		Actions: []UpdateAction{{Action: "addItem", ProductID: "p1", Quantity: 2}},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !orders.created {
		t.Fatalf("expected cart to be created")
	}
	if len(got.Items) != 1 || got.Items[0].Quantity != 2 {
		t.Fatalf("unexpected items: %+v", got.Items)
	}
}

func TestUpdateAddSameProductTwice(t *testing.T) {
	orders := &memOrderRepo{}
	svc := newTestService(orders)

	_, err := svc.Update(context.Background(), "r1", "buyer-1", UpdateInput{
		Actions: []UpdateAction{
			{Action: "addItem", ProductID: "p1", Quantity: 1},
			{Action: "addItem", ProductID: "p1", Quantity: 3},
		},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(orders.cart.Items) != 1 {
		t.Fatalf("expected one merged line, got %d", len(orders.cart.Items))
	}
	if orders.cart.Items[0].Quantity != 4 {
		t.Fatalf("expected quantity 4, got %d", orders.cart.Items[0].Quantity)
	}
}

func TestUpdateNoActions(t *testing.T) {
	svc := newTestService(&memOrderRepo{})
	_, err := svc.Update(context.Background(), "r1", "buyer-1", UpdateInput{})
	if !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestUpdateUnknownAction(t *testing.T) {
	svc := newTestService(&memOrderRepo{})
	_, err := svc.Update(context.Background(), "r1", "buyer-1", UpdateInput{
		Actions: []UpdateAction{{Action: "explode"}},
	})
	if !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestUpdateUnknownProduct(t *testing.T) {
	svc := newTestService(&memOrderRepo{})
	_, err := svc.Update(context.Background(), "r1", "buyer-1", UpdateInput{
		Actions: []UpdateAction{{Action: "addItem", ProductID: "nope", Quantity: 1}},
	})
	if !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestUpdateRejectsForeignSellerOption(t *testing.T) {
	svc := newTestService(&memOrderRepo{})
	_, err := svc.Update(context.Background(), "r1", "buyer-1", UpdateInput{
		Actions: []UpdateAction{{Action: "addItem", ProductID: "p1", Quantity: 1, DeliveryOptionID: "opt-other"}},
	})
	if !domain.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestUpdateSetDeliveryOption(t *testing.T) {
	orders := &memOrderRepo{}
	svc := newTestService(orders)

	got, err := svc.Update(context.Background(), "r1", "buyer-1", UpdateInput{
		Actions: []UpdateAction{
			{Action: "addItem", ProductID: "p1", Quantity: 1},
			{Action: "setDeliveryOption", ItemID: "item-p1", DeliveryOptionID: "opt-3pl", LatestDeliveryDate: "2031-05-20"},
		},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	item := got.Items[0]
	if item.DeliveryOptionID == nil || *item.DeliveryOptionID != "opt-3pl" {
		t.Fatalf("expected option opt-3pl, got %+v", item.DeliveryOptionID)
	}
	if item.LatestDeliveryDate == nil || item.LatestDeliveryDate.Format("2006-01-02") != "2031-05-20" {
		t.Fatalf("unexpected latest delivery date: %+v", item.LatestDeliveryDate)
	}
}

func TestUpdateRemoveItem(t *testing.T) {
	orders := &memOrderRepo{}
	svc := newTestService(orders)

	got, err := svc.Update(context.Background(), "r1", "buyer-1", UpdateInput{
		Actions: []UpdateAction{
			{Action: "addItem", ProductID: "p1", Quantity: 2},
			{Action: "removeItem", ItemID: "item-p1"},
		},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got.Items) != 0 {
		t.Fatalf("expected empty cart, got %+v", got.Items)
	}
}
