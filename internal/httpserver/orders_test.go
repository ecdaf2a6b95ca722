package httpserver

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"foodnet/internal/domain"
)

func authedReq(method, path string) *http.Request {
	req := httptest.NewRequest(method, path, nil)
	req.Header.Set("Authorization", "Bearer some-token")
	return req
}

func TestGetOrder_OwnOrder(t *testing.T) {
	router := newTestRouter(t, testDeps(func(d *Deps) {
		d.Users = &stubUserService{user: &domain.User{ID: "buyer-1", Roles: []string{domain.RoleBuyer}}}
		d.Orders = &stubOrderStore{order: &domain.Order{ID: "order-1", BuyerID: "buyer-1", Status: domain.OrderStatusOrdered}}
	}))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, authedReq(http.MethodGet, "/uckermark/orders/order-1"))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), `"status":"ordered"`) {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}

func TestGetOrder_ForeignBuyerHidden(t *testing.T) {
	router := newTestRouter(t, testDeps(func(d *Deps) {
		d.Users = &stubUserService{user: &domain.User{ID: "someone-else", Roles: []string{domain.RoleBuyer}}}
		d.Orders = &stubOrderStore{order: &domain.Order{ID: "order-1", BuyerID: "buyer-1"}}
	}))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, authedReq(http.MethodGet, "/uckermark/orders/order-1"))

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestProcessOrder_RequiresSellerRole(t *testing.T) {
	router := newTestRouter(t, testDeps(func(d *Deps) {
		d.Users = &stubUserService{user: &domain.User{ID: "buyer-1", Roles: []string{domain.RoleBuyer}}}
	}))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, authedReq(http.MethodPost, "/uckermark/orders/order-1/process"))

	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
}

func TestProcessOrder_Success(t *testing.T) {
	orders := &stubOrderStore{order: &domain.Order{ID: "order-1", BuyerID: "buyer-1", Status: domain.OrderStatusPaid}}
	router := newTestRouter(t, testDeps(func(d *Deps) {
		d.Users = &stubUserService{user: &domain.User{ID: "seller-1", Roles: []string{domain.RoleSeller}}}
		d.Orders = orders
	}))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, authedReq(http.MethodPost, "/uckermark/orders/order-1/process"))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rec.Code, rec.Body.String())
	}
	if !orders.processed {
		t.Fatalf("order not marked processed")
	}
}

func TestProcessOrder_CartRejected(t *testing.T) {
	router := newTestRouter(t, testDeps(func(d *Deps) {
		d.Users = &stubUserService{user: &domain.User{ID: "seller-1", Roles: []string{domain.RoleSeller}}}
		d.Orders = &stubOrderStore{order: &domain.Order{ID: "order-1", BuyerID: "buyer-1", Status: domain.OrderStatusCart}}
	}))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, authedReq(http.MethodPost, "/uckermark/orders/order-1/process"))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d body=%s", rec.Code, rec.Body.String())
	}
}

func TestInvoice_ReturnsPDF(t *testing.T) {
	router := newTestRouter(t, testDeps(func(d *Deps) {
		d.Users = &stubUserService{user: &domain.User{ID: "buyer-1", Roles: []string{domain.RoleBuyer}}}
		d.Orders = &stubOrderStore{order: &domain.Order{ID: "order-1", BuyerID: "buyer-1", Status: domain.OrderStatusPaid}}
	}))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, authedReq(http.MethodGet, "/uckermark/orders/order-1/invoice"))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/pdf" {
		t.Fatalf("unexpected content type: %s", ct)
	}
}

func TestInvoice_CartRejected(t *testing.T) {
	router := newTestRouter(t, testDeps(func(d *Deps) {
		d.Users = &stubUserService{user: &domain.User{ID: "buyer-1", Roles: []string{domain.RoleBuyer}}}
		d.Orders = &stubOrderStore{order: &domain.Order{ID: "order-1", BuyerID: "buyer-1", Status: domain.OrderStatusCart}}
	}))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, authedReq(http.MethodGet, "/uckermark/orders/order-1/invoice"))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}
