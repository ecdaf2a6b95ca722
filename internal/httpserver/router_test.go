package httpserver

import (
	"context"
	"errors"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"foodnet/internal/domain"
	"foodnet/internal/payment"
	cartsvc "foodnet/internal/service/cart"
	checkoutsvc "foodnet/internal/service/checkout"
	usersvc "foodnet/internal/service/user"

	"github.com/gin-gonic/gin"
)

func logDiscard() *log.Logger {
	return log.New(io.Discard, "", 0)
}

type stubRegionRepo struct {
	region *domain.Region
	err    error
}

func (s *stubRegionRepo) GetByKey(_ context.Context, _ string) (*domain.Region, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.region, nil
}

type stubUserService struct {
	user      *domain.User
	signupErr error
	loginErr  error
	lookupErr error
}

func (s *stubUserService) Signup(_ context.Context, _ string, _ usersvc.SignupInput) (*domain.User, error) {
	return s.user, s.signupErr
}

func (s *stubUserService) Login(_ context.Context, _, _, _ string) (*domain.User, string, string, error) {
	if s.loginErr != nil {
		return nil, "", "", s.loginErr
	}
	return s.user, "access-token", "refresh-token", nil
}

func (s *stubUserService) LookupByToken(_ context.Context, _, _ string) (*domain.User, error) {
	if s.lookupErr != nil {
		return nil, s.lookupErr
	}
	if s.user == nil {
		return nil, usersvc.ErrInvalidToken
	}
	return s.user, nil
}

func (s *stubUserService) AccessTTLSeconds() int { return 3600 }

type stubProductRepo struct {
	products []domain.Product
}

func (s *stubProductRepo) ListByRegion(_ context.Context, _ string) ([]domain.Product, error) {
	return s.products, nil
}

type stubCartService struct {
	cart *domain.Order
	err  error
}

func (s *stubCartService) Get(_ context.Context, _, _ string) (*domain.Order, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.cart, nil
}

func (s *stubCartService) Update(_ context.Context, _, _ string, _ cartsvc.UpdateInput) (*domain.Order, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.cart, nil
}

type stubCheckoutService struct {
	order *domain.Order
	err   error
}

func (s *stubCheckoutService) Checkout(_ context.Context, _ string, _ domain.User, _ checkoutsvc.Input) (*domain.Order, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.order, nil
}

type stubOrderStore struct {
	order     *domain.Order
	processed bool
}

func (s *stubOrderStore) GetByID(_ context.Context, _, id string) (*domain.Order, error) {
	if s.order == nil || s.order.ID != id {
		return nil, domain.ErrNotFound
	}
	cp := *s.order
	return &cp, nil
}

func (s *stubOrderStore) SetProcessed(_ context.Context, _, _ string) error {
	s.processed = true
	s.order.Processed = true
	return nil
}

type stubPaymentService struct {
	session *payment.Session
	err     error
	notErr  error
}

func (s *stubPaymentService) PayOrder(_ context.Context, _ string, _ domain.User, _ string) (*payment.Session, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.session, nil
}

func (s *stubPaymentService) HandleNotification(_ context.Context, _ string, _ payment.Notification) error {
	return s.notErr
}

type stubJobService struct {
	jobs []domain.Job
	job  *domain.Job
	err  error
}

func (s *stubJobService) ListOpen(_ context.Context, _ string) ([]domain.Job, error) {
	return s.jobs, nil
}

func (s *stubJobService) ListMine(_ context.Context, _, _ string) ([]domain.Job, error) {
	return s.jobs, nil
}

func (s *stubJobService) Claim(_ context.Context, _, _, _ string) (*domain.Job, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.job, nil
}

func (s *stubJobService) Unclaim(_ context.Context, _, _, _ string) (*domain.Job, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.job, nil
}

type stubInvoiceRenderer struct{}

func (s *stubInvoiceRenderer) Invoice(_ *domain.Order, _ *domain.Region, _ *domain.User) ([]byte, error) {
	return []byte("%PDF-1.4 invoice"), nil
}

func (s *stubInvoiceRenderer) DeliveryNote(_ *domain.Order, _ *domain.Region, _ *domain.User) ([]byte, error) {
	return []byte("%PDF-1.4 note"), nil
}

func testRegion() *domain.Region {
	return &domain.Region{ID: "r1", Key: "uckermark", Name: "Uckermark", Currency: "EUR"}
}

func testDeps(overrides func(*Deps)) Deps {
	deps := Deps{
		Regions:  &stubRegionRepo{region: testRegion()},
		Users:    &stubUserService{},
		Products: &stubProductRepo{},
		Cart:     &stubCartService{},
		Checkout: &stubCheckoutService{},
		Orders:   &stubOrderStore{},
		Payments: &stubPaymentService{},
		Jobs:     &stubJobService{},
		Invoices: &stubInvoiceRenderer{},
	}
	if overrides != nil {
		overrides(&deps)
	}
	return deps
}

func newTestRouter(t *testing.T, deps Deps) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	router, err := buildRouter(logDiscard(), nil, deps)
	if err != nil {
		t.Fatalf("build router: %v", err)
	}
	return router
}

func TestRegionMiddleware_UnknownRegion(t *testing.T) {
	router := newTestRouter(t, testDeps(func(d *Deps) {
		d.Regions = &stubRegionRepo{err: domain.ErrNotFound}
	}))

	req := httptest.NewRequest(http.MethodGet, "/nowhere/products", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestRegionMiddleware_RepoError(t *testing.T) {
	router := newTestRouter(t, testDeps(func(d *Deps) {
		d.Regions = &stubRegionRepo{err: errors.New("boom")}
	}))

	req := httptest.NewRequest(http.MethodGet, "/uckermark/products", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
}

func TestHealthz(t *testing.T) {
	router := newTestRouter(t, testDeps(nil))

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestListProducts(t *testing.T) {
	router := newTestRouter(t, testDeps(func(d *Deps) {
		d.Products = &stubProductRepo{products: []domain.Product{{ID: "p1", Name: "Carrots"}}}
	}))

	req := httptest.NewRequest(http.MethodGet, "/uckermark/products", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rec.Code, rec.Body.String())
	}
	if body := rec.Body.String(); !strings.Contains(body, `"total":1`) || !strings.Contains(body, "Carrots") {
		t.Fatalf("unexpected body: %s", body)
	}
}
