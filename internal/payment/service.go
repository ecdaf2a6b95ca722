package payment

import (
	"context"
	"crypto/sha512"
	"encoding/hex"
	"encoding/json"
	"io"
	"log"
	"strings"

	"foodnet/internal/domain"
	"foodnet/internal/tasks"

	"github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/snap"
	"github.com/shopspring/decimal"
)

// Gateway is the slice of the Midtrans snap client the service needs.
type Gateway interface {
	CreateTransaction(req *snap.Request) (*snap.Response, *midtrans.Error)
}

// Service creates payment sessions for ordered orders and applies
// status notifications coming back from the gateway.
type Service struct {
	orders    orderRepo
	users     userRepo
	gateway   Gateway
	serverKey string
	logger    *log.Logger
}

type orderRepo interface {
	GetByID(ctx context.Context, regionID, id string) (*domain.Order, error)
	SetStatus(ctx context.Context, regionID, orderID, status string) error
}

type userRepo interface {
	GetByID(ctx context.Context, regionID, id string) (*domain.User, error)
}

func New(orders orderRepo, users userRepo, gateway Gateway, serverKey string, logger *log.Logger) *Service {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Service{orders: orders, users: users, gateway: gateway, serverKey: serverKey, logger: logger}
}

// NewSnapGateway builds the real Midtrans snap client. Sandbox unless
// production is set.
func NewSnapGateway(serverKey string, production bool) Gateway {
	env := midtrans.Sandbox
	if production {
		env = midtrans.Production
	}
	var client snap.Client
	client.New(serverKey, env)
	return &client
}

// Session is the handle a buyer needs to complete payment.
type Session struct {
	OrderID     string `json:"orderId"`
	Token       string `json:"token"`
	RedirectURL string `json:"redirectUrl"`
}

// PayOrder opens a payment session for the buyer's ordered order.
// Carts and already paid orders are rejected.
func (s *Service) PayOrder(ctx context.Context, regionID string, buyer domain.User, orderID string) (*Session, error) {
	order, err := s.orders.GetByID(ctx, regionID, orderID)
	if err != nil {
		return nil, err
	}
	if order.BuyerID != buyer.ID {
		return nil, domain.ErrNotFound
	}
	if order.Status != domain.OrderStatusOrdered {
		return nil, domain.StateConflict("order is not payable")
	}

	req := &snap.Request{
		TransactionDetails: midtrans.TransactionDetails{
			OrderID:  order.ID,
			GrossAmt: minorUnits(order.TotalGross),
		},
		CustomerDetail: &midtrans.CustomerDetails{
			FName: buyer.FirstName,
			LName: buyer.LastName,
			Email: buyer.Email,
		},
	}
	resp, mErr := s.gateway.CreateTransaction(req)
	if mErr != nil {
		return nil, mErr
	}
	s.logger.Printf("payment: session opened order=%s", order.ID)
	return &Session{OrderID: order.ID, Token: resp.Token, RedirectURL: resp.RedirectURL}, nil
}

// Notification is the gateway's status callback payload.
type Notification struct {
	OrderID           string `json:"order_id"`
	StatusCode        string `json:"status_code"`
	GrossAmount       string `json:"gross_amount"`
	SignatureKey      string `json:"signature_key"`
	TransactionStatus string `json:"transaction_status"`
	FraudStatus       string `json:"fraud_status"`
}

// HandleNotification verifies the callback signature and moves the
// order to paid on settlement. Other statuses are logged and ignored;
// the gateway retries until it gets a 2xx.
func (s *Service) HandleNotification(ctx context.Context, regionID string, n Notification) error {
	if !s.validSignature(n) {
		return domain.Validation("signature_key", "invalid signature")
	}

	switch n.TransactionStatus {
	case "settlement":
		return s.markPaid(ctx, regionID, n.OrderID)
	case "capture":
		if n.FraudStatus == "accept" {
			return s.markPaid(ctx, regionID, n.OrderID)
		}
		s.logger.Printf("payment: capture held order=%s fraud=%s", n.OrderID, n.FraudStatus)
		return nil
	default:
		s.logger.Printf("payment: notification ignored order=%s status=%s", n.OrderID, n.TransactionStatus)
		return nil
	}
}

// HandleCreateWallet is the task handler that provisions the buyer's
// escrow wallet after checkout. The wallet lives at the gateway, so a
// failed call is retried by the poller.
func (s *Service) HandleCreateWallet(ctx context.Context, payload []byte) error {
	var p tasks.CreateWalletPayload
	if err := json.Unmarshal(payload, &p); err != nil {
		return err
	}
	order, err := s.orders.GetByID(ctx, p.RegionID, p.OrderID)
	if err != nil {
		return err
	}
	buyer, err := s.users.GetByID(ctx, p.RegionID, p.BuyerID)
	if err != nil {
		return err
	}
	if _, err := s.PayOrder(ctx, p.RegionID, *buyer, order.ID); err != nil {
		if domain.IsStateConflict(err) {
			// Already paid or otherwise settled; nothing to provision.
			return nil
		}
		return err
	}
	return nil
}

func (s *Service) markPaid(ctx context.Context, regionID, orderID string) error {
	order, err := s.orders.GetByID(ctx, regionID, orderID)
	if err != nil {
		return err
	}
	if order.Status == domain.OrderStatusPaid {
		return nil
	}
	if order.Status != domain.OrderStatusOrdered {
		return domain.StateConflict("order is not payable")
	}
	if err := s.orders.SetStatus(ctx, regionID, orderID, domain.OrderStatusPaid); err != nil {
		return err
	}
	s.logger.Printf("payment: order paid order=%s", orderID)
	return nil
}

// validSignature checks sha512(order_id + status_code + gross_amount +
// server_key) against the signature the gateway sent.
func (s *Service) validSignature(n Notification) bool {
	sum := sha512.Sum512([]byte(n.OrderID + n.StatusCode + n.GrossAmount + s.serverKey))
	return strings.EqualFold(hex.EncodeToString(sum[:]), n.SignatureKey)
}

// minorUnits renders a decimal amount as gateway cents.
func minorUnits(d decimal.Decimal) int64 {
	return d.Mul(decimal.NewFromInt(100)).Round(0).IntPart()
}
