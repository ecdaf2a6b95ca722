package cart

import (
	"context"
	"errors"
	"strings"
	"time"

	"foodnet/internal/domain"
	orderrepo "foodnet/internal/repository/order"
)

type Service struct {
	orders   orderRepo
	products productRepo
	options  optionRepo
}

type orderRepo interface {
	CreateCart(ctx context.Context, regionID, buyerID string) (*domain.Order, error)
	GetActiveCart(ctx context.Context, regionID, buyerID string) (*domain.Order, error)
	AddItem(ctx context.Context, orderID string, product domain.Product, quantity int, deliveryOptionID *string) error
	ChangeItemQuantity(ctx context.Context, orderID, itemID string, quantity int) error
	SetItemDeliveryOption(ctx context.Context, orderID, itemID, optionID string, latestDeliveryDate *time.Time) error
}

type productRepo interface {
	GetByID(ctx context.Context, regionID, id string) (*domain.Product, error)
}

type optionRepo interface {
	GetByID(ctx context.Context, regionID, id string) (*domain.DeliveryOption, error)
}

func New(orders orderrepo.Repository, products productRepo, options optionRepo) *Service {
	return &Service{orders: orders, products: products, options: options}
}

type UpdateInput struct {
	Actions []UpdateAction `json:"actions"`
}

type UpdateAction struct {
	Action             string `json:"action"`
	ProductID          string `json:"productId,omitempty"`
	ItemID             string `json:"itemId,omitempty"`
	DeliveryOptionID   string `json:"deliveryOptionId,omitempty"`
	Quantity           int    `json:"quantity,omitempty"`
	LatestDeliveryDate string `json:"latestDeliveryDate,omitempty"`
}

// Get returns the buyer's active cart.
func (s *Service) Get(ctx context.Context, regionID, buyerID string) (*domain.Order, error) {
	return s.orders.GetActiveCart(ctx, regionID, buyerID)
}

// Update applies cart actions in order. The cart is created on first
// use; each action validates its inputs before touching storage.
func (s *Service) Update(ctx context.Context, regionID, buyerID string, in UpdateInput) (*domain.Order, error) {
	if len(in.Actions) == 0 {
		return nil, domain.Validation("actions", "required")
	}

	cart, err := s.orders.GetActiveCart(ctx, regionID, buyerID)
	if errors.Is(err, domain.ErrNotFound) {
		cart, err = s.orders.CreateCart(ctx, regionID, buyerID)
	}
	if err != nil {
		return nil, err
	}

	for _, action := range in.Actions {
		switch strings.ToLower(strings.TrimSpace(action.Action)) {
		case "additem":
			if err := s.addItem(ctx, regionID, cart.ID, action); err != nil {
				return nil, err
			}
		case "changeitemquantity":
			if strings.TrimSpace(action.ItemID) == "" {
				return nil, domain.Validation("itemId", "required")
			}
			if err := s.orders.ChangeItemQuantity(ctx, cart.ID, action.ItemID, action.Quantity); err != nil {
				return nil, err
			}
		case "setdeliveryoption":
			if err := s.setDeliveryOption(ctx, regionID, cart.ID, action); err != nil {
				return nil, err
			}
		case "removeitem":
			if strings.TrimSpace(action.ItemID) == "" {
				return nil, domain.Validation("itemId", "required")
			}
			if err := s.orders.ChangeItemQuantity(ctx, cart.ID, action.ItemID, 0); err != nil {
				return nil, err
			}
		default:
			return nil, domain.Validation("action", "unsupported action")
		}
	}

	return s.orders.GetActiveCart(ctx, regionID, buyerID)
}

func (s *Service) addItem(ctx context.Context, regionID, cartID string, action UpdateAction) error {
	productID := strings.TrimSpace(action.ProductID)
	if productID == "" {
		return domain.Validation("productId", "required")
	}
	if action.Quantity <= 0 {
		return domain.Validation("quantity", "must be positive")
	}
	product, err := s.products.GetByID(ctx, regionID, productID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.Validation("productId", "product not found")
		}
		return err
	}

	var optionID *string
	if id := strings.TrimSpace(action.DeliveryOptionID); id != "" {
		opt, err := s.lookupOption(ctx, regionID, id, product.SellerID)
		if err != nil {
			return err
		}
		optionID = &opt.ID
	}

	return s.orders.AddItem(ctx, cartID, *product, action.Quantity, optionID)
}

func (s *Service) setDeliveryOption(ctx context.Context, regionID, cartID string, action UpdateAction) error {
	if strings.TrimSpace(action.ItemID) == "" {
		return domain.Validation("itemId", "required")
	}
	optID := strings.TrimSpace(action.DeliveryOptionID)
	if optID == "" {
		return domain.Validation("deliveryOptionId", "required")
	}
	opt, err := s.options.GetByID(ctx, regionID, optID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.Validation("deliveryOptionId", "delivery option not found")
		}
		return err
	}

	var latest *time.Time
	if raw := strings.TrimSpace(action.LatestDeliveryDate); raw != "" {
		d, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return domain.Validation("latestDeliveryDate", "invalid date")
		}
		latest = &d
	}

	return s.orders.SetItemDeliveryOption(ctx, cartID, action.ItemID, opt.ID, latest)
}

func (s *Service) lookupOption(ctx context.Context, regionID, optionID, sellerID string) (*domain.DeliveryOption, error) {
	opt, err := s.options.GetByID(ctx, regionID, optionID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.Validation("deliveryOptionId", "delivery option not found")
		}
		return nil, err
	}
	// Seller-arranged delivery must come from the product's own seller.
	if opt.Kind == domain.DeliverySeller && opt.SellerID != sellerID {
		return nil, domain.Validation("deliveryOptionId", "option belongs to another seller")
	}
	return opt, nil
}
