package checkout

import (
	"context"
	"errors"
	"io"
	"log"
	"strings"
	"time"

	"foodnet/internal/domain"
	"foodnet/internal/pricing"
	orderrepo "foodnet/internal/repository/order"
	"foodnet/internal/route"
	"foodnet/internal/tasks"

	"github.com/shopspring/decimal"
)

// Service turns a buyer's cart into an order: it validates the input,
// freezes product and seller state into item snapshots, assigns
// delivery fees and persists the one-way cart -> ordered transition.
type Service struct {
	orders   orderRepo
	products productRepo
	options  optionRepo
	regions  regionRepo
	users    userRepo
	jobs     jobRepo
	routes   route.Calculator
	tasks    dispatcher
	logger   *log.Logger
}

type orderRepo interface {
	GetActiveCart(ctx context.Context, regionID, buyerID string) (*domain.Order, error)
	GetByID(ctx context.Context, regionID, id string) (*domain.Order, error)
	Finalize(ctx context.Context, in orderrepo.FinalizeInput) error
}

type productRepo interface {
	GetByID(ctx context.Context, regionID, id string) (*domain.Product, error)
}

type optionRepo interface {
	GetByID(ctx context.Context, regionID, id string) (*domain.DeliveryOption, error)
}

type regionRepo interface {
	Settings(ctx context.Context, regionID string) (*domain.RegionSettings, error)
}

type userRepo interface {
	GetByID(ctx context.Context, regionID, id string) (*domain.User, error)
}

type jobRepo interface {
	Create(ctx context.Context, job domain.Job) (*domain.Job, error)
}

type dispatcher interface {
	Dispatch(ctx context.Context, kind string, payload interface{}, delay time.Duration) error
}

// Deps bundles the collaborators needed for checkout.
type Deps struct {
	Orders   orderrepo.Repository
	Products productRepo
	Options  optionRepo
	Regions  regionRepo
	Users    userRepo
	Jobs     jobRepo
	Routes   route.Calculator
	Tasks    dispatcher
	Logger   *log.Logger
}

func New(deps Deps) *Service {
	logger := deps.Logger
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Service{
		orders:   deps.Orders,
		products: deps.Products,
		options:  deps.Options,
		regions:  deps.Regions,
		users:    deps.Users,
		jobs:     deps.Jobs,
		routes:   deps.Routes,
		tasks:    deps.Tasks,
		logger:   logger,
	}
}

// Input captures the checkout payload.
type Input struct {
	DeliveryAddress      string `json:"deliveryAddress"`
	EarliestDeliveryDate string `json:"earliestDeliveryDate"`
}

// Checkout converts the buyer's active cart into an order and returns
// the priced result. The transition is one-way and one-time; all item
// pricing is frozen here.
func (s *Service) Checkout(ctx context.Context, regionID string, buyer domain.User, in Input) (*domain.Order, error) {
	address := strings.TrimSpace(in.DeliveryAddress)
	if address == "" {
		return nil, domain.Validation("deliveryAddress", "required")
	}
	earliest, err := parseFutureDate(in.EarliestDeliveryDate)
	if err != nil {
		return nil, err
	}

	cart, err := s.orders.GetActiveCart(ctx, regionID, buyer.ID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.Validation("", "cart is empty")
		}
		return nil, err
	}
	if len(cart.Items) == 0 {
		return nil, domain.Validation("", "cart is empty")
	}

	settings, err := s.regions.Settings(ctx, regionID)
	if err != nil {
		return nil, err
	}
	calc := pricing.NewFeeCalculator(*settings)

	finalized := make([]orderrepo.FinalizedItem, 0, len(cart.Items))
	type pendingJob struct {
		itemID    string
		waypoints []string
		lengthM   int64
	}
	var pendingJobs []pendingJob
	productNetSum := decimal.Zero

	for _, item := range cart.Items {
		product, err := s.products.GetByID(ctx, regionID, item.ProductID)
		if err != nil {
			return nil, err
		}
		seller, err := s.users.GetByID(ctx, regionID, product.SellerID)
		if err != nil {
			return nil, err
		}
		if item.DeliveryOptionID == nil {
			return nil, domain.Validation("deliveryOptionId", "delivery option required for "+product.Name)
		}
		option, err := s.options.GetByID(ctx, regionID, *item.DeliveryOptionID)
		if err != nil {
			return nil, err
		}

		var lengthM int64
		var waypoints []string
		if option.Kind == domain.DeliveryLogistics {
			waypoints = []string{seller.Address, address}
			lengthM, err = s.routes.RouteLength(ctx, waypoints)
			if err != nil {
				// Fee falls back to the base charge; the dispatched
				// recalculation fixes it once the routing service is
				// back.
				s.logger.Printf("checkout: route length unavailable for item %s: %v", item.ID, err)
				lengthM = 0
			}
		}
		fee := pricing.DeliveryFee(*option, lengthM, *settings)
		quote := pricing.QuoteItem(*product, item.Quantity, fee, calc, seller.CooperativeMember, buyer.CooperativeMember)
		productNetSum = productNetSum.Add(quote.ProductNet)

		snap := domain.ItemSnapshot{
			ProductKey:      product.Key,
			ProductName:     product.Name,
			Unit:            product.Unit,
			Amount:          product.Amount,
			PriceNet:        product.PriceNet,
			VATRate:         product.VATRate,
			DepositNet:      product.DepositNet,
			DepositVATRate:  product.DepositVATRate,
			SellerID:        seller.ID,
			SellerName:      strings.TrimSpace(seller.FirstName + " " + seller.LastName),
			SellerMember:    seller.CooperativeMember,
			BuyerMember:     buyer.CooperativeMember,
			DeliveryKind:    option.Kind,
			DeliveryName:    option.Name,
			DeliveryCharge:  option.ChargeNet,
			DeliveryVATRate: option.VATRate,
		}

		finalized = append(finalized, orderrepo.FinalizedItem{
			ItemID:             item.ID,
			Snapshot:           snap.ToMap(),
			LatestDeliveryDate: item.LatestDeliveryDate,
			DeliveryFeeNet:     quote.DeliveryFeeNet,
			PlatformFeeNet:     quote.PlatformFeeNet,
			BuyerFeeNet:        quote.BuyerFeeNet,
			TotalNet:           quote.TotalNet,
			TotalGross:         quote.TotalGross,
		})

		if option.Kind == domain.DeliveryLogistics {
			pendingJobs = append(pendingJobs, pendingJob{itemID: item.ID, waypoints: waypoints, lengthM: lengthM})
		}
	}

	if productNetSum.LessThan(settings.MinPurchaseValue) {
		return nil, domain.Validation("", "minimum purchase value not reached")
	}

	if err := s.orders.Finalize(ctx, orderrepo.FinalizeInput{
		OrderID:              cart.ID,
		DeliveryAddress:      address,
		EarliestDeliveryDate: earliest,
		Items:                finalized,
	}); err != nil {
		return nil, err
	}

	for _, pj := range pendingJobs {
		job, err := s.jobs.Create(ctx, domain.Job{
			RegionID:    regionID,
			OrderID:     cart.ID,
			OrderItemID: pj.itemID,
			Waypoints:   pj.waypoints,
			LengthM:     pj.lengthM,
		})
		if err != nil {
			return nil, err
		}
		if err := s.tasks.Dispatch(ctx, tasks.KindRecalculateFee, tasks.RecalculateFeePayload{
			RegionID: regionID,
			JobID:    job.ID,
		}, time.Minute); err != nil {
			s.logger.Printf("checkout: dispatch fee recalculation for job %s: %v", job.ID, err)
		}
	}

	if err := s.tasks.Dispatch(ctx, tasks.KindCreateWallet, tasks.CreateWalletPayload{
		RegionID: regionID,
		OrderID:  cart.ID,
		BuyerID:  buyer.ID,
	}, 0); err != nil {
		s.logger.Printf("checkout: dispatch wallet creation for order %s: %v", cart.ID, err)
	}

	return s.orders.GetByID(ctx, regionID, cart.ID)
}

func parseFutureDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, domain.Validation("earliestDeliveryDate", "required")
	}
	d, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return time.Time{}, domain.Validation("earliestDeliveryDate", "invalid date")
	}
	now := time.Now().UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	if !d.After(today) {
		return time.Time{}, domain.Validation("earliestDeliveryDate", "Date must be in the future.")
	}
	return d, nil
}
