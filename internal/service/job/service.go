package job

import (
	"context"
	"encoding/json"
	"io"
	"log"

	"foodnet/internal/domain"
	"foodnet/internal/pricing"
	jobrepo "foodnet/internal/repository/job"
	"foodnet/internal/route"
	"foodnet/internal/tasks"

	"github.com/shopspring/decimal"
)

// Service drives the delivery-job lifecycle: couriers claim and
// release jobs, and delivery fees are recalculated when routes change.
type Service struct {
	jobs    jobrepo.Repository
	orders  orderRepo
	regions regionRepo
	routes  route.Calculator
	logger  *log.Logger
}

type orderRepo interface {
	GetByID(ctx context.Context, regionID, id string) (*domain.Order, error)
	GetItem(ctx context.Context, itemID string) (*domain.OrderItem, error)
	UpdateItemDeliveryFee(ctx context.Context, itemID string, feeNet, totalNet, totalGross decimal.Decimal) error
}

type regionRepo interface {
	Settings(ctx context.Context, regionID string) (*domain.RegionSettings, error)
}

func New(jobs jobrepo.Repository, orders orderRepo, regions regionRepo, routes route.Calculator, logger *log.Logger) *Service {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Service{jobs: jobs, orders: orders, regions: regions, routes: routes, logger: logger}
}

// ListOpen returns unclaimed jobs in the region.
func (s *Service) ListOpen(ctx context.Context, regionID string) ([]domain.Job, error) {
	return s.jobs.ListOpen(ctx, regionID)
}

// ListMine returns the requester's claimed jobs.
func (s *Service) ListMine(ctx context.Context, regionID, userID string) ([]domain.Job, error) {
	return s.jobs.ListByUser(ctx, regionID, userID)
}

// Claim assigns an open job to userID. Guards: the job must be
// unassigned and the owning order must not be processed. The final
// word is the conditional update in the repository, so two concurrent
// claims cannot both succeed.
func (s *Service) Claim(ctx context.Context, regionID, jobID, userID string) (*domain.Job, error) {
	j, err := s.jobs.GetByID(ctx, regionID, jobID)
	if err != nil {
		return nil, err
	}
	order, err := s.orders.GetByID(ctx, regionID, j.OrderID)
	if err != nil {
		return nil, err
	}
	if order.Processed {
		return nil, domain.StateConflict("order already processed")
	}
	if j.Claimed() {
		return nil, domain.StateConflict("job already claimed")
	}

	ok, err := s.jobs.Claim(ctx, jobID, userID)
	if err != nil {
		return nil, err
	}
	if !ok {
		// Lost the race between the read above and the update.
		return nil, domain.StateConflict("job already claimed")
	}
	s.logger.Printf("job service: claimed id=%s user_id=%s", jobID, userID)
	return s.jobs.GetByID(ctx, regionID, jobID)
}

// Unclaim releases a job held by userID. Only the incumbent may
// release it.
func (s *Service) Unclaim(ctx context.Context, regionID, jobID, userID string) (*domain.Job, error) {
	j, err := s.jobs.GetByID(ctx, regionID, jobID)
	if err != nil {
		return nil, err
	}
	if j.ClaimedBy == nil || *j.ClaimedBy != userID {
		return nil, domain.StateConflict("job is not claimed by you")
	}

	ok, err := s.jobs.Unclaim(ctx, jobID, userID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.StateConflict("job is not claimed by you")
	}
	s.logger.Printf("job service: unclaimed id=%s user_id=%s", jobID, userID)
	return s.jobs.GetByID(ctx, regionID, jobID)
}

// RecalculateFee refreshes a job's route length and the derived
// delivery fee on its order item. Once the order is processed the fee
// is frozen and the call is a no-op.
func (s *Service) RecalculateFee(ctx context.Context, regionID, jobID string) error {
	j, err := s.jobs.GetByID(ctx, regionID, jobID)
	if err != nil {
		return err
	}
	order, err := s.orders.GetByID(ctx, regionID, j.OrderID)
	if err != nil {
		return err
	}
	if order.Processed {
		s.logger.Printf("job service: recalculate skipped, order %s processed", order.ID)
		return nil
	}

	lengthM, err := s.routes.RouteLength(ctx, j.Waypoints)
	if err != nil {
		return err
	}
	if err := s.jobs.UpdateLength(ctx, jobID, lengthM); err != nil {
		return err
	}

	item, err := s.orders.GetItem(ctx, j.OrderItemID)
	if err != nil {
		return err
	}
	settings, err := s.regions.Settings(ctx, regionID)
	if err != nil {
		return err
	}

	// Reprice from the frozen snapshot, never from the live catalog.
	snap := domain.ParseItemSnapshot(item.Snapshot)
	option := domain.DeliveryOption{
		Kind:      snap.DeliveryKind,
		ChargeNet: snap.DeliveryCharge,
		VATRate:   snap.DeliveryVATRate,
	}
	product := domain.Product{
		PriceNet:       snap.PriceNet,
		VATRate:        snap.VATRate,
		DepositNet:     snap.DepositNet,
		DepositVATRate: snap.DepositVATRate,
	}
	fee := pricing.DeliveryFee(option, lengthM, *settings)
	calc := pricing.NewFeeCalculator(*settings)
	quote := pricing.QuoteItem(product, item.Quantity, fee, calc, snap.SellerMember, snap.BuyerMember)

	if err := s.orders.UpdateItemDeliveryFee(ctx, item.ID, quote.DeliveryFeeNet, quote.TotalNet, quote.TotalGross); err != nil {
		return err
	}
	s.logger.Printf("job service: recalculated fee job=%s length_m=%d fee=%s", jobID, lengthM, quote.DeliveryFeeNet)
	return nil
}

// HandleRecalculateFee adapts RecalculateFee to the task poller.
func (s *Service) HandleRecalculateFee(ctx context.Context, payload []byte) error {
	var p tasks.RecalculateFeePayload
	if err := json.Unmarshal(payload, &p); err != nil {
		return err
	}
	return s.RecalculateFee(ctx, p.RegionID, p.JobID)
}
