package delivery

import (
	"context"

	"foodnet/internal/domain"
)

type Repository interface {
	GetByID(ctx context.Context, regionID, id string) (*domain.DeliveryOption, error)
	ListBySeller(ctx context.Context, regionID, sellerID string) ([]domain.DeliveryOption, error)
	Upsert(ctx context.Context, option domain.DeliveryOption) (*domain.DeliveryOption, error)
}
