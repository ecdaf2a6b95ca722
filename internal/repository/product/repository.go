package product

import (
	"context"

	"foodnet/internal/domain"
)

type Repository interface {
	ListByRegion(ctx context.Context, regionID string) ([]domain.Product, error)
	GetByID(ctx context.Context, regionID, id string) (*domain.Product, error)
	Upsert(ctx context.Context, product domain.Product) (*domain.Product, error)
}
