package region

import (
	"context"

	"foodnet/internal/domain"
)

type Repository interface {
	GetByKey(ctx context.Context, key string) (*domain.Region, error)
	Settings(ctx context.Context, regionID string) (*domain.RegionSettings, error)
}
