package user

import (
	"context"

	"foodnet/internal/domain"
)

type Repository interface {
	Create(ctx context.Context, user domain.User) (*domain.User, error)
	GetByEmail(ctx context.Context, regionID, email string) (*domain.User, error)
	GetByID(ctx context.Context, regionID, id string) (*domain.User, error)
}
