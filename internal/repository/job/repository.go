package job

import (
	"context"

	"foodnet/internal/domain"
)

type Repository interface {
	Create(ctx context.Context, job domain.Job) (*domain.Job, error)
	GetByID(ctx context.Context, regionID, id string) (*domain.Job, error)
	ListOpen(ctx context.Context, regionID string) ([]domain.Job, error)
	ListByUser(ctx context.Context, regionID, userID string) ([]domain.Job, error)
	// Claim atomically assigns the job to userID. It only succeeds
	// while the job is unassigned and the owning order is not yet
	// processed; it returns false when another claim won the race or a
	// guard failed.
	Claim(ctx context.Context, jobID, userID string) (bool, error)
	// Unclaim atomically releases the job if userID is the current
	// claimant.
	Unclaim(ctx context.Context, jobID, userID string) (bool, error)
	UpdateLength(ctx context.Context, jobID string, lengthM int64) error
}
