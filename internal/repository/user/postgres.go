package user

import (
	"context"
	"errors"
	"io"
	"log"

	"foodnet/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type postgresRepo struct {
	pool   *pgxpool.Pool
	logger *log.Logger
}

func NewPostgres(pool *pgxpool.Pool, logger *log.Logger) Repository {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &postgresRepo{pool: pool, logger: logger}
}

func (r *postgresRepo) Create(ctx context.Context, u domain.User) (*domain.User, error) {
	const q = `
INSERT INTO users (region_id, email, password_hash, first_name, last_name, address, roles, cooperative_member)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
RETURNING id::text, created_at
`
	out := u
	err := r.pool.QueryRow(ctx, q,
		u.RegionID, u.Email, u.PasswordHash, u.FirstName, u.LastName, u.Address, u.Roles, u.CooperativeMember,
	).Scan(&out.ID, &out.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, domain.ErrAlreadyExists
		}
		r.logger.Printf("user repo: create email=%s region_id=%s error=%v", u.Email, u.RegionID, err)
		return nil, err
	}
	r.logger.Printf("user repo: created id=%s email=%s", out.ID, out.Email)
	return &out, nil
}

func (r *postgresRepo) GetByEmail(ctx context.Context, regionID, email string) (*domain.User, error) {
	const q = `
SELECT id::text, region_id::text, email, password_hash, COALESCE(first_name, ''), COALESCE(last_name, ''), COALESCE(address, ''), roles, cooperative_member, created_at
FROM users
WHERE region_id = $1 AND email = $2
`
	return r.scanOne(ctx, q, regionID, email)
}

func (r *postgresRepo) GetByID(ctx context.Context, regionID, id string) (*domain.User, error) {
	const q = `
SELECT id::text, region_id::text, email, password_hash, COALESCE(first_name, ''), COALESCE(last_name, ''), COALESCE(address, ''), roles, cooperative_member, created_at
FROM users
WHERE region_id = $1 AND id = $2
`
	return r.scanOne(ctx, q, regionID, id)
}

func (r *postgresRepo) scanOne(ctx context.Context, q string, args ...interface{}) (*domain.User, error) {
	var u domain.User
	err := r.pool.QueryRow(ctx, q, args...).Scan(
		&u.ID, &u.RegionID, &u.Email, &u.PasswordHash,
		&u.FirstName, &u.LastName, &u.Address,
		&u.Roles, &u.CooperativeMember, &u.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}
