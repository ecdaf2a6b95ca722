package region

import (
	"context"
	"errors"

	"foodnet/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type postgresRepo struct {
	pool *pgxpool.Pool
}

func NewPostgres(pool *pgxpool.Pool) Repository {
	return &postgresRepo{pool: pool}
}

func (r *postgresRepo) GetByKey(ctx context.Context, key string) (*domain.Region, error) {
	const q = `
SELECT id::text, key, name, currency, created_at
FROM regions
WHERE key = $1
`
	var reg domain.Region
	err := r.pool.QueryRow(ctx, q, key).Scan(&reg.ID, &reg.Key, &reg.Name, &reg.Currency, &reg.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &reg, nil
}

func (r *postgresRepo) Settings(ctx context.Context, regionID string) (*domain.RegionSettings, error) {
	const q = `
SELECT region_id::text,
       seller_fee_member_rate::text,
       seller_fee_rate::text,
       buyer_fee_rate::text,
       min_purchase_value::text,
       logistics_base_fee::text,
       logistics_per_km_rate::text,
       logistics_vat_rate::text,
       platform_owner_id::text,
       owner_share_rate::text
FROM region_settings
WHERE region_id = $1
`
	var (
		s       domain.RegionSettings
		raw     [7]string
		ownerID *string
		share   string
	)
	err := r.pool.QueryRow(ctx, q, regionID).Scan(
		&s.RegionID,
		&raw[0], &raw[1], &raw[2], &raw[3], &raw[4], &raw[5], &raw[6],
		&ownerID,
		&share,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	fields := []*decimal.Decimal{
		&s.SellerFeeMemberRate, &s.SellerFeeRate, &s.BuyerFeeRate,
		&s.MinPurchaseValue, &s.LogisticsBaseFee, &s.LogisticsPerKmRate,
		&s.LogisticsVATRate,
	}
	for i, dst := range fields {
		d, err := decimal.NewFromString(raw[i])
		if err != nil {
			return nil, err
		}
		*dst = d
	}
	s.PlatformOwnerID = ownerID
	if s.OwnerShareRate, err = decimal.NewFromString(share); err != nil {
		return nil, err
	}
	return &s, nil
}
