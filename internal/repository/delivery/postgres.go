package delivery

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

const optionColumns = `
id::text, region_id::text, seller_id::text, kind, name, charge_net::text, vat_rate::text, created_at
`

func (r *postgresRepo) GetByID(ctx context.Context, regionID, id string) (*domain.DeliveryOption, error) {
	q := `SELECT ` + optionColumns + `
FROM delivery_options
WHERE region_id = $1 AND id = $2
`
	opt, err := scanOption(r.pool.QueryRow(ctx, q, regionID, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return opt, nil
}

func (r *postgresRepo) ListBySeller(ctx context.Context, regionID, sellerID string) ([]domain.DeliveryOption, error) {
	q := `SELECT ` + optionColumns + `
FROM delivery_options
WHERE region_id = $1 AND seller_id = $2
ORDER BY created_at ASC
`
	rows, err := r.pool.Query(ctx, q, regionID, sellerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.DeliveryOption
	for rows.Next() {
		opt, err := scanOption(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *opt)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *postgresRepo) Upsert(ctx context.Context, option domain.DeliveryOption) (*domain.DeliveryOption, error) {
	const q = `
INSERT INTO delivery_options (region_id, seller_id, kind, name, charge_net, vat_rate)
VALUES ($1, $2, $3, $4, $5::numeric, $6::numeric)
ON CONFLICT (region_id, seller_id, name) DO UPDATE SET
    kind = EXCLUDED.kind,
    charge_net = EXCLUDED.charge_net,
    vat_rate = EXCLUDED.vat_rate
RETURNING id::text, created_at
`
	out := option
	err := r.pool.QueryRow(ctx, q,
		option.RegionID,
		option.SellerID,
		option.Kind,
		option.Name,
		option.ChargeNet.String(),
		option.VATRate.String(),
	).Scan(&out.ID, &out.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func scanOption(row pgx.Row) (*domain.DeliveryOption, error) {
	var (
		opt    domain.DeliveryOption
		charge string
		vat    string
	)
	if err := row.Scan(
		&opt.ID, &opt.RegionID, &opt.SellerID, &opt.Kind, &opt.Name, &charge, &vat, &opt.CreatedAt,
	); err != nil {
		return nil, err
	}
	var err error
	if opt.ChargeNet, err = decimal.NewFromString(charge); err != nil {
		return nil, err
	}
	if opt.VATRate, err = decimal.NewFromString(vat); err != nil {
		return nil, err
	}
	return &opt, nil
}
