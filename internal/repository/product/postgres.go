package product

import (
	"context"
	"errors"
	"io"
	"log"

	"foodnet/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
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

const productColumns = `
id::text, region_id::text, seller_id::text, key, name, COALESCE(description, ''),
unit, amount::text, price_net::text, vat_rate::text, deposit_net::text, deposit_vat_rate::text, created_at
`

func (r *postgresRepo) ListByRegion(ctx context.Context, regionID string) ([]domain.Product, error) {
	q := `SELECT ` + productColumns + `
FROM products
WHERE region_id = $1
ORDER BY created_at DESC
`
	rows, err := r.pool.Query(ctx, q, regionID)
	if err != nil {
		r.logger.Printf("product repo: list region_id=%s error=%v", regionID, err)
		return nil, err
	}
	defer rows.Close()

	var result []domain.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *p)
	}
	if err := rows.Err(); err != nil {
		r.logger.Printf("product repo: list rows region_id=%s error=%v", regionID, err)
		return nil, err
	}
	r.logger.Printf("product repo: list region_id=%s count=%d", regionID, len(result))
	return result, nil
}

func (r *postgresRepo) GetByID(ctx context.Context, regionID, id string) (*domain.Product, error) {
	q := `SELECT ` + productColumns + `
FROM products
WHERE region_id = $1 AND id = $2
`
	p, err := scanProduct(r.pool.QueryRow(ctx, q, regionID, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Printf("product repo: get region_id=%s id=%s not found", regionID, id)
			return nil, domain.ErrNotFound
		}
		r.logger.Printf("product repo: get region_id=%s id=%s error=%v", regionID, id, err)
		return nil, err
	}
	return p, nil
}

func (r *postgresRepo) Upsert(ctx context.Context, product domain.Product) (*domain.Product, error) {
	const q = `
INSERT INTO products (region_id, seller_id, key, name, description, unit, amount, price_net, vat_rate, deposit_net, deposit_vat_rate)
VALUES ($1, $2, $3, $4, NULLIF($5, ''), $6, $7::numeric, $8::numeric, $9::numeric, $10::numeric, $11::numeric)
ON CONFLICT (region_id, key) DO UPDATE SET
    seller_id = EXCLUDED.seller_id,
    name = EXCLUDED.name,
    description = EXCLUDED.description,
    unit = EXCLUDED.unit,
    amount = EXCLUDED.amount,
    price_net = EXCLUDED.price_net,
    vat_rate = EXCLUDED.vat_rate,
    deposit_net = EXCLUDED.deposit_net,
    deposit_vat_rate = EXCLUDED.deposit_vat_rate
RETURNING id::text, created_at
`
	out := product
	err := r.pool.QueryRow(ctx, q,
		product.RegionID,
		product.SellerID,
		product.Key,
		product.Name,
		product.Description,
		product.Unit,
		product.Amount.String(),
		product.PriceNet.String(),
		product.VATRate.String(),
		product.DepositNet.String(),
		product.DepositVATRate.String(),
	).Scan(&out.ID, &out.CreatedAt)
	if err != nil {
		r.logger.Printf("product repo: upsert key=%s region_id=%s error=%v", product.Key, product.RegionID, err)
		return nil, err
	}
	r.logger.Printf("product repo: upserted key=%s region_id=%s id=%s", out.Key, out.RegionID, out.ID)
	return &out, nil
}

func scanProduct(row pgx.Row) (*domain.Product, error) {
	var (
		p   domain.Product
		raw [5]string
	)
	if err := row.Scan(
		&p.ID, &p.RegionID, &p.SellerID, &p.Key, &p.Name, &p.Description,
		&p.Unit, &raw[0], &raw[1], &raw[2], &raw[3], &raw[4], &p.CreatedAt,
	); err != nil {
		return nil, err
	}
	fields := []*decimal.Decimal{&p.Amount, &p.PriceNet, &p.VATRate, &p.DepositNet, &p.DepositVATRate}
	for i, dst := range fields {
		d, err := decimal.NewFromString(raw[i])
		if err != nil {
			return nil, err
		}
		*dst = d
	}
	return &p, nil
}
