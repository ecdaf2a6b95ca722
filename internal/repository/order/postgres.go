package order

import (
	"context"
	"errors"
	"time"

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

const orderColumns = `
id::text, region_id::text, buyer_id::text, status, processed,
COALESCE(delivery_address, ''), earliest_delivery_date, total_net::text, total_gross::text, created_at
`

const itemColumns = `
id::text, order_id::text, product_id::text, delivery_option_id::text, quantity, latest_delivery_date,
snapshot, delivery_fee_net::text, platform_fee_net::text, buyer_fee_net::text, total_net::text, total_gross::text, created_at
`

func (r *postgresRepo) CreateCart(ctx context.Context, regionID, buyerID string) (*domain.Order, error) {
	q := `
INSERT INTO orders (region_id, buyer_id, status, total_net, total_gross)
VALUES ($1, $2, 'cart', 0, 0)
RETURNING ` + orderColumns
	o, err := scanOrder(r.pool.QueryRow(ctx, q, regionID, buyerID))
	if err != nil {
		return nil, err
	}
	return o, nil
}

func (r *postgresRepo) GetByID(ctx context.Context, regionID, id string) (*domain.Order, error) {
	q := `SELECT ` + orderColumns + `
FROM orders
WHERE region_id = $1 AND id = $2
`
	return r.fetchOrder(ctx, q, regionID, id)
}

func (r *postgresRepo) GetActiveCart(ctx context.Context, regionID, buyerID string) (*domain.Order, error) {
	q := `SELECT ` + orderColumns + `
FROM orders
WHERE region_id = $1 AND buyer_id = $2 AND status = 'cart'
ORDER BY created_at DESC
LIMIT 1
`
	return r.fetchOrder(ctx, q, regionID, buyerID)
}

func (r *postgresRepo) AddItem(ctx context.Context, orderID string, product domain.Product, quantity int, deliveryOptionID *string) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	var itemID string
	var existingQty int
	err = tx.QueryRow(ctx, `
SELECT id::text, quantity
FROM order_items
WHERE order_id = $1 AND product_id = $2
`, orderID, product.ID).Scan(&itemID, &existingQty)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return err
	}

	if err == nil {
		if _, err := tx.Exec(ctx, `
UPDATE order_items
SET quantity = $1
WHERE id = $2
`, existingQty+quantity, itemID); err != nil {
			return err
		}
	} else {
		if _, err := tx.Exec(ctx, `
INSERT INTO order_items (order_id, product_id, delivery_option_id, quantity, delivery_fee_net, platform_fee_net, buyer_fee_net, total_net, total_gross)
VALUES ($1, $2, $3, $4, 0, 0, 0, 0, 0)
`, orderID, product.ID, deliveryOptionID, quantity); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

func (r *postgresRepo) ChangeItemQuantity(ctx context.Context, orderID, itemID string, quantity int) error {
	if quantity <= 0 {
		cmd, err := r.pool.Exec(ctx, `
DELETE FROM order_items
WHERE id = $1 AND order_id = $2
`, itemID, orderID)
		if err != nil {
			return err
		}
		if cmd.RowsAffected() == 0 {
			return domain.ErrNotFound
		}
		return nil
	}

	cmd, err := r.pool.Exec(ctx, `
UPDATE order_items
SET quantity = $1
WHERE id = $2 AND order_id = $3
`, quantity, itemID, orderID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *postgresRepo) SetItemDeliveryOption(ctx context.Context, orderID, itemID, optionID string, latestDeliveryDate *time.Time) error {
	cmd, err := r.pool.Exec(ctx, `
UPDATE order_items
SET delivery_option_id = $1, latest_delivery_date = $2
WHERE id = $3 AND order_id = $4
`, optionID, latestDeliveryDate, itemID, orderID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *postgresRepo) Finalize(ctx context.Context, in FinalizeInput) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	for _, item := range in.Items {
		cmd, err := tx.Exec(ctx, `
UPDATE order_items
SET snapshot = $1,
    latest_delivery_date = $2,
    delivery_fee_net = $3::numeric,
    platform_fee_net = $4::numeric,
    buyer_fee_net = $5::numeric,
    total_net = $6::numeric,
    total_gross = $7::numeric
WHERE id = $8 AND order_id = $9
`,
			item.Snapshot,
			item.LatestDeliveryDate,
			item.DeliveryFeeNet.String(),
			item.PlatformFeeNet.String(),
			item.BuyerFeeNet.String(),
			item.TotalNet.String(),
			item.TotalGross.String(),
			item.ItemID,
			in.OrderID,
		)
		if err != nil {
			return err
		}
		if cmd.RowsAffected() == 0 {
			return domain.ErrNotFound
		}
	}

	cmd, err := tx.Exec(ctx, `
UPDATE orders
SET status = 'ordered',
    delivery_address = $1,
    earliest_delivery_date = $2
WHERE id = $3 AND status = 'cart'
`, in.DeliveryAddress, in.EarliestDeliveryDate, in.OrderID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}

	if err := updateOrderTotals(ctx, tx, in.OrderID); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func (r *postgresRepo) SetStatus(ctx context.Context, regionID, orderID, status string) error {
	cmd, err := r.pool.Exec(ctx, `
UPDATE orders
SET status = $1
WHERE region_id = $2 AND id = $3
`, status, regionID, orderID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *postgresRepo) SetProcessed(ctx context.Context, regionID, orderID string) error {
	cmd, err := r.pool.Exec(ctx, `
UPDATE orders
SET processed = true
WHERE region_id = $1 AND id = $2 AND status <> 'cart'
`, regionID, orderID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *postgresRepo) GetItem(ctx context.Context, itemID string) (*domain.OrderItem, error) {
	q := `SELECT ` + itemColumns + `
FROM order_items
WHERE id = $1
`
	item, err := scanItem(r.pool.QueryRow(ctx, q, itemID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return item, nil
}

func (r *postgresRepo) UpdateItemDeliveryFee(ctx context.Context, itemID string, feeNet, totalNet, totalGross decimal.Decimal) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	var orderID string
	err = tx.QueryRow(ctx, `
UPDATE order_items
SET delivery_fee_net = $1::numeric,
    total_net = $2::numeric,
    total_gross = $3::numeric
WHERE id = $4
RETURNING order_id::text
`, feeNet.String(), totalNet.String(), totalGross.String(), itemID).Scan(&orderID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrNotFound
		}
		return err
	}

	if err := updateOrderTotals(ctx, tx, orderID); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func (r *postgresRepo) fetchOrder(ctx context.Context, q string, args ...interface{}) (*domain.Order, error) {
	o, err := scanOrder(r.pool.QueryRow(ctx, q, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	itemsQuery := `SELECT ` + itemColumns + `
FROM order_items
WHERE order_id = $1
ORDER BY created_at ASC
`
	rows, err := r.pool.Query(ctx, itemsQuery, o.ID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		o.Items = append(o.Items, *item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return o, nil
}

func scanOrder(row pgx.Row) (*domain.Order, error) {
	var (
		o        domain.Order
		earliest *time.Time
		net      string
		gross    string
	)
	if err := row.Scan(
		&o.ID, &o.RegionID, &o.BuyerID, &o.Status, &o.Processed,
		&o.DeliveryAddress, &earliest, &net, &gross, &o.CreatedAt,
	); err != nil {
		return nil, err
	}
	o.EarliestDeliveryDate = earliest
	var err error
	if o.TotalNet, err = decimal.NewFromString(net); err != nil {
		return nil, err
	}
	if o.TotalGross, err = decimal.NewFromString(gross); err != nil {
		return nil, err
	}
	return &o, nil
}

func scanItem(row pgx.Row) (*domain.OrderItem, error) {
	var (
		item     domain.OrderItem
		optionID *string
		latest   *time.Time
		raw      [5]string
	)
	if err := row.Scan(
		&item.ID, &item.OrderID, &item.ProductID, &optionID, &item.Quantity, &latest,
		&item.Snapshot, &raw[0], &raw[1], &raw[2], &raw[3], &raw[4], &item.CreatedAt,
	); err != nil {
		return nil, err
	}
	item.DeliveryOptionID = optionID
	item.LatestDeliveryDate = latest
	fields := []*decimal.Decimal{&item.DeliveryFeeNet, &item.PlatformFeeNet, &item.BuyerFeeNet, &item.TotalNet, &item.TotalGross}
	for i, dst := range fields {
		d, err := decimal.NewFromString(raw[i])
		if err != nil {
			return nil, err
		}
		*dst = d
	}
	return &item, nil
}

func updateOrderTotals(ctx context.Context, tx pgx.Tx, orderID string) error {
	_, err := tx.Exec(ctx, `
UPDATE orders
SET total_net = COALESCE((
	SELECT SUM(total_net)
	FROM order_items
	WHERE order_id = $1
), 0),
    total_gross = COALESCE((
	SELECT SUM(total_gross)
	FROM order_items
	WHERE order_id = $1
), 0)
WHERE id = $1
`, orderID)
	return err
}
