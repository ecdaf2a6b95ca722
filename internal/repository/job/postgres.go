package job

import (
	"context"
	"errors"
	"io"
	"log"
	"time"

	"foodnet/internal/domain"
	"github.com/jackc/pgx/v5"
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

const jobColumns = `
id::text, region_id::text, order_id::text, order_item_id::text, waypoints, length_m, claimed_by::text, created_at, claimed_at
`

func (r *postgresRepo) Create(ctx context.Context, job domain.Job) (*domain.Job, error) {
	const q = `
INSERT INTO jobs (region_id, order_id, order_item_id, waypoints, length_m)
VALUES ($1, $2, $3, $4, $5)
RETURNING id::text, created_at
`
	out := job
	err := r.pool.QueryRow(ctx, q,
		job.RegionID, job.OrderID, job.OrderItemID, job.Waypoints, job.LengthM,
	).Scan(&out.ID, &out.CreatedAt)
	if err != nil {
		r.logger.Printf("job repo: create order_item_id=%s error=%v", job.OrderItemID, err)
		return nil, err
	}
	return &out, nil
}

func (r *postgresRepo) GetByID(ctx context.Context, regionID, id string) (*domain.Job, error) {
	q := `SELECT ` + jobColumns + `
FROM jobs
WHERE region_id = $1 AND id = $2
`
	j, err := scanJob(r.pool.QueryRow(ctx, q, regionID, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return j, nil
}

func (r *postgresRepo) ListOpen(ctx context.Context, regionID string) ([]domain.Job, error) {
	q := `SELECT ` + jobColumns + `
FROM jobs
WHERE region_id = $1 AND claimed_by IS NULL
ORDER BY created_at ASC
`
	return r.list(ctx, q, regionID)
}

func (r *postgresRepo) ListByUser(ctx context.Context, regionID, userID string) ([]domain.Job, error) {
	q := `SELECT ` + jobColumns + `
FROM jobs
WHERE region_id = $1 AND claimed_by = $2
ORDER BY created_at ASC
`
	return r.list(ctx, q, regionID, userID)
}

func (r *postgresRepo) Claim(ctx context.Context, jobID, userID string) (bool, error) {
	// Conditional update: the WHERE clause is the single-writer
	// check-then-set. Two concurrent claims cannot both match.
	const q = `
UPDATE jobs j
SET claimed_by = $1, claimed_at = now()
FROM orders o
WHERE j.id = $2 AND j.order_id = o.id AND j.claimed_by IS NULL AND o.processed = false
`
	cmd, err := r.pool.Exec(ctx, q, userID, jobID)
	if err != nil {
		r.logger.Printf("job repo: claim id=%s user_id=%s error=%v", jobID, userID, err)
		return false, err
	}
	return cmd.RowsAffected() == 1, nil
}

func (r *postgresRepo) Unclaim(ctx context.Context, jobID, userID string) (bool, error) {
	const q = `
UPDATE jobs
SET claimed_by = NULL, claimed_at = NULL
WHERE id = $1 AND claimed_by = $2
`
	cmd, err := r.pool.Exec(ctx, q, jobID, userID)
	if err != nil {
		r.logger.Printf("job repo: unclaim id=%s user_id=%s error=%v", jobID, userID, err)
		return false, err
	}
	return cmd.RowsAffected() == 1, nil
}

func (r *postgresRepo) UpdateLength(ctx context.Context, jobID string, lengthM int64) error {
	cmd, err := r.pool.Exec(ctx, `
UPDATE jobs
SET length_m = $1
WHERE id = $2
`, lengthM, jobID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *postgresRepo) list(ctx context.Context, q string, args ...interface{}) ([]domain.Job, error) {
	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Job
	for rows.Next() {
		j, err := scanJob(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *j)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func scanJob(row pgx.Row) (*domain.Job, error) {
	var (
		j         domain.Job
		claimedBy *string
		claimedAt *time.Time
	)
	if err := row.Scan(
		&j.ID, &j.RegionID, &j.OrderID, &j.OrderItemID, &j.Waypoints, &j.LengthM, &claimedBy, &j.CreatedAt, &claimedAt,
	); err != nil {
		return nil, err
	}
	j.ClaimedBy = claimedBy
	j.ClaimedAt = claimedAt
	return &j, nil
}
