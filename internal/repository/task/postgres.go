package task

import (
	"context"
	"time"

	"foodnet/internal/domain"
	"github.com/jackc/pgx/v5/pgxpool"
)

type postgresRepo struct {
	pool *pgxpool.Pool
}

func NewPostgres(pool *pgxpool.Pool) Repository {
	return &postgresRepo{pool: pool}
}

func (r *postgresRepo) Enqueue(ctx context.Context, kind string, payload []byte, runAt time.Time) error {
	const q = `
INSERT INTO tasks (kind, payload, run_at)
VALUES ($1, $2, $3)
`
	_, err := r.pool.Exec(ctx, q, kind, payload, runAt)
	return err
}

func (r *postgresRepo) Due(ctx context.Context, limit int) ([]Task, error) {
	const q = `
SELECT id::text, kind, payload, run_at, attempts, created_at
FROM tasks
WHERE done_at IS NULL AND run_at <= now()
ORDER BY run_at ASC
LIMIT $1
`
	rows, err := r.pool.Query(ctx, q, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []Task
	for rows.Next() {
		var t Task
		if err := rows.Scan(&t.ID, &t.Kind, &t.Payload, &t.RunAt, &t.Attempts, &t.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *postgresRepo) MarkDone(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `
UPDATE tasks
SET done_at = now()
WHERE id = $1 AND done_at IS NULL
`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *postgresRepo) MarkFailed(ctx context.Context, id string, reason string) error {
	// Failed tasks are retried with a linear backoff until an operator
	// intervenes; attempts and last_error keep the history visible.
	cmd, err := r.pool.Exec(ctx, `
UPDATE tasks
SET attempts = attempts + 1,
    last_error = $1,
    run_at = now() + (interval '30 seconds' * (attempts + 1))
WHERE id = $2 AND done_at IS NULL
`, reason, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
