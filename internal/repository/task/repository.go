package task

import (
	"context"
	"time"
)

// Task is a deferred unit of work persisted in the outbox table.
type Task struct {
	ID        string
	Kind      string
	Payload   []byte
	RunAt     time.Time
	Attempts  int
	CreatedAt time.Time
}

type Repository interface {
	Enqueue(ctx context.Context, kind string, payload []byte, runAt time.Time) error
	// Due returns unprocessed tasks whose run time has passed.
	Due(ctx context.Context, limit int) ([]Task, error)
	MarkDone(ctx context.Context, id string) error
	MarkFailed(ctx context.Context, id string, reason string) error
}
