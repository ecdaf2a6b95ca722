package tasks

import (
	"context"
	"fmt"
	"io"
	"log"
	"time"

	taskrepo "foodnet/internal/repository/task"
)

// Handler executes one task payload. A returned error requeues the
// task with backoff.
type Handler func(ctx context.Context, payload []byte) error

// Poller drains due tasks from the outbox on a fixed tick and invokes
// the handler registered for each kind.
type Poller struct {
	repo     taskrepo.Repository
	handlers map[string]Handler
	tick     time.Duration
	batch    int
	logger   *log.Logger
}

func NewPoller(repo taskrepo.Repository, logger *log.Logger) *Poller {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Poller{
		repo:     repo,
		handlers: make(map[string]Handler),
		tick:     5 * time.Second,
		batch:    50,
		logger:   logger,
	}
}

// Register binds a handler to a task kind. Must be called before Run.
func (p *Poller) Register(kind string, h Handler) {
	p.handlers[kind] = h
}

// Run blocks until ctx is cancelled.
func (p *Poller) Run(ctx context.Context) {
	ticker := time.NewTicker(p.tick)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			p.drain(ctx)
		case <-ctx.Done():
			return
		}
	}
}

func (p *Poller) drain(ctx context.Context) {
	due, err := p.repo.Due(ctx, p.batch)
	if err != nil {
		p.logger.Printf("task poller: fetch due tasks: %v", err)
		return
	}
	for _, t := range due {
		handler, ok := p.handlers[t.Kind]
		if !ok {
			p.logger.Printf("task poller: no handler for kind=%s id=%s", t.Kind, t.ID)
			if err := p.repo.MarkFailed(ctx, t.ID, fmt.Sprintf("no handler for %s", t.Kind)); err != nil {
				p.logger.Printf("task poller: mark failed id=%s: %v", t.ID, err)
			}
			continue
		}
		if err := handler(ctx, t.Payload); err != nil {
			p.logger.Printf("task poller: kind=%s id=%s attempt=%d error=%v", t.Kind, t.ID, t.Attempts+1, err)
			if err := p.repo.MarkFailed(ctx, t.ID, err.Error()); err != nil {
				p.logger.Printf("task poller: mark failed id=%s: %v", t.ID, err)
			}
			continue
		}
		if err := p.repo.MarkDone(ctx, t.ID); err != nil {
			p.logger.Printf("task poller: mark done id=%s: %v", t.ID, err)
		}
	}
}
