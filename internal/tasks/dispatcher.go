package tasks

import (
	"context"
	"encoding/json"
	"time"

	taskrepo "foodnet/internal/repository/task"
)

// Task kinds understood by the poller.
const (
	KindRecalculateFee = "job.recalculate_fee"
	KindCreateWallet   = "payment.create_wallet"
)

// RecalculateFeePayload asks for a delivery-fee recalculation of one job.
type RecalculateFeePayload struct {
	RegionID string `json:"regionId"`
	JobID    string `json:"jobId"`
}

// CreateWalletPayload asks the payment collaborator to prepare a
// wallet for a fresh order.
type CreateWalletPayload struct {
	RegionID string `json:"regionId"`
	OrderID  string `json:"orderId"`
	BuyerID  string `json:"buyerId"`
}

// Dispatcher defers work to the outbox. The request-scoped calculation
// finishes synchronously; only the side effect is deferred.
type Dispatcher interface {
	Dispatch(ctx context.Context, kind string, payload interface{}, delay time.Duration) error
}

// OutboxDispatcher persists tasks in the tasks table for the poller.
type OutboxDispatcher struct {
	repo taskrepo.Repository
}

func NewOutboxDispatcher(repo taskrepo.Repository) *OutboxDispatcher {
	return &OutboxDispatcher{repo: repo}
}

func (d *OutboxDispatcher) Dispatch(ctx context.Context, kind string, payload interface{}, delay time.Duration) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	return d.repo.Enqueue(ctx, kind, body, time.Now().Add(delay))
}
