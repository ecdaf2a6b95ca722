package domain

import "time"

// Job is a delivery task derived from an order item that uses
// third-party logistics. ClaimedBy is nil while the job is open.
type Job struct {
	ID          string     `json:"id"`
	RegionID    string     `json:"-"`
	OrderID     string     `json:"orderId"`
	OrderItemID string     `json:"orderItemId"`
	Waypoints   []string   `json:"waypoints,omitempty"`
	LengthM     int64      `json:"lengthMeters"`
	ClaimedBy   *string    `json:"claimedBy,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	ClaimedAt   *time.Time `json:"claimedAt,omitempty"`
}

// Claimed reports whether the job is currently assigned.
func (j Job) Claimed() bool {
	return j.ClaimedBy != nil
}
