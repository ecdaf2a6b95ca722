package route

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/sony/gobreaker/v2"
)

// Calculator resolves the driving distance for a set of waypoints.
// Services depend on this interface so tests can substitute the
// external routing collaborator.
type Calculator interface {
	RouteLength(ctx context.Context, waypoints []string) (int64, error)
}

// Client calls the external routing service over HTTP. Calls go
// through a circuit breaker so a down routing service fails fast
// instead of stalling checkouts.
type Client struct {
	baseURL string
	http    *http.Client
	breaker *gobreaker.CircuitBreaker[int64]
	logger  *log.Logger
}

func NewClient(baseURL string, logger *log.Logger) *Client {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	breaker := gobreaker.NewCircuitBreaker[int64](gobreaker.Settings{
		Name:    "route-service",
		Timeout: 30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
	})
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 10 * time.Second},
		breaker: breaker,
		logger:  logger,
	}
}

type lengthRequest struct {
	Waypoints []string `json:"waypoints"`
}

type lengthResponse struct {
	LengthMeters int64 `json:"lengthMeters"`
}

// RouteLength returns the route length in meters for the given
// waypoints (addresses, first to last).
func (c *Client) RouteLength(ctx context.Context, waypoints []string) (int64, error) {
	if len(waypoints) < 2 {
		return 0, fmt.Errorf("route: need at least 2 waypoints, got %d", len(waypoints))
	}
	return c.breaker.Execute(func() (int64, error) {
		body, err := json.Marshal(lengthRequest{Waypoints: waypoints})
		if err != nil {
			return 0, err
		}
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/route/length", bytes.NewReader(body))
		if err != nil {
			return 0, err
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := c.http.Do(req)
		if err != nil {
			c.logger.Printf("route client: request error=%v", err)
			return 0, err
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			c.logger.Printf("route client: unexpected status=%d", resp.StatusCode)
			return 0, fmt.Errorf("route: unexpected status %d", resp.StatusCode)
		}

		var out lengthResponse
		if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
			return 0, err
		}
		if out.LengthMeters < 0 {
			return 0, fmt.Errorf("route: negative length %d", out.LengthMeters)
		}
		return out.LengthMeters, nil
	})
}
