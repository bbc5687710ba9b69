// Package ratelimit throttles outbound subgraph queries. Hosted graph
// gateways enforce per-key request budgets; pacing requests on the client
// side avoids burning the budget on 429 responses and backoff sleeps.
package ratelimit

import (
	"context"
	"encoding/json"
	"fmt"

	"golang.org/x/time/rate"

	"github.com/shieldpool/subgraph-go/internal/graph"
)

// Throttle wraps an Executor with a token-bucket limiter. Callers block
// until a token is available or the context is canceled.
type Throttle struct {
	exec    graph.Executor
	limiter *rate.Limiter
}

// NewThrottle creates a throttled executor allowing rps sustained requests
// per second with the given burst size
func NewThrottle(exec graph.Executor, rps float64, burst int) *Throttle {
	return &Throttle{
		exec:    exec,
		limiter: rate.NewLimiter(rate.Limit(rps), burst),
	}
}

// Execute waits for limiter admission, then delegates to the wrapped executor
func (t *Throttle) Execute(ctx context.Context, operationName string, query string, variables map[string]any) (map[string]json.RawMessage, error) {
	if err := t.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter wait aborted: %w", err)
	}
	return t.exec.Execute(ctx, operationName, query, variables)
}
