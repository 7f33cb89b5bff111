// Package rate limits requests per client key.
package rate

import (
	"context"
)

// Limiter decides whether one more request for key fits the budget.
// An error means the decision could not be made; callers pick fail open or
// fail closed.
type Limiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}

// Func adapts a function to Limiter.
type Func func(ctx context.Context, key string) (bool, error)

func (f Func) Allow(ctx context.Context, key string) (bool, error) {
	return f(ctx, key)
}
