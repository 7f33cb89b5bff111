package rate

import (
	"context"
	_ "embed"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/kochabx/jwekit/core/util/id"
)

var (
	//go:embed slidingwindow.lua
	slidingWindowLua       string
	slidingWindowLuaScript = redis.NewScript(slidingWindowLua)
)

// SlidingWindow counts requests in a redis sorted set per key, so the
// budget is shared by every instance using the same redis.
type SlidingWindow struct {
	client redis.Scripter
	prefix string
	window time.Duration
	limit  int
	now    func() time.Time
}

func NewSlidingWindow(client redis.Scripter, prefix string, limit int, window time.Duration) *SlidingWindow {
	return &SlidingWindow{
		client: client,
		prefix: prefix,
		window: window,
		limit:  limit,
		now:    time.Now,
	}
}

func (s *SlidingWindow) Allow(ctx context.Context, key string) (bool, error) {
	if s.limit <= 0 || s.window <= 0 {
		return true, nil
	}

	result, err := slidingWindowLuaScript.Run(ctx, s.client,
		[]string{s.prefix + key},
		s.now().UnixMilli(), s.window.Milliseconds(), s.limit, id.RequestID(),
	).Int64()
	if err != nil {
		return false, err
	}
	return result == 1, nil
}
