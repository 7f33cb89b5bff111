package rate

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

type clock struct{ t time.Time }

func (c *clock) now() time.Time { return c.t }

func TestLocal(t *testing.T) {
	ctx := context.Background()
	c := &clock{t: time.Unix(1_700_000_000, 0)}

	l := NewLocal(2, time.Second, 0)
	l.now = c.now

	for i, want := range []bool{true, true, false} {
		got, err := l.Allow(ctx, "a")
		if err != nil {
			t.Fatal(err)
		}
		if got != want {
			t.Fatalf("request %d: got %v, want %v", i, got, want)
		}
	}

	if ok, _ := l.Allow(ctx, "b"); !ok {
		t.Fatal("keys must have separate budgets")
	}

	c.t = c.t.Add(time.Second)
	if ok, _ := l.Allow(ctx, "a"); !ok {
		t.Fatal("budget should refill after the window")
	}
}

func TestLocalSweep(t *testing.T) {
	ctx := context.Background()
	c := &clock{t: time.Unix(1_700_000_000, 0)}

	l := NewLocal(1, time.Second, 1)
	l.now = c.now

	_, _ = l.Allow(ctx, "a")
	_, _ = l.Allow(ctx, "b")
	if l.Len() != 2 {
		t.Fatalf("expected 2 keys, got %d", l.Len())
	}

	c.t = c.t.Add(2 * time.Minute)
	_, _ = l.Allow(ctx, "c")
	if l.Len() != 1 {
		t.Fatalf("expected idle keys to be dropped, got %d", l.Len())
	}
}

func TestLocalUnlimited(t *testing.T) {
	l := NewLocal(0, 0, 1)
	for range 100 {
		if ok, _ := l.Allow(context.Background(), "a"); !ok {
			t.Fatal("zero requests means no limit")
		}
	}
}

func TestSlidingWindow(t *testing.T) {
	ctx := context.Background()
	m := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: m.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	c := &clock{t: time.Unix(1_700_000_000, 0)}
	s := NewSlidingWindow(client, "jwekit:rate:", 3, time.Minute)
	s.now = c.now

	for i, want := range []bool{true, true, true, false} {
		got, err := s.Allow(ctx, "10.0.0.1")
		if err != nil {
			t.Fatal(err)
		}
		if got != want {
			t.Fatalf("request %d: got %v, want %v", i, got, want)
		}
	}

	if ok, err := s.Allow(ctx, "10.0.0.2"); err != nil || !ok {
		t.Fatalf("other key: ok=%v err=%v", ok, err)
	}

	c.t = c.t.Add(time.Minute + time.Millisecond)
	if ok, err := s.Allow(ctx, "10.0.0.1"); err != nil || !ok {
		t.Fatalf("window should have slid: ok=%v err=%v", ok, err)
	}

	if !m.Exists("jwekit:rate:10.0.0.1") {
		t.Fatal("expected prefixed window key")
	}
}

func TestSlidingWindowError(t *testing.T) {
	m := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: m.Addr(), MaxRetries: -1})
	t.Cleanup(func() { _ = client.Close() })
	m.Close()

	_, err := NewSlidingWindow(client, "p:", 1, time.Second).Allow(context.Background(), "k")
	if err == nil {
		t.Fatal("expected an error when redis is unreachable")
	}
}

func TestFunc(t *testing.T) {
	boom := errors.New("boom")
	var l Limiter = Func(func(context.Context, string) (bool, error) { return false, boom })
	if _, err := l.Allow(context.Background(), "k"); !errors.Is(err, boom) {
		t.Fatalf("got %v", err)
	}
}
