package redis

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

func unreachableClient(t *testing.T) *redis.Client {
	t.Helper()
	c := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func TestNewLoginThrottle_Defaults(t *testing.T) {
	th := NewLoginThrottle(nil, 0, 0)
	if th.maxFailures != DefaultMaxFailures {
		t.Errorf("maxFailures = %d, want %d", th.maxFailures, DefaultMaxFailures)
	}
	if th.window != DefaultFailureWindow {
		t.Errorf("window = %v, want %v", th.window, DefaultFailureWindow)
	}
}

func TestLoginThrottle_KeyIsNormalized(t *testing.T) {
	th := NewLoginThrottle(nil, 3, time.Minute)
	if got := th.key("  Alice@Example.COM "); got != "login:fail:alice@example.com" {
		t.Fatalf("key = %q", got)
	}
}

func TestLoginThrottle_SurfacesConnectionErrors(t *testing.T) {
	th := NewLoginThrottle(unreachableClient(t), 3, time.Minute)
	ctx := context.Background()

	if blocked, err := th.Blocked(ctx, "a@b.co"); err == nil || blocked {
		t.Fatalf("Blocked = %v, %v; want false with error", blocked, err)
	}
	if err := th.RecordFailure(ctx, "a@b.co"); err == nil {
		t.Fatal("RecordFailure: expected error")
	}
	if err := th.Reset(ctx, "a@b.co"); err == nil {
		t.Fatal("Reset: expected error")
	}
}

func TestConnect_FailsFastOnUnreachableServer(t *testing.T) {
	_, err := Connect(context.Background(), Config{Addr: "127.0.0.1:1", Timeout: 100 * time.Millisecond})
	if err == nil {
		t.Fatal("expected ping error")
	}
}

func TestConfig_Enabled(t *testing.T) {
	if (Config{}).Enabled() {
		t.Fatal("empty address must disable redis")
	}
	if !(Config{Addr: "localhost:6379"}).Enabled() {
		t.Fatal("address must enable redis")
	}
}
