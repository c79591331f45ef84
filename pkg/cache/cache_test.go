package cache

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestDisabledCache(t *testing.T) {
	c, err := NewCache("redis://localhost:6379/0", false)
	if err != nil {
		t.Fatalf("expected disabled cache without error, got %v", err)
	}
	if c.Enabled() {
		t.Fatalf("expected cache to be disabled")
	}

	if err := c.Set("k", "v", time.Minute); err != nil {
		t.Fatalf("Set on disabled cache returned %v", err)
	}
	var dest string
	if err := c.Get("k", &dest); !errors.Is(err, ErrCacheDisabled) {
		t.Fatalf("expected ErrCacheDisabled, got %v", err)
	}
	if err := c.CacheFunnelPage(1, "offer", map[string]string{"a": "b"}); err != nil {
		t.Fatalf("CacheFunnelPage returned %v", err)
	}
	if err := c.InvalidateFunnelPage(1, "offer"); err != nil {
		t.Fatalf("InvalidateFunnelPage returned %v", err)
	}
	if err := c.Ping(context.Background()); err != nil {
		t.Fatalf("Ping returned %v", err)
	}
	if err := c.Close(); err != nil {
		t.Fatalf("Close returned %v", err)
	}
}

func TestNilCacheIsDisabled(t *testing.T) {
	var c *Cache
	if c.Enabled() {
		t.Fatalf("expected nil cache to be disabled")
	}
	if err := c.Delete("a"); err != nil {
		t.Fatalf("Delete on nil cache returned %v", err)
	}
	if NewWithClient(nil).Enabled() {
		t.Fatalf("expected cache without client to be disabled")
	}
}

func TestFunnelPageKeys(t *testing.T) {
	if funnelPageIDKey(7) != "funnel_page:7" {
		t.Fatalf("unexpected id key %q", funnelPageIDKey(7))
	}
	if funnelPageSlugKey("spring") != "funnel_page:slug:spring" {
		t.Fatalf("unexpected slug key %q", funnelPageSlugKey("spring"))
	}
}
