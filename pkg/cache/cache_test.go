package cache

import (
	"errors"
	"testing"
	"time"
)

func TestDisabledCacheIsNoop(t *testing.T) {
	c, err := NewCache("", false, 0)
	if err != nil {
		t.Fatalf("expected no error for disabled cache, got %v", err)
	}
	if c.Enabled() {
		t.Fatalf("expected cache to be disabled")
	}
	if c.TTL() != time.Hour {
		t.Fatalf("expected default ttl of 1h, got %s", c.TTL())
	}

	if err := c.CacheDocument("artist", "band", map[string]string{"title": "Band"}); err != nil {
		t.Fatalf("expected set on disabled cache to succeed, got %v", err)
	}

	var dest map[string]string
	if err := c.GetCachedDocument("artist", "band", &dest); !errors.Is(err, ErrDisabled) {
		t.Fatalf("expected ErrDisabled, got %v", err)
	}

	if err := c.InvalidateDocument("artist", "band"); err != nil {
		t.Fatalf("expected invalidate on disabled cache to succeed, got %v", err)
	}
	if err := c.FlushAll(); err != nil {
		t.Fatalf("expected flush on disabled cache to succeed, got %v", err)
	}
}

func TestNilCacheIsDisabled(t *testing.T) {
	var c *Cache
	if c.Enabled() {
		t.Fatalf("expected nil cache to report disabled")
	}
	if err := c.Delete("key"); err != nil {
		t.Fatalf("expected delete on nil cache to succeed, got %v", err)
	}
}

func TestKeys(t *testing.T) {
	if key := DocumentKey("venue", "rockefeller"); key != "venue:slug:rockefeller" {
		t.Fatalf("unexpected document key %q", key)
	}
	if key := ListKey("page"); key != "page:all" {
		t.Fatalf("unexpected list key %q", key)
	}
}
