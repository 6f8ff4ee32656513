package cache

import (
	"context"
	"testing"
	"time"
)

func TestNullCache(t *testing.T) {
	ctx := context.Background()
	c := NewNullCache()
	defer c.Close()

	// Get always returns miss
	data, hit, err := c.Get(ctx, "key")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if hit {
		t.Error("NullCache.Get should always return miss")
	}
	if data != nil {
		t.Error("NullCache.Get should return nil data")
	}

	// Set does nothing (no error)
	if err := c.Set(ctx, "key", []byte("value"), time.Hour); err != nil {
		t.Errorf("Set error: %v", err)
	}

	// Still a miss after Set
	_, hit, _ = c.Get(ctx, "key")
	if hit {
		t.Error("NullCache should not store data")
	}

	// Delete does nothing (no error)
	if err := c.Delete(ctx, "key"); err != nil {
		t.Errorf("Delete error: %v", err)
	}
}

func TestFileCache(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache error: %v", err)
	}
	defer c.Close()

	// Miss before Set
	_, hit, err := c.Get(ctx, "report:abc")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if hit {
		t.Error("expected miss before Set")
	}

	// Set then Get
	if err := c.Set(ctx, "report:abc", []byte("payload"), time.Hour); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	data, hit, err := c.Get(ctx, "report:abc")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if !hit {
		t.Fatal("expected hit after Set")
	}
	if string(data) != "payload" {
		t.Errorf("Get = %q, want %q", data, "payload")
	}

	// Expired entries are treated as misses
	if err := c.Set(ctx, "report:old", []byte("stale"), -time.Minute); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	_, hit, _ = c.Get(ctx, "report:old")
	if hit {
		t.Error("expired entry should be a miss")
	}

	// Delete is idempotent
	if err := c.Delete(ctx, "report:abc"); err != nil {
		t.Errorf("Delete error: %v", err)
	}
	if err := c.Delete(ctx, "report:abc"); err != nil {
		t.Errorf("Delete of missing key error: %v", err)
	}
	_, hit, _ = c.Get(ctx, "report:abc")
	if hit {
		t.Error("deleted entry should be a miss")
	}
}

func TestHash(t *testing.T) {
	// Test determinism
	h1 := Hash([]byte("hello"))
	h2 := Hash([]byte("hello"))
	if h1 != h2 {
		t.Error("Hash should be deterministic")
	}

	// Test different inputs produce different hashes
	h3 := Hash([]byte("world"))
	if h1 == h3 {
		t.Error("Different inputs should produce different hashes")
	}

	// Test hash length (SHA-256 produces 64 hex chars)
	if len(h1) != 64 {
		t.Errorf("Hash length should be 64, got %d", len(h1))
	}
}

func TestDefaultKeyer(t *testing.T) {
	k := NewDefaultKeyer()

	// Same inputs produce the same key
	k1 := k.ReportKey("hash123", ReportKeyOpts{FallbackFamily: "Inter", YieldEvery: 50})
	k2 := k.ReportKey("hash123", ReportKeyOpts{FallbackFamily: "Inter", YieldEvery: 50})
	if k1 != k2 {
		t.Error("identical inputs should produce identical keys")
	}

	// Different options produce different keys
	k3 := k.ReportKey("hash123", ReportKeyOpts{FallbackFamily: "Roboto", YieldEvery: 50})
	if k1 == k3 {
		t.Error("different ReportKeyOpts should produce different keys")
	}

	// Different snapshot hashes produce different keys
	k4 := k.ReportKey("hash456", ReportKeyOpts{FallbackFamily: "Inter", YieldEvery: 50})
	if k1 == k4 {
		t.Error("different snapshot hashes should produce different keys")
	}

	// Keys carry the report prefix
	if len(k1) < 7 || k1[:7] != "report:" {
		t.Errorf("ReportKey should be prefixed with report:, got %s", k1)
	}
}
