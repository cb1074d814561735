package redis

import (
	"bytes"
	"context"
	"testing"
	"time"
)

func TestCacheSetAndGet(t *testing.T) {
	client, mr := newTestRedisClient(t)
	defer mr.Close()
	defer client.Close()

	cache := NewCache(client)
	ctx := context.Background()

	snapshot := []byte(`{"date":"2026-08-28","initial_balance":70000}`)
	if err := cache.Set(ctx, "daily:2026-08-28", snapshot, time.Minute); err != nil {
		t.Fatalf("set failed: %v", err)
	}

	val, err := cache.Get(ctx, "daily:2026-08-28")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}

	if !bytes.Equal(val, snapshot) {
		t.Fatalf("expected %s, got %s", snapshot, val)
	}
}

func TestCacheGetMissing(t *testing.T) {
	client, mr := newTestRedisClient(t)
	defer mr.Close()
	defer client.Close()

	cache := NewCache(client)

	if _, err := cache.Get(context.Background(), "daily:2026-01-01"); err == nil {
		t.Fatalf("expected error for missing key")
	}
}

func TestCacheDelete(t *testing.T) {
	client, mr := newTestRedisClient(t)
	defer mr.Close()
	defer client.Close()

	cache := NewCache(client)
	ctx := context.Background()

	if err := cache.Set(ctx, "daily:2026-08-28", []byte("x"), time.Minute); err != nil {
		t.Fatalf("set failed: %v", err)
	}

	if err := cache.Delete(ctx, "daily:2026-08-28"); err != nil {
		t.Fatalf("delete failed: %v", err)
	}

	if _, err := cache.Get(ctx, "daily:2026-08-28"); err == nil {
		t.Fatalf("expected error getting deleted key")
	}
}
