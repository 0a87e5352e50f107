// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package cache

import (
	"context"
	"net/url"
	"os"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

// testValkeyClient returns a Redis client for tests.
// Skips if Valkey is unavailable.
func testValkeyClient(t *testing.T) *redis.Client {
	t.Helper()

	host := envOr("VALKEY_HOST", "localhost")
	port := envOr("VALKEY_PORT", "6379")
	password := os.Getenv("VALKEY_PASSWORD")

	client := redis.NewClient(&redis.Options{
		Addr:     host + ":" + port,
		Password: password,
		DB:       15, // Use DB 15 for tests.
	})

	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		t.Skipf("skipping integration test: Valkey not reachable: %v", err)
	}

	t.Cleanup(func() {
		keys, _ := client.Keys(ctx, "page:*").Result()
		if len(keys) > 0 {
			client.Del(ctx, keys...)
		}
		client.Close()
	})

	return client
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func TestConnectValkey(t *testing.T) {
	host := envOr("VALKEY_HOST", "localhost")
	port := envOr("VALKEY_PORT", "6379")

	client, err := ConnectValkey(host, port, os.Getenv("VALKEY_PASSWORD"))
	if err != nil {
		t.Skipf("skipping: Valkey not available: %v", err)
	}
	defer client.Close()

	pong, err := client.Ping(context.Background()).Result()
	if err != nil {
		t.Fatalf("Ping: %v", err)
	}
	if pong != "PONG" {
		t.Errorf("expected PONG, got %q", pong)
	}
}

func TestPageCacheSetAndGet(t *testing.T) {
	client := testValkeyClient(t)
	pc := NewPageCache(client, 1*time.Minute)

	ctx := context.Background()

	data, ok := pc.Get(ctx, "test-page")
	if ok {
		t.Error("expected cache miss")
	}
	if data != nil {
		t.Error("expected nil data on miss")
	}

	html := []byte("<html><body>Resources</body></html>")
	pc.Set(ctx, "test-page", html)

	data, ok = pc.Get(ctx, "test-page")
	if !ok {
		t.Error("expected cache hit")
	}
	if string(data) != string(html) {
		t.Errorf("data mismatch: got %q, want %q", data, html)
	}
}

func TestPageCacheInvalidateAll(t *testing.T) {
	client := testValkeyClient(t)
	pc := NewPageCache(client, 1*time.Minute)

	ctx := context.Background()
	keys := []string{HomepageKey(), AboutKey(), DetailKey("documents", "2")}
	for _, key := range keys {
		pc.Set(ctx, key, []byte("x"))
	}

	pc.InvalidateAll(ctx)

	for _, key := range keys {
		if _, ok := pc.Get(ctx, key); ok {
			t.Errorf("expected miss for %q after InvalidateAll", key)
		}
	}
}

// TestNilPageCache verifies a nil cache is a usable no-op.
func TestNilPageCache(t *testing.T) {
	var pc *PageCache
	ctx := context.Background()

	pc.Set(ctx, "k", []byte("v"))
	if _, ok := pc.Get(ctx, "k"); ok {
		t.Error("nil cache should never hit")
	}
	pc.InvalidateAll(ctx)
}

func TestNewPageCacheDefaultTTL(t *testing.T) {
	pc := NewPageCache(nil, 0)
	if pc.ttl != DefaultPageTTL {
		t.Errorf("expected DefaultPageTTL (%v), got %v", DefaultPageTTL, pc.ttl)
	}
}

func TestKeys(t *testing.T) {
	if HomepageKey() != "_homepage" {
		t.Errorf("HomepageKey: got %q", HomepageKey())
	}
	if AboutKey() != "_about" {
		t.Errorf("AboutKey: got %q", AboutKey())
	}
	if got := DetailKey("presentations", "3"); got != "detail:presentations:3" {
		t.Errorf("DetailKey: got %q", got)
	}
}

func TestResourcesKey(t *testing.T) {
	a := url.Values{"q": {"equity"}, "category": {"Inclusion"}}
	b := url.Values{"category": {"Inclusion"}, "q": {"equity"}}

	if ResourcesKey("/resources", a) != ResourcesKey("/resources", b) {
		t.Error("parameter order should not change the key")
	}
	if ResourcesKey("/resources", a) == ResourcesKey("/resources/videos", a) {
		t.Error("different listing paths must not share a key")
	}
	want := "resources:/resources?category=Inclusion&q=equity"
	if got := ResourcesKey("/resources", a); got != want {
		t.Errorf("ResourcesKey = %q, want %q", got, want)
	}
}

func TestFragmentKey(t *testing.T) {
	key := DetailKey("videos", "1")
	if got := FragmentKey("", key); got != key {
		t.Errorf("full page key changed: %q", got)
	}
	if got := FragmentKey("content", key); got != "fragment:content:detail:videos:1" {
		t.Errorf("FragmentKey = %q", got)
	}
	if FragmentKey("results", key) == FragmentKey("content", key) {
		t.Error("different fragments must not share a key")
	}
}
