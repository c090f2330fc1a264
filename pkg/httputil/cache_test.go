package httputil

import (
	"errors"
	"testing"
	"time"
)

func TestCache_GetSet(t *testing.T) {
	c, err := NewCache(t.TempDir(), time.Hour)
	if err != nil {
		t.Fatalf("NewCache() failed: %v", err)
	}

	if err := c.Set("key", "value"); err != nil {
		t.Fatalf("Set() failed: %v", err)
	}

	var got string
	ok, err := c.Get("key", &got)
	if err != nil {
		t.Fatalf("Get() failed: %v", err)
	}
	if !ok {
		t.Fatal("Get() returned false for existing key")
	}
	if got != "value" {
		t.Errorf("got %q, want %q", got, "value")
	}
}

func TestCache_Miss(t *testing.T) {
	c, _ := NewCache(t.TempDir(), time.Hour)

	var got string
	ok, err := c.Get("missing", &got)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Error("Get() returned true for missing key")
	}
}

func TestCache_Expiration(t *testing.T) {
	c, _ := NewCache(t.TempDir(), 10*time.Millisecond)

	if err := c.Set("key", "value"); err != nil {
		t.Fatalf("Set() failed: %v", err)
	}

	time.Sleep(20 * time.Millisecond)

	var got string
	ok, err := c.Get("key", &got)
	if !errors.Is(err, ErrExpired) {
		t.Errorf("got error %v, want ErrExpired", err)
	}
	if ok {
		t.Error("Get() returned true for expired key")
	}
}

func TestCache_Namespace(t *testing.T) {
	c, _ := NewCache(t.TempDir(), time.Hour)
	ns := c.Namespace("pom:")

	if err := ns.Set("key", "namespaced"); err != nil {
		t.Fatalf("Set() failed: %v", err)
	}

	var got string
	if ok, _ := c.Get("key", &got); ok {
		t.Error("unprefixed key should not see namespaced entry")
	}
	if ok, _ := ns.Get("key", &got); !ok || got != "namespaced" {
		t.Errorf("namespaced Get() = %v, %q", ok, got)
	}
}

func TestCache_KeyStability(t *testing.T) {
	c, _ := NewCache(t.TempDir(), time.Hour)

	if c.keyPath("test") != c.keyPath("test") {
		t.Error("path should be deterministic")
	}
	if c.keyPath("test") == c.keyPath("other") {
		t.Error("different keys should produce different paths")
	}
}
