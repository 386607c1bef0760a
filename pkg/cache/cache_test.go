package cache

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestFileCacheRoundTrip(t *testing.T) {
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache() error: %v", err)
	}
	defer c.Close()
	ctx := context.Background()

	if err := c.Set(ctx, "key1", []byte("svg bytes"), 0); err != nil {
		t.Fatalf("Set() error: %v", err)
	}

	data, ok, err := c.Get(ctx, "key1")
	if err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	if !ok {
		t.Fatal("Get() should hit after Set()")
	}
	if string(data) != "svg bytes" {
		t.Errorf("Get() = %q, want %q", data, "svg bytes")
	}
}

func TestFileCacheMiss(t *testing.T) {
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache() error: %v", err)
	}
	defer c.Close()

	_, ok, err := c.Get(context.Background(), "absent")
	if err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	if ok {
		t.Error("Get() on missing key should miss")
	}
}

func TestFileCacheExpiry(t *testing.T) {
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache() error: %v", err)
	}
	defer c.Close()
	ctx := context.Background()

	if err := c.Set(ctx, "key1", []byte("data"), time.Millisecond); err != nil {
		t.Fatalf("Set() error: %v", err)
	}
	time.Sleep(5 * time.Millisecond)

	_, ok, err := c.Get(ctx, "key1")
	if err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	if ok {
		t.Error("expired entry should miss")
	}
}

func TestFileCacheDelete(t *testing.T) {
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache() error: %v", err)
	}
	defer c.Close()
	ctx := context.Background()

	if err := c.Set(ctx, "key1", []byte("data"), 0); err != nil {
		t.Fatalf("Set() error: %v", err)
	}
	if err := c.Delete(ctx, "key1"); err != nil {
		t.Fatalf("Delete() error: %v", err)
	}
	if _, ok, _ := c.Get(ctx, "key1"); ok {
		t.Error("Get() after Delete() should miss")
	}

	// Deleting a missing key is fine.
	if err := c.Delete(ctx, "absent"); err != nil {
		t.Errorf("Delete() on missing key error: %v", err)
	}
}

func TestFileCacheCorruptEntry(t *testing.T) {
	dir := t.TempDir()
	c, err := NewFileCache(dir)
	if err != nil {
		t.Fatalf("NewFileCache() error: %v", err)
	}
	defer c.Close()
	ctx := context.Background()

	if err := c.Set(ctx, "key1", []byte("data"), 0); err != nil {
		t.Fatalf("Set() error: %v", err)
	}

	// Clobber the entry on disk.
	fc := c.(*FileCache)
	if err := os.WriteFile(fc.path("key1"), []byte("not json"), 0644); err != nil {
		t.Fatalf("WriteFile() error: %v", err)
	}

	_, ok, err := c.Get(ctx, "key1")
	if err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	if ok {
		t.Error("corrupt entry should miss")
	}
	if _, err := os.Stat(fc.path("key1")); !os.IsNotExist(err) {
		t.Error("corrupt entry should be removed")
	}
}

func TestFileCacheSharding(t *testing.T) {
	dir := t.TempDir()
	c, err := NewFileCache(dir)
	if err != nil {
		t.Fatalf("NewFileCache() error: %v", err)
	}
	defer c.Close()

	if err := c.Set(context.Background(), "key1", []byte("data"), 0); err != nil {
		t.Fatalf("Set() error: %v", err)
	}

	fc := c.(*FileCache)
	rel, err := filepath.Rel(dir, fc.path("key1"))
	if err != nil {
		t.Fatalf("Rel() error: %v", err)
	}
	parts := strings.Split(rel, string(filepath.Separator))
	if len(parts) != 2 || len(parts[0]) != 2 {
		t.Errorf("entry path %q should be sharded into a two-char subdir", rel)
	}
}

func TestNullCache(t *testing.T) {
	c := NewNullCache()
	ctx := context.Background()

	if err := c.Set(ctx, "key1", []byte("data"), 0); err != nil {
		t.Fatalf("Set() error: %v", err)
	}
	if _, ok, _ := c.Get(ctx, "key1"); ok {
		t.Error("NullCache should never hit")
	}
	if err := c.Delete(ctx, "key1"); err != nil {
		t.Errorf("Delete() error: %v", err)
	}
	if err := c.Close(); err != nil {
		t.Errorf("Close() error: %v", err)
	}
}

func TestDefaultKeyer(t *testing.T) {
	k := NewDefaultKeyer()

	wk := k.WorkflowKey("flow.json", []byte(`{"nodes":[]}`))
	if !strings.HasPrefix(wk, "workflow:") {
		t.Errorf("WorkflowKey prefix unexpected: %s", wk)
	}
	if wk != k.WorkflowKey("flow.json", []byte(`{"nodes":[]}`)) {
		t.Error("WorkflowKey should be deterministic")
	}
	if wk == k.WorkflowKey("flow.json", []byte(`{"nodes":[{}]}`)) {
		t.Error("changed definition bytes should change the key")
	}

	lk := k.LayoutKey("abc", LayoutKeyOpts{Width: 1280})
	if lk == k.LayoutKey("abc", LayoutKeyOpts{Width: 900}) {
		t.Error("changed viewport width should change the layout key")
	}
	if lk == k.LayoutKey("abc", LayoutKeyOpts{Width: 1280, Pinned: map[string][2]float64{"a": {1, 2}}}) {
		t.Error("pinned positions should change the layout key")
	}

	ak := k.ArtifactKey("def", ArtifactKeyOpts{Format: "svg"})
	if ak == k.ArtifactKey("def", ArtifactKeyOpts{Format: "html"}) {
		t.Error("changed format should change the artifact key")
	}
}

func TestScopedKeyer(t *testing.T) {
	scoped := NewScopedKeyer(NewDefaultKeyer(), "bridge:")

	wk := scoped.WorkflowKey("flow.json", []byte("{}"))
	if !strings.HasPrefix(wk, "bridge:workflow:") {
		t.Errorf("ScopedKeyer WorkflowKey unexpected: %s", wk)
	}
	if !strings.HasPrefix(scoped.LayoutKey("abc", LayoutKeyOpts{}), "bridge:") {
		t.Error("ScopedKeyer LayoutKey should be prefixed")
	}
	if !strings.HasPrefix(scoped.ArtifactKey("abc", ArtifactKeyOpts{}), "bridge:") {
		t.Error("ScopedKeyer ArtifactKey should be prefixed")
	}
}

func TestScopedKeyerNilInner(t *testing.T) {
	// Should use DefaultKeyer when inner is nil
	scoped := NewScopedKeyer(nil, "prefix:")
	if !strings.HasPrefix(scoped.WorkflowKey("f", nil), "prefix:workflow:") {
		t.Error("nil inner should fall back to DefaultKeyer")
	}
}

func TestHash(t *testing.T) {
	h := Hash([]byte("workflow"))
	if len(h) != 64 {
		t.Errorf("Hash length = %d, want 64", len(h))
	}
	if h != Hash([]byte("workflow")) {
		t.Error("Hash should be deterministic")
	}
}
