package region

import (
	"context"
	"path/filepath"
	"testing"
)

func TestMemoryCache(t *testing.T) {
	c := NewMemory()

	if _, ok, _ := c.Get("somewhere"); ok {
		t.Fatal("empty cache reported a hit")
	}
	if err := c.Put("somewhere", "DE-BY"); err != nil {
		t.Fatalf("Put: %v", err)
	}
	code, ok, err := c.Get("somewhere")
	if err != nil || !ok || code != "DE-BY" {
		t.Errorf("Get = (%q, %v, %v), want (DE-BY, true, nil)", code, ok, err)
	}
}

func TestDBCache(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lookups.db")

	c, err := OpenDB(path)
	if err != nil {
		t.Fatalf("OpenDB: %v", err)
	}
	if err := c.Put("Marienplatz 1, München", "DE-BY"); err != nil {
		t.Fatalf("Put: %v", err)
	}
	// Empty codes are cached too.
	if err := c.Put("unknown place", ""); err != nil {
		t.Fatalf("Put empty: %v", err)
	}
	if err := c.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	// Entries survive reopening.
	c, err = OpenDB(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer c.Close()

	code, ok, err := c.Get("Marienplatz 1, München")
	if err != nil || !ok || code != "DE-BY" {
		t.Errorf("Get = (%q, %v, %v), want (DE-BY, true, nil)", code, ok, err)
	}
	code, ok, err = c.Get("unknown place")
	if err != nil || !ok || code != "" {
		t.Errorf("Get empty = (%q, %v, %v), want (\"\", true, nil)", code, ok, err)
	}
	if _, ok, _ = c.Get("never seen"); ok {
		t.Error("miss reported as hit")
	}
}

func TestDBCacheOverwrite(t *testing.T) {
	c, err := OpenDB(filepath.Join(t.TempDir(), "lookups.db"))
	if err != nil {
		t.Fatalf("OpenDB: %v", err)
	}
	defer c.Close()

	c.Put("addr", "US-CA")
	c.Put("addr", "US-NY")
	code, _, _ := c.Get("addr")
	if code != "US-NY" {
		t.Errorf("Get after overwrite = %q, want US-NY", code)
	}
}

func TestWithCacheSingleLookup(t *testing.T) {
	calls := 0
	backend := ResolverFunc(func(_ context.Context, address string) (string, error) {
		calls++
		return "DE-BY", nil
	})
	r := WithCache(backend, NewMemory())

	for i := 0; i < 3; i++ {
		code, err := r.Resolve(context.Background(), "Marienplatz 1")
		if err != nil || code != "DE-BY" {
			t.Fatalf("Resolve = (%q, %v)", code, err)
		}
	}
	if calls != 1 {
		t.Errorf("backend called %d times, want 1", calls)
	}
}

func TestWithCacheCachesEmptyCode(t *testing.T) {
	calls := 0
	backend := ResolverFunc(func(_ context.Context, address string) (string, error) {
		calls++
		return "", nil
	})
	r := WithCache(backend, NewMemory())

	r.Resolve(context.Background(), "nowhere")
	r.Resolve(context.Background(), "nowhere")
	if calls != 1 {
		t.Errorf("empty code not cached: %d backend calls", calls)
	}
}
