package region

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

// Cache remembers resolved codes keyed by exact address text. A cached empty
// code is a valid entry: "we asked, there is no code" is not retried.
type Cache interface {
	Get(address string) (code string, ok bool, err error)
	Put(address, code string) error
}

// Memory is a process-local cache.
type Memory struct {
	mu      sync.RWMutex
	entries map[string]string
}

// NewMemory returns an empty in-memory cache.
func NewMemory() *Memory {
	return &Memory{entries: make(map[string]string)}
}

func (m *Memory) Get(address string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	code, ok := m.entries[address]
	return code, ok, nil
}

func (m *Memory) Put(address, code string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[address] = code
	return nil
}

// DB is a persistent SQLite-backed cache, so repeated runs over the same
// file do not repeat paid geocoding calls.
type DB struct {
	db *sql.DB
}

// OpenDB opens (or creates) the cache database at path and ensures the
// region_lookups table exists.
func OpenDB(path string) (*DB, error) {
	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(wal)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open cache db: %w", err)
	}

	const ddl = `CREATE TABLE IF NOT EXISTS region_lookups (
		address    TEXT PRIMARY KEY,
		code       TEXT NOT NULL,
		updated_at INTEGER NOT NULL
	)`
	if _, err := db.Exec(ddl); err != nil {
		db.Close()
		return nil, fmt.Errorf("create region_lookups table: %w", err)
	}

	return &DB{db: db}, nil
}

func (c *DB) Get(address string) (string, bool, error) {
	var code string
	err := c.db.QueryRow(`SELECT code FROM region_lookups WHERE address = ?`, address).Scan(&code)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("cache get: %w", err)
	}
	return code, true, nil
}

func (c *DB) Put(address, code string) error {
	_, err := c.db.Exec(
		`INSERT OR REPLACE INTO region_lookups (address, code, updated_at) VALUES (?, ?, ?)`,
		address, code, time.Now().Unix(),
	)
	if err != nil {
		return fmt.Errorf("cache put: %w", err)
	}
	return nil
}

func (c *DB) Close() error {
	return c.db.Close()
}

// cached wraps a resolver so each distinct address text hits the backend at
// most once. Resolver errors are not cached; the next occurrence retries.
type cached struct {
	next  Resolver
	cache Cache
}

// WithCache attaches an owned cache to a resolver.
func WithCache(next Resolver, cache Cache) Resolver {
	return &cached{next: next, cache: cache}
}

func (c *cached) Resolve(ctx context.Context, address string) (string, error) {
	if code, ok, err := c.cache.Get(address); err == nil && ok {
		return code, nil
	}
	code, err := c.next.Resolve(ctx, address)
	if err != nil {
		return "", err
	}
	// A failed write only costs a repeat lookup later.
	_ = c.cache.Put(address, code)
	return code, nil
}
