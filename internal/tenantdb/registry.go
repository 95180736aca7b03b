// Package tenantdb manages one *sql.DB pool per tenant schema. Pools are
// opened lazily with search_path pinned in the DSN, so every statement issued
// through them resolves tables inside the tenant's schema.
package tenantdb

import (
	"database/sql"
	"fmt"
	"sync"

	_ "github.com/lib/pq"
)

type Registry struct {
	baseDSN string
	mu      sync.Mutex
	pools   map[string]*sql.DB
}

// NewRegistry creates a registry over a key=value lib/pq DSN without a
// search_path entry.
func NewRegistry(baseDSN string) *Registry {
	return &Registry{
		baseDSN: baseDSN,
		pools:   make(map[string]*sql.DB),
	}
}

// Get returns the pool bound to the given schema, opening it on first use.
func (r *Registry) Get(schema string) (*sql.DB, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if pool, ok := r.pools[schema]; ok {
		return pool, nil
	}

	dsn := fmt.Sprintf("%s search_path=%s,public", r.baseDSN, schema)
	pool, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open pool for schema %s: %w", schema, err)
	}
	pool.SetMaxOpenConns(10)
	pool.SetMaxIdleConns(2)

	r.pools[schema] = pool
	return pool, nil
}

// Close shuts down every tenant pool.
func (r *Registry) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	for schema, pool := range r.pools {
		pool.Close()
		delete(r.pools, schema)
	}
}
