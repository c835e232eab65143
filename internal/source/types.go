// Package source derives schema descriptors from table definitions held in a
// database. Backends register themselves by kind; import
// internal/source/all to enable every built-in backend.
package source

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
)

var (
	ErrUnknownKind   = errors.New("unknown source kind")
	ErrTableNotFound = errors.New("table not found")
)

type ColumnInfo struct {
	Name     string
	Type     string
	Nullable bool
}

type TableInfo struct {
	Name    string
	Columns []ColumnInfo
}

// Inspector reads table definitions from one database.
type Inspector interface {
	FetchTable(ctx context.Context, table string) (*TableInfo, error)
	Close() error
}

// Config selects and connects an Inspector.
type Config struct {
	Kind string
	DSN  string
	// Database is the MySQL schema or PostgreSQL namespace to look in.
	// Empty means the connection's default.
	Database string
}

// Factory opens an Inspector for cfg.
type Factory func(ctx context.Context, cfg Config) (Inspector, error)

var (
	mu        sync.RWMutex
	factories = map[string]Factory{}
)

// Register makes a backend available under kind. It panics on a duplicate
// registration.
func Register(kind string, f Factory) {
	mu.Lock()
	defer mu.Unlock()
	if _, dup := factories[kind]; dup {
		panic("source: Register called twice for " + kind)
	}
	factories[kind] = f
}

// Open connects the backend named by cfg.Kind.
func Open(ctx context.Context, cfg Config) (Inspector, error) {
	mu.RLock()
	f, ok := factories[cfg.Kind]
	mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %q (registered: %v)", ErrUnknownKind, cfg.Kind, Kinds())
	}
	if cfg.DSN == "" {
		return nil, fmt.Errorf("%s: dsn is required", cfg.Kind)
	}
	return f(ctx, cfg)
}

// Kinds lists the registered backends in sorted order.
func Kinds() []string {
	mu.RLock()
	defer mu.RUnlock()
	kinds := make([]string, 0, len(factories))
	for k := range factories {
		kinds = append(kinds, k)
	}
	sort.Strings(kinds)
	return kinds
}
