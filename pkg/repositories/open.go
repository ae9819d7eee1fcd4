package repositories

import (
	"context"
	"fmt"
	"strings"
)

// NewRepository selects a backend from the scheme of connStr:
// memory://, sqlite://<path>, postgres(ql)://..., http(s)://<api base url>.
func NewRepository(ctx context.Context, connStr string) (Repository, error) {
	scheme, rest, ok := strings.Cut(connStr, "://")
	if !ok {
		return nil, fmt.Errorf("invalid connection string %q: missing scheme", connStr)
	}

	switch scheme {
	case "memory":
		return NewMemoryRepository(), nil
	case "sqlite":
		if rest == "" {
			return nil, fmt.Errorf("invalid connection string %q: missing database path", connStr)
		}
		repository, err := NewSQLiteRepository(ctx, rest)
		if err != nil {
			return nil, fmt.Errorf("failed to create SQLite repository: %v", err)
		}
		return repository, nil
	case "postgres", "postgresql":
		repository, err := NewPostgresRepository(ctx, connStr)
		if err != nil {
			return nil, fmt.Errorf("failed to create Postgres repository: %v", err)
		}
		return repository, nil
	case "http", "https":
		return NewHTTPRepository(connStr), nil
	default:
		return nil, fmt.Errorf("unknown repository type %s", scheme)
	}
}
