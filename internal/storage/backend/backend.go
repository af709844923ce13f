// Package backend opens the storage backend named in the configuration.
package backend

import (
	"context"
	"fmt"

	"github.com/carson-networks/fintrack-server/internal/config"
	"github.com/carson-networks/fintrack-server/internal/storage"
	"github.com/carson-networks/fintrack-server/internal/storage/memory"
	"github.com/carson-networks/fintrack-server/internal/storage/sqlconfig"
)

func Open(ctx context.Context, cfg *config.Config) (*storage.Storage, error) {
	switch cfg.Backend {
	case config.BackendMemory:
		return storage.New(memory.New()), nil
	case config.BackendPostgres:
		pg, err := sqlconfig.Open(ctx, cfg.PostgresDSN())
		if err != nil {
			return nil, fmt.Errorf("open postgres: %w", err)
		}
		return storage.New(pg), nil
	default:
		return nil, fmt.Errorf("unknown backend %q", cfg.Backend)
	}
}
