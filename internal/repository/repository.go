// Package repository provides data persistence implementations.
package repository

import (
	"context"
	"fmt"

	"github.com/opensource-realty/casa/internal/domain"
)

// New creates a repository based on configuration.
func New(ctx context.Context, cfg domain.RepositoryConfig) (domain.Repository, error) {
	switch cfg.Driver {
	case "memory":
		return NewMemory(), nil

	case "mongo":
		return NewMongo(ctx, cfg)

	default:
		return nil, fmt.Errorf("unsupported storage driver: %s", cfg.Driver)
	}
}
