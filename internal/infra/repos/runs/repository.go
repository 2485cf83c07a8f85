// Package runs persists the generation run ledger.
package runs

import (
	"strings"

	"github.com/mmrzaf/tpchgen/internal/domain"
)

// Repository stores and retrieves generation runs.
type Repository interface {
	Init() error
	Create(run *domain.Run) error
	Update(run *domain.Run) error
	Get(id string) (*domain.Run, error)
	List(limit int, status string) ([]*domain.Run, error)
	Close() error
}

// NewRepository picks the backing store from the DSN. Postgres URLs get the
// network-backed ledger; anything else is treated as a SQLite file path.
func NewRepository(dsn string) Repository {
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		return NewPostgresRepository(dsn)
	}
	return NewSQLiteRepository(dsn)
}
