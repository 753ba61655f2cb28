// Package seeder fills a fresh database with the data a demo install needs.
package seeder

import (
	"context"
	"fmt"

	"skill-match/internal/database"
	applog "skill-match/internal/logger"

	"go.uber.org/zap"
)

type Seeder interface {
	Name() string
	Run(ctx context.Context, db database.DB) error
}

// Defaults are the seeders run when DB_RUN_SEEDERS is set.
func Defaults() []Seeder {
	return []Seeder{CatalogSeeder{}}
}

// Runner runs seeders in order and stops at the first failure.
type Runner struct {
	Seeders []Seeder
	Logger  *zap.Logger
}

func (r Runner) Run(ctx context.Context, db database.DB) error {
	if db == nil {
		return fmt.Errorf("nil db")
	}
	log := applog.OrNop(r.Logger)

	for _, s := range r.Seeders {
		if s == nil {
			continue
		}
		if err := s.Run(ctx, db); err != nil {
			return fmt.Errorf("seed %s: %w", s.Name(), err)
		}
		log.Info("seeder finished", zap.String("seeder", s.Name()))
	}
	return nil
}
