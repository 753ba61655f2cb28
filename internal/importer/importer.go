// Package importer loads job postings from external sources into the catalog.
package importer

import (
	"context"
	"fmt"

	applog "skill-match/internal/logger"
	"skill-match/internal/usecase"

	"go.uber.org/zap"
)

// Source yields catalog entries in the order they should be stored.
type Source interface {
	Name() string
	Fetch(ctx context.Context) ([]usecase.UpsertJobInput, error)
}

// Run fetches src and hands every entry to the catalog in one import.
func Run(ctx context.Context, src Source, catalog usecase.CatalogUsecase, logger *zap.Logger) (usecase.ImportResult, error) {
	if src == nil || catalog == nil {
		return usecase.ImportResult{}, fmt.Errorf("importer: nil source or catalog")
	}
	logger = applog.OrNop(logger)

	items, err := src.Fetch(ctx)
	if err != nil {
		return usecase.ImportResult{}, fmt.Errorf("fetch %s: %w", src.Name(), err)
	}
	logger.Info("catalog source fetched", zap.String("source", src.Name()), zap.Int("items", len(items)))
	if len(items) == 0 {
		return usecase.ImportResult{}, nil
	}

	res, err := catalog.Import(ctx, items)
	if err != nil {
		return usecase.ImportResult{}, fmt.Errorf("import %s: %w", src.Name(), err)
	}
	logger.Info("catalog imported",
		zap.String("source", src.Name()),
		zap.Int("created", res.Created),
		zap.Int("updated", res.Updated),
	)
	return res, nil
}
