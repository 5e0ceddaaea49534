package server

import (
	"context"
	log "log/slog"

	"github.com/pkg/errors"

	"productivity/internal/config"
	"productivity/internal/database"
	"productivity/internal/repository"
)

// OpenStore builds the store selected by STORE_DRIVER. The returned close
// function releases the SQL connection pool and is a no-op for memory.
func OpenStore(ctx context.Context, cfg *config.Config) (repository.Store, func() error, error) {
	if cfg.StoreDriver != config.StoreSQL {
		log.InfoContext(ctx, "using in-memory store")
		return repository.NewMemoryStore(), func() error { return nil }, nil
	}

	db, err := database.Connect(cfg.DatabaseURL, database.Options{})
	if err != nil {
		return nil, nil, errors.Wrap(err, "connect database")
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, nil, errors.Wrap(err, "database handle")
	}

	store := repository.NewGormStore(db)
	if err := store.Migrate(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, nil, errors.Wrap(err, "migrate")
	}
	return store, sqlDB.Close, nil
}

// SeedIfEnabled loads the sample catalog when SEED_SAMPLE_DATA is set.
func SeedIfEnabled(ctx context.Context, store repository.Store, cfg *config.Config) error {
	if !cfg.SeedSampleData {
		return nil
	}
	n, err := repository.Seed(ctx, store, repository.SeedOptions{Randomize: cfg.SeedRandom})
	if err != nil {
		return errors.Wrap(err, "seed sample data")
	}
	log.InfoContext(ctx, "sample data seeded", "tips", n)
	return nil
}
