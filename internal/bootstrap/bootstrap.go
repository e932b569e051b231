package bootstrap

import (
	"context"
	"fmt"
	"log"

	"prefacturation_service/internal/adapter/persistence/repository"
	"prefacturation_service/internal/infrastructure/config"
	"prefacturation_service/internal/infrastructure/database"
	"prefacturation_service/internal/infrastructure/facts"
	"prefacturation_service/internal/infrastructure/locking"
	"prefacturation_service/internal/usecase/interfaces"

	"github.com/redis/go-redis/v9"
)

// Dependencies are the adapters both binaries build from the configuration.
type Dependencies struct {
	Repository interfaces.IPrefacturationRepository
	Locker     interfaces.ILocker
	Facts      interfaces.IFactsProvider

	closers []func() error
}

// Close releases the connections opened by Build.
func (d *Dependencies) Close() {
	for i := len(d.closers) - 1; i >= 0; i-- {
		if err := d.closers[i](); err != nil {
			log.Printf("[bootstrap] close failed err=%v", err)
		}
	}
}

// Build opens the storage, the lock backend and the facts client selected by cfg.
func Build(ctx context.Context, cfg *config.Config) (*Dependencies, error) {
	deps := &Dependencies{}

	repo, err := newRepository(ctx, cfg, deps)
	if err != nil {
		deps.Close()
		return nil, err
	}
	deps.Repository = repo

	locker, err := newLocker(ctx, cfg, deps)
	if err != nil {
		deps.Close()
		return nil, err
	}
	deps.Locker = locker

	deps.Facts = facts.NewHTTPProvider(facts.Endpoints{
		Documents: cfg.DocumentsServiceURL,
		Vigilance: cfg.VigilanceServiceURL,
		Pallets:   cfg.PalletsServiceURL,
		Orders:    cfg.OrdersServiceURL,
	}, cfg.FactsTimeout, cfg.FactsRateLimit)

	log.Printf("[bootstrap] ready storage=%s lock=%s", cfg.StorageDriver, cfg.LockDriver)
	return deps, nil
}

func newRepository(ctx context.Context, cfg *config.Config, deps *Dependencies) (interfaces.IPrefacturationRepository, error) {
	switch cfg.StorageDriver {
	case config.StorageDynamoDB:
		ddb, err := database.ConnectDynamoDB(ctx)
		if err != nil {
			return nil, fmt.Errorf("connect dynamodb: %w", err)
		}
		repo := repository.NewPrefacturationDynamoRepository(ddb)
		if err := database.EnsurePrefacturationsTable(ctx, ddb, repo.TableName(), repo.OrderIndex()); err != nil {
			return nil, fmt.Errorf("ensure dynamodb table: %w", err)
		}
		return repo, nil
	case config.StoragePostgres, config.StorageSQLite:
		db, err := database.ConnectGorm(cfg.StorageDriver, cfg.DatabaseDSN, cfg.DBDebug)
		if err != nil {
			return nil, err
		}
		if sqlDB, err := db.DB(); err == nil {
			deps.closers = append(deps.closers, sqlDB.Close)
		}
		repo := repository.NewPrefacturationGormRepository(db)
		if err := repo.AutoMigrate(); err != nil {
			return nil, fmt.Errorf("migrate prefacturations: %w", err)
		}
		return repo, nil
	case config.StorageMemory:
		log.Printf("[bootstrap] using in-memory storage, data is lost on restart")
		return repository.NewPrefacturationMemoryRepository(), nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.StorageDriver)
	}
}

func newLocker(ctx context.Context, cfg *config.Config, deps *Dependencies) (interfaces.ILocker, error) {
	switch cfg.LockDriver {
	case config.LockRedis:
		client, err := NewRedisClient(ctx, cfg)
		if err != nil {
			return nil, err
		}
		deps.closers = append(deps.closers, client.Close)
		return locking.NewRedisLocker(client, cfg.LockTTL, cfg.LockWait), nil
	case config.LockMemory:
		return locking.NewMemoryLocker(cfg.LockWait), nil
	default:
		return nil, fmt.Errorf("unknown lock driver %q", cfg.LockDriver)
	}
}

// NewRedisClient connects to the Redis instance shared by the locks and the job queue.
func NewRedisClient(ctx context.Context, cfg *config.Config) (*redis.Client, error) {
	return locking.NewRedisClient(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
}
