package config

import (
	"fmt"
	"time"

	"prefacturation_service/internal/domain/entities"
	"prefacturation_service/internal/domain/reconciliation"

	"github.com/kelseyhightower/envconfig"
)

const (
	StorageDynamoDB = "dynamodb"
	StoragePostgres = "postgres"
	StorageSQLite   = "sqlite"
	StorageMemory   = "memory"

	LockMemory = "memory"
	LockRedis  = "redis"
)

// Config holds runtime configuration for the API and the worker.
type Config struct {
	Port int `envconfig:"PORT" default:"8080"`

	StorageDriver string `envconfig:"STORAGE_DRIVER" default:"dynamodb"`
	DatabaseDSN   string `envconfig:"DATABASE_DSN"`
	DBDebug       bool   `envconfig:"DB_DEBUG" default:"false"`

	LockDriver    string        `envconfig:"LOCK_DRIVER" default:"memory"`
	RedisAddr     string        `envconfig:"REDIS_ADDR" default:"127.0.0.1:6379"`
	RedisPassword string        `envconfig:"REDIS_PASSWORD"`
	RedisDB       int           `envconfig:"REDIS_DB" default:"0"`
	LockTTL       time.Duration `envconfig:"LOCK_TTL" default:"30s"`
	LockWait      time.Duration `envconfig:"LOCK_WAIT" default:"5s"`

	PriceTolerancePercent      float64       `envconfig:"PRICE_TOLERANCE_PERCENT" default:"2"`
	DistanceTolerancePercent   float64       `envconfig:"DISTANCE_TOLERANCE_PERCENT" default:"5"`
	OptionsTolerancePercent    float64       `envconfig:"OPTIONS_TOLERANCE_PERCENT" default:"2"`
	PalletsToleranceAbsolute   float64       `envconfig:"PALLETS_TOLERANCE_ABSOLUTE" default:"0"`
	WaitingToleranceMinutes    float64       `envconfig:"WAITING_TIME_TOLERANCE_MINUTES" default:"1"`
	VolumeTolerancePercent     float64       `envconfig:"VOLUME_TOLERANCE_PERCENT" default:"5"`
	LateGracePeriod            time.Duration `envconfig:"LATE_GRACE_PERIOD" default:"2h"`
	PalletDebtThreshold        float64       `envconfig:"PALLET_DEBT_THRESHOLD" default:"0"`
	CarrierValidationWindow    time.Duration `envconfig:"CARRIER_VALIDATION_WINDOW" default:"72h"`
	RequiredVigilanceDocuments []string      `envconfig:"REQUIRED_VIGILANCE_DOCUMENTS" default:"urssaf,insurance,transport_license,kbis"`

	DocumentsServiceURL string        `envconfig:"DOCUMENTS_SERVICE_URL"`
	VigilanceServiceURL string        `envconfig:"VIGILANCE_SERVICE_URL"`
	PalletsServiceURL   string        `envconfig:"PALLETS_SERVICE_URL"`
	OrdersServiceURL    string        `envconfig:"ORDERS_SERVICE_URL"`
	FactsTimeout        time.Duration `envconfig:"FACTS_TIMEOUT" default:"5s"`
	FactsRateLimit      float64       `envconfig:"FACTS_RATE_LIMIT" default:"50"`

	CORSAllowedOrigins []string `envconfig:"CORS_ALLOWED_ORIGINS" default:"http://localhost:3000"`

	CarrierTimeoutCron   string `envconfig:"CARRIER_TIMEOUT_CRON" default:"@every 15m"`
	BlocksReevaluateCron string `envconfig:"BLOCKS_REEVALUATE_CRON" default:"@every 1h"`
	WorkerConcurrency    int    `envconfig:"WORKER_CONCURRENCY" default:"5"`
	// Empty disables the worker's /metrics listener.
	WorkerMetricsAddr string `envconfig:"WORKER_METRICS_ADDR" default:":9091"`
}

// LoadConfig reads configuration from environment variables.
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	switch c.StorageDriver {
	case StorageDynamoDB, StorageMemory:
	case StoragePostgres, StorageSQLite:
		if c.DatabaseDSN == "" {
			return fmt.Errorf("DATABASE_DSN must be provided for storage driver %q", c.StorageDriver)
		}
	default:
		return fmt.Errorf("unknown STORAGE_DRIVER %q", c.StorageDriver)
	}
	switch c.LockDriver {
	case LockMemory, LockRedis:
	default:
		return fmt.Errorf("unknown LOCK_DRIVER %q", c.LockDriver)
	}
	if c.LockTTL <= 0 || c.LockWait <= 0 {
		return fmt.Errorf("LOCK_TTL and LOCK_WAIT must be positive")
	}
	if c.CarrierValidationWindow <= 0 {
		return fmt.Errorf("CARRIER_VALIDATION_WINDOW must be positive")
	}
	return nil
}

// Tolerances builds the detector tolerances from the configured values.
func (c *Config) Tolerances() reconciliation.Tolerances {
	return reconciliation.Tolerances{
		entities.DiscrepancyTypePrice:       {Percent: c.PriceTolerancePercent},
		entities.DiscrepancyTypeDistance:    {Percent: c.DistanceTolerancePercent},
		entities.DiscrepancyTypeOptions:     {Percent: c.OptionsTolerancePercent},
		entities.DiscrepancyTypePalettes:    {Absolute: c.PalletsToleranceAbsolute},
		entities.DiscrepancyTypeWaitingTime: {Absolute: c.WaitingToleranceMinutes},
		entities.DiscrepancyTypeVolume:      {Percent: c.VolumeTolerancePercent},
	}
}

func (c *Config) BlockPolicy() reconciliation.BlockPolicy {
	return reconciliation.BlockPolicy{
		RequiredVigilance:   c.RequiredVigilanceDocuments,
		PalletDebtThreshold: c.PalletDebtThreshold,
		LateGracePeriod:     c.LateGracePeriod,
	}
}

// StateMachine wires the detector and the block evaluator with this configuration.
func (c *Config) StateMachine() *reconciliation.StateMachine {
	return reconciliation.NewStateMachine(
		c.Tolerances(),
		reconciliation.NewBlockEvaluator(c.BlockPolicy()),
		c.CarrierValidationWindow,
	)
}
