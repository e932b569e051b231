package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"prefacturation_service/internal/bootstrap"
	"prefacturation_service/internal/infrastructure/config"
	"prefacturation_service/internal/infrastructure/metrics"
	"prefacturation_service/internal/jobs"
	"prefacturation_service/internal/usecase"

	"github.com/hibiken/asynq"
	_ "github.com/joho/godotenv/autoload"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("[worker] load config: %v", err)
	}

	deps, err := bootstrap.Build(ctx, cfg)
	if err != nil {
		log.Fatalf("[worker] build dependencies: %v", err)
	}
	defer deps.Close()

	m := metrics.NewMetrics()
	prefacturationUseCase := usecase.NewPrefacturationUseCase(
		deps.Repository, deps.Locker, deps.Facts, nil, m, cfg.StateMachine(),
	)
	sweeps := jobs.NewSweepJob(prefacturationUseCase, m)

	timeoutTask, err := jobs.NewCarrierTimeoutSweepTask(0)
	if err != nil {
		log.Fatalf("[worker] build carrier timeout task: %v", err)
	}
	reevaluateTask, err := jobs.NewBlocksReevaluateTask(0)
	if err != nil {
		log.Fatalf("[worker] build blocks re-evaluation task: %v", err)
	}

	worker, err := jobs.NewWorker(jobs.WorkerConfig{
		RedisOpts: asynq.RedisClientOpt{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		},
		Concurrency: cfg.WorkerConcurrency,
		Handlers: []jobs.TaskHandler{
			{Type: jobs.TaskCarrierTimeoutSweep, Handler: sweeps.HandleCarrierTimeout},
			{Type: jobs.TaskBlocksReevaluate, Handler: sweeps.HandleBlocksReevaluate},
		},
		Cron: []jobs.CronRegistration{
			{Spec: cfg.CarrierTimeoutCron, Task: timeoutTask, Options: []asynq.Option{asynq.MaxRetry(3), asynq.Unique(cfg.LockTTL)}},
			{Spec: cfg.BlocksReevaluateCron, Task: reevaluateTask, Options: []asynq.Option{asynq.MaxRetry(3), asynq.Unique(cfg.LockTTL)}},
		},
	})
	if err != nil {
		log.Fatalf("[worker] init worker: %v", err)
	}

	if cfg.WorkerMetricsAddr != "" {
		srv := m.NewServer(cfg.WorkerMetricsAddr)
		go func() {
			log.Printf("[worker] metrics listening addr=%s", cfg.WorkerMetricsAddr)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Printf("[worker] metrics server failed err=%v", err)
			}
		}()
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = srv.Shutdown(shutdownCtx)
		}()
	}

	log.Printf("[worker] starting carrier_timeout=%q blocks_reevaluate=%q", cfg.CarrierTimeoutCron, cfg.BlocksReevaluateCron)
	if err := worker.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		log.Fatalf("[worker] stopped: %v", err)
	}
	log.Printf("[worker] stopped")
}
