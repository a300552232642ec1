package main

import (
	"context"
	"time"

	"github.com/rxtech-lab/argo-signal/internal/config"
	"github.com/rxtech-lab/argo-signal/internal/engine"
	"github.com/rxtech-lab/argo-signal/internal/logger"
	"github.com/rxtech-lab/argo-signal/internal/metrics"
	"github.com/rxtech-lab/argo-signal/internal/service"
	"github.com/rxtech-lab/argo-signal/internal/store"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
)

// app holds the components shared by the commands.
type app struct {
	cfg         config.Config
	log         *logger.Logger
	store       *store.DuckDBStore
	engine      *engine.Engine
	metrics     *metrics.Metrics
	metricsPath string
}

func newApp(cmd *cli.Command) (*app, error) {
	cfg, err := config.Load(cmd.String("config"))
	if err != nil {
		return nil, err
	}

	level := cfg.LogLevel
	if cmd.IsSet("log-level") {
		level = cmd.String("log-level")
	}

	log, err := logger.NewLoggerWithLevel(level)
	if err != nil {
		return nil, err
	}

	observations, err := store.NewDuckDBStore(cmd.String("db"), log)
	if err != nil {
		return nil, err
	}

	eng, err := engine.New(cfg, log)
	if err != nil {
		observations.Close()

		return nil, err
	}

	return &app{
		cfg:         cfg,
		log:         log,
		store:       observations,
		engine:      eng,
		metrics:     metrics.New(),
		metricsPath: cmd.String("metrics"),
	}, nil
}

func (a *app) service(tailSize int) *service.Service {
	return service.New(a.store, a.engine, a.log, service.WithMetrics(a.metrics), service.WithTailSize(tailSize))
}

func (a *app) close() {
	if a.metricsPath != "" {
		if err := a.metrics.WriteTextfile(a.metricsPath); err != nil {
			a.log.Error("Failed to write metrics", zap.Error(err))
		}
	}

	if err := a.store.Close(); err != nil {
		a.log.Error("Failed to close store", zap.Error(err))
	}

	_ = a.log.Sync()
}

// withApp builds the app for one action and releases it afterwards.
func withApp(action func(ctx context.Context, cmd *cli.Command, a *app) error) cli.ActionFunc {
	return func(ctx context.Context, cmd *cli.Command) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		defer a.close()

		return action(ctx, cmd, a)
	}
}

// tradingDay returns the calendar date of t as midnight UTC.
func tradingDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
