package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/prperemyshlev/seller-portal/internal/config"
	"github.com/prperemyshlev/seller-portal/internal/repository"
	"github.com/prperemyshlev/seller-portal/pkg/database"
	"github.com/prperemyshlev/seller-portal/pkg/observability"
	"go.opentelemetry.io/otel/sdk/metric"
	"go.uber.org/zap"
)

const serviceName = "seller-portal-sandbox"

// Infrastructure exposes the shared resources. Postgres and Redis are nil when not configured.
type Infrastructure interface {
	Postgres() *database.Postgres
	Redis() *database.Redis
	Logger() *zap.Logger
	MetricsHandler() http.Handler
	MeterProvider() *metric.MeterProvider

	Shutdown(ctx context.Context) error
}

type infrastructure struct {
	postgres  *database.Postgres
	redis     *database.Redis
	logger    *zap.Logger
	telemetry *observability.Telemetry
}

var _ Infrastructure = &infrastructure{}

// NewInfrastructure connects to the configured backends and applies migrations
func NewInfrastructure(ctx context.Context, cfg config.Config) (*infrastructure, error) {
	i := &infrastructure{}

	logger, err := observability.InitLogger(cfg.Env, cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	i.logger = logger

	if cfg.Postgres.Enabled() {
		postgres, err := database.NewPostgres(ctx, cfg.Postgres.DSN())
		if err != nil {
			return nil, fmt.Errorf("failed to connect to PostgreSQL: %w", err)
		}
		i.postgres = postgres

		if err := database.Migrate(postgres, repository.Migrations, repository.MigrationsDir); err != nil {
			_ = i.close()
			return nil, err
		}
		logger.Info("PostgreSQL connected, vendors are persisted", zap.String("host", cfg.Postgres.Host))
	}

	if cfg.Redis.Enabled() {
		redis, err := database.NewRedis(ctx, cfg.Redis.Address(), cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			_ = i.close()
			return nil, fmt.Errorf("failed to connect to Redis: %w", err)
		}
		i.redis = redis
		logger.Info("Redis connected, rate limits and revoked tokens are shared", zap.String("host", cfg.Redis.Host))
	}

	telemetry, err := observability.InitTelemetry(serviceName)
	if err != nil {
		_ = i.close()
		return nil, fmt.Errorf("failed to initialize telemetry: %w", err)
	}
	i.telemetry = telemetry

	return i, nil
}

func (i *infrastructure) Postgres() *database.Postgres {
	return i.postgres
}

func (i *infrastructure) Redis() *database.Redis {
	return i.redis
}

func (i *infrastructure) Logger() *zap.Logger {
	return i.logger
}

func (i *infrastructure) MetricsHandler() http.Handler {
	if i.telemetry == nil {
		return nil
	}
	return i.telemetry.Handler
}

func (i *infrastructure) MeterProvider() *metric.MeterProvider {
	if i.telemetry == nil {
		return nil
	}
	return i.telemetry.MeterProvider
}

func (i *infrastructure) Shutdown(ctx context.Context) error {
	errs := make(chan error, 2)

	go func() { errs <- i.close() }()
	go func() { errs <- i.telemetry.Shutdown(ctx) }()

	err := errors.Join(<-errs, <-errs)
	return errors.Join(err, observability.SyncLogger(i.logger))
}

// close releases the connections that were opened
func (i *infrastructure) close() error {
	var errs []error
	if i.postgres != nil {
		errs = append(errs, i.postgres.Close())
	}
	if i.redis != nil {
		errs = append(errs, i.redis.Close())
	}
	return errors.Join(errs...)
}
