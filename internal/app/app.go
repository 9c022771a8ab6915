package app

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/maafkarbai/FullStackProjectBackEnd/internal/config"
	"github.com/maafkarbai/FullStackProjectBackEnd/internal/repository"
	"github.com/maafkarbai/FullStackProjectBackEnd/internal/service"
	httpt "github.com/maafkarbai/FullStackProjectBackEnd/internal/transport/http"
	kafkat "github.com/maafkarbai/FullStackProjectBackEnd/internal/transport/kafka"
	"github.com/maafkarbai/FullStackProjectBackEnd/pkg/kafka"
	"github.com/maafkarbai/FullStackProjectBackEnd/pkg/logger"
	"github.com/maafkarbai/FullStackProjectBackEnd/pkg/metric"
	mongostorage "github.com/maafkarbai/FullStackProjectBackEnd/pkg/storage/mongo"

	"golang.org/x/sync/errgroup"
)

const _dbCloseTimeout = 5 * time.Second

func Run(ctx context.Context, cfg *config.Config, log logger.Logger) error {
	eg, ctx := errgroup.WithContext(ctx)

	metrics := initMetrics(eg, &cfg.Metrics, log)

	db, dbErr := initDatabase(&cfg.Mongo, log)
	if dbErr != nil {
		return dbErr
	}
	defer closeDB(db, log)

	publisher, closePublisher, pubErr := initPublisher(&cfg.Kafka, log, metrics)
	if pubErr != nil {
		return pubErr
	}
	defer closePublisher()

	storeService := initStoreService(db, publisher, log, metrics)

	if serverErr := initHTTPServer(ctx, eg, &cfg.HTTP, storeService, log, metrics); serverErr != nil {
		return serverErr
	}

	return waitForShutdown(eg)
}

func initMetrics(
	eg *errgroup.Group,
	cfg *config.Metrics,
	log logger.Logger,
) metric.Factory {
	metrics := metric.NewFactory()

	hostPort := net.JoinHostPort(cfg.Host, cfg.Port)
	metricsServer := &http.Server{
		Addr:              hostPort,
		Handler:           metrics.Handler(),
		ReadTimeout:       cfg.ReadTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
	}

	eg.Go(func() error {
		log.Infow("starting metrics server", "port", cfg.Port)
		if err := metricsServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("app.initMetrics: %w", err)
		}
		return nil
	})

	return metrics
}

func initDatabase(cfg *config.Mongo, log logger.Logger) (*mongostorage.Mongo, error) {
	db, err := mongostorage.NewMongo(
		cfg,
		log.With("component", "database"),
		mongostorage.ConnAttempts(cfg.ConnAttempts),
		mongostorage.ConnTimeout(cfg.ConnTimeout),
		mongostorage.BaseRetryDelay(cfg.BaseRetryDelay),
		mongostorage.MaxRetryDelay(cfg.MaxRetryDelay),
	)
	if err != nil {
		return nil, fmt.Errorf("app.initDatabase: %w", err)
	}
	return db, nil
}

func closeDB(db *mongostorage.Mongo, log logger.Logger) {
	if db == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), _dbCloseTimeout)
	defer cancel()
	if err := db.Close(ctx); err != nil {
		log.Errorw("failed to close database connection", "error", err)
	}
}

func initPublisher(
	cfg *config.Kafka,
	log logger.Logger,
	metrics metric.Factory,
) (service.EventPublisher, func(), error) {
	if len(cfg.Brokers) == 0 {
		log.Infow("no kafka brokers configured, order events disabled")
		return kafkat.NopPublisher{}, func() {}, nil
	}

	writer, err := kafka.NewKafkaWriter(*cfg, log.With("component", "kafka writer"))
	if err != nil {
		return nil, nil, fmt.Errorf("app.initPublisher: %w", err)
	}

	publisher := kafkat.NewOrderPublisher(
		writer,
		metrics.Events(),
		log.With("component", "order publisher"),
	)

	closeFn := func() {
		if closeErr := publisher.Close(); closeErr != nil {
			log.Errorw("failed to close kafka writer", "error", closeErr)
		}
	}

	return publisher, closeFn, nil
}

func initStoreService(
	db *mongostorage.Mongo,
	publisher service.EventPublisher,
	log logger.Logger,
	metrics metric.Factory,
) *service.StoreService {
	lessonRepo := repository.NewLessonRepository(db, metrics.Store())
	orderRepo := repository.NewOrderRepository(db, metrics.Store())

	return service.NewStoreService(
		lessonRepo,
		orderRepo,
		publisher,
		log.With("component", "store service"),
	)
}

func initHTTPServer(
	ctx context.Context,
	eg *errgroup.Group,
	cfg *config.HTTP,
	storeService *service.StoreService,
	log logger.Logger,
	metrics metric.Factory,
) error {
	httpServer, err := httpt.NewHTTPServer(
		httpt.NewStoreHandler(storeService, log, metrics.HTTP(), cfg.StaticDir),
		cfg,
		log.With("component", "http server"),
	)
	if err != nil {
		return fmt.Errorf("app.initHTTPServer: %w", err)
	}

	eg.Go(func() error {
		return httpServer.Start(ctx)
	})
	return nil
}

func waitForShutdown(eg *errgroup.Group) error {
	if err := eg.Wait(); err != nil {
		return fmt.Errorf("app.waitForShutdown: application failed: %w", err)
	}
	return nil
}
