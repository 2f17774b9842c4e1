// Package app собирает и запускает CRM-сервис: хранилище, сервисный слой,
// HTTP API, метрики, health-пробы и фоновые воркеры.
package app

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/crm/internal/api"
	healthcheck "github.com/vladislavdragonenkov/crm/internal/health"
	"github.com/vladislavdragonenkov/crm/internal/metrics"
	crmsvc "github.com/vladislavdragonenkov/crm/internal/service/crm"
	"github.com/vladislavdragonenkov/crm/internal/service/heartbeat"
	"github.com/vladislavdragonenkov/crm/internal/service/reminder"
	"github.com/vladislavdragonenkov/crm/internal/version"
)

// Run запускает приложение и блокируется до отмены ctx или фатальной
// ошибки сервера.
func Run(ctx context.Context, cfg Config) error {
	logger := log.WithField("component", "app")

	deps, err := NewDependencies(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := deps.Close(); closeErr != nil {
			logger.WithError(closeErr).Warn("failed to close storage")
		}
	}()

	kafkaProducer, _ := initKafkaProducer(cfg.KafkaBrokers, logger)
	defer closeKafka(kafkaProducer, logger)

	serviceOpts := []crmsvc.Option{
		crmsvc.WithMetrics(metrics.NewMutationMetrics()),
	}
	if kafkaProducer != nil {
		serviceOpts = append(serviceOpts, crmsvc.WithEvents(kafkaProducer))
	}
	service := crmsvc.NewService(
		deps.Customers,
		deps.Products,
		deps.Orders,
		deps.TxManager,
		logger.WithField("component", "crm-service"),
		serviceOpts...,
	)

	server := api.NewServer(service, logger.WithField("component", "api"))

	v, _, _ := version.Info()
	healthHandler := healthcheck.NewHandler(v)
	if deps.Store != nil {
		healthHandler.RegisterChecker("postgres",
			healthcheck.NewPingChecker("postgres", 2*time.Second, deps.Store.Ping))
	}

	metricsSrv := startMetricsServer(ctx, cfg.MetricsAddr, logger, healthHandler)

	workerCtx, stopWorkers := context.WithCancel(ctx)
	defer stopWorkers()

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		heartbeat.NewWorker(
			heartbeat.WithLogger(logger.WithField("component", "heartbeat-worker")),
			heartbeat.WithInterval(cfg.HeartbeatInterval),
		).Run(workerCtx)
	}()
	go func() {
		defer wg.Done()
		opts := []reminder.Option{
			reminder.WithLogger(logger.WithField("component", "reminder-worker")),
			reminder.WithInterval(cfg.ReminderInterval),
			reminder.WithWindow(cfg.ReminderWindow),
		}
		if kafkaProducer != nil {
			opts = append(opts, reminder.WithPublisher(kafkaProducer))
		}
		reminder.NewWorker(deps.Orders, opts...).Run(workerCtx)
	}()

	httpSrv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: server.Engine(),
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Infof("HTTP API слушает %s", cfg.HTTPAddr)
		errCh <- httpSrv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		logger.Info("получен сигнал остановки, останавливаем HTTP сервер")
		shutdownHTTP(httpSrv, logger)
		shutdownHTTP(metricsSrv, logger)
		stopWorkers()
		wg.Wait()
		return ctx.Err()
	case err := <-errCh:
		shutdownHTTP(metricsSrv, logger)
		stopWorkers()
		wg.Wait()
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

// startMetricsServer запускает HTTP-обработчик /metrics и health-пробы.
func startMetricsServer(ctx context.Context, addr string, logger *log.Entry, healthHandler *healthcheck.Handler) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.Handle("/healthz", healthHandler)
	mux.HandleFunc("/livez", healthcheck.LivenessHandler)
	mux.HandleFunc("/readyz", healthHandler.ReadinessHandler)

	srv := &http.Server{Addr: addr, Handler: mux}
	go func() {
		logger.Infof("метрики доступны по адресу %s/metrics", addr)
		logger.Infof("health checks: %s/healthz, %s/livez, %s/readyz", addr, addr, addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.WithError(err).Warn("metrics server failed")
		}
	}()

	go func() {
		<-ctx.Done()
		shutdownHTTP(srv, logger)
	}()

	return srv
}

// shutdownHTTP аккуратно останавливает HTTP-сервер.
func shutdownHTTP(srv *http.Server, logger *log.Entry) {
	if srv == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.WithError(err).Warn("http shutdown with error")
	}
}
