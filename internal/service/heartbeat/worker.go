// Package heartbeat реализует периодическую запись liveness-отметки в лог.
package heartbeat

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	log "github.com/sirupsen/logrus"
)

const defaultInterval = 5 * time.Minute

var (
	heartbeatsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "crm_heartbeats_total",
		Help: "Total number of heartbeat log records written.",
	})
	heartbeatLastBeat = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "crm_heartbeat_last_beat_timestamp_seconds",
		Help: "Unix timestamp of the last heartbeat.",
	})
)

// Options задает параметры heartbeat-воркера.
type Options struct {
	Logger   *log.Entry
	Interval time.Duration
}

// Option настраивает Worker.
type Option func(*Options)

// WithLogger задает logger для воркера.
func WithLogger(logger *log.Entry) Option {
	return func(opts *Options) {
		opts.Logger = logger
	}
}

// WithInterval задает интервал между отметками.
func WithInterval(interval time.Duration) Option {
	return func(opts *Options) {
		opts.Interval = interval
	}
}

// Worker периодически пишет в лог отметку живости сервиса.
type Worker struct {
	logger   *log.Entry
	interval time.Duration
	now      func() time.Time
}

// NewWorker создает heartbeat-воркер.
func NewWorker(options ...Option) *Worker {
	opts := Options{
		Interval: defaultInterval,
	}
	for _, option := range options {
		option(&opts)
	}

	logger := opts.Logger
	if logger == nil {
		logger = log.WithField("component", "heartbeat-worker")
	}
	if opts.Interval <= 0 {
		opts.Interval = defaultInterval
	}

	return &Worker{
		logger:   logger,
		interval: opts.Interval,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// Run пишет отметку сразу и затем по тикеру до отмены ctx.
func (w *Worker) Run(ctx context.Context) {
	w.Beat()

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.Beat()
		}
	}
}

// Beat пишет одну отметку живости.
func (w *Worker) Beat() {
	now := w.now()
	w.logger.WithField("timestamp", now.Format(time.RFC3339)).Info("CRM is alive")
	heartbeatsTotal.Inc()
	heartbeatLastBeat.Set(float64(now.Unix()))
}
