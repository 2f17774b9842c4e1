// Package reminder реализует периодическое напоминание о недавних заказах:
// воркер выбирает заказы за скользящее окно, пишет запись в лог и, если
// настроен publisher, публикует событие напоминания per заказ.
package reminder

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/crm/internal/domain"
	"github.com/vladislavdragonenkov/crm/internal/messaging/kafka"
)

const (
	defaultInterval = 24 * time.Hour
	defaultWindow   = 7 * 24 * time.Hour
)

var (
	reminderRunsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "crm_reminder_runs_total",
		Help: "Total number of reminder runs grouped by result.",
	}, []string{"result"})
	remindersTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "crm_reminders_total",
		Help: "Total number of order reminders written.",
	})
)

// Publisher публикует событие напоминания во внешний брокер.
type Publisher interface {
	PublishOrderReminder(event *kafka.OrderEvent) error
}

// Options задает параметры reminder-воркера.
type Options struct {
	Logger    *log.Entry
	Interval  time.Duration
	Window    time.Duration
	Publisher Publisher
}

// Option настраивает Worker.
type Option func(*Options)

// WithLogger задает logger для воркера.
func WithLogger(logger *log.Entry) Option {
	return func(opts *Options) {
		opts.Logger = logger
	}
}

// WithInterval задает интервал между прогонами.
func WithInterval(interval time.Duration) Option {
	return func(opts *Options) {
		opts.Interval = interval
	}
}

// WithWindow задает глубину окна выборки заказов.
func WithWindow(window time.Duration) Option {
	return func(opts *Options) {
		opts.Window = window
	}
}

// WithPublisher подключает публикацию напоминаний в брокер.
func WithPublisher(publisher Publisher) Option {
	return func(opts *Options) {
		opts.Publisher = publisher
	}
}

// Worker периодически напоминает о заказах за последнее окно.
type Worker struct {
	orders    domain.OrderRepository
	publisher Publisher
	logger    *log.Entry
	interval  time.Duration
	window    time.Duration
	now       func() time.Time
}

// NewWorker создает reminder-воркер.
func NewWorker(orders domain.OrderRepository, options ...Option) *Worker {
	opts := Options{
		Interval: defaultInterval,
		Window:   defaultWindow,
	}
	for _, option := range options {
		option(&opts)
	}

	logger := opts.Logger
	if logger == nil {
		logger = log.WithField("component", "reminder-worker")
	}
	if opts.Interval <= 0 {
		opts.Interval = defaultInterval
	}
	if opts.Window <= 0 {
		opts.Window = defaultWindow
	}

	return &Worker{
		orders:    orders,
		publisher: opts.Publisher,
		logger:    logger,
		interval:  opts.Interval,
		window:    opts.Window,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// Run запускает прогон сразу и затем по тикеру до отмены ctx.
func (w *Worker) Run(ctx context.Context) {
	if w.orders == nil {
		w.logger.Warn("reminder worker is disabled: order repository is nil")
		return
	}

	w.ProcessOnce(ctx)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.ProcessOnce(ctx)
		}
	}
}

// ProcessOnce выполняет один прогон напоминаний.
func (w *Worker) ProcessOnce(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}

	now := w.now()
	orders, err := w.orders.ListSince(ctx, now.Add(-w.window))
	if err != nil {
		w.logger.WithError(err).Warn("failed to list recent orders")
		reminderRunsTotal.WithLabelValues("error").Inc()
		return
	}

	for _, order := range orders {
		if ctx.Err() != nil {
			return
		}
		w.remind(order, now)
	}

	w.logger.WithField("orders", len(orders)).Info("order reminders processed")
	reminderRunsTotal.WithLabelValues("ok").Inc()
}

func (w *Worker) remind(order domain.Order, now time.Time) {
	w.logger.WithFields(log.Fields{
		"order_id":     order.ID,
		"customer_id":  order.CustomerID,
		"total_amount": order.TotalAmount.StringFixed(2),
		"order_date":   order.OrderDate.Format(time.RFC3339),
	}).Info("order reminder")
	remindersTotal.Inc()

	if w.publisher == nil {
		return
	}

	event := kafka.NewOrderEvent(
		kafka.EventTypeOrderReminder,
		order.ID,
		order.CustomerID,
		order.TotalAmount.StringFixed(2),
		order.OrderDate,
	)
	if err := w.publisher.PublishOrderReminder(event); err != nil {
		w.logger.WithError(err).WithField("order_id", order.ID).Warn("failed to publish order reminder")
	}
}
