// Package crm реализует валидируемый пайплайн записи: мутации клиентов,
// товаров и заказов с бизнес-валидацией и атомарной фиксацией, а также
// запросный слой с allow-list сортировкой.
//
// Бизнес-отказы никогда не возвращаются как error: они накапливаются в поле
// Errors результата. error зарезервирован за инфраструктурными сбоями
// (недоступное хранилище, ошибка транзакции).
package crm

import (
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/crm/internal/domain"
	"github.com/vladislavdragonenkov/crm/internal/messaging/kafka"
	"github.com/vladislavdragonenkov/crm/internal/metrics"
)

// EventPublisher публикует доменные события об успешных мутациях во
// внешний брокер. Публикация не влияет на исход мутации: сбой брокера
// логируется и не откатывает запись.
type EventPublisher interface {
	PublishCustomerCreated(event *kafka.CustomerEvent) error
	PublishOrderCreated(event *kafka.OrderEvent) error
}

// Имена мутаций в лейблах метрик.
const (
	mutationCreateCustomer      = "createCustomer"
	mutationBulkCreateCustomers = "bulkCreateCustomers"
	mutationCreateProduct       = "createProduct"
	mutationCreateOrder         = "createOrder"
)

// Service — пайплайн валидируемых мутаций поверх доменных репозиториев.
type Service struct {
	customers domain.CustomerRepository
	products  domain.ProductRepository
	orders    domain.OrderRepository
	txm       domain.TxManager
	logger    *log.Entry
	metrics   *metrics.MutationMetrics
	events    EventPublisher
	now       func() time.Time
}

// Options задаёт необязательные зависимости сервиса.
type Options struct {
	Metrics *metrics.MutationMetrics
	Events  EventPublisher
	Clock   func() time.Time
}

// Option настраивает Service.
type Option func(*Options)

// WithMetrics подключает метрики мутаций.
func WithMetrics(m *metrics.MutationMetrics) Option {
	return func(opts *Options) {
		opts.Metrics = m
	}
}

// WithEvents подключает публикацию событий об успешных мутациях.
func WithEvents(events EventPublisher) Option {
	return func(opts *Options) {
		opts.Events = events
	}
}

// WithClock задаёт источник времени; используется в тестах для
// детерминированных таймстампов.
func WithClock(clock func() time.Time) Option {
	return func(opts *Options) {
		opts.Clock = clock
	}
}

// NewService конструирует сервис с зависимостями.
func NewService(
	customers domain.CustomerRepository,
	products domain.ProductRepository,
	orders domain.OrderRepository,
	txm domain.TxManager,
	logger *log.Entry,
	options ...Option,
) *Service {
	opts := Options{}
	for _, option := range options {
		option(&opts)
	}

	if logger == nil {
		logger = log.WithField("component", "crm-service")
	}
	clock := opts.Clock
	if clock == nil {
		clock = func() time.Time { return time.Now().UTC() }
	}

	return &Service{
		customers: customers,
		products:  products,
		orders:    orders,
		txm:       txm,
		logger:    logger,
		metrics:   opts.Metrics,
		events:    opts.Events,
		now:       clock,
	}
}

// publishCustomerCreated отправляет событие о созданном клиенте, если
// publisher настроен.
func (s *Service) publishCustomerCreated(customer domain.Customer) {
	if s.events == nil {
		return
	}
	event := kafka.NewCustomerEvent(kafka.EventTypeCustomerCreated, customer.ID, customer.Email)
	if err := s.events.PublishCustomerCreated(event); err != nil {
		s.logger.WithError(err).WithField("customer_id", customer.ID).Warn("failed to publish customer event")
	}
}

// publishOrderCreated отправляет событие о созданном заказе, если
// publisher настроен.
func (s *Service) publishOrderCreated(order domain.Order) {
	if s.events == nil {
		return
	}
	event := kafka.NewOrderEvent(
		kafka.EventTypeOrderCreated,
		order.ID,
		order.CustomerID,
		order.TotalAmount.StringFixed(2),
		order.OrderDate,
	)
	if err := s.events.PublishOrderCreated(event); err != nil {
		s.logger.WithError(err).WithField("order_id", order.ID).Warn("failed to publish order event")
	}
}

// observe фиксирует исход вызова мутации в метриках.
func (s *Service) observe(mutation, result string, start time.Time) {
	s.metrics.RecordMutation(mutation, result, time.Since(start))
	if result == metrics.ResultRejected {
		s.metrics.RecordValidationFailure(mutation)
	}
}
