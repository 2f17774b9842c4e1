package app

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/crm/internal/domain"
	"github.com/vladislavdragonenkov/crm/internal/storage/memory"
	"github.com/vladislavdragonenkov/crm/internal/storage/postgres"
)

// Dependencies содержит собранные по конфигурации зависимости приложения.
type Dependencies struct {
	Customers domain.CustomerRepository
	Products  domain.ProductRepository
	Orders    domain.OrderRepository
	TxManager domain.TxManager
	Logger    *log.Entry

	// Store не nil только для postgres-драйвера.
	Store *postgres.Store
}

// NewDependencies собирает зависимости для выбранного драйвера хранилища.
// Для postgres открывает соединение и накатывает миграции.
func NewDependencies(ctx context.Context, cfg Config, logger *log.Entry) (*Dependencies, error) {
	if logger == nil {
		logger = log.WithField("component", "app")
	}

	switch cfg.StorageDriver {
	case StorageDriverMemory:
		logger.Info("using in-memory storage")
		return &Dependencies{
			Customers: memory.NewCustomerRepository(),
			Products:  memory.NewProductRepository(),
			Orders:    memory.NewOrderRepository(),
			TxManager: memory.NewTxManager(),
			Logger:    logger,
		}, nil

	case StorageDriverPostgres:
		store, err := postgres.Open(ctx, cfg.PostgresDSN)
		if err != nil {
			return nil, fmt.Errorf("open postgres: %w", err)
		}
		if err := store.MigrateUp(ctx, 0); err != nil {
			_ = store.Close()
			return nil, fmt.Errorf("apply migrations: %w", err)
		}
		logger.Info("using postgres storage")
		return &Dependencies{
			Customers: postgres.NewCustomerRepository(store),
			Products:  postgres.NewProductRepository(store),
			Orders:    postgres.NewOrderRepository(store),
			TxManager: store,
			Logger:    logger,
			Store:     store,
		}, nil

	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.StorageDriver)
	}
}

// Close освобождает ресурсы хранилища.
func (d *Dependencies) Close() error {
	if d.Store == nil {
		return nil
	}
	return d.Store.Close()
}
