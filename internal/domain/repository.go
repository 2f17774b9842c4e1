package domain

import (
	"context"
	"time"
)

// CustomerRepository описывает требования к хранилищу клиентов.
type CustomerRepository interface {
	// Create сохраняет нового клиента и возвращает его с присвоенным ID.
	// При нарушении уникальности email возвращает ErrEmailTaken — в том
	// числе когда конфликт обнаружен только на вставке.
	Create(ctx context.Context, customer Customer) (Customer, error)
	// Get возвращает клиента по идентификатору или ErrCustomerNotFound.
	Get(ctx context.Context, id int64) (Customer, error)
	// ExistsByEmail проверяет наличие клиента с таким email (точное
	// совпадение, как хранится). Внутри открытой транзакции видит ещё
	// не зафиксированные вставки этой же транзакции.
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	// List возвращает всех клиентов в заданном порядке.
	List(ctx context.Context, sort Sort) ([]Customer, error)
}

// ProductRepository описывает требования к хранилищу товаров.
type ProductRepository interface {
	Create(ctx context.Context, product Product) (Product, error)
	Get(ctx context.Context, id int64) (Product, error)
	// GetByIDs возвращает только найденные товары; отсутствующие ID
	// вычисляет вызывающая сторона разностью множеств.
	GetByIDs(ctx context.Context, ids []int64) ([]Product, error)
	List(ctx context.Context, sort Sort) ([]Product, error)
}

// OrderRepository описывает требования к хранилищу заказов.
type OrderRepository interface {
	// Create вставляет строку заказа и строки связей заказ-товар как одно
	// целое: внутри объемлющей транзакции, если она открыта, иначе в
	// собственной.
	Create(ctx context.Context, order Order) (Order, error)
	Get(ctx context.Context, id int64) (Order, error)
	List(ctx context.Context, sort Sort) ([]Order, error)
	// ListSince возвращает заказы с order_date не раньше since.
	ListSince(ctx context.Context, since time.Time) ([]Order, error)
}

// TxManager открывает логическую транзакцию и передаёт её вниз через
// контекст; все операции репозиториев внутри fn выполняются в ней.
// Повторный вызов внутри открытой транзакции переиспользует её.
type TxManager interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
