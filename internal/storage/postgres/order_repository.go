package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/vladislavdragonenkov/crm/internal/domain"
)

type orderRepository struct {
	store *Store
}

// NewOrderRepository создаёт PostgreSQL-реализацию OrderRepository.
func NewOrderRepository(store *Store) domain.OrderRepository {
	return &orderRepository{store: store}
}

// Create вставляет строку заказа и строки связей заказ-товар как одно целое.
// Если в контексте уже открыта транзакция, вставки выполняются в ней;
// иначе репозиторий открывает собственную.
func (r *orderRepository) Create(ctx context.Context, order domain.Order) (domain.Order, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	if txFromContext(ctx) != nil {
		return r.createIn(ctx, r.store.q(ctx), order)
	}

	tx, err := r.store.db.BeginTx(ctx, nil)
	if err != nil {
		return domain.Order{}, fmt.Errorf("begin tx: %w", err)
	}

	created, err := r.createIn(ctx, tx, order)
	if err != nil {
		_ = tx.Rollback()
		return domain.Order{}, err
	}

	if err := tx.Commit(); err != nil {
		return domain.Order{}, fmt.Errorf("commit create order: %w", err)
	}

	return created, nil
}

func (r *orderRepository) createIn(ctx context.Context, q querier, order domain.Order) (domain.Order, error) {
	err := q.QueryRowContext(ctx, `
		INSERT INTO orders (customer_id, total_amount, order_date, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`,
		order.CustomerID, order.TotalAmount, order.OrderDate, order.CreatedAt,
	).Scan(&order.ID)
	if err != nil {
		return domain.Order{}, fmt.Errorf("insert order: %w", err)
	}

	for _, product := range order.Products {
		if _, err := q.ExecContext(ctx, `
			INSERT INTO order_products (order_id, product_id)
			VALUES ($1, $2)
		`, order.ID, product.ID); err != nil {
			return domain.Order{}, fmt.Errorf("insert order product: %w", err)
		}
	}

	return order, nil
}

func (r *orderRepository) Get(ctx context.Context, id int64) (domain.Order, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	var order domain.Order
	err := r.store.q(ctx).QueryRowContext(ctx, `
		SELECT id, customer_id, total_amount, order_date, created_at
		FROM orders
		WHERE id = $1
	`, id).Scan(&order.ID, &order.CustomerID, &order.TotalAmount, &order.OrderDate, &order.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Order{}, domain.ErrOrderNotFound
		}
		return domain.Order{}, fmt.Errorf("select order: %w", err)
	}

	products, err := r.loadProducts(ctx, order.ID)
	if err != nil {
		return domain.Order{}, err
	}
	order.Products = products

	return order, nil
}

func (r *orderRepository) List(ctx context.Context, sort domain.Sort) ([]domain.Order, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	return r.queryOrders(ctx, `
		SELECT id, customer_id, total_amount, order_date, created_at
		FROM orders
	`+orderClause(sort))
}

// ListSince возвращает заказы с order_date не раньше since; используется
// джобом напоминаний о недавних заказах.
func (r *orderRepository) ListSince(ctx context.Context, since time.Time) ([]domain.Order, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	return r.queryOrders(ctx, `
		SELECT id, customer_id, total_amount, order_date, created_at
		FROM orders
		WHERE order_date >= $1
		ORDER BY order_date ASC, id ASC
	`, since)
}

func (r *orderRepository) queryOrders(ctx context.Context, query string, args ...any) ([]domain.Order, error) {
	rows, err := r.store.q(ctx).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()

	orders := make([]domain.Order, 0)
	for rows.Next() {
		var order domain.Order
		if err := rows.Scan(&order.ID, &order.CustomerID, &order.TotalAmount, &order.OrderDate, &order.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan order row: %w", err)
		}
		orders = append(orders, order)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate order rows: %w", err)
	}

	for i := range orders {
		products, err := r.loadProducts(ctx, orders[i].ID)
		if err != nil {
			return nil, err
		}
		orders[i].Products = products
	}

	return orders, nil
}

func (r *orderRepository) loadProducts(ctx context.Context, orderID int64) ([]domain.Product, error) {
	rows, err := r.store.q(ctx).QueryContext(ctx, `
		SELECT p.id, p.name, p.price, p.stock, p.created_at
		FROM order_products op
		JOIN products p ON p.id = op.product_id
		WHERE op.order_id = $1
		ORDER BY p.id ASC
	`, orderID)
	if err != nil {
		return nil, fmt.Errorf("load order products: %w", err)
	}
	defer rows.Close()

	return scanProducts(rows)
}

var _ domain.OrderRepository = (*orderRepository)(nil)
