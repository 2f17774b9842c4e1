package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/vladislavdragonenkov/crm/internal/domain"
)

const opTimeout = 5 * time.Second

type customerRepository struct {
	store *Store
}

// NewCustomerRepository создаёт PostgreSQL-реализацию CustomerRepository.
func NewCustomerRepository(store *Store) domain.CustomerRepository {
	return &customerRepository{store: store}
}

// Create вставляет клиента. Уникальность email отдана базе: ON CONFLICT
// DO NOTHING не возвращает строку при дубликате, и это транслируется в
// ErrEmailTaken — тот же класс ошибки, что и у предварительной проверки.
func (r *customerRepository) Create(ctx context.Context, customer domain.Customer) (domain.Customer, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	err := r.store.q(ctx).QueryRowContext(ctx, `
		INSERT INTO customers (name, email, phone, created_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (email) DO NOTHING
		RETURNING id
	`,
		customer.Name, customer.Email, customer.Phone, customer.CreatedAt,
	).Scan(&customer.ID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Customer{}, domain.ErrEmailTaken
		}
		if isUniqueViolation(err) {
			return domain.Customer{}, domain.ErrEmailTaken
		}
		return domain.Customer{}, fmt.Errorf("insert customer: %w", err)
	}

	return customer, nil
}

func (r *customerRepository) Get(ctx context.Context, id int64) (domain.Customer, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	var customer domain.Customer
	err := r.store.q(ctx).QueryRowContext(ctx, `
		SELECT id, name, email, phone, created_at
		FROM customers
		WHERE id = $1
	`, id).Scan(&customer.ID, &customer.Name, &customer.Email, &customer.Phone, &customer.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Customer{}, domain.ErrCustomerNotFound
		}
		return domain.Customer{}, fmt.Errorf("select customer: %w", err)
	}

	return customer, nil
}

func (r *customerRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	var exists bool
	err := r.store.q(ctx).QueryRowContext(ctx, `
		SELECT EXISTS (SELECT 1 FROM customers WHERE email = $1)
	`, email).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check customer email: %w", err)
	}

	return exists, nil
}

func (r *customerRepository) List(ctx context.Context, sort domain.Sort) ([]domain.Customer, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	rows, err := r.store.q(ctx).QueryContext(ctx, `
		SELECT id, name, email, phone, created_at
		FROM customers
	`+orderClause(sort))
	if err != nil {
		return nil, fmt.Errorf("list customers: %w", err)
	}
	defer rows.Close()

	customers := make([]domain.Customer, 0)
	for rows.Next() {
		var customer domain.Customer
		if err := rows.Scan(&customer.ID, &customer.Name, &customer.Email, &customer.Phone, &customer.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan customer row: %w", err)
		}
		customers = append(customers, customer)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate customer rows: %w", err)
	}

	return customers, nil
}

// orderClause строит ORDER BY из domain.Sort. Колонка приходит только из
// allow-list сервисного слоя, поэтому конкатенация безопасна.
func orderClause(sort domain.Sort) string {
	if sort.IsZero() {
		return " ORDER BY id ASC"
	}
	direction := " ASC"
	if sort.Desc {
		direction = " DESC"
	}
	return " ORDER BY " + sort.Column + direction + ", id ASC"
}

var _ domain.CustomerRepository = (*customerRepository)(nil)
