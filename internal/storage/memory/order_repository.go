package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/vladislavdragonenkov/crm/internal/domain"
)

// orderRepositoryInMemory — простая in-memory реализация OrderRepository.
type orderRepositoryInMemory struct {
	mu     sync.RWMutex
	nextID int64
	items  map[int64]domain.Order
}

// NewOrderRepository возвращает in-memory репозиторий для локальной
// разработки и тестов.
func NewOrderRepository() domain.OrderRepository {
	return &orderRepositoryInMemory{
		items: make(map[int64]domain.Order),
	}
}

func (r *orderRepositoryInMemory) Create(_ context.Context, order domain.Order) (domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	order.ID = r.nextID
	// Сохраняем копию списка товаров, чтобы избежать мутаций извне.
	products := make([]domain.Product, len(order.Products))
	copy(products, order.Products)
	order.Products = products

	r.items[order.ID] = order
	return order, nil
}

func (r *orderRepositoryInMemory) Get(_ context.Context, id int64) (domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	order, ok := r.items[id]
	if !ok {
		return domain.Order{}, domain.ErrOrderNotFound
	}
	return order, nil
}

func (r *orderRepositoryInMemory) List(_ context.Context, s domain.Sort) ([]domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]domain.Order, 0, len(r.items))
	for _, order := range r.items {
		result = append(result, order)
	}

	sort.Slice(result, func(i, j int) bool {
		less, equal := compareOrders(result[i], result[j], s.Column)
		if equal {
			return result[i].ID < result[j].ID
		}
		if s.Desc {
			return !less
		}
		return less
	})

	return result, nil
}

func (r *orderRepositoryInMemory) ListSince(_ context.Context, since time.Time) ([]domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]domain.Order, 0)
	for _, order := range r.items {
		if order.OrderDate.Before(since) {
			continue
		}
		result = append(result, order)
	}

	sort.Slice(result, func(i, j int) bool {
		if !result[i].OrderDate.Equal(result[j].OrderDate) {
			return result[i].OrderDate.Before(result[j].OrderDate)
		}
		return result[i].ID < result[j].ID
	})

	return result, nil
}

func compareOrders(a, b domain.Order, column string) (less, equal bool) {
	switch column {
	case "order_date":
		return a.OrderDate.Before(b.OrderDate), a.OrderDate.Equal(b.OrderDate)
	case "total_amount":
		return a.TotalAmount.LessThan(b.TotalAmount), a.TotalAmount.Equal(b.TotalAmount)
	case "created_at":
		return a.CreatedAt.Before(b.CreatedAt), a.CreatedAt.Equal(b.CreatedAt)
	default:
		return false, true
	}
}

var _ domain.OrderRepository = (*orderRepositoryInMemory)(nil)
