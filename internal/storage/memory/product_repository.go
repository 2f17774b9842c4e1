package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/vladislavdragonenkov/crm/internal/domain"
)

// productRepositoryInMemory — простая in-memory реализация ProductRepository.
type productRepositoryInMemory struct {
	mu     sync.RWMutex
	nextID int64
	items  map[int64]domain.Product
}

// NewProductRepository возвращает in-memory репозиторий для локальной
// разработки и тестов.
func NewProductRepository() domain.ProductRepository {
	return &productRepositoryInMemory{
		items: make(map[int64]domain.Product),
	}
}

func (r *productRepositoryInMemory) Create(_ context.Context, product domain.Product) (domain.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	product.ID = r.nextID
	r.items[product.ID] = product
	return product, nil
}

func (r *productRepositoryInMemory) Get(_ context.Context, id int64) (domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	product, ok := r.items[id]
	if !ok {
		return domain.Product{}, domain.ErrProductNotFound
	}
	return product, nil
}

// GetByIDs возвращает только найденные товары в порядке возрастания ID.
func (r *productRepositoryInMemory) GetByIDs(_ context.Context, ids []int64) ([]domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]domain.Product, 0, len(ids))
	seen := make(map[int64]bool, len(ids))
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		if product, ok := r.items[id]; ok {
			result = append(result, product)
		}
	}

	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (r *productRepositoryInMemory) List(_ context.Context, s domain.Sort) ([]domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]domain.Product, 0, len(r.items))
	for _, product := range r.items {
		result = append(result, product)
	}

	sort.Slice(result, func(i, j int) bool {
		less, equal := compareProducts(result[i], result[j], s.Column)
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

func compareProducts(a, b domain.Product, column string) (less, equal bool) {
	switch column {
	case "name":
		return a.Name < b.Name, a.Name == b.Name
	case "price":
		return a.Price.LessThan(b.Price), a.Price.Equal(b.Price)
	case "stock":
		return a.Stock < b.Stock, a.Stock == b.Stock
	case "created_at":
		return a.CreatedAt.Before(b.CreatedAt), a.CreatedAt.Equal(b.CreatedAt)
	default:
		return false, true
	}
}

var _ domain.ProductRepository = (*productRepositoryInMemory)(nil)
