package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/vladislavdragonenkov/crm/internal/domain"
)

// customerRepositoryInMemory — простая in-memory реализация CustomerRepository.
type customerRepositoryInMemory struct {
	mu     sync.RWMutex
	nextID int64
	items  map[int64]domain.Customer
	emails map[string]int64
}

// NewCustomerRepository возвращает in-memory репозиторий для локальной
// разработки и тестов.
func NewCustomerRepository() domain.CustomerRepository {
	return &customerRepositoryInMemory{
		items:  make(map[int64]domain.Customer),
		emails: make(map[string]int64),
	}
}

// Create сохраняет клиента, если email ещё не занят.
func (r *customerRepositoryInMemory) Create(_ context.Context, customer domain.Customer) (domain.Customer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, taken := r.emails[customer.Email]; taken {
		return domain.Customer{}, domain.ErrEmailTaken
	}

	r.nextID++
	customer.ID = r.nextID
	r.items[customer.ID] = customer
	r.emails[customer.Email] = customer.ID
	return customer, nil
}

func (r *customerRepositoryInMemory) Get(_ context.Context, id int64) (domain.Customer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	customer, ok := r.items[id]
	if !ok {
		return domain.Customer{}, domain.ErrCustomerNotFound
	}
	return customer, nil
}

func (r *customerRepositoryInMemory) ExistsByEmail(_ context.Context, email string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.emails[email]
	return ok, nil
}

func (r *customerRepositoryInMemory) List(_ context.Context, s domain.Sort) ([]domain.Customer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]domain.Customer, 0, len(r.items))
	for _, customer := range r.items {
		result = append(result, customer)
	}

	sort.Slice(result, func(i, j int) bool {
		less, equal := compareCustomers(result[i], result[j], s.Column)
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

func compareCustomers(a, b domain.Customer, column string) (less, equal bool) {
	switch column {
	case "name":
		return a.Name < b.Name, a.Name == b.Name
	case "email":
		return a.Email < b.Email, a.Email == b.Email
	case "created_at":
		return a.CreatedAt.Before(b.CreatedAt), a.CreatedAt.Equal(b.CreatedAt)
	default:
		return false, true
	}
}

var _ domain.CustomerRepository = (*customerRepositoryInMemory)(nil)
