package crm

import (
	"time"

	"github.com/vladislavdragonenkov/crm/internal/domain"
)

// CustomerInput — типизированный вход мутаций createCustomer и
// bulkCreateCustomers. Обязательность name/email для одиночного создания
// обеспечивает граница API; bulk-импорт проверяет их построчно.
type CustomerInput struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// ProductInput — вход мутации createProduct. Цена приходит строкой и
// парсится как decimal, чтобы не терять точность на float.
type ProductInput struct {
	Name  string `json:"name"`
	Price string `json:"price"`
	Stock *int64 `json:"stock"`
}

// OrderInput — вход мутации createOrder. OrderDate опционален: при
// отсутствии берётся текущее время.
type OrderInput struct {
	CustomerID int64      `json:"customerId"`
	ProductIDs []int64    `json:"productIds"`
	OrderDate  *time.Time `json:"orderDate"`
}

// CreateCustomerResult — результат createCustomer. Customer пуст при любом
// бизнес-отказе; Errors всегда инициализирован.
type CreateCustomerResult struct {
	Customer *domain.Customer `json:"customer"`
	Message  string           `json:"message,omitempty"`
	Errors   []string         `json:"errors"`
}

// BulkCreateCustomersResult — результат bulkCreateCustomers: успешно
// созданные клиенты в порядке создания и все накопленные построчные ошибки
// в порядке строк.
type BulkCreateCustomersResult struct {
	Customers []domain.Customer `json:"customers"`
	Errors    []string          `json:"errors"`
}

// CreateProductResult — результат createProduct.
type CreateProductResult struct {
	Product *domain.Product `json:"product"`
	Errors  []string        `json:"errors"`
}

// CreateOrderResult — результат createOrder.
type CreateOrderResult struct {
	Order  *domain.Order `json:"order"`
	Errors []string      `json:"errors"`
}
