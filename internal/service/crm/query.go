package crm

import (
	"context"
	"fmt"
	"strings"

	"github.com/vladislavdragonenkov/crm/internal/domain"
)

// Allow-list сортировок: токен API -> колонка хранилища. Неизвестный токен
// молча игнорируется, порядок остаётся по умолчанию — сортировка никогда не
// превращается в ошибку запроса.
var (
	customerSortColumns = map[string]string{
		"name":      "name",
		"email":     "email",
		"createdAt": "created_at",
	}
	productSortColumns = map[string]string{
		"name":      "name",
		"price":     "price",
		"stock":     "stock",
		"createdAt": "created_at",
	}
	orderSortColumns = map[string]string{
		"orderDate":   "order_date",
		"totalAmount": "total_amount",
		"createdAt":   "created_at",
	}
)

// AllCustomers возвращает всех клиентов. orderBy принимает name, email,
// createdAt, с ведущим «-» для убывания.
func (s *Service) AllCustomers(ctx context.Context, orderBy string) ([]domain.Customer, error) {
	customers, err := s.customers.List(ctx, resolveSort(orderBy, customerSortColumns))
	if err != nil {
		s.logger.WithError(err).Error("failed to list customers")
		return nil, fmt.Errorf("list customers: %w", err)
	}
	return customers, nil
}

// AllProducts возвращает все товары. orderBy принимает name, price, stock,
// createdAt, с ведущим «-» для убывания.
func (s *Service) AllProducts(ctx context.Context, orderBy string) ([]domain.Product, error) {
	products, err := s.products.List(ctx, resolveSort(orderBy, productSortColumns))
	if err != nil {
		s.logger.WithError(err).Error("failed to list products")
		return nil, fmt.Errorf("list products: %w", err)
	}
	return products, nil
}

// AllOrders возвращает все заказы со связанными товарами. orderBy принимает
// orderDate, totalAmount, createdAt, с ведущим «-» для убывания.
func (s *Service) AllOrders(ctx context.Context, orderBy string) ([]domain.Order, error) {
	orders, err := s.orders.List(ctx, resolveSort(orderBy, orderSortColumns))
	if err != nil {
		s.logger.WithError(err).Error("failed to list orders")
		return nil, fmt.Errorf("list orders: %w", err)
	}
	return orders, nil
}

// GetOrder возвращает заказ по идентификатору вместе с товарами.
func (s *Service) GetOrder(ctx context.Context, id int64) (domain.Order, error) {
	return s.orders.Get(ctx, id)
}

// resolveSort отображает токен orderBy на колонку через allow-list.
func resolveSort(orderBy string, allowed map[string]string) domain.Sort {
	token := orderBy
	desc := false
	if strings.HasPrefix(token, "-") {
		desc = true
		token = token[1:]
	}
	column, ok := allowed[token]
	if !ok {
		return domain.Sort{}
	}
	return domain.Sort{Column: column, Desc: desc}
}
