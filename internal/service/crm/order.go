package crm

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/vladislavdragonenkov/crm/internal/domain"
	"github.com/vladislavdragonenkov/crm/internal/metrics"
	"github.com/vladislavdragonenkov/crm/internal/validation"
)

// CreateOrder валидирует и создаёт заказ. Проверки идут ступенями: сначала
// существование клиента, затем непустой список товаров, затем существование
// каждого товара. Сумма заказа считается точной десятичной арифметикой из
// цен товаров на момент создания и больше не пересчитывается.
func (s *Service) CreateOrder(ctx context.Context, input OrderInput) (CreateOrderResult, error) {
	start := s.now()

	if _, err := s.customers.Get(ctx, input.CustomerID); err != nil {
		if errors.Is(err, domain.ErrCustomerNotFound) {
			s.observe(mutationCreateOrder, metrics.ResultRejected, start)
			return CreateOrderResult{Errors: []string{validation.MsgInvalidCustomer}}, nil
		}
		s.logger.WithError(err).Error("failed to load order customer")
		s.observe(mutationCreateOrder, metrics.ResultError, start)
		return CreateOrderResult{}, fmt.Errorf("load customer: %w", err)
	}

	if len(input.ProductIDs) == 0 {
		s.observe(mutationCreateOrder, metrics.ResultRejected, start)
		return CreateOrderResult{Errors: []string{validation.MsgNoProducts}}, nil
	}

	products, err := s.products.GetByIDs(ctx, input.ProductIDs)
	if err != nil {
		s.logger.WithError(err).Error("failed to load order products")
		s.observe(mutationCreateOrder, metrics.ResultError, start)
		return CreateOrderResult{}, fmt.Errorf("load products: %w", err)
	}
	if missing := missingProductIDs(input.ProductIDs, products); len(missing) > 0 {
		s.observe(mutationCreateOrder, metrics.ResultRejected, start)
		return CreateOrderResult{
			Errors: []string{fmt.Sprintf("Invalid product ID(s): %s", joinIDs(missing))},
		}, nil
	}

	total := decimal.Zero
	for _, p := range products {
		total = total.Add(p.Price)
	}

	orderDate := s.now()
	if input.OrderDate != nil {
		orderDate = *input.OrderDate
	}

	created, err := s.orders.Create(ctx, domain.Order{
		CustomerID:  input.CustomerID,
		Products:    products,
		TotalAmount: total,
		OrderDate:   orderDate,
		CreatedAt:   s.now(),
	})
	if err != nil {
		s.logger.WithError(err).Error("failed to create order")
		s.observe(mutationCreateOrder, metrics.ResultError, start)
		return CreateOrderResult{}, fmt.Errorf("create order: %w", err)
	}

	s.publishOrderCreated(created)

	s.observe(mutationCreateOrder, metrics.ResultOK, start)
	return CreateOrderResult{Order: &created, Errors: []string{}}, nil
}

// missingProductIDs возвращает запрошенные, но не найденные ID без
// дубликатов, по возрастанию.
func missingProductIDs(requested []int64, found []domain.Product) []int64 {
	existing := make(map[int64]struct{}, len(found))
	for _, p := range found {
		existing[p.ID] = struct{}{}
	}

	seen := make(map[int64]struct{}, len(requested))
	missing := make([]int64, 0)
	for _, id := range requested {
		if _, ok := existing[id]; ok {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		missing = append(missing, id)
	}
	sort.Slice(missing, func(i, j int) bool { return missing[i] < missing[j] })
	return missing
}

func joinIDs(ids []int64) string {
	parts := make([]string, 0, len(ids))
	for _, id := range ids {
		parts = append(parts, strconv.FormatInt(id, 10))
	}
	return strings.Join(parts, ", ")
}
