package crm

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/vladislavdragonenkov/crm/internal/domain"
	"github.com/vladislavdragonenkov/crm/internal/metrics"
	"github.com/vladislavdragonenkov/crm/internal/validation"
)

// CreateProduct валидирует и создаёт товар. Цена парсится из строки как
// decimal: нечитаемая строка и неположительное значение — бизнес-отказы.
// Остаток по умолчанию равен нулю.
func (s *Service) CreateProduct(ctx context.Context, input ProductInput) (CreateProductResult, error) {
	start := s.now()

	errs := make([]string, 0)

	price, parseErr := decimal.NewFromString(input.Price)
	if parseErr != nil {
		errs = append(errs, validation.MsgInvalidPrice)
	} else if !validation.PricePositive(price) {
		errs = append(errs, validation.MsgPriceNotPositive)
	}

	var stock int64
	if input.Stock != nil {
		stock = *input.Stock
	}
	if !validation.StockNonNegative(stock) {
		errs = append(errs, validation.MsgStockNegative)
	}

	if len(errs) > 0 {
		s.observe(mutationCreateProduct, metrics.ResultRejected, start)
		return CreateProductResult{Errors: errs}, nil
	}

	created, err := s.products.Create(ctx, domain.Product{
		Name:      input.Name,
		Price:     price,
		Stock:     stock,
		CreatedAt: s.now(),
	})
	if err != nil {
		s.logger.WithError(err).Error("failed to create product")
		s.observe(mutationCreateProduct, metrics.ResultError, start)
		return CreateProductResult{}, fmt.Errorf("create product: %w", err)
	}

	s.observe(mutationCreateProduct, metrics.ResultOK, start)
	return CreateProductResult{Product: &created, Errors: []string{}}, nil
}
