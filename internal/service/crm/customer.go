package crm

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/crm/internal/domain"
	"github.com/vladislavdragonenkov/crm/internal/metrics"
	"github.com/vladislavdragonenkov/crm/internal/validation"
)

// CreateCustomer валидирует и создаёт одного клиента. Бизнес-отказ
// возвращается списком ошибок без записи; error — только инфраструктура.
func (s *Service) CreateCustomer(ctx context.Context, input CustomerInput) (CreateCustomerResult, error) {
	start := s.now()

	errs := make([]string, 0)

	exists, err := s.customers.ExistsByEmail(ctx, input.Email)
	if err != nil {
		s.logger.WithError(err).Error("failed to check customer email")
		s.observe(mutationCreateCustomer, metrics.ResultError, start)
		return CreateCustomerResult{}, fmt.Errorf("check customer email: %w", err)
	}
	if exists {
		errs = append(errs, validation.MsgEmailExists)
	}
	if !validation.PhoneFormat(input.Phone) {
		errs = append(errs, validation.MsgInvalidPhone)
	}
	if len(errs) > 0 {
		s.observe(mutationCreateCustomer, metrics.ResultRejected, start)
		return CreateCustomerResult{Errors: errs}, nil
	}

	created, err := s.customers.Create(ctx, domain.Customer{
		Name:      input.Name,
		Email:     input.Email,
		Phone:     input.Phone,
		CreatedAt: s.now(),
	})
	if err != nil {
		// Гонка на уникальности email: предварительная проверка прошла, но
		// вставку отклонило ограничение базы. Транслируем в тот же класс
		// бизнес-ошибки, что и у предварительной проверки.
		if domain.IsEmailTaken(err) {
			s.observe(mutationCreateCustomer, metrics.ResultRejected, start)
			return CreateCustomerResult{Errors: []string{validation.MsgEmailExists}}, nil
		}
		s.logger.WithError(err).Error("failed to create customer")
		s.observe(mutationCreateCustomer, metrics.ResultError, start)
		return CreateCustomerResult{}, fmt.Errorf("create customer: %w", err)
	}

	s.publishCustomerCreated(created)

	s.observe(mutationCreateCustomer, metrics.ResultOK, start)
	return CreateCustomerResult{
		Customer: &created,
		Message:  "Customer created",
		Errors:   []string{},
	}, nil
}

// BulkCreateCustomers обрабатывает строки независимо внутри одной
// транзакции: невалидная строка пропускается, но не откатывает соседние.
// Проверка уникальности видит строки, созданные ранее в этом же batch.
// Транзакция фиксируется безусловно — валидные строки сохраняются даже
// при частично невалидном batch.
func (s *Service) BulkCreateCustomers(ctx context.Context, inputs []CustomerInput) (BulkCreateCustomersResult, error) {
	start := s.now()

	created := make([]domain.Customer, 0, len(inputs))
	rowErrors := make([]string, 0)

	err := s.txm.WithinTransaction(ctx, func(ctx context.Context) error {
		for idx, item := range inputs {
			row := idx + 1

			errs := make([]string, 0)
			exists, err := s.customers.ExistsByEmail(ctx, item.Email)
			if err != nil {
				return fmt.Errorf("check customer email: %w", err)
			}
			if exists {
				errs = append(errs, fmt.Sprintf("Row %d: %s", row, validation.MsgEmailExists))
			}
			if !validation.PhoneFormat(item.Phone) {
				errs = append(errs, fmt.Sprintf("Row %d: %s", row, validation.MsgInvalidPhone))
			}
			if !validation.RequiredNonEmpty(item.Name) {
				errs = append(errs, fmt.Sprintf("Row %d: %s", row, validation.MsgNameRequired))
			}
			if !validation.RequiredNonEmpty(item.Email) {
				errs = append(errs, fmt.Sprintf("Row %d: %s", row, validation.MsgEmailRequired))
			}

			if len(errs) > 0 {
				rowErrors = append(rowErrors, errs...)
				s.metrics.RecordBulkRow(metrics.ResultRejected)
				continue
			}

			customer, err := s.customers.Create(ctx, domain.Customer{
				Name:      item.Name,
				Email:     item.Email,
				Phone:     item.Phone,
				CreatedAt: s.now(),
			})
			if err != nil {
				if domain.IsEmailTaken(err) {
					rowErrors = append(rowErrors, fmt.Sprintf("Row %d: %s", row, validation.MsgEmailExists))
					s.metrics.RecordBulkRow(metrics.ResultRejected)
					continue
				}
				return fmt.Errorf("create customer row %d: %w", row, err)
			}

			created = append(created, customer)
			s.metrics.RecordBulkRow(metrics.ResultOK)
		}
		return nil
	})
	if err != nil {
		s.logger.WithError(err).Error("bulk customer import failed")
		s.observe(mutationBulkCreateCustomers, metrics.ResultError, start)
		return BulkCreateCustomersResult{}, err
	}

	// События публикуются после фиксации транзакции.
	for _, customer := range created {
		s.publishCustomerCreated(customer)
	}

	result := metrics.ResultOK
	if len(rowErrors) > 0 {
		result = metrics.ResultRejected
	}
	s.observe(mutationBulkCreateCustomers, result, start)

	s.logger.WithFields(log.Fields{
		"rows":    len(inputs),
		"created": len(created),
		"errors":  len(rowErrors),
	}).Info("bulk customer import completed")

	return BulkCreateCustomersResult{Customers: created, Errors: rowErrors}, nil
}
