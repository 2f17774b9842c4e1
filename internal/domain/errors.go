package domain

import "errors"

var (
	// ErrCustomerNotFound возвращается, если клиент не найден в репозитории.
	ErrCustomerNotFound = errors.New("customer not found")
	// ErrProductNotFound возвращается, если товар не найден в репозитории.
	ErrProductNotFound = errors.New("product not found")
	// ErrOrderNotFound возвращается, если заказ не найден в репозитории.
	ErrOrderNotFound = errors.New("order not found")
	// ErrEmailTaken сигнализирует о нарушении уникальности email.
	// Хранилище обязано возвращать её и при конфликте, обнаруженном только
	// на вставке (гонка двух конкурентных созданий).
	ErrEmailTaken = errors.New("customer email already taken")
)

// IsEmailTaken проверяет, является ли ошибка конфликтом уникальности email.
func IsEmailTaken(err error) bool {
	return errors.Is(err, ErrEmailTaken)
}
