// Package validation содержит чистые предикаты для полей CRM-сущностей.
// Предикаты не имеют побочных эффектов и безопасны для конкурентных вызовов;
// тексты ошибок вынесены в константы, чтобы сервисный слой и API отдавали
// один и тот же формулировки.
package validation

import (
	"regexp"

	"github.com/shopspring/decimal"
)

// Сообщения бизнес-ошибок, возвращаемые мутациями в поле errors.
const (
	MsgEmailExists      = "Email already exists"
	MsgInvalidPhone     = "Invalid phone format"
	MsgNameRequired     = "Name is required"
	MsgEmailRequired    = "Email is required"
	MsgPriceNotPositive = "Price must be positive"
	MsgInvalidPrice     = "Invalid price"
	MsgStockNegative    = "Stock cannot be negative"
	MsgInvalidCustomer  = "Invalid customer ID"
	MsgNoProducts       = "At least one product must be provided"
)

// Телефон: опциональный ведущий «+», затем цифры и дефисы, суммарно не
// короче 8 символов, последний символ — цифра.
var phonePattern = regexp.MustCompile(`^(\+?\d[\d\-]{6,}\d)$`)

// PhoneFormat проверяет формат телефона. Пустой телефон всегда проходит:
// поле опционально.
func PhoneFormat(phone string) bool {
	if phone == "" {
		return true
	}
	return phonePattern.MatchString(phone)
}

// RequiredNonEmpty проверяет, что обязательное текстовое поле заполнено.
// Строка из одних пробелов считается заполненной — так ведёт себя и
// исходная схема.
func RequiredNonEmpty(value string) bool {
	return value != ""
}

// PricePositive проверяет, что цена строго больше нуля.
func PricePositive(price decimal.Decimal) bool {
	return price.IsPositive()
}

// StockNonNegative проверяет, что остаток не отрицателен.
func StockNonNegative(stock int64) bool {
	return stock >= 0
}
