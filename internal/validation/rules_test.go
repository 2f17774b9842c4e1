package validation_test

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/vladislavdragonenkov/crm/internal/validation"
)

func TestPhoneFormat(t *testing.T) {
	cases := []struct {
		phone string
		want  bool
	}{
		{"", true},
		{"+123456789", true},
		{"123-456-7890", true},
		{"12345678", true},
		{"1234567", false},       // короче 8 символов
		{"123-456-789-", false},  // не заканчивается цифрой
		{"++123456789", false},   // двойной плюс
		{"abc-def-ghij", false},  // буквы
		{"123 456 7890", false},  // пробелы не допускаются
		{"+1-234-567-89", true},
	}

	for _, tc := range cases {
		if got := validation.PhoneFormat(tc.phone); got != tc.want {
			t.Errorf("PhoneFormat(%q) = %v, want %v", tc.phone, got, tc.want)
		}
	}
}

func TestRequiredNonEmpty(t *testing.T) {
	if validation.RequiredNonEmpty("") {
		t.Error("empty string must fail")
	}
	if !validation.RequiredNonEmpty("Alice") {
		t.Error("non-empty string must pass")
	}
	if !validation.RequiredNonEmpty("  ") {
		t.Error("whitespace-only string counts as present")
	}
}

func TestPricePositive(t *testing.T) {
	cases := []struct {
		price string
		want  bool
	}{
		{"0.01", true},
		{"999.99", true},
		{"0", false},
		{"-5", false},
		{"-0.01", false},
	}

	for _, tc := range cases {
		d, err := decimal.NewFromString(tc.price)
		if err != nil {
			t.Fatalf("parse %q: %v", tc.price, err)
		}
		if got := validation.PricePositive(d); got != tc.want {
			t.Errorf("PricePositive(%s) = %v, want %v", tc.price, got, tc.want)
		}
	}
}

func TestStockNonNegative(t *testing.T) {
	if !validation.StockNonNegative(0) {
		t.Error("zero stock must pass")
	}
	if !validation.StockNonNegative(50) {
		t.Error("positive stock must pass")
	}
	if validation.StockNonNegative(-1) {
		t.Error("negative stock must fail")
	}
}
