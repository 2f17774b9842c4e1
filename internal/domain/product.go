package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product — товар каталога. Цена хранится с точностью 2 знака.
type Product struct {
	ID        int64           `json:"id"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Stock     int64           `json:"stock"`
	CreatedAt time.Time       `json:"createdAt"`
}
