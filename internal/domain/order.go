package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order агрегирует заказ клиента и набор связанных товаров.
//
// TotalAmount фиксируется в момент создания заказа как сумма цен товаров
// и не пересчитывается при последующем изменении цен или состава.
type Order struct {
	ID          int64           `json:"id"`
	CustomerID  int64           `json:"customerId"`
	Products    []Product       `json:"products"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
	OrderDate   time.Time       `json:"orderDate"`
	CreatedAt   time.Time       `json:"createdAt"`
}

// ProductIDs возвращает идентификаторы связанных товаров в порядке хранения.
func (o *Order) ProductIDs() []int64 {
	ids := make([]int64, 0, len(o.Products))
	for _, p := range o.Products {
		ids = append(ids, p.ID)
	}
	return ids
}
