package kafka

import (
	"time"

	"github.com/google/uuid"
)

// EventType определяет тип события
type EventType string

const (
	// Customer события
	EventTypeCustomerCreated EventType = "customer.created"

	// Order события
	EventTypeOrderCreated  EventType = "order.created"
	EventTypeOrderReminder EventType = "order.reminder"
)

// Topics для Kafka
const (
	TopicCustomerEvents = "crm.customer.events"
	TopicOrderEvents    = "crm.order.events"
	TopicReminders      = "crm.reminders"
)

// CustomerEvent представляет событие клиента
type CustomerEvent struct {
	EventID    string    `json:"event_id"`
	EventType  EventType `json:"event_type"`
	CustomerID int64     `json:"customer_id"`
	Email      string    `json:"email"`
	Timestamp  time.Time `json:"timestamp"`
}

// OrderEvent представляет событие заказа
type OrderEvent struct {
	EventID     string    `json:"event_id"`
	EventType   EventType `json:"event_type"`
	OrderID     int64     `json:"order_id"`
	CustomerID  int64     `json:"customer_id"`
	TotalAmount string    `json:"total_amount"`
	OrderDate   time.Time `json:"order_date"`
	Timestamp   time.Time `json:"timestamp"`
}

// NewCustomerEvent создает новое событие клиента
func NewCustomerEvent(eventType EventType, customerID int64, email string) *CustomerEvent {
	return &CustomerEvent{
		EventID:    uuid.NewString(),
		EventType:  eventType,
		CustomerID: customerID,
		Email:      email,
		Timestamp:  time.Now().UTC(),
	}
}

// NewOrderEvent создает новое событие заказа
func NewOrderEvent(eventType EventType, orderID, customerID int64, totalAmount string, orderDate time.Time) *OrderEvent {
	return &OrderEvent{
		EventID:     uuid.NewString(),
		EventType:   eventType,
		OrderID:     orderID,
		CustomerID:  customerID,
		TotalAmount: totalAmount,
		OrderDate:   orderDate,
		Timestamp:   time.Now().UTC(),
	}
}
