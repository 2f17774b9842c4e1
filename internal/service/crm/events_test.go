package crm

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/vladislavdragonenkov/crm/internal/messaging/kafka"
	"github.com/vladislavdragonenkov/crm/internal/storage/memory"
)

type recordingPublisher struct {
	mu        sync.Mutex
	customers []*kafka.CustomerEvent
	orders    []*kafka.OrderEvent
}

func (p *recordingPublisher) PublishCustomerCreated(event *kafka.CustomerEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.customers = append(p.customers, event)
	return nil
}

func (p *recordingPublisher) PublishOrderCreated(event *kafka.OrderEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.orders = append(p.orders, event)
	return nil
}

func newEventTestService(t *testing.T) (*Service, *recordingPublisher) {
	t.Helper()

	publisher := &recordingPublisher{}
	svc := NewService(
		memory.NewCustomerRepository(),
		memory.NewProductRepository(),
		memory.NewOrderRepository(),
		memory.NewTxManager(),
		nil,
		WithEvents(publisher),
		WithClock(func() time.Time {
			return time.Date(2025, 4, 27, 12, 0, 0, 0, time.UTC)
		}),
	)
	return svc, publisher
}

func TestCreateCustomer_PublishesEvent(t *testing.T) {
	svc, publisher := newEventTestService(t)

	result, err := svc.CreateCustomer(context.Background(), CustomerInput{
		Name:  "Alice",
		Email: "alice@example.com",
	})
	require.NoError(t, err)
	require.Empty(t, result.Errors)

	require.Len(t, publisher.customers, 1)
	event := publisher.customers[0]
	require.Equal(t, kafka.EventTypeCustomerCreated, event.EventType)
	require.Equal(t, result.Customer.ID, event.CustomerID)
	require.Equal(t, "alice@example.com", event.Email)
	require.NotEmpty(t, event.EventID)
}

func TestCreateCustomer_RejectedPublishesNothing(t *testing.T) {
	svc, publisher := newEventTestService(t)
	ctx := context.Background()

	_, err := svc.CreateCustomer(ctx, CustomerInput{Name: "Alice", Email: "alice@example.com"})
	require.NoError(t, err)

	result, err := svc.CreateCustomer(ctx, CustomerInput{Name: "Dup", Email: "alice@example.com"})
	require.NoError(t, err)
	require.NotEmpty(t, result.Errors)

	// Событие только от первой, успешной мутации.
	require.Len(t, publisher.customers, 1)
}

func TestBulkCreateCustomers_PublishesPerCreatedRow(t *testing.T) {
	svc, publisher := newEventTestService(t)

	result, err := svc.BulkCreateCustomers(context.Background(), []CustomerInput{
		{Name: "Alice", Email: "alice@example.com"},
		{Name: "", Email: "noname@example.com"},
		{Name: "Bob", Email: "bob@example.com"},
	})
	require.NoError(t, err)
	require.Len(t, result.Customers, 2)

	require.Len(t, publisher.customers, 2)
	require.Equal(t, "alice@example.com", publisher.customers[0].Email)
	require.Equal(t, "bob@example.com", publisher.customers[1].Email)
}

func TestCreateOrder_PublishesEvent(t *testing.T) {
	svc, publisher := newEventTestService(t)
	ctx := context.Background()

	customer, err := svc.CreateCustomer(ctx, CustomerInput{Name: "Alice", Email: "alice@example.com"})
	require.NoError(t, err)
	product, err := svc.CreateProduct(ctx, ProductInput{Name: "Laptop", Price: "999.99"})
	require.NoError(t, err)

	result, err := svc.CreateOrder(ctx, OrderInput{
		CustomerID: customer.Customer.ID,
		ProductIDs: []int64{product.Product.ID},
	})
	require.NoError(t, err)
	require.Empty(t, result.Errors)

	require.Len(t, publisher.orders, 1)
	event := publisher.orders[0]
	require.Equal(t, kafka.EventTypeOrderCreated, event.EventType)
	require.Equal(t, result.Order.ID, event.OrderID)
	require.Equal(t, customer.Customer.ID, event.CustomerID)
	require.Equal(t, "999.99", event.TotalAmount)
}

func TestCreateOrder_RejectedPublishesNothing(t *testing.T) {
	svc, publisher := newEventTestService(t)

	result, err := svc.CreateOrder(context.Background(), OrderInput{
		CustomerID: 12345,
		ProductIDs: []int64{1},
	})
	require.NoError(t, err)
	require.NotEmpty(t, result.Errors)
	require.Empty(t, publisher.orders)
}
