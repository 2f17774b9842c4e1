package crm

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/vladislavdragonenkov/crm/internal/domain"
)

func seedCustomer(t *testing.T, svc *Service, name, email string) domain.Customer {
	t.Helper()

	result, err := svc.CreateCustomer(context.Background(), CustomerInput{Name: name, Email: email})
	require.NoError(t, err)
	require.Empty(t, result.Errors)
	return *result.Customer
}

func seedProduct(t *testing.T, svc *Service, name, price string) domain.Product {
	t.Helper()

	result, err := svc.CreateProduct(context.Background(), ProductInput{Name: name, Price: price})
	require.NoError(t, err)
	require.Empty(t, result.Errors)
	return *result.Product
}

func TestCreateOrder_Success(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	customer := seedCustomer(t, svc, "Alice", "alice@example.com")
	laptop := seedProduct(t, svc, "Laptop", "10.00")
	phone := seedProduct(t, svc, "Phone", "5.50")

	result, err := svc.CreateOrder(ctx, OrderInput{
		CustomerID: customer.ID,
		ProductIDs: []int64{laptop.ID, phone.ID},
	})
	require.NoError(t, err)
	require.Empty(t, result.Errors)
	require.NotNil(t, result.Order)
	require.Equal(t, customer.ID, result.Order.CustomerID)
	require.Equal(t, "15.50", result.Order.TotalAmount.StringFixed(2))
	require.Len(t, result.Order.Products, 2)
	require.False(t, result.Order.OrderDate.IsZero())
}

func TestCreateOrder_InvalidCustomer(t *testing.T) {
	svc := newTestService(t)

	product := seedProduct(t, svc, "Laptop", "999.99")

	result, err := svc.CreateOrder(context.Background(), OrderInput{
		CustomerID: 12345,
		ProductIDs: []int64{product.ID},
	})
	require.NoError(t, err)
	require.Nil(t, result.Order)
	require.Equal(t, []string{"Invalid customer ID"}, result.Errors)
}

func TestCreateOrder_EmptyProducts(t *testing.T) {
	svc := newTestService(t)

	customer := seedCustomer(t, svc, "Alice", "alice@example.com")

	result, err := svc.CreateOrder(context.Background(), OrderInput{
		CustomerID: customer.ID,
		ProductIDs: []int64{},
	})
	require.NoError(t, err)
	require.Nil(t, result.Order)
	require.Equal(t, []string{"At least one product must be provided"}, result.Errors)
}

func TestCreateOrder_MissingProducts(t *testing.T) {
	svc := newTestService(t)

	customer := seedCustomer(t, svc, "Alice", "alice@example.com")
	product := seedProduct(t, svc, "Laptop", "999.99")

	result, err := svc.CreateOrder(context.Background(), OrderInput{
		CustomerID: customer.ID,
		ProductIDs: []int64{product.ID, 1000, 999, 1000},
	})
	require.NoError(t, err)
	require.Nil(t, result.Order)
	require.Equal(t, []string{"Invalid product ID(s): 999, 1000"}, result.Errors)

	orders, err := svc.AllOrders(context.Background(), "")
	require.NoError(t, err)
	require.Empty(t, orders)
}

func TestCreateOrder_ExplicitOrderDate(t *testing.T) {
	svc := newTestService(t)

	customer := seedCustomer(t, svc, "Alice", "alice@example.com")
	product := seedProduct(t, svc, "Laptop", "999.99")

	when := time.Date(2025, 1, 15, 9, 30, 0, 0, time.UTC)
	result, err := svc.CreateOrder(context.Background(), OrderInput{
		CustomerID: customer.ID,
		ProductIDs: []int64{product.ID},
		OrderDate:  &when,
	})
	require.NoError(t, err)
	require.Empty(t, result.Errors)
	require.True(t, result.Order.OrderDate.Equal(when))
}

func TestCreateOrder_TotalFrozenAtCreation(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	customer := seedCustomer(t, svc, "Alice", "alice@example.com")
	product := seedProduct(t, svc, "Laptop", "999.99")

	first, err := svc.CreateOrder(ctx, OrderInput{CustomerID: customer.ID, ProductIDs: []int64{product.ID}})
	require.NoError(t, err)
	require.Equal(t, "999.99", first.Order.TotalAmount.StringFixed(2))

	got, err := svc.GetOrder(ctx, first.Order.ID)
	require.NoError(t, err)
	require.Equal(t, "999.99", got.TotalAmount.StringFixed(2))
}
