package crm

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

// Отклонённая мутация не имеет побочных эффектов: повтор того же
// невалидного входа возвращает тот же список ошибок, и хранилище
// остаётся пустым после обоих вызовов.
func TestFailedCreateOrder_RepeatsWithoutSideEffects(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	customer := seedCustomer(t, svc, "Alice", "alice@example.com")

	input := OrderInput{CustomerID: customer.ID, ProductIDs: []int64{999, 1000}}

	first, err := svc.CreateOrder(ctx, input)
	require.NoError(t, err)
	second, err := svc.CreateOrder(ctx, input)
	require.NoError(t, err)

	require.Equal(t, []string{"Invalid product ID(s): 999, 1000"}, first.Errors)
	require.Equal(t, first.Errors, second.Errors)
	require.Nil(t, first.Order)
	require.Nil(t, second.Order)

	orders, err := svc.AllOrders(ctx, "")
	require.NoError(t, err)
	require.Empty(t, orders)
}

func TestFailedCreateProduct_RepeatsWithoutSideEffects(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	input := ProductInput{Name: "Broken", Price: "-5"}

	first, err := svc.CreateProduct(ctx, input)
	require.NoError(t, err)
	second, err := svc.CreateProduct(ctx, input)
	require.NoError(t, err)

	require.Equal(t, []string{"Price must be positive"}, first.Errors)
	require.Equal(t, first.Errors, second.Errors)

	products, err := svc.AllProducts(ctx, "")
	require.NoError(t, err)
	require.Empty(t, products)
}

func TestFailedCreateCustomer_RepeatsWithoutSideEffects(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.CreateCustomer(ctx, CustomerInput{Name: "Alice", Email: "alice@example.com"})
	require.NoError(t, err)

	input := CustomerInput{Name: "Dup", Email: "alice@example.com", Phone: "bogus"}

	first, err := svc.CreateCustomer(ctx, input)
	require.NoError(t, err)
	second, err := svc.CreateCustomer(ctx, input)
	require.NoError(t, err)

	require.Equal(t, []string{"Email already exists", "Invalid phone format"}, first.Errors)
	require.Equal(t, first.Errors, second.Errors)

	customers, err := svc.AllCustomers(ctx, "")
	require.NoError(t, err)
	require.Len(t, customers, 1)
}
