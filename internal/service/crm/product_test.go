package crm

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCreateProduct_Success(t *testing.T) {
	svc := newTestService(t)

	stock := int64(10)
	result, err := svc.CreateProduct(context.Background(), ProductInput{
		Name:  "Laptop",
		Price: "999.99",
		Stock: &stock,
	})
	require.NoError(t, err)
	require.Empty(t, result.Errors)
	require.NotNil(t, result.Product)
	require.Equal(t, "999.99", result.Product.Price.StringFixed(2))
	require.Equal(t, int64(10), result.Product.Stock)
}

func TestCreateProduct_PriceValidation(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	cases := []struct {
		name    string
		price   string
		wantErr string
	}{
		{"zero", "0", "Price must be positive"},
		{"negative", "-5", "Price must be positive"},
		{"unparseable", "abc", "Invalid price"},
		{"empty", "", "Invalid price"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			result, err := svc.CreateProduct(ctx, ProductInput{Name: "Widget", Price: tc.price})
			require.NoError(t, err)
			require.Nil(t, result.Product)
			require.Equal(t, []string{tc.wantErr}, result.Errors)
		})
	}

	result, err := svc.CreateProduct(ctx, ProductInput{Name: "Cheap", Price: "0.01"})
	require.NoError(t, err)
	require.Empty(t, result.Errors)
	require.NotNil(t, result.Product)
}

func TestCreateProduct_StockValidation(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	negative := int64(-1)
	result, err := svc.CreateProduct(ctx, ProductInput{Name: "Widget", Price: "1.00", Stock: &negative})
	require.NoError(t, err)
	require.Nil(t, result.Product)
	require.Equal(t, []string{"Stock cannot be negative"}, result.Errors)

	// Остаток не передан: по умолчанию ноль.
	result, err = svc.CreateProduct(ctx, ProductInput{Name: "Widget", Price: "1.00"})
	require.NoError(t, err)
	require.Empty(t, result.Errors)
	require.Equal(t, int64(0), result.Product.Stock)
}

func TestCreateProduct_AccumulatesErrors(t *testing.T) {
	svc := newTestService(t)

	negative := int64(-3)
	result, err := svc.CreateProduct(context.Background(), ProductInput{
		Name:  "Broken",
		Price: "-1",
		Stock: &negative,
	})
	require.NoError(t, err)
	require.Nil(t, result.Product)
	require.Equal(t, []string{"Price must be positive", "Stock cannot be negative"}, result.Errors)
}
