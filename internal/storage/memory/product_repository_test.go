package memory_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/vladislavdragonenkov/crm/internal/domain"
	"github.com/vladislavdragonenkov/crm/internal/storage/memory"
)

func newProduct(name, price string, stock int64) domain.Product {
	return domain.Product{
		Name:      name,
		Price:     decimal.RequireFromString(price),
		Stock:     stock,
		CreatedAt: time.Now().UTC(),
	}
}

func TestProductRepository_CreateGet(t *testing.T) {
	repo := memory.NewProductRepository()
	ctx := context.Background()

	created, err := repo.Create(ctx, newProduct("Laptop", "999.99", 10))
	if err != nil {
		t.Fatalf("create product: %v", err)
	}
	if created.ID == 0 {
		t.Fatal("expected assigned id")
	}

	got, err := repo.Get(ctx, created.ID)
	if err != nil {
		t.Fatalf("get product: %v", err)
	}
	if got.Name != "Laptop" || !got.Price.Equal(decimal.RequireFromString("999.99")) {
		t.Fatalf("unexpected product: %+v", got)
	}

	if _, err := repo.Get(ctx, 999); !errors.Is(err, domain.ErrProductNotFound) {
		t.Fatalf("expected ErrProductNotFound, got %v", err)
	}
}

func TestProductRepository_GetByIDs(t *testing.T) {
	repo := memory.NewProductRepository()
	ctx := context.Background()

	laptop, _ := repo.Create(ctx, newProduct("Laptop", "999.99", 10))
	phone, _ := repo.Create(ctx, newProduct("Phone", "499.99", 20))

	// Отсутствующие и повторяющиеся ID не ошибка: возвращаются только
	// найденные товары, по одному разу, по возрастанию ID.
	got, err := repo.GetByIDs(ctx, []int64{phone.ID, 777, laptop.ID, phone.ID})
	if err != nil {
		t.Fatalf("get by ids: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 products, got %d", len(got))
	}
	if got[0].ID != laptop.ID || got[1].ID != phone.ID {
		t.Fatalf("unexpected order: %+v", got)
	}
}

func TestProductRepository_ListSorted(t *testing.T) {
	repo := memory.NewProductRepository()
	ctx := context.Background()

	_, _ = repo.Create(ctx, newProduct("Laptop", "999.99", 10))
	_, _ = repo.Create(ctx, newProduct("Headphones", "99.99", 50))
	_, _ = repo.Create(ctx, newProduct("Phone", "499.99", 20))

	byPrice, err := repo.List(ctx, domain.Sort{Column: "price"})
	if err != nil {
		t.Fatalf("list products: %v", err)
	}
	if byPrice[0].Name != "Headphones" || byPrice[2].Name != "Laptop" {
		t.Fatalf("unexpected price order: %+v", byPrice)
	}

	byStockDesc, err := repo.List(ctx, domain.Sort{Column: "stock", Desc: true})
	if err != nil {
		t.Fatalf("list products: %v", err)
	}
	if byStockDesc[0].Name != "Headphones" {
		t.Fatalf("unexpected stock order: %+v", byStockDesc)
	}
}
