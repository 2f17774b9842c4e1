package memory_test

import (
	"context"
	"testing"
	"time"

	"github.com/vladislavdragonenkov/crm/internal/domain"
	"github.com/vladislavdragonenkov/crm/internal/storage/memory"
)

func newCustomer(email string) domain.Customer {
	return domain.Customer{
		Name:      "Alice",
		Email:     email,
		Phone:     "+123456789",
		CreatedAt: time.Now().UTC(),
	}
}

func TestCustomerRepository_CreateGet(t *testing.T) {
	repo := memory.NewCustomerRepository()
	ctx := context.Background()

	created, err := repo.Create(ctx, newCustomer("alice@example.com"))
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if created.ID == 0 {
		t.Fatal("expected assigned id")
	}

	stored, err := repo.Get(ctx, created.ID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if stored.Email != "alice@example.com" {
		t.Fatalf("expected email alice@example.com, got %s", stored.Email)
	}
}

func TestCustomerRepository_CreateDuplicateEmail(t *testing.T) {
	repo := memory.NewCustomerRepository()
	ctx := context.Background()

	if _, err := repo.Create(ctx, newCustomer("alice@example.com")); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	_, err := repo.Create(ctx, newCustomer("alice@example.com"))
	if !domain.IsEmailTaken(err) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}

func TestCustomerRepository_ExistsByEmail(t *testing.T) {
	repo := memory.NewCustomerRepository()
	ctx := context.Background()

	exists, err := repo.ExistsByEmail(ctx, "alice@example.com")
	if err != nil {
		t.Fatalf("exists failed: %v", err)
	}
	if exists {
		t.Fatal("email must not exist yet")
	}

	if _, err := repo.Create(ctx, newCustomer("alice@example.com")); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	exists, err = repo.ExistsByEmail(ctx, "alice@example.com")
	if err != nil {
		t.Fatalf("exists failed: %v", err)
	}
	if !exists {
		t.Fatal("email must exist after create")
	}
}

func TestCustomerRepository_GetNotFound(t *testing.T) {
	repo := memory.NewCustomerRepository()

	if _, err := repo.Get(context.Background(), 42); err != domain.ErrCustomerNotFound {
		t.Fatalf("expected ErrCustomerNotFound, got %v", err)
	}
}

func TestCustomerRepository_ListSorted(t *testing.T) {
	repo := memory.NewCustomerRepository()
	ctx := context.Background()

	for _, c := range []domain.Customer{
		{Name: "Carol", Email: "carol@example.com"},
		{Name: "Alice", Email: "alice@example.com"},
		{Name: "Bob", Email: "bob@example.com"},
	} {
		if _, err := repo.Create(ctx, c); err != nil {
			t.Fatalf("create failed: %v", err)
		}
	}

	customers, err := repo.List(ctx, domain.Sort{Column: "name"})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(customers) != 3 {
		t.Fatalf("expected 3 customers, got %d", len(customers))
	}
	if customers[0].Name != "Alice" || customers[2].Name != "Carol" {
		t.Fatalf("unexpected order: %s, %s, %s", customers[0].Name, customers[1].Name, customers[2].Name)
	}

	descending, err := repo.List(ctx, domain.Sort{Column: "name", Desc: true})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if descending[0].Name != "Carol" {
		t.Fatalf("expected Carol first, got %s", descending[0].Name)
	}
}
