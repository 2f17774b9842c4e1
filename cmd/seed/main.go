// Команда seed наполняет базу фиксированным набором клиентов и товаров
// через валидируемые мутации. Повторный запуск безопасен: существующий
// email пропускается.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/crm/internal/app"
	crmsvc "github.com/vladislavdragonenkov/crm/internal/service/crm"
)

const defaultTimeout = 30 * time.Second

var seedCustomers = []crmsvc.CustomerInput{
	{Name: "Alice", Email: "alice@example.com", Phone: "+123456789"},
	{Name: "Bob", Email: "bob@example.com", Phone: "123-456-7890"},
	{Name: "Carol", Email: "carol@example.com"},
}

var seedProducts = []crmsvc.ProductInput{
	{Name: "Laptop", Price: "999.99", Stock: int64Ptr(10)},
	{Name: "Phone", Price: "499.99", Stock: int64Ptr(20)},
	{Name: "Headphones", Price: "99.99", Stock: int64Ptr(50)},
}

func main() {
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})

	var (
		dsn    string
		driver string
	)
	flag.StringVar(&dsn, "dsn", "", "PostgreSQL DSN (fallback: CRM_POSTGRES_DSN)")
	flag.StringVar(&driver, "driver", app.StorageDriverPostgres, "storage driver: postgres|memory (memory = dry run)")
	flag.Parse()

	if strings.TrimSpace(dsn) == "" {
		dsn = strings.TrimSpace(os.Getenv("CRM_POSTGRES_DSN"))
	}

	cfg := app.DefaultConfig()
	cfg.StorageDriver = driver
	cfg.PostgresDSN = dsn
	if err := cfg.Validate(); err != nil {
		fail("invalid configuration: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	logger := log.WithField("component", "seed")
	deps, err := app.NewDependencies(ctx, cfg, logger)
	if err != nil {
		fail("init storage: %v", err)
	}
	defer deps.Close()

	service := crmsvc.NewService(deps.Customers, deps.Products, deps.Orders, deps.TxManager, logger)

	if err := seed(ctx, service, logger); err != nil {
		fail("seed failed: %v", err)
	}
	fmt.Println("database seeded successfully")
}

func seed(ctx context.Context, service *crmsvc.Service, logger *log.Entry) error {
	for _, input := range seedCustomers {
		result, err := service.CreateCustomer(ctx, input)
		if err != nil {
			return fmt.Errorf("create customer %s: %w", input.Email, err)
		}
		if len(result.Errors) > 0 {
			logger.WithFields(log.Fields{
				"email":  input.Email,
				"errors": result.Errors,
			}).Info("customer skipped")
			continue
		}
		logger.WithField("email", input.Email).Info("customer created")
	}

	existing, err := service.AllProducts(ctx, "")
	if err != nil {
		return fmt.Errorf("list products: %w", err)
	}
	known := make(map[string]struct{}, len(existing))
	for _, p := range existing {
		known[p.Name] = struct{}{}
	}

	for _, input := range seedProducts {
		if _, ok := known[input.Name]; ok {
			logger.WithField("name", input.Name).Info("product skipped")
			continue
		}
		result, err := service.CreateProduct(ctx, input)
		if err != nil {
			return fmt.Errorf("create product %s: %w", input.Name, err)
		}
		if len(result.Errors) > 0 {
			logger.WithFields(log.Fields{
				"name":   input.Name,
				"errors": result.Errors,
			}).Warn("product rejected")
			continue
		}
		logger.WithField("name", input.Name).Info("product created")
	}

	return nil
}

func int64Ptr(v int64) *int64 { return &v }

func fail(format string, args ...any) {
	_, _ = fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
