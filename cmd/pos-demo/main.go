// Command pos-demo drives one purchase through the engine against a running
// backend (see cmd/stub-backend): hydrate the tenant cart, add items, walk
// the checkout wizard, place the order and acknowledge the receipt.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/Zeyademad999/vendor-point-pro-sub000/internal/cart"
	"github.com/Zeyademad999/vendor-point-pro-sub000/internal/cart/repository"
	"github.com/Zeyademad999/vendor-point-pro-sub000/internal/checkout"
	"github.com/Zeyademad999/vendor-point-pro-sub000/internal/domain"
	"github.com/Zeyademad999/vendor-point-pro-sub000/internal/pkg/logging"
	"github.com/Zeyademad999/vendor-point-pro-sub000/internal/submit"
	"github.com/Zeyademad999/vendor-point-pro-sub000/internal/wizard"
)

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// cartRepository picks redis when REDIS_ADDR is set, in-memory otherwise.
func cartRepository(log *zap.Logger) repository.Repository {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		return repository.NewMemoryRepository()
	}
	log.Info("using redis cart slots", zap.String("addr", addr))
	return repository.NewRedisRepository(redis.NewClient(&redis.Options{Addr: addr}))
}

func run() error {
	log, err := logging.NewLogger("pos-demo", getEnv("ENV", "dev"))
	if err != nil {
		return err
	}
	defer log.Sync()

	tenant := getEnv("TENANT", "demo-tenant")
	backendURL := getEnv("BACKEND_URL", "http://localhost:8090")

	ctx := context.Background()
	if token := os.Getenv("API_TOKEN"); token != "" {
		ctx = submit.WithToken(ctx, token)
	}

	store := cart.NewStore(tenant, cartRepository(log), log)
	if err := store.Hydrate(ctx); err != nil {
		return fmt.Errorf("hydrate cart: %w", err)
	}

	ceiling := 3
	espresso := domain.LineItem{
		Key:          domain.ItemKey(domain.ItemKindProduct, "espresso-beans"),
		Name:         "Espresso Beans 1kg",
		UnitPrice:    decimal.RequireFromString("10"),
		Kind:         domain.ItemKindProduct,
		StockCeiling: &ceiling,
	}
	grinder := domain.LineItem{
		Key:       domain.ItemKey(domain.ItemKindProduct, "hand-grinder"),
		Name:      "Hand Grinder",
		UnitPrice: decimal.RequireFromString("5"),
		Kind:      domain.ItemKindProduct,
	}

	for _, item := range []domain.LineItem{espresso, espresso, grinder} {
		if err := store.AddItem(ctx, item); err != nil {
			return fmt.Errorf("add item: %w", err)
		}
	}

	sess := wizard.NewPurchaseSession(tenant)
	sess.Draft.Customer = domain.Customer{
		Name:       "Walk-in Customer",
		Email:      "walkin@example.com",
		Phone:      "555-0100",
		Address:    "1 Main St",
		PostalCode: "10001",
	}
	sess.Draft.PaymentMethod = domain.PaymentCash

	for sess.Step() != wizard.StepConfirmation {
		if err := sess.Advance(); err != nil {
			return fmt.Errorf("advance from %s: %w", sess.Step(), err)
		}
	}

	client := submit.New(backendURL, submit.WithLogger(log))
	svc := checkout.New(store, client,
		checkout.WithOrigin(domain.OriginPOS),
		checkout.WithLogger(log))

	spec := domain.DiscountSpec{Mode: domain.DiscountFixed, Magnitude: decimal.NewFromInt(5)}
	breakdown := svc.Totals(spec)
	log.Info("cart totals",
		zap.String("subtotal", breakdown.Subtotal.String()),
		zap.String("discount", breakdown.Discount.String()),
		zap.String("total", breakdown.Total.String()))

	receipt, err := svc.PlaceOrder(ctx, sess, spec)
	if err != nil {
		return fmt.Errorf("place order: %w", err)
	}

	fmt.Printf("order placed, receipt %s, total %s\n", receipt.ReceiptNumber, receipt.Order.Total)
	return svc.AcknowledgeReceipt(ctx)
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "pos-demo:", err)
		os.Exit(1)
	}
}
