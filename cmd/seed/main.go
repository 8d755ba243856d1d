package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/joho/godotenv"

	"github.com/oksasatya/go-ddd-account-wishlist/config"
	"github.com/oksasatya/go-ddd-account-wishlist/internal/application"
	"github.com/oksasatya/go-ddd-account-wishlist/internal/domain/errs"
	pginfra "github.com/oksasatya/go-ddd-account-wishlist/internal/infrastructure/postgres"
	"github.com/oksasatya/go-ddd-account-wishlist/pkg/helpers"
)

const (
	demoEmail    = "demo@example.com"
	demoPassword = "password123"
	demoUsername = "demoUser"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName+"-seed", cfg.Env)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	pool, err := pginfra.NewPool(ctx, cfg.PostgresDSN(), pginfra.PoolOptions{MaxConns: 4})
	if err != nil {
		log.Fatalf("failed to connect to postgres: %v", err)
	}
	defer pool.Close()

	catalog := pginfra.NewProductCatalog(pool)
	products := generateProducts(time.Now().UTC())
	for _, p := range products {
		if err := catalog.Upsert(ctx, p); err != nil {
			log.Fatalf("failed to seed product %s: %v", p.ID, err)
		}
	}
	fmt.Printf("seeded %d products\n", len(products))

	accounts := pginfra.NewAccountRepository(pool)
	accountSvc := application.NewAccountService(accounts, nil, nil, nil, logger)
	wishlistSvc := application.NewWishlistService(pginfra.NewWishlistRepository(pool), accounts, catalog, nil, logger)

	acc, err := accountSvc.GetAccountByEmail(ctx, demoEmail)
	if errors.Is(err, errs.ErrNotFound) {
		acc, err = accountSvc.CreateAccount(ctx, application.CreateAccountInput{
			Username:  demoUsername,
			Email:     demoEmail,
			Password:  demoPassword,
			FirstName: "Demo",
			LastName:  "User",
			City:      "Jakarta",
			Country:   "Indonesia",
		})
	}
	if err != nil {
		log.Fatalf("failed to seed account: %v", err)
	}
	fmt.Printf("seeded account: id=%s email=%s password=%s\n", acc.ID, acc.Email, demoPassword)

	for _, p := range products[:3] {
		_, err := wishlistSvc.AddToWishlist(ctx, acc.ID, p.ID)
		if err != nil && !errors.Is(err, errs.ErrConflict) {
			log.Fatalf("failed to seed wishlist entry %s: %v", p.ID, err)
		}
	}
	fmt.Println("seeded demo wishlist (if not already)")
}
