package main

import (
	"context"
	"flag"
	"fmt"
	"log"

	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"github.com/oksasatya/go-bank-accounts/config"
	"github.com/oksasatya/go-bank-accounts/internal/domain/bankaccount"
	"github.com/oksasatya/go-bank-accounts/internal/domain/entity"
	pginfra "github.com/oksasatya/go-bank-accounts/internal/infrastructure/postgres"
	"github.com/oksasatya/go-bank-accounts/pkg/helpers"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	userID := flag.String("user", "", "owner user id (random if empty)")
	bankCode := flag.String("bank-code", "CBETETAA", "bank code")
	accountNumber := flag.String("account-number", "1000123456789", "account number")
	flag.Parse()
	if *userID == "" {
		*userID = uuid.NewString()
	}

	cipher, err := helpers.NewCipherFromHex(cfg.AccountEncryptionKey)
	if err != nil {
		log.Fatalf("invalid ACCOUNT_ENCRYPTION_KEY: %v", err)
	}

	ctx := context.Background()
	pool, err := pginfra.NewPool(ctx, cfg.PostgresDSN(), cfg.DBMaxConns, cfg.DBMinConns, cfg.DBMaxConnLife)
	if err != nil {
		log.Fatalf("failed to connect to postgres: %v", err)
	}
	defer pool.Close()

	v, err := bankaccount.New(entity.NewBankAccount(*userID, "ET", *bankCode, *accountNumber))
	if err != nil {
		log.Fatalf("failed to build bank account: %v", err)
	}
	if errs := v.Validate(); !errs.Empty() {
		log.Fatalf("refusing to seed invalid bank account: %v", errs)
	}

	repo := pginfra.NewBankAccountRepository(pool, cipher)
	if err := repo.Create(ctx, v.Record()); err != nil {
		log.Fatalf("failed to seed bank account: %v", err)
	}
	h := v.ToHash()
	fmt.Printf("seeded bank account: id=%s user=%s routing=%s account=%s type=%s\n",
		v.Record().ID, *userID, h.RoutingNumber, h.AccountNumber, h.BankAccountType)
}
