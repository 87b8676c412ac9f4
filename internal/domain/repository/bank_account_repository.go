package repository

import (
	"context"
	"errors"

	"github.com/oksasatya/go-bank-accounts/internal/domain/entity"
)

var ErrNotFound = errors.New("not found")

// BankAccountRepository persists bank account records. Implementations encrypt
// the account number at rest and return records with it decrypted.
type BankAccountRepository interface {
	Create(ctx context.Context, b *entity.BankAccount) error
	GetByID(ctx context.Context, id string) (*entity.BankAccount, error)
	ListByUser(ctx context.Context, userID string) ([]*entity.BankAccount, error)
	Delete(ctx context.Context, id string) error
}
