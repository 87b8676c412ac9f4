package entity

import (
	"strings"
	"time"
)

// BankAccount is the aggregate root shared by every country variant.
// The account number is held in plaintext only in memory; the repository
// encrypts it at rest and never persists it in the clear.
type BankAccount struct {
	ID         string
	UserID     string
	Country    string // ISO alpha-2, selects the variant
	BankNumber string
	CreatedAt  time.Time
	UpdatedAt  time.Time

	accountNumber string
	errs          Errors
}

func NewBankAccount(userID, country, bankNumber, accountNumber string) *BankAccount {
	return &BankAccount{
		UserID:        userID,
		Country:       strings.ToUpper(strings.TrimSpace(country)),
		BankNumber:    bankNumber,
		accountNumber: accountNumber,
	}
}

// SetAccountNumber stores the decrypted account number, used by the repository after loading.
func (b *BankAccount) SetAccountNumber(v string) { b.accountNumber = v }

func (b *BankAccount) AccountNumberDecrypted() string { return b.accountNumber }

// AccountNumberLastFour returns at most the last four characters of the account number.
func (b *BankAccount) AccountNumberLastFour() string {
	r := []rune(b.accountNumber)
	if len(r) <= 4 {
		return string(r)
	}
	return string(r[len(r)-4:])
}

// Errors returns the record's validation error collection.
func (b *BankAccount) Errors() *Errors { return &b.errs }
