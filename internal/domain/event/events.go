package event

import (
	"time"

	"github.com/google/uuid"

	"github.com/oksasatya/go-bank-accounts/internal/domain/bankaccount"
)

const (
	BankAccountCreated = "bank_account.created"
	BankAccountDeleted = "bank_account.deleted"
)

// BankAccountEvent is published on the events queue. It only ever carries the masked view.
type BankAccountEvent struct {
	ID          string           `json:"event_id"`
	Type        string           `json:"event_type"`
	AccountID   string           `json:"account_id"`
	UserID      string           `json:"user_id"`
	Email       string           `json:"email,omitempty"`
	Name        string           `json:"name,omitempty"`
	Country     string           `json:"country"`
	Currency    string           `json:"currency"`
	BankAccount bankaccount.Hash `json:"bank_account"`
	OccurredAt  time.Time        `json:"occurred_at"`
}

func NewBankAccountEvent(eventType string, v bankaccount.Variant, email, name string) BankAccountEvent {
	rec := v.Record()
	return BankAccountEvent{
		ID:          uuid.NewString(),
		Type:        eventType,
		AccountID:   rec.ID,
		UserID:      rec.UserID,
		Email:       email,
		Name:        name,
		Country:     v.Country(),
		Currency:    v.Currency().String(),
		BankAccount: v.ToHash(),
		OccurredAt:  time.Now().UTC(),
	}
}
