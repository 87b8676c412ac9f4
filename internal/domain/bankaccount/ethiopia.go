package bankaccount

import (
	"github.com/oksasatya/go-bank-accounts/internal/domain/entity"
	"github.com/oksasatya/go-bank-accounts/pkg/reference"
	"github.com/oksasatya/go-bank-accounts/pkg/validation"
)

const (
	EthiopiaBankAccountType = "ET"

	ethiopiaBankCodeFormat      = `^[0-9a-zA-Z]{8,11}$`
	ethiopiaAccountNumberFormat = `^[0-9a-zA-Z]{13,16}$`

	ethiopiaBankCodeTag      = "et_bank_code"
	ethiopiaAccountNumberTag = "et_account_number"
)

func init() {
	validation.RegisterPattern(ethiopiaBankCodeTag, ethiopiaBankCodeFormat)
	validation.RegisterPattern(ethiopiaAccountNumberTag, ethiopiaAccountNumberFormat)
}

// Ethiopia is the bank account variant for ET. The bank number is exposed as the bank code.
type Ethiopia struct {
	*entity.BankAccount
}

func NewEthiopia(b *entity.BankAccount) *Ethiopia { return &Ethiopia{BankAccount: b} }

func (a *Ethiopia) Record() *entity.BankAccount { return a.BankAccount }

func (a *Ethiopia) BankCode() string { return a.BankNumber }

// Validate runs both format checks and reports every failure on the record.
func (a *Ethiopia) Validate() *entity.Errors {
	errs := a.Errors()
	errs.Clear()
	if !validation.Matches(ethiopiaBankCodeTag, a.BankCode()) {
		errs.Add(entity.ScopeBase, entity.InvalidBankCode)
	}
	if !validation.Matches(ethiopiaAccountNumberTag, a.AccountNumberDecrypted()) {
		errs.Add(entity.ScopeBase, entity.InvalidAccountNumber)
	}
	return errs
}

func (a *Ethiopia) RoutingNumber() string { return a.BankCode() }

func (a *Ethiopia) BankAccountType() string { return EthiopiaBankAccountType }

func (a *Ethiopia) Country() string { return reference.ETH.Alpha2 }

func (a *Ethiopia) Currency() reference.Currency { return reference.ETB }

func (a *Ethiopia) AccountNumberVisual() string { return mask(a.AccountNumberLastFour()) }

func (a *Ethiopia) ToHash() Hash {
	return Hash{
		RoutingNumber:   a.RoutingNumber(),
		AccountNumber:   a.AccountNumberVisual(),
		BankAccountType: a.BankAccountType(),
	}
}

var _ Variant = (*Ethiopia)(nil)
