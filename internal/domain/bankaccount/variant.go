package bankaccount

import (
	"errors"
	"strings"

	"github.com/oksasatya/go-bank-accounts/internal/domain/entity"
	"github.com/oksasatya/go-bank-accounts/pkg/reference"
	"github.com/oksasatya/go-bank-accounts/pkg/validation"
)

// BankCountryTag is the binding tag accepting only countries with a variant.
const BankCountryTag = "bank_country"

func init() {
	validation.RegisterBindingFunc(BankCountryTag, Supported)
}

var ErrUnsupportedCountry = errors.New("unsupported bank account country")

// Variant is the capability set every country-specific bank account provides.
type Variant interface {
	Record() *entity.BankAccount
	Validate() *entity.Errors
	BankAccountType() string
	Country() string
	Currency() reference.Currency
	RoutingNumber() string
	AccountNumberVisual() string
	ToHash() Hash
}

// Hash is the serialization shape of a variant. The account number is always masked.
type Hash struct {
	RoutingNumber   string `json:"routing_number"`
	AccountNumber   string `json:"account_number"`
	BankAccountType string `json:"bank_account_type"`
}

func (h Hash) Map() map[string]any {
	return map[string]any{
		"routing_number":    h.RoutingNumber,
		"account_number":    h.AccountNumber,
		"bank_account_type": h.BankAccountType,
	}
}

type constructor func(*entity.BankAccount) Variant

// keyed by ISO alpha-2 country
var registry = map[string]constructor{
	reference.ETH.Alpha2: func(b *entity.BankAccount) Variant { return NewEthiopia(b) },
}

// New wraps the record in the variant selected by its country.
func New(b *entity.BankAccount) (Variant, error) {
	if b == nil {
		return nil, ErrUnsupportedCountry
	}
	ctor, ok := registry[strings.ToUpper(b.Country)]
	if !ok {
		return nil, ErrUnsupportedCountry
	}
	return ctor(b), nil
}

// Supported reports whether a variant exists for the country.
func Supported(country string) bool {
	_, ok := registry[strings.ToUpper(strings.TrimSpace(country))]
	return ok
}

const maskPrefix = "******"

func mask(lastFour string) string { return maskPrefix + lastFour }
