package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrors_Accumulates(t *testing.T) {
	var errs Errors
	assert.True(t, errs.Empty())

	errs.Add(ScopeBase, InvalidBankCode)
	errs.Add(ScopeBase, InvalidAccountNumber)

	require.Equal(t, 2, errs.Len())
	assert.True(t, errs.Has(InvalidBankCode))
	assert.True(t, errs.Has(InvalidAccountNumber))
	assert.Equal(t, map[string][]string{
		"base": {"The bank code is invalid.", "The account number is invalid."},
	}, errs.Full())
	assert.Equal(t, "The bank code is invalid. The account number is invalid.", errs.Error())

	items := errs.Items()
	assert.Equal(t, InvalidBankCode, items[0].Kind)
	assert.Equal(t, ScopeBase, items[1].Scope)

	errs.Clear()
	assert.True(t, errs.Empty())
}

func TestBankAccount_AccountNumberLastFour(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"long", "1234567890123", "0123"},
		{"exactly four", "9876", "9876"},
		{"short", "12", "12"},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewBankAccount("u1", "et", "ABCD1234", tt.in)
			assert.Equal(t, tt.want, b.AccountNumberLastFour())
		})
	}
}

func TestNewBankAccount_NormalizesCountry(t *testing.T) {
	b := NewBankAccount("u1", " et ", "ABCD1234", "1234567890123")
	assert.Equal(t, "ET", b.Country)
	assert.Equal(t, "1234567890123", b.AccountNumberDecrypted())
}
