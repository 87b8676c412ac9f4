package bankaccount

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/go-bank-accounts/internal/domain/entity"
	"github.com/oksasatya/go-bank-accounts/pkg/validation"
)

func TestNew_SelectsVariantByCountry(t *testing.T) {
	v, err := New(entity.NewBankAccount("u1", "et", "ABCD1234", "1234567890123"))
	require.NoError(t, err)
	_, ok := v.(*Ethiopia)
	assert.True(t, ok)
	assert.Equal(t, "ET", v.Record().Country)
}

func TestNew_UnsupportedCountry(t *testing.T) {
	_, err := New(entity.NewBankAccount("u1", "ZZ", "ABCD1234", "1234567890123"))
	assert.ErrorIs(t, err, ErrUnsupportedCountry)

	_, err = New(nil)
	assert.ErrorIs(t, err, ErrUnsupportedCountry)
}

func TestSupported(t *testing.T) {
	assert.True(t, Supported("ET"))
	assert.True(t, Supported(" et"))
	assert.False(t, Supported("US"))
}

func TestBankCountryTag(t *testing.T) {
	assert.True(t, validation.Matches(BankCountryTag, "et"))
	assert.False(t, validation.Matches(BankCountryTag, "ZZ"))
	assert.False(t, validation.Matches(BankCountryTag, ""))
}
