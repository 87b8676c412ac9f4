package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics_ObserveValidation(t *testing.T) {
	m := NewWith(prometheus.NewRegistry())

	m.ObserveValidation("ET", nil)
	m.ObserveValidation("ET", []string{"invalid_bank_code", "invalid_account_number"})
	m.IncrementAdded("ET")
	m.ObserveCache(true)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.Validations.WithLabelValues("ET", "valid")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Validations.WithLabelValues("ET", "invalid")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ValidationErrors.WithLabelValues("ET", "invalid_bank_code")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.BankAccountsAdded.WithLabelValues("ET")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ViewCacheLookups.WithLabelValues("hit")))
}

func TestMetrics_NilSafe(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.ObserveValidation("ET", []string{"x"})
		m.IncrementAdded("ET")
		m.ObserveCache(false)
	})
}
