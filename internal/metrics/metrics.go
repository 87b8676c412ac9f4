package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics is safe to use as a nil pointer; every method is then a no-op.
type Metrics struct {
	Validations       *prometheus.CounterVec
	ValidationErrors  *prometheus.CounterVec
	BankAccountsAdded *prometheus.CounterVec
	ViewCacheLookups  *prometheus.CounterVec
}

// New registers the collectors on the default registry; call it once per process.
func New() *Metrics {
	return NewWith(prometheus.DefaultRegisterer)
}

func NewWith(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		Validations: f.NewCounterVec(prometheus.CounterOpts{
			Name: "bank_account_validations_total",
			Help: "Bank account validations by country and outcome",
		}, []string{"country", "outcome"}),
		ValidationErrors: f.NewCounterVec(prometheus.CounterOpts{
			Name: "bank_account_validation_errors_total",
			Help: "Record-level validation errors by country and kind",
		}, []string{"country", "kind"}),
		BankAccountsAdded: f.NewCounterVec(prometheus.CounterOpts{
			Name: "bank_accounts_added_total",
			Help: "Bank accounts persisted by country",
		}, []string{"country"}),
		ViewCacheLookups: f.NewCounterVec(prometheus.CounterOpts{
			Name: "bank_account_view_cache_lookups_total",
			Help: "Masked view cache lookups by result",
		}, []string{"result"}),
	}
}

func (m *Metrics) ObserveValidation(country string, kinds []string) {
	if m == nil {
		return
	}
	outcome := "valid"
	if len(kinds) > 0 {
		outcome = "invalid"
	}
	m.Validations.WithLabelValues(country, outcome).Inc()
	for _, k := range kinds {
		m.ValidationErrors.WithLabelValues(country, k).Inc()
	}
}

func (m *Metrics) IncrementAdded(country string) {
	if m == nil {
		return
	}
	m.BankAccountsAdded.WithLabelValues(country).Inc()
}

func (m *Metrics) ObserveCache(hit bool) {
	if m == nil {
		return
	}
	result := "miss"
	if hit {
		result = "hit"
	}
	m.ViewCacheLookups.WithLabelValues(result).Inc()
}
