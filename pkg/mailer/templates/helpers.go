package templates

import (
	"strings"
	"time"

	"github.com/oksasatya/go-bank-accounts/config"
	"github.com/oksasatya/go-bank-accounts/internal/domain/event"
	"github.com/oksasatya/go-bank-accounts/pkg/reference"
)

type Option func(*EmailData)

func WithTime(t time.Time) Option {
	return func(d *EmailData) {
		utc := t.UTC()
		d.TimeAt = utc
		d.Time = utc.Format("02 January 2006, 15:04")
	}
}

func WithName(name string) Option {
	return func(d *EmailData) {
		if s := strings.TrimSpace(name); s != "" {
			d.Name = s
		}
	}
}

// NewBaseEmailData fills the common fields from config, then applies options.
func NewBaseEmailData(cfg *config.Config, typ, recipient string, opts ...Option) EmailData {
	d := EmailData{
		RecipientEmail: recipient,
		Type:           typ,

		CompanyName:    cfg.CompanyName,
		CompanyAddress: cfg.CompanyAddress,
		AppName:        cfg.AppName,

		LogoURL:        cfg.LogoURL,
		SupportURL:     cfg.SupportURL,
		PrivacyURL:     cfg.PrivacyURL,
		UnsubscribeURL: cfg.UnsubscribeURL,
	}
	for _, opt := range opts {
		opt(&d)
	}
	return d
}

// TemplateFor maps an event type onto its notification template.
func TemplateFor(eventType string) (string, bool) {
	switch eventType {
	case event.BankAccountCreated:
		return BankAccountAdded, true
	case event.BankAccountDeleted:
		return BankAccountRemoved, true
	default:
		return "", false
	}
}

// NewBankAccountData builds template data from a bank account event.
func NewBankAccountData(cfg *config.Config, ev event.BankAccountEvent, opts ...Option) (string, map[string]any, bool) {
	name, ok := TemplateFor(ev.Type)
	if !ok {
		return "", nil, false
	}
	opts = append([]Option{WithName(ev.Name), WithTime(ev.OccurredAt)}, opts...)
	d := NewBaseEmailData(cfg, name, ev.Email, opts...)
	d.Country = ev.Country
	d.CountryName = ev.Country
	if c, ok := reference.CountryByAlpha2(ev.Country); ok {
		d.CountryName = c.Name
	}
	d.Currency = strings.ToUpper(ev.Currency)
	d.RoutingNumber = ev.BankAccount.RoutingNumber
	d.AccountNumber = ev.BankAccount.AccountNumber
	d.BankAccountType = ev.BankAccount.BankAccountType
	return name, ToMap(d), true
}
