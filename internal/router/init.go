package router

import (
	app "github.com/oksasatya/go-bank-accounts/internal/application"
	"github.com/oksasatya/go-bank-accounts/internal/container"
	"github.com/oksasatya/go-bank-accounts/internal/domain/repository"
	pginfra "github.com/oksasatya/go-bank-accounts/internal/infrastructure/postgres"
	handlers "github.com/oksasatya/go-bank-accounts/internal/interface/http"
	"github.com/oksasatya/go-bank-accounts/internal/router/modules"
)

type BankAccountModuleDeps struct {
	Repo    repository.BankAccountRepository
	Service *app.Service
	Handler *handlers.BankAccountHandler
}

func buildBankAccountDeps() BankAccountModuleDeps {
	cfg := container.GetConfig()
	repo := pginfra.NewBankAccountRepository(container.GetPGPool(), container.GetCipher())

	// a nil *RabbitPublisher must not become a non-nil interface
	var events app.EventPublisher
	if pub := container.GetRabbitPub(); pub != nil {
		events = pub
	}

	service := app.NewService(
		repo,
		container.GetRedis(),
		container.GetES(),
		cfg.ESBankAccountsIndex,
		container.GetGCS(),
		cfg.GCSBucket,
		events,
		container.GetLogger(),
	)
	service.GCSExportPrefix = cfg.GCSExportPrefix
	service.CacheTTL = cfg.BankAccountCacheTTL
	service.Metrics = container.GetMetrics()

	handler := handlers.NewBankAccountHandler(service, container.GetLogger())

	return BankAccountModuleDeps{
		Repo:    repo,
		Service: service,
		Handler: handler,
	}
}

// InitModules initializes all application modules and registers them with the router registry
// This function should be called once during application startup to wire up all modules
func InitModules(r *Registry) {
	deps := buildBankAccountDeps()
	r.Add(modules.NewBankAccountModule(deps.Handler, container.GetJWT()))

	cfg := container.GetConfig()
	r.Add(modules.NewDebugModule(cfg.DebugMetricsEnabled, cfg.MetricsEnabled))
}
