package modules

import (
	"expvar"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/oksasatya/go-bank-accounts/internal/container"
	"github.com/oksasatya/go-bank-accounts/internal/interface/middleware"
)

type DebugModule struct {
	Expvar     bool
	Prometheus bool
}

func NewDebugModule(expvarEnabled, prometheusEnabled bool) *DebugModule {
	return &DebugModule{Expvar: expvarEnabled, Prometheus: prometheusEnabled}
}

func (m *DebugModule) Register(rg *gin.RouterGroup) {
	// Public metrics endpoints, rate-limited per IP; private scrapers are not limited
	rl := middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByIP(), middleware.AllowPrivateIP())
	if m.Expvar {
		rg.GET("/debug/vars", rl, gin.WrapH(expvar.Handler()))
	}
	if m.Prometheus {
		rg.GET("/metrics", rl, gin.WrapH(promhttp.Handler()))
	}
}
