package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/go-bank-accounts/internal/container"
	handlers "github.com/oksasatya/go-bank-accounts/internal/interface/http"
	"github.com/oksasatya/go-bank-accounts/internal/interface/middleware"
	"github.com/oksasatya/go-bank-accounts/pkg/helpers"
)

// BankAccountModule wires bank account handlers behind auth and rate limits.
// All routes are registered under the given RouterGroup (usually /api).
type BankAccountModule struct {
	Handler *handlers.BankAccountHandler
	JWT     *helpers.JWTManager
}

func NewBankAccountModule(h *handlers.BankAccountHandler, jwt *helpers.JWTManager) *BankAccountModule {
	return &BankAccountModule{Handler: h, JWT: jwt}
}

func (m *BankAccountModule) Register(rg *gin.RouterGroup) {
	rdb := container.GetRedis()

	auth := rg.Group("/bank-accounts")
	auth.Use(middleware.Auth(rdb, m.JWT))
	auth.Use(
		middleware.RateLimit(rdb, 300, time.Minute, middleware.KeyByIP(), nil),
		middleware.RateLimit(rdb, 120, time.Minute, middleware.KeyByUserID(), nil),
	)
	{
		// writes and dry runs are tighter per user
		writeLimiter := middleware.RateLimit(rdb, 20, time.Minute, middleware.KeyByIPAndPath(), nil)
		exportLimiter := middleware.RateLimit(rdb, 5, time.Minute, middleware.KeyByUserID(), nil)

		auth.POST("", writeLimiter, m.Handler.Create)
		auth.POST("/validate", writeLimiter, m.Handler.Validate)
		auth.GET("", m.Handler.List)
		auth.GET("/search", m.Handler.Search)
		auth.GET("/:id", m.Handler.Get)
		auth.DELETE("/:id", writeLimiter, m.Handler.Delete)
		auth.POST("/export", exportLimiter, m.Handler.Export)
	}
}
