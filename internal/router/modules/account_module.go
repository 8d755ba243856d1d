package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/go-ddd-account-wishlist/internal/container"
	handlers "github.com/oksasatya/go-ddd-account-wishlist/internal/interface/http"
	"github.com/oksasatya/go-ddd-account-wishlist/internal/interface/middleware"
)

// AccountModule serves /accounts: create, lookup by id or email, partial
// update, delete and search.
type AccountModule struct {
	Handler *handlers.AccountHandler
}

func NewAccountModule(h *handlers.AccountHandler) *AccountModule {
	return &AccountModule{Handler: h}
}

func (m *AccountModule) Register(rg *gin.RouterGroup) {
	rdb := container.GetRedis()
	signupLimiter := middleware.RateLimit(rdb, 10, time.Minute, middleware.KeyByIPAndPath(), nil)
	searchLimiter := middleware.RateLimit(rdb, 60, time.Minute, middleware.KeyByIP(), nil)

	accounts := rg.Group("/accounts")
	accounts.Use(middleware.RateLimit(rdb, 300, time.Minute, middleware.KeyByIP(), nil))
	{
		accounts.POST("", signupLimiter, m.Handler.Create)
		accounts.GET("/search", searchLimiter, m.Handler.Search)
		accounts.GET("/:id", m.Handler.Get)
		accounts.PATCH("/:id", m.Handler.Update)
		accounts.DELETE("/:id", m.Handler.Delete)
	}
}
