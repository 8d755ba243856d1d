package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/go-ddd-account-wishlist/internal/container"
	handlers "github.com/oksasatya/go-ddd-account-wishlist/internal/interface/http"
	"github.com/oksasatya/go-ddd-account-wishlist/internal/interface/middleware"
)

// WishlistModule serves /accounts/:id/wishlist and the catalogue hook
// /internal/products/:productID/wishlist, reachable from private networks only.
type WishlistModule struct {
	Handler *handlers.WishlistHandler
}

func NewWishlistModule(h *handlers.WishlistHandler) *WishlistModule {
	return &WishlistModule{Handler: h}
}

func (m *WishlistModule) Register(rg *gin.RouterGroup) {
	rdb := container.GetRedis()
	writeLimiter := middleware.RateLimit(rdb, 120, time.Minute, middleware.KeyByAccount(), nil)

	wl := rg.Group("/accounts/:id/wishlist")
	{
		wl.GET("", m.Handler.List)
		wl.POST("", writeLimiter, m.Handler.Add)
		wl.DELETE("/:productID", writeLimiter, m.Handler.Remove)
	}

	// Public callers are counted before PrivateOnly rejects them.
	internal := rg.Group("/internal")
	internal.Use(
		middleware.RateLimit(rdb, 30, time.Minute, middleware.KeyByIP(), middleware.AllowPrivateIP()),
		middleware.PrivateOnly(),
	)
	{
		internal.DELETE("/products/:productID/wishlist", m.Handler.RemoveProduct)
	}
}
