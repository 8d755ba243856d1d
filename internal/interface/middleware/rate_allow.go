package middleware

import (
	"net"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/go-ddd-account-wishlist/pkg/response"
)

// AllowPrivateIP reports whether the socket peer sits on a loopback or private
// network (10/8, 172.16/12, 192.168/16, fc00::/7). Forwarding headers are
// ignored. Use it on internal routes only.
func AllowPrivateIP() AllowFunc {
	return func(c *gin.Context) bool {
		return isPrivatePeer(c)
	}
}

// PrivateOnly rejects callers outside private networks with 403. It checks the
// socket peer address and ignores forwarding headers.
func PrivateOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !isPrivatePeer(c) {
			response.Error[any](c, http.StatusForbidden, "internal endpoint", nil)
			c.Abort()
			return
		}
		c.Next()
	}
}

func isPrivatePeer(c *gin.Context) bool {
	ip := net.ParseIP(c.RemoteIP())
	return ip != nil && (ip.IsLoopback() || ip.IsPrivate())
}
