package middleware

import (
	"net"
	"strings"

	"github.com/gin-gonic/gin"
)

// RealIP sets the client IP into the Gin context under "real_ip".
// It relies on c.ClientIP(), so X-Forwarded-For is honoured only from the
// engine's trusted proxies and CF-Connecting-IP only when the engine's
// TrustedPlatform is set to Cloudflare.
func RealIP() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("real_ip", parseIP(c.ClientIP()))
		c.Next()
	}
}

func parseIP(s string) string {
	if ip := net.ParseIP(strings.TrimSpace(s)); ip != nil {
		return ip.String()
	}
	return ""
}
