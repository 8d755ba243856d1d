package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func ok(c *gin.Context) { c.String(http.StatusOK, "ok") }

func TestRateLimit(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	r := gin.New()
	r.GET("/limited", RateLimit(rdb, 2, time.Minute, KeyByIP(), nil), ok)

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/limited", nil))
		codes = append(codes, w.Code)
		if i == 0 {
			assert.Equal(t, "2", w.Header().Get("X-RateLimit-Limit"))
			assert.Equal(t, "1", w.Header().Get("X-RateLimit-Remaining"))
		}
		if i == 2 {
			assert.NotEmpty(t, w.Header().Get("Retry-After"))
		}
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
}

func TestRateLimitFailsOpen(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	mr.Close()

	r := gin.New()
	r.GET("/limited", RateLimit(rdb, 1, time.Minute, KeyByIP(), nil), ok)
	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/limited", nil))
		assert.Equal(t, http.StatusOK, w.Code)
	}
}

func TestRateLimitWithoutRedisIsPassThrough(t *testing.T) {
	r := gin.New()
	r.GET("/x", RateLimit(nil, 1, time.Minute, KeyByIP(), nil), ok)
	for i := 0; i < 2; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))
		assert.Equal(t, http.StatusOK, w.Code)
	}
}

func TestPrivateOnly(t *testing.T) {
	r := gin.New()
	r.DELETE("/internal", PrivateOnly(), ok)

	tests := []struct {
		name   string
		remote string
		xff    string
		want   int
	}{
		{name: "loopback", remote: "127.0.0.1:5000", want: http.StatusOK},
		{name: "private", remote: "10.1.2.3:5000", want: http.StatusOK},
		{name: "public", remote: "203.0.113.9:5000", want: http.StatusForbidden},
		{name: "spoofed header", remote: "203.0.113.9:5000", xff: "10.0.0.1", want: http.StatusForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodDelete, "/internal", nil)
			req.RemoteAddr = tt.remote
			if tt.xff != "" {
				req.Header.Set("X-Forwarded-For", tt.xff)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			assert.Equal(t, tt.want, w.Code)
		})
	}
}

func TestRateLimitPrivateBypassUsesPeerAddress(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	r := gin.New()
	require.NoError(t, r.SetTrustedProxies(nil))
	r.Use(RealIP())
	r.GET("/internal", RateLimit(rdb, 1, time.Minute, KeyByIP(), AllowPrivateIP()), ok)

	tests := []struct {
		name   string
		remote string
		xff    string
		want   []int
	}{
		{name: "public peer with forged private header", remote: "203.0.113.9:5000", xff: "10.0.0.1", want: []int{http.StatusOK, http.StatusTooManyRequests}},
		{name: "public peer with forged cloudflare header", remote: "203.0.113.10:5000", want: []int{http.StatusOK, http.StatusTooManyRequests}},
		{name: "private peer", remote: "10.1.2.3:5000", want: []int{http.StatusOK, http.StatusOK}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := make([]int, 0, len(tt.want))
			for range tt.want {
				req := httptest.NewRequest(http.MethodGet, "/internal", nil)
				req.RemoteAddr = tt.remote
				req.Header.Set("CF-Connecting-IP", "127.0.0.1")
				if tt.xff != "" {
					req.Header.Set("X-Forwarded-For", tt.xff)
				}
				w := httptest.NewRecorder()
				r.ServeHTTP(w, req)
				got = append(got, w.Code)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func realIPEngine(t *testing.T, proxies []string, platform string) *gin.Engine {
	t.Helper()
	r := gin.New()
	require.NoError(t, r.SetTrustedProxies(proxies))
	r.TrustedPlatform = platform
	r.Use(RequestIDMiddleware(), RealIP())
	r.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString("request_id")+"|"+c.GetString("real_ip"))
	})
	return r
}

func TestRequestIDAndRealIP(t *testing.T) {
	// httptest requests come from 192.0.2.1
	untrusted := realIPEngine(t, nil, "")
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Forwarded-For", "198.51.100.7")
	req.Header.Set("CF-Connecting-IP", "192.0.2.44")
	w := httptest.NewRecorder()
	untrusted.ServeHTTP(w, req)

	id := w.Header().Get("X-Request-ID")
	_, err := uuid.Parse(id)
	require.NoError(t, err)
	assert.Equal(t, id+"|192.0.2.1", w.Body.String())

	proxied := realIPEngine(t, []string{"192.0.2.0/24"}, "")
	known := uuid.NewString()
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", known)
	req.Header.Set("X-Forwarded-For", "198.51.100.7")
	w = httptest.NewRecorder()
	proxied.ServeHTTP(w, req)
	assert.Equal(t, known, w.Header().Get("X-Request-ID"))
	assert.Equal(t, known+"|198.51.100.7", w.Body.String())

	cloudflare := realIPEngine(t, nil, gin.PlatformCloudflare)
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", known)
	req.Header.Set("CF-Connecting-IP", "192.0.2.44")
	w = httptest.NewRecorder()
	cloudflare.ServeHTTP(w, req)
	assert.Equal(t, known+"|192.0.2.44", w.Body.String())
}
