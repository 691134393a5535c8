package middleware

import (
	"bytes"
	"context"
	"crypto/sha1"
	"encoding/hex"
	"net/http"
	"time"

	"greencampus/config"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// cacheWriter captures the response body while forwarding it to the client.
type cacheWriter struct {
	gin.ResponseWriter
	buf bytes.Buffer
}

func (w *cacheWriter) Write(b []byte) (int, error) {
	w.buf.Write(b)
	return w.ResponseWriter.Write(b)
}

func cacheKey(c *gin.Context) string {
	sum := sha1.Sum([]byte(c.Request.URL.Path + "?" + c.Request.URL.RawQuery))
	return "greencampus:cache:" + hex.EncodeToString(sum[:])
}

// PublicCache caches successful JSON GET responses in Redis for the
// configured TTL. Menu trees and energy stats barely change between admin
// edits, so short-lived caching absorbs most public traffic. With a nil
// client or caching disabled it is a pass-through.
func PublicCache(client *redis.Client, cfg config.CacheConfig) gin.HandlerFunc {
	if client == nil || !cfg.Enabled {
		return func(c *gin.Context) { c.Next() }
	}
	ttl := time.Duration(cfg.TTLSeconds) * time.Second

	return func(c *gin.Context) {
		if c.Request.Method != http.MethodGet {
			c.Next()
			return
		}

		key := cacheKey(c)
		ctx, cancel := context.WithTimeout(c.Request.Context(), 500*time.Millisecond)
		cached, err := client.Get(ctx, key).Bytes()
		cancel()
		if err == nil {
			c.Header("X-Cache", "HIT")
			c.Data(http.StatusOK, "application/json; charset=utf-8", cached)
			c.Abort()
			return
		}

		w := &cacheWriter{ResponseWriter: c.Writer}
		c.Writer = w
		c.Header("X-Cache", "MISS")
		c.Next()

		if c.Writer.Status() == http.StatusOK && w.buf.Len() > 0 {
			ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
			_ = client.Set(ctx, key, w.buf.Bytes(), ttl).Err()
			cancel()
		}
	}
}
