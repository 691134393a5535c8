package middleware

import (
	"net/http/httptest"
	"testing"

	"greencampus/config"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestPublicCache_NilClientIsPassThrough(t *testing.T) {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.Use(PublicCache(nil, config.CacheConfig{Enabled: true, TTLSeconds: 60}))
	router.GET("/x", func(c *gin.Context) { c.String(200, "live") })

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/x", nil))
	assert.Equal(t, 200, w.Code)
	assert.Equal(t, "live", w.Body.String())
	assert.Empty(t, w.Header().Get("X-Cache"))
}

func TestPublicCache_DisabledIsPassThrough(t *testing.T) {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.Use(PublicCache(nil, config.CacheConfig{Enabled: false}))
	router.GET("/x", func(c *gin.Context) { c.String(200, "live") })

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/x", nil))
	assert.Equal(t, 200, w.Code)
	assert.Equal(t, "live", w.Body.String())
}
