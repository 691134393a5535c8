package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// publicRoute is one allow-list entry. An empty method matches any method.
type publicRoute struct {
	method string
	prefix string
}

// publicRoutes is the fixed allow-list of paths the public site may hit
// without a session. Everything else behind the gate requires one.
var publicRoutes = []publicRoute{
	{http.MethodGet, "/health"},
	{http.MethodGet, "/swagger/"},
	{http.MethodGet, "/uploads/"},
	{http.MethodGet, "/api/menus/public"},
	{http.MethodGet, "/api/boards/"},
	{http.MethodGet, "/api/posts/"},
	{http.MethodGet, "/api/pages/"},
	{http.MethodGet, "/api/public/"},
	{http.MethodGet, "/api/hero-slides/public"},
	{http.MethodPost, "/admin/login"},
	{http.MethodPost, "/admin/logout"},
	{"", "/admin/password/"},
}

// IsPublicPath reports whether method+path is on the public allow-list.
// Entries ending in "/" admit only paths below them, never the bare
// collection path itself: GET /api/boards/notice is public, the admin list
// at GET /api/boards is not.
func IsPublicPath(method, path string) bool {
	for _, r := range publicRoutes {
		if r.method != "" && r.method != method {
			continue
		}
		if strings.HasPrefix(path, r.prefix) {
			return true
		}
	}
	return false
}

// AuthGate admits public allow-listed paths unauthenticated and requires a
// valid session for everything else. A valid session is renewed on every
// request (sliding expiry). The 401 here is deliberately distinct from the
// 404 handlers return for missing rows.
func AuthGate() gin.HandlerFunc {
	return func(c *gin.Context) {
		if IsPublicPath(c.Request.Method, c.Request.URL.Path) {
			c.Next()
			return
		}

		sess, err := SessionFromRequest(c)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"message": "login required",
			})
			c.Abort()
			return
		}

		// sliding window: re-issue the cookie with a fresh expiry
		if token, err := GenerateSessionToken(sess.UserID, sess.Username, sessionTTL); err == nil {
			SetSessionCookie(c, token, sessionTTL)
		}

		c.Set("userID", sess.UserID)
		c.Set("username", sess.Username)
		c.Next()
	}
}
