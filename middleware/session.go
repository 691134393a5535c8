package middleware

import (
	"errors"
	"net/http"
	"time"

	"greencampus/config"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// SessionCookieName is the admin session cookie.
const SessionCookieName = "greencampus_session"

var (
	sessionSecret []byte
	sessionTTL    time.Duration

	// ErrNoSession means the request carries no usable session cookie.
	ErrNoSession = errors.New("no valid session")
)

// SessionClaims is the payload signed into the session cookie.
type SessionClaims struct {
	UserID   uint   `json:"user_id"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// Session is the authenticated principal attached to a request.
type Session struct {
	UserID    uint
	Username  string
	ExpiresAt time.Time
}

// InitSession configures the session signer from config.
func InitSession(cfg *config.Config) {
	sessionSecret = []byte(cfg.Session.Secret)
	sessionTTL = cfg.Session.ExpireTime
}

// GenerateSessionToken signs a session token valid for ttl.
func GenerateSessionToken(userID uint, username string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := SessionClaims{
		UserID:   userID,
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(sessionSecret)
}

// ParseSessionToken validates a token and returns its claims.
func ParseSessionToken(tokenString string) (*SessionClaims, error) {
	if tokenString == "" {
		return nil, ErrNoSession
	}
	token, err := jwt.ParseWithClaims(tokenString, &SessionClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return sessionSecret, nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*SessionClaims)
	if !ok || !token.Valid {
		return nil, ErrNoSession
	}
	return claims, nil
}

// cookieOptions returns the cookie security flags for the current mode.
// Secure only in release so local HTTP development keeps working;
// SameSite=Lax blocks cross-site POSTs from carrying the cookie.
func cookieOptions() (secure bool, sameSite http.SameSite) {
	if config.GlobalConfig != nil && config.GlobalConfig.Server.Mode == "release" {
		secure = true
	}
	return secure, http.SameSiteLaxMode
}

// SetSessionCookie issues the HTTP-only session cookie.
func SetSessionCookie(c *gin.Context, token string, ttl time.Duration) {
	secure, sameSite := cookieOptions()
	c.SetSameSite(sameSite)
	c.SetCookie(SessionCookieName, token, int(ttl.Seconds()), "/", "", secure, true)
}

// ClearSessionCookie removes the session cookie.
func ClearSessionCookie(c *gin.Context) {
	secure, sameSite := cookieOptions()
	c.SetSameSite(sameSite)
	c.SetCookie(SessionCookieName, "", -1, "/", "", secure, true)
}

// SessionFromRequest extracts and validates the session principal from the
// cookie. It does not touch the cookie; renewal is the gate's job.
func SessionFromRequest(c *gin.Context) (*Session, error) {
	raw, err := c.Cookie(SessionCookieName)
	if err != nil {
		return nil, ErrNoSession
	}
	claims, err := ParseSessionToken(raw)
	if err != nil {
		return nil, ErrNoSession
	}
	return &Session{
		UserID:    claims.UserID,
		Username:  claims.Username,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}

// GetCurrentUserID returns the authenticated user id set by the gate, or 0.
func GetCurrentUserID(c *gin.Context) uint {
	if v, ok := c.Get("userID"); ok {
		if id, ok := v.(uint); ok {
			return id
		}
	}
	return 0
}

// GetCurrentUsername returns the authenticated username set by the gate.
func GetCurrentUsername(c *gin.Context) string {
	if v, ok := c.Get("username"); ok {
		if name, ok := v.(string); ok {
			return name
		}
	}
	return ""
}
