package api

import (
	"greencampus/config"
	"greencampus/database"
	"greencampus/middleware"
	"greencampus/models"

	"github.com/gin-gonic/gin"
)

// AuthHandler manages admin login and logout.
type AuthHandler struct {
	cfg *config.Config
}

func NewAuthHandler(cfg *config.Config) *AuthHandler {
	return &AuthHandler{cfg: cfg}
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login verifies credentials and issues the session cookie.
// @Summary Admin login
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "credentials"
// @Success 200 {object} Response
// @Failure 401 {object} Response
// @Router /admin/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "invalid request"))
		return
	}

	var user models.User
	if err := database.DB.Where("username = ?", req.Username).First(&user).Error; err != nil {
		Unauthorized(c, "invalid username or password")
		return
	}
	if !user.CheckPassword(req.Password) {
		Unauthorized(c, "invalid username or password")
		return
	}
	if user.Status != models.UserStatusActive {
		Unauthorized(c, "account is locked")
		return
	}

	token, err := middleware.GenerateSessionToken(user.ID, user.Username, h.cfg.Session.ExpireTime)
	if err != nil {
		InternalError(c, SafeErrorMessage(err, "failed to create session"))
		return
	}
	middleware.SetSessionCookie(c, token, h.cfg.Session.ExpireTime)

	SuccessWithMessage(c, "logged in", gin.H{
		"id":       user.ID,
		"username": user.Username,
		"is_admin": user.IsAdmin,
	})
}

// Logout clears the session cookie.
// @Summary Admin logout
// @Tags auth
// @Produce json
// @Success 200 {object} Response
// @Router /admin/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	middleware.ClearSessionCookie(c)
	SuccessWithMessage(c, "logged out", nil)
}

// Me returns the authenticated account.
// @Summary Current account
// @Tags auth
// @Produce json
// @Success 200 {object} Response
// @Failure 401 {object} Response
// @Router /admin/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)
	var user models.User
	if err := database.DB.First(&user, userID).Error; err != nil {
		Unauthorized(c, "login required")
		return
	}
	Success(c, gin.H{
		"id":       user.ID,
		"username": user.Username,
		"email":    user.Email,
		"is_admin": user.IsAdmin,
	})
}
