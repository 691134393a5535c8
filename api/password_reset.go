package api

import (
	"fmt"
	"time"

	"greencampus/config"
	"greencampus/database"
	"greencampus/models"
	"greencampus/service"

	"github.com/gin-gonic/gin"
)

// resetTokenTTL bounds how long a mailed reset link stays valid.
const resetTokenTTL = 30 * time.Minute

// PasswordResetHandler manages the forgotten-password flow.
type PasswordResetHandler struct {
	cfg   *config.Config
	email *service.EmailService
}

func NewPasswordResetHandler(cfg *config.Config) *PasswordResetHandler {
	return &PasswordResetHandler{
		cfg:   cfg,
		email: service.NewEmailService(&cfg.Email),
	}
}

type RequestResetRequest struct {
	Username string `json:"username" binding:"required"`
}

type ResetPasswordRequest struct {
	Token       string `json:"token" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=8,max=72"`
}

// RequestReset mails a reset link to the account's address. The response is
// identical whether or not the account exists, so usernames cannot be
// probed.
// @Summary Request password reset
// @Tags auth
// @Accept json
// @Produce json
// @Param request body RequestResetRequest true "account"
// @Success 200 {object} Response
// @Router /admin/password/request-reset [post]
func (h *PasswordResetHandler) RequestReset(c *gin.Context) {
	var req RequestResetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "invalid request"))
		return
	}

	neutral := "if the account exists, a reset mail has been sent"

	var user models.User
	if err := database.DB.Where("username = ?", req.Username).First(&user).Error; err != nil {
		SuccessWithMessage(c, neutral, nil)
		return
	}
	if user.Email == "" {
		SuccessWithMessage(c, neutral, nil)
		return
	}

	token, err := models.NewResetToken()
	if err != nil {
		InternalError(c, SafeErrorMessage(err, "failed to create reset token"))
		return
	}
	reset := models.PasswordReset{
		UserID:    user.ID,
		Token:     token,
		ExpiresAt: time.Now().Add(resetTokenTTL),
	}
	if err := database.DB.Create(&reset).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "failed to create reset token"))
		return
	}

	link := fmt.Sprintf("%s/admin/reset-password?token=%s", h.cfg.Server.BaseURL, token)
	if err := h.email.SendPasswordResetEmail(user.Email, user.Username, link); err != nil {
		InternalError(c, SafeErrorMessage(err, "failed to send reset mail"))
		return
	}
	SuccessWithMessage(c, neutral, nil)
}

// VerifyToken checks a reset token without consuming it, so the reset form
// can reject dead links before asking for a new password.
// @Summary Verify reset token
// @Tags auth
// @Produce json
// @Param token query string true "reset token"
// @Success 200 {object} Response
// @Failure 400 {object} Response
// @Router /admin/password/verify-token [get]
func (h *PasswordResetHandler) VerifyToken(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		BadRequest(c, "token is required")
		return
	}
	var reset models.PasswordReset
	if err := database.DB.Where("token = ?", token).First(&reset).Error; err != nil {
		BadRequest(c, "invalid or expired token")
		return
	}
	if !reset.Valid(time.Now()) {
		BadRequest(c, "invalid or expired token")
		return
	}
	Success(c, gin.H{"valid": true})
}

// ResetPassword consumes a valid token and sets the new password.
// @Summary Reset password
// @Tags auth
// @Accept json
// @Produce json
// @Param request body ResetPasswordRequest true "token and new password"
// @Success 200 {object} Response
// @Failure 400 {object} Response
// @Router /admin/password/reset [post]
func (h *PasswordResetHandler) ResetPassword(c *gin.Context) {
	var req ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, SafeErrorMessage(err, "invalid request"))
		return
	}

	var reset models.PasswordReset
	if err := database.DB.Where("token = ?", req.Token).First(&reset).Error; err != nil {
		BadRequest(c, "invalid or expired token")
		return
	}
	if !reset.Valid(time.Now()) {
		BadRequest(c, "invalid or expired token")
		return
	}

	var user models.User
	if err := database.DB.First(&user, reset.UserID).Error; err != nil {
		BadRequest(c, "invalid or expired token")
		return
	}

	if err := user.SetPassword(req.NewPassword); err != nil {
		InternalError(c, SafeErrorMessage(err, "failed to set password"))
		return
	}
	if err := database.DB.Model(&user).Update("password", user.Password).Error; err != nil {
		InternalError(c, SafeErrorMessage(err, "failed to set password"))
		return
	}
	_ = database.DB.Model(&reset).Update("used", true).Error

	SuccessWithMessage(c, "password updated", nil)
}
