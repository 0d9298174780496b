package handlers

import (
	"net/http"

	"ehandout_backend/internal/middleware"
	"ehandout_backend/internal/services"
	"ehandout_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type UserAuthHandler struct {
	*BaseHandler
	userService  services.UserAuthService
	tokenService services.TokenService
}

func NewUserAuthHandler(base *BaseHandler, userService services.UserAuthService, tokenService services.TokenService) *UserAuthHandler {
	return &UserAuthHandler{
		BaseHandler:  base,
		userService:  userService,
		tokenService: tokenService,
	}
}

// RegisterRoutes mounts the student routes under /user/auth.
func (h *UserAuthHandler) RegisterRoutes(rg *gin.RouterGroup, authRequired gin.HandlerFunc) {
	user := rg.Group("/user/auth")
	{
		user.POST("/login", h.Login)
		user.POST("/verify", h.VerifyOtp)
		user.POST("/resend", h.ResendOtp)
	}

	protected := rg.Group("/user/auth")
	protected.Use(authRequired)
	{
		protected.POST("/logout", h.Logout)
		protected.GET("/me", h.Profile)
		protected.GET("/me/session-timeout", h.GetSessionTimeout)
		protected.PUT("/me/session-timeout", h.SetSessionTimeout)
		protected.PUT("/changePassword", h.ChangePassword)
		protected.POST("/contact", h.SubmitContact)
	}
}

// Login godoc
// @Summary Student login
// @Description Accepts an elite ID, share ID or email under any of their legacy key spellings, checks the password and emails a one-time code.
// @Tags user-auth
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Failure 401 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /user/auth/login [post]
func (h *UserAuthHandler) Login(c *gin.Context) {
	var req dto.UserLoginRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	resp, err := h.userService.Login(c.Request.Context(), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "A verification code has been issued.",
		"otp":     resp.Otp,
	})
}

// VerifyOtp godoc
// @Summary Verify a student login code
// @Description Confirms the emailed code and returns a session token. Account flags are left untouched.
// @Tags user-auth
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /user/auth/verify [post]
func (h *UserAuthHandler) VerifyOtp(c *gin.Context) {
	var req dto.UserVerifyOtpRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	resp, err := h.userService.VerifyOtp(c.Request.Context(), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "OTP verified.",
		"token":   resp.Token,
		"user":    resp.User,
	})
}

func (h *UserAuthHandler) ResendOtp(c *gin.Context) {
	var req dto.UserResendOtpRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	resp, err := h.userService.ResendOtp(c.Request.Context(), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "A new verification code has been issued.",
		"otp":     resp.Otp,
	})
}

func (h *UserAuthHandler) Logout(c *gin.Context) {
	token := middleware.GetSessionToken(c)
	if err := h.tokenService.Revoke(c.Request.Context(), token); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Logged out successfully."})
}

func (h *UserAuthHandler) Profile(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeAccountID(c)
	if !ok {
		return
	}
	profile, err := h.userService.Profile(c.Request.Context(), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Profile retrieved.",
		"user":    profile,
	})
}

func (h *UserAuthHandler) GetSessionTimeout(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeAccountID(c)
	if !ok {
		return
	}
	resp, err := h.userService.GetSessionTimeout(c.Request.Context(), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Session timeout retrieved.",
		"timeout": resp.Timeout,
	})
}

func (h *UserAuthHandler) SetSessionTimeout(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeAccountID(c)
	if !ok {
		return
	}

	var req dto.SessionTimeoutRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	resp, err := h.userService.SetSessionTimeout(c.Request.Context(), userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Session timeout updated.",
		"timeout": resp.Timeout,
	})
}

func (h *UserAuthHandler) ChangePassword(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeAccountID(c)
	if !ok {
		return
	}

	var req dto.ChangePasswordRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	if err := h.userService.ChangePassword(c.Request.Context(), userID, &req); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Password changed successfully."})
}

func (h *UserAuthHandler) SubmitContact(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeAccountID(c)
	if !ok {
		return
	}

	var req dto.ContactRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	if err := h.userService.SubmitContact(c.Request.Context(), userID, &req); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "message": "Your message has been received."})
}
