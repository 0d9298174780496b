package handlers

import (
	"net/http"

	"ehandout_backend/internal/middleware"
	"ehandout_backend/internal/services"
	"ehandout_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type VendorAuthHandler struct {
	*BaseHandler
	vendorService services.VendorAuthService
	tokenService  services.TokenService
}

func NewVendorAuthHandler(base *BaseHandler, vendorService services.VendorAuthService, tokenService services.TokenService) *VendorAuthHandler {
	return &VendorAuthHandler{
		BaseHandler:   base,
		vendorService: vendorService,
		tokenService:  tokenService,
	}
}

// RegisterRoutes mounts the vendor routes under /store/vendor.
func (h *VendorAuthHandler) RegisterRoutes(rg *gin.RouterGroup, authRequired gin.HandlerFunc) {
	vendor := rg.Group("/store/vendor")
	{
		vendor.POST("/register", h.Register)
		vendor.POST("/verifyOtp", h.VerifyOtp)
		vendor.POST("/resendOtp", h.ResendOtp)
		vendor.POST("/auth", h.Login)
	}

	protected := rg.Group("/store/vendor")
	protected.Use(authRequired)
	{
		protected.POST("/logout", h.Logout)
		protected.POST("/toggleTwoFactor", h.ToggleTwoFactor)
		protected.POST("/verifyTwoFactor", h.VerifyTwoFactor)
		protected.GET("/twoFactorStatus", h.TwoFactorStatus)
		protected.GET("/inactiveTimeout", h.GetInactiveTimeout)
		protected.PUT("/inactiveTimeout", h.SetInactiveTimeout)
		protected.PUT("/changePassword", h.ChangePassword)
		protected.POST("/vendorContact", h.SubmitContact)
	}
}

// Register godoc
// @Summary Register a store vendor
// @Description Creates a pending vendor account and issues a verification code.
// @Tags vendor-auth
// @Accept json
// @Produce json
// @Param request body dto.VendorRegisterRequest true "Registration payload"
// @Success 201 {object} dto.OtpIssuedResponse
// @Failure 400 {object} map[string]interface{}
// @Failure 409 {object} map[string]interface{}
// @Router /store/vendor/register [post]
func (h *VendorAuthHandler) Register(c *gin.Context) {
	var req dto.VendorRegisterRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	resp, err := h.vendorService.Register(c.Request.Context(), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Registration successful. Please verify your email.",
		"otp":     resp.Otp,
	})
}

// VerifyOtp godoc
// @Summary Verify a vendor signup or login code
// @Description Confirms the issued code, activates the account and returns a session token.
// @Tags vendor-auth
// @Accept json
// @Produce json
// @Param request body dto.VendorVerifyOtpRequest true "Verification payload"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /store/vendor/verifyOtp [post]
func (h *VendorAuthHandler) VerifyOtp(c *gin.Context) {
	var req dto.VendorVerifyOtpRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	resp, err := h.vendorService.VerifyOtp(c.Request.Context(), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "OTP verified.",
		"token":   resp.Token,
		"vendor":  resp.Vendor,
	})
}

func (h *VendorAuthHandler) ResendOtp(c *gin.Context) {
	var req dto.VendorResendOtpRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	resp, err := h.vendorService.ResendOtp(c.Request.Context(), &req)
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

// Login godoc
// @Summary Vendor login
// @Description Checks credentials and issues a one-time code. The session token comes from verifyOtp.
// @Tags vendor-auth
// @Accept json
// @Produce json
// @Param request body dto.VendorLoginRequest true "Login payload"
// @Success 200 {object} dto.OtpIssuedResponse
// @Failure 401 {object} map[string]interface{}
// @Failure 403 {object} map[string]interface{}
// @Router /store/vendor/auth [post]
func (h *VendorAuthHandler) Login(c *gin.Context) {
	var req dto.VendorLoginRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	resp, err := h.vendorService.Login(c.Request.Context(), &req)
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

// Logout godoc
// @Summary Vendor logout
// @Description Records the presented token in the revocation ledger.
// @Tags vendor-auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} map[string]interface{}
// @Router /store/vendor/logout [post]
func (h *VendorAuthHandler) Logout(c *gin.Context) {
	token := middleware.GetSessionToken(c)
	if err := h.tokenService.Revoke(c.Request.Context(), token); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Logged out successfully."})
}

func (h *VendorAuthHandler) ToggleTwoFactor(c *gin.Context) {
	vendorID, ok := h.GetAndAuthorizeAccountID(c)
	if !ok {
		return
	}

	var req dto.TwoFactorToggleRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	resp, err := h.vendorService.ToggleTwoFactor(c.Request.Context(), vendorID, *req.Enable)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	body := gin.H{
		"success":          true,
		"message":          "Two-factor authentication disabled.",
		"twoFactorEnabled": resp.TwoFactorEnabled,
	}
	if resp.Otp != nil {
		body["message"] = "Verification code issued. Confirm it to enable two-factor authentication."
		body["otp"] = *resp.Otp
	}
	c.JSON(http.StatusOK, body)
}

func (h *VendorAuthHandler) VerifyTwoFactor(c *gin.Context) {
	vendorID, ok := h.GetAndAuthorizeAccountID(c)
	if !ok {
		return
	}

	var req dto.TwoFactorVerifyRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	if err := h.vendorService.VerifyTwoFactor(c.Request.Context(), vendorID, req.Code); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Two-factor authentication enabled."})
}

func (h *VendorAuthHandler) TwoFactorStatus(c *gin.Context) {
	vendorID, ok := h.GetAndAuthorizeAccountID(c)
	if !ok {
		return
	}
	resp, err := h.vendorService.TwoFactorStatus(c.Request.Context(), vendorID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":          true,
		"message":          "Two-factor status retrieved.",
		"twoFactorEnabled": resp.TwoFactorEnabled,
		"inactiveTimeout":  resp.InactiveTimeout,
	})
}

func (h *VendorAuthHandler) GetInactiveTimeout(c *gin.Context) {
	vendorID, ok := h.GetAndAuthorizeAccountID(c)
	if !ok {
		return
	}
	resp, err := h.vendorService.GetInactiveTimeout(c.Request.Context(), vendorID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Inactivity timeout retrieved.",
		"timeout": resp.Timeout,
	})
}

func (h *VendorAuthHandler) SetInactiveTimeout(c *gin.Context) {
	vendorID, ok := h.GetAndAuthorizeAccountID(c)
	if !ok {
		return
	}

	var req dto.SessionTimeoutRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	resp, err := h.vendorService.SetInactiveTimeout(c.Request.Context(), vendorID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Inactivity timeout updated.",
		"timeout": resp.Timeout,
	})
}

func (h *VendorAuthHandler) ChangePassword(c *gin.Context) {
	vendorID, ok := h.GetAndAuthorizeAccountID(c)
	if !ok {
		return
	}

	var req dto.ChangePasswordRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	if err := h.vendorService.ChangePassword(c.Request.Context(), vendorID, &req); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Password changed successfully."})
}

func (h *VendorAuthHandler) SubmitContact(c *gin.Context) {
	vendorID, ok := h.GetAndAuthorizeAccountID(c)
	if !ok {
		return
	}

	var req dto.ContactRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	if err := h.vendorService.SubmitContact(c.Request.Context(), vendorID, &req); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "message": "Your message has been received."})
}
