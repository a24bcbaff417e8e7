package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/talakunchi/exam-portal-service/internal/services"
	"github.com/talakunchi/exam-portal-service/internal/utils"
)

// AdminAuthHandler serves admin registration and the two-step OTP login.
type AdminAuthHandler struct {
	BaseHandler
	authService services.AuthService
	tokens      *utils.TokenManager
}

func NewAdminAuthHandler(authService services.AuthService, tokens *utils.TokenManager, logger utils.Logger) *AdminAuthHandler {
	return &AdminAuthHandler{
		BaseHandler: NewBaseHandler(logger),
		authService: authService,
		tokens:      tokens,
	}
}

func (h *AdminAuthHandler) Register(c *gin.Context) {
	var req services.AdminRegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	admin, err := h.authService.Register(c.Request.Context(), req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	h.RespondWithSuccess(c, http.StatusCreated, "Admin registered", admin)
}

func (h *AdminAuthHandler) Login(c *gin.Context) {
	var req services.AdminLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	challenge, err := h.authService.Login(c.Request.Context(), req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	h.RespondWithSuccess(c, http.StatusOK, "OTP sent", challenge)
}

func (h *AdminAuthHandler) VerifyOTP(c *gin.Context) {
	var req services.VerifyOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	session, err := h.authService.VerifyOTP(c.Request.Context(), req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	setSessionCookie(c, adminCookieName, session.Token, int(h.tokens.TTL().Seconds()))
	h.RespondWithSuccess(c, http.StatusOK, "Login successful", session.Admin)
}

func (h *AdminAuthHandler) ResendOTP(c *gin.Context) {
	var req struct {
		AdminID string `json:"admin_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.AdminID == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "admin_id is required"})
		return
	}

	challenge, err := h.authService.ResendOTP(c.Request.Context(), req.AdminID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	h.RespondWithSuccess(c, http.StatusOK, "OTP resent", challenge)
}

func (h *AdminAuthHandler) Logout(c *gin.Context) {
	clearSessionCookie(c, adminCookieName)
	h.RespondWithSuccess(c, http.StatusOK, "Logged out", nil)
}
