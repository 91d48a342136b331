package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BornToCode265/ADIS/internal/models"
	"github.com/BornToCode265/ADIS/internal/services"
	"github.com/BornToCode265/ADIS/internal/utils"
)

type AuthHandler struct {
	authService services.AuthService
	otpService  services.OTPService
}

func NewAuthHandler(authService services.AuthService, otpService services.OTPService) *AuthHandler {
	return &AuthHandler{authService: authService, otpService: otpService}
}

// @Summary      Password login
// @Description  Authenticates a user by username and password and returns a session token
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        login  body      models.LoginRequest  true  "Login credentials"
// @Success      200    {object}  map[string]interface{}
// @Failure      400    {object}  map[string]string
// @Failure      401    {object}  map[string]string
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Username and password are required"})
		return
	}

	token, user, err := h.authService.LoginWithPassword(req.Username, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid username or password"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Login failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Login successful",
		"data": gin.H{
			"token": token,
			"user":  userPayload(user.ID, user.Name, user.Username, user.Phone, user.District, user.IsAdmin),
		},
	})
}

type sendOTPRequest struct {
	Phone string `json:"phone" binding:"required"`
}

// @Summary      Request an OTP
// @Description  Generates a one-time code and sends it to the given phone by SMS
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        request  body      sendOTPRequest  true  "Phone number"
// @Success      200      {object}  map[string]string
// @Failure      400      {object}  map[string]string
// @Router       /api/auth/send-otp [post]
func (h *AuthHandler) SendOTP(c *gin.Context) {
	var req sendOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Phone number is required"})
		return
	}
	if !utils.ValidPhone(req.Phone) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid phone number format"})
		return
	}

	if _, err := h.otpService.Generate(utils.NormalizePhone(req.Phone)); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send OTP"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "OTP sent successfully"})
}

type verifyOTPRequest struct {
	Phone string `json:"phone" binding:"required"`
	OTP   string `json:"otp" binding:"required"`
}

// @Summary      OTP login
// @Description  Verifies a one-time code and logs the user in
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        request  body      verifyOTPRequest  true  "Phone and code"
// @Success      200      {object}  map[string]interface{}
// @Failure      400      {object}  map[string]string
// @Failure      404      {object}  map[string]string
// @Router       /api/auth/verify-otp [post]
func (h *AuthHandler) VerifyOTP(c *gin.Context) {
	var req verifyOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Phone and OTP are required"})
		return
	}

	token, user, err := h.authService.LoginWithOTP(utils.NormalizePhone(req.Phone), req.OTP)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidOTP):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid or expired OTP"})
		case errors.Is(err, services.ErrNotRegistered):
			// intentionally distinct from the OTP failure: the phone
			// is proven, registration is the expected next step
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found. Please register first."})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Login failed"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Login successful",
		"data": gin.H{
			"token": token,
			"user":  userPayload(user.ID, user.Name, "", user.Phone, user.District, user.IsAdmin),
		},
	})
}

// Logout is a client-side operation in a stateless token scheme; the
// endpoint only exists so clients have something to call.
func (h *AuthHandler) Logout(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "Logged out successfully"})
}

func (h *AuthHandler) RefreshToken(c *gin.Context) {
	claims, ok := callerIdentity(c)
	if !ok {
		return
	}

	token, err := h.authService.Refresh(claims)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to refresh token"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "Token refreshed",
		"data":    gin.H{"token": token},
	})
}
