package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BornToCode265/ADIS/internal/services"
	"github.com/BornToCode265/ADIS/internal/utils"
)

type UserHandler struct {
	userService services.UserService
	authService services.AuthService
}

func NewUserHandler(userService services.UserService, authService services.AuthService) *UserHandler {
	return &UserHandler{userService: userService, authService: authService}
}

type registerRequest struct {
	Name                 string   `json:"name" binding:"required"`
	Phone                string   `json:"phone" binding:"required"`
	Password             string   `json:"password" binding:"required,min=6"`
	District             string   `json:"district" binding:"required"`
	Village              *string  `json:"village"`
	TraditionalAuthority *string  `json:"traditional_authority"`
	Latitude             *float64 `json:"latitude"`
	Longitude            *float64 `json:"longitude"`
}

// @Summary      Register a farmer account
// @Description  Creates a user, derives a unique username and returns a session token
// @Tags         Users
// @Accept       json
// @Produce      json
// @Param        request  body      registerRequest  true  "Registration data"
// @Success      201      {object}  map[string]interface{}
// @Failure      400      {object}  map[string]string
// @Failure      409      {object}  map[string]string
// @Router       /api/users/register [post]
func (h *UserHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Validation failed", "details": err.Error()})
		return
	}
	if !utils.ValidPhone(req.Phone) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid phone number format"})
		return
	}
	if !validCoordinates(req.Latitude, req.Longitude) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid coordinates"})
		return
	}

	user, err := h.userService.Register(services.RegisterInput{
		Name:                 req.Name,
		Phone:                utils.NormalizePhone(req.Phone),
		Password:             req.Password,
		District:             req.District,
		Village:              req.Village,
		TraditionalAuthority: req.TraditionalAuthority,
		Latitude:             req.Latitude,
		Longitude:            req.Longitude,
	})
	if err != nil {
		if errors.Is(err, services.ErrPhoneTaken) {
			c.JSON(http.StatusConflict, gin.H{"error": "User with this phone number already exists"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to register user"})
		return
	}

	token, err := h.authService.TokenFor(user, true)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	payload := userPayload(user.ID, user.Name, user.Username, user.Phone, user.District, false)
	payload["password_hash"] = user.PasswordHash

	c.JSON(http.StatusCreated, gin.H{
		"message": "User registered successfully",
		"data": gin.H{
			"token": token,
			"user":  payload,
		},
	})
}

func (h *UserHandler) GetProfile(c *gin.Context) {
	claims, ok := callerIdentity(c)
	if !ok {
		return
	}

	user, err := h.userService.GetProfile(claims.UserID)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load profile"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "Profile retrieved successfully",
		"data":    user,
	})
}

type updateProfileRequest struct {
	Name                 *string  `json:"name"`
	Village              *string  `json:"village"`
	TraditionalAuthority *string  `json:"traditional_authority"`
	District             *string  `json:"district"`
	Latitude             *float64 `json:"latitude"`
	Longitude            *float64 `json:"longitude"`
}

func (h *UserHandler) UpdateProfile(c *gin.Context) {
	claims, ok := callerIdentity(c)
	if !ok {
		return
	}

	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !validCoordinates(req.Latitude, req.Longitude) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid coordinates"})
		return
	}

	err := h.userService.UpdateProfile(claims.UserID, services.ProfileUpdate{
		Name:                 req.Name,
		Village:              req.Village,
		TraditionalAuthority: req.TraditionalAuthority,
		District:             req.District,
		Latitude:             req.Latitude,
		Longitude:            req.Longitude,
	})
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update profile"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Profile updated successfully"})
}
