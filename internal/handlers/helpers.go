package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BornToCode265/ADIS/internal/auth"
	"github.com/BornToCode265/ADIS/internal/middleware"
)

// callerIdentity pulls the decoded claims set by the auth middleware.
// Handlers behind the middleware can rely on it being present; the 401
// here is a backstop for misrouted registrations.
func callerIdentity(c *gin.Context) (*auth.Claims, bool) {
	claims, ok := middleware.Identity(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header missing"})
		return nil, false
	}
	return claims, true
}

func validCoordinates(lat, lng *float64) bool {
	if lat == nil || lng == nil {
		return true
	}
	return *lat >= -90 && *lat <= 90 && *lng >= -180 && *lng <= 180
}

// userPayload is the public shape of a user in auth responses.
func userPayload(id int, name, username, phone, district string, isAdmin bool) gin.H {
	p := gin.H{
		"id":       id,
		"name":     name,
		"phone":    phone,
		"district": district,
		"is_admin": isAdmin,
	}
	if username != "" {
		p["username"] = username
	}
	return p
}
