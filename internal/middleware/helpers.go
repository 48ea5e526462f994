// internal/middleware/helpers.go
package middleware

import "github.com/gin-gonic/gin"

// MustGetUserID gets the user id from context or panics. Only call on routes
// behind Auth().
func MustGetUserID(c *gin.Context) int64 {
	userID, exists := GetUserID(c)
	if !exists {
		panic("user_id not found in context")
	}
	return userID
}

// IsAuthenticated checks if the request carries a validated identity.
func IsAuthenticated(c *gin.Context) bool {
	_, exists := c.Get("user_id")
	return exists
}

// IsAdmin checks if the authenticated user is an admin.
func IsAdmin(c *gin.Context) bool {
	role, ok := GetRole(c)
	return ok && role == "admin"
}
