package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/inkwell-dev/inkwell/internal/models"
)

// actingUserKey is the gin context key holding the authenticated user.
const actingUserKey = "acting_user"

// SetActingUser stores the authenticated user on the request context.
func SetActingUser(c *gin.Context, user models.User) {
	c.Set(actingUserKey, user)
}

// ActingUser returns the authenticated user attached to the request.
func ActingUser(c *gin.Context) (models.User, bool) {
	value, exists := c.Get(actingUserKey)
	if !exists {
		return models.User{}, false
	}
	user, ok := value.(models.User)
	return user, ok
}
