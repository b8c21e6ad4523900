package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	models "github.com/phillip/venturelink/models"
	services "github.com/phillip/venturelink/services"
	utils "github.com/phillip/venturelink/utils"
)

// AuthMiddleware resolves the bearer token to a stored user and exposes it to handlers
// as "user_id", "role" and "user".
func AuthMiddleware(tokens *utils.Tokens, users *services.Users) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		raw, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || strings.TrimSpace(raw) == "" {
			utils.AbortFail(c, http.StatusUnauthorized, "Access token required")
			return
		}

		userID, err := tokens.Parse(strings.TrimSpace(raw))
		if err != nil {
			utils.AbortFail(c, http.StatusForbidden, "Invalid token")
			return
		}

		user, found := users.Get(c.Request.Context(), userID)
		if !found {
			utils.AbortFail(c, http.StatusForbidden, "Invalid token")
			return
		}

		c.Set("user_id", user.ID)
		c.Set("role", user.Role)
		c.Set("user", user)
		c.Next()
	}
}

// RequireRole rejects authenticated users whose role is not role with msg.
func RequireRole(role, msg string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString("role") != role {
			utils.AbortFail(c, http.StatusForbidden, msg)
			return
		}
		c.Next()
	}
}

// CurrentUser returns the user set by AuthMiddleware.
func CurrentUser(c *gin.Context) models.User {
	u, _ := c.Get("user")
	user, _ := u.(models.User)
	return user
}
