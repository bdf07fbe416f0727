package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/scanmark/attendance-api/internal/service"
	appErrors "github.com/scanmark/attendance-api/pkg/errors"
	"github.com/scanmark/attendance-api/pkg/response"
)

// ContextAdminKey is the gin context key storing verified session claims.
const ContextAdminKey = "adminSession"

// AdminRequired protects admin routes by requiring a valid session cookie.
func AdminRequired(auth *service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(auth.CookieName())
		if err != nil || token == "" {
			response.Error(c, appErrors.ErrForbidden)
			c.Abort()
			return
		}

		claims, err := auth.ValidateSession(token)
		if err != nil {
			response.Error(c, err)
			c.Abort()
			return
		}

		c.Set(ContextAdminKey, claims)
		c.Next()
	}
}

// IsAdmin reports whether the request carries a valid admin session without blocking.
func IsAdmin(c *gin.Context, auth *service.AuthService) bool {
	token, err := c.Cookie(auth.CookieName())
	if err != nil || token == "" {
		return false
	}
	_, err = auth.ValidateSession(token)
	return err == nil
}
