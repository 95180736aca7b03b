package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"salao_backend/pkg/utils"
)

// AuthCookieName is the httpOnly cookie carrying the access token for
// browser clients. API clients send a bearer header instead; both work.
const AuthCookieName = "auth_token"

func extractToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	if cookie, err := c.Cookie(AuthCookieName); err == nil {
		return cookie
	}
	return ""
}

// AuthMiddleware validates the access token and binds the caller identity
// to the request context.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusUnauthorized, utils.ErrCodeUnauthorized, "Authentication required", ""))
			c.Abort()
			return
		}

		claims, err := utils.ValidateToken(token)
		if err != nil || claims.TokenType != utils.TokenTypeAccess {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusUnauthorized, utils.ErrCodeUnauthorized, "Invalid or expired token", ""))
			c.Abort()
			return
		}

		c.Set("user_id", claims.UserID)
		c.Set("clinic_id", claims.ClinicID)
		c.Set("email", claims.Email)
		c.Set("role", claims.Role)
		c.Next()
	}
}

// RoleAuthMiddleware allows only the listed roles past.
func RoleAuthMiddleware(allowedRoles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString("role")
		for _, allowed := range allowedRoles {
			if role == allowed {
				c.Next()
				return
			}
		}
		utils.RespondWithError(c, utils.NewAPIError(http.StatusForbidden, utils.ErrCodeForbidden, "Insufficient permissions", ""))
		c.Abort()
	}
}
