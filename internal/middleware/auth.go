package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"hospital-appointment-server/internal/config"
	"hospital-appointment-server/internal/models"
	"hospital-appointment-server/internal/utils"
)

// SessionCookieName is the cookie carrying the signed session token.
const SessionCookieName = "session"

// AuthMiddleware authenticates the request from the session cookie, falling
// back to a bearer Authorization header for non-browser clients.
// Unauthenticated requests are denied uniformly regardless of the role the
// route requires.
func AuthMiddleware(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, err := c.Cookie(SessionCookieName)
		if err != nil || tokenString == "" {
			authHeader := c.GetHeader("Authorization")
			parts := strings.Split(authHeader, " ")
			if len(parts) == 2 && strings.ToLower(parts[0]) == "bearer" {
				tokenString = parts[1]
			}
		}
		if tokenString == "" {
			utils.Unauthorized(c, "Authentication required")
			c.Abort()
			return
		}

		claims, err := utils.ValidateSessionToken(tokenString, cfg.SessionSecret)
		if err != nil {
			utils.Unauthorized(c, "Invalid session: "+err.Error())
			c.Abort()
			return
		}

		// Set principal information in context for downstream handlers
		c.Set("principalID", claims.PrincipalID)
		c.Set("principalRole", claims.Role)

		c.Next()
	}
}

// RoleAuthMiddleware authorizes the authenticated principal against the
// allowed roles. It must be used after AuthMiddleware.
func RoleAuthMiddleware(allowedRoles ...models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		principalRole, exists := c.Get("principalRole")
		if !exists {
			utils.InternalServerError(c, "Principal role not found in context. AuthMiddleware might be missing.")
			c.Abort()
			return
		}

		role, ok := principalRole.(models.Role)
		if !ok {
			utils.InternalServerError(c, "Principal role in context is not of expected type.")
			c.Abort()
			return
		}

		isAllowed := false
		for _, allowedRole := range allowedRoles {
			if role == allowedRole {
				isAllowed = true
				break
			}
		}

		if !isAllowed {
			utils.Forbidden(c, "You do not have permission to access this resource.")
			c.Abort()
			return
		}

		c.Next()
	}
}

// GetPrincipalIDFromContext returns the authenticated principal's id.
func GetPrincipalIDFromContext(c *gin.Context) (uint, bool) {
	principalID, exists := c.Get("principalID")
	if !exists {
		return 0, false
	}
	id, ok := principalID.(uint)
	return id, ok
}

// GetPrincipalRoleFromContext returns the authenticated principal's role.
func GetPrincipalRoleFromContext(c *gin.Context) (models.Role, bool) {
	principalRole, exists := c.Get("principalRole")
	if !exists {
		return "", false
	}
	role, ok := principalRole.(models.Role)
	return role, ok
}
