package middleware

import (
	"net/http"
	"strings"

	"unimatch_backend/internal/auth"
	"unimatch_backend/internal/logger"
	"unimatch_backend/pkg/apperrors"
	"unimatch_backend/pkg/contextkeys"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware validates the bearer token and stores the caller's
// identity in the request context.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, err := claimsFromRequest(c)
		if err != nil {
			apperrors.HandleError(c, apperrors.ErrUnauthorized)
			c.Abort()
			return
		}

		c.Set(string(contextkeys.UserIDContextKey), claims.UserID)
		c.Set(string(contextkeys.RoleContextKey), claims.Role)

		ctx := logger.WithUserID(c.Request.Context(), claims.UserID)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// AdminAuthMiddleware guards the admin surface. Every failure mode, from a
// missing header to a non-admin role, produces the same generic 403 so the
// endpoint does not reveal whether it exists or what went wrong.
func AdminAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, err := claimsFromRequest(c)
		if err != nil || !auth.IsAdmin(claims) {
			c.JSON(http.StatusForbidden, gin.H{"error": "Access denied"})
			c.Abort()
			return
		}

		c.Set(string(contextkeys.UserIDContextKey), claims.UserID)
		c.Set(string(contextkeys.RoleContextKey), claims.Role)

		ctx := logger.WithUserID(c.Request.Context(), claims.UserID)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

func claimsFromRequest(c *gin.Context) (*auth.Claims, error) {
	header := c.GetHeader("Authorization")
	if header == "" {
		return nil, auth.ErrInvalidToken
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return nil, auth.ErrInvalidToken
	}

	return auth.ParseToken(parts[1])
}

// GetUserID returns the authenticated user's ID from the gin context.
func GetUserID(c *gin.Context) (string, bool) {
	v, ok := c.Get(string(contextkeys.UserIDContextKey))
	if !ok {
		return "", false
	}
	id, ok := v.(string)
	return id, ok && id != ""
}

// GetRole returns the authenticated user's role from the gin context.
func GetRole(c *gin.Context) (string, bool) {
	v, ok := c.Get(string(contextkeys.RoleContextKey))
	if !ok {
		return "", false
	}
	role, ok := v.(string)
	return role, ok && role != ""
}
