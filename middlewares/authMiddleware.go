package middlewares

import (
	"net/http"
	"strings"

	"bitbucket.org/lcconsulting/consulting_backend/utils"
	"github.com/gin-gonic/gin"
)

// AuthMiddleware verifies the bearer token on every request and stashes the
// verified claim set in the request context. Scope checks happen per route
// via RequirePermission.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		auth := c.Request.Header.Get("Authorization")

		if auth == "" {
			abortWithAuthError(c, http.StatusUnauthorized, "Authorisation header required")
			return
		}

		parts := strings.Fields(auth)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			abortWithAuthError(c, http.StatusUnauthorized, "Authorisation header must be of the form \"Bearer token\"")
			return
		}

		validated, err := utils.JwtValidate(parts[1])
		if err != nil || !validated.Valid {
			abortWithAuthError(c, http.StatusUnauthorized, "The provided token could not be verified")
			return
		}

		claims, ok := validated.Claims.(*utils.JwtCustomClaim)
		if !ok {
			abortWithAuthError(c, http.StatusUnauthorized, "The provided token could not be verified")
			return
		}

		ctx := utils.SetTokenInContext(c.Request.Context(), parts[1])
		ctx = utils.SetSubjectInContext(ctx, claims.Subject)
		ctx = utils.SetPermissionsInContext(ctx, claims.Permissions)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// RequirePermission rejects verified requests whose permissions list does not
// contain the required scope string.
func RequirePermission(permission string) gin.HandlerFunc {
	return func(c *gin.Context) {
		permissions, ok := utils.GetPermissionsFromContext(c.Request.Context())
		if !ok {
			abortWithAuthError(c, http.StatusUnauthorized, "Authorisation header required")
			return
		}

		for _, granted := range permissions {
			if granted == permission {
				c.Next()
				return
			}
		}

		abortWithAuthError(c, http.StatusForbidden, "You are not authorised to perform the request")
	}
}

func abortWithAuthError(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, gin.H{
		"success":    false,
		"message":    message,
		"error_code": status,
	})
}
