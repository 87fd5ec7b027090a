package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/kdemir/pipekit/auth"
	apperrors "github.com/kdemir/pipekit/errors"
)

// ClaimsKey is the Gin context key holding the verified token claims.
const ClaimsKey = "claims"

// Auth returns a Gin middleware that validates Bearer tokens through the
// given service. Paths with one of the skip prefixes bypass
// authentication. Verified claims are stored in the Gin context under
// ClaimsKey.
func Auth(svc *auth.Service, skipPaths ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		for _, skip := range skipPaths {
			if strings.HasPrefix(path, skip) {
				c.Next()
				return
			}
		}

		header := c.GetHeader("Authorization")
		if header == "" {
			abortWithError(c, apperrors.Unauthorized("authorization header required"))
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			abortWithError(c, apperrors.Unauthorized("invalid authorization header format"))
			return
		}

		claims, err := svc.Verify(parts[1])
		if err != nil {
			abortWithError(c, err)
			return
		}

		c.Set(ClaimsKey, claims)
		c.Next()
	}
}

// RequireRole returns a Gin middleware that rejects requests whose
// verified claims do not carry the given role. It must run after Auth.
func RequireRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := ClaimsFromContext(c)
		if claims == nil || claims.Role != role {
			abortWithError(c, apperrors.Unauthorized("insufficient role"))
			return
		}
		c.Next()
	}
}

// ClaimsFromContext returns the verified claims set by Auth, or nil.
func ClaimsFromContext(c *gin.Context) *auth.Claims {
	v, ok := c.Get(ClaimsKey)
	if !ok {
		return nil
	}
	claims, _ := v.(*auth.Claims)
	return claims
}

func abortWithError(c *gin.Context, err error) {
	appErr, ok := err.(*apperrors.AppError)
	if !ok {
		appErr = apperrors.Unauthorized("invalid token")
	}
	c.AbortWithStatusJSON(appErr.HTTPStatus, appErr.ToResponse())
}
