package middleware

import (
	"log"

	"trivia/auth"

	"github.com/gin-gonic/gin"
)

// RequirePermission guards a route: it needs a valid bearer token whose
// permissions claim contains permission. The verified claims are stored under
// auth.ClaimsKey.
func RequirePermission(verifier *auth.Verifier, permission string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := auth.BearerToken(c.GetHeader("Authorization"))
		if err != nil {
			abortAuth(c, err)
			return
		}

		claims, err := verifier.Verify(token)
		if err != nil {
			abortAuth(c, err)
			return
		}

		if !claims.HasPermission(permission) {
			log.Printf("Subject %q lacks permission %s for %s %s", claims.Subject, permission, c.Request.Method, c.FullPath())
			abortAuth(c, auth.ErrPermissionNotFound)
			return
		}

		c.Set(auth.ClaimsKey, claims)
		c.Next()
	}
}

// ClaimsFrom returns the claims stored by RequirePermission.
func ClaimsFrom(c *gin.Context) (*auth.Claims, bool) {
	value, exists := c.Get(auth.ClaimsKey)
	if !exists {
		return nil, false
	}
	claims, ok := value.(*auth.Claims)
	return claims, ok
}

func abortAuth(c *gin.Context, err error) {
	authErr := auth.AsError(err)
	c.AbortWithStatusJSON(authErr.Status, gin.H{
		"success": false,
		"error":   authErr.Status,
		"code":    authErr.Code,
		"message": authErr.Description,
	})
}
